// Package grouping indexes module-instance samples for reporting.
//
// Entries are grouped by their source attribution chain and, for the
// expanded view, by kernel name and unroll instance. Every function is pure
// and orders its output deterministically.
package grouping

import (
	"slices"

	"github.com/samber/lo"

	"github.com/coral-mesh/fpgaprof/internal/filter"
	"github.com/coral-mesh/fpgaprof/internal/profile"
)

// Entry is one module instance of kind T inside one kernel invocation.
type Entry[T any] struct {
	Kernel   *profile.Kernel
	Instance *profile.ModuleInstance
	Detail   T
}

// SourceGroup collects the entries attributed to one source chain.
type SourceGroup[T any] struct {
	Source  []profile.FileReference
	Entries []Entry[T]
}

// KernelGroup collects the entries of one kernel name inside a source group.
type KernelGroup[T any] struct {
	Kernel    string
	Instances []InstanceGroup[T]
}

// InstanceGroup is one unroll instance, numbered from 1 in module-instance
// name order.
type InstanceGroup[T any] struct {
	Index   int
	Name    string
	Entries []Entry[T]
}

// Select returns every module instance whose details are of kind T, taken
// from the kernels accepted by f, in document order.
func Select[T profile.Details](p *profile.Profile, f filter.Filter) []Entry[T] {
	var entries []Entry[T]
	for _, k := range filter.Kernels(p, f) {
		for _, mi := range k.ModuleInstances() {
			if d, ok := mi.Details.(T); ok {
				entries = append(entries, Entry[T]{Kernel: k, Instance: mi, Detail: d})
			}
		}
	}
	return entries
}

// BySource groups entries by source chain, ordered by
// profile.CompareChains. Entries keep their relative order within a group.
func BySource[T any](entries []Entry[T]) []SourceGroup[T] {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry[T]) int {
		return profile.CompareChains(a.Instance.SourceFiles, b.Instance.SourceFiles)
	})

	var groups []SourceGroup[T]
	for _, e := range sorted {
		n := len(groups)
		if n > 0 && profile.CompareChains(groups[n-1].Source, e.Instance.SourceFiles) == 0 {
			groups[n-1].Entries = append(groups[n-1].Entries, e)
			continue
		}
		groups = append(groups, SourceGroup[T]{Source: e.Instance.SourceFiles, Entries: []Entry[T]{e}})
	}
	return groups
}

// ByKernel splits entries by kernel name and then by module-instance name.
// Both levels are sorted lexicographically.
func ByKernel[T any](entries []Entry[T]) []KernelGroup[T] {
	byKernel := lo.GroupBy(entries, func(e Entry[T]) string { return e.Kernel.Name })

	kernelNames := lo.Keys(byKernel)
	slices.Sort(kernelNames)

	return lo.Map(kernelNames, func(name string, _ int) KernelGroup[T] {
		byInstance := lo.GroupBy(byKernel[name], func(e Entry[T]) string { return e.Instance.Name })

		instanceNames := lo.Keys(byInstance)
		slices.Sort(instanceNames)

		return KernelGroup[T]{
			Kernel: name,
			Instances: lo.Map(instanceNames, func(inst string, i int) InstanceGroup[T] {
				return InstanceGroup[T]{Index: i + 1, Name: inst, Entries: byInstance[inst]}
			}),
		}
	})
}
