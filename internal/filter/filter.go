// Package filter selects the kernels that contribute to a report.
//
// A kernel rejected by the filter is excluded from every per-kernel section:
// the four module-instance sections and external memory.
package filter

import (
	"github.com/samber/lo"

	"github.com/coral-mesh/fpgaprof/internal/profile"
)

// Filter decides whether a kernel takes part in the report.
type Filter interface {
	Match(k *profile.Kernel) bool
}

// Func adapts a plain function to Filter.
type Func func(k *profile.Kernel) bool

func (f Func) Match(k *profile.Kernel) bool { return f(k) }

// Everything accepts every kernel.
var Everything Filter = Func(func(*profile.Kernel) bool { return true })

// Names accepts kernels whose name is in the allow-list. An empty list
// accepts every kernel. Names match exactly, so "" only accepts a kernel
// with an empty name.
func Names(names ...string) Filter {
	if len(names) == 0 {
		return Everything
	}
	allowed := lo.SliceToMap(names, func(n string) (string, struct{}) {
		return n, struct{}{}
	})
	return Func(func(k *profile.Kernel) bool {
		_, ok := allowed[k.Name]
		return ok
	})
}

// All accepts a kernel only if every filter does. Nil filters are skipped.
func All(filters ...Filter) Filter {
	filters = lo.Filter(filters, func(f Filter, _ int) bool { return f != nil })
	switch len(filters) {
	case 0:
		return Everything
	case 1:
		return filters[0]
	}
	return Func(func(k *profile.Kernel) bool {
		return lo.EveryBy(filters, func(f Filter) bool { return f.Match(k) })
	})
}

// Kernels returns the kernels of p accepted by f, in document order.
func Kernels(p *profile.Profile, f Filter) []*profile.Kernel {
	if f == nil {
		f = Everything
	}
	return lo.Filter(p.Kernels(), func(k *profile.Kernel, _ int) bool {
		return f.Match(k)
	})
}
