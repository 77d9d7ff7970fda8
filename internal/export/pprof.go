// Package export converts profiles into formats understood by other tools.
package export

import (
	"fmt"
	"math"

	pprofile "github.com/google/pprof/profile"
	"github.com/samber/lo"

	"github.com/coral-mesh/fpgaprof/internal/filter"
	"github.com/coral-mesh/fpgaprof/internal/profile"
	"github.com/coral-mesh/fpgaprof/internal/safe"
)

// Sample value indices, in SampleType order.
const (
	ValueCycles = iota
	ValueOccupancy
	ValueStall
	ValueIdle
	ValueActivity
)

// Pprof converts the module instances of the kernels accepted by f into a
// pprof profile. Each module instance becomes one sample whose stack is its
// source chain, most specific reference first, rooted at a "kernel <name>"
// frame. Values are cycle counts summed over the kernel timeline; units
// without stall counters report zero stall, idle and activity.
//
// With a run_info fmax the duration is the span from the first kernel start
// to the last kernel end converted to nanoseconds.
func Pprof(p *profile.Profile, f filter.Filter) (*pprofile.Profile, error) {
	kernels := filter.Kernels(p, f)

	prof := &pprofile.Profile{
		SampleType: []*pprofile.ValueType{
			{Type: "cycles", Unit: "count"},
			{Type: "occupancy", Unit: "cycles"},
			{Type: "stall", Unit: "cycles"},
			{Type: "idle", Unit: "cycles"},
			{Type: "activity", Unit: "cycles"},
		},
		DefaultSampleType: "occupancy",
		PeriodType:        &pprofile.ValueType{Type: "cycles", Unit: "count"},
		Period:            1,
		DurationNanos:     durationNanos(p, kernels),
		Comments: []string{
			fmt.Sprintf("profiler_json_version=%s aocx_version=%s", p.Versions.ProfilerJSONVersion, p.Versions.AOCXVersion),
		},
	}

	b := &builder{
		prof:      prof,
		locations: map[locationKey]*pprofile.Location{},
		functions: map[string]*pprofile.Function{},
	}
	for _, k := range kernels {
		root := b.location("kernel "+k.Name, k.SourceFile)
		for _, mi := range k.ModuleInstances() {
			var stack []*pprofile.Location
			for _, ref := range mi.SourceFiles {
				stack = b.chain(stack, ref)
			}
			stack = append(stack, root)

			prof.Sample = append(prof.Sample, &pprofile.Sample{
				Location: stack,
				Value:    values(k, mi.Details),
				Label: map[string][]string{
					"kernel":   {k.Name},
					"instance": {mi.Name},
					"mem_type": {mi.Details.MemType()},
				},
				NumLabel: map[string][]int64{
					"compute_unit": {int64(k.ComputeUnit)},
				},
			})
		}
	}

	return prof, prof.CheckValid()
}

type locationKey struct {
	function string
	line     uint32
	column   uint32
}

type builder struct {
	prof      *pprofile.Profile
	locations map[locationKey]*pprofile.Location
	functions map[string]*pprofile.Function
}

// chain appends ref and then its callsites, depth first.
func (b *builder) chain(stack []*pprofile.Location, ref profile.FileReference) []*pprofile.Location {
	stack = append(stack, b.location(ref.Filename, ref))
	for _, cs := range ref.Callsite {
		stack = b.chain(stack, cs)
	}
	return stack
}

func (b *builder) location(function string, ref profile.FileReference) *pprofile.Location {
	key := locationKey{function: function, line: uint32(ref.Line)}
	if ref.Column != nil {
		key.column = uint32(*ref.Column)
	}
	if loc, ok := b.locations[key]; ok {
		return loc
	}

	loc := &pprofile.Location{
		ID: uint64(len(b.prof.Location) + 1),
		Line: []pprofile.Line{{
			Function: b.function(function, ref.Filename),
			Line:     int64(key.line),
			Column:   int64(key.column),
		}},
	}
	b.locations[key] = loc
	b.prof.Location = append(b.prof.Location, loc)
	return loc
}

func (b *builder) function(name, filename string) *pprofile.Function {
	if fn, ok := b.functions[name]; ok {
		return fn
	}
	fn := &pprofile.Function{
		ID:         uint64(len(b.prof.Function) + 1),
		Name:       name,
		SystemName: name,
		Filename:   filename,
	}
	b.functions[name] = fn
	b.prof.Function = append(b.prof.Function, fn)
	return fn
}

// values sums the counters of d over the timeline of k. Each counter is
// zipped with the cycle array on its own.
func values(k *profile.Kernel, d profile.Details) []int64 {
	out := make([]int64, ValueActivity+1)
	cycles := k.TotalCyclesBetweenSamples

	sum := func(counter []profile.Uint64) int64 {
		n := min(len(counter), len(cycles))
		v, _ := safe.Uint64ToInt64(lo.SumBy(counter[:n], func(c profile.Uint64) uint64 { return uint64(c) }))
		return v
	}

	if occ, ok := d.(profile.Occupancy); ok {
		n := min(len(cycles), len(occ.Occupancy()))
		out[ValueCycles] = sum(cycles[:n])
		out[ValueOccupancy] = sum(occ.Occupancy())
	}
	if st, ok := d.(profile.Stall); ok {
		out[ValueStall] = sum(st.Stall())
		out[ValueIdle] = sum(st.Idle())
		out[ValueActivity] = sum(st.Activity())
	}
	return out
}

// durationNanos converts the kernel span to nanoseconds using the first
// fmax of the run information. It is zero when either is missing.
func durationNanos(p *profile.Profile, kernels []*profile.Kernel) int64 {
	runInfo := p.RunInformation()
	if len(runInfo) == 0 || len(kernels) == 0 || runInfo[0].Fmax <= 0 {
		return 0
	}

	start := lo.MinBy(kernels, func(a, b *profile.Kernel) bool { return a.StartTime < b.StartTime }).StartTime
	end := lo.MaxBy(kernels, func(a, b *profile.Kernel) bool { return a.EndTime > b.EndTime }).EndTime
	if end <= start {
		return 0
	}

	// fmax is in MHz, so one cycle lasts 1000/fmax nanoseconds.
	ns := float64(end-start) * 1000 / float64(runInfo[0].Fmax)
	if ns >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(ns)
}
