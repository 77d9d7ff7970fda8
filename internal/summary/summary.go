// Package summary computes the time-weighted statistics of a report group.
//
// Every function takes the (kernel, details) samples of one group and folds
// their per-interval arrays. Arrays of one sample are zipped to the shortest
// of them. A zero denominator yields NaN or Inf rather than an error, so
// callers must be ready to display such values.
package summary

import (
	"github.com/samber/lo"

	"github.com/coral-mesh/fpgaprof/internal/profile"
)

// Sample pairs a details payload with the kernel whose timeline it follows.
type Sample[T any] struct {
	Kernel *profile.Kernel
	Detail T
}

// Occupancy returns 100 * Σoccupancy / Σcycles over every interval.
func Occupancy[T profile.Occupancy](samples []Sample[T]) float64 {
	var occupied, cycles uint64
	for _, s := range samples {
		occ := s.Detail.Occupancy()
		cyc := s.Kernel.TotalCyclesBetweenSamples
		for i := range min(len(occ), len(cyc)) {
			occupied += uint64(occ[i])
			cycles += uint64(cyc[i])
		}
	}
	return percent(float64(occupied), float64(cycles))
}

// Stalls holds stall, idle and activity percentages.
type Stalls struct {
	Stall    float64
	Idle     float64
	Activity float64
}

// Stall computes the three stall ratios over the same cycles denominator.
func Stall[T profile.Stall](samples []Sample[T]) Stalls {
	var stall, idle, activity, cycles uint64
	for _, s := range samples {
		st, id, ac := s.Detail.Stall(), s.Detail.Idle(), s.Detail.Activity()
		cyc := s.Kernel.TotalCyclesBetweenSamples
		for i := range min(len(st), len(id), len(ac), len(cyc)) {
			stall += uint64(st[i])
			idle += uint64(id[i])
			activity += uint64(ac[i])
			cycles += uint64(cyc[i])
		}
	}
	return Stalls{
		Stall:    percent(float64(stall), float64(cycles)),
		Idle:     percent(float64(idle), float64(cycles)),
		Activity: percent(float64(activity), float64(cycles)),
	}
}

// Bandwidth integrates bandwidth over each sample interval and divides by
// the merged wall time of the contributing kernels, so concurrent or
// repeated invocations do not count their elapsed time twice.
func Bandwidth[T profile.Bandwidth](samples []Sample[T]) float64 {
	var integral float64
	for _, s := range samples {
		integral += integrate(s.Kernel.Intervals(), s.Detail.Bandwidth())
	}
	spans := lo.Map(samples, func(s Sample[T], _ int) Span {
		return Span{Start: uint64(s.Kernel.StartTime), End: uint64(s.Kernel.EndTime)}
	})
	return integral / float64(WallTime(spans))
}

// Efficiency summarises how well global memory bursts were used.
type Efficiency struct {
	// Effective is the mean effective bandwidth ratio in percent.
	Effective float64
	BurstSize float64
	// CacheHit is nil when no sample carries cache hit data.
	CacheHit *float64
}

// Effectiveness averages the efficiency and burst samples without weighting.
// The cache hit ratio is relative to occupancy, not to cycles.
func Effectiveness[T interface {
	profile.Effectiveness
	profile.Occupancy
}](samples []Sample[T]) Efficiency {
	var (
		n                int
		effSum, burstSum float64
		cacheSeen        bool
		hitSum, occSum   float64
	)
	for _, s := range samples {
		eff, burst := s.Detail.BandwidthEfficiency(), s.Detail.BurstSize()
		for i := range min(len(eff), len(burst)) {
			n++
			effSum += float64(eff[i])
			burstSum += float64(burst[i])
		}

		hit, occ := s.Detail.CacheHit(), s.Detail.Occupancy()
		for i := range min(len(hit), len(occ)) {
			cacheSeen = true
			hitSum += float64(hit[i])
			occSum += float64(occ[i])
		}
	}

	out := Efficiency{
		Effective: percent(effSum, float64(n)),
		BurstSize: mean(burstSum, n),
	}
	if cacheSeen {
		out.CacheHit = lo.ToPtr(percent(hitSum, occSum))
	}
	return out
}

// Depth summarises channel fill levels.
type Depth struct {
	Average float64
	Max     uint32
}

// QueueDepth returns the mean of the average-depth samples and the largest
// max-depth sample of the group.
func QueueDepth[T profile.QueueDepth](samples []Sample[T]) Depth {
	var (
		n   int
		sum float64
		top uint32
	)
	for _, s := range samples {
		avg, peak := s.Detail.AverageDepth(), s.Detail.MaxDepth()
		for i := range min(len(avg), len(peak)) {
			n++
			sum += float64(avg[i])
			top = max(top, uint32(peak[i]))
		}
	}
	return Depth{Average: mean(sum, n), Max: top}
}

func integrate(intervals []uint64, values []profile.Float32) float64 {
	var sum float64
	for i := range min(len(intervals), len(values)) {
		sum += float64(intervals[i]) * float64(values[i])
	}
	return sum
}

func percent(num, den float64) float64 {
	return num / den * 100
}

func mean(sum float64, n int) float64 {
	return sum / float64(n)
}
