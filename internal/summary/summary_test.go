package summary

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coral-mesh/fpgaprof/internal/profile"
)

func u64s(vs ...uint64) profile.List[profile.Uint64] {
	out := make(profile.List[profile.Uint64], len(vs))
	for i, v := range vs {
		out[i] = profile.Uint64(v)
	}
	return out
}

func f32s(vs ...float32) profile.List[profile.Float32] {
	out := make(profile.List[profile.Float32], len(vs))
	for i, v := range vs {
		out[i] = profile.Float32(v)
	}
	return out
}

// kernel builds a kernel running from start to end with one sample per
// timestamp, each interval worth its cycle count.
func kernel(start, end uint64, timestamps ...uint64) *profile.Kernel {
	k := &profile.Kernel{
		StartTime:        profile.Uint64(start),
		EndTime:          profile.Uint64(end),
		SampleTimestamps: u64s(timestamps...),
	}
	k.TotalCyclesBetweenSamples = u64s(k.Intervals()...)
	return k
}

func TestOccupancy(t *testing.T) {
	k := kernel(0, 30, 10, 20, 30)
	samples := []Sample[*profile.Loop]{
		{Kernel: k, Detail: &profile.Loop{OccupancySamples: u64s(5, 10, 0)}},
	}
	assert.InDelta(t, 50.0, Occupancy(samples), 1e-9)
}

func TestOccupancy_WeightsAcrossSamples(t *testing.T) {
	short := kernel(0, 10, 10)
	long := kernel(0, 90, 90)
	samples := []Sample[*profile.Loop]{
		{Kernel: short, Detail: &profile.Loop{OccupancySamples: u64s(10)}},
		{Kernel: long, Detail: &profile.Loop{OccupancySamples: u64s(0)}},
	}
	// 10 busy cycles out of 100, not the mean of 100% and 0%.
	assert.InDelta(t, 10.0, Occupancy(samples), 1e-9)
}

func TestOccupancy_ZipsToShortest(t *testing.T) {
	k := kernel(0, 30, 10, 20, 30)
	samples := []Sample[*profile.Loop]{
		{Kernel: k, Detail: &profile.Loop{OccupancySamples: u64s(5)}},
	}
	assert.InDelta(t, 50.0, Occupancy(samples), 1e-9)
}

func TestOccupancy_ZeroCyclesIsNaN(t *testing.T) {
	assert.True(t, math.IsNaN(Occupancy[*profile.Loop](nil)))

	k := kernel(0, 0)
	samples := []Sample[*profile.Loop]{
		{Kernel: k, Detail: &profile.Loop{OccupancySamples: u64s(1, 2)}},
	}
	assert.True(t, math.IsNaN(Occupancy(samples)))
}

func TestStall(t *testing.T) {
	k := kernel(0, 20, 10, 20)
	samples := []Sample[*profile.Local]{
		{Kernel: k, Detail: &profile.Local{
			StallSamples:    u64s(1, 3),
			IdleSamples:     u64s(5, 5),
			ActivitySamples: u64s(4, 2),
		}},
	}
	got := Stall(samples)
	assert.InDelta(t, 20.0, got.Stall, 1e-9)
	assert.InDelta(t, 50.0, got.Idle, 1e-9)
	assert.InDelta(t, 30.0, got.Activity, 1e-9)
}

func TestStall_EmptyArraysAreNaN(t *testing.T) {
	k := kernel(0, 20, 10, 20)
	got := Stall([]Sample[*profile.Local]{{Kernel: k, Detail: &profile.Local{}}})
	assert.True(t, math.IsNaN(got.Stall))
	assert.True(t, math.IsNaN(got.Idle))
	assert.True(t, math.IsNaN(got.Activity))
}

func TestBandwidth_MergesOverlappingKernels(t *testing.T) {
	a := kernel(0, 100, 100)
	b := kernel(0, 100, 100)
	samples := []Sample[*profile.Global]{
		{Kernel: a, Detail: &profile.Global{BandwidthSamples: f32s(10)}},
		{Kernel: b, Detail: &profile.Global{BandwidthSamples: f32s(10)}},
	}
	// 2000 MB over a merged wall time of 100, not 200.
	assert.InDelta(t, 20.0, Bandwidth(samples), 1e-9)
}

func TestBandwidth_TimeWeighted(t *testing.T) {
	k := kernel(0, 40, 10, 40)
	samples := []Sample[*profile.Channel]{
		{Kernel: k, Detail: &profile.Channel{BandwidthSamples: f32s(100, 20)}},
	}
	// (10*100 + 30*20) / 40
	assert.InDelta(t, 40.0, Bandwidth(samples), 1e-9)
}

func TestBandwidth_NoSamplesIsNaN(t *testing.T) {
	assert.True(t, math.IsNaN(Bandwidth[*profile.Global](nil)))
}

func TestEffectiveness(t *testing.T) {
	k := kernel(0, 30, 10, 20, 30)
	samples := []Sample[*profile.Global]{
		{Kernel: k, Detail: &profile.Global{
			OccupancySamples:    u64s(5, 10, 0),
			BandwidthEffSamples: f32s(0.5, 1, 0.75),
			AverageBurstSize:    f32s(2, 4, 6),
		}},
	}
	got := Effectiveness(samples)
	assert.InDelta(t, 75.0, got.Effective, 1e-6)
	assert.InDelta(t, 4.0, got.BurstSize, 1e-6)
	assert.Nil(t, got.CacheHit, "no sample carries cache hit data")
}

func TestEffectiveness_CacheHitFromSamplesThatHaveIt(t *testing.T) {
	k := kernel(0, 10, 10)
	samples := []Sample[*profile.Global]{
		{Kernel: k, Detail: &profile.Global{
			OccupancySamples:    u64s(1000),
			BandwidthEffSamples: f32s(1),
			AverageBurstSize:    f32s(1),
		}},
		{Kernel: k, Detail: &profile.Global{
			OccupancySamples:    u64s(40),
			BandwidthEffSamples: f32s(0),
			AverageBurstSize:    f32s(3),
			CacheHitSamples:     f32s(20),
		}},
	}
	got := Effectiveness(samples)
	require.NotNil(t, got.CacheHit)
	// The occupancy of samples without cache data is not in the denominator.
	assert.InDelta(t, 50.0, *got.CacheHit, 1e-6)
	assert.InDelta(t, 50.0, got.Effective, 1e-6)
	assert.InDelta(t, 2.0, got.BurstSize, 1e-6)
}

func TestQueueDepth(t *testing.T) {
	k := kernel(0, 30, 10, 20, 30)
	other := kernel(0, 10, 10)
	samples := []Sample[*profile.Channel]{
		{Kernel: k, Detail: &profile.Channel{
			AverageChannelDepthSamples: f32s(1, 2, 3),
			MaxChannelDepthSamples:     profile.List[profile.Uint32]{2, 7, 4},
		}},
		{Kernel: other, Detail: &profile.Channel{
			AverageChannelDepthSamples: f32s(6),
			MaxChannelDepthSamples:     profile.List[profile.Uint32]{6},
		}},
	}
	got := QueueDepth(samples)
	assert.InDelta(t, 3.0, got.Average, 1e-6)
	assert.Equal(t, uint32(7), got.Max, "maximum is the largest sample, not an average")
}

func TestQueueDepth_Empty(t *testing.T) {
	got := QueueDepth[*profile.Channel](nil)
	assert.True(t, math.IsNaN(got.Average))
	assert.Zero(t, got.Max)
}
