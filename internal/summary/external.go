package summary

import (
	"cmp"
	"slices"

	"github.com/samber/lo"

	"github.com/coral-mesh/fpgaprof/internal/profile"
)

// PortBandwidth is the board I/O summary of one external memory port.
type PortBandwidth struct {
	Name       string
	Port       string
	Bandwidth  float64
	WriteBurst float64
	ReadBurst  float64
	// Time is the summed duration of the contributing kernels.
	Time uint64
}

type portKey struct {
	name, port string
}

type portSums struct {
	time       uint64
	bandwidth  float64
	writeBurst float64
	readBurst  float64
}

// ExternalMemory summarises the external memory samples of kernels per
// (name, port). Each kernel contributes its own duration to the
// denominator; overlapping kernels are not merged here, unlike Bandwidth.
func ExternalMemory(kernels []*profile.Kernel) []PortBandwidth {
	sums := map[portKey]*portSums{}
	for _, k := range kernels {
		intervals := k.Intervals()
		for _, em := range k.ExternalMemories() {
			key := portKey{name: em.Name, port: em.Port}
			s, ok := sums[key]
			if !ok {
				s = &portSums{}
				sums[key] = s
			}
			n := min(len(intervals), len(em.GlobalUsedBW), len(em.AvgWriteBurst), len(em.AvgReadBurst))
			s.bandwidth += integrate(intervals[:n], em.GlobalUsedBW[:n])
			s.writeBurst += integrate(intervals[:n], em.AvgWriteBurst[:n])
			s.readBurst += integrate(intervals[:n], em.AvgReadBurst[:n])
			s.time += k.Duration()
		}
	}

	out := lo.MapToSlice(sums, func(key portKey, s *portSums) PortBandwidth {
		t := float64(s.time)
		return PortBandwidth{
			Name:       key.name,
			Port:       key.port,
			Bandwidth:  s.bandwidth / t,
			WriteBurst: s.writeBurst / t,
			ReadBurst:  s.readBurst / t,
			Time:       s.time,
		}
	})
	slices.SortFunc(out, func(a, b PortBandwidth) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.Port, b.Port))
	})
	return out
}
