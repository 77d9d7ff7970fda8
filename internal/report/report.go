// Package report builds the summary tree of a profile and renders it as
// indented text, JSON or flat rows.
package report

import (
	"github.com/samber/lo"

	"github.com/coral-mesh/fpgaprof/internal/filter"
	"github.com/coral-mesh/fpgaprof/internal/grouping"
	"github.com/coral-mesh/fpgaprof/internal/profile"
	"github.com/coral-mesh/fpgaprof/internal/summary"
)

// Section kinds, in report order.
const (
	SectionGlobal  = "global"
	SectionLocal   = "local"
	SectionChannel = "channel"
	SectionLoop    = "loop"
)

// Options controls what Build includes.
type Options struct {
	// Filter selects the kernels that contribute. Nil keeps all of them.
	Filter filter.Filter
	// Expand breaks each source group down by kernel and unroll instance.
	Expand bool
	// Transfers adds the memory transfer summary.
	Transfers bool
}

// Report is the summary of one profile.
type Report struct {
	JSONType        string           `json:"json_type"`
	ProfilerVersion string           `json:"profiler_version"`
	AOCXVersion     string           `json:"aocx_version"`
	Fingerprint     string           `json:"fingerprint,omitempty"`
	Boards          []Board          `json:"boards"`
	RunInformation  []RunInformation `json:"run_information"`
	ExternalMemory  []ExternalMemory `json:"external_memory"`
	Sections        []Section        `json:"sections"`
	Transfers       []Transfer       `json:"transfers,omitempty"`
}

type Board struct {
	Type           string         `json:"type"`
	GlobalMemories []GlobalMemory `json:"global_memories"`
}

type GlobalMemory struct {
	Name string `json:"name"`
	// MaxBandwidth is in MB/s.
	MaxBandwidth Value `json:"max_bandwidth"`
	MaxBurst     Value `json:"max_burst"`
}

type RunInformation struct {
	FmaxMHz Value `json:"fmax_mhz"`
}

type ExternalMemory struct {
	Name  string `json:"name"`
	Ports []Port `json:"ports"`
}

type Port struct {
	Port string `json:"port"`
	// Bandwidth is in MB/s.
	Bandwidth  Value `json:"bandwidth"`
	WriteBurst Value `json:"write_burst"`
	ReadBurst  Value `json:"read_burst"`
}

// Section lists the groups of one module-instance kind.
type Section struct {
	Kind   string  `json:"kind"`
	Title  string  `json:"title"`
	Groups []Group `json:"groups"`
}

// Group is every module instance sharing one source attribution chain.
// Metrics is set in the merged view, Kernels in the expanded view.
type Group struct {
	Source  []Source      `json:"source"`
	Metrics *Metrics      `json:"metrics,omitempty"`
	Kernels []KernelGroup `json:"kernels,omitempty"`
}

// KernelGroup holds the metrics of one kernel name. Kernels with a single
// unroll instance carry Metrics directly, others list Instances.
type KernelGroup struct {
	Kernel    string          `json:"kernel"`
	Metrics   *Metrics        `json:"metrics,omitempty"`
	Instances []InstanceGroup `json:"instances,omitempty"`
}

type InstanceGroup struct {
	Index   int     `json:"index"`
	Name    string  `json:"name"`
	Metrics Metrics `json:"metrics"`
}

// Source is a file reference of the attribution chain.
type Source struct {
	File     string   `json:"file"`
	Line     uint32   `json:"line"`
	Column   *uint32  `json:"column,omitempty"`
	Callsite []Source `json:"callsite,omitempty"`
}

// Metrics holds the statistics of a group. Only the metrics its kind
// supports are set.
type Metrics struct {
	Occupancy       *Value  `json:"occupancy,omitempty"`
	Stall           *Value  `json:"stall,omitempty"`
	Idle            *Value  `json:"idle,omitempty"`
	Activity        *Value  `json:"activity,omitempty"`
	Bandwidth       *Value  `json:"bandwidth,omitempty"`
	Efficiency      *Value  `json:"efficiency,omitempty"`
	BurstSize       *Value  `json:"burst_size,omitempty"`
	CacheHit        *Value  `json:"cache_hit,omitempty"`
	ChannelDepth    *Value  `json:"channel_depth,omitempty"`
	MaxChannelDepth *uint32 `json:"max_channel_depth,omitempty"`
}

type Transfer struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
	Total uint64 `json:"total_cycles"`
	Busy  uint64 `json:"busy_cycles"`
}

// Build summarises p. The result does not share memory with p.
func Build(p *profile.Profile, opts Options) *Report {
	f := opts.Filter
	if f == nil {
		f = filter.Everything
	}

	r := &Report{
		JSONType:        p.JSONType,
		ProfilerVersion: p.Versions.ProfilerJSONVersion,
		AOCXVersion:     p.Versions.AOCXVersion,
		Boards:          buildBoards(p),
		RunInformation: lo.Map(p.RunInformation(), func(ri *profile.RunInformation, _ int) RunInformation {
			return RunInformation{FmaxMHz: fromFloat32(ri.Fmax)}
		}),
		ExternalMemory: buildExternalMemory(filter.Kernels(p, f)),
		Sections: []Section{
			buildSection(p, f, opts.Expand, SectionGlobal, "Global memory", globalMetrics),
			buildSection(p, f, opts.Expand, SectionLocal, "Local memory", localMetrics),
			buildSection(p, f, opts.Expand, SectionChannel, "Channel", channelMetrics),
			buildSection(p, f, opts.Expand, SectionLoop, "Loop", loopMetrics),
		},
	}
	if opts.Transfers {
		r.Transfers = lo.Map(summary.Transfers(p.Transfers()), func(t summary.TransferSummary, _ int) Transfer {
			return Transfer{Type: t.Type, Count: t.Count, Total: t.Total, Busy: t.Busy}
		})
	}
	return r
}

func buildBoards(p *profile.Profile) []Board {
	return lo.Map(p.Boards(), func(b *profile.Board, _ int) Board {
		return Board{
			Type: b.BoardType,
			GlobalMemories: lo.Map(b.GlobalMemories(), func(g *profile.GlobalMemory, _ int) GlobalMemory {
				return GlobalMemory{
					Name:         g.Name,
					MaxBandwidth: fromFloat32(g.MaxBandwidth),
					MaxBurst:     fromFloat32(g.MaxBurstCount),
				}
			}),
		}
	})
}

func buildExternalMemory(kernels []*profile.Kernel) []ExternalMemory {
	var out []ExternalMemory
	for _, pb := range summary.ExternalMemory(kernels) {
		port := Port{
			Port:       pb.Port,
			Bandwidth:  Value(pb.Bandwidth),
			WriteBurst: Value(pb.WriteBurst),
			ReadBurst:  Value(pb.ReadBurst),
		}
		// summary.ExternalMemory sorts by name first, so ports of one memory
		// are adjacent.
		if n := len(out); n > 0 && out[n-1].Name == pb.Name {
			out[n-1].Ports = append(out[n-1].Ports, port)
			continue
		}
		out = append(out, ExternalMemory{Name: pb.Name, Ports: []Port{port}})
	}
	return out
}

func buildSection[T profile.Details](
	p *profile.Profile,
	f filter.Filter,
	expand bool,
	kind, title string,
	compute func([]summary.Sample[T]) Metrics,
) Section {
	section := Section{Kind: kind, Title: title, Groups: []Group{}}
	for _, sg := range grouping.BySource(grouping.Select[T](p, f)) {
		group := Group{Source: sources(sg.Source)}
		if !expand {
			m := compute(samples(sg.Entries))
			group.Metrics = &m
			section.Groups = append(section.Groups, group)
			continue
		}
		for _, kg := range grouping.ByKernel(sg.Entries) {
			out := KernelGroup{Kernel: kg.Kernel}
			if len(kg.Instances) == 1 {
				m := compute(samples(kg.Instances[0].Entries))
				out.Metrics = &m
			} else {
				out.Instances = lo.Map(kg.Instances, func(ig grouping.InstanceGroup[T], _ int) InstanceGroup {
					return InstanceGroup{Index: ig.Index, Name: ig.Name, Metrics: compute(samples(ig.Entries))}
				})
			}
			group.Kernels = append(group.Kernels, out)
		}
		section.Groups = append(section.Groups, group)
	}
	return section
}

func samples[T any](entries []grouping.Entry[T]) []summary.Sample[T] {
	return lo.Map(entries, func(e grouping.Entry[T], _ int) summary.Sample[T] {
		return summary.Sample[T]{Kernel: e.Kernel, Detail: e.Detail}
	})
}

func sources(refs []profile.FileReference) []Source {
	return lo.Map(refs, func(f profile.FileReference, _ int) Source {
		s := Source{File: f.Filename, Line: uint32(f.Line), Callsite: sources(f.Callsite)}
		if f.Column != nil {
			s.Column = lo.ToPtr(uint32(*f.Column))
		}
		return s
	})
}

func globalMetrics(s []summary.Sample[*profile.Global]) Metrics {
	var m Metrics
	setOccupancy(&m, s)
	setStall(&m, s)
	setBandwidth(&m, s)
	eff := summary.Effectiveness(s)
	m.Efficiency = valuePtr(eff.Effective)
	m.BurstSize = valuePtr(eff.BurstSize)
	if eff.CacheHit != nil {
		m.CacheHit = valuePtr(*eff.CacheHit)
	}
	return m
}

func localMetrics(s []summary.Sample[*profile.Local]) Metrics {
	var m Metrics
	setOccupancy(&m, s)
	setStall(&m, s)
	return m
}

func channelMetrics(s []summary.Sample[*profile.Channel]) Metrics {
	var m Metrics
	setOccupancy(&m, s)
	setStall(&m, s)
	setBandwidth(&m, s)
	depth := summary.QueueDepth(s)
	m.ChannelDepth = valuePtr(depth.Average)
	m.MaxChannelDepth = lo.ToPtr(depth.Max)
	return m
}

func loopMetrics(s []summary.Sample[*profile.Loop]) Metrics {
	var m Metrics
	setOccupancy(&m, s)
	return m
}

func setOccupancy[T profile.Occupancy](m *Metrics, s []summary.Sample[T]) {
	m.Occupancy = valuePtr(summary.Occupancy(s))
}

func setStall[T profile.Stall](m *Metrics, s []summary.Sample[T]) {
	st := summary.Stall(s)
	m.Stall = valuePtr(st.Stall)
	m.Idle = valuePtr(st.Idle)
	m.Activity = valuePtr(st.Activity)
}

func setBandwidth[T profile.Bandwidth](m *Metrics, s []summary.Sample[T]) {
	m.Bandwidth = valuePtr(summary.Bandwidth(s))
}
