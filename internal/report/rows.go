package report

import (
	"strconv"
	"strings"
)

// Row is one metric of one group, for tabular output.
type Row struct {
	Section  string `header:"SECTION" json:"section"`
	Source   string `header:"SOURCE" json:"source"`
	Kernel   string `header:"KERNEL" json:"kernel,omitempty"`
	Instance string `header:"INSTANCE" json:"instance,omitempty"`
	Metric   string `header:"METRIC" json:"metric"`
	Value    string `header:"VALUE" json:"value"`
}

// Rows flattens the module-instance sections of r. Sources are rendered on a
// single line with callsites joined by " <- ".
func Rows(r *Report) []Row {
	var rows []Row
	for _, s := range r.Sections {
		for _, g := range s.Groups {
			base := Row{Section: s.Kind, Source: sourceLine(g.Source)}
			if g.Metrics != nil {
				rows = appendMetrics(rows, base, *g.Metrics)
				continue
			}
			for _, kg := range g.Kernels {
				kr := base
				kr.Kernel = kg.Kernel
				if kg.Metrics != nil {
					rows = appendMetrics(rows, kr, *kg.Metrics)
					continue
				}
				for _, ig := range kg.Instances {
					ir := kr
					ir.Instance = strconv.Itoa(ig.Index)
					rows = appendMetrics(rows, ir, ig.Metrics)
				}
			}
		}
	}
	return rows
}

func appendMetrics(rows []Row, base Row, m Metrics) []Row {
	add := func(name string, v *Value) {
		if v == nil {
			return
		}
		r := base
		r.Metric = name
		r.Value = v.String()
		rows = append(rows, r)
	}
	add("occupancy", m.Occupancy)
	add("stall", m.Stall)
	add("idle", m.Idle)
	add("activity", m.Activity)
	add("bandwidth", m.Bandwidth)
	add("efficiency", m.Efficiency)
	add("burst_size", m.BurstSize)
	add("cache_hit", m.CacheHit)
	add("channel_depth", m.ChannelDepth)
	if m.MaxChannelDepth != nil {
		r := base
		r.Metric = "max_channel_depth"
		r.Value = strconv.FormatUint(uint64(*m.MaxChannelDepth), 10)
		rows = append(rows, r)
	}
	return rows
}

func sourceLine(chain []Source) string {
	parts := make([]string, 0, len(chain))
	for _, s := range chain {
		part := s.String()
		if len(s.Callsite) > 0 {
			part += " <- " + sourceLine(s.Callsite)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "; ")
}
