package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	sourceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	kernelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// CallsiteMarker prefixes each inlining level of a source chain.
const CallsiteMarker = "⮤ "

// TextOptions controls WriteText.
type TextOptions struct {
	// Color styles section titles, sources and kernel headers.
	Color bool
}

type textWriter struct {
	w     io.Writer
	color bool
	err   error
}

func (t *textWriter) line(depth int, format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, "%s%s\n", strings.Repeat("\t", depth), fmt.Sprintf(format, args...))
}

func (t *textWriter) styled(style lipgloss.Style, s string) string {
	if !t.color {
		return s
	}
	return style.Render(s)
}

// WriteText renders r as tab-indented text, one section after the other.
func WriteText(w io.Writer, r *Report, opts TextOptions) error {
	t := &textWriter{w: w, color: opts.Color}

	t.line(0, "%s: %s (aocx: %s)", r.JSONType, r.ProfilerVersion, r.AOCXVersion)

	t.line(0, "%s", t.styled(titleStyle, "Boards:"))
	for _, b := range r.Boards {
		t.line(1, "Type: %s", b.Type)
		t.line(1, "Global memory:")
		for _, g := range b.GlobalMemories {
			t.line(2, "Memory %s:", g.Name)
			t.line(3, "Maximum theoretical global bandwidth: %s MB/s", g.MaxBandwidth)
			t.line(3, "Maximum burst: %s", g.MaxBurst)
		}
	}

	t.line(0, "%s", t.styled(titleStyle, "Run information:"))
	for _, ri := range r.RunInformation {
		t.line(1, "Fmax: %s MHz", ri.FmaxMHz)
	}

	t.line(0, "%s", t.styled(titleStyle, "External memory:"))
	for _, em := range r.ExternalMemory {
		t.line(1, "Memory %s:", em.Name)
		for _, p := range em.Ports {
			t.line(2, "Port %s:", p.Port)
			t.line(3, "Bandwidth: %.2f MB/s", p.Bandwidth)
			t.line(3, "Write burst: %.2f", p.WriteBurst)
			t.line(3, "Read burst: %.2f", p.ReadBurst)
		}
	}

	for _, s := range r.Sections {
		t.line(0, "%s", t.styled(titleStyle, s.Title+":"))
		for _, g := range s.Groups {
			t.writeGroup(g)
		}
	}

	if len(r.Transfers) > 0 {
		t.line(0, "%s", t.styled(titleStyle, "Memory transfers:"))
		for _, tr := range r.Transfers {
			t.line(1, "Type %s:", tr.Type)
			t.line(2, "Count: %d", tr.Count)
			t.line(2, "Total time: %d cycles", tr.Total)
			t.line(2, "Busy time: %d cycles", tr.Busy)
		}
	}

	return t.err
}

func (t *textWriter) writeGroup(g Group) {
	lines := SourceLines(g.Source)
	if len(lines) == 0 {
		// Instances without source attribution still get a header.
		lines = []string{""}
	}
	for i, l := range lines {
		if i == len(lines)-1 {
			l += ":"
		}
		t.line(1, "%s", t.styled(sourceStyle, l))
	}

	if g.Metrics != nil {
		t.writeMetrics(2, *g.Metrics)
		return
	}
	for _, kg := range g.Kernels {
		t.line(2, "%s", t.styled(kernelStyle, "Kernel "+kg.Kernel+":"))
		if kg.Metrics != nil {
			t.writeMetrics(3, *kg.Metrics)
			continue
		}
		for _, ig := range kg.Instances {
			t.line(3, "Instance %d:", ig.Index)
			t.writeMetrics(4, ig.Metrics)
		}
	}
}

func (t *textWriter) writeMetrics(depth int, m Metrics) {
	if m.Occupancy != nil {
		t.line(depth, "Occupancy: %.2f %%", *m.Occupancy)
	}
	if m.Stall != nil {
		t.line(depth, "Stall: %.2f %%", *m.Stall)
		t.line(depth, "Idle: %.2f %%", *m.Idle)
		t.line(depth, "Activity: %.2f %%", *m.Activity)
	}
	if m.Bandwidth != nil {
		t.line(depth, "Bandwidth: %.2f MB/s", *m.Bandwidth)
	}
	if m.Efficiency != nil {
		t.line(depth, "Efficiency: %.2f %%", *m.Efficiency)
		t.line(depth, "Burst size: %.2f", *m.BurstSize)
	}
	if m.CacheHit != nil {
		t.line(depth, "Cache hit: %.2f %%", *m.CacheHit)
	}
	if m.ChannelDepth != nil {
		t.line(depth, "Channel Depth: %.2f (maximum: %d)", *m.ChannelDepth, *m.MaxChannelDepth)
	}
}

// SourceLines renders an attribution chain one reference per line. Callsites
// follow their reference, indented by level and prefixed with
// CallsiteMarker.
func SourceLines(chain []Source) []string {
	var lines []string
	var walk func(refs []Source, level int)
	walk = func(refs []Source, level int) {
		prefix := ""
		if level > 0 {
			prefix = strings.Repeat("  ", level-1) + CallsiteMarker
		}
		for _, s := range refs {
			lines = append(lines, prefix+s.String())
			walk(s.Callsite, level+1)
		}
	}
	walk(chain, 0)
	return lines
}

// String renders the reference without its callsites.
func (s Source) String() string {
	if s.Column != nil {
		return fmt.Sprintf("%s (line: %d, column: %d)", s.File, s.Line, *s.Column)
	}
	return fmt.Sprintf("%s (line: %d)", s.File, s.Line)
}
