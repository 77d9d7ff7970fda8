package summary

import (
	"cmp"
	"slices"
)

// Span is a [Start, End] execution window in cycles.
type Span struct {
	Start uint64
	End   uint64
}

// Duration is End - Start.
func (s Span) Duration() uint64 {
	return s.End - s.Start
}

// MergeSpans returns the union of spans as disjoint windows sorted by start.
// Windows that overlap or touch (next.Start <= current.End) are joined.
func MergeSpans(spans []Span) []Span {
	sorted := slices.Clone(spans)
	slices.SortFunc(sorted, func(a, b Span) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.End, b.End)
	})
	sorted = slices.Compact(sorted)

	var merged []Span
	for _, s := range sorted {
		n := len(merged)
		if n > 0 && s.Start <= merged[n-1].End {
			merged[n-1].End = max(merged[n-1].End, s.End)
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

// WallTime is the total duration of the merged spans.
func WallTime(spans []Span) uint64 {
	var total uint64
	for _, s := range MergeSpans(spans) {
		total += s.Duration()
	}
	return total
}
