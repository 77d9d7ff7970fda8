package summary

import (
	"slices"

	"github.com/samber/lo"

	"github.com/coral-mesh/fpgaprof/internal/profile"
)

// TransferSummary aggregates the host/device transfers of one kind.
type TransferSummary struct {
	Type  string
	Count int
	// Total is the plain sum of transfer durations.
	Total uint64
	// Busy is the merged time during which at least one transfer ran.
	Busy uint64
}

// Transfers groups memory transfers by type_transfer, sorted by type.
func Transfers(transfers []*profile.MemoryTransfers) []TransferSummary {
	byType := lo.GroupBy(transfers, func(t *profile.MemoryTransfers) string { return t.TypeTransfer })

	types := lo.Keys(byType)
	slices.Sort(types)

	return lo.Map(types, func(typ string, _ int) TransferSummary {
		group := byType[typ]
		spans := lo.Map(group, func(t *profile.MemoryTransfers, _ int) Span {
			return Span{Start: uint64(t.StartTime), End: uint64(t.EndTime)}
		})
		return TransferSummary{
			Type:  typ,
			Count: len(group),
			Total: lo.SumBy(spans, Span.Duration),
			Busy:  WallTime(spans),
		}
	})
}
