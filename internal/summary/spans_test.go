package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coral-mesh/fpgaprof/internal/profile"
)

func TestMergeSpans(t *testing.T) {
	tests := []struct {
		name  string
		spans []Span
		want  []Span
		wall  uint64
	}{
		{
			name:  "overlap",
			spans: []Span{{0, 100}, {50, 150}, {200, 250}},
			want:  []Span{{0, 150}, {200, 250}},
			wall:  200,
		},
		{
			name:  "unsorted input",
			spans: []Span{{200, 250}, {50, 150}, {0, 100}},
			want:  []Span{{0, 150}, {200, 250}},
			wall:  200,
		},
		{
			name:  "touching spans merge",
			spans: []Span{{0, 10}, {10, 20}},
			want:  []Span{{0, 20}},
			wall:  20,
		},
		{
			name:  "contained span keeps outer end",
			spans: []Span{{0, 100}, {10, 20}},
			want:  []Span{{0, 100}},
			wall:  100,
		},
		{
			name:  "duplicates",
			spans: []Span{{5, 9}, {5, 9}, {5, 9}},
			want:  []Span{{5, 9}},
			wall:  4,
		},
		{
			name:  "disjoint",
			spans: []Span{{0, 1}, {2, 3}},
			want:  []Span{{0, 1}, {2, 3}},
			wall:  2,
		},
		{
			name: "empty",
			wall: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MergeSpans(tt.spans))
			assert.Equal(t, tt.wall, WallTime(tt.spans))
		})
	}
}

func TestMergeSpans_DoesNotModifyInput(t *testing.T) {
	spans := []Span{{50, 150}, {0, 100}}
	MergeSpans(spans)
	assert.Equal(t, []Span{{50, 150}, {0, 100}}, spans)
}

func TestExternalMemory(t *testing.T) {
	a := kernel(0, 100, 100)
	a.Children = profile.Children{
		&profile.ExternalMemory{Name: "DDR", Port: "0",
			GlobalUsedBW: f32s(10), AvgWriteBurst: f32s(2), AvgReadBurst: f32s(4)},
		&profile.ExternalMemory{Name: "DDR", Port: "1",
			GlobalUsedBW: f32s(1), AvgWriteBurst: f32s(1), AvgReadBurst: f32s(1)},
	}
	b := kernel(0, 100, 100)
	b.Children = profile.Children{
		&profile.ExternalMemory{Name: "DDR", Port: "0",
			GlobalUsedBW: f32s(10), AvgWriteBurst: f32s(4), AvgReadBurst: f32s(4)},
		&profile.ExternalMemory{Name: "BANK", Port: "0",
			GlobalUsedBW: f32s(5), AvgWriteBurst: f32s(5), AvgReadBurst: f32s(5)},
	}

	got := ExternalMemory([]*profile.Kernel{a, b})
	assert.Equal(t, []PortBandwidth{
		{Name: "BANK", Port: "0", Bandwidth: 5, WriteBurst: 5, ReadBurst: 5, Time: 100},
		// Overlapping kernels are summed: 2000 / 200, not 2000 / 100.
		{Name: "DDR", Port: "0", Bandwidth: 10, WriteBurst: 3, ReadBurst: 4, Time: 200},
		{Name: "DDR", Port: "1", Bandwidth: 1, WriteBurst: 1, ReadBurst: 1, Time: 100},
	}, got)
}

func TestExternalMemory_NoKernels(t *testing.T) {
	assert.Empty(t, ExternalMemory(nil))
}

func TestTransfers(t *testing.T) {
	transfers := []*profile.MemoryTransfers{
		{TypeTransfer: "write_buffer", StartTime: 0, EndTime: 40},
		{TypeTransfer: "read_buffer", StartTime: 300, EndTime: 310},
		{TypeTransfer: "write_buffer", StartTime: 20, EndTime: 60},
	}
	assert.Equal(t, []TransferSummary{
		{Type: "read_buffer", Count: 1, Total: 10, Busy: 10},
		{Type: "write_buffer", Count: 2, Total: 80, Busy: 60},
	}, Transfers(transfers))
}
