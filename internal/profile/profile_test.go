package profile

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/coral-mesh/fpgaprof/internal/errors"
)

func loadFixture(t *testing.T) *Profile {
	t.Helper()
	data, err := os.ReadFile("testdata/profile.json")
	require.NoError(t, err)
	p, err := Parse(data)
	require.NoError(t, err)
	return p
}

func TestParse_Fixture(t *testing.T) {
	p := loadFixture(t)

	assert.Equal(t, "profile", p.JSONType)
	assert.Equal(t, "1.3", p.Versions.ProfilerJSONVersion)
	assert.Equal(t, "20.3.0", p.Versions.AOCXVersion)
	assert.Empty(t, p.ChannelNodes.Nodes)

	boards := p.Boards()
	require.Len(t, boards, 1)
	assert.Equal(t, "pac_s10_usm", boards[0].BoardType)
	mems := boards[0].GlobalMemories()
	require.Len(t, mems, 1)
	assert.Equal(t, "DDR", mems[0].Name)
	assert.Equal(t, Float32(76800), mems[0].MaxBandwidth)

	runInfo := p.RunInformation()
	require.Len(t, runInfo, 1)
	assert.InDelta(t, 301.5, float64(runInfo[0].Fmax), 1e-3)

	assert.Len(t, p.Transfers(), 3)

	kernels := p.Kernels()
	require.Len(t, kernels, 2)

	vadd := kernels[0]
	assert.Equal(t, "vadd", vadd.Name)
	assert.Equal(t, Int32(-1), vadd.SharedCounterRunType)
	assert.Equal(t, List[Uint64]{10, 20, 30}, vadd.SampleTimestamps)
	assert.False(t, bool(vadd.IsAutorun))
	assert.Len(t, vadd.ExternalMemories(), 1)

	instances := vadd.ModuleInstances()
	require.Len(t, instances, 4)

	global, ok := instances[0].Details.(*Global)
	require.True(t, ok, "first instance should be global memory")
	assert.Equal(t, OperationRead, global.Operation())
	assert.True(t, global.IsCoalesced())
	assert.Empty(t, global.CacheHit())
	require.Len(t, instances[0].SourceFiles, 1)
	require.NotNil(t, instances[0].SourceFiles[0].Column)
	assert.Equal(t, Uint32(9), *instances[0].SourceFiles[0].Column)
	assert.Equal(t, "src/main.cpp", instances[0].SourceFiles[0].Callsite[0].Filename)

	local, ok := instances[1].Details.(*Local)
	require.True(t, ok)
	assert.Empty(t, local.Stall(), "empty-string sentinel decodes to an empty list")

	channel, ok := instances[2].Details.(*Channel)
	require.True(t, ok)
	assert.Equal(t, []Uint32{2, 7, 4}, channel.MaxDepth())

	_, ok = instances[3].Details.(*Loop)
	assert.True(t, ok)

	scale := kernels[1]
	assert.Empty(t, scale.CommandQueueIDs, "command_queue_ids is optional")
	assert.True(t, bool(scale.IsAutorun))
}

func TestKernel_Intervals(t *testing.T) {
	k := &Kernel{
		StartTime:        5,
		EndTime:          40,
		SampleTimestamps: List[Uint64]{10, 25, 40},
	}
	assert.Equal(t, []uint64{5, 15, 15}, k.Intervals())
	assert.Equal(t, uint64(35), k.Duration())
}

// document builds a one-kernel profile and lets the test mutate the kernel
// object before encoding.
func document(t *testing.T, mutate func(kernel map[string]any)) []byte {
	t.Helper()
	kernel := map[string]any{
		"type":                         "kernel",
		"name":                         "k",
		"compute_unit":                 "0",
		"sourcefile":                   map[string]any{"filename": "k.cpp", "line": "1"},
		"device_ids":                   []string{"0"},
		"start_time":                   "0",
		"end_time":                     "10",
		"num_samples":                  "1",
		"shared_counter_run_type":      "0",
		"sample_timestamps":            []string{"10"},
		"total_cycles_between_samples": []string{"10"},
		"is_autorun":                   "false",
		"children":                     "",
	}
	if mutate != nil {
		mutate(kernel)
	}
	data, err := json.Marshal(map[string]any{
		"json_type":    "profile",
		"versions":     map[string]any{"profiler_json_version": "1", "aocx_version": "1"},
		"kernels":      map[string]any{"nodes": []any{kernel}},
		"boards":       map[string]any{"nodes": ""},
		"memtransfers": map[string]any{"nodes": ""},
		"channels":     map[string]any{"nodes": ""},
		"run_info":     map[string]any{"nodes": ""},
	})
	require.NoError(t, err)
	return data
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(kernel map[string]any)
		wantErr string
	}{
		{
			name:    "unknown node tag",
			mutate:  func(k map[string]any) { k["type"] = "gpu" },
			wantErr: `schema error at $.kernels.nodes[0].type: unknown variant "gpu"`,
		},
		{
			name:    "missing node tag",
			mutate:  func(k map[string]any) { delete(k, "type") },
			wantErr: `schema error at $.kernels.nodes[0].type: missing union tag`,
		},
		{
			name:    "missing required field",
			mutate:  func(k map[string]any) { delete(k, "end_time") },
			wantErr: `schema error at $.kernels.nodes[0].end_time: missing required field`,
		},
		{
			name:    "non numeric field",
			mutate:  func(k map[string]any) { k["start_time"] = "soon" },
			wantErr: `schema error at $.kernels.nodes[0].start_time: invalid value "soon": invalid syntax`,
		},
		{
			name:    "native number",
			mutate:  func(k map[string]any) { k["num_samples"] = 1 },
			wantErr: `schema error at $.kernels.nodes[0].num_samples: expected string-encoded value, got number`,
		},
		{
			name:    "non-empty string for array",
			mutate:  func(k map[string]any) { k["device_ids"] = "0" },
			wantErr: `schema error at $.kernels.nodes[0].device_ids: non-empty string instead of array not supported`,
		},
		{
			name: "unknown child tag",
			mutate: func(k map[string]any) {
				k["children"] = []any{map[string]any{"type": "dsp"}}
			},
			wantErr: `schema error at $.kernels.nodes[0].children[0].type: unknown variant "dsp"`,
		},
		{
			name: "unknown details tag",
			mutate: func(k map[string]any) {
				k["children"] = []any{map[string]any{
					"type":                "moduleinst",
					"name":                "m",
					"sourcefiles":         "",
					"module_inst_details": map[string]any{"mem_type": "__stack"},
				}}
			},
			wantErr: `schema error at $.kernels.nodes[0].children[0].module_inst_details.mem_type: unknown variant "__stack"`,
		},
		{
			name: "nested callsite error",
			mutate: func(k map[string]any) {
				k["sourcefile"] = map[string]any{
					"filename": "k.cpp",
					"line":     "1",
					"callsite": []any{map[string]any{"filename": "main.cpp", "line": "x"}},
				}
			},
			wantErr: `schema error at $.kernels.nodes[0].sourcefile.callsite[0].line: invalid value "x"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(document(t, tt.mutate))
			require.Error(t, err)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, apperrors.ErrSchema)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParse_Minimal(t *testing.T) {
	p, err := Parse(document(t, nil))
	require.NoError(t, err)
	require.Len(t, p.Kernels(), 1)
	assert.Empty(t, p.Kernels()[0].Children)
	assert.Empty(t, p.Boards())
	assert.Empty(t, p.Transfers())
}

func TestParse_CollectionSentinel(t *testing.T) {
	data := []byte(`{"json_type":"p","versions":{"profiler_json_version":"1","aocx_version":"1"},
		"kernels":{"nodes":""},"boards":{"nodes":"none"},"memtransfers":{"nodes":""},
		"channels":{"nodes":""},"run_info":{"nodes":""}}`)

	_, err := Parse(data)
	require.ErrorIs(t, err, apperrors.ErrSchema)
	assert.EqualError(t, err, "schema error at $.boards.nodes: non-empty string instead of array not supported")
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse([]byte(`{"json_type":`))
	require.ErrorIs(t, err, apperrors.ErrSchema)

	var syntax *json.SyntaxError
	assert.ErrorAs(t, err, &syntax)
}
