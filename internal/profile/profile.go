// Package profile models the JSON profiling report emitted by the FPGA
// compiler toolchain.
//
// The document is loosely typed: every number, boolean and enum is a JSON
// string, empty collections may be written as "" instead of [], and node
// kinds are tagged unions. Parse turns it into an immutable typed tree and
// fails with an errors.ErrSchema error on any structural mismatch.
package profile

import (
	"encoding/json"

	"github.com/samber/lo"

	apperrors "github.com/coral-mesh/fpgaprof/internal/errors"
)

// Profile is the document root.
type Profile struct {
	JSONType      string   `json:"json_type"`
	Versions      Versions `json:"versions"`
	KernelNodes   NodeList `json:"kernels"`
	BoardNodes    NodeList `json:"boards"`
	TransferNodes NodeList `json:"memtransfers"`
	ChannelNodes  NodeList `json:"channels"`
	RunInfoNodes  NodeList `json:"run_info"`
}

// Versions identifies the profiler that wrote the document and the
// bitstream it profiled.
type Versions struct {
	ProfilerJSONVersion string `json:"profiler_json_version"`
	AOCXVersion         string `json:"aocx_version"`
}

// NodeList is the {"nodes": ...} wrapper used by every top-level collection.
type NodeList struct {
	Nodes Nodes `json:"nodes"`
}

// Parse decodes a complete profiling document.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, apperrors.Schema(err)
	}
	return &p, nil
}

func (p *Profile) UnmarshalJSON(data []byte) error {
	type plain Profile
	return decodeObject(data, (*plain)(p))
}

func (v *Versions) UnmarshalJSON(data []byte) error {
	type plain Versions
	return decodeObject(data, (*plain)(v))
}

func (n *NodeList) UnmarshalJSON(data []byte) error {
	type plain NodeList
	return decodeObject(data, (*plain)(n))
}

// Kernels returns every kernel invocation in document order.
func (p *Profile) Kernels() []*Kernel {
	return nodesOf[*Kernel](p.KernelNodes.Nodes)
}

// Boards returns the boards the kernels ran on.
func (p *Profile) Boards() []*Board {
	return nodesOf[*Board](p.BoardNodes.Nodes)
}

// Transfers returns the host/device memory transfer records.
func (p *Profile) Transfers() []*MemoryTransfers {
	return nodesOf[*MemoryTransfers](p.TransferNodes.Nodes)
}

// RunInformation returns the achieved clock records.
func (p *Profile) RunInformation() []*RunInformation {
	return nodesOf[*RunInformation](p.RunInfoNodes.Nodes)
}

func nodesOf[T Node](nodes Nodes) []T {
	return lo.FilterMap(nodes, func(n Node, _ int) (T, bool) {
		t, ok := n.(T)
		return t, ok
	})
}

// Node is one entry of a top-level collection, discriminated by "type".
type Node interface {
	NodeType() string
	isNode()
}

// Nodes is a list of tagged nodes, accepting the "" sentinel for none.
type Nodes []Node

func (n *Nodes) UnmarshalJSON(data []byte) error {
	nodes, err := decodeList(data, decodeNode)
	*n = nodes
	return err
}

func decodeNode(data []byte) (Node, error) {
	tag, err := unionTag(data, "type")
	if err != nil {
		return nil, err
	}
	switch tag {
	case "kernel":
		return decodeVariant[Node](data, &Kernel{})
	case "board":
		return decodeVariant[Node](data, &Board{})
	case "memtransfers":
		return decodeVariant[Node](data, &MemoryTransfers{})
	case "runinfo":
		return decodeVariant[Node](data, &RunInformation{})
	}
	return nil, unknownTag("type", tag)
}

// Kernel is one compiled kernel invocation and the per-interval samples
// recorded for its hardware.
//
// SampleTimestamps and TotalCyclesBetweenSamples both hold NumSamples
// entries, and StartTime <= SampleTimestamps[0] <= ... <= EndTime is
// assumed but not checked.
type Kernel struct {
	Name                      string        `json:"name"`
	ComputeUnit               Uint32        `json:"compute_unit"`
	SourceFile                FileReference `json:"sourcefile"`
	DeviceIDs                 List[Uint32]  `json:"device_ids"`
	CommandQueueIDs           List[Uint32]  `json:"command_queue_ids,omitempty"`
	StartTime                 Uint64        `json:"start_time"`
	EndTime                   Uint64        `json:"end_time"`
	NumSamples                Uint32        `json:"num_samples"`
	SharedCounterRunType      Int32         `json:"shared_counter_run_type"`
	SampleTimestamps          List[Uint64]  `json:"sample_timestamps"`
	TotalCyclesBetweenSamples List[Uint64]  `json:"total_cycles_between_samples"`
	IsAutorun                 Bool          `json:"is_autorun"`
	Children                  Children      `json:"children"`
}

func (*Kernel) NodeType() string { return "kernel" }
func (*Kernel) isNode()          {}

func (k *Kernel) UnmarshalJSON(data []byte) error {
	type plain Kernel
	return decodeObject(data, (*plain)(k))
}

// Duration is the kernel's wall time in cycles.
func (k *Kernel) Duration() uint64 {
	return uint64(k.EndTime) - uint64(k.StartTime)
}

// Intervals returns the length of each sample interval. The first interval
// starts at StartTime, the others at the previous sample timestamp.
func (k *Kernel) Intervals() []uint64 {
	out := make([]uint64, len(k.SampleTimestamps))
	prev := uint64(k.StartTime)
	for i, ts := range k.SampleTimestamps {
		out[i] = uint64(ts) - prev
		prev = uint64(ts)
	}
	return out
}

// ModuleInstances returns the hardware module children of the kernel.
func (k *Kernel) ModuleInstances() []*ModuleInstance {
	return childrenOf[*ModuleInstance](k.Children)
}

// ExternalMemories returns the board I/O children of the kernel.
func (k *Kernel) ExternalMemories() []*ExternalMemory {
	return childrenOf[*ExternalMemory](k.Children)
}

// Board describes the accelerator card and its global memories.
type Board struct {
	BoardType string   `json:"board_type"`
	Children  Children `json:"children"`
}

func (*Board) NodeType() string { return "board" }
func (*Board) isNode()          {}

func (b *Board) UnmarshalJSON(data []byte) error {
	type plain Board
	return decodeObject(data, (*plain)(b))
}

// GlobalMemories returns the global memory descriptors of the board.
func (b *Board) GlobalMemories() []*GlobalMemory {
	return childrenOf[*GlobalMemory](b.Children)
}

// MemoryTransfers is one host/device transfer.
type MemoryTransfers struct {
	TypeTransfer   string `json:"type_transfer"`
	DeviceID       Uint32 `json:"device_id"`
	CommandQueueID Uint32 `json:"command_queue_id"`
	StartTime      Uint64 `json:"start_time"`
	EndTime        Uint64 `json:"end_time"`
}

func (*MemoryTransfers) NodeType() string { return "memtransfers" }
func (*MemoryTransfers) isNode()          {}

func (m *MemoryTransfers) UnmarshalJSON(data []byte) error {
	type plain MemoryTransfers
	return decodeObject(data, (*plain)(m))
}

// RunInformation carries the achieved clock frequency in MHz.
type RunInformation struct {
	Fmax Float32 `json:"fmax"`
}

func (*RunInformation) NodeType() string { return "runinfo" }
func (*RunInformation) isNode()          {}

func (r *RunInformation) UnmarshalJSON(data []byte) error {
	type plain RunInformation
	return decodeObject(data, (*plain)(r))
}
