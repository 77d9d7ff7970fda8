package profile

import "github.com/samber/lo"

// Child is an entry under a kernel or board, discriminated by "type".
type Child interface {
	ChildType() string
	isChild()
}

// Children is a list of tagged children, accepting the "" sentinel for none.
type Children []Child

func (c *Children) UnmarshalJSON(data []byte) error {
	children, err := decodeList(data, decodeChild)
	*c = children
	return err
}

func decodeChild(data []byte) (Child, error) {
	tag, err := unionTag(data, "type")
	if err != nil {
		return nil, err
	}
	switch tag {
	case "moduleinst":
		return decodeVariant[Child](data, &ModuleInstance{})
	case "globalmem":
		return decodeVariant[Child](data, &GlobalMemory{})
	case "extmem":
		return decodeVariant[Child](data, &ExternalMemory{})
	}
	return nil, unknownTag("type", tag)
}

func childrenOf[T Child](children Children) []T {
	return lo.FilterMap(children, func(c Child, _ int) (T, bool) {
		t, ok := c.(T)
		return t, ok
	})
}

// ModuleInstance is one hardware block generated for a kernel.
type ModuleInstance struct {
	Name string
	// SourceFiles attributes the block to source, most specific first.
	SourceFiles []FileReference
	Details     Details
}

func (*ModuleInstance) ChildType() string { return "moduleinst" }
func (*ModuleInstance) isChild()          {}

func (m *ModuleInstance) UnmarshalJSON(data []byte) error {
	var wire struct {
		Name        string              `json:"name"`
		SourceFiles List[FileReference] `json:"sourcefiles"`
		Details     detailsField        `json:"module_inst_details"`
	}
	if err := decodeObject(data, &wire); err != nil {
		return err
	}
	m.Name = wire.Name
	m.SourceFiles = wire.SourceFiles
	m.Details = wire.Details.Details
	return nil
}

type detailsField struct {
	Details Details
}

func (d *detailsField) UnmarshalJSON(data []byte) error {
	details, err := decodeDetails(data)
	d.Details = details
	return err
}

// GlobalMemory describes one global memory of a board.
type GlobalMemory struct {
	Name string `json:"global_memory_name"`
	// MaxBandwidth is the theoretical peak in MB/s.
	MaxBandwidth  Float32 `json:"max_theoretical_globalmem_bw"`
	MaxBurstCount Float32 `json:"max_burst_count"`
}

func (*GlobalMemory) ChildType() string { return "globalmem" }
func (*GlobalMemory) isChild()          {}

func (g *GlobalMemory) UnmarshalJSON(data []byte) error {
	type plain GlobalMemory
	return decodeObject(data, (*plain)(g))
}

// ExternalMemory holds the board I/O samples of one memory port, aligned
// with the owning kernel's sample timeline.
type ExternalMemory struct {
	Name          string        `json:"name"`
	Interface     string        `json:"interface"`
	Port          string        `json:"port"`
	GlobalUsedBW  List[Float32] `json:"global_used_bw"`
	AvgWriteBurst List[Float32] `json:"avg_write_burst"`
	AvgReadBurst  List[Float32] `json:"avg_read_burst"`
}

func (*ExternalMemory) ChildType() string { return "extmem" }
func (*ExternalMemory) isChild()          {}

func (e *ExternalMemory) UnmarshalJSON(data []byte) error {
	type plain ExternalMemory
	return decodeObject(data, (*plain)(e))
}
