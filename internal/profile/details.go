package profile

// Details is the per-kind sample payload of a module instance, discriminated
// by "mem_type". Every sample array is indexed by the owning kernel's sample
// intervals.
type Details interface {
	MemType() string
	isDetails()
}

func decodeDetails(data []byte) (Details, error) {
	tag, err := unionTag(data, "mem_type")
	if err != nil {
		return nil, err
	}
	switch tag {
	case "__global":
		return decodeVariant[Details](data, &Global{})
	case "__local":
		return decodeVariant[Details](data, &Local{})
	case "__channel":
		return decodeVariant[Details](data, &Channel{})
	case "__loop":
		return decodeVariant[Details](data, &Loop{})
	}
	return nil, unknownTag("mem_type", tag)
}

// Global is a load/store unit on global memory.
type Global struct {
	OperationType       OperationType `json:"operation_type"`
	OccupancySamples    List[Uint64]  `json:"occupancy_samples"`
	StallSamples        List[Uint64]  `json:"stall_samples"`
	IdleSamples         List[Uint64]  `json:"idle_samples"`
	ActivitySamples     List[Uint64]  `json:"activity_samples"`
	BandwidthSamples    List[Float32] `json:"bandwidth_samples"`
	BandwidthEffSamples List[Float32] `json:"bandwidth_eff_samples"`
	CacheHitSamples     List[Float32] `json:"cache_hit_samples,omitempty"`
	CoalescedMemory     Bool          `json:"coalesced_memory"`
	GlobalMemName       string        `json:"global_mem_name"`
	AverageBurstSize    List[Float32] `json:"average_burst_size"`
}

func (*Global) MemType() string { return "__global" }
func (*Global) isDetails()      {}

func (g *Global) UnmarshalJSON(data []byte) error {
	type plain Global
	return decodeObject(data, (*plain)(g))
}

// Local is a load/store unit on on-chip memory.
type Local struct {
	OperationType    OperationType `json:"operation_type"`
	OccupancySamples List[Uint64]  `json:"occupancy_samples"`
	StallSamples     List[Uint64]  `json:"stall_samples"`
	IdleSamples      List[Uint64]  `json:"idle_samples"`
	ActivitySamples  List[Uint64]  `json:"activity_samples"`
	CoalescedMemory  Bool          `json:"coalesced_memory"`
}

func (*Local) MemType() string { return "__local" }
func (*Local) isDetails()      {}

func (l *Local) UnmarshalJSON(data []byte) error {
	type plain Local
	return decodeObject(data, (*plain)(l))
}

// Channel is one endpoint of an inter-kernel FIFO.
type Channel struct {
	OperationType              OperationType `json:"operation_type"`
	OccupancySamples           List[Uint64]  `json:"occupancy_samples"`
	StallSamples               List[Uint64]  `json:"stall_samples"`
	IdleSamples                List[Uint64]  `json:"idle_samples"`
	ActivitySamples            List[Uint64]  `json:"activity_samples"`
	AverageChannelDepthSamples List[Float32] `json:"average_channel_depth_samples"`
	MaxChannelDepthSamples     List[Uint32]  `json:"max_channel_depth_samples"`
	BandwidthSamples           List[Float32] `json:"bandwidth_samples"`
	CoalescedMemory            Bool          `json:"coalesced_memory"`
}

func (*Channel) MemType() string { return "__channel" }
func (*Channel) isDetails()      {}

func (c *Channel) UnmarshalJSON(data []byte) error {
	type plain Channel
	return decodeObject(data, (*plain)(c))
}

// Loop is a pipelined loop body.
type Loop struct {
	OccupancySamples List[Uint64] `json:"occupancy_samples"`
}

func (*Loop) MemType() string { return "__loop" }
func (*Loop) isDetails()      {}

func (l *Loop) UnmarshalJSON(data []byte) error {
	type plain Loop
	return decodeObject(data, (*plain)(l))
}
