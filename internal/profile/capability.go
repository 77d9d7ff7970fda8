package profile

// Metric capabilities. Each details variant implements the subset that its
// hardware reports, so aggregation is written once per capability:
//
//	          Interaction Occupancy Stall Bandwidth Effectiveness QueueDepth
//	Global    x           x         x     x         x
//	Local     x           x         x
//	Channel   x           x         x     x                       x
//	Loop                  x

// Interaction describes how a unit touches memory.
type Interaction interface {
	Operation() OperationType
	IsCoalesced() bool
}

// Occupancy reports the busy cycles of each interval.
type Occupancy interface {
	Occupancy() []Uint64
}

// Stall reports stalled, idle and active cycles of each interval.
type Stall interface {
	Stall() []Uint64
	Idle() []Uint64
	Activity() []Uint64
}

// Bandwidth reports the bandwidth of each interval in MB/s.
type Bandwidth interface {
	Bandwidth() []Float32
}

// Effectiveness reports how well global memory bursts were used. CacheHit
// may be empty when the unit has no cache.
type Effectiveness interface {
	BandwidthEfficiency() []Float32
	CacheHit() []Float32
	BurstSize() []Float32
}

// QueueDepth reports channel fill levels.
type QueueDepth interface {
	AverageDepth() []Float32
	MaxDepth() []Uint32
}

var (
	_ Interaction   = (*Global)(nil)
	_ Occupancy     = (*Global)(nil)
	_ Stall         = (*Global)(nil)
	_ Bandwidth     = (*Global)(nil)
	_ Effectiveness = (*Global)(nil)

	_ Interaction = (*Local)(nil)
	_ Occupancy   = (*Local)(nil)
	_ Stall       = (*Local)(nil)

	_ Interaction = (*Channel)(nil)
	_ Occupancy   = (*Channel)(nil)
	_ Stall       = (*Channel)(nil)
	_ Bandwidth   = (*Channel)(nil)
	_ QueueDepth  = (*Channel)(nil)

	_ Occupancy = (*Loop)(nil)
)

func (g *Global) Operation() OperationType       { return g.OperationType }
func (g *Global) IsCoalesced() bool              { return bool(g.CoalescedMemory) }
func (g *Global) Occupancy() []Uint64            { return g.OccupancySamples }
func (g *Global) Stall() []Uint64                { return g.StallSamples }
func (g *Global) Idle() []Uint64                 { return g.IdleSamples }
func (g *Global) Activity() []Uint64             { return g.ActivitySamples }
func (g *Global) Bandwidth() []Float32           { return g.BandwidthSamples }
func (g *Global) BandwidthEfficiency() []Float32 { return g.BandwidthEffSamples }
func (g *Global) CacheHit() []Float32            { return g.CacheHitSamples }
func (g *Global) BurstSize() []Float32           { return g.AverageBurstSize }

func (l *Local) Operation() OperationType { return l.OperationType }
func (l *Local) IsCoalesced() bool        { return bool(l.CoalescedMemory) }
func (l *Local) Occupancy() []Uint64      { return l.OccupancySamples }
func (l *Local) Stall() []Uint64          { return l.StallSamples }
func (l *Local) Idle() []Uint64           { return l.IdleSamples }
func (l *Local) Activity() []Uint64       { return l.ActivitySamples }

func (c *Channel) Operation() OperationType { return c.OperationType }
func (c *Channel) IsCoalesced() bool        { return bool(c.CoalescedMemory) }
func (c *Channel) Occupancy() []Uint64      { return c.OccupancySamples }
func (c *Channel) Stall() []Uint64          { return c.StallSamples }
func (c *Channel) Idle() []Uint64           { return c.IdleSamples }
func (c *Channel) Activity() []Uint64       { return c.ActivitySamples }
func (c *Channel) Bandwidth() []Float32     { return c.BandwidthSamples }
func (c *Channel) AverageDepth() []Float32  { return c.AverageChannelDepthSamples }
func (c *Channel) MaxDepth() []Uint32       { return c.MaxChannelDepthSamples }

func (l *Loop) Occupancy() []Uint64 { return l.OccupancySamples }
