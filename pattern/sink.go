package pattern

// Sink latches output lines. Only the bits set in mask may change; every
// other line of the port keeps its current level.
//
// WriteMasked is called from the tick handler: implementations must not block
// or allocate.
type Sink interface {
	WriteMasked(value, mask uint8)
}

// MemPort is an in-memory 8-bit output port with read-modify-write
// semantics. The zero value is a port with every line low.
type MemPort struct {
	value  uint8
	writes uint32
}

// NewMemPort returns a port whose lines start at initial.
func NewMemPort(initial uint8) *MemPort {
	return &MemPort{value: initial}
}

// WriteMasked implements Sink.
func (p *MemPort) WriteMasked(value, mask uint8) {
	p.value = p.value&^mask | value&mask
	p.writes++
}

// Value returns the current level of all eight lines.
func (p *MemPort) Value() uint8 { return p.value }

// Writes returns the number of WriteMasked calls since creation.
func (p *MemPort) Writes() uint32 { return p.writes }
