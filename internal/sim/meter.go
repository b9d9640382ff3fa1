package sim

import "github.com/tinygo-org/ledfield/pattern"

// DutyMeter keeps the last N patterns and reports, per channel, the fraction
// of them with the channel lit.
type DutyMeter struct {
	ring []pattern.Pattern
	next int
	full bool
	on   [pattern.Channels]int
}

// NewDutyMeter returns a meter over a window of n ticks. n below 1 is
// treated as 1.
func NewDutyMeter(n int) *DutyMeter {
	if n < 1 {
		n = 1
	}
	return &DutyMeter{ring: make([]pattern.Pattern, n)}
}

// Push records the pattern of one tick, evicting the oldest when full.
func (m *DutyMeter) Push(p pattern.Pattern) {
	if m.full {
		m.count(m.ring[m.next], -1)
	}
	m.ring[m.next] = p
	m.count(p, 1)
	m.next++
	if m.next == len(m.ring) {
		m.next = 0
		m.full = true
	}
}

func (m *DutyMeter) count(p pattern.Pattern, delta int) {
	for i := range m.on {
		if p.Bit(i) {
			m.on[i] += delta
		}
	}
}

// Len returns the number of ticks currently in the window.
func (m *DutyMeter) Len() int {
	if m.full {
		return len(m.ring)
	}
	return m.next
}

// Duty returns the lit fraction of each channel over the window.
func (m *DutyMeter) Duty() (d [pattern.Channels]float64) {
	n := m.Len()
	if n == 0 {
		return d
	}
	for i, on := range m.on {
		d[i] = float64(on) / float64(n)
	}
	return d
}
