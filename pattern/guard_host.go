//go:build !tinygo

package pattern

import "sync"

// guard serializes engine access when ticks and readers run on different
// goroutines.
type guard struct {
	mu sync.Mutex
}

func (g *guard) lock() { g.mu.Lock() }

func (g *guard) unlock() { g.mu.Unlock() }
