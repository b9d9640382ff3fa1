package pattern

import (
	"context"
	"errors"
	"time"
)

// DefaultPeriod is the tick period of the reference design.
const DefaultPeriod = time.Millisecond

var ErrBadPeriod = errors.New("pattern: tick period must be positive")

// Ticker is a software tick source that calls a function once per period.
// Targets with a dedicated timer interrupt should prefer it; see
// portlib.StartTimer1.
type Ticker struct {
	period time.Duration
}

// NewTicker returns a tick source firing every period.
func NewTicker(period time.Duration) (*Ticker, error) {
	if period <= 0 {
		return nil, ErrBadPeriod
	}
	return &Ticker{period: period}, nil
}

// Period returns the configured tick period.
func (t *Ticker) Period() time.Duration { return t.period }

// Run calls fn once per period until ctx is done and returns ctx.Err().
// fn runs synchronously on the calling goroutine, so it is never re-entered.
// Ticks that fall due while fn is still running are dropped by the
// underlying time.Ticker rather than queued.
func (t *Ticker) Run(ctx context.Context, fn func()) error {
	tk := time.NewTicker(t.period)
	defer tk.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tk.C:
			fn()
		}
	}
}
