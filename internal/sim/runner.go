package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/tinygo-org/ledfield/pattern"
)

// portShift places the simulated indicators on lines 4..7, as on the
// reference board.
const portShift = 4

// overrunLogEvery limits overrun warnings to the first one and then one per
// this many.
const overrunLogEvery = 1000

// Summary describes a finished run.
type Summary struct {
	Ticks    uint64
	Overruns uint64
	MaxTick  time.Duration
	Final    pattern.Vec
	Duty     [pattern.Channels]float64
}

// Runner drives an engine against an in-memory port.
type Runner struct {
	cfg      Config
	engine   *pattern.Engine
	port     *pattern.MemPort
	meter    *DutyMeter
	metrics  *Metrics
	renderer *Renderer
	out      io.Writer
	log      *slog.Logger

	ticks      uint64
	overruns   uint64
	maxTick    time.Duration
	lastRender time.Time
}

// NewRunner validates cfg and builds a fresh engine at tick zero. Frames are
// written to out; metrics may be nil.
func NewRunner(cfg Config, out io.Writer, renderer *Renderer, metrics *Metrics, logger *slog.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	port := pattern.NewMemPort(0)
	engine, err := pattern.New(port, portShift)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if renderer == nil {
		renderer = NewRenderer(false)
	}
	return &Runner{
		cfg:      cfg,
		engine:   engine,
		port:     port,
		meter:    NewDutyMeter(cfg.DutyWindow),
		metrics:  metrics,
		renderer: renderer,
		out:      out,
		log:      logger,
	}, nil
}

// Engine returns the engine being driven.
func (r *Runner) Engine() *pattern.Engine { return r.engine }

// Port returns the simulated output port.
func (r *Runner) Port() *pattern.MemPort { return r.port }

// Run ticks the engine in real time until ctx is done or the configured
// number of ticks has run. Cancellation is not an error.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	ticker, err := pattern.NewTicker(r.cfg.Period)
	if err != nil {
		return Summary{}, fmt.Errorf("sim: %w", err)
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r.log.Info("simulation started",
		"period", r.cfg.Period,
		"ticks", r.cfg.Ticks,
		"duty_window", r.cfg.DutyWindow)
	done := func() bool { return r.cfg.Ticks > 0 && r.ticks >= r.cfg.Ticks }
	err = ticker.Run(ctx, func() {
		if done() {
			return
		}
		r.step()
		if time.Since(r.lastRender) >= r.cfg.RenderEvery {
			r.render()
		}
		if done() {
			cancel()
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return r.Summary(), err
	}
	r.render()
	s := r.Summary()
	r.log.Info("simulation stopped",
		"ticks", s.Ticks,
		"overruns", s.Overruns,
		"max_tick", s.MaxTick)
	return s, nil
}

// step runs one engine tick and records its cost.
func (r *Runner) step() {
	start := time.Now()
	r.engine.Tick()
	took := time.Since(start)

	r.ticks++
	r.maxTick = max(r.maxTick, took)
	r.meter.Push(r.engine.Pattern())

	overran := took > r.cfg.Period
	if r.metrics != nil {
		overran = r.metrics.ObserveTick(took, r.cfg.Period)
	}
	if overran {
		r.overruns++
		if r.overruns%overrunLogEvery == 1 {
			r.log.Warn("tick exceeded its period",
				"tick", r.engine.TickCount()-1,
				"took", took,
				"period", r.cfg.Period,
				"overruns", r.overruns)
		}
	}
}

func (r *Runner) render() {
	r.lastRender = time.Now()
	duty := r.meter.Duty()
	if r.metrics != nil {
		r.metrics.SetDuty(duty)
	}
	if r.out == nil {
		return
	}
	line := r.renderer.Render(Frame{
		Tick:    r.engine.TickCount(),
		State:   r.engine.State(),
		Pattern: r.engine.Pattern(),
		Duty:    duty,
	})
	fmt.Fprintln(r.out, line)
}

// Summary returns the statistics gathered so far.
func (r *Runner) Summary() Summary {
	return Summary{
		Ticks:    r.ticks,
		Overruns: r.overruns,
		MaxTick:  r.maxTick,
		Final:    r.engine.State(),
		Duty:     r.meter.Duty(),
	}
}

// Trace runs n ticks as fast as possible, starting at tick start, and writes
// one line per every ticks: the tick that produced the state, the four
// channel values and the output pattern. every of zero only writes the last
// tick.
func Trace(w io.Writer, start uint32, n, every uint64) (pattern.Vec, error) {
	port := pattern.NewMemPort(0)
	engine, err := pattern.New(port, portShift)
	if err != nil {
		return pattern.Vec{}, fmt.Errorf("sim: %w", err)
	}
	engine.SetTick(start)
	for i := uint64(1); i <= n; i++ {
		tick := engine.TickCount()
		engine.Tick()
		if (every > 0 && i%every == 0) || i == n {
			s := engine.State()
			_, err := fmt.Fprintf(w, "%d %.6f %.6f %.6f %.6f %04b\n",
				tick, s[0], s[1], s[2], s[3], uint8(engine.Pattern()))
			if err != nil {
				return s, fmt.Errorf("sim: write trace: %w", err)
			}
		}
	}
	return engine.State(), nil
}
