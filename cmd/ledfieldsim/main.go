// Command ledfieldsim runs the LED pattern engine on a host computer.
//
//	ledfieldsim run --period 1ms --ticks 10000
//	ledfieldsim trace --ticks 1000 --every 100
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tinygo-org/ledfield/internal/sim"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	configPath string
	logLevel   string
	cfg        sim.Config
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "ledfieldsim",
		Short:         "Simulate the four-channel LED pattern engine",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")

	root.AddCommand(newRunCmd(opts), newTraceCmd())
	return root
}

// load reads the configuration file, if any, and applies flags the user set
// explicitly on top of it.
func (o *options) load(cmd *cobra.Command) error {
	cfg := sim.DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = sim.LoadConfig(o.configPath); err != nil {
			return err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Lookup("period") != nil {
		if flags.Changed("period") {
			cfg.Period, _ = flags.GetDuration("period")
		}
		if flags.Changed("ticks") {
			cfg.Ticks, _ = flags.GetUint64("ticks")
		}
		if flags.Changed("render-every") {
			cfg.RenderEvery, _ = flags.GetDuration("render-every")
		}
		if flags.Changed("duty-window") {
			cfg.DutyWindow, _ = flags.GetInt("duty-window")
		}
		if flags.Changed("metrics-addr") {
			cfg.MetricsAddr, _ = flags.GetString("metrics-addr")
		}
		if flags.Changed("color") {
			cfg.Color, _ = flags.GetString("color")
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg
	o.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))
	return nil
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo
	}
	return l
}

func newRunCmd(opts *options) *cobra.Command {
	def := sim.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Tick the engine in real time and render the indicators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, opts, cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.Duration("period", def.Period, "tick period")
	f.Uint64("ticks", def.Ticks, "stop after this many ticks (0 runs until interrupted)")
	f.Duration("render-every", def.RenderEvery, "interval between rendered frames")
	f.Int("duty-window", def.DutyWindow, "ticks averaged into each duty cycle")
	f.String("metrics-addr", def.MetricsAddr, "serve Prometheus metrics on host:port")
	f.String("color", def.Color, "color output: auto, always or never")
	return cmd
}

func run(ctx context.Context, opts *options, out io.Writer) error {
	cfg, log := opts.cfg, opts.logger

	metrics := sim.NewMetrics()
	if cfg.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           metricsMux(metrics),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			log.Info("serving metrics", "addr", cfg.MetricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server failed", "err", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Warn("metrics server shutdown", "err", err)
			}
		}()
	}

	r, err := sim.NewRunner(cfg, out, sim.NewRenderer(useColor(cfg.Color, out)), metrics, log)
	if err != nil {
		return err
	}
	s, err := r.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "ran %d ticks, %d overruns, slowest tick %s\n", s.Ticks, s.Overruns, s.MaxTick)
	return nil
}

func metricsMux(m *sim.Metrics) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	return mux
}

func useColor(mode string, out io.Writer) bool {
	switch mode {
	case sim.ColorAlways:
		return true
	case sim.ColorNever:
		return false
	}
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newTraceCmd() *cobra.Command {
	var (
		ticks uint64
		every uint64
		start uint32
	)
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Run ticks as fast as possible and print the state",
		Long: `Trace runs the engine from its initial state without pacing and prints
one line every --every ticks: the tick, the four channel values and the
output pattern (channel 3 first).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := sim.Trace(cmd.OutOrStdout(), start, ticks, every)
			return err
		},
	}
	cmd.Flags().Uint64Var(&ticks, "ticks", 1000, "number of ticks to run")
	cmd.Flags().Uint64Var(&every, "every", 100, "print every this many ticks (0 prints the last only)")
	cmd.Flags().Uint32Var(&start, "start", 0, "initial tick counter")
	return cmd
}
