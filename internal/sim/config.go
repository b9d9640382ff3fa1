// Package sim runs a pattern.Engine on a host computer: it renders the four
// indicators in a terminal, keeps duty-cycle statistics and measures how much
// of each tick period the update takes.
package sim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/tinygo-org/ledfield/pattern"
)

// Color modes for terminal rendering.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config controls a simulator run.
type Config struct {
	// Period between ticks.
	Period time.Duration `yaml:"period" validate:"gt=0"`
	// Ticks to run before stopping; zero runs until interrupted.
	Ticks uint64 `yaml:"ticks"`
	// RenderEvery is the interval between terminal frames.
	RenderEvery time.Duration `yaml:"render_every" validate:"gt=0"`
	// DutyWindow is the number of recent ticks averaged into a duty cycle.
	DutyWindow int `yaml:"duty_window" validate:"gte=1,lte=100000"`
	// MetricsAddr, when set, serves Prometheus metrics on host:port.
	MetricsAddr string `yaml:"metrics_addr" validate:"omitempty,hostname_port"`
	Color       string `yaml:"color" validate:"oneof=auto always never"`
	LogLevel    string `yaml:"log_level" validate:"oneof=debug info warn error"`
}

// DefaultConfig returns the reference timing: a 1 ms tick rendered at 20
// frames per second, averaged over one dither cycle.
func DefaultConfig() Config {
	return Config{
		Period:      pattern.DefaultPeriod,
		RenderEvery: 50 * time.Millisecond,
		DutyWindow:  pattern.DitherPeriod,
		Color:       ColorAuto,
		LogLevel:    "info",
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config: invalid %s: failed %q constraint", fe.Field(), fe.Tag())
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// LoadConfig reads a YAML file over the defaults and validates the result.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	return DecodeConfig(f)
}

// DecodeConfig reads YAML from r over the defaults. Unknown keys are errors.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("config: decode: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
