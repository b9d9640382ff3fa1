package sim

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tinygo-org/ledfield/pattern"
)

const (
	glyphOn  = "●"
	glyphOff = "○"
)

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D8A96"))
	tickStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2CD7C7"))
	offStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#2C2C2C"))
)

// Frame is one rendered snapshot of the engine.
type Frame struct {
	Tick    uint32
	State   pattern.Vec
	Pattern pattern.Pattern
	Duty    [pattern.Channels]float64
}

// Renderer formats frames for a terminal. With color disabled it emits plain
// text suitable for logs and pipes.
type Renderer struct {
	color bool
}

// NewRenderer returns a renderer, colored or plain.
func NewRenderer(color bool) *Renderer {
	return &Renderer{color: color}
}

// Render returns a single line describing f.
func (r *Renderer) Render(f Frame) string {
	var b strings.Builder
	b.WriteString(r.style(tickStyle, fmt.Sprintf("tick %10d", f.Tick)))
	b.WriteString("  ")
	for i := range f.State {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(r.led(f.Pattern.Bit(i), f.Duty[i]))
	}
	b.WriteString("  ")
	b.WriteString(r.style(labelStyle, "duty"))
	for _, d := range f.Duty {
		fmt.Fprintf(&b, " %3.0f%%", d*100)
	}
	b.WriteString("  ")
	b.WriteString(r.style(labelStyle, "state"))
	for _, v := range f.State {
		fmt.Fprintf(&b, " %.3f", v)
	}
	return b.String()
}

func (r *Renderer) led(on bool, duty float64) string {
	glyph := glyphOff
	if on {
		glyph = glyphOn
	}
	if !r.color {
		return glyph
	}
	if duty <= 0 {
		return offStyle.Render(glyphOn)
	}
	// Brightness follows the averaged duty cycle, not the instantaneous bit.
	return lipgloss.NewStyle().Foreground(amber(duty)).Render(glyphOn)
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

// amber returns an LED-like color scaled by level in [0, 1].
func amber(level float64) lipgloss.Color {
	level = min(max(level, 0), 1)
	red := 0x2c + int(level*float64(0xff-0x2c))
	green := 0x2c + int(level*float64(0xbf-0x2c))
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", red, green, 0x2c))
}
