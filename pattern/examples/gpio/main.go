//go:build tinygo

package main

import (
	"context"
	"machine"
	"strconv"
	"strings"

	"github.com/tinygo-org/ledfield/pattern"
	"github.com/tinygo-org/ledfield/pattern/portlib"
)

var ledPins string

/*
This example drives four LEDs from any four GPIOs using a software ticker.
Pass the GPIO numbers through -ldflags, comma separated:
tinygo flash -target=$TARGET_NAME -ldflags "-X main.ledPins=2,3,4,5" ./pattern/examples/gpio/
*/
func main() {
	pins, ok := parsePins(ledPins)
	if !ok {
		println("Invalid pin list: " + ledPins)
		pins = [pattern.Channels]machine.Pin{2, 3, 4, 5}
	}
	out, err := portlib.NewPins(pins)
	if err != nil {
		panic(err.Error())
	}
	engine, err := pattern.New(out, 0)
	if err != nil {
		panic(err.Error())
	}
	ticker, err := pattern.NewTicker(pattern.DefaultPeriod)
	if err != nil {
		panic(err.Error())
	}
	println("pattern running on", len(pins), "pins")
	ticker.Run(context.Background(), engine.Tick)
}

func parsePins(s string) (pins [pattern.Channels]machine.Pin, ok bool) {
	fields := strings.Split(s, ",")
	if len(fields) != pattern.Channels {
		return pins, false
	}
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || n < 0 {
			return pins, false
		}
		pins[i] = machine.Pin(n)
	}
	return pins, true
}
