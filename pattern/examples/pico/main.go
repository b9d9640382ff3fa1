//go:build rp2040 || rp2350

package main

import (
	"context"
	"machine"
	"time"

	"github.com/tinygo-org/ledfield/pattern"
	"github.com/tinygo-org/ledfield/pioport"
)

// LEDs on GPIO2..GPIO5, driven by PIO0.
const ledBase = machine.GPIO2

func main() {
	// Sleep to catch prints.
	time.Sleep(2 * time.Second)
	port, err := pioport.New(pioport.PIO0, ledBase)
	if err != nil {
		panic(err.Error())
	}
	engine, err := pattern.New(port, 0)
	if err != nil {
		panic(err.Error())
	}
	ticker, err := pattern.NewTicker(pattern.DefaultPeriod)
	if err != nil {
		panic(err.Error())
	}
	go report(engine, port)
	ticker.Run(context.Background(), engine.Tick)
}

func report(engine *pattern.Engine, port *pioport.Port) {
	for {
		time.Sleep(5 * time.Second)
		s := engine.State()
		println("tick", engine.TickCount(), "dropped", port.Dropped())
		for i, v := range s {
			println("  ch", i, "duty", pattern.DutyCycle(v))
		}
	}
}
