//go:build tinygo

package main

import (
	"context"
	"machine"
	"strconv"

	"github.com/tinygo-org/ledfield/pattern"
	"github.com/tinygo-org/ledfield/pattern/portlib"
)

var (
	latchPin = "5"
	clockPin = "6"
	dataPin  = "7"
)

/*
This example latches the pattern onto outputs Q4..Q7 of a 74HC595. Outputs
Q0..Q3 are left alone for other uses. Pins can be set
through -ldflags:
tinygo flash -target=$TARGET_NAME -ldflags "-X main.latchPin=5 -X main.clockPin=6 -X main.dataPin=7" ./pattern/examples/shiftreg/
*/
func main() {
	sr, err := portlib.NewShiftRegister(pin(latchPin), pin(clockPin), pin(dataPin))
	if err != nil {
		panic(err.Error())
	}
	engine, err := pattern.New(sr, 4)
	if err != nil {
		panic(err.Error())
	}
	ticker, err := pattern.NewTicker(pattern.DefaultPeriod)
	if err != nil {
		panic(err.Error())
	}
	ticker.Run(context.Background(), engine.Tick)
}

func pin(s string) machine.Pin {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		println("Invalid pin number: " + s)
		return machine.NoPin
	}
	return machine.Pin(n)
}
