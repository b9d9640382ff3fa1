//go:build avr && atmega328p

// Command avr runs the pattern on an Arduino Uno/Nano with the indicators on
// PD4..PD7 (digital pins 4 to 7), ticking from Timer1 every millisecond.
package main

import (
	"time"

	"github.com/tinygo-org/ledfield/pattern"
	"github.com/tinygo-org/ledfield/pattern/portlib"
)

const (
	ledMask  = 0xF0
	ledShift = 4
)

func main() {
	port := portlib.NewAVRPortD(ledMask)
	engine, err := pattern.New(port, ledShift)
	if err != nil {
		panic(err.Error())
	}
	portlib.StartTimer1(engine.Tick)
	for {
		time.Sleep(time.Hour)
	}
}
