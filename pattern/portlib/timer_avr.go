//go:build avr && atmega328p

package portlib

import (
	"device/avr"
	"runtime/interrupt"
)

// Timer1 CTC setup for a 1 ms tick at 16 MHz: prescaler 64, compare 250.
const timer1Compare = 250

var timer1Func func()

// StartTimer1 arms Timer1 in CTC mode and calls fn from its compare-match
// interrupt every millisecond. fn runs in interrupt context with further
// interrupts disabled; it must return well within one period.
func StartTimer1(fn func()) {
	timer1Func = fn
	avr.TCCR1A.Set(0)
	avr.TCNT1H.Set(0)
	avr.TCNT1L.Set(0)
	avr.OCR1AH.Set(uint8(timer1Compare >> 8))
	avr.OCR1AL.Set(uint8(timer1Compare & 0xff))
	avr.TCCR1B.Set(avr.TCCR1B_WGM12 | avr.TCCR1B_CS11 | avr.TCCR1B_CS10)
	interrupt.New(avr.IRQ_TIMER1_COMPA, handleTimer1)
	avr.TIMSK1.SetBits(avr.TIMSK1_OCIE1A)
}

// StopTimer1 disables the compare-match interrupt.
func StopTimer1() {
	avr.TIMSK1.ClearBits(avr.TIMSK1_OCIE1A)
}

func handleTimer1(interrupt.Interrupt) {
	if timer1Func != nil {
		timer1Func()
	}
}
