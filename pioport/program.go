// Package pioport drives a group of consecutive GPIOs from an RP2040/RP2350
// PIO state machine, so pattern updates reach the pins through the TX FIFO
// without the CPU touching the SIO output registers.
package pioport

// Width is the number of consecutive pins driven by a Port.
const Width = 4

const lineMask = 1<<Width - 1

// Instruction major opcodes.
const (
	instrJmp  = 0x0000
	instrOut  = 0x6000
	instrPull = 0x8080
	instrSet  = 0xe000

	instrMsk = 0xe000
)

type dest uint8

const (
	destPins    dest = 0
	destPinDirs dest = 4
)

func encode(instr uint16, arg1, arg2 uint8) uint16 {
	return instr | uint16(arg1&0b111)<<5 | uint16(arg2&0x1f)
}

func encodeJmp(addr uint8) uint16 { return encode(instrJmp, 0, addr) }

func encodePull(ifEmpty, block bool) uint16 {
	return encode(instrPull, boolAsU8(ifEmpty)<<1|boolAsU8(block), 0)
}

// encodeOut encodes OUT dest, bits. A bit count of 32 encodes as 0.
func encodeOut(d dest, bits uint8) uint16 { return encode(instrOut, uint8(d), bits) }

func encodeSet(d dest, value uint8) uint16 { return encode(instrSet, uint8(d), value) }

// program moves one FIFO word onto the output pins per entry:
//
//	.wrap_target
//	pull block
//	out pins, 4
//	.wrap
var program = [...]uint16{
	encodePull(false, true),
	encodeOut(destPins, Width),
}

// relocate returns instr adjusted for a program loaded at offset. Only JMP
// targets are position dependent.
func relocate(instr uint16, offset uint8) uint16 {
	if instr&instrMsk == instrJmp {
		return instr + uint16(offset)
	}
	return instr
}

// findOffset returns the highest free offset in a 32-slot instruction memory
// able to hold length instructions, or -1. used has one bit per occupied slot.
func findOffset(used uint32, length int) int8 {
	if length <= 0 || length > 32 {
		return -1
	}
	mask := uint32(1<<length - 1)
	for i := 32 - length; i >= 0; i-- {
		if used&(mask<<uint(i)) == 0 {
			return int8(i)
		}
	}
	return -1
}

// pinRangeValid reports whether pins base..base+Width-1 all exist. The
// comparison avoids computing base+Width, which wraps for machine.NoPin.
func pinRangeValid(base uint8) bool {
	return base <= 32-Width
}

func boolAsU8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
