//go:build rp2040 || rp2350

package pioport

import (
	"device/rp"
	"errors"
	"machine"
	"runtime/volatile"
	"unsafe"
)

// PIO blocks that can host a Port.
var (
	PIO0 = &Block{hw: rp.PIO0, mode: machine.PinPIO0}
	PIO1 = &Block{hw: rp.PIO1, mode: machine.PinPIO1}
)

// Port errors.
var (
	ErrNoStateMachine    = errors.New("pioport: all state machines claimed")
	ErrOutOfProgramSpace = errors.New("pioport: out of program space")
	ErrBadPin            = errors.New("pioport: pin range outside GPIO0..31")
)

const badStateMachineIndex = "pioport: invalid state machine index"

// Block is one PIO peripheral. It tracks which state machines and which
// instruction slots are in use by ports.
type Block struct {
	hw   *rp.PIO0_Type
	mode machine.PinMode
	// Bitmask of used instruction space. Each PIO has 32 slots for instructions.
	usedSpace uint32
	// Bitmask of claimed state machines. Each PIO has 4 state machines.
	claimed uint8
}

type statemachineHW struct {
	CLKDIV    volatile.Register32
	EXECCTRL  volatile.Register32
	SHIFTCTRL volatile.Register32
	ADDR      volatile.Register32
	INSTR     volatile.Register32
	PINCTRL   volatile.Register32
}

func (b *Block) smHW(index uint8) *statemachineHW {
	if index > 3 {
		panic(badStateMachineIndex)
	}
	// 24 bytes (6 registers) per state machine
	const size = unsafe.Sizeof(statemachineHW{})
	base := uintptr(unsafe.Pointer(&b.hw.SM0_CLKDIV))
	return (*statemachineHW)(unsafe.Pointer(base + uintptr(index)*size))
}

func (b *Block) claimStateMachine() (uint8, error) {
	for i := uint8(0); i < 4; i++ {
		if b.claimed&(1<<i) == 0 {
			b.claimed |= 1 << i
			return i, nil
		}
	}
	return 0, ErrNoStateMachine
}

func (b *Block) load(instructions []uint16) (offset uint8, _ error) {
	o := findOffset(b.usedSpace, len(instructions))
	if o < 0 {
		return 0, ErrOutOfProgramSpace
	}
	offset = uint8(o)
	start := uintptr(unsafe.Pointer(&b.hw.INSTR_MEM0))
	for i, instr := range instructions {
		// Instruction memory registers are 32-bit, with only lower 16 used.
		reg := (*volatile.Register32)(unsafe.Pointer(start + uintptr(offset+uint8(i))*4))
		reg.Set(uint32(relocate(instr, offset)))
	}
	b.usedSpace |= uint32(1<<len(instructions)-1) << offset
	return offset, nil
}

// Port is a 4-line parallel output driven by one PIO state machine. It
// implements pattern.Sink; the engine should use shift 0, bit i of a write
// maps to pin base+i.
type Port struct {
	block   *Block
	sm      uint8
	offset  uint8
	latched uint8
	dropped uint32
}

// New claims a state machine on block, loads the output program and hands
// pins base..base+3 to the PIO. All four lines start low.
func New(block *Block, base machine.Pin) (*Port, error) {
	if !pinRangeValid(uint8(base)) {
		return nil, ErrBadPin
	}
	sm, err := block.claimStateMachine()
	if err != nil {
		return nil, err
	}
	offset, err := block.load(program[:])
	if err != nil {
		block.claimed &^= 1 << sm
		return nil, err
	}
	for i := machine.Pin(0); i < Width; i++ {
		(base + i).Configure(machine.PinConfig{Mode: block.mode})
	}

	hw := block.hw
	regs := block.smHW(sm)
	hw.CTRL.ClearBits(1 << (rp.PIO0_CTRL_SM_ENABLE_Pos + sm))

	regs.CLKDIV.Set(1 << rp.PIO0_SM0_CLKDIV_INT_Pos)
	regs.EXECCTRL.Set(uint32(offset+uint8(len(program))-1)<<rp.PIO0_SM0_EXECCTRL_WRAP_TOP_Pos |
		uint32(offset)<<rp.PIO0_SM0_EXECCTRL_WRAP_BOTTOM_Pos)
	// Shift right so OUT takes the low bits; TX-only FIFO of depth 8.
	regs.SHIFTCTRL.Set(1<<rp.PIO0_SM0_SHIFTCTRL_OUT_SHIFTDIR_Pos |
		1<<rp.PIO0_SM0_SHIFTCTRL_IN_SHIFTDIR_Pos |
		1<<rp.PIO0_SM0_SHIFTCTRL_FJOIN_TX_Pos)

	// Drive the pins low, then switch them to outputs, with one-off SETs.
	regs.PINCTRL.Set(uint32(Width)<<rp.PIO0_SM0_PINCTRL_SET_COUNT_Pos |
		uint32(base)<<rp.PIO0_SM0_PINCTRL_SET_BASE_Pos)
	regs.INSTR.Set(uint32(encodeSet(destPins, 0)))
	regs.INSTR.Set(uint32(encodeSet(destPinDirs, lineMask)))
	regs.PINCTRL.Set(uint32(Width)<<rp.PIO0_SM0_PINCTRL_OUT_COUNT_Pos |
		uint32(base)<<rp.PIO0_SM0_PINCTRL_OUT_BASE_Pos)

	hw.CTRL.SetBits(1<<(rp.PIO0_CTRL_SM_RESTART_Pos+sm) | 1<<(rp.PIO0_CTRL_CLKDIV_RESTART_Pos+sm))
	regs.INSTR.Set(uint32(encodeJmp(offset)))
	hw.CTRL.SetBits(1 << (rp.PIO0_CTRL_SM_ENABLE_Pos + sm))

	return &Port{block: block, sm: sm, offset: offset}, nil
}

// WriteMasked merges value into the latched lines and queues the result. It
// never waits: when the TX FIFO is full the update is dropped and counted.
func (p *Port) WriteMasked(value, mask uint8) {
	p.latched = p.latched&^mask | value&mask
	hw := p.block.hw
	if hw.FSTAT.HasBits(1 << (rp.PIO0_FSTAT_TXFULL_Pos + p.sm)) {
		p.dropped++
		return
	}
	p.txReg().Set(uint32(p.latched & lineMask))
}

// Dropped returns how many writes were discarded because the FIFO was full.
func (p *Port) Dropped() uint32 { return p.dropped }

// Close stops the state machine and releases it. The program slots stay
// allocated.
func (p *Port) Close() {
	p.block.hw.CTRL.ClearBits(1 << (rp.PIO0_CTRL_SM_ENABLE_Pos + p.sm))
	p.block.claimed &^= 1 << p.sm
}

func (p *Port) txReg() *volatile.Register32 {
	start := uintptr(unsafe.Pointer(&p.block.hw.TXF0)) // 0x10
	return (*volatile.Register32)(unsafe.Pointer(start + uintptr(p.sm)*4))
}
