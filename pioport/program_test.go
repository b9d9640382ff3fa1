package pioport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgramEncoding(t *testing.T) {
	var expectedProgram = []uint16{
		//     .wrap_target
		0x80a0, //  0: pull   block
		0x6004, //  1: out    pins, 4
		//     .wrap
	}
	assert.Equal(t, expectedProgram, program[:])
}

func TestEncode(t *testing.T) {
	var tests = []struct {
		name string
		got  uint16
		want uint16
	}{
		{"set pindirs, 15", encodeSet(destPinDirs, lineMask), 0xe08f},
		{"set pins, 0", encodeSet(destPins, 0), 0xe000},
		{"jmp 5", encodeJmp(5), 0x0005},
		{"pull noblock", encodePull(false, false), 0x8080},
		{"pull ifempty block", encodePull(true, true), 0x80e0},
		{"out pins, 32", encodeOut(destPins, 32), 0x6000},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("%s mismatch got!=expected: %#x != %#x", tc.name, tc.got, tc.want)
		}
	}
}

func TestRelocate(t *testing.T) {
	assert.Equal(t, uint16(0x000f), relocate(encodeJmp(5), 10))
	assert.Equal(t, uint16(0x6004), relocate(0x6004, 10))
	assert.Equal(t, uint16(0x80a0), relocate(0x80a0, 30))
}

func TestFindOffset(t *testing.T) {
	var tests = []struct {
		used   uint32
		length int
		want   int8
	}{
		{0, 2, 30},
		{0xc000_0000, 2, 28},
		{0x3fff_ffff, 2, 30},
		{0xffff_ffff, 2, -1},
		{0x5555_5555, 2, -1},
		{0x5555_5555, 1, 31},
		{0, 32, 0},
		{0, 33, -1},
		{0, 0, -1},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, findOffset(tc.used, tc.length), "used=%#x length=%d", tc.used, tc.length)
	}
}

func TestPinRangeValid(t *testing.T) {
	var tests = []struct {
		base uint8
		want bool
	}{
		{0, true},
		{2, true},
		{28, true},
		{29, false},
		{32, false},
		{0xfc, false},
		{0xff, false}, // machine.NoPin
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, pinRangeValid(tc.base), "base=%d", tc.base)
	}
}
