package portlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterByte(t *testing.T) {
	var tests = []struct {
		in, want uint8
	}{
		{0x00, 0x00},
		{0x01, 0x80}, // bit 7 is shifted last and lands on Q0
		{0x80, 0x01},
		{0xF0, 0x0F}, // channel lines 4..7 on Q4..Q7
		{0x50, 0x0A},
		{0xFF, 0xFF},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, registerByte(tc.in), "registerByte(%#02x)", tc.in)
	}
}
