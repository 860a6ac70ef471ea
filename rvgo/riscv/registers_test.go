package riscv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterIndex(t *testing.T) {
	cases := []struct {
		name string
		want uint8
	}{
		{"zero", RegZero},
		{"ra", RegRA},
		{"sp", RegSP},
		{"fp", RegFP},
		{"s0", RegS0},
		{"a0", RegA0},
		{"T6", RegT6},
		{" s11 ", RegS11},
		{"x0", 0},
		{"x31", 31},
	}
	for _, c := range cases {
		got, err := RegisterIndex(c.name)
		require.NoError(t, err, c.name)
		require.Equal(t, c.want, got, c.name)
	}

	for _, bad := range []string{"", "x32", "x-1", "a8", "pc", "xx1"} {
		_, err := RegisterIndex(bad)
		require.Error(t, err, bad)
	}
}

func TestRegisterName(t *testing.T) {
	for i := uint8(0); i < 32; i++ {
		idx, err := RegisterIndex(RegisterName(i))
		require.NoError(t, err)
		require.Equal(t, i, idx)
	}
	require.Equal(t, "s0", RegisterName(RegFP))
	require.Equal(t, "x40", RegisterName(40))
}
