package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yzays8/riscv-emu/rvgo/fast"
)

func TestParseStepMatcher(t *testing.T) {
	cases := []struct {
		pattern string
		steps   map[uint64]bool
	}{
		{"", map[uint64]bool{0: false, 100: false}},
		{"never", map[uint64]bool{0: false, 7: false}},
		{"always", map[uint64]bool{0: true, 7: true}},
		{"=7", map[uint64]bool{6: false, 7: true, 8: false}},
		{"%10", map[uint64]bool{0: true, 5: false, 20: true}},
	}
	for _, c := range cases {
		t.Run(c.pattern, func(t *testing.T) {
			m, err := ParseStepMatcher(c.pattern)
			require.NoError(t, err)
			for step, want := range c.steps {
				require.Equal(t, want, m(&fast.CPU{Steps: step}), "step %d", step)
			}
		})
	}

	for _, bad := range []string{"sometimes", "=x", "%", "%0", "=-1"} {
		_, err := ParseStepMatcher(bad)
		require.Error(t, err, bad)
	}
}

func TestHexAttrs(t *testing.T) {
	require.Equal(t, "00000013", HexU32(0x13).String())
	text, err := HexU64(0x8000_0000).MarshalText()
	require.NoError(t, err)
	require.Equal(t, "0000000080000000", string(text))
}
