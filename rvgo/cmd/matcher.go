package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yzays8/riscv-emu/rvgo/fast"
)

const StepMatcherUsage = "'never' (default), 'always', '=123' at exactly step 123, '%123' for every 123 steps"

// StepMatcher decides whether the cpu, about to run its next step, is at a matching step.
type StepMatcher func(c *fast.CPU) bool

func ParseStepMatcher(pattern string) (StepMatcher, error) {
	switch {
	case pattern == "" || pattern == "never":
		return func(*fast.CPU) bool { return false }, nil
	case pattern == "always":
		return func(*fast.CPU) bool { return true }, nil
	case strings.HasPrefix(pattern, "="):
		step, err := strconv.ParseUint(pattern[1:], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse step number %q: %w", pattern, err)
		}
		return func(c *fast.CPU) bool { return c.Steps == step }, nil
	case strings.HasPrefix(pattern, "%"):
		interval, err := strconv.ParseUint(pattern[1:], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse step interval %q: %w", pattern, err)
		}
		if interval == 0 {
			return nil, fmt.Errorf("step interval must be positive: %q", pattern)
		}
		return func(c *fast.CPU) bool { return c.Steps%interval == 0 }, nil
	default:
		return nil, fmt.Errorf("unrecognized step matcher: %q", pattern)
	}
}
