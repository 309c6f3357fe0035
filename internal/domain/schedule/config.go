package schedule

import (
	"errors"
	"fmt"
	"math"
)

const (
	DefaultFrameRate      = 30
	DefaultMinGapSeconds  = 0.05
	DefaultSilenceSeconds = 0.08
	DefaultMinHoldFrames  = 3
)

// Config is the per-run timing configuration. It is passed by value and never
// mutated by the scheduler.
type Config struct {
	FrameRate      int
	MinGapSeconds  float64
	SilenceSeconds float64
	// MinHoldFrames is the minimum distance between two retained keyframes.
	// Zero derives it from MinGapSeconds.
	MinHoldFrames int
}

func DefaultConfig() Config {
	return Config{
		FrameRate:      DefaultFrameRate,
		MinGapSeconds:  DefaultMinGapSeconds,
		SilenceSeconds: DefaultSilenceSeconds,
		MinHoldFrames:  DefaultMinHoldFrames,
	}
}

func (c Config) Validate() error {
	if c.FrameRate <= 0 {
		return errors.New("frame rate must be > 0")
	}
	if c.MinGapSeconds < 0 {
		return fmt.Errorf("min gap seconds must be >= 0")
	}
	if c.SilenceSeconds < 0 {
		return fmt.Errorf("silence seconds must be >= 0")
	}
	if c.MinHoldFrames < 0 {
		return fmt.Errorf("min hold frames must be >= 0")
	}
	return nil
}

// Frame quantizes seconds to a frame index. Halves round to even.
func (c Config) Frame(seconds float64) int {
	return int(math.RoundToEven(seconds * float64(c.FrameRate)))
}

// HoldFrames resolves the effective minimum hold.
func (c Config) HoldFrames() int {
	if c.MinHoldFrames > 0 {
		return c.MinHoldFrames
	}
	h := int(math.Ceil(c.MinGapSeconds * float64(c.FrameRate)))
	if h < 1 {
		h = 1
	}
	return h
}
