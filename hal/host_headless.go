//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"
)

// DefaultHz is the main loop rate: one step every 10 ms.
const DefaultHz = 100

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64
}

// RunHeadless calls the app's step function on a ticker until ctx is done,
// the step fails or cfg.Ticks steps have run. A nil h selects the simulator
// HAL.
func RunHeadless(ctx context.Context, h HAL, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = DefaultHz
	}
	if h == nil {
		h = New()
	}
	step := newApp(h)

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
