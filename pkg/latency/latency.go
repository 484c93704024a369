// Package latency simulates network round trips for the mock backend.
package latency

import (
	"context"
	"time"
)

type Simulator struct {
	enabled bool
}

func New(enabled bool) Simulator {
	return Simulator{enabled: enabled}
}

// Off never waits.
var Off = Simulator{}

// Wait blocks for d unless disabled. A cancelled context ends the wait early with its error.
func (s Simulator) Wait(ctx context.Context, d time.Duration) error {
	if !s.enabled || d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
