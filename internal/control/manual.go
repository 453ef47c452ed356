package control

import (
	"sync"

	"github.com/robokit/simenv/internal/simenv"
)

// Manual passes an externally set acceleration vector straight through.
// Used for teleoperation, where commands arrive from another goroutine
// between physics steps.
type Manual struct {
	mu sync.Mutex
	u  []float64
}

func NewManual(dims int) *Manual {
	return &Manual{u: make([]float64, dims)}
}

// SetControl replaces the commanded accelerations. A mismatched vector
// is ignored.
func (c *Manual) SetControl(u []float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(u) != len(c.u) {
		return
	}
	copy(c.u, u)
}

func (c *Manual) Func() simenv.ControlFunc {
	return func(_, _ []float64, _ float64) ([]float64, bool) {
		c.mu.Lock()
		defer c.mu.Unlock()
		out := make([]float64, len(c.u))
		copy(out, c.u)
		return out, true
	}
}
