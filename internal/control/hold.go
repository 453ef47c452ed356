package control

import "github.com/robokit/simenv/internal/simenv"

// Hold commands zero acceleration on every DOF. Attached to a robot it
// freezes whatever velocity the robot currently has.
type Hold struct {
	dims int
}

func NewHold(dims int) *Hold {
	return &Hold{dims: dims}
}

func (h *Hold) Func() simenv.ControlFunc {
	return func(_, _ []float64, _ float64) ([]float64, bool) {
		return make([]float64, h.dims), true
	}
}
