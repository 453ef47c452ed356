package kinworld

import "github.com/robokit/simenv/internal/simenv"

// Robot is an actuated object. The controller callback is invoked once
// per physics step with the robot's full DOF positions and velocities.
type Robot struct {
	Object
	ctrl simenv.ControlFunc
}

var _ simenv.Robot = (*Robot)(nil)

// SetController registers the control callback, replacing any previous
// one. A nil callback detaches the controller.
func (r *Robot) SetController(fn simenv.ControlFunc) {
	r.ctrl = fn
}
