package control

import (
	"math"

	"github.com/robokit/simenv/internal/simenv"
)

// Position drives a robot's DOF positions to a target configuration. The
// PID output is treated as commanded acceleration, with a velocity
// damping term so the robot settles instead of orbiting the target.
type Position struct {
	pid     *MDPID
	damping float64
}

func NewPosition(dims int, kp, ki, kd float64) *Position {
	return &Position{
		pid:     NewMDPID(dims, kp, ki, kd),
		damping: 2 * math.Sqrt(kp), // critical damping for unit mass
	}
}

// SetTarget replaces the goal configuration. False means the dimension
// did not match and the previous target is kept.
func (c *Position) SetTarget(target []float64) bool {
	return c.pid.SetTarget(target)
}

// SetDamping overrides the velocity damping gain.
func (c *Position) SetDamping(kv float64) { c.damping = kv }

func (c *Position) Reset() { c.pid.Reset() }

// Func returns the step callback to register on a robot.
func (c *Position) Func() simenv.ControlFunc {
	return func(positions, velocities []float64, timestep float64) ([]float64, bool) {
		u, ok := c.pid.Compute(positions, timestep)
		if !ok || len(velocities) != len(u) {
			return nil, false
		}
		for i := range u {
			u[i] -= c.damping * velocities[i]
		}
		return u, true
	}
}

// Velocity tracks a target DOF velocity profile with a proportional loop
// on the velocity error.
type Velocity struct {
	Kp     float64
	target []float64
}

func NewVelocity(dims int, kp float64) *Velocity {
	return &Velocity{Kp: kp, target: make([]float64, dims)}
}

func (c *Velocity) SetTarget(target []float64) bool {
	if len(target) != len(c.target) {
		return false
	}
	copy(c.target, target)
	return true
}

func (c *Velocity) Func() simenv.ControlFunc {
	return func(_, velocities []float64, _ float64) ([]float64, bool) {
		if len(velocities) != len(c.target) {
			return nil, false
		}
		u := make([]float64, len(c.target))
		for i := range u {
			u[i] = c.Kp * (c.target[i] - velocities[i])
		}
		return u, true
	}
}
