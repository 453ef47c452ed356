package simenv

import "github.com/go-gl/mathgl/mgl64"

// ObjectState is a value snapshot of one object: all DOF positions and
// velocities, the world-frame pose, and the active-DOF selection at the
// time of capture.
type ObjectState struct {
	Positions  []float64
	Velocities []float64
	Pose       Transform
	ActiveDOFs []int
}

// Clone returns a deep copy.
func (s ObjectState) Clone() ObjectState {
	c := ObjectState{
		Positions:  make([]float64, len(s.Positions)),
		Velocities: make([]float64, len(s.Velocities)),
		Pose:       s.Pose,
		ActiveDOFs: make([]int, len(s.ActiveDOFs)),
	}
	copy(c.Positions, s.Positions)
	copy(c.Velocities, s.Velocities)
	copy(c.ActiveDOFs, s.ActiveDOFs)
	return c
}

// WorldState maps object name to its state snapshot.
type WorldState map[string]ObjectState

// Clone returns a deep copy.
func (ws WorldState) Clone() WorldState {
	c := make(WorldState, len(ws))
	for name, s := range ws {
		c[name] = s.Clone()
	}
	return c
}

// Contact is one detected collision point between two links. It names the
// entities involved instead of referencing them, so a stored contact never
// keeps an object alive. Point and Normal are in the world frame; Normal
// points away from the first link.
type Contact struct {
	ObjectA string
	ObjectB string
	LinkA   string
	LinkB   string
	Point   mgl64.Vec3
	Normal  mgl64.Vec3
}
