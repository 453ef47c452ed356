package simenv

// EntityType identifies what kind of entity a handle refers to.
type EntityType int

const (
	EntityObject EntityType = iota
	EntityRobot
	EntityJoint
	EntityLink
)

func (t EntityType) String() string {
	switch t {
	case EntityObject:
		return "object"
	case EntityRobot:
		return "robot"
	case EntityJoint:
		return "joint"
	case EntityLink:
		return "link"
	default:
		return "unknown"
	}
}

// JointType distinguishes rotational from translational joints.
type JointType int

const (
	JointRevolute JointType = iota
	JointPrismatic
)

func (t JointType) String() string {
	switch t {
	case JointRevolute:
		return "revolute"
	case JointPrismatic:
		return "prismatic"
	default:
		return "unknown"
	}
}

// ControlFunc is the per-step control callback of a robot. It receives the
// robot's full DOF positions and velocities and the physics timestep, and
// returns one control value (a generalized force, unit mass) per DOF. A
// false return rejects the step for this robot only; the world continues
// stepping everything else.
type ControlFunc func(positions, velocities []float64, timestep float64) ([]float64, bool)
