package simenv

// Entity is the common surface of everything stored in a world. Names are
// unique within a world and immutable from the outside; renaming happens
// only through the owning world during construction.
type Entity interface {
	Name() string
	Type() EntityType
	Transform() Transform
	World() World
}

// Link is one rigid segment of an object. Links form a tree rooted at the
// object's base link.
type Link interface {
	Entity
	Object() Object
	ParentJoints() []Joint
	ChildJoints() []Joint

	// CheckCollision tests this link against everything else in the same
	// world except the links of its own object.
	CheckCollision() (bool, []Contact)
	// CheckCollisionWithLinks tests this link against each given link
	// independently and returns all contacts from all colliding pairs.
	CheckCollisionWithLinks(others []Link) (bool, []Contact)
	// CheckCollisionWithObjects tests this link against each given object
	// independently and returns all contacts from all colliding pairs.
	CheckCollisionWithObjects(others []Object) (bool, []Contact)
}

// Joint connects a parent link to a child link within one object.
type Joint interface {
	Entity
	Position() float64
	SetPosition(v float64)
	Velocity() float64
	SetVelocity(v float64)

	// JointIndex is this joint's position in the object's joint ordering;
	// DOFIndex is JointIndex plus the object's base DOF count.
	JointIndex() int
	DOFIndex() int
	JointType() JointType
	ParentLink() Link
	ChildLink() Link
	Object() Object
	PositionLimits() Limits
	VelocityLimits() Limits
	AccelerationLimits() Limits
	DOFInfo() DOFInfo
}

// Object is a rigid or articulated body. DOF accessors taking an index
// slice treat a nil or empty slice as "the active DOF set"; passing
// explicit indices sidesteps the shared selection state entirely.
type Object interface {
	Entity
	SetTransform(tf Transform)
	IsStatic() bool

	NumDOFs() int
	NumBaseDOFs() int
	DOFIndices() []int
	SetActiveDOFs(indices []int)
	ActiveDOFs() []int
	NumActiveDOFs() int
	DOFInfo(dof int) (DOFInfo, bool)

	DOFPositions(indices []int) []float64
	SetDOFPositions(values []float64, indices []int) error
	DOFVelocities(indices []int) []float64
	SetDOFVelocities(values []float64, indices []int) error
	DOFPositionLimits(indices []int) []Limits
	DOFVelocityLimits(indices []int) []Limits
	DOFAccelerationLimits(indices []int) []Limits

	// State and SetState transfer DOF vectors, pose, and the active-DOF
	// selection atomically with respect to each other.
	State() ObjectState
	SetState(s ObjectState) error

	Links() []Link
	Link(name string) Link
	BaseLink() Link
	Joints() []Joint
	Joint(name string) Joint
	JointByIndex(idx int) Joint
	// JointFromDOFIndex returns nil when dof is out of range or addresses
	// a base-pose DOF.
	JointFromDOFIndex(dof int) Joint

	CheckCollision() (bool, []Contact)
	CheckCollisionWith(other Object) (bool, []Contact)
	// CheckCollisionWithAny is the OR-composition of CheckCollisionWith
	// over the list; contacts from every colliding element are returned.
	CheckCollisionWithAny(others []Object) (bool, []Contact)
}

// Robot is an actuated object. At most one controller is registered at a
// time; SetController replaces any previous registration, and a nil
// callback detaches the controller.
type Robot interface {
	Object
	SetController(fn ControlFunc)
}

// World is the composition root a backend provides: the entity registry,
// the collision-query entry point, physics stepping, and the world-state
// checkpoint stack.
//
// Concurrency discipline: callers mutating world-owned state must hold the
// world lock for the whole mutation. The lock is reentrant, so a
// controller callback running inside StepPhysics may call back into the
// world. Read-only queries are consistent only while no writer is active;
// this is advisory, not enforced.
type World interface {
	// LoadWorld replaces the entity registry with the scene described at
	// path and clears the state stack.
	LoadWorld(path string) error

	// GetObject returns the non-robot object with the given name, or nil.
	GetObject(name string) Object
	// GetRobot returns the robot with the given name, or nil.
	GetRobot(name string) Robot
	GetObjects(includeRobots bool) []Object
	GetRobots() []Robot
	// RemoveObject removes an object or robot and clears the state stack.
	// It reports whether the name was present.
	RemoveObject(name string) bool

	// CheckCollision is the uniform query entry point. With no others it
	// is a self-check of first; with others it tests first against each
	// element independently, returning the OR of the pairwise results and
	// the union of their contact sets. Entities must be objects or links
	// of this world; anything else yields false and a warning log.
	CheckCollision(first Entity, others ...Entity) (bool, []Contact)

	// StepPhysics advances simulated time by steps timesteps, invoking
	// each robot's controller once per step. A failing controller is
	// isolated to its robot; all other bodies still advance.
	StepPhysics(steps int)
	SupportsPhysics() bool
	PhysicsTimeStep() float64
	SetPhysicsTimeStep(dt float64)

	WorldState() WorldState
	// SetWorldState applies a snapshot all-or-nothing: every entry is
	// validated first and no state changes unless all entries apply.
	SetWorldState(ws WorldState) error
	// SaveState pushes the current world state onto the internal stack.
	// The stack is cleared whenever the registry changes structurally
	// (LoadWorld, object add/remove).
	SaveState()
	// RestoreState pops and applies the most recent snapshot; it reports
	// false, leaving the world untouched, when the stack is empty.
	RestoreState() bool

	// Lock and Unlock expose the reentrant world mutex.
	Lock()
	Unlock()

	Logger() Logger
	Viewer() WorldViewer
}

// WorldViewer is the minimal rendering collaborator: a single primitive
// drawing a coordinate frame. Richer visualization surfaces wrap it.
type WorldViewer interface {
	DrawFrame(tf Transform, length, width float64)
}
