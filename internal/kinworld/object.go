package kinworld

import (
	"fmt"

	"github.com/robokit/simenv/internal/simenv"
)

// Object is a rigid or articulated body. A free body carries six base
// DOFs (x, y, z, rx, ry, rz) mirrored into its pose; a static body has
// none. Joint DOFs follow the base DOFs in joint order.
type Object struct {
	entityCore
	// self is the public handle for this body: the object itself, or the
	// enclosing Robot when the object is a robot's core.
	self        simenv.Object
	static      bool
	layout      *simenv.DOFLayout
	positions   []float64
	velocities  []float64
	active      []int
	links       []*Link
	joints      []*Joint
	linkByName  map[string]int
	jointByName map[string]int
	baseLink    int
}

var _ simenv.Object = (*Object)(nil)

func (o *Object) IsStatic() bool    { return o.static }
func (o *Object) NumDOFs() int      { return o.layout.NumDOFs() }
func (o *Object) NumBaseDOFs() int  { return o.layout.NumBaseDOFs() }
func (o *Object) NumActiveDOFs() int { return len(o.active) }

func (o *Object) DOFIndices() []int {
	out := make([]int, o.NumDOFs())
	for i := range out {
		out[i] = i
	}
	return out
}

// SetActiveDOFs replaces the active-DOF selection. This is shared mutable
// state on the object: concurrent callers observe each other's selection.
// Out-of-range indices are dropped with a warning.
func (o *Object) SetActiveDOFs(indices []int) {
	sel := make([]int, 0, len(indices))
	for _, i := range indices {
		if !o.layout.Valid(i) {
			o.warnf("ignoring invalid DOF index %d on %s", i, o.name)
			continue
		}
		sel = append(sel, i)
	}
	o.active = sel
}

func (o *Object) ActiveDOFs() []int {
	out := make([]int, len(o.active))
	copy(out, o.active)
	return out
}

// resolve maps a caller's index argument onto concrete DOF indices:
// nil or empty means the active set.
func (o *Object) resolve(indices []int) []int {
	if len(indices) == 0 {
		return o.active
	}
	return indices
}

func (o *Object) DOFInfo(dof int) (simenv.DOFInfo, bool) {
	return o.layout.Info(dof)
}

func (o *Object) DOFPositions(indices []int) []float64 {
	return o.gather(o.positions, o.resolve(indices))
}

func (o *Object) DOFVelocities(indices []int) []float64 {
	return o.gather(o.velocities, o.resolve(indices))
}

func (o *Object) gather(src []float64, indices []int) []float64 {
	out := make([]float64, 0, len(indices))
	for _, i := range indices {
		if !o.layout.Valid(i) {
			out = append(out, 0)
			continue
		}
		out = append(out, src[i])
	}
	return out
}

func (o *Object) SetDOFPositions(values []float64, indices []int) error {
	idx := o.resolve(indices)
	if len(values) != len(idx) {
		return fmt.Errorf("%w: %d values for %d indices", simenv.ErrDimensionMismatch, len(values), len(idx))
	}
	for n, i := range idx {
		if !o.layout.Valid(i) {
			return fmt.Errorf("%w: %d", simenv.ErrInvalidDOFIndex, i)
		}
		info, _ := o.layout.Info(i)
		o.positions[i] = info.PositionLimits.Clamp(values[n])
	}
	o.syncPoseFromBase()
	o.updateKinematics()
	return nil
}

func (o *Object) SetDOFVelocities(values []float64, indices []int) error {
	idx := o.resolve(indices)
	if len(values) != len(idx) {
		return fmt.Errorf("%w: %d values for %d indices", simenv.ErrDimensionMismatch, len(values), len(idx))
	}
	for n, i := range idx {
		if !o.layout.Valid(i) {
			return fmt.Errorf("%w: %d", simenv.ErrInvalidDOFIndex, i)
		}
		info, _ := o.layout.Info(i)
		o.velocities[i] = info.VelocityLimits.Clamp(values[n])
	}
	return nil
}

func (o *Object) DOFPositionLimits(indices []int) []simenv.Limits {
	return o.layout.PositionLimits(o.resolve(indices))
}

func (o *Object) DOFVelocityLimits(indices []int) []simenv.Limits {
	return o.layout.VelocityLimits(o.resolve(indices))
}

func (o *Object) DOFAccelerationLimits(indices []int) []simenv.Limits {
	return o.layout.AccelerationLimits(o.resolve(indices))
}

func (o *Object) SetTransform(tf simenv.Transform) {
	o.tf = tf
	o.syncBaseFromPose()
	o.updateKinematics()
}

func (o *Object) State() simenv.ObjectState {
	s := simenv.ObjectState{
		Positions:  o.positions,
		Velocities: o.velocities,
		Pose:       o.tf,
		ActiveDOFs: o.active,
	}
	return s.Clone()
}

func (o *Object) SetState(s simenv.ObjectState) error {
	if err := o.validateState(s); err != nil {
		return err
	}
	o.applyState(s)
	return nil
}

func (o *Object) validateState(s simenv.ObjectState) error {
	n := o.NumDOFs()
	if len(s.Positions) != n || len(s.Velocities) != n {
		return fmt.Errorf("%w: state vectors for %q must have length %d", simenv.ErrDimensionMismatch, o.name, n)
	}
	for _, i := range s.ActiveDOFs {
		if !o.layout.Valid(i) {
			return fmt.Errorf("%w: active DOF %d of %q", simenv.ErrInvalidDOFIndex, i, o.name)
		}
	}
	return nil
}

func (o *Object) applyState(s simenv.ObjectState) {
	copy(o.positions, s.Positions)
	copy(o.velocities, s.Velocities)
	o.active = append(o.active[:0], s.ActiveDOFs...)
	o.tf = s.Pose
	o.syncBaseFromPose()
	o.updateKinematics()
}

func (o *Object) Links() []simenv.Link {
	out := make([]simenv.Link, len(o.links))
	for i, l := range o.links {
		out[i] = l
	}
	return out
}

func (o *Object) Link(name string) simenv.Link {
	if i, ok := o.linkByName[name]; ok {
		return o.links[i]
	}
	return nil
}

func (o *Object) BaseLink() simenv.Link {
	return o.links[o.baseLink]
}

func (o *Object) Joints() []simenv.Joint {
	out := make([]simenv.Joint, len(o.joints))
	for i, j := range o.joints {
		out[i] = j
	}
	return out
}

func (o *Object) Joint(name string) simenv.Joint {
	if i, ok := o.jointByName[name]; ok {
		return o.joints[i]
	}
	return nil
}

func (o *Object) JointByIndex(idx int) simenv.Joint {
	if idx < 0 || idx >= len(o.joints) {
		return nil
	}
	return o.joints[idx]
}

func (o *Object) JointFromDOFIndex(dof int) simenv.Joint {
	joint, ok := o.layout.JointIndex(dof)
	if !ok {
		return nil
	}
	return o.joints[joint]
}

func (o *Object) jointHandles(indices []int) []simenv.Joint {
	out := make([]simenv.Joint, len(indices))
	for n, i := range indices {
		out[n] = o.joints[i]
	}
	return out
}

func (o *Object) CheckCollision() (bool, []simenv.Contact) {
	if o.world == nil {
		return false, nil
	}
	return o.world.objectSelfCheck(o)
}

func (o *Object) CheckCollisionWith(other simenv.Object) (bool, []simenv.Contact) {
	if o.world == nil {
		return false, nil
	}
	return o.world.objectVsObject(o, other)
}

func (o *Object) CheckCollisionWithAny(others []simenv.Object) (bool, []simenv.Contact) {
	if o.world == nil {
		return false, nil
	}
	return o.world.objectVsObjects(o, others)
}

// syncBaseFromPose writes the pose into the base DOF slots of a free body.
func (o *Object) syncBaseFromPose() {
	if o.static || o.NumBaseDOFs() == 0 {
		return
	}
	x, y, z, rx, ry, rz := o.tf.XYZEuler()
	o.positions[0], o.positions[1], o.positions[2] = x, y, z
	o.positions[3], o.positions[4], o.positions[5] = rx, ry, rz
}

// syncPoseFromBase rebuilds the pose from the base DOF slots.
func (o *Object) syncPoseFromBase() {
	if o.static || o.NumBaseDOFs() == 0 {
		return
	}
	o.tf = simenv.PoseFromXYZEuler(
		o.positions[0], o.positions[1], o.positions[2],
		o.positions[3], o.positions[4], o.positions[5])
}

// updateKinematics recomputes every link transform from the object pose
// and the current joint positions, walking the tree from the base link.
func (o *Object) updateKinematics() {
	base := o.links[o.baseLink]
	base.tf = o.tf
	queue := []int{o.baseLink}
	for len(queue) > 0 {
		cur := o.links[queue[0]]
		queue = queue[1:]
		for _, ji := range cur.children {
			j := o.joints[ji]
			frame := cur.tf.Mul(j.origin)
			j.tf = frame.Mul(j.motion())
			o.links[j.child].tf = j.tf
			queue = append(queue, j.child)
		}
	}
}

func (o *Object) warnf(format string, args ...any) {
	if o.world != nil && o.world.logger != nil {
		o.world.logger.Warn(fmt.Sprintf(format, args...), logPrefix)
	}
}
