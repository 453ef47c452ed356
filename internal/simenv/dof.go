package simenv

import "math"

// Limits is a [min, max] pair for one DOF quantity. Unbounded DOFs carry
// the representable float64 extremes, not a sentinel flag; callers that
// care must compare against Unbounded themselves.
type Limits struct {
	Min, Max float64
}

// Unbounded returns the limits of an unconstrained DOF.
func Unbounded() Limits {
	return Limits{Min: -math.MaxFloat64, Max: math.MaxFloat64}
}

// IsUnbounded reports whether the limits are the unconstrained extremes.
func (l Limits) IsUnbounded() bool {
	return l.Min == -math.MaxFloat64 && l.Max == math.MaxFloat64
}

// Clamp restricts v to [Min, Max].
func (l Limits) Clamp(v float64) float64 {
	return clamp(v, l.Min, l.Max)
}

// DOFInfo describes a single degree of freedom.
type DOFInfo struct {
	Index              int
	PositionLimits     Limits
	VelocityLimits     Limits
	AccelerationLimits Limits
}

// DOFLayout maps an object's DOF indices onto base-pose parameters and
// joints and keeps the per-DOF limit tables. Indices [0, NumBaseDOFs)
// address pose parameters; the remaining indices address joints in joint
// order.
type DOFLayout struct {
	numBase   int
	posLimits []Limits
	velLimits []Limits
	accLimits []Limits
}

// NewDOFLayout builds a layout with numBase pose DOFs followed by
// numJoints joint DOFs. All limits start unbounded.
func NewDOFLayout(numBase, numJoints int) *DOFLayout {
	n := numBase + numJoints
	l := &DOFLayout{
		numBase:   numBase,
		posLimits: make([]Limits, n),
		velLimits: make([]Limits, n),
		accLimits: make([]Limits, n),
	}
	for i := 0; i < n; i++ {
		l.posLimits[i] = Unbounded()
		l.velLimits[i] = Unbounded()
		l.accLimits[i] = Unbounded()
	}
	return l
}

func (l *DOFLayout) NumDOFs() int     { return len(l.posLimits) }
func (l *DOFLayout) NumBaseDOFs() int { return l.numBase }
func (l *DOFLayout) NumJoints() int   { return len(l.posLimits) - l.numBase }

// Valid reports whether dof is a legal DOF index for this layout.
func (l *DOFLayout) Valid(dof int) bool {
	return dof >= 0 && dof < l.NumDOFs()
}

// JointIndex converts a DOF index to a joint index. The second return is
// false when dof is out of range or addresses a base-pose DOF.
func (l *DOFLayout) JointIndex(dof int) (int, bool) {
	if dof < l.numBase || dof >= l.NumDOFs() {
		return -1, false
	}
	return dof - l.numBase, true
}

// DOFIndex converts a joint index to its DOF index.
func (l *DOFLayout) DOFIndex(joint int) int {
	return joint + l.numBase
}

// SetJointLimits installs the limit triple of one joint.
func (l *DOFLayout) SetJointLimits(joint int, pos, vel, acc Limits) {
	d := l.DOFIndex(joint)
	l.posLimits[d] = pos
	l.velLimits[d] = vel
	l.accLimits[d] = acc
}

// Info returns the full DOF description for one index.
func (l *DOFLayout) Info(dof int) (DOFInfo, bool) {
	if !l.Valid(dof) {
		return DOFInfo{}, false
	}
	return DOFInfo{
		Index:              dof,
		PositionLimits:     l.posLimits[dof],
		VelocityLimits:     l.velLimits[dof],
		AccelerationLimits: l.accLimits[dof],
	}, true
}

// PositionLimits returns the position limit rows for the given indices,
// in request order. Out-of-range indices yield unbounded rows.
func (l *DOFLayout) PositionLimits(indices []int) []Limits {
	return l.gather(l.posLimits, indices)
}

// VelocityLimits returns the velocity limit rows for the given indices.
func (l *DOFLayout) VelocityLimits(indices []int) []Limits {
	return l.gather(l.velLimits, indices)
}

// AccelerationLimits returns the acceleration limit rows for the given indices.
func (l *DOFLayout) AccelerationLimits(indices []int) []Limits {
	return l.gather(l.accLimits, indices)
}

func (l *DOFLayout) gather(table []Limits, indices []int) []Limits {
	out := make([]Limits, 0, len(indices))
	for _, i := range indices {
		if !l.Valid(i) {
			out = append(out, Unbounded())
			continue
		}
		out = append(out, table[i])
	}
	return out
}
