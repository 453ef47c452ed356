package kinworld

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/robokit/simenv/internal/simenv"
)

// Joint connects two links of one object. Its position and velocity live
// in the object's DOF vectors; the joint is a view onto one DOF.
type Joint struct {
	entityCore
	obj    *Object
	index  int
	jtype  simenv.JointType
	axis   mgl64.Vec3
	origin simenv.Transform
	parent int
	child  int
}

var _ simenv.Joint = (*Joint)(nil)

func (j *Joint) JointIndex() int             { return j.index }
func (j *Joint) DOFIndex() int               { return j.obj.layout.DOFIndex(j.index) }
func (j *Joint) JointType() simenv.JointType { return j.jtype }
func (j *Joint) Object() simenv.Object       { return j.obj.self }
func (j *Joint) ParentLink() simenv.Link     { return j.obj.links[j.parent] }
func (j *Joint) ChildLink() simenv.Link      { return j.obj.links[j.child] }

func (j *Joint) Position() float64 {
	return j.obj.positions[j.DOFIndex()]
}

func (j *Joint) SetPosition(v float64) {
	dof := j.DOFIndex()
	j.obj.positions[dof] = j.PositionLimits().Clamp(v)
	j.obj.updateKinematics()
}

func (j *Joint) Velocity() float64 {
	return j.obj.velocities[j.DOFIndex()]
}

func (j *Joint) SetVelocity(v float64) {
	j.obj.velocities[j.DOFIndex()] = j.VelocityLimits().Clamp(v)
}

func (j *Joint) PositionLimits() simenv.Limits {
	info, _ := j.obj.layout.Info(j.DOFIndex())
	return info.PositionLimits
}

func (j *Joint) VelocityLimits() simenv.Limits {
	info, _ := j.obj.layout.Info(j.DOFIndex())
	return info.VelocityLimits
}

func (j *Joint) AccelerationLimits() simenv.Limits {
	info, _ := j.obj.layout.Info(j.DOFIndex())
	return info.AccelerationLimits
}

func (j *Joint) DOFInfo() simenv.DOFInfo {
	info, _ := j.obj.layout.Info(j.DOFIndex())
	return info
}

// motion returns the joint's displacement transform for its current
// position: a rotation about the axis for revolute joints, a translation
// along it for prismatic ones.
func (j *Joint) motion() simenv.Transform {
	pos := j.Position()
	if j.jtype == simenv.JointRevolute {
		return simenv.Transform{Rotation: mgl64.QuatRotate(pos, j.axis)}
	}
	return simenv.Transform{Position: j.axis.Mul(pos), Rotation: mgl64.QuatIdent()}
}
