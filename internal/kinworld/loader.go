package kinworld

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/robokit/simenv/internal/scene"
	"github.com/robokit/simenv/internal/simenv"
)

// numFreeBaseDOFs is the pose parameter count of a non-static body:
// x, y, z and XYZ Euler rx, ry, rz.
const numFreeBaseDOFs = 6

// buildObjectInto constructs an object from its spec in place, so a Robot
// can embed the object core without breaking back-references. The spec is
// assumed validated.
func buildObjectInto(o *Object, w *World, spec *scene.ObjectSpec, etype simenv.EntityType, self simenv.Object) error {
	numBase := numFreeBaseDOFs
	if spec.Static {
		numBase = 0
	}
	o.entityCore = entityCore{name: spec.Name, etype: etype, tf: poseFromSlice(spec.Pose), world: w}
	o.self = self
	o.static = spec.Static
	o.layout = simenv.NewDOFLayout(numBase, len(spec.Joints))
	o.positions = make([]float64, o.layout.NumDOFs())
	o.velocities = make([]float64, o.layout.NumDOFs())
	o.active = o.DOFIndices()

	o.links = make([]*Link, len(spec.Links))
	o.linkByName = make(map[string]int, len(spec.Links))
	for i, ls := range spec.Links {
		sh, err := shapeFromSpec(ls)
		if err != nil {
			return fmt.Errorf("link %q: %w", ls.Name, err)
		}
		o.links[i] = &Link{
			entityCore: entityCore{name: ls.Name, etype: simenv.EntityLink, tf: simenv.IdentityTransform(), world: w},
			obj:        o,
			index:      i,
			shape:      sh,
		}
		o.linkByName[ls.Name] = i
	}

	o.joints = make([]*Joint, len(spec.Joints))
	o.jointByName = make(map[string]int, len(spec.Joints))
	for i, js := range spec.Joints {
		axis := mgl64.Vec3{js.Axis[0], js.Axis[1], js.Axis[2]}
		if axis.Len() < 1e-12 {
			return fmt.Errorf("joint %q: zero axis", js.Name)
		}
		jtype := simenv.JointRevolute
		if js.Type == "prismatic" {
			jtype = simenv.JointPrismatic
		}
		parent := o.linkByName[js.Parent]
		child := o.linkByName[js.Child]
		o.joints[i] = &Joint{
			entityCore: entityCore{name: js.Name, etype: simenv.EntityJoint, tf: simenv.IdentityTransform(), world: w},
			obj:        o,
			index:      i,
			jtype:      jtype,
			axis:       axis.Normalize(),
			origin:     poseFromSlice(js.Origin),
			parent:     parent,
			child:      child,
		}
		o.jointByName[js.Name] = i
		o.links[parent].children = append(o.links[parent].children, i)
		o.links[child].parents = append(o.links[child].parents, i)
		o.layout.SetJointLimits(i,
			limitsFromPair(js.PositionLimits),
			limitsFromPair(js.VelocityLimits),
			limitsFromPair(js.AccelerationLimits))
	}

	o.baseLink = -1
	for i, l := range o.links {
		if len(l.parents) == 0 {
			o.baseLink = i
			break
		}
	}
	if o.baseLink < 0 {
		return fmt.Errorf("object %q: no root link", spec.Name)
	}

	o.syncBaseFromPose()
	o.updateKinematics()
	return nil
}

func newObject(w *World, spec *scene.ObjectSpec) (*Object, error) {
	o := &Object{}
	if err := buildObjectInto(o, w, spec, simenv.EntityObject, o); err != nil {
		return nil, err
	}
	return o, nil
}

func newRobot(w *World, spec *scene.ObjectSpec) (*Robot, error) {
	r := &Robot{}
	if err := buildObjectInto(&r.Object, w, spec, simenv.EntityRobot, r); err != nil {
		return nil, err
	}
	return r, nil
}

func shapeFromSpec(ls scene.LinkSpec) (shape, error) {
	origin := poseFromSlice(ls.Origin)
	switch ls.Shape.Type {
	case "", "none":
		return shape{kind: shapeNone, origin: origin}, nil
	case "sphere":
		return shape{kind: shapeSphere, radius: ls.Shape.Radius, origin: origin}, nil
	case "box":
		e := ls.Shape.Extents
		return shape{
			kind:   shapeBox,
			half:   mgl64.Vec3{e[0], e[1], e[2]},
			origin: origin,
		}, nil
	default:
		return shape{}, fmt.Errorf("unknown shape type %q", ls.Shape.Type)
	}
}

func poseFromSlice(p []float64) simenv.Transform {
	if len(p) != 6 {
		return simenv.IdentityTransform()
	}
	return simenv.PoseFromXYZEuler(p[0], p[1], p[2], p[3], p[4], p[5])
}

func limitsFromPair(p []float64) simenv.Limits {
	if len(p) != 2 {
		return simenv.Unbounded()
	}
	return simenv.Limits{Min: p[0], Max: p[1]}
}
