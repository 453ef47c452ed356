package kinworld

import (
	"testing"

	"github.com/robokit/simenv/internal/logging"
	"github.com/robokit/simenv/internal/scene"
)

// ballSpec is a free rigid body with a single spherical link.
func ballSpec(name string, x, y, z, radius float64) *scene.ObjectSpec {
	return &scene.ObjectSpec{
		Name: name,
		Pose: []float64{x, y, z, 0, 0, 0},
		Links: []scene.LinkSpec{
			{Name: "body", Shape: scene.ShapeSpec{Type: "sphere", Radius: radius}},
		},
	}
}

// armSpec is a table-mounted robot: a static box base with one revolute
// shoulder joint carrying a spherical upper link offset along its z axis.
func armSpec(name string) *scene.ObjectSpec {
	return &scene.ObjectSpec{
		Name:   name,
		Static: true,
		Links: []scene.LinkSpec{
			{Name: "base", Shape: scene.ShapeSpec{Type: "box", Extents: []float64{0.1, 0.1, 0.25}}},
			{
				Name:   "upper",
				Shape:  scene.ShapeSpec{Type: "sphere", Radius: 0.1},
				Origin: []float64{0, 0, 0.3, 0, 0, 0},
			},
		},
		Joints: []scene.JointSpec{
			{
				Name:               "shoulder",
				Type:               "revolute",
				Parent:             "base",
				Child:              "upper",
				Origin:             []float64{0, 0, 0.5, 0, 0, 0},
				Axis:               []float64{0, 1, 0},
				PositionLimits:     []float64{-1.57, 1.57},
				VelocityLimits:     []float64{-1, 1},
				AccelerationLimits: []float64{-2, 2},
			},
		},
	}
}

// cartSpec is a free-base robot with one prismatic joint, so its joint
// DOF sits behind six base DOFs.
func cartSpec(name string) *scene.ObjectSpec {
	return &scene.ObjectSpec{
		Name: name,
		Links: []scene.LinkSpec{
			{Name: "chassis", Shape: scene.ShapeSpec{Type: "box", Extents: []float64{0.2, 0.2, 0.05}}},
			{Name: "slider", Shape: scene.ShapeSpec{Type: "sphere", Radius: 0.05}},
		},
		Joints: []scene.JointSpec{
			{
				Name:           "rail",
				Type:           "prismatic",
				Parent:         "chassis",
				Child:          "slider",
				Axis:           []float64{1, 0, 0},
				PositionLimits: []float64{-0.5, 0.5},
			},
		},
	}
}

func newTestWorld(t *testing.T) *World {
	t.Helper()
	return New(logging.Discard())
}

func mustObject(t *testing.T, w *World, spec *scene.ObjectSpec) *Object {
	t.Helper()
	o, err := w.AddObject(spec)
	if err != nil {
		t.Fatalf("AddObject(%q): %v", spec.Name, err)
	}
	return o.(*Object)
}

func mustRobot(t *testing.T, w *World, spec *scene.ObjectSpec) *Robot {
	t.Helper()
	r, err := w.AddRobot(spec)
	if err != nil {
		t.Fatalf("AddRobot(%q): %v", spec.Name, err)
	}
	return r.(*Robot)
}
