package kinworld

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/robokit/simenv/internal/simenv"
)

type shapeKind int

const (
	shapeNone shapeKind = iota
	shapeSphere
	shapeBox
)

// shape is the collision geometry attached to a link, expressed in the
// link frame.
type shape struct {
	kind   shapeKind
	radius float64
	half   mgl64.Vec3
	origin simenv.Transform
}

// worldShape is a shape placed in the world frame for one query.
type worldShape struct {
	kind   shapeKind
	center mgl64.Vec3
	radius float64
	half   mgl64.Vec3
	rot    mgl64.Quat
}

func (s shape) placed(linkTF simenv.Transform) worldShape {
	tf := linkTF.Mul(s.origin)
	return worldShape{
		kind:   s.kind,
		center: tf.Position,
		radius: s.radius,
		half:   s.half,
		rot:    tf.Rotation,
	}
}

// collideShapes tests two placed shapes. The returned normal points from
// a toward b and the point lies between the two surfaces.
func collideShapes(a, b worldShape) (bool, mgl64.Vec3, mgl64.Vec3) {
	switch {
	case a.kind == shapeSphere && b.kind == shapeSphere:
		return sphereSphere(a, b)
	case a.kind == shapeSphere && b.kind == shapeBox:
		return sphereBox(a, b, false)
	case a.kind == shapeBox && b.kind == shapeSphere:
		return sphereBox(b, a, true)
	case a.kind == shapeBox && b.kind == shapeBox:
		return boxBox(a, b)
	default:
		return false, mgl64.Vec3{}, mgl64.Vec3{}
	}
}

func sphereSphere(a, b worldShape) (bool, mgl64.Vec3, mgl64.Vec3) {
	d := b.center.Sub(a.center)
	dist := d.Len()
	if dist >= a.radius+b.radius {
		return false, mgl64.Vec3{}, mgl64.Vec3{}
	}
	var normal mgl64.Vec3
	if dist > 1e-12 {
		normal = d.Mul(1 / dist)
	} else {
		normal = mgl64.Vec3{0, 0, 1}
	}
	pen := a.radius + b.radius - dist
	point := a.center.Add(normal.Mul(a.radius - pen/2))
	return true, point, normal
}

// sphereBox tests a sphere against an oriented box. flip inverts the
// normal so it still points from the caller's first shape to the second.
func sphereBox(sphere, box worldShape, flip bool) (bool, mgl64.Vec3, mgl64.Vec3) {
	inv := box.rot.Inverse()
	local := inv.Rotate(sphere.center.Sub(box.center))
	closest := mgl64.Vec3{
		clampf(local.X(), -box.half.X(), box.half.X()),
		clampf(local.Y(), -box.half.Y(), box.half.Y()),
		clampf(local.Z(), -box.half.Z(), box.half.Z()),
	}
	delta := local.Sub(closest)
	dist := delta.Len()
	if dist >= sphere.radius {
		return false, mgl64.Vec3{}, mgl64.Vec3{}
	}

	var normalLocal mgl64.Vec3
	if dist > 1e-12 {
		// Sphere center outside the box: push along the surface delta.
		normalLocal = delta.Mul(-1 / dist)
	} else {
		// Center inside the box: push out along the axis with the least
		// remaining distance to a face.
		normalLocal = mgl64.Vec3{0, 0, -1}
		best := math.MaxFloat64
		for axis := 0; axis < 3; axis++ {
			for _, sign := range []float64{-1, 1} {
				room := box.half[axis] - sign*local[axis]
				if room < best {
					best = room
					normalLocal = mgl64.Vec3{}
					normalLocal[axis] = -sign
				}
			}
		}
	}
	point := box.center.Add(box.rot.Rotate(closest))
	normal := box.rot.Rotate(normalLocal) // points sphere -> box
	if flip {
		normal = normal.Mul(-1)
	}
	return true, point, normal
}

// boxBox runs a separating-axis test over the fifteen candidate axes of
// two oriented boxes. The normal is the minimum-penetration axis.
func boxBox(a, b worldShape) (bool, mgl64.Vec3, mgl64.Vec3) {
	axesA := boxAxes(a.rot)
	axesB := boxAxes(b.rot)

	candidates := make([]mgl64.Vec3, 0, 15)
	candidates = append(candidates, axesA[:]...)
	candidates = append(candidates, axesB[:]...)
	for _, ea := range axesA {
		for _, eb := range axesB {
			cross := ea.Cross(eb)
			if cross.Len() > 1e-9 {
				candidates = append(candidates, cross.Normalize())
			}
		}
	}

	d := b.center.Sub(a.center)
	minPen := math.MaxFloat64
	var minAxis mgl64.Vec3
	for _, axis := range candidates {
		ra := projectedRadius(a, axesA, axis)
		rb := projectedRadius(b, axesB, axis)
		dist := d.Dot(axis)
		pen := ra + rb - math.Abs(dist)
		if pen <= 0 {
			return false, mgl64.Vec3{}, mgl64.Vec3{}
		}
		if pen < minPen {
			minPen = pen
			if dist < 0 {
				axis = axis.Mul(-1)
			}
			minAxis = axis
		}
	}
	point := a.center.Add(d.Mul(0.5))
	return true, point, minAxis
}

func boxAxes(q mgl64.Quat) [3]mgl64.Vec3 {
	return [3]mgl64.Vec3{
		q.Rotate(mgl64.Vec3{1, 0, 0}),
		q.Rotate(mgl64.Vec3{0, 1, 0}),
		q.Rotate(mgl64.Vec3{0, 0, 1}),
	}
}

func projectedRadius(s worldShape, axes [3]mgl64.Vec3, axis mgl64.Vec3) float64 {
	r := 0.0
	for i := 0; i < 3; i++ {
		r += math.Abs(axes[i].Dot(axis)) * s.half[i]
	}
	return r
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
