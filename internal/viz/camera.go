package viz

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera projects world coordinates onto the canvas. Rotation is applied
// about the world axes before a simple perspective divide.
type Camera struct {
	Distance         float64
	Near             float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 50, Near: 0.1, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) rotate(p mgl64.Vec3) mgl64.Vec3 {
	q := mgl64.AnglesToQuat(c.RotX, c.RotY, c.RotZ, mgl64.XYZ)
	return q.Rotate(p)
}

// Project converts a world point to sub-pixel canvas coordinates.
// Returns x, y, depth, and whether the point lands on the canvas.
func (c *Camera) Project(p mgl64.Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.rotate(p).Mul(c.Zoom)
	if rot.Z() >= c.Distance-c.Near {
		return 0, 0, 0, false
	}
	scale := c.Distance / (c.Distance - rot.Z())
	minDim := math.Min(float64(sw), float64(sh))
	pScale := minDim / 3.0
	sx := int(rot.X()*scale*pScale) + sw/2
	sy := int(-rot.Y()*scale*pScale) + sh/2
	return sx, sy, rot.Z(), sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

// Edge is one wireframe segment in world coordinates.
type Edge struct {
	A, B mgl64.Vec3
}

// Wireframe accumulates edges for one rendered frame.
type Wireframe struct {
	Edges []Edge
}

func (w *Wireframe) Add(a, b mgl64.Vec3) { w.Edges = append(w.Edges, Edge{a, b}) }
func (w *Wireframe) Point(p mgl64.Vec3)  { w.Edges = append(w.Edges, Edge{p, p}) }
func (w *Wireframe) Clear()              { w.Edges = w.Edges[:0] }

// Render draws the wireframe back to front.
func Render(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	pw, ph := c.Width*2, c.Height*4
	type projected struct {
		x1, y1, x2, y2 int
		depth          float64
	}
	proj := make([]projected, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.A, pw, ph)
		x2, y2, d2, v2 := cam.Project(e.B, pw, ph)
		if v1 || v2 {
			proj = append(proj, projected{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		if e.x1 == e.x2 && e.y1 == e.y2 {
			c.Set(e.x1, e.y1)
		} else {
			c.Line(e.x1, e.y1, e.x2, e.y2)
		}
	}
}
