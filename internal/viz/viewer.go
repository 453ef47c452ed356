package viz

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/robokit/simenv/internal/simenv"
)

// Viewer collects wireframe geometry for one rendered frame. It is the
// rendering collaborator handed to a world: planners and controllers call
// DrawFrame to overlay coordinate frames, Capture adds the skeleton of
// everything registered in the world.
type Viewer struct {
	mu sync.Mutex
	wf Wireframe
}

var _ simenv.WorldViewer = (*Viewer)(nil)

func NewViewer() *Viewer { return &Viewer{} }

// DrawFrame overlays a coordinate triad at the given pose. Line width has
// no meaning on a Braille canvas and is ignored.
func (v *Viewer) DrawFrame(tf simenv.Transform, length, width float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	o := tf.Position
	v.wf.Add(o, tf.Apply(mgl64.Vec3{length, 0, 0}))
	v.wf.Add(o, tf.Apply(mgl64.Vec3{0, length, 0}))
	v.wf.Add(o, tf.Apply(mgl64.Vec3{0, 0, length}))
}

// Capture adds the link skeleton of every body in the world: one segment
// per joint from parent to child link, a point for solitary links.
func (v *Viewer) Capture(w simenv.World) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, o := range w.GetObjects(true) {
		joints := o.Joints()
		for _, j := range joints {
			a := j.ParentLink().Transform().Position
			b := j.ChildLink().Transform().Position
			v.wf.Add(a, b)
		}
		if len(joints) == 0 {
			for _, l := range o.Links() {
				v.wf.Point(l.Transform().Position)
			}
		}
	}
}

// Render projects the accumulated wireframe onto the canvas and clears
// the buffer for the next frame.
func (v *Viewer) Render(c *Canvas, cam *Camera) {
	v.mu.Lock()
	defer v.mu.Unlock()
	Render(c, &v.wf, cam)
	v.wf.Clear()
}

// EdgeCount reports how many segments are queued for the next render.
func (v *Viewer) EdgeCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.wf.Edges)
}
