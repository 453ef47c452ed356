package kinworld

import (
	"math"
	"testing"

	"github.com/robokit/simenv/internal/scene"
	"github.com/robokit/simenv/internal/simenv"
)

func TestSphereSphereCollision(t *testing.T) {
	w := newTestWorld(t)
	a := mustObject(t, w, ballSpec("a", 0, 0, 0, 0.5))
	b := mustObject(t, w, ballSpec("b", 0.8, 0, 0, 0.5))
	c := mustObject(t, w, ballSpec("c", 5, 0, 0, 0.5))

	hit, contacts := a.CheckCollisionWith(b)
	if !hit {
		t.Fatal("overlapping spheres did not collide")
	}
	if len(contacts) != 1 {
		t.Fatalf("got %d contacts, want 1", len(contacts))
	}
	ct := contacts[0]
	if ct.ObjectA != "a" || ct.ObjectB != "b" || ct.LinkA != "body" || ct.LinkB != "body" {
		t.Errorf("contact names = %+v", ct)
	}
	if math.Abs(ct.Normal.X()-1) > 1e-9 {
		t.Errorf("normal = %v, want +x", ct.Normal)
	}
	if math.Abs(ct.Point.X()-0.4) > 1e-9 {
		t.Errorf("contact point = %v, want x 0.4", ct.Point)
	}

	if hit, _ := a.CheckCollisionWith(c); hit {
		t.Error("distant spheres reported a collision")
	}
}

func TestSelfCheckScansTheWorld(t *testing.T) {
	w := newTestWorld(t)
	a := mustObject(t, w, ballSpec("a", 0, 0, 0, 0.5))
	mustObject(t, w, ballSpec("b", 0.8, 0, 0, 0.5))
	mustObject(t, w, ballSpec("c", -0.8, 0, 0, 0.5))
	mustObject(t, w, ballSpec("far", 9, 0, 0, 0.5))

	hit, contacts := a.CheckCollision()
	if !hit {
		t.Fatal("self check missed the overlaps")
	}
	if len(contacts) != 2 {
		t.Fatalf("got %d contacts, want 2 (b and c)", len(contacts))
	}
	for _, ct := range contacts {
		if ct.ObjectA != "a" {
			t.Errorf("contact does not originate at a: %+v", ct)
		}
	}
}

func TestListFormMatchesPairwiseUnion(t *testing.T) {
	w := newTestWorld(t)
	a := mustObject(t, w, ballSpec("a", 0, 0, 0, 0.5))
	b := mustObject(t, w, ballSpec("b", 0.8, 0, 0, 0.5))
	c := mustObject(t, w, ballSpec("c", -0.8, 0, 0, 0.5))
	far := mustObject(t, w, ballSpec("far", 9, 0, 0, 0.5))

	hit, union := a.CheckCollisionWithAny([]simenv.Object{b, far, c})
	if !hit {
		t.Fatal("list form missed the overlaps")
	}

	var pairwise []simenv.Contact
	for _, other := range []simenv.Object{b, far, c} {
		_, cs := a.CheckCollisionWith(other)
		pairwise = append(pairwise, cs...)
	}
	if len(union) != len(pairwise) {
		t.Fatalf("list form returned %d contacts, pairwise %d", len(union), len(pairwise))
	}
	for i := range union {
		if union[i] != pairwise[i] {
			t.Errorf("contact %d differs: %+v vs %+v", i, union[i], pairwise[i])
		}
	}

	// A list that collides nowhere reports false.
	if hit, cs := a.CheckCollisionWithAny([]simenv.Object{far}); hit || len(cs) != 0 {
		t.Errorf("far-only list: hit=%v contacts=%v", hit, cs)
	}
}

func TestLinkLevelQueries(t *testing.T) {
	w := newTestWorld(t)
	arm := mustRobot(t, w, armSpec("arm"))
	// At rest the upper sphere sits at z 0.8; park a ball there.
	ball := mustObject(t, w, ballSpec("ball", 0, 0, 0.85, 0.1))

	upper := arm.Link("upper")
	base := arm.Link("base")

	hit, contacts := upper.CheckCollision()
	if !hit || len(contacts) != 1 {
		t.Fatalf("upper self check: hit=%v contacts=%d", hit, len(contacts))
	}
	if contacts[0].LinkA != "upper" || contacts[0].ObjectB != "ball" {
		t.Errorf("contact = %+v", contacts[0])
	}

	// The base box is nowhere near the ball.
	if hit, _ := base.CheckCollision(); hit {
		t.Error("base reported a collision")
	}

	// A link self check never reports sibling links, even when the chain
	// folds onto itself.
	arm.Joint("shoulder").SetPosition(-1.57)
	if hit, _ := upper.CheckCollisionWithObjects([]simenv.Object{ball}); hit {
		t.Error("folded arm still touches the ball")
	}

	if hit, _ := upper.CheckCollisionWithLinks([]simenv.Link{ball.Link("body")}); hit {
		t.Error("link-vs-link against the moved-away ball")
	}
}

func TestRobotSelfCheckExcludesOwnLinks(t *testing.T) {
	w := newTestWorld(t)
	// Two spheres on one robot that heavily overlap each other at rest.
	folded := &scene.ObjectSpec{
		Name:   "folded",
		Static: true,
		Links: []scene.LinkSpec{
			{Name: "l1", Shape: scene.ShapeSpec{Type: "sphere", Radius: 0.5}},
			{Name: "l2", Shape: scene.ShapeSpec{Type: "sphere", Radius: 0.5}},
		},
		Joints: []scene.JointSpec{
			{
				Name: "j", Type: "revolute", Parent: "l1", Child: "l2",
				Origin: []float64{0.1, 0, 0, 0, 0, 0},
				Axis:   []float64{0, 0, 1},
			},
		},
	}
	r := mustRobot(t, w, folded)

	if hit, _ := r.CheckCollision(); hit {
		t.Error("self check reported contacts between the robot's own links")
	}
	if hit, _ := w.CheckCollision(r); hit {
		t.Error("world dispatch reported intra-robot contacts")
	}

	// A real neighbor still shows up, once per touching link.
	mustObject(t, w, ballSpec("ball", 0.9, 0, 0, 0.5))
	hit, contacts := r.CheckCollision()
	if !hit || len(contacts) != 2 {
		t.Fatalf("hit=%v contacts=%d, want both links against the ball", hit, len(contacts))
	}
	for _, ct := range contacts {
		if ct.ObjectB != "ball" {
			t.Errorf("unexpected contact partner: %+v", ct)
		}
	}
}

func TestWorldLevelDispatch(t *testing.T) {
	w := newTestWorld(t)
	a := mustObject(t, w, ballSpec("a", 0, 0, 0, 0.5))
	b := mustObject(t, w, ballSpec("b", 0.8, 0, 0, 0.5))
	arm := mustRobot(t, w, armSpec("arm"))

	if hit, _ := w.CheckCollision(a); !hit {
		t.Error("dispatch self check missed the overlap")
	}
	if hit, cs := w.CheckCollision(a, b); !hit || len(cs) != 1 {
		t.Errorf("dispatch pair: hit=%v contacts=%d", hit, len(cs))
	}
	if hit, _ := w.CheckCollision(a, arm); hit {
		t.Error("ball vs distant robot collided")
	}
	if hit, _ := w.CheckCollision(a.Link("body"), b); !hit {
		t.Error("link vs object dispatch missed the overlap")
	}
	if hit, _ := w.CheckCollision(a.Link("body"), b.Link("body")); !hit {
		t.Error("link vs link dispatch missed the overlap")
	}

	// Joints carry no geometry; the query fails rather than guessing.
	if hit, cs := w.CheckCollision(arm.Joint("shoulder")); hit || cs != nil {
		t.Error("joint query did not fail cleanly")
	}
}

func TestCrossBackendQueriesFailFast(t *testing.T) {
	w1 := newTestWorld(t)
	w2 := newTestWorld(t)
	a := mustObject(t, w1, ballSpec("a", 0, 0, 0, 0.5))
	foreign := mustObject(t, w2, ballSpec("a", 0, 0, 0, 0.5))

	if hit, cs := a.CheckCollisionWith(foreign); hit || cs != nil {
		t.Error("cross-world object query did not fail")
	}
	if hit, _ := w1.CheckCollision(foreign); hit {
		t.Error("dispatch accepted a foreign entity")
	}
	if hit, _ := a.Link("body").CheckCollisionWithLinks([]simenv.Link{foreign.Link("body")}); hit {
		t.Error("cross-world link query did not fail")
	}
	// Foreign entries in a list are skipped, local ones still count.
	b := mustObject(t, w1, ballSpec("b", 0.8, 0, 0, 0.5))
	hit, cs := a.CheckCollisionWithAny([]simenv.Object{foreign, b})
	if !hit || len(cs) != 1 {
		t.Errorf("mixed list: hit=%v contacts=%d, want local hit only", hit, len(cs))
	}
}

func TestBoxCollisions(t *testing.T) {
	w := newTestWorld(t)

	boxAt := func(name string, x float64) *scene.ObjectSpec {
		return &scene.ObjectSpec{
			Name: name,
			Pose: []float64{x, 0, 0, 0, 0, 0},
			Links: []scene.LinkSpec{
				{Name: "body", Shape: scene.ShapeSpec{Type: "box", Extents: []float64{0.5, 0.5, 0.5}}},
			},
		}
	}
	a := mustObject(t, w, boxAt("a", 0))
	b := mustObject(t, w, boxAt("b", 0.9))
	c := mustObject(t, w, boxAt("c", 2.5))
	sphere := mustObject(t, w, ballSpec("s", 0, 0.8, 0, 0.4))

	if hit, cs := a.CheckCollisionWith(b); !hit || len(cs) != 1 {
		t.Errorf("overlapping boxes: hit=%v contacts=%d", hit, len(cs))
	}
	if hit, _ := a.CheckCollisionWith(c); hit {
		t.Error("separated boxes collided")
	}
	hit, cs := a.CheckCollisionWith(sphere)
	if !hit || len(cs) != 1 {
		t.Fatalf("box vs sphere: hit=%v contacts=%d", hit, len(cs))
	}
	if math.Abs(cs[0].Normal.Y()-1) > 1e-9 {
		t.Errorf("box-sphere normal = %v, want +y", cs[0].Normal)
	}
}
