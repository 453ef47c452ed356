package kinworld

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/robokit/simenv/internal/logging"
	"github.com/robokit/simenv/internal/scene"
	"github.com/robokit/simenv/internal/simenv"
)

// The suite drives the backend exclusively through the simenv interfaces,
// the way planner code sees it.
var _ = Describe("World contract", func() {
	var w simenv.World

	newWorld := func() *World { return New(logging.Discard()) }

	BeforeEach(func() {
		kw := newWorld()
		_, err := kw.AddObject(&scene.ObjectSpec{
			Name: "crate",
			Pose: []float64{1, 0, 0, 0, 0, 0},
			Links: []scene.LinkSpec{
				{Name: "body", Shape: scene.ShapeSpec{Type: "box", Extents: []float64{0.2, 0.2, 0.2}}},
			},
		})
		Expect(err).NotTo(HaveOccurred())
		_, err = kw.AddRobot(cartSpec("cart"))
		Expect(err).NotTo(HaveOccurred())
		w = kw
	})

	Describe("entity lookup", func() {
		It("returns nil for unknown names", func() {
			Expect(w.GetObject("nope")).To(BeNil())
			Expect(w.GetRobot("nope")).To(BeNil())
		})

		It("keeps objects and robots in separate namespaces", func() {
			Expect(w.GetObject("crate")).NotTo(BeNil())
			Expect(w.GetObject("cart")).To(BeNil())
			Expect(w.GetRobot("cart")).NotTo(BeNil())
		})

		It("reports entity metadata", func() {
			crate := w.GetObject("crate")
			Expect(crate.Name()).To(Equal("crate"))
			Expect(crate.Type()).To(Equal(simenv.EntityObject))
			Expect(crate.World()).To(BeIdenticalTo(w))

			cart := w.GetRobot("cart")
			Expect(cart.Type()).To(Equal(simenv.EntityRobot))
		})
	})

	Describe("DOF addressing", func() {
		It("maps joint indices behind the base block", func() {
			cart := w.GetRobot("cart")
			Expect(cart.NumDOFs()).To(Equal(7))
			Expect(cart.NumBaseDOFs()).To(Equal(6))

			j := cart.Joint("rail")
			Expect(j.JointIndex()).To(Equal(0))
			Expect(j.DOFIndex()).To(Equal(6))
			Expect(cart.JointFromDOFIndex(6)).To(BeIdenticalTo(j))
			Expect(cart.JointFromDOFIndex(0)).To(BeNil())
		})

		It("round-trips positions through joint and DOF views", func() {
			cart := w.GetRobot("cart")
			cart.Joint("rail").SetPosition(0.2)
			Expect(cart.DOFPositions([]int{6})).To(Equal([]float64{0.2}))

			Expect(cart.SetDOFPositions([]float64{-0.3}, []int{6})).To(Succeed())
			Expect(cart.Joint("rail").Position()).To(Equal(-0.3))
		})

		It("gathers limits in request order", func() {
			cart := w.GetRobot("cart")
			lims := cart.DOFPositionLimits([]int{6, 0})
			Expect(lims).To(HaveLen(2))
			Expect(lims[0].Min).To(Equal(-0.5))
			Expect(lims[1].IsUnbounded()).To(BeTrue())
		})
	})

	Describe("checkpoint stack", func() {
		It("survives a save, mutate, restore cycle", func() {
			cart := w.GetRobot("cart")
			w.SaveState()
			cart.Joint("rail").SetPosition(0.4)

			Expect(w.RestoreState()).To(BeTrue())
			Expect(cart.Joint("rail").Position()).To(BeZero())
			Expect(w.RestoreState()).To(BeFalse())
		})

		It("rejects inconsistent snapshots atomically", func() {
			ws := w.WorldState()
			st := ws["cart"]
			st.Positions = st.Positions[:1]
			ws["cart"] = st

			Expect(w.SetWorldState(ws)).To(MatchError(simenv.ErrDimensionMismatch))
		})
	})

	Describe("physics stepping", func() {
		It("advances robots under control", func() {
			w.SetPhysicsTimeStep(0.1)
			cart := w.GetRobot("cart")
			cart.SetController(func(_, _ []float64, _ float64) ([]float64, bool) {
				u := make([]float64, 7)
				u[6] = 1
				return u, true
			})
			w.StepPhysics(1)
			Expect(cart.Joint("rail").Velocity()).To(BeNumerically("~", 0.1, 1e-12))
			Expect(cart.Joint("rail").Position()).To(BeNumerically("~", 0.01, 1e-12))
		})
	})

	Describe("collision queries", func() {
		It("answers through every entry point consistently", func() {
			crate := w.GetObject("crate")
			cart := w.GetRobot("cart")

			// Drive the cart chassis into the crate.
			Expect(cart.SetDOFPositions([]float64{1, 0, 0, 0, 0, 0, 0}, cart.DOFIndices())).To(Succeed())

			byObject, _ := cart.CheckCollisionWith(crate)
			byList, _ := cart.CheckCollisionWithAny([]simenv.Object{crate})
			byWorld, _ := w.CheckCollision(cart, crate)
			bySelf, _ := cart.CheckCollision()
			Expect(byObject).To(BeTrue())
			Expect(byList).To(Equal(byObject))
			Expect(byWorld).To(Equal(byObject))
			Expect(bySelf).To(Equal(byObject))
		})

		It("labels contacts with both bodies", func() {
			crate := w.GetObject("crate")
			cart := w.GetRobot("cart")
			Expect(cart.SetDOFPositions([]float64{1, 0, 0, 0, 0, 0, 0}, cart.DOFIndices())).To(Succeed())

			hit, contacts := cart.CheckCollisionWith(crate)
			Expect(hit).To(BeTrue())
			Expect(contacts).NotTo(BeEmpty())
			Expect(contacts[0].ObjectA).To(Equal("cart"))
			Expect(contacts[0].ObjectB).To(Equal("crate"))
			Expect(math.IsNaN(contacts[0].Normal.Len())).To(BeFalse())
		})
	})
})
