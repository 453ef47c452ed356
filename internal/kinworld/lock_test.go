package kinworld

import (
	"sync"
	"testing"
	"time"
)

func TestLockIsReentrant(t *testing.T) {
	w := newTestWorld(t)
	done := make(chan struct{})
	go func() {
		w.Lock()
		w.Lock()
		w.Unlock()
		w.Unlock()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("nested Lock on one goroutine deadlocked")
	}
}

func TestLockExcludesOtherGoroutines(t *testing.T) {
	w := newTestWorld(t)
	mustObject(t, w, ballSpec("ball", 0, 0, 0, 0.1))

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				w.Lock()
				ball := w.GetObject("ball")
				pos := ball.DOFPositions(ball.DOFIndices())
				pos[0] += 1
				if err := ball.SetDOFPositions(pos, ball.DOFIndices()); err != nil {
					t.Errorf("goroutine %d: %v", g, err)
				}
				w.Unlock()
			}
		}(g)
	}
	wg.Wait()

	ball := w.GetObject("ball")
	if got := ball.DOFPositions([]int{0})[0]; got != 400 {
		t.Errorf("x = %f after 400 guarded increments, want 400", got)
	}
}

// Controllers run while StepPhysics holds the world lock; they must be
// able to call back into the world without deadlocking.
func TestControllerMayReenterWorld(t *testing.T) {
	w := newTestWorld(t)
	w.SetPhysicsTimeStep(0.1)
	arm := mustRobot(t, w, armSpec("arm"))
	arm.SetController(func(_, _ []float64, _ float64) ([]float64, bool) {
		w.SaveState()
		if len(w.WorldState()) != 1 {
			t.Error("world state unavailable from controller")
		}
		return []float64{0.5}, true
	})

	done := make(chan struct{})
	go func() {
		w.StepPhysics(3)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("controller callback into the world deadlocked")
	}
	if w.SavedStates() != 3 {
		t.Errorf("SavedStates = %d, want 3", w.SavedStates())
	}
}
