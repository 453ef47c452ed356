package kinworld

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
)

// recursiveMutex lets the goroutine holding the lock re-acquire it, so a
// controller callback running inside StepPhysics can call back into the
// world without deadlocking. Go offers no goroutine-local storage, so the
// owner is identified by the goroutine id from the runtime stack header.
type recursiveMutex struct {
	mu    sync.Mutex
	owner atomic.Uint64
	depth int
}

func (m *recursiveMutex) Lock() {
	id := goid()
	if m.owner.Load() == id {
		m.depth++
		return
	}
	m.mu.Lock()
	m.owner.Store(id)
	m.depth = 1
}

func (m *recursiveMutex) Unlock() {
	if m.owner.Load() != goid() {
		panic("kinworld: world mutex unlocked by non-owning goroutine")
	}
	m.depth--
	if m.depth == 0 {
		m.owner.Store(0)
		m.mu.Unlock()
	}
}

// goid parses the current goroutine id out of the stack header
// ("goroutine 123 [running]:"). Goroutine ids start at 1, so 0 is a safe
// no-owner sentinel.
func goid() uint64 {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)
	fields := bytes.Fields(buf[:n])
	if len(fields) < 2 {
		return 0
	}
	id, err := strconv.ParseUint(string(fields[1]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
