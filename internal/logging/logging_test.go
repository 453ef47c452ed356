package logging

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/robokit/simenv/internal/simenv"
)

// syncBuffer guards a bytes.Buffer so the concurrency test can write and
// read it from multiple goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestLevelSuppression(t *testing.T) {
	var buf syncBuffer
	l := New(&buf, simenv.LevelWarn)

	l.Debug("dropped", "")
	l.Info("dropped too", "")
	l.Warn("kept", "")
	l.Error("kept as well", "")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "kept")
	assert.Contains(t, out, "kept as well")
}

func TestSetLevel(t *testing.T) {
	var buf syncBuffer
	l := New(&buf, simenv.LevelError)
	l.Debug("early", "")
	l.SetLevel(simenv.LevelDebug)
	assert.Equal(t, simenv.LevelDebug, l.Level())
	l.Debug("late", "")

	out := buf.String()
	assert.NotContains(t, out, "early")
	assert.Contains(t, out, "late")
}

func TestPrefixAppears(t *testing.T) {
	var buf syncBuffer
	l := New(&buf, simenv.LevelDebug)
	l.Info("hello", "kinworld")
	assert.Contains(t, buf.String(), "kinworld")
}

func TestConcurrentUse(t *testing.T) {
	var buf syncBuffer
	l := New(&buf, simenv.LevelDebug)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				l.Info("msg", "worker")
				l.SetLevel(simenv.LevelDebug)
			}
		}()
	}
	wg.Wait()

	lines := strings.Count(buf.String(), "\n")
	assert.Equal(t, 8*50, lines)
}
