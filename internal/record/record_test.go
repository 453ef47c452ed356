package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robokit/simenv/internal/kinworld"
	"github.com/robokit/simenv/internal/logging"
	"github.com/robokit/simenv/internal/scene"
)

func testWorld(t *testing.T) *kinworld.World {
	t.Helper()
	w := kinworld.New(logging.Discard())
	_, err := w.AddRobot(&scene.ObjectSpec{
		Name:   "arm",
		Static: true,
		Links: []scene.LinkSpec{
			{Name: "base"},
			{Name: "tip"},
		},
		Joints: []scene.JointSpec{
			{Name: "j", Type: "revolute", Parent: "base", Child: "tip", Axis: []float64{0, 0, 1}},
		},
	})
	require.NoError(t, err)
	return w
}

func TestRecorderRoundTrip(t *testing.T) {
	w := testWorld(t)
	store := New(t.TempDir())
	require.NoError(t, store.Init())

	rec := NewRecorder(w)
	arm := w.GetRobot("arm")
	for i := 0; i < 3; i++ {
		require.NoError(t, arm.SetDOFPositions([]float64{float64(i) * 0.1}, []int{0}))
		rec.Sample(float64(i) * 0.01)
	}
	assert.Equal(t, 3, rec.Samples())

	runID, err := store.Save("bench", 0.01, 3, rec)
	require.NoError(t, err)

	meta, err := store.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, "bench", meta.Scene)
	assert.Equal(t, []string{"arm"}, meta.Robots)
	assert.Equal(t, 3, meta.Steps)

	times, rows, err := store.LoadTrajectory(runID, "arm")
	require.NoError(t, err)
	require.Len(t, times, 3)
	require.Len(t, rows, 3)
	// One position column plus one velocity column.
	assert.Len(t, rows[1], 2)
	assert.InDelta(t, 0.1, rows[1][0], 1e-9)
}

func TestListSkipsForeignEntries(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	require.NoError(t, store.Init())

	runs, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, runs)

	w := testWorld(t)
	rec := NewRecorder(w)
	rec.Sample(0)
	_, err = store.Save("bench", 0.01, 1, rec)
	require.NoError(t, err)

	runs, err = store.List()
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
