// Package record persists simulation runs: one directory per run with
// JSON metadata and a CSV trajectory per robot.
package record

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/robokit/simenv/internal/simenv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string    `json:"id"`
	Scene     string    `json:"scene"`
	Timestamp time.Time `json:"timestamp"`
	Dt        float64   `json:"dt"`
	Steps     int       `json:"steps"`
	Robots    []string  `json:"robots"`
	Objects   []string  `json:"objects"`
}

// Recorder samples one world over a run. Sample is called between
// physics steps; Save writes everything out.
type Recorder struct {
	world simenv.World
	times []float64
	rows  map[string][][]float64
	order []string
}

func NewRecorder(w simenv.World) *Recorder {
	r := &Recorder{
		world: w,
		rows:  make(map[string][][]float64),
	}
	for _, o := range w.GetObjects(true) {
		r.order = append(r.order, o.Name())
	}
	return r
}

// Sample captures the full DOF state of every body at time t.
func (r *Recorder) Sample(t float64) {
	r.times = append(r.times, t)
	for _, name := range r.order {
		o := r.world.GetObject(name)
		if o == nil {
			if rb := r.world.GetRobot(name); rb != nil {
				o = rb
			}
		}
		if o == nil {
			continue
		}
		row := append(o.DOFPositions(o.DOFIndices()), o.DOFVelocities(o.DOFIndices())...)
		r.rows[name] = append(r.rows[name], row)
	}
}

func (r *Recorder) Samples() int { return len(r.times) }

// Save writes the run directory and returns the run ID.
func (s *Store) Save(sceneName string, dt float64, steps int, rec *Recorder) (string, error) {
	runID := fmt.Sprintf("%s_%d", sceneName, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	var robots, objects []string
	for _, rb := range rec.world.GetRobots() {
		robots = append(robots, rb.Name())
	}
	for _, o := range rec.world.GetObjects(false) {
		objects = append(objects, o.Name())
	}

	meta := RunMetadata{
		ID:        runID,
		Scene:     sceneName,
		Timestamp: time.Now(),
		Dt:        dt,
		Steps:     steps,
		Robots:    robots,
		Objects:   objects,
	}
	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}

	for _, name := range rec.order {
		rows := rec.rows[name]
		if len(rows) == 0 {
			continue
		}
		path := filepath.Join(runDir, name+".csv")
		if err := writeTrajectory(path, rec.times, rows); err != nil {
			return "", err
		}
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTrajectory(path string, times []float64, rows [][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Half the row is positions, half velocities.
	n := len(rows[0]) / 2
	header := []string{"time"}
	for i := 0; i < n; i++ {
		header = append(header, fmt.Sprintf("q%d", i))
	}
	for i := 0; i < n; i++ {
		header = append(header, fmt.Sprintf("qd%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, row := range rows {
		out := make([]string, 0, len(row)+1)
		out = append(out, strconv.FormatFloat(times[i], 'f', 6, 64))
		for _, v := range row {
			out = append(out, strconv.FormatFloat(v, 'f', 6, 64))
		}
		if err := w.Write(out); err != nil {
			return err
		}
	}
	return w.Error()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTrajectory reads one body's CSV back as times plus state rows.
func (s *Store) LoadTrajectory(runID, body string) ([]float64, [][]float64, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, body+".csv"))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return nil, nil, nil
	}

	times := make([]float64, 0, len(records)-1)
	rows := make([][]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		row := make([]float64, 0, len(record)-1)
		for _, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				continue
			}
			row = append(row, v)
		}
		times = append(times, t)
		rows = append(rows, row)
	}
	return times, rows, nil
}
