package kinworld

import (
	"fmt"

	"github.com/robokit/simenv/internal/logging"
	"github.com/robokit/simenv/internal/scene"
	"github.com/robokit/simenv/internal/simenv"
)

const logPrefix = "kinworld"

// World is the composition root of the reference backend: the object
// registry, the collision dispatcher, the physics stepper and the
// world-state checkpoint stack.
type World struct {
	mu       recursiveMutex
	name     string
	logger   simenv.Logger
	viewer   simenv.WorldViewer
	timestep float64
	objects  map[string]*Object
	robots   map[string]*Robot
	order    []string
	stack    []simenv.WorldState
}

var _ simenv.World = (*World)(nil)

// Option configures a world at construction time.
type Option func(*World)

// WithViewer attaches the rendering collaborator.
func WithViewer(v simenv.WorldViewer) Option {
	return func(w *World) { w.viewer = v }
}

// WithTimestep overrides the default physics timestep.
func WithTimestep(dt float64) Option {
	return func(w *World) {
		if dt > 0 {
			w.timestep = dt
		}
	}
}

// New creates an empty world. The logger is injected here; a nil logger
// falls back to a discarding one.
func New(logger simenv.Logger, opts ...Option) *World {
	if logger == nil {
		logger = logging.Discard()
	}
	w := &World{
		logger:   logger,
		timestep: scene.DefaultTimestep,
		objects:  make(map[string]*Object),
		robots:   make(map[string]*Robot),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Name returns the name of the currently loaded scene.
func (w *World) Name() string { return w.name }

// LoadWorld reads a scene file, replaces the registry with its contents
// and clears the state stack. On error the world is left unchanged.
func (w *World) LoadWorld(path string) error {
	s, err := scene.Load(path)
	if err != nil {
		return err
	}
	return w.LoadScene(s)
}

// LoadScene is LoadWorld for an already-parsed scene description.
func (w *World) LoadScene(s *scene.Scene) error {
	if err := s.Validate(); err != nil {
		return err
	}
	w.Lock()
	defer w.Unlock()

	objects := make(map[string]*Object, len(s.Objects))
	robots := make(map[string]*Robot, len(s.Robots))
	order := make([]string, 0, len(s.Objects)+len(s.Robots))
	for i := range s.Objects {
		spec := &s.Objects[i]
		o, err := newObject(w, spec)
		if err != nil {
			return fmt.Errorf("kinworld: object %q: %w", spec.Name, err)
		}
		objects[spec.Name] = o
		order = append(order, spec.Name)
	}
	for i := range s.Robots {
		spec := &s.Robots[i]
		r, err := newRobot(w, spec)
		if err != nil {
			return fmt.Errorf("kinworld: robot %q: %w", spec.Name, err)
		}
		robots[spec.Name] = r
		order = append(order, spec.Name)
	}

	w.name = s.Name
	w.objects = objects
	w.robots = robots
	w.order = order
	if s.PhysicsTimestep > 0 {
		w.timestep = s.PhysicsTimestep
	}
	w.stack = nil
	w.logger.Info(fmt.Sprintf("loaded scene %q: %d objects, %d robots", s.Name, len(objects), len(robots)), logPrefix)
	return nil
}

// AddObject builds a new object from its spec and registers it. The state
// stack is cleared: older snapshots no longer describe this world.
func (w *World) AddObject(spec *scene.ObjectSpec) (simenv.Object, error) {
	w.Lock()
	defer w.Unlock()
	if err := w.checkNewName(spec.Name); err != nil {
		return nil, err
	}
	o, err := newObject(w, spec)
	if err != nil {
		return nil, err
	}
	w.objects[spec.Name] = o
	w.order = append(w.order, spec.Name)
	w.stack = nil
	return o, nil
}

// AddRobot is AddObject for robots.
func (w *World) AddRobot(spec *scene.ObjectSpec) (simenv.Robot, error) {
	w.Lock()
	defer w.Unlock()
	if err := w.checkNewName(spec.Name); err != nil {
		return nil, err
	}
	r, err := newRobot(w, spec)
	if err != nil {
		return nil, err
	}
	w.robots[spec.Name] = r
	w.order = append(w.order, spec.Name)
	w.stack = nil
	return r, nil
}

func (w *World) checkNewName(name string) error {
	if name == "" {
		return fmt.Errorf("kinworld: empty object name")
	}
	if _, ok := w.objects[name]; ok {
		return fmt.Errorf("kinworld: name %q already registered", name)
	}
	if _, ok := w.robots[name]; ok {
		return fmt.Errorf("kinworld: name %q already registered", name)
	}
	return nil
}

// RemoveObject drops an object or robot and clears the state stack. It
// reports whether the name was present.
func (w *World) RemoveObject(name string) bool {
	w.Lock()
	defer w.Unlock()
	if o, ok := w.objects[name]; ok {
		o.world = nil
		delete(w.objects, name)
	} else if r, ok := w.robots[name]; ok {
		r.world = nil
		delete(w.robots, name)
	} else {
		return false
	}
	for i, n := range w.order {
		if n == name {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	w.stack = nil
	return true
}

func (w *World) GetObject(name string) simenv.Object {
	if o, ok := w.objects[name]; ok {
		return o
	}
	return nil
}

func (w *World) GetRobot(name string) simenv.Robot {
	if r, ok := w.robots[name]; ok {
		return r
	}
	return nil
}

func (w *World) GetObjects(includeRobots bool) []simenv.Object {
	out := make([]simenv.Object, 0, len(w.order))
	for _, name := range w.order {
		if o, ok := w.objects[name]; ok {
			out = append(out, o)
			continue
		}
		if includeRobots {
			if r, ok := w.robots[name]; ok {
				out = append(out, r)
			}
		}
	}
	return out
}

func (w *World) GetRobots() []simenv.Robot {
	out := make([]simenv.Robot, 0, len(w.robots))
	for _, name := range w.order {
		if r, ok := w.robots[name]; ok {
			out = append(out, r)
		}
	}
	return out
}

// bodies returns the object cores of everything registered, in order.
func (w *World) bodies() []*Object {
	out := make([]*Object, 0, len(w.order))
	for _, name := range w.order {
		if o, ok := w.objects[name]; ok {
			out = append(out, o)
			continue
		}
		if r, ok := w.robots[name]; ok {
			out = append(out, &r.Object)
		}
	}
	return out
}

func (w *World) SupportsPhysics() bool    { return true }
func (w *World) PhysicsTimeStep() float64 { return w.timestep }

func (w *World) SetPhysicsTimeStep(dt float64) {
	if dt <= 0 {
		w.logger.Warn(fmt.Sprintf("ignoring non-positive timestep %f", dt), logPrefix)
		return
	}
	w.Lock()
	w.timestep = dt
	w.Unlock()
}

// StepPhysics advances the world by steps timesteps. Each step invokes
// every robot's controller with the robot's full DOF state; a rejected or
// malformed control isolates that robot for the step, everything else
// still advances.
func (w *World) StepPhysics(steps int) {
	w.Lock()
	defer w.Unlock()
	for i := 0; i < steps; i++ {
		w.stepOnce()
	}
}

func (w *World) stepOnce() {
	dt := w.timestep

	for _, name := range w.order {
		r, ok := w.robots[name]
		if !ok || r.ctrl == nil {
			continue
		}
		n := r.NumDOFs()
		pos := r.DOFPositions(r.DOFIndices())
		vel := r.DOFVelocities(r.DOFIndices())
		u, ctrlOK := r.ctrl(pos, vel, dt)
		if !ctrlOK {
			w.logger.Warn(fmt.Sprintf("controller rejected step for robot %q", name), logPrefix)
			continue
		}
		if len(u) != n {
			w.logger.Warn(fmt.Sprintf("controller for robot %q returned %d controls, want %d", name, len(u), n), logPrefix)
			continue
		}
		for d := 0; d < n; d++ {
			info, _ := r.layout.Info(d)
			a := info.AccelerationLimits.Clamp(u[d])
			r.velocities[d] = info.VelocityLimits.Clamp(r.velocities[d] + a*dt)
		}
	}

	for _, o := range w.bodies() {
		moved := false
		for d := 0; d < o.NumDOFs(); d++ {
			if o.velocities[d] == 0 {
				continue
			}
			info, _ := o.layout.Info(d)
			o.positions[d] = info.PositionLimits.Clamp(o.positions[d] + o.velocities[d]*dt)
			moved = true
		}
		if moved {
			o.syncPoseFromBase()
			o.updateKinematics()
		}
	}
}

// WorldState snapshots every registered body.
func (w *World) WorldState() simenv.WorldState {
	ws := make(simenv.WorldState, len(w.order))
	for _, o := range w.bodies() {
		ws[o.name] = o.State()
	}
	return ws
}

// SetWorldState applies a snapshot all-or-nothing: every entry is
// validated against its object before any state changes. The snapshot may
// cover a subset of the registered bodies.
func (w *World) SetWorldState(ws simenv.WorldState) error {
	w.Lock()
	defer w.Unlock()
	return w.setWorldStateLocked(ws)
}

func (w *World) setWorldStateLocked(ws simenv.WorldState) error {
	targets := make(map[string]*Object, len(ws))
	for name := range ws {
		if o, ok := w.objects[name]; ok {
			targets[name] = o
		} else if r, ok := w.robots[name]; ok {
			targets[name] = &r.Object
		} else {
			return fmt.Errorf("%w: %q", simenv.ErrUnknownObject, name)
		}
	}
	for name, s := range ws {
		if err := targets[name].validateState(s); err != nil {
			return err
		}
	}
	for name, s := range ws {
		targets[name].applyState(s)
	}
	return nil
}

// SaveState pushes the current world state onto the internal stack.
func (w *World) SaveState() {
	w.Lock()
	defer w.Unlock()
	w.stack = append(w.stack, w.WorldState())
}

// RestoreState pops and applies the most recent snapshot. It reports
// false, leaving the world untouched, when the stack is empty.
func (w *World) RestoreState() bool {
	w.Lock()
	defer w.Unlock()
	if len(w.stack) == 0 {
		return false
	}
	top := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]
	if err := w.setWorldStateLocked(top); err != nil {
		// Unreachable as long as structural changes clear the stack.
		w.logger.Error(fmt.Sprintf("restore failed: %v", err), logPrefix)
		return false
	}
	return true
}

// SavedStates reports the current checkpoint depth.
func (w *World) SavedStates() int { return len(w.stack) }

func (w *World) Lock()   { w.mu.Lock() }
func (w *World) Unlock() { w.mu.Unlock() }

func (w *World) Logger() simenv.Logger { return w.logger }

func (w *World) Viewer() simenv.WorldViewer { return w.viewer }

// SetViewer swaps the rendering collaborator, for surfaces that can only
// be built after the world exists.
func (w *World) SetViewer(v simenv.WorldViewer) {
	w.Lock()
	w.viewer = v
	w.Unlock()
}
