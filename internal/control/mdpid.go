package control

// MDPID runs one PID loop per degree of freedom with shared gains.
type MDPID struct {
	loops []*PID
}

func NewMDPID(dims int, kp, ki, kd float64) *MDPID {
	loops := make([]*PID, dims)
	for i := range loops {
		loops[i] = NewPID(kp, ki, kd, 0)
	}
	return &MDPID{loops: loops}
}

func (m *MDPID) Dims() int { return len(m.loops) }

// SetTarget replaces the per-DOF setpoints. It reports false on a
// dimension mismatch and leaves the loops untouched.
func (m *MDPID) SetTarget(target []float64) bool {
	if len(target) != len(m.loops) {
		return false
	}
	for i, p := range m.loops {
		p.Target = target[i]
	}
	return true
}

// SetGains retunes every loop at once.
func (m *MDPID) SetGains(kp, ki, kd float64) {
	for _, p := range m.loops {
		p.Kp, p.Ki, p.Kd = kp, ki, kd
	}
}

// Loop exposes one channel for per-DOF tuning.
func (m *MDPID) Loop(i int) *PID {
	if i < 0 || i >= len(m.loops) {
		return nil
	}
	return m.loops[i]
}

func (m *MDPID) Compute(measured []float64, dt float64) ([]float64, bool) {
	if len(measured) != len(m.loops) {
		return nil, false
	}
	u := make([]float64, len(m.loops))
	for i, p := range m.loops {
		u[i] = p.Compute(measured[i], dt)
	}
	return u, true
}

func (m *MDPID) Reset() {
	for _, p := range m.loops {
		p.Reset()
	}
}
