package drift

// momentum is the scroll integrator. Each advance folds velocity into the
// target and decays it by friction; the current position then eases toward
// the target by the lerp factor. Input paths mutate target and velocity
// only; advance and drive are the only writers of current.
type momentum struct {
	current  float64
	target   float64
	velocity float64
	limit    float64

	friction    float64
	lerp        float64
	maxVelocity float64

	direction Direction
	scrolling bool
}

func newMomentum(cfg *Config) *momentum {
	return &momentum{
		friction:    cfg.Friction,
		lerp:        cfg.Lerp,
		maxVelocity: cfg.MaxVelocity,
	}
}

// addDelta folds a position delta into the target. Deltas that would push
// the target past an edge are absorbed by the clamp, so the target never
// leaves [0, limit] no matter how large the delta.
func (m *momentum) addDelta(d float64) {
	m.target = clamp(m.target+d, 0, m.limit)
}

// addVelocity folds an impulse into the inertial velocity, capped at
// maxVelocity in either direction.
func (m *momentum) addVelocity(v float64) {
	m.velocity = clamp(m.velocity+v, -m.maxVelocity, m.maxVelocity)
}

// setTarget aims the integrator at pos; the current position eases there
// over the following ticks.
func (m *momentum) setTarget(pos float64) {
	m.target = clamp(pos, 0, m.limit)
}

// killVelocity drops inertial velocity on the spot. A finger landing on
// coasting content stops the coast.
func (m *momentum) killVelocity() {
	m.velocity = 0
}

// jumpTo moves current and target to pos at once and kills velocity.
func (m *momentum) jumpTo(pos float64) {
	pos = clamp(pos, 0, m.limit)
	m.current = pos
	m.target = pos
	m.velocity = 0
	m.direction = DirectionNone
	m.scrolling = false
}

// drive moves current and target together to pos, bypassing smoothing.
// Snap and scroll-to animations call this each tick; direction reflects the
// travel of the driven position.
func (m *momentum) drive(pos float64) {
	pos = clamp(pos, 0, m.limit)
	switch {
	case pos > m.current:
		m.direction = DirectionDown
	case pos < m.current:
		m.direction = DirectionUp
	}
	m.current = pos
	m.target = pos
	m.scrolling = true
}

// rest marks a driven animation as finished at the current position.
func (m *momentum) rest() {
	m.velocity = 0
	m.direction = DirectionNone
	m.scrolling = false
}

// setLimit updates the scrollable range to [0, l] and pulls current and
// target back inside it. Called when the viewport or content length changes.
func (m *momentum) setLimit(l float64) {
	if l < 0 {
		l = 0
	}
	m.limit = l
	m.target = clamp(m.target, 0, l)
	m.current = clamp(m.current, 0, l)
}

// advance runs one integration tick.
func (m *momentum) advance() {
	if m.velocity != 0 {
		m.target = clamp(m.target+m.velocity, 0, m.limit)
		m.velocity *= m.friction
		if abs(m.velocity) < velocityEpsilon {
			m.velocity = 0
		}
	}

	diff := m.target - m.current
	switch {
	case diff > positionEpsilon:
		m.direction = DirectionDown
	case diff < -positionEpsilon:
		m.direction = DirectionUp
	default:
		m.direction = DirectionNone
	}

	// Exponential approach. Snapping onto the target inside the epsilon
	// band terminates convergence; the lerp alone never quite arrives.
	if abs(diff) <= positionEpsilon {
		m.current = m.target
	} else {
		m.current += diff * m.lerp
	}

	m.scrolling = m.current != m.target || m.velocity != 0
}

// settled reports whether the integrator is at rest: current converged on
// target and no residual velocity.
func (m *momentum) settled() bool {
	return !m.scrolling
}

func (m *momentum) state() ScrollState {
	return ScrollState{
		Current:   m.current,
		Target:    m.target,
		Velocity:  m.velocity,
		Limit:     m.limit,
		Direction: m.direction,
		Scrolling: m.scrolling,
	}
}
