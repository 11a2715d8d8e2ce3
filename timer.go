package drift

// tickTimer is a cancellable countdown denominated in engine ticks. Tick
// timers advance only inside Engine.Update, so tests drive them
// deterministically by calling Update in a loop; no wall clock is involved.
type tickTimer struct {
	remaining int
	active    bool
}

// start arms the timer to fire after the given number of ticks. Restarting
// an active timer resets the countdown.
func (t *tickTimer) start(ticks int) {
	t.remaining = ticks
	t.active = true
}

// stop disarms the timer without firing.
func (t *tickTimer) stop() {
	t.active = false
}

// tick advances the countdown by one tick and reports whether the timer
// fired on this tick. A fired timer disarms itself.
func (t *tickTimer) tick() bool {
	if !t.active {
		return false
	}
	t.remaining--
	if t.remaining > 0 {
		return false
	}
	t.active = false
	return true
}

// running reports whether the timer is armed.
func (t *tickTimer) running() bool {
	return t.active
}
