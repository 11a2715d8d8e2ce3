package drift

// syntheticKind tags an injected input event.
type syntheticKind uint8

const (
	synthWheel syntheticKind = iota
	synthTouchStart
	synthTouchMove
	synthTouchEnd
	synthKey
)

// syntheticInput is a single injected input event. Positions are screen
// coordinates along the scroll axis, matching what a device would report.
type syntheticInput struct {
	kind  syntheticKind
	value float64
	key   Key
}

// synthTouch tracks an injected touch in flight, independent of any device
// touch so scripts replay identically with or without hardware attached.
type synthTouch struct {
	active    bool
	last      float64
	start     float64
	startTick uint64
}

// InjectWheel queues a wheel event of the given number of notches. Positive
// notches scroll toward the content end. The event is consumed on the next
// Update; it passes through the same clamp and multiplier as device wheels.
func (e *Engine) InjectWheel(notches float64) {
	e.injectQueue = append(e.injectQueue, syntheticInput{kind: synthWheel, value: notches})
}

// InjectTouchStart queues a touch press at the given axis position.
func (e *Engine) InjectTouchStart(pos float64) {
	e.injectQueue = append(e.injectQueue, syntheticInput{kind: synthTouchStart, value: pos})
}

// InjectTouchMove queues a touch move to the given axis position with the
// finger held down.
func (e *Engine) InjectTouchMove(pos float64) {
	e.injectQueue = append(e.injectQueue, syntheticInput{kind: synthTouchMove, value: pos})
}

// InjectTouchEnd queues a touch release at the given axis position.
func (e *Engine) InjectTouchEnd(pos float64) {
	e.injectQueue = append(e.injectQueue, syntheticInput{kind: synthTouchEnd, value: pos})
}

// InjectKey queues one semantic key action.
func (e *Engine) InjectKey(k Key) {
	e.injectQueue = append(e.injectQueue, syntheticInput{kind: synthKey, key: k})
}

// InjectFlick queues a full touch gesture from one axis position to
// another: press, linearly interpolated moves over frames-2 intermediate
// ticks, and release. The whole sequence consumes frames ticks; the minimum
// is 2 (press + release). A short fast gesture leaves inertial velocity
// behind, exactly like a device flick.
func (e *Engine) InjectFlick(from, to float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	e.InjectTouchStart(from)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		e.InjectTouchMove(from + (to-from)*t)
	}
	e.InjectTouchEnd(to)
}

// consumeInjected pops one event from the inject queue and feeds it through
// the same input paths as device input. Returns true if an event was
// consumed. One event per tick keeps scripted gestures tick-accurate.
func (e *Engine) consumeInjected() bool {
	if len(e.injectQueue) == 0 {
		return false
	}
	evt := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]

	switch evt.kind {
	case synthWheel:
		e.userDelta(normalizeWheel(evt.value*wheelNotchPixels, e.cfg.WheelClamp, e.cfg.WheelMultiplier))
	case synthTouchStart:
		e.synth.active = true
		e.synth.last = evt.value
		e.synth.start = evt.value
		e.synth.startTick = e.tick
		e.cancelAnimation(true)
		e.mom.killVelocity()
	case synthTouchMove:
		if !e.synth.active {
			return true
		}
		d := evt.value - e.synth.last
		e.synth.last = evt.value
		e.userDelta(-d * e.cfg.TouchMultiplier)
	case synthTouchEnd:
		if !e.synth.active {
			return true
		}
		e.synth.active = false
		if d := evt.value - e.synth.last; d != 0 {
			e.userDelta(-d * e.cfg.TouchMultiplier)
		}
		e.synth.last = evt.value
		e.userVelocity(flickImpulse(evt.value-e.synth.start, e.tick-e.synth.startTick, e.cfg.FlickMultiplier))
	case synthKey:
		e.applyKey(evt.key)
	}
	return true
}
