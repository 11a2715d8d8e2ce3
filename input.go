package drift

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// wheelNotchPixels converts one wheel notch into content pixels before
// clamping, aligning stepped mice with pixel-denominated deltas.
const wheelNotchPixels = 100.0

// Key identifies a semantic scroll action for keyboard mapping and
// injection. Physical arrow keys map per axis: up/down for vertical
// engines, left/right for horizontal ones.
type Key uint8

const (
	KeyNone         Key = iota
	KeyArrowBack        // one step toward content start; repeats while held
	KeyArrowForward     // one step toward content end; repeats while held
	KeyPageBack         // most of a viewport toward content start
	KeyPageForward      // most of a viewport toward content end
	KeyHome             // aim at position 0
	KeyEnd              // aim at the scroll limit
)

// inputState tracks the device touch in flight between ticks.
type inputState struct {
	touchIDs       []ebiten.TouchID // scratch for AppendTouchIDs
	touchActive    bool
	touchID        ebiten.TouchID
	touchLast      float64
	touchStart     float64
	touchStartTick uint64
}

// --- Normalization ---

// normalizeWheel clamps a raw wheel delta to the clamp magnitude and
// applies the multiplier. Direction survives clamping.
func normalizeWheel(raw, clampTo, multiplier float64) float64 {
	return clamp(raw, -clampTo, clampTo) * multiplier
}

// flickImpulse converts a finished touch into a velocity impulse in pixels
// per tick, or 0 when the gesture was too slow or too short to count as a
// flick. disp is finger displacement along the scroll axis; content moves
// against the finger.
func flickImpulse(disp float64, ticks uint64, multiplier float64) float64 {
	if ticks == 0 || ticks > flickMaxTicks || abs(disp) < flickMinDistance {
		return 0
	}
	return -(disp / float64(ticks)) * multiplier
}

// axisPos projects a screen coordinate onto the scroll axis.
func axisPos(axis Axis, x, y int) float64 {
	if axis == AxisHorizontal {
		return float64(x)
	}
	return float64(y)
}

// --- User input entry points ---
//
// Every user-initiated mutation goes through one of these so a driven
// scroll in progress is always cancelled first. They touch target and
// velocity only; current belongs to the integrator.

// userDelta folds a user position delta into the target.
func (e *Engine) userDelta(d float64) {
	if d == 0 {
		return
	}
	e.cancelAnimation(true)
	e.mom.addDelta(d)
}

// userVelocity folds a user impulse into the inertial velocity.
func (e *Engine) userVelocity(v float64) {
	if v == 0 {
		return
	}
	e.cancelAnimation(true)
	e.mom.addVelocity(v)
}

// userTarget aims the target at an absolute position (Home / End).
func (e *Engine) userTarget(pos float64) {
	e.cancelAnimation(true)
	e.mom.setTarget(pos)
}

// applyKey folds one semantic key action into the integrator.
func (e *Engine) applyKey(k Key) {
	switch k {
	case KeyArrowForward:
		e.userDelta(e.cfg.KeyDelta)
	case KeyArrowBack:
		e.userDelta(-e.cfg.KeyDelta)
	case KeyPageForward:
		e.userDelta(e.viewportExtent() * pageFraction)
	case KeyPageBack:
		e.userDelta(-e.viewportExtent() * pageFraction)
	case KeyHome:
		e.userTarget(0)
	case KeyEnd:
		e.userTarget(e.mom.limit)
	}
}

// --- Device polling ---

// pollInput drains injected input and reads the device, folding the tick's
// input into the integrator. Reports whether any input arrived.
func (e *Engine) pollInput() bool {
	active := e.consumeInjected()
	if e.cfg.DisableInput {
		return active
	}
	if e.pollWheel() {
		active = true
	}
	if e.pollTouch() {
		active = true
	}
	if e.pollKeys() {
		active = true
	}
	return active
}

// pollWheel reads the wheel offset along the scroll axis. Ebitengine
// reports offsets positive toward content start (scrolling away from the
// user), so the sign flips before normalization.
func (e *Engine) pollWheel() bool {
	xoff, yoff := ebiten.Wheel()
	raw := -yoff
	if e.cfg.Axis == AxisHorizontal {
		raw = -xoff
	}
	if raw == 0 {
		return false
	}
	e.userDelta(normalizeWheel(raw*wheelNotchPixels, e.cfg.WheelClamp, e.cfg.WheelMultiplier))
	return true
}

// pollTouch tracks the primary touch: drag moves the target against the
// finger, release may convert into a flick impulse. Secondary touches are
// ignored.
func (e *Engine) pollTouch() bool {
	e.in.touchIDs = ebiten.AppendTouchIDs(e.in.touchIDs[:0])

	if !e.in.touchActive {
		if len(e.in.touchIDs) == 0 {
			return false
		}
		id := e.in.touchIDs[0]
		x, y := ebiten.TouchPosition(id)
		pos := axisPos(e.cfg.Axis, x, y)
		e.in.touchActive = true
		e.in.touchID = id
		e.in.touchLast = pos
		e.in.touchStart = pos
		e.in.touchStartTick = e.tick
		// A finger landing on coasting content stops the coast.
		e.cancelAnimation(true)
		e.mom.killVelocity()
		return true
	}

	for _, id := range e.in.touchIDs {
		if id != e.in.touchID {
			continue
		}
		x, y := ebiten.TouchPosition(id)
		pos := axisPos(e.cfg.Axis, x, y)
		d := pos - e.in.touchLast
		e.in.touchLast = pos
		if d == 0 {
			return false
		}
		e.userDelta(-d * e.cfg.TouchMultiplier)
		return true
	}

	// Touch ended this tick.
	e.in.touchActive = false
	e.userVelocity(flickImpulse(e.in.touchLast-e.in.touchStart, e.tick-e.in.touchStartTick, e.cfg.FlickMultiplier))
	return true
}

// pollKeys reads held arrows (repeating) and the edge-triggered paging and
// jump keys.
func (e *Engine) pollKeys() bool {
	back, fwd := ebiten.KeyArrowUp, ebiten.KeyArrowDown
	if e.cfg.Axis == AxisHorizontal {
		back, fwd = ebiten.KeyArrowLeft, ebiten.KeyArrowRight
	}

	active := false
	if ebiten.IsKeyPressed(fwd) {
		e.applyKey(KeyArrowForward)
		active = true
	}
	if ebiten.IsKeyPressed(back) {
		e.applyKey(KeyArrowBack)
		active = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) {
		e.applyKey(KeyPageForward)
		active = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		e.applyKey(KeyPageBack)
		active = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		e.applyKey(KeyHome)
		active = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnd) {
		e.applyKey(KeyEnd)
		active = true
	}
	return active
}
