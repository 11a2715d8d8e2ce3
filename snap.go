package drift

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// snapPhase is the state of the snap machine.
type snapPhase uint8

const (
	snapFree     snapPhase = iota // moving, or resting where no capture applies
	snapSettled                   // at rest; capture already evaluated
	snapSnapping                  // animation driving toward a section
)

// String returns a human-readable name for the phase.
func (p snapPhase) String() string {
	switch p {
	case snapSettled:
		return "settled"
	case snapSnapping:
		return "snapping"
	default:
		return "free"
	}
}

// snapController owns the free / settled / snapping machine. Capture is
// evaluated exactly once per settle, on the free-to-settled edge; a
// cooldown after user-cancelled snaps keeps the next settle from
// immediately re-capturing.
type snapController struct {
	phase    snapPhase
	cooldown tickTimer
}

// cancel aborts any capture in progress. User-initiated cancels arm the
// cooldown; programmatic ones (ScrollTo taking over) do not.
func (sc *snapController) cancel(userInput bool) {
	sc.phase = snapFree
	if userInput {
		sc.cooldown.start(snapCooldownTicks)
	}
}

// scrollAnimation is an active driven scroll: a snap or an animated
// ScrollTo. While one runs the integrator is bypassed and the tween drives
// current and target together.
type scrollAnimation struct {
	tween      *gween.Tween
	section    *Section // non-nil for snaps
	from, to   float64
	snap       bool
	onComplete func()
}

// stepSnap advances the snap machine one tick. Runs after sections update
// so capture sees fresh geometry.
func (e *Engine) stepSnap() {
	if !e.cfg.Snap {
		return
	}
	e.snap.cooldown.tick()

	switch e.snap.phase {
	case snapFree:
		if e.mom.settled() && !e.snap.cooldown.running() {
			e.snap.phase = snapSettled
			e.trySnap()
		}
	case snapSettled:
		if !e.mom.settled() {
			e.snap.phase = snapFree
		}
	case snapSnapping:
		// Driven by the animation; arrival and cancellation move the phase.
	}
}

// trySnap captures the nearest section within the snap threshold and starts
// the snap animation toward its resting position. Resting within the
// position epsilon of that target is already snapped; no animation starts.
func (e *Engine) trySnap() {
	s, rest := e.nearestSnapTarget()
	if s == nil {
		return
	}
	if abs(rest-e.mom.current) <= positionEpsilon {
		return
	}
	e.beginAnimation(rest, e.cfg.SnapDuration, e.cfg.SnapEase, s, nil)
}

// nearestSnapTarget returns the section whose resting position lies closest
// to the settled scroll position, provided the distance is within the snap
// threshold. Ties go to the earlier section.
func (e *Engine) nearestSnapTarget() (*Section, float64) {
	threshold := e.cfg.SnapThreshold
	if threshold == 0 {
		threshold = e.viewportExtent() * autoSnapThreshold
	}

	var best *Section
	bestRest := 0.0
	bestDist := threshold
	for _, s := range e.sections {
		if !s.valid {
			continue
		}
		rest := e.restingPosition(s)
		d := abs(rest - e.mom.current)
		if d <= threshold && (best == nil || d < bestDist) {
			best = s
			bestRest = rest
			bestDist = d
		}
	}
	return best, bestRest
}

// restingPosition is the scroll position that centers the section in the
// viewport, clamped to the scrollable range.
func (e *Engine) restingPosition(s *Section) float64 {
	return clamp(s.Center()-e.viewportExtent()/2, 0, e.mom.limit)
}

// beginAnimation starts a driven scroll from the current position to the
// given one. A non-nil section marks the animation as a snap and fires the
// snap begin event.
func (e *Engine) beginAnimation(to float64, d time.Duration, easeFn ease.TweenFunc, section *Section, onComplete func()) {
	from := e.mom.current
	to = clamp(to, 0, e.mom.limit)
	if easeFn == nil {
		easeFn = e.cfg.SnapEase
	}
	e.anim = &scrollAnimation{
		tween:      gween.New(float32(from), float32(to), float32(d.Seconds()), easeFn),
		section:    section,
		from:       from,
		to:         to,
		snap:       section != nil,
		onComplete: onComplete,
	}
	if e.anim.snap {
		e.snap.phase = snapSnapping
		e.dispatchSnap(EventSnapBegin, SnapEvent{Section: section, From: from, To: to})
	}
}

// advanceAnimation moves the driven scroll forward by dt seconds. On
// arrival the integrator is parked at the destination; snaps settle
// directly (the destination was just captured, no re-evaluation), while
// plain scroll-to arrivals leave the machine free so the next settle may
// capture normally.
func (e *Engine) advanceAnimation(dt float32) {
	a := e.anim
	val, done := a.tween.Update(dt)
	e.mom.drive(float64(val))
	if !done {
		return
	}
	e.mom.rest()
	e.anim = nil
	if a.snap {
		e.snap.phase = snapSettled
		e.dispatchSnap(EventSnapComplete, SnapEvent{Section: a.section, From: a.from, To: a.to})
	} else {
		e.snap.phase = snapFree
	}
	if a.onComplete != nil {
		a.onComplete()
	}
}

// cancelAnimation aborts a driven scroll in place: the position stays where
// the animation left it and no completion event fires.
func (e *Engine) cancelAnimation(userInput bool) {
	if e.anim == nil {
		if userInput && e.cfg.Snap {
			// Input landing between captures still resets the machine.
			e.snap.phase = snapFree
		}
		return
	}
	wasSnap := e.anim.snap
	e.anim = nil
	if wasSnap {
		e.snap.cancel(userInput)
	} else if userInput {
		e.snap.phase = snapFree
	}
}
