package drift

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// Engine is the top-level object that owns the scroll state, tracked
// sections and elements, input handling, and event subscribers.
//
// Call Update once per tick from the host's update callback and read State
// (or subscribe with OnScroll) when drawing. Each tick runs in a fixed
// order: input, integration (or a driven animation), section tracking,
// parallax, snapping, then event dispatch.
//
// The engine is single-threaded: every method must be called from the
// goroutine that calls Update. Ebitengine's game loop satisfies this by
// construction.
type Engine struct {
	cfg Config
	mom *momentum

	// Geometry
	viewportW      float64
	viewportH      float64
	contentLength  float64 // explicit; 0 derives length from sections
	measuredLength float64 // farthest section edge from the last scan

	// Tracked content
	sections []*Section
	elements []*TrackedElement

	// Input
	in          inputState
	synth       synthTouch
	injectQueue []syntheticInput
	runner      *ScriptRunner

	// Driven scrolls and snapping
	anim *scrollAnimation
	snap snapController

	// Events
	handlers      handlerRegistry
	lastPublished float64

	// Lifecycle
	enabled   bool
	destroyed bool

	tick        uint64
	idleTicks   int
	resizeTimer tickTimer
}

// NewEngine creates an engine with the given configuration. Zero fields
// take the documented defaults; out-of-range values are replaced with a
// warning. The engine starts enabled, at position 0, with no viewport:
// hosts report their size via SetViewport (typically from Layout).
func NewEngine(cfg Config) *Engine {
	cfg = cfg.normalized()
	return &Engine{
		cfg:     cfg,
		mom:     newMomentum(&cfg),
		enabled: true,
	}
}

// Update advances the engine one tick. Call it once per host update; a
// disabled or destroyed engine returns immediately.
func (e *Engine) Update() {
	if e.destroyed || !e.enabled {
		return
	}
	e.tick++
	dt := float32(1.0 / float64(ebiten.TPS()))

	if e.resizeTimer.tick() {
		e.refreshLayout()
	}
	if e.runner != nil {
		e.runner.step(e)
	}

	inputActive := e.pollInput()

	// Idle park: once everything has been at rest for a while, skip the
	// per-tick bookkeeping until input, a timer, or a mutating call wakes
	// the engine. The grace window lets sections, parallax, and snap
	// observe the final resting position before parking.
	if !inputActive && e.anim == nil && e.mom.settled() &&
		!e.resizeTimer.running() && !e.snap.cooldown.running() {
		e.idleTicks++
		if e.idleTicks > idleAfterTicks {
			return
		}
	} else {
		e.idleTicks = 0
	}

	if e.anim != nil {
		e.advanceAnimation(dt)
	} else {
		e.mom.advance()
	}
	st := e.mom.state()

	e.updateSections(st.Current)
	e.applyParallax(st.Current)
	e.stepSnap()

	if st.Current != e.lastPublished {
		e.lastPublished = st.Current
		e.dispatchScroll(st)
	}
	if e.cfg.Debug {
		e.debugLog()
	}
}

// wake restarts per-tick processing after an idle park.
func (e *Engine) wake() {
	e.idleTicks = 0
}

// --- State ---

// State returns a snapshot of the scroll values as of the last tick.
func (e *Engine) State() ScrollState {
	return e.mom.state()
}

// Progress returns the overall document progress, Current / Limit in
// [0, 1]. Content that cannot scroll reports 0.
func (e *Engine) Progress() float64 {
	st := e.mom.state()
	if st.Limit <= 0 {
		return 0
	}
	return clamp(st.Current/st.Limit, 0, 1)
}

// Viewport returns the last size reported via SetViewport.
func (e *Engine) Viewport() (w, h float64) {
	return e.viewportW, e.viewportH
}

// ContentLength returns the effective content length: the explicit value
// when set, otherwise the length measured from tracked sections and
// elements.
func (e *Engine) ContentLength() float64 {
	if e.contentLength > 0 {
		return e.contentLength
	}
	return e.measuredLength
}

// --- Programmatic input ---

// AddDelta feeds a scroll delta from the host, behaving exactly like
// device input: it cancels any driven scroll and clamps at the edges.
// Hosts with their own input sources (terminal key events, UI buttons)
// call this instead of relying on device polling.
func (e *Engine) AddDelta(d float64) {
	if e.destroyed {
		return
	}
	e.wake()
	e.userDelta(d)
}

// AddVelocity feeds an inertial impulse from the host, capped at the
// configured maximum velocity.
func (e *Engine) AddVelocity(v float64) {
	if e.destroyed {
		return
	}
	e.wake()
	e.userVelocity(v)
}

// ScrollToOptions configure programmatic scrolls.
type ScrollToOptions struct {
	// Duration of the animation. Zero uses DefaultScrollDuration.
	Duration time.Duration

	// Ease shapes the animation. Nil uses the engine's snap easing.
	Ease ease.TweenFunc

	// Offset displaces the destination, after section resolution and
	// before clamping. Scrolling a section under a fixed header is the
	// usual use.
	Offset float64

	// Immediate jumps to the destination without animating.
	Immediate bool

	// OnComplete fires when the scroll arrives, immediately for jumps.
	// A scroll cancelled by input or a later scroll never completes.
	OnComplete func()
}

// ScrollTo moves to an absolute position, clamped to the scrollable range.
// By default the move is an eased animation; Immediate jumps. Either way
// any driven scroll in progress is replaced and inertia is dropped.
func (e *Engine) ScrollTo(pos float64, opts ScrollToOptions) {
	if e.destroyed {
		return
	}
	e.wake()
	e.cancelAnimation(false)
	e.mom.killVelocity()
	pos += opts.Offset
	if opts.Immediate {
		e.mom.jumpTo(pos)
		// The machine re-evaluates capture at the new position.
		e.snap.cancel(false)
		if opts.OnComplete != nil {
			opts.OnComplete()
		}
		return
	}
	d := opts.Duration
	if d <= 0 {
		d = DefaultScrollDuration
	}
	e.beginAnimation(pos, d, opts.Ease, nil, opts.OnComplete)
}

// ScrollToSection scrolls until the section's leading edge sits at the top
// of the viewport, displaced by opts.Offset. The section is remeasured
// first; a detached section is reported and ignored.
func (e *Engine) ScrollToSection(s *Section, opts ScrollToOptions) {
	if e.destroyed || s == nil {
		return
	}
	e.refreshLayout()
	if !s.valid {
		warnf("ScrollToSection: section %q is detached", s.Name)
		return
	}
	e.ScrollTo(s.Top, opts)
}

// --- Geometry ---

// SetViewport reports the host's viewport size in pixels. The scroll limit
// updates immediately; section and element geometry is remeasured after a
// short debounce so a storm of resize events coalesces into one scan.
func (e *Engine) SetViewport(w, h float64) {
	if e.destroyed || (w == e.viewportW && h == e.viewportH) {
		return
	}
	e.viewportW = w
	e.viewportH = h
	e.recomputeLimit()
	e.resizeTimer.start(resizeDebounceTicks)
	e.wake()
}

// SetContentLength sets the content length explicitly, overriding the
// length derived from tracked sections. Zero returns to derived length.
func (e *Engine) SetContentLength(l float64) {
	if e.destroyed {
		return
	}
	if l < 0 {
		warnf("SetContentLength %v is negative, using 0", l)
		l = 0
	}
	e.contentLength = l
	e.recomputeLimit()
	e.wake()
}

// Refresh remeasures all tracked sections and elements immediately and
// recomputes the scroll limit. Call it after mutating content layout.
func (e *Engine) Refresh() {
	if e.destroyed {
		return
	}
	e.refreshLayout()
}

// refreshLayout runs the scan now, cancelling any pending debounce.
func (e *Engine) refreshLayout() {
	e.resizeTimer.stop()
	e.measuredLength = e.scanSections()
	if l := e.scanElements(); l > e.measuredLength {
		e.measuredLength = l
	}
	e.recomputeLimit()
	e.wake()
}

// recomputeLimit derives the scroll limit from the effective content
// length and the viewport extent. Content shorter than the viewport
// cannot scroll at all.
func (e *Engine) recomputeLimit() {
	e.mom.setLimit(e.ContentLength() - e.viewportExtent())
}

// viewportExtent returns the viewport size along the scroll axis.
func (e *Engine) viewportExtent() float64 {
	if e.cfg.Axis == AxisHorizontal {
		return e.viewportW
	}
	return e.viewportH
}

// --- Lifecycle ---

// Enable resumes a disabled engine. State is wherever Disable left it.
func (e *Engine) Enable() {
	if e.destroyed {
		return
	}
	e.enabled = true
	e.wake()
}

// Disable freezes the engine: Update becomes a no-op, so input is ignored
// and no events fire. All state and subscriptions survive for a later
// Enable.
func (e *Engine) Disable() {
	e.enabled = false
}

// Enabled reports whether the engine is running.
func (e *Engine) Enabled() bool {
	return e.enabled && !e.destroyed
}

// Destroy tears the engine down: subscribers, tracked sections and
// elements, queued input, and any driven scroll are dropped, and every
// further call is a no-op. Transform targets receive a final zero
// translation so no host transform is left mid-parallax. A destroyed
// engine cannot be re-enabled.
func (e *Engine) Destroy() {
	if e.destroyed {
		return
	}
	e.destroyed = true
	e.enabled = false
	e.anim = nil
	e.runner = nil
	e.injectQueue = nil
	for _, el := range e.elements {
		el.Translation = 0
		el.lastCurrent = 0
		if el.target != nil {
			el.target.SetTranslation(0, 0)
		}
	}
	e.sections = nil
	e.elements = nil
	e.handlers = handlerRegistry{}
	e.resizeTimer.stop()
	e.snap.cooldown.stop()
}

// SetDebugMode toggles the per-tick state line on stderr.
func (e *Engine) SetDebugMode(enabled bool) {
	e.cfg.Debug = enabled
}
