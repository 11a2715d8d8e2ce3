package drift

import (
	"testing"
	"time"
)

// newTestEngine builds an engine with a 1280x800 viewport and the scan
// debounce flushed, so tests see stable geometry from the first tick.
// Headless device polling reads zeros and is harmless.
func newTestEngine(cfg Config) *Engine {
	e := NewEngine(cfg)
	e.SetViewport(1280, 800)
	e.refreshLayout()
	return e
}

func runTicks(e *Engine, n int) {
	for i := 0; i < n; i++ {
		e.Update()
	}
}

// settle advances until the engine stops moving, failing after maxTicks.
func settle(t *testing.T, e *Engine, maxTicks int) {
	t.Helper()
	for i := 0; i < maxTicks; i++ {
		e.Update()
		if e.anim == nil && e.mom.settled() {
			return
		}
	}
	t.Fatalf("engine did not settle within %d ticks", maxTicks)
}

func trackStatic(e *Engine, name string, top, height float64) *Section {
	return e.Track(StaticRect(Rect{Y: top, Height: height}), SectionOptions{Name: name})
}

func TestEngineLimitFromSectionsAndViewport(t *testing.T) {
	e := newTestEngine(Config{})
	trackStatic(e, "content", 0, 3000)

	if got := e.State().Limit; got != 2200 {
		t.Fatalf("limit = %f, want 2200 (content 3000, viewport 800)", got)
	}

	e.AddDelta(10000)
	if got := e.State().Target; got != 2200 {
		t.Errorf("target after +10000 = %f, want clamped at 2200", got)
	}
}

func TestEngineShortContentCannotScroll(t *testing.T) {
	e := newTestEngine(Config{})
	trackStatic(e, "short", 0, 500)

	if got := e.State().Limit; got != 0 {
		t.Fatalf("limit = %f, want 0 for content shorter than viewport", got)
	}
	e.AddDelta(300)
	runTicks(e, 30)
	if got := e.State().Current; got != 0 {
		t.Errorf("current = %f, want pinned at 0", got)
	}
}

func TestEngineViewportChangeRecomputesLimitImmediately(t *testing.T) {
	e := newTestEngine(Config{})
	trackStatic(e, "content", 0, 3000)

	e.SetViewport(1280, 900)
	if got := e.State().Limit; got != 2100 {
		t.Errorf("limit = %f right after resize, want 2100", got)
	}
}

func TestEngineResizeDebounceCoalescesScans(t *testing.T) {
	calls := 0
	m := MeasureFunc(func() (Rect, bool) {
		calls++
		return Rect{Y: 0, Height: 3000}, true
	})

	e := newTestEngine(Config{})
	e.Track(m, SectionOptions{})
	base := calls

	e.SetViewport(1280, 700)
	e.SetViewport(1280, 650)
	e.SetViewport(1280, 600)
	if calls != base {
		t.Fatalf("scan ran during the debounce window: %d extra calls", calls-base)
	}

	runTicks(e, resizeDebounceTicks-1)
	if calls != base {
		t.Fatalf("scan ran %d ticks early", resizeDebounceTicks-1)
	}
	runTicks(e, 1)
	if calls != base+1 {
		t.Errorf("measure calls after debounce = %d, want exactly one more than %d", calls, base)
	}
}

func TestEngineExplicitContentLength(t *testing.T) {
	e := newTestEngine(Config{})
	trackStatic(e, "content", 0, 3000)

	e.SetContentLength(5000)
	if got := e.State().Limit; got != 4200 {
		t.Errorf("limit = %f with explicit length 5000, want 4200", got)
	}

	e.SetContentLength(0)
	if got := e.State().Limit; got != 2200 {
		t.Errorf("limit = %f after reverting to derived length, want 2200", got)
	}
}

func TestEngineScrollToImmediate(t *testing.T) {
	e := newTestEngine(Config{})
	trackStatic(e, "content", 0, 3000)

	e.ScrollTo(1200, ScrollToOptions{Immediate: true})
	st := e.State()
	if st.Current != 1200 || st.Target != 1200 {
		t.Errorf("current/target = %f/%f, want 1200/1200", st.Current, st.Target)
	}
	if st.Scrolling {
		t.Error("Scrolling = true after an immediate jump, want false")
	}

	e.ScrollTo(1e9, ScrollToOptions{Immediate: true})
	if got := e.State().Current; got != 2200 {
		t.Errorf("current = %f after overshooting jump, want clamped at 2200", got)
	}
}

func TestEngineScrollToAnimated(t *testing.T) {
	e := newTestEngine(Config{})
	trackStatic(e, "content", 0, 3000)

	e.ScrollTo(1200, ScrollToOptions{Duration: 300 * time.Millisecond})
	runTicks(e, 9)
	mid := e.State()
	if mid.Current <= 0 || mid.Current >= 1200 {
		t.Errorf("current = %f mid-flight, want strictly between 0 and 1200", mid.Current)
	}
	if !mid.Scrolling {
		t.Error("Scrolling = false mid-flight, want true")
	}

	runTicks(e, 15)
	end := e.State()
	if !approxEqual(end.Current, 1200, 0.5) {
		t.Errorf("current = %f after the animation, want 1200", end.Current)
	}
	if end.Scrolling || end.Velocity != 0 {
		t.Errorf("Scrolling=%v Velocity=%f after arrival, want at rest", end.Scrolling, end.Velocity)
	}
}

func TestEngineScrollToSectionAlignsTopEdge(t *testing.T) {
	e := newTestEngine(Config{})
	trackStatic(e, "content", 0, 3000)
	s := trackStatic(e, "feature", 1000, 500)

	e.ScrollToSection(s, ScrollToOptions{Immediate: true})
	if got := e.State().Current; got != 1000 {
		t.Errorf("current = %f, want 1000 (section top at viewport top)", got)
	}

	// A fixed header is compensated through Offset.
	e.ScrollToSection(s, ScrollToOptions{Immediate: true, Offset: -120})
	if got := e.State().Current; got != 880 {
		t.Errorf("current = %f with offset -120, want 880", got)
	}

	tail := trackStatic(e, "tail", 2800, 200)
	e.ScrollToSection(tail, ScrollToOptions{Immediate: true})
	if got := e.State().Current; got != 2200 {
		t.Errorf("current = %f for a section near the end, want clamped at 2200", got)
	}
}

func TestEngineScrollToOnComplete(t *testing.T) {
	e := newTestEngine(Config{})
	trackStatic(e, "content", 0, 3000)

	jumped := 0
	e.ScrollTo(300, ScrollToOptions{Immediate: true, OnComplete: func() { jumped++ }})
	if jumped != 1 {
		t.Fatalf("OnComplete fired %d times for a jump, want 1", jumped)
	}

	arrived := 0
	e.ScrollTo(1200, ScrollToOptions{Duration: 200 * time.Millisecond, OnComplete: func() { arrived++ }})
	runTicks(e, 5)
	if arrived != 0 {
		t.Fatal("OnComplete fired mid-flight")
	}
	settle(t, e, 600)
	if arrived != 1 {
		t.Errorf("OnComplete fired %d times after arrival, want 1", arrived)
	}
}

func TestEngineScrollToCancelledNeverCompletes(t *testing.T) {
	e := newTestEngine(Config{})
	trackStatic(e, "content", 0, 3000)

	first := 0
	e.ScrollTo(2000, ScrollToOptions{Duration: 400 * time.Millisecond, OnComplete: func() { first++ }})
	runTicks(e, 5)

	second := 0
	e.ScrollTo(800, ScrollToOptions{Duration: 100 * time.Millisecond, OnComplete: func() { second++ }})
	runTicks(e, 3)
	e.AddDelta(50)
	settle(t, e, 600)

	if first != 0 {
		t.Errorf("replaced scroll completed %d times, want 0", first)
	}
	if second != 0 {
		t.Errorf("input-cancelled scroll completed %d times, want 0", second)
	}
}

func TestEngineScrollToDetachedSectionIgnored(t *testing.T) {
	e := newTestEngine(Config{})
	trackStatic(e, "content", 0, 3000)
	s := e.Track(MeasureFunc(func() (Rect, bool) { return Rect{}, false }), SectionOptions{Name: "gone"})

	e.ScrollTo(500, ScrollToOptions{Immediate: true})
	e.ScrollToSection(s, ScrollToOptions{Immediate: true})
	if got := e.State().Current; got != 500 {
		t.Errorf("current = %f, want 500 (detached section ignored)", got)
	}
}

func TestEngineDisableFreezes(t *testing.T) {
	e := newTestEngine(Config{})
	trackStatic(e, "content", 0, 3000)
	e.AddDelta(500)
	runTicks(e, 5)
	frozen := e.State().Current

	e.Disable()
	if e.Enabled() {
		t.Fatal("Enabled() = true after Disable")
	}
	runTicks(e, 30)
	if got := e.State().Current; got != frozen {
		t.Errorf("current = %f while disabled, want frozen at %f", got, frozen)
	}

	e.Enable()
	settle(t, e, 600)
	if got := e.State().Current; got != 500 {
		t.Errorf("current = %f after re-enable and settle, want 500", got)
	}
}

func TestEngineDestroy(t *testing.T) {
	e := newTestEngine(Config{})
	trackStatic(e, "content", 0, 3000)
	calls := 0
	e.OnScroll(func(ScrollState) { calls++ })

	e.Destroy()
	if e.Enabled() {
		t.Fatal("Enabled() = true after Destroy")
	}
	if len(e.Sections()) != 0 {
		t.Error("sections survived Destroy")
	}

	e.AddDelta(500)
	e.ScrollTo(100, ScrollToOptions{Immediate: true})
	runTicks(e, 10)
	if st := e.State(); st.Current != 0 || st.Target != 0 {
		t.Errorf("state moved after Destroy: %+v", st)
	}
	if calls != 0 {
		t.Errorf("scroll callbacks fired %d times after Destroy", calls)
	}

	if s := trackStatic(e, "late", 0, 100); s == nil {
		t.Error("Track on a destroyed engine returned nil, want an inert section")
	}
	if len(e.Sections()) != 0 {
		t.Error("Track on a destroyed engine registered a section")
	}

	e.Enable()
	if e.Enabled() {
		t.Error("a destroyed engine could be re-enabled")
	}
}

func TestEngineScrollEventsOnlyWhileMoving(t *testing.T) {
	e := newTestEngine(Config{})
	trackStatic(e, "content", 0, 3000)
	events := 0
	var last ScrollState
	e.OnScroll(func(st ScrollState) { events++; last = st })

	e.AddDelta(400)
	settle(t, e, 600)
	if events == 0 {
		t.Fatal("no scroll events while converging")
	}
	if last.Current != 400 {
		t.Errorf("last event current = %f, want 400", last.Current)
	}

	quiet := events
	runTicks(e, 60)
	if events != quiet {
		t.Errorf("%d scroll events while parked, want none", events-quiet)
	}
}

func TestEngineSubscriberPanicIsIsolated(t *testing.T) {
	e := newTestEngine(Config{})
	trackStatic(e, "content", 0, 3000)

	sawSecond := 0
	e.OnScroll(func(ScrollState) { panic("boom") })
	e.OnScroll(func(ScrollState) { sawSecond++ })

	e.AddDelta(200)
	runTicks(e, 3)

	if sawSecond == 0 {
		t.Error("second subscriber starved by a panicking first")
	}
	if len(e.handlers.scroll) != 1 {
		t.Errorf("registry holds %d scroll handlers, want 1 (panicker removed)", len(e.handlers.scroll))
	}
}

func TestEngineCallbackHandleRemove(t *testing.T) {
	e := newTestEngine(Config{})
	trackStatic(e, "content", 0, 3000)

	calls := 0
	h := e.OnScroll(func(ScrollState) { calls++ })
	e.AddDelta(100)
	runTicks(e, 2)
	if calls == 0 {
		t.Fatal("handler never fired")
	}

	h.Remove()
	before := calls
	e.AddDelta(100)
	runTicks(e, 10)
	if calls != before {
		t.Errorf("handler fired %d times after Remove", calls-before)
	}

	// Removing twice is harmless, as is removing a zero handle.
	h.Remove()
	CallbackHandle{}.Remove()
}

func TestEngineIdleParkAndWake(t *testing.T) {
	e := newTestEngine(Config{})
	trackStatic(e, "content", 0, 3000)

	e.AddDelta(100)
	settle(t, e, 600)
	runTicks(e, idleAfterTicks+10)
	if e.idleTicks <= idleAfterTicks {
		t.Fatalf("idleTicks = %d after a long quiet stretch, want parked", e.idleTicks)
	}

	e.AddDelta(50)
	if e.idleTicks != 0 {
		t.Errorf("idleTicks = %d after input, want 0 (woken)", e.idleTicks)
	}
}

func TestEngineProgress(t *testing.T) {
	e := newTestEngine(Config{})
	if got := e.Progress(); got != 0 {
		t.Errorf("Progress = %f with no scrollable content, want 0", got)
	}

	trackStatic(e, "content", 0, 3000)
	e.ScrollTo(1100, ScrollToOptions{Immediate: true})
	if got := e.Progress(); !approxEqual(got, 0.5, epsilon) {
		t.Errorf("Progress = %f at half the limit, want 0.5", got)
	}
}

func TestEngineHorizontalAxis(t *testing.T) {
	e := newTestEngine(Config{Axis: AxisHorizontal})
	e.Track(StaticRect(Rect{X: 0, Width: 4000, Height: 600}), SectionOptions{Name: "strip"})

	if got := e.State().Limit; got != 2720 {
		t.Fatalf("limit = %f, want 2720 (width 4000, viewport width 1280)", got)
	}
	e.AddDelta(99999)
	if got := e.State().Target; got != 2720 {
		t.Errorf("target = %f, want clamped at 2720", got)
	}
}
