package drift

// TrackedElement is a decorative region whose translation the engine
// recomputes every active tick from the smoothed scroll position.
//
// The translation composes with the host's own content offset: a host that
// draws content at -Current applies Translation on top of that. With
// Speed -1 the two cancel and the element appears fixed on screen.
//
// Fields are refreshed by the engine; hosts read them and must not write.
type TrackedElement struct {
	// Speed scales the scroll-coupled term of the translation:
	// Translation = -(current * Speed) + Offset. Positive speeds move the
	// element against the scroll (faster than content), negative speeds
	// with it (slower than content, the classic background parallax).
	Speed float64

	// Lag adds a motion-coupled term, (current - previous current) * Lag,
	// so the element trails or leads while the position is changing and
	// relaxes to the pure parallax translation at rest.
	Lag float64

	// Offset is a constant bias added to the translation.
	Offset float64

	// Sticky applies the translation even while the element is out of
	// view. Off-view non-sticky elements are skipped, not reset.
	Sticky bool

	// Translation is the last computed translation along the scroll axis.
	Translation float64

	// Top is the leading edge along the scroll axis, from the last scan.
	Top float64

	// Height is the extent along the scroll axis, from the last scan.
	Height float64

	// InView reports whether the element intersected the viewport at the
	// last update.
	InView bool

	// Index is the registration order, kept dense across UntrackElement.
	Index int

	measurer    Measurer
	target      TransformTarget
	valid       bool
	lastCurrent float64
}

// ElementOptions configure TrackElement.
type ElementOptions struct {
	Speed  float64
	Lag    float64
	Offset float64
	Sticky bool

	// Target receives the computed translation each tick, axis-mapped:
	// (0, Translation) for vertical engines, (Translation, 0) for
	// horizontal. Optional; hosts may instead read Translation when
	// drawing.
	Target TransformTarget
}

// Pinned returns ElementOptions that hold an element visually fixed while
// the content scrolls past it: a full counter-translation, applied even
// while the element's own bounds are off screen.
func Pinned() ElementOptions {
	return ElementOptions{Speed: -1, Sticky: true}
}

// TrackElement registers a decorative region for per-tick translation.
// Panics if m is nil. A destroyed engine returns an inert element.
func (e *Engine) TrackElement(m Measurer, opts ElementOptions) *TrackedElement {
	if m == nil {
		panic("drift: cannot track nil Measurer")
	}
	el := &TrackedElement{
		Speed:    opts.Speed,
		Lag:      opts.Lag,
		Offset:   opts.Offset,
		Sticky:   opts.Sticky,
		Index:    len(e.elements),
		measurer: m,
		target:   opts.Target,
	}
	if e.destroyed {
		return el
	}
	e.elements = append(e.elements, el)
	e.refreshLayout()
	return el
}

// UntrackElement removes a tracked element. Its last translation remains
// wherever the target stored it; hosts reset their own transforms.
func (e *Engine) UntrackElement(el *TrackedElement) {
	if e.destroyed {
		return
	}
	for i, cur := range e.elements {
		if cur == el {
			copy(e.elements[i:], e.elements[i+1:])
			e.elements[len(e.elements)-1] = nil
			e.elements = e.elements[:len(e.elements)-1]
			break
		}
	}
	for i, cur := range e.elements {
		cur.Index = i
	}
}

// Elements returns the tracked elements in registration order.
func (e *Engine) Elements() []*TrackedElement {
	out := make([]*TrackedElement, len(e.elements))
	copy(out, e.elements)
	return out
}

// scanElements remeasures every tracked element and returns the farthest
// trailing edge, so elements past the last section still count toward the
// derived content length.
func (e *Engine) scanElements() float64 {
	var far float64
	for _, el := range e.elements {
		r, ok := el.measurer.Measure()
		if !ok {
			el.valid = false
			continue
		}
		el.valid = true
		el.Top = r.start(e.cfg.Axis)
		el.Height = r.extent(e.cfg.Axis)
		if b := el.Top + el.Height; b > far {
			far = b
		}
	}
	return far
}

// applyParallax recomputes translations at the given smoothed position and
// pushes them to transform targets. Detached elements are skipped unless
// sticky; a sticky element needs no geometry to compute its translation.
func (e *Engine) applyParallax(current float64) {
	viewport := e.viewportExtent()
	for _, el := range e.elements {
		in := el.valid && sectionInView(el.Top, el.Height, current, viewport)
		el.InView = in
		if !in && !el.Sticky {
			// Refresh the lag reference while skipped so re-entering view
			// does not produce a spike from stale history.
			el.lastCurrent = current
			continue
		}

		t := -(current * el.Speed) + el.Offset
		if el.Lag != 0 {
			t += (current - el.lastCurrent) * el.Lag
		}
		el.lastCurrent = current
		el.Translation = t

		if el.target != nil {
			if e.cfg.Axis == AxisHorizontal {
				el.target.SetTranslation(t, 0)
			} else {
				el.target.SetTranslation(0, t)
			}
		}
	}
}
