package drift

// Section is a tracked content region. The engine remeasures it on layout
// changes, recomputes InView and Progress each active tick, and fires
// enter, exit, and progress events as the viewport moves over it.
//
// Fields are refreshed by the engine; hosts read them and must not write.
type Section struct {
	// Name is an optional label for lookups and debugging.
	Name string

	// Index is the registration order, kept dense across Untrack calls.
	Index int

	// Top is the leading edge along the scroll axis (Y for vertical, X for
	// horizontal), in content space.
	Top float64

	// Height is the extent along the scroll axis.
	Height float64

	// Progress is the viewport-relative progress in [0, 1]. Zero while out
	// of view, one while fully contained in the viewport.
	Progress float64

	// InView reports whether the section currently intersects the viewport.
	InView bool

	// Once suppresses repeat enter events and all exit events: the section
	// announces itself the first time it becomes visible and stays quiet
	// afterward. InView and Progress remain truthful.
	Once bool

	measurer Measurer
	valid    bool
	entered  bool
}

// Bottom returns the trailing edge along the scroll axis.
func (s *Section) Bottom() float64 { return s.Top + s.Height }

// Center returns the midpoint along the scroll axis. Snapping aims the
// viewport center at this point.
func (s *Section) Center() float64 { return s.Top + s.Height/2 }

// SectionOptions configure Track.
type SectionOptions struct {
	Name string
	Once bool
}

// sectionInView reports whether a region intersects the viewport window
// [pos, pos+viewport]. Touching an edge counts as intersecting.
func sectionInView(top, height, pos, viewport float64) bool {
	return top+height >= pos && top <= pos+viewport
}

// sectionProgress computes the viewport-relative progress of a region:
// 1 while fully contained in the viewport, otherwise how far the region has
// travelled relative to the edge it overlaps, normalized by the combined
// extent of viewport and region.
func sectionProgress(top, height, pos, viewport float64) float64 {
	bottom := top + height
	viewBottom := pos + viewport
	denom := viewport + height
	if denom <= 0 {
		return 0
	}
	switch {
	case top >= pos && bottom <= viewBottom:
		return 1
	case top < pos:
		return clamp((viewBottom-top)/denom, 0, 1)
	default:
		return clamp((bottom-pos)/denom, 0, 1)
	}
}

// Track registers a content region as a section. The region is measured
// immediately; a detached measurer (ok == false) is tolerated and simply
// reports out of view until a later Refresh finds it attached.
// Panics if m is nil. A destroyed engine returns an inert section.
func (e *Engine) Track(m Measurer, opts SectionOptions) *Section {
	if m == nil {
		panic("drift: cannot track nil Measurer")
	}
	s := &Section{
		Name:     opts.Name,
		Once:     opts.Once,
		Index:    len(e.sections),
		measurer: m,
	}
	if e.destroyed {
		return s
	}
	e.sections = append(e.sections, s)
	e.refreshLayout()
	return s
}

// Untrack removes a section from the engine. No exit event fires even if
// the section was in view. Remaining sections are reindexed and the content
// length is rederived without the removed region.
func (e *Engine) Untrack(s *Section) {
	if e.destroyed {
		return
	}
	for i, cur := range e.sections {
		if cur == s {
			copy(e.sections[i:], e.sections[i+1:])
			e.sections[len(e.sections)-1] = nil
			e.sections = e.sections[:len(e.sections)-1]
			break
		}
	}
	for i, cur := range e.sections {
		cur.Index = i
	}
	e.refreshLayout()
}

// Sections returns the tracked sections in registration order.
func (e *Engine) Sections() []*Section {
	out := make([]*Section, len(e.sections))
	copy(out, e.sections)
	return out
}

// SectionByName returns the first tracked section with the given name, or
// nil if none matches.
func (e *Engine) SectionByName(name string) *Section {
	for _, s := range e.sections {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// scanSections remeasures every tracked section and returns the content
// length implied by the farthest trailing edge.
func (e *Engine) scanSections() float64 {
	length := 0.0
	for _, s := range e.sections {
		r, ok := s.measurer.Measure()
		if !ok {
			s.valid = false
			continue
		}
		s.valid = true
		s.Top = r.start(e.cfg.Axis)
		s.Height = r.extent(e.cfg.Axis)
		if end := s.Bottom(); end > length {
			length = end
		}
	}
	return length
}

type pendingSectionEvent struct {
	event EventType
	ev    SectionEvent
}

// updateSections recomputes in-view state and progress for every section at
// the given scroll position and fires the resulting events. Events are
// collected first and dispatched after the pass so subscribers may call
// Track or Untrack without corrupting the iteration. A section entering
// view fires enter followed by its first progress value.
func (e *Engine) updateSections(pos float64) {
	viewport := e.viewportExtent()
	var pending []pendingSectionEvent

	for _, s := range e.sections {
		in := s.valid && sectionInView(s.Top, s.Height, pos, viewport)
		prog := 0.0
		if in {
			prog = sectionProgress(s.Top, s.Height, pos, viewport)
		}

		switch {
		case in && !s.InView:
			s.InView = true
			if !s.Once || !s.entered {
				pending = append(pending, pendingSectionEvent{EventSectionEnter, SectionEvent{Section: s, Progress: prog}})
			}
			s.entered = true
			if prog != s.Progress {
				s.Progress = prog
				pending = append(pending, pendingSectionEvent{EventSectionProgress, SectionEvent{Section: s, Progress: prog}})
			}
		case !in && s.InView:
			s.InView = false
			s.Progress = 0
			if !s.Once {
				pending = append(pending, pendingSectionEvent{EventSectionExit, SectionEvent{Section: s}})
			}
		case in:
			if prog != s.Progress {
				s.Progress = prog
				pending = append(pending, pendingSectionEvent{EventSectionProgress, SectionEvent{Section: s, Progress: prog}})
			}
		}
	}

	for _, p := range pending {
		e.dispatchSection(p.event, p.ev)
	}
}
