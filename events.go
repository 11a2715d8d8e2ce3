package drift

// EventType identifies a kind of engine event.
type EventType uint8

const (
	EventScroll          EventType = iota // fires at the end of each tick the position moved
	EventSectionEnter                     // fires when a section starts intersecting the viewport
	EventSectionExit                      // fires when a section stops intersecting the viewport
	EventSectionProgress                  // fires when a visible section's progress changes
	EventSnapBegin                        // fires when a snap animation starts
	EventSnapComplete                     // fires when a snap animation arrives
)

// String returns a human-readable name for the event type.
func (t EventType) String() string {
	switch t {
	case EventScroll:
		return "scroll"
	case EventSectionEnter:
		return "section enter"
	case EventSectionExit:
		return "section exit"
	case EventSectionProgress:
		return "section progress"
	case EventSnapBegin:
		return "snap begin"
	case EventSnapComplete:
		return "snap complete"
	default:
		return "unknown"
	}
}

// SectionEvent carries the section involved in an enter, exit, or progress
// notification. Progress duplicates Section.Progress at dispatch time.
type SectionEvent struct {
	Section  *Section
	Progress float64
}

// SnapEvent describes a snap animation toward a section's resting position.
type SnapEvent struct {
	Section *Section // section being snapped to
	From    float64  // scroll position when the snap started
	To      float64  // resting position the snap is heading for
}

// --- Handler registry ---

type scrollHandler struct {
	id uint32
	fn func(ScrollState)
}

type sectionHandler struct {
	id uint32
	fn func(SectionEvent)
}

type snapHandler struct {
	id uint32
	fn func(SnapEvent)
}

type handlerRegistry struct {
	scroll          []scrollHandler
	sectionEnter    []sectionHandler
	sectionExit     []sectionHandler
	sectionProgress []sectionHandler
	snapBegin       []snapHandler
	snapComplete    []snapHandler
	nextID          uint32
}

// CallbackHandle allows removing a registered engine-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventScroll:
		h.reg.scroll = removeScrollHandler(h.reg.scroll, h.id)
	case EventSectionEnter:
		h.reg.sectionEnter = removeSectionHandler(h.reg.sectionEnter, h.id)
	case EventSectionExit:
		h.reg.sectionExit = removeSectionHandler(h.reg.sectionExit, h.id)
	case EventSectionProgress:
		h.reg.sectionProgress = removeSectionHandler(h.reg.sectionProgress, h.id)
	case EventSnapBegin:
		h.reg.snapBegin = removeSnapHandler(h.reg.snapBegin, h.id)
	case EventSnapComplete:
		h.reg.snapComplete = removeSnapHandler(h.reg.snapComplete, h.id)
	}
}

func removeScrollHandler(s []scrollHandler, id uint32) []scrollHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = scrollHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeSectionHandler(s []sectionHandler, id uint32) []sectionHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = sectionHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeSnapHandler(s []snapHandler, id uint32) []snapHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = snapHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Engine-level event registration ---

// OnScroll registers a callback fired at the end of every tick the scroll
// position changed. The callback receives the tick's final state.
func (e *Engine) OnScroll(fn func(ScrollState)) CallbackHandle {
	e.handlers.nextID++
	id := e.handlers.nextID
	e.handlers.scroll = append(e.handlers.scroll, scrollHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &e.handlers, event: EventScroll}
}

// OnSectionEnter registers a callback fired when a section starts
// intersecting the viewport.
func (e *Engine) OnSectionEnter(fn func(SectionEvent)) CallbackHandle {
	e.handlers.nextID++
	id := e.handlers.nextID
	e.handlers.sectionEnter = append(e.handlers.sectionEnter, sectionHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &e.handlers, event: EventSectionEnter}
}

// OnSectionExit registers a callback fired when a section stops
// intersecting the viewport. Sections tracked with Once never fire this.
func (e *Engine) OnSectionExit(fn func(SectionEvent)) CallbackHandle {
	e.handlers.nextID++
	id := e.handlers.nextID
	e.handlers.sectionExit = append(e.handlers.sectionExit, sectionHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &e.handlers, event: EventSectionExit}
}

// OnSectionProgress registers a callback fired each tick a visible
// section's progress value changes.
func (e *Engine) OnSectionProgress(fn func(SectionEvent)) CallbackHandle {
	e.handlers.nextID++
	id := e.handlers.nextID
	e.handlers.sectionProgress = append(e.handlers.sectionProgress, sectionHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &e.handlers, event: EventSectionProgress}
}

// OnSnapBegin registers a callback fired when a snap animation starts.
func (e *Engine) OnSnapBegin(fn func(SnapEvent)) CallbackHandle {
	e.handlers.nextID++
	id := e.handlers.nextID
	e.handlers.snapBegin = append(e.handlers.snapBegin, snapHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &e.handlers, event: EventSnapBegin}
}

// OnSnapComplete registers a callback fired when a snap animation reaches
// its resting position. Cancelled snaps fire no completion.
func (e *Engine) OnSnapComplete(fn func(SnapEvent)) CallbackHandle {
	e.handlers.nextID++
	id := e.handlers.nextID
	e.handlers.snapComplete = append(e.handlers.snapComplete, snapHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &e.handlers, event: EventSnapComplete}
}

// --- Dispatch ---

// guard runs one subscriber callback. A panicking subscriber is recovered,
// reported, and unregistered so a single broken callback cannot stall the
// tick loop or starve the other subscribers.
func guard(h CallbackHandle, call func()) {
	defer func() {
		if r := recover(); r != nil {
			warnf("%s subscriber panicked: %v (removed)", h.event, r)
			h.Remove()
		}
	}()
	call()
}

func (e *Engine) dispatchScroll(st ScrollState) {
	for _, h := range e.handlers.scroll {
		if h.fn == nil {
			continue
		}
		fn := h.fn
		guard(CallbackHandle{id: h.id, reg: &e.handlers, event: EventScroll}, func() { fn(st) })
	}
}

func (e *Engine) dispatchSection(event EventType, ev SectionEvent) {
	var list []sectionHandler
	switch event {
	case EventSectionEnter:
		list = e.handlers.sectionEnter
	case EventSectionExit:
		list = e.handlers.sectionExit
	case EventSectionProgress:
		list = e.handlers.sectionProgress
	}
	for _, h := range list {
		if h.fn == nil {
			continue
		}
		fn := h.fn
		guard(CallbackHandle{id: h.id, reg: &e.handlers, event: event}, func() { fn(ev) })
	}
}

func (e *Engine) dispatchSnap(event EventType, ev SnapEvent) {
	var list []snapHandler
	switch event {
	case EventSnapBegin:
		list = e.handlers.snapBegin
	case EventSnapComplete:
		list = e.handlers.snapComplete
	}
	for _, h := range list {
		if h.fn == nil {
			continue
		}
		fn := h.fn
		guard(CallbackHandle{id: h.id, reg: &e.handlers, event: event}, func() { fn(ev) })
	}
}
