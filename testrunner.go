package drift

import (
	"encoding/json"
	"fmt"
	"time"
)

// scriptStep represents a single action in a scroll script.
type scriptStep struct {
	Action   string  `json:"action"`
	Delta    float64 `json:"delta,omitempty"`      // wheel: notches per event
	From     float64 `json:"from,omitempty"`       // flick: start position
	To       float64 `json:"to,omitempty"`         // flick: end position
	Position float64 `json:"position,omitempty"`   // scrollto: destination
	Key      string  `json:"key,omitempty"`        // key: up, down, pageup, pagedown, home, end
	Frames   int     `json:"frames,omitempty"`     // repeat / gesture length / wait budget
	Duration int     `json:"durationMs,omitempty"` // scrollto: animation length
}

// scrollScript is the top-level JSON structure for a scroll script.
type scrollScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences injected input and programmatic scrolls across
// ticks for automated behavior testing. Attach to an Engine via
// SetScriptRunner; each step waits for the previous one's injections to
// drain before executing.
//
// Supported actions: "wheel" (delta notches, repeated over frames),
// "flick" (touch gesture from/to over frames), "key" (one semantic key),
// "scrollto" (animated; a negative durationMs jumps immediately), "wait"
// (a fixed number of frames), and "settle" (until the engine stops moving,
// bounded by frames).
type ScriptRunner struct {
	steps      []scriptStep
	cursor     int
	waitCount  int
	settleLeft int
	done       bool
}

// LoadScript parses a JSON scroll script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var script scrollScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse scroll script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse scroll script: no steps")
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// SetScriptRunner attaches a script runner to the engine. The runner's
// step method is called from Update before input polling each tick.
func (e *Engine) SetScriptRunner(r *ScriptRunner) {
	e.runner = r
	e.wake()
}

// Done reports whether all steps in the script have executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one tick. Called from Engine.Update.
func (r *ScriptRunner) step(e *Engine) {
	if r.done {
		return
	}
	// Let pending injections drain before advancing.
	if len(e.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.settleLeft > 0 {
		r.settleLeft--
		if e.anim != nil || !e.mom.settled() {
			if r.settleLeft == 0 {
				warnf("script settle step gave up before the engine settled")
			}
			return
		}
		r.settleLeft = 0
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "wheel":
		n := st.Frames
		if n < 1 {
			n = 1
		}
		for i := 0; i < n; i++ {
			e.InjectWheel(st.Delta)
		}
	case "flick":
		e.InjectFlick(st.From, st.To, st.Frames)
	case "key":
		e.InjectKey(parseKey(st.Key))
	case "scrollto":
		opts := ScrollToOptions{}
		switch {
		case st.Duration < 0:
			opts.Immediate = true
		case st.Duration > 0:
			opts.Duration = time.Duration(st.Duration) * time.Millisecond
		}
		e.ScrollTo(st.Position, opts)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this tick counts as one
		}
	case "settle":
		budget := st.Frames
		if budget <= 0 {
			budget = 600
		}
		r.settleLeft = budget
	default:
		warnf("script step %d: unknown action %q", r.cursor-1, st.Action)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && r.settleLeft == 0 && len(e.injectQueue) == 0 {
		r.done = true
	}
}

// parseKey maps a script key name onto a semantic key action.
func parseKey(name string) Key {
	switch name {
	case "up", "left", "back":
		return KeyArrowBack
	case "down", "right", "forward":
		return KeyArrowForward
	case "pageup":
		return KeyPageBack
	case "pagedown":
		return KeyPageForward
	case "home":
		return KeyHome
	case "end":
		return KeyEnd
	default:
		warnf("script: unknown key %q", name)
		return KeyNone
	}
}
