package drift

import (
	"fmt"
	"os"
)

// warnf prints a library warning to stderr. Used for recoverable problems:
// out-of-range config values, panicking subscribers, scripts that cannot be
// parsed. Warnings are unconditional; per-tick state logging is gated on
// Config.Debug.
func warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[drift] warning: "+format+"\n", args...)
}

// debugLog prints a one-line state summary to stderr. Only called when
// Config.Debug is true.
func (e *Engine) debugLog() {
	st := e.mom.state()
	_, _ = fmt.Fprintf(os.Stderr,
		"[drift] tick %d | current: %.2f | target: %.2f | velocity: %.2f | limit: %.2f | dir: %s | snap: %s\n",
		e.tick, st.Current, st.Target, st.Velocity, st.Limit, st.Direction, e.snap.phase)
}
