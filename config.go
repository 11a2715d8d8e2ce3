package drift

import (
	"time"

	"github.com/tanema/gween/ease"
)

// Defaults applied by NewEngine for Config fields left at their zero value.
const (
	DefaultFriction        = 0.85
	DefaultLerp            = 0.08
	DefaultMaxVelocity     = 80.0
	DefaultWheelClamp      = 100.0
	DefaultWheelMultiplier = 1.0
	DefaultTouchMultiplier = 2.0
	DefaultFlickMultiplier = 2.0
	DefaultKeyDelta        = 16.0
	DefaultSnapDuration    = 600 * time.Millisecond
	DefaultScrollDuration  = 800 * time.Millisecond
)

const (
	// autoSnapThreshold is the fraction of the viewport extent used as the
	// snap capture distance when Config.SnapThreshold is zero.
	autoSnapThreshold = 0.3

	// pageFraction is the fraction of the viewport extent scrolled by
	// PageUp/PageDown, leaving some overlap for reading continuity.
	pageFraction = 0.9
)

// Tick-denominated timings. At the default 60 TPS these correspond to
// roughly 150ms of resize debounce, 500ms of snap cooldown after a
// cancelled snap, and 200ms of stillness before per-tick section and
// parallax work is suspended.
const (
	resizeDebounceTicks = 9
	snapCooldownTicks   = 30
	idleAfterTicks      = 12
)

// Flick detection: a touch release within flickMaxTicks of its start that
// travelled at least flickMinDistance pixels converts into velocity.
const (
	flickMaxTicks    = 18
	flickMinDistance = 10.0
)

// Config controls an Engine. The zero value scrolls vertically with the
// default feel and input enabled; snapping is opt-in.
type Config struct {
	// Axis selects the scroll dimension. Defaults to AxisVertical.
	Axis Axis

	// Friction multiplies velocity each tick, in (0, 1). Higher values
	// coast longer. Defaults to DefaultFriction.
	Friction float64

	// Lerp is the per-tick interpolation factor pulling the smoothed
	// position toward the target, in (0, 1]. A value of 1 disables
	// smoothing. Defaults to DefaultLerp.
	Lerp float64

	// MaxVelocity caps the magnitude of inertial velocity in pixels per
	// tick. Defaults to DefaultMaxVelocity.
	MaxVelocity float64

	// WheelMultiplier scales normalized wheel deltas. Negative values
	// invert wheel direction. Defaults to DefaultWheelMultiplier.
	WheelMultiplier float64

	// WheelClamp caps the magnitude of a single raw wheel step before the
	// multiplier applies, taming high-resolution device bursts.
	// Defaults to DefaultWheelClamp.
	WheelClamp float64

	// TouchMultiplier scales touch-drag displacement. Defaults to
	// DefaultTouchMultiplier.
	TouchMultiplier float64

	// FlickMultiplier scales the velocity impulse a fast short touch leaves
	// behind on release. Defaults to DefaultFlickMultiplier.
	FlickMultiplier float64

	// KeyDelta is the pixels scrolled per tick while an arrow key is held.
	// Defaults to DefaultKeyDelta.
	KeyDelta float64

	// Snap enables settling onto the nearest section after scrolling stops.
	Snap bool

	// SnapThreshold is the capture distance in pixels between the settled
	// position and a section's resting position. Zero selects an automatic
	// threshold of 30% of the viewport extent.
	SnapThreshold float64

	// SnapDuration is the length of the snap animation. Defaults to
	// DefaultSnapDuration.
	SnapDuration time.Duration

	// SnapEase shapes the snap animation. Defaults to ease.OutCubic.
	SnapEase ease.TweenFunc

	// DisableInput skips device polling entirely; the engine then moves
	// only through ScrollTo, AddDelta, and injected input. Hosts that are
	// not Ebitengine games (or that do their own input routing) set this.
	DisableInput bool

	// Debug prints a per-tick state line to stderr.
	Debug bool
}

// normalized returns a copy of c with zero fields defaulted and invalid
// values replaced, warning on each replacement.
func (c Config) normalized() Config {
	if c.Friction == 0 {
		c.Friction = DefaultFriction
	} else if c.Friction < 0 || c.Friction >= 1 {
		warnf("Config.Friction %v out of range (0, 1), using %v", c.Friction, DefaultFriction)
		c.Friction = DefaultFriction
	}
	if c.Lerp == 0 {
		c.Lerp = DefaultLerp
	} else if c.Lerp < 0 || c.Lerp > 1 {
		warnf("Config.Lerp %v out of range (0, 1], using %v", c.Lerp, DefaultLerp)
		c.Lerp = DefaultLerp
	}
	if c.MaxVelocity == 0 {
		c.MaxVelocity = DefaultMaxVelocity
	} else if c.MaxVelocity < 0 {
		warnf("Config.MaxVelocity %v is negative, using %v", c.MaxVelocity, DefaultMaxVelocity)
		c.MaxVelocity = DefaultMaxVelocity
	}
	if c.WheelMultiplier == 0 {
		c.WheelMultiplier = DefaultWheelMultiplier
	}
	if c.WheelClamp == 0 {
		c.WheelClamp = DefaultWheelClamp
	} else if c.WheelClamp < 0 {
		warnf("Config.WheelClamp %v is negative, using %v", c.WheelClamp, DefaultWheelClamp)
		c.WheelClamp = DefaultWheelClamp
	}
	if c.TouchMultiplier == 0 {
		c.TouchMultiplier = DefaultTouchMultiplier
	}
	if c.FlickMultiplier == 0 {
		c.FlickMultiplier = DefaultFlickMultiplier
	}
	if c.KeyDelta == 0 {
		c.KeyDelta = DefaultKeyDelta
	} else if c.KeyDelta < 0 {
		warnf("Config.KeyDelta %v is negative, using %v", c.KeyDelta, DefaultKeyDelta)
		c.KeyDelta = DefaultKeyDelta
	}
	if c.SnapThreshold < 0 {
		warnf("Config.SnapThreshold %v is negative, using automatic threshold", c.SnapThreshold)
		c.SnapThreshold = 0
	}
	if c.SnapDuration <= 0 {
		c.SnapDuration = DefaultSnapDuration
	}
	if c.SnapEase == nil {
		c.SnapEase = ease.OutCubic
	}
	return c
}
