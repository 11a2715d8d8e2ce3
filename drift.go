package drift

// Axis selects which dimension of the content the engine scrolls along.
type Axis uint8

const (
	AxisVertical   Axis = iota // scroll along Y (default)
	AxisHorizontal             // scroll along X
)

// Direction reports which way the scroll position is moving.
// For AxisHorizontal, DirectionDown means rightward and DirectionUp leftward.
type Direction uint8

const (
	DirectionNone Direction = iota // position at rest or converged on target
	DirectionDown                  // position increasing (content moving up / left)
	DirectionUp                    // position decreasing (content moving down / right)
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirectionDown:
		return "down"
	case DirectionUp:
		return "up"
	default:
		return "none"
	}
}

// Rect is an axis-aligned rectangle in content space. The coordinate system
// has its origin at the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// start returns the rectangle's leading edge along the given axis.
func (r Rect) start(axis Axis) float64 {
	if axis == AxisHorizontal {
		return r.X
	}
	return r.Y
}

// extent returns the rectangle's size along the given axis.
func (r Rect) extent(axis Axis) float64 {
	if axis == AxisHorizontal {
		return r.Width
	}
	return r.Height
}

// ScrollState is a read-only snapshot of the engine's scroll values at the
// end of a tick. Current is the smoothed position actually applied to
// content; Target is where the position is converging.
type ScrollState struct {
	Current   float64   // smoothed scroll position, in [0, Limit]
	Target    float64   // clamped destination position, in [0, Limit]
	Velocity  float64   // inertial velocity in pixels per tick
	Limit     float64   // max scrollable distance: content length minus viewport
	Direction Direction // sign of Target - Current
	Scrolling bool      // position still converging or velocity nonzero
}

// Measurer reports the content-space geometry of a tracked region. The ok
// result is false when the region is currently detached (not measurable);
// detached regions are treated as out of view and are never an error.
type Measurer interface {
	Measure() (Rect, bool)
}

// MeasureFunc adapts a function to the Measurer interface.
type MeasureFunc func() (Rect, bool)

// Measure calls f.
func (f MeasureFunc) Measure() (Rect, bool) { return f() }

// StaticRect returns a Measurer that always reports the fixed rectangle r.
// Useful for content whose layout never changes.
func StaticRect(r Rect) Measurer {
	return MeasureFunc(func() (Rect, bool) { return r, true })
}

// TransformTarget receives the translation computed for a tracked element
// each tick. Implementations typically store the offset and apply it when
// drawing.
type TransformTarget interface {
	SetTranslation(x, y float64)
}

// TranslateFunc adapts a function to the TransformTarget interface.
type TranslateFunc func(x, y float64)

// SetTranslation calls f.
func (f TranslateFunc) SetTranslation(x, y float64) { f(x, y) }

const (
	// positionEpsilon is the convergence threshold: once the smoothed
	// position is within this distance of the target it snaps exactly onto
	// it, ending the scroll.
	positionEpsilon = 0.05

	// velocityEpsilon zeroes decayed velocity so friction terminates.
	velocityEpsilon = 0.05
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
