package glide

// Vec2 is a 2D vector used for scroll positions, deltas, and transform offsets.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward. Element rects returned by a host
// are viewport-relative, like getBoundingClientRect.
type Rect struct {
	X, Y, Width, Height float64
}

// Top returns the top edge of the rectangle.
func (r Rect) Top() float64 { return r.Y }

// Bottom returns the bottom edge of the rectangle.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Metrics is a snapshot of viewport and document size. It is replaced
// wholesale on every resize and resize-settle.
type Metrics struct {
	ViewportWidth  float64
	ViewportHeight float64
	DocumentWidth  float64
	DocumentHeight float64
}

// Direction is the reported direction of a scroll step.
type Direction uint8

const (
	DirectionNone  Direction = iota // no movement reported on this axis
	DirectionUp                     // content moved toward the top of the page
	DirectionDown                   // content moved toward the bottom of the page
	DirectionLeft                   // content moved toward the left edge
	DirectionRight                  // content moved toward the right edge
)

// String returns the lowercase name used in event payloads.
func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return "none"
	}
}

// verticalDirection maps a raw delta (previous - current) to up or down.
// A zero delta reports down.
func verticalDirection(delta float64) Direction {
	if delta > 0 {
		return DirectionUp
	}
	return DirectionDown
}

// horizontalDirection maps a raw delta (previous - current) to left or right.
func horizontalDirection(delta float64) Direction {
	if delta > 0 {
		return DirectionLeft
	}
	return DirectionRight
}

// Axis selects which translation component a parallax offset is written to.
type Axis uint8

const (
	AxisVertical   Axis = iota // translate along Y (default)
	AxisHorizontal             // translate along X
)

// Anchor selects the parallax distance formula for a trigger.
type Anchor uint8

const (
	AnchorMiddle     Anchor = iota // distance from the viewport middle (default)
	AnchorTop                      // distance from the page top
	AnchorElementTop               // distance since the element top entered the viewport
	AnchorBottom                   // distance to the content bottom
)

// EventType identifies an event emitted by the engine.
type EventType uint8

const (
	EventResize    EventType = iota // fires on every native resize
	EventResizeEnd                  // fires once resizing has been idle for the settle period
	EventScroll                     // fires on every position change
	EventScrollEnd                  // fires once scrolling has been idle for the settle period
	EventCall                       // fires when a trigger with a call name enters or exits view
)

// String returns the event name as used in markup-facing documentation.
func (e EventType) String() string {
	switch e {
	case EventResize:
		return "resize"
	case EventResizeEnd:
		return "resize:end"
	case EventScroll:
		return "scroll"
	case EventScrollEnd:
		return "scroll:end"
	case EventCall:
		return "call"
	default:
		return "unknown"
	}
}

// CallState is the transition carried by a call event.
type CallState uint8

const (
	CallEnter CallState = iota // the trigger entered the viewport
	CallExit                   // the trigger left the viewport
)

// String returns "enter" or "exit".
func (s CallState) String() string {
	if s == CallExit {
		return "exit"
	}
	return "enter"
}
