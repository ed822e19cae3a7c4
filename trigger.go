package glide

// Trigger is one element registered for viewport-based behavior. Fields are
// owned by the TriggerRegistry; treat them as read-only.
type Trigger struct {
	Element Element
	// Target is the element whose geometry defines the bounds. It is Element
	// unless markup names another one.
	Target Element
	Config TriggerConfig

	// Top and Bottom are page-absolute bounds with the offset applied.
	// Top <= Bottom always holds.
	Top, Bottom float64
	InView      bool

	armed   bool // call events may still fire
	applied Vec2 // last translation written by parallax
}

// Offset returns the effective offset for the given viewport height.
func (t *Trigger) Offset(viewportHeight float64) float64 {
	return t.Config.Offset + t.Config.OffsetViewport*viewportHeight
}

// Applied returns the last parallax translation written to the element.
func (t *Trigger) Applied() Vec2 {
	return t.applied
}

// Section is an element whose visibility is toggled by viewport membership.
type Section struct {
	Element     Element
	Top, Bottom float64
	InView      bool

	styled bool
}

// triggerBounds shrinks [rawTop, rawTop+height] by offset on both ends. An
// offset larger than half the height collapses the range to its midpoint.
func triggerBounds(rawTop, height, offset float64) (top, bottom float64) {
	top = rawTop + offset
	bottom = rawTop + height - offset
	if top > bottom {
		mid := rawTop + height/2
		return mid, mid
	}
	return top, bottom
}

// nextInView returns the membership after evaluating a trigger currently in
// state inView.
func nextInView(inView bool, scrollTop, viewportHeight, top, bottom float64) bool {
	if !inView {
		return InView(scrollTop, viewportHeight, top, bottom)
	}
	return !OutOfView(scrollTop, viewportHeight, top, bottom)
}
