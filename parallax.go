package glide

// ParallaxInput is the geometry a parallax distance is computed from. All
// coordinates are page-absolute.
type ParallaxInput struct {
	ScrollTop      float64
	ViewportHeight float64
	ContentHeight  float64
	Top, Bottom    float64
	Speed          float64
	Anchor         Anchor
}

// ParallaxDistance returns the signed translation for a trigger.
//
// The middle anchor measures against top + (bottom - top), not the true
// midpoint; markup is tuned against that magnitude.
func ParallaxDistance(in ParallaxInput) float64 {
	scrollBottom := in.ScrollTop + in.ViewportHeight
	switch in.Anchor {
	case AnchorTop:
		return -in.ScrollTop * in.Speed
	case AnchorElementTop:
		return -(scrollBottom - in.Top) * in.Speed
	case AnchorBottom:
		return in.Speed * (in.ContentHeight - scrollBottom + in.ViewportHeight)
	default:
		scrollMiddle := in.ScrollTop + in.ViewportHeight/2
		elementMiddle := in.Top + (in.Bottom - in.Top)
		return -in.Speed * (scrollMiddle - elementMiddle)
	}
}

// ParallaxOffset turns a distance into a translation along axis. With a
// delay in (0, 1] the result eases from the current offset toward distance.
func ParallaxOffset(current Vec2, distance, delay float64, axis Axis) Vec2 {
	if delay > 0 {
		from := current.Y
		if axis == AxisHorizontal {
			from = current.X
		}
		distance = round2(Lerp(from, distance, delay))
	}
	if axis == AxisHorizontal {
		return Vec2{X: distance}
	}
	return Vec2{Y: distance}
}

// InView reports whether a trigger spanning [top, bottom] is entered by a
// viewport starting at scrollTop.
func InView(scrollTop, viewportHeight, top, bottom float64) bool {
	return scrollTop+viewportHeight >= top && scrollTop < bottom
}

// OutOfView reports whether an in-view trigger has left the viewport. The
// bounds are looser than InView's, so a trigger at exactly scrollTop ==
// bottom keeps its current state.
func OutOfView(scrollTop, viewportHeight, top, bottom float64) bool {
	return scrollTop+viewportHeight < top || scrollTop > bottom
}
