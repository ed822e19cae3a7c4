package glide

// RegistryOptions configures a TriggerRegistry scan.
type RegistryOptions struct {
	// Container is the root whose descendants are scanned.
	Container Element
	// InViewClass is added to triggers entering view.
	InViewClass string
	Attributes  Attributes
}

// TriggerRegistry tracks triggers and sections inside a container, fires
// enter/exit effects and call events, and writes parallax transforms.
//
// Geometry is read only on setup, SetContentHeight, Refresh and settled
// resizes. Scroll events only re-evaluate membership.
type TriggerRegistry struct {
	host   Host
	pos    *PositionTracker
	resize *ResizeTracker
	log    *logger
	opts   RegistryOptions

	triggers []*Trigger
	sections []*Section

	viewportHeight float64
	contentHeight  float64

	calls    listeners[CallEvent]
	handles  []CallbackHandle
	attached bool

	removeFrame func()
}

// NewTriggerRegistry creates a registry reading positions from pos and
// viewport metrics from resize.
func NewTriggerRegistry(host Host, pos *PositionTracker, resize *ResizeTracker) *TriggerRegistry {
	return newTriggerRegistry(host, pos, resize, newLogger())
}

func newTriggerRegistry(host Host, pos *PositionTracker, resize *ResizeTracker, log *logger) *TriggerRegistry {
	return &TriggerRegistry{host: host, pos: pos, resize: resize, log: log}
}

// Start scans opts.Container and subscribes to scroll and settled resize.
// Starting again rescans from scratch.
func (r *TriggerRegistry) Start(opts RegistryOptions) error {
	r.Stop()
	if opts.InViewClass == "" {
		opts.InViewClass = DefaultInViewClass
	}
	if opts.Attributes.Trigger == "" {
		opts.Attributes = DefaultAttributes()
	}
	r.opts = opts
	r.viewportHeight = r.resize.Metrics().ViewportHeight

	if opts.Container != nil {
		if err := r.scan(opts.Container); err != nil {
			return err
		}
	}

	r.Attach()
	return nil
}

// Stop removes every subscription and clears the trigger and section lists.
func (r *TriggerRegistry) Stop() {
	r.Detach()
	r.triggers = nil
	r.sections = nil
}

// Attach subscribes to scroll and settled resize, and to the frame tick when
// a trigger eases its parallax. Calling Attach twice is a no-op.
func (r *TriggerRegistry) Attach() {
	if r.attached {
		return
	}
	r.attached = true
	r.viewportHeight = r.resize.Metrics().ViewportHeight
	r.handles = append(r.handles,
		r.pos.OnScroll(func(ScrollEvent) { r.Detect() }),
		r.resize.OnResizeEnd(r.handleResizeEnd),
	)
	r.syncFrame()
}

// Detach removes every subscription but keeps the scanned triggers, their
// state and bounds, so Attach can resume.
func (r *TriggerRegistry) Detach() {
	r.attached = false
	for _, h := range r.handles {
		h.Remove()
	}
	r.handles = nil
	r.syncFrame()
}

// OnCall registers a callback for call events.
func (r *TriggerRegistry) OnCall(fn func(CallEvent)) CallbackHandle {
	return r.calls.add(fn)
}

// Triggers returns the registered triggers. The slice MUST NOT be mutated.
func (r *TriggerRegistry) Triggers() []*Trigger {
	return r.triggers
}

// Sections returns the registered sections. The slice MUST NOT be mutated.
func (r *TriggerRegistry) Sections() []*Section {
	return r.sections
}

// ContentHeight returns the content height last set by the orchestrator.
func (r *TriggerRegistry) ContentHeight() float64 {
	return r.contentHeight
}

// SetContentHeight records a new content height, recomputes geometry, and
// re-evaluates membership.
func (r *TriggerRegistry) SetContentHeight(h float64) {
	r.contentHeight = h
	r.Refresh()
}

// Refresh recomputes every boundary from current geometry and re-evaluates
// membership. Calling it twice with unchanged geometry is a no-op the
// second time.
func (r *TriggerRegistry) Refresh() {
	r.recompute()
	r.Detect()
}

// Detect re-evaluates membership for every trigger and section at the
// current logical position and applies parallax.
func (r *TriggerRegistry) Detect() {
	scrollTop := r.pos.Position().Y
	vh := r.viewportHeight

	for _, s := range r.sections {
		in := nextInView(s.InView, scrollTop, vh, s.Top, s.Bottom)
		if in != s.InView || !s.styled {
			s.InView = in
			s.styled = true
			applySectionVisibility(s.Element, in)
		}
	}

	for _, t := range r.triggers {
		in := nextInView(t.InView, scrollTop, vh, t.Top, t.Bottom)
		switch {
		case in && !t.InView:
			r.enter(t)
		case !in && t.InView:
			r.exit(t)
		}
		if t.Config.Speed != 0 && !(t.Config.Delay > 0 && r.removeFrame != nil) {
			r.applyParallax(t, scrollTop)
		}
	}
}

func (r *TriggerRegistry) scan(container Element) error {
	a := r.opts.Attributes
	bad := func(attr, value string) {
		r.log.tracef("ignoring %s=%q", attr, value)
	}

	sections, err := container.QueryAll(attrSelector(a.Section))
	if err != nil {
		return err
	}
	for _, el := range sections {
		s := &Section{Element: el}
		r.sectionBounds(s)
		r.sections = append(r.sections, s)
	}

	elements, err := container.QueryAll(attrSelector(a.Trigger))
	if err != nil {
		return err
	}
	for _, el := range elements {
		cfg := parseTriggerConfig(el, a, bad)
		t := &Trigger{
			Element: el,
			Target:  r.resolveTarget(el, cfg.Target),
			Config:  cfg,
			armed:   true,
		}
		r.triggerBounds(t)
		r.triggers = append(r.triggers, t)
	}
	r.log.tracef("registered %d triggers, %d sections", len(r.triggers), len(r.sections))
	return nil
}

func (r *TriggerRegistry) resolveTarget(el Element, selector string) Element {
	if selector == "" {
		return el
	}
	target, err := r.host.Query(selector)
	if err != nil || target == nil {
		r.log.tracef("trigger target %q not found, using element", selector)
		return el
	}
	return target
}

func (r *TriggerRegistry) recompute() {
	for _, s := range r.sections {
		r.sectionBounds(s)
	}
	for _, t := range r.triggers {
		r.triggerBounds(t)
	}
}

func (r *TriggerRegistry) triggerBounds(t *Trigger) {
	rawTop := t.Target.BoundingClientRect().Top() + r.pos.Position().Y
	if t.Target == t.Element {
		// The rect includes our own parallax translation.
		rawTop -= t.applied.Y
	}
	t.Top, t.Bottom = triggerBounds(rawTop, t.Target.OffsetHeight(), t.Offset(r.viewportHeight))
}

func (r *TriggerRegistry) sectionBounds(s *Section) {
	s.Top = s.Element.BoundingClientRect().Top() + r.pos.Position().Y
	s.Bottom = s.Top + s.Element.OffsetHeight()
}

func (r *TriggerRegistry) enter(t *Trigger) {
	t.InView = true
	t.Element.AddClass(r.opts.InViewClass)
	r.log.tracef("enter [%.0f, %.0f] call=%q", t.Top, t.Bottom, t.Config.Call)

	if t.armed && t.Config.Call != "" {
		r.calls.emit(CallEvent{Name: t.Config.Call, Element: t.Element, State: CallEnter})
		if !t.Config.Repeat {
			t.armed = false
		}
	}
}

func (r *TriggerRegistry) exit(t *Trigger) {
	t.InView = false
	r.log.tracef("exit [%.0f, %.0f] call=%q", t.Top, t.Bottom, t.Config.Call)

	if t.armed && t.Config.Call != "" {
		r.calls.emit(CallEvent{Name: t.Config.Call, Element: t.Element, State: CallExit})
	}
	if t.Config.Repeat {
		t.Element.RemoveClass(r.opts.InViewClass)
	}
}

// parallaxEnabled reports whether t may be transformed right now.
func (r *TriggerRegistry) parallaxEnabled(t *Trigger) bool {
	if t.Config.ForceParallax {
		return true
	}
	return r.pos.Smoothing() && !r.host.IsTouch()
}

func (r *TriggerRegistry) applyParallax(t *Trigger, scrollTop float64) {
	if !t.InView || !r.parallaxEnabled(t) {
		return
	}
	distance := ParallaxDistance(ParallaxInput{
		ScrollTop:      scrollTop,
		ViewportHeight: r.viewportHeight,
		ContentHeight:  r.contentHeight,
		Top:            t.Top,
		Bottom:         t.Bottom,
		Speed:          t.Config.Speed,
		Anchor:         t.Config.Anchor,
	})
	current := t.applied
	if v, ok := readTransform(t.Element); ok {
		current = v
	}
	offset := ParallaxOffset(current, distance, t.Config.Delay, t.Config.Direction)
	if offset == t.applied {
		return
	}
	SetTransform(t.Element, offset)
	t.applied = offset
}

// resetParallax removes the transform from triggers that may no longer be
// translated, e.g. after smoothing is switched off.
func (r *TriggerRegistry) resetParallax() {
	for _, t := range r.triggers {
		if t.applied == (Vec2{}) || r.parallaxEnabled(t) {
			continue
		}
		t.Element.SetStyle("transform", "")
		t.applied = Vec2{}
	}
}

// syncFrame subscribes the frame tick while the registry is attached and any
// trigger eases its parallax with a delay, so the lag keeps settling after
// scrolling stops.
func (r *TriggerRegistry) syncFrame() {
	need := false
	for _, t := range r.triggers {
		if r.attached && t.Config.Speed != 0 && t.Config.Delay > 0 && r.parallaxEnabled(t) {
			need = true
			break
		}
	}
	switch {
	case need && r.removeFrame == nil:
		r.removeFrame = r.host.OnFrame(r.tickDelayed)
	case !need && r.removeFrame != nil:
		r.removeFrame()
		r.removeFrame = nil
	}
}

func (r *TriggerRegistry) tickDelayed() {
	scrollTop := r.pos.Position().Y
	for _, t := range r.triggers {
		if t.Config.Speed != 0 && t.Config.Delay > 0 {
			r.applyParallax(t, scrollTop)
		}
	}
}

func (r *TriggerRegistry) handleResizeEnd(m Metrics) {
	r.viewportHeight = m.ViewportHeight
	r.Refresh()
}

// applySectionVisibility shows or hides a section without touching layout.
func applySectionVisibility(el Element, visible bool) {
	if visible {
		el.SetStyle("visibility", "visible")
		el.SetStyle("opacity", "1")
		el.SetStyle("pointer-events", "all")
		return
	}
	el.SetStyle("visibility", "hidden")
	el.SetStyle("opacity", "0")
	el.SetStyle("pointer-events", "none")
}
