package glide

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Scroller wires the position tracker, resize tracker and trigger registry
// for one page instance. With smoothing active it pins the content element,
// translates it by the smoothed position, and keeps the container as tall as
// the content so the document still scrolls natively.
type Scroller struct {
	host Host
	log  *logger
	opts Options

	container Element
	content   Element

	position *PositionTracker
	resize   *ResizeTracker
	triggers *TriggerRegistry

	contentHeight float64
	allowCheck    bool
	checkTimer    Timer

	handles       []CallbackHandle
	removers      []func() // native listeners owned by Enable
	clickRemovers []func()
	storeHandles  []CallbackHandle
	enabled       bool
	styled        bool
	started       bool
}

// New builds a Scroller for host. Missing container/content elements are
// looked up by their markup attributes.
func New(host Host, opts Options) (*Scroller, error) {
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("new scroller: %w", err)
	}

	s := &Scroller{host: host, log: newLogger(), opts: opts}

	s.container = opts.Container
	if s.container == nil {
		el, err := host.Query(attrSelector(opts.Attributes.Container))
		if err != nil {
			return nil, fmt.Errorf("new scroller: container: %w", err)
		}
		s.container = el
	}
	s.content = opts.Content
	if s.content == nil {
		el, err := host.Query(attrSelector(opts.Attributes.Content))
		if err != nil {
			return nil, fmt.Errorf("new scroller: content: %w", err)
		}
		s.content = el
	}
	if s.container == nil || s.content == nil {
		return nil, fmt.Errorf("new scroller: container and content elements are required")
	}

	s.position = newPositionTracker(host, s.log)
	s.resize = NewResizeTracker(host, opts.ResizeSettle)
	s.triggers = newTriggerRegistry(host, s.position, s.resize, s.log)
	return s, nil
}

// Start begins tracking: native listeners, smoothing, style properties,
// trigger scan and the first height measurement.
func (s *Scroller) Start() error {
	if s.started {
		return nil
	}
	s.position.Start(TrackerOptions{
		Smooth:       s.opts.Smooth,
		SmoothFactor: s.opts.SmoothFactor,
		Settle:       s.opts.Settle,
	})
	s.position.Enable(s.opts.ScrollEnableClass)
	s.resize.Start()

	err := s.triggers.Start(RegistryOptions{
		Container:   s.container,
		InViewClass: s.opts.InViewClass,
		Attributes:  s.opts.Attributes,
	})
	if err != nil {
		s.position.Stop()
		s.resize.Stop()
		return fmt.Errorf("start scroller: %w", err)
	}
	s.started = true
	s.Enable()
	s.bindScrollTargets()
	return nil
}

// Stop tears everything down: native listeners, pending timers, the frame
// tick, click handlers and style properties. Triggers are cleared.
func (s *Scroller) Stop() {
	if !s.started {
		return
	}
	s.Disable()
	s.triggers.Stop()
	s.position.Stop()
	s.position.Disable(s.opts.ScrollEnableClass)
	s.resize.Stop()
	for _, rm := range s.clickRemovers {
		rm()
	}
	s.clickRemovers = nil
	s.started = false
}

// Enable resumes the trackers and the trigger registry, attaches the
// orchestrator's listeners and style properties, and measures the content.
func (s *Scroller) Enable() {
	if s.enabled || !s.started {
		return
	}
	s.enabled = true
	s.position.Resume()
	s.resize.Start()
	s.triggers.Attach()
	s.handles = append(s.handles,
		s.position.OnScroll(func(ScrollEvent) { s.setOffset() }),
		s.position.OnScrollEnd(func(ScrollEndEvent) { s.setOffset() }),
		s.resize.OnResizeEnd(func(Metrics) { s.measure() }),
	)
	s.removers = append(s.removers, s.host.On(HostReadyStateChange, s.measure))

	if obs, ok := s.host.(ResizeObserver); ok {
		s.removers = append(s.removers, obs.ObserveResize(s.content, s.checkContentHeight))
	} else {
		s.removers = append(s.removers, s.host.OnFrame(s.pollContentHeight))
	}
	s.armHeightCheck()
	s.setStyleProps()
	s.measure()
}

// Disable detaches every native listener, timer and frame subscription and
// removes the style properties. Triggers keep their state; Enable resumes
// from the current native position.
func (s *Scroller) Disable() {
	if !s.enabled {
		return
	}
	s.enabled = false
	for _, h := range s.handles {
		h.Remove()
	}
	s.handles = nil
	for _, rm := range s.removers {
		rm()
	}
	s.removers = nil
	if s.checkTimer != nil {
		s.checkTimer.Stop()
		s.checkTimer = nil
	}
	s.allowCheck = false
	s.triggers.Detach()
	s.resize.Stop()
	s.position.Pause()
	s.removeStyleProps()
}

// Update forces a content height check, e.g. after injecting content. It
// does nothing while disabled.
func (s *Scroller) Update() {
	if !s.enabled {
		return
	}
	s.checkContentHeight()
}

// ScrollTo smooth-scrolls to a selector, absolute offset, or element.
func (s *Scroller) ScrollTo(target any, offset float64) error {
	return s.position.ScrollTo(target, offset)
}

// EnableSmoothing turns smoothing on at runtime (no-op on touch devices).
func (s *Scroller) EnableSmoothing() {
	s.position.EnableSmoothing()
	s.triggers.syncFrame()
	if s.enabled {
		s.setStyleProps()
		s.measure()
	}
}

// DisableSmoothing returns to native scrolling.
func (s *Scroller) DisableSmoothing() {
	s.position.DisableSmoothing()
	s.triggers.resetParallax()
	s.triggers.syncFrame()
	s.removeStyleProps()
	if s.enabled {
		s.measure()
	}
}

// SetSmoothFactor changes the smoothing lerp factor.
func (s *Scroller) SetSmoothFactor(f float64) {
	s.position.SetSmoothFactor(f)
}

// Position returns the current logical scroll position.
func (s *Scroller) Position() Vec2 { return s.position.Position() }

// PositionTracker returns the underlying position tracker.
func (s *Scroller) PositionTracker() *PositionTracker { return s.position }

// ResizeTracker returns the underlying resize tracker.
func (s *Scroller) ResizeTracker() *ResizeTracker { return s.resize }

// Triggers returns the underlying trigger registry.
func (s *Scroller) Triggers() *TriggerRegistry { return s.triggers }

// ContentHeight returns the last measured content height.
func (s *Scroller) ContentHeight() float64 { return s.contentHeight }

// OnScroll registers a scroll callback.
func (s *Scroller) OnScroll(fn func(ScrollEvent)) CallbackHandle { return s.position.OnScroll(fn) }

// OnScrollEnd registers a scroll:end callback.
func (s *Scroller) OnScrollEnd(fn func(ScrollEndEvent)) CallbackHandle {
	return s.position.OnScrollEnd(fn)
}

// OnResize registers a resize callback.
func (s *Scroller) OnResize(fn func(Metrics)) CallbackHandle { return s.resize.OnResize(fn) }

// OnResizeEnd registers a resize:end callback.
func (s *Scroller) OnResizeEnd(fn func(Metrics)) CallbackHandle { return s.resize.OnResizeEnd(fn) }

// OnCall registers a call-event callback.
func (s *Scroller) OnCall(fn func(CallEvent)) CallbackHandle { return s.triggers.OnCall(fn) }

// SetEventStore forwards every event to store, replacing any previous store.
// A nil store detaches.
func (s *Scroller) SetEventStore(store EventStore) {
	for _, h := range s.storeHandles {
		h.Remove()
	}
	s.storeHandles = nil
	if store == nil {
		return
	}
	s.storeHandles = append(s.storeHandles,
		s.OnScroll(func(e ScrollEvent) { store.EmitEvent(Event{Type: EventScroll, Scroll: e}) }),
		s.OnScrollEnd(func(e ScrollEndEvent) { store.EmitEvent(Event{Type: EventScrollEnd, ScrollEnd: e}) }),
		s.OnResize(func(m Metrics) { store.EmitEvent(Event{Type: EventResize, Metrics: m}) }),
		s.OnResizeEnd(func(m Metrics) { store.EmitEvent(Event{Type: EventResizeEnd, Metrics: m}) }),
		s.OnCall(func(e CallEvent) { store.EmitEvent(Event{Type: EventCall, Call: e}) }),
	)
}

// SetDebugMode enables trace logging of trigger transitions and height
// changes.
func (s *Scroller) SetDebugMode(enabled bool) {
	s.log.debug = enabled
}

// SetLogOutput redirects log lines (default os.Stderr).
func (s *Scroller) SetLogOutput(w io.Writer) {
	s.log.out = w
}

// transformsContent reports whether the content element is pinned and
// translated. Native scrolling already does the job otherwise.
func (s *Scroller) transformsContent() bool {
	return s.position.Smoothing() && !s.host.IsTouch()
}

func (s *Scroller) setStyleProps() {
	if !s.transformsContent() || s.styled {
		return
	}
	s.styled = true
	if root := s.host.Root(); root != nil {
		root.AddClass(s.opts.SmoothClass)
	}
	// Hold the document height before the content leaves the flow.
	s.container.SetStyle("height", formatPx(s.content.ClientHeight()))
	s.content.SetStyle("will-change", "transform")
	s.content.SetStyle("position", "fixed")
	s.content.SetStyle("top", "0")
	s.content.SetStyle("left", "0")
	s.content.SetStyle("width", "100%")
}

func (s *Scroller) removeStyleProps() {
	if !s.styled {
		return
	}
	s.styled = false
	if root := s.host.Root(); root != nil {
		root.RemoveClass(s.opts.SmoothClass)
	}
	for _, prop := range []string{"will-change", "position", "top", "left", "width", "transform"} {
		s.content.SetStyle(prop, "")
	}
	s.container.SetStyle("height", "")
}

// measure reads the content height, sizes the container, re-applies the
// content offset, and pushes the height to the registry.
func (s *Scroller) measure() {
	s.contentHeight = s.content.ClientHeight()
	if s.styled {
		s.container.SetStyle("height", formatPx(s.contentHeight))
	}
	s.setOffset()
	s.triggers.SetContentHeight(s.contentHeight)
	s.log.tracef("content height %.0f", s.contentHeight)
}

func (s *Scroller) setOffset() {
	if !s.styled {
		return
	}
	SetTransform(s.content, Vec2{Y: -s.position.Position().Y})
}

func (s *Scroller) checkContentHeight() {
	if s.content.ClientHeight() != s.contentHeight {
		s.measure()
	}
}

// pollContentHeight runs every frame but reads layout at most once per
// HeightCheck interval.
func (s *Scroller) pollContentHeight() {
	if !s.allowCheck {
		return
	}
	s.allowCheck = false
	s.checkContentHeight()
}

func (s *Scroller) armHeightCheck() {
	s.checkTimer = s.host.AfterFunc(s.opts.HeightCheck, func() {
		s.allowCheck = true
		s.armHeightCheck()
	})
}

// bindScrollTargets attaches click handlers to scroll-to affordances.
func (s *Scroller) bindScrollTargets() {
	a := s.opts.Attributes
	els, err := s.container.QueryAll(attrSelector(a.ScrollTo))
	if err != nil {
		s.log.errorf("scroll targets: %v", err)
		return
	}
	for _, el := range els {
		s.clickRemovers = append(s.clickRemovers, el.OnClick(func() {
			target, offset := scrollTargetOf(el, a)
			_ = s.ScrollTo(target, offset)
		}))
	}
}

// scrollTargetOf reads the declared scroll-to target. A numeric value is an
// absolute offset; anything else is a selector.
func scrollTargetOf(el Element, a Attributes) (any, float64) {
	raw, _ := el.Attr(a.ScrollTo)
	raw = strings.TrimSpace(raw)
	var offset float64
	if v, ok := el.Attr(a.ScrollToOffset); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			offset = f
		}
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f, offset
	}
	return raw, offset
}

func formatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
