package glide

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"time"
)

// ErrInvalidScrollTarget is returned by ScrollTo when the target cannot be
// resolved to a page coordinate.
var ErrInvalidScrollTarget = errors.New("scroll target is not valid, it has to be either a selector, an absolute position or an element")

// TrackerOptions configures a PositionTracker.
type TrackerOptions struct {
	// Smooth enables frame-tick smoothing. Ignored on touch devices.
	Smooth bool
	// SmoothFactor is the per-frame lerp factor in (0, 1].
	SmoothFactor float64
	// Settle is the quiet period before scroll:end fires.
	Settle time.Duration
}

// PositionTracker owns the raw and smoothed scroll positions. It is the only
// writer of either; everything else reads through Position.
type PositionTracker struct {
	host Host
	log  *logger
	opts TrackerOptions

	raw          Vec2
	delta        float64
	scrollHeight float64

	smoothing  bool
	smooth     Vec2
	prevSmooth Vec2

	settle *settleTimer

	scroll    listeners[ScrollEvent]
	scrollEnd listeners[ScrollEndEvent]

	removeNative func()
	removeFrame  func()
	paused       bool
}

// NewPositionTracker creates a tracker bound to host. Call Start to begin
// listening.
func NewPositionTracker(host Host) *PositionTracker {
	return newPositionTracker(host, newLogger())
}

func newPositionTracker(host Host, log *logger) *PositionTracker {
	opts := TrackerOptions{SmoothFactor: DefaultSmoothFactor, Settle: DefaultScrollSettle}
	return &PositionTracker{
		host:   host,
		log:    log,
		opts:   opts,
		settle: newSettleTimer(host, opts.Settle),
	}
}

// Start records opts, performs the first position read, and attaches the
// native scroll listener. Smoothing is enabled when requested and the device
// is not touch-capable.
func (p *PositionTracker) Start(opts TrackerOptions) {
	if opts.SmoothFactor <= 0 || opts.SmoothFactor > 1 {
		opts.SmoothFactor = DefaultSmoothFactor
	}
	if opts.Settle <= 0 {
		opts.Settle = DefaultScrollSettle
	}
	p.opts = opts
	p.settle.stop()
	p.settle = newSettleTimer(p.host, opts.Settle)

	p.paused = false
	p.read()
	p.delta = 0
	if opts.Smooth {
		p.EnableSmoothing()
	}
	if p.removeNative == nil {
		p.removeNative = p.host.On(HostScroll, p.handleScroll)
	}
}

// Stop detaches the native listener and the frame tick and cancels a pending
// scroll:end. Registered callbacks are kept.
func (p *PositionTracker) Stop() {
	if p.removeNative != nil {
		p.removeNative()
		p.removeNative = nil
	}
	p.DisableSmoothing()
	p.settle.stop()
}

// Pause detaches the native listener and the frame tick and cancels a
// pending scroll:end. The position and the smoothing setting are kept until
// Resume.
func (p *PositionTracker) Pause() {
	if p.paused {
		return
	}
	p.paused = true
	if p.removeNative != nil {
		p.removeNative()
		p.removeNative = nil
	}
	if p.removeFrame != nil {
		p.removeFrame()
		p.removeFrame = nil
	}
	p.settle.stop()
}

// Resume re-reads the native position and reattaches what Pause removed.
// Smoothing restarts from the current position.
func (p *PositionTracker) Resume() {
	if !p.paused {
		return
	}
	p.paused = false
	p.read()
	p.delta = 0
	if p.smoothing {
		p.smooth = p.raw
		p.prevSmooth = p.raw
		p.removeFrame = p.host.OnFrame(p.tick)
	}
	if p.removeNative == nil {
		p.removeNative = p.host.On(HostScroll, p.handleScroll)
	}
}

// EnableSmoothing starts frame-tick smoothing from the current raw position.
// It is a no-op on touch devices, where native momentum scrolling is kept.
func (p *PositionTracker) EnableSmoothing() {
	if p.host.IsTouch() || p.smoothing {
		return
	}
	p.smoothing = true
	p.smooth = p.raw
	p.prevSmooth = p.raw
	if !p.paused {
		p.removeFrame = p.host.OnFrame(p.tick)
	}
}

// DisableSmoothing removes the frame tick. Raw position tracking continues.
func (p *PositionTracker) DisableSmoothing() {
	p.smoothing = false
	if p.removeFrame != nil {
		p.removeFrame()
		p.removeFrame = nil
	}
}

// Smoothing reports whether frame-tick smoothing is active.
func (p *PositionTracker) Smoothing() bool {
	return p.smoothing
}

// SetSmoothFactor changes the lerp factor. Values outside (0, 1] are ignored.
func (p *PositionTracker) SetSmoothFactor(f float64) {
	if f <= 0 || f > 1 {
		return
	}
	p.opts.SmoothFactor = f
}

// SmoothFactor returns the current lerp factor.
func (p *PositionTracker) SmoothFactor() float64 {
	return p.opts.SmoothFactor
}

// Position returns the smoothed position while smoothing is active, else the
// raw native position.
func (p *PositionTracker) Position() Vec2 {
	if p.smoothing {
		return p.smooth
	}
	return p.raw
}

// RawPosition returns the last native scroll offset.
func (p *PositionTracker) RawPosition() Vec2 {
	return p.raw
}

// Delta returns the last vertical delta of the raw position
// (previous minus current).
func (p *PositionTracker) Delta() float64 {
	return p.delta
}

// ScrollHeight returns the document scroll height at the last read.
func (p *PositionTracker) ScrollHeight() float64 {
	return p.scrollHeight
}

// OnScroll registers a callback for position updates.
func (p *PositionTracker) OnScroll(fn func(ScrollEvent)) CallbackHandle {
	return p.scroll.add(fn)
}

// OnScrollEnd registers a callback for settled scrolling.
func (p *PositionTracker) OnScrollEnd(fn func(ScrollEndEvent)) CallbackHandle {
	return p.scrollEnd.add(fn)
}

// ResolveTarget resolves a scroll target to an absolute y coordinate.
// target may be a CSS selector string, an absolute offset (any integer or
// float type), or an Element. Numeric targets are page coordinates and
// ignore the current position; only offset is added.
func (p *PositionTracker) ResolveTarget(target any, offset float64) (float64, error) {
	switch t := target.(type) {
	case string:
		el, err := p.host.Query(t)
		if err != nil {
			return 0, fmt.Errorf("%w: selector %q: %v", ErrInvalidScrollTarget, t, err)
		}
		if el == nil {
			return 0, fmt.Errorf("%w: no element matches %q", ErrInvalidScrollTarget, t)
		}
		return p.elementTop(el) + offset, nil
	case nil:
		return 0, fmt.Errorf("%w: nil target", ErrInvalidScrollTarget)
	case Element:
		if isNil(t) {
			return 0, fmt.Errorf("%w: nil element", ErrInvalidScrollTarget)
		}
		return p.elementTop(t) + offset, nil
	case float64:
		return t + offset, nil
	case float32:
		return float64(t) + offset, nil
	case int:
		return float64(t) + offset, nil
	case int64:
		return float64(t) + offset, nil
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", ErrInvalidScrollTarget, target)
	}
}

// ScrollTo requests a smooth native scroll to target plus offset. An invalid
// target is logged and returned; no scroll happens.
func (p *PositionTracker) ScrollTo(target any, offset float64) error {
	y, err := p.ResolveTarget(target, offset)
	if err != nil {
		p.log.errorf("scrollTo: %v", err)
		return err
	}
	p.host.ScrollTo(y, true)
	return nil
}

// ScrollToTop smooth-scrolls to offset from the top of the page.
func (p *PositionTracker) ScrollToTop(offset float64) {
	p.host.ScrollTo(offset, true)
}

// ScrollToBottom smooth-scrolls to the document scroll height plus offset.
func (p *PositionTracker) ScrollToBottom(offset float64) {
	p.scrollHeight = p.host.ScrollHeight()
	p.host.ScrollTo(p.scrollHeight+offset, true)
}

// Enable adds class to the root element.
func (p *PositionTracker) Enable(class string) {
	root := p.host.Root()
	if root == nil || root.HasClass(class) {
		return
	}
	root.AddClass(class)
}

// Disable removes class from the root element.
func (p *PositionTracker) Disable(class string) {
	if root := p.host.Root(); root != nil {
		root.RemoveClass(class)
	}
}

// isNil reports a nil pointer stored in an interface.
func isNil(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func (p *PositionTracker) elementTop(el Element) float64 {
	return el.BoundingClientRect().Top() + p.Position().Y
}

// read refreshes the raw position and the vertical delta.
func (p *PositionTracker) read() {
	p.scrollHeight = p.host.ScrollHeight()
	cur := p.host.ScrollOffset()
	p.delta = p.raw.Y - cur.Y
	p.raw = cur
}

func (p *PositionTracker) handleScroll() {
	p.read()
	if p.smoothing {
		// The frame tick is the only emitter while smoothing.
		return
	}
	p.scroll.emit(ScrollEvent{
		X:          p.raw.X,
		Y:          p.raw.Y,
		Delta:      Vec2{Y: p.delta},
		DirectionY: verticalDirection(p.delta),
	})
	p.settle.reset(p.emitScrollEnd)
}

// tick advances the smoothed position one frame toward the raw position.
func (p *PositionTracker) tick() {
	if !p.smoothing {
		return
	}
	f := p.opts.SmoothFactor
	p.smooth.X = smoothStep(p.smooth.X, p.raw.X, f)
	p.smooth.Y = smoothStep(p.smooth.Y, p.raw.Y, f)

	d := Vec2{X: p.prevSmooth.X - p.smooth.X, Y: p.prevSmooth.Y - p.smooth.Y}
	p.prevSmooth = p.smooth
	if d.X == 0 && d.Y == 0 {
		return
	}
	p.scroll.emit(ScrollEvent{
		X:          p.smooth.X,
		Y:          p.smooth.Y,
		Delta:      d,
		DirectionX: horizontalDirection(d.X),
		DirectionY: verticalDirection(d.Y),
		Smooth:     true,
	})
	p.settle.reset(p.emitScrollEnd)
}

func (p *PositionTracker) emitScrollEnd() {
	p.scrollEnd.emit(ScrollEndEvent{X: p.raw.X, Y: p.raw.Y})
}

// smoothStep moves cur toward target by factor f, rounded to two decimals.
// When the rounded step no longer moves, it lands exactly on target so the
// sequence always terminates.
func smoothStep(cur, target, f float64) float64 {
	if cur == target {
		return cur
	}
	next := round2(Lerp(cur, target, f))
	if next == cur || math.Abs(target-next) < 0.005 {
		return target
	}
	return next
}
