package glide

import "time"

// DefaultResizeSettle is the quiet period after the last native resize before
// resize:end fires.
const DefaultResizeSettle = 300 * time.Millisecond

// ResizeTracker observes viewport and document size. OnResize callbacks run
// synchronously on every native resize; OnResizeEnd callbacks run once
// resizing has been idle for the settle period.
type ResizeTracker struct {
	host    Host
	metrics Metrics
	settle  *settleTimer

	resize    listeners[Metrics]
	resizeEnd listeners[Metrics]

	removeNative func()
}

// NewResizeTracker creates a tracker bound to host. It reads the initial
// metrics immediately but does not listen until Start.
func NewResizeTracker(host Host, settle time.Duration) *ResizeTracker {
	if settle <= 0 {
		settle = DefaultResizeSettle
	}
	r := &ResizeTracker{
		host:   host,
		settle: newSettleTimer(host, settle),
	}
	r.measure()
	return r
}

// Start attaches the native resize listener. Calling Start twice is a no-op.
func (r *ResizeTracker) Start() {
	if r.removeNative != nil {
		return
	}
	r.measure()
	r.removeNative = r.host.On(HostResize, r.handleResize)
}

// Stop detaches the native listener and cancels a pending resize:end.
// Registered callbacks are kept so Start can resume.
func (r *ResizeTracker) Stop() {
	if r.removeNative != nil {
		r.removeNative()
		r.removeNative = nil
	}
	r.settle.stop()
}

// Metrics returns the most recent snapshot.
func (r *ResizeTracker) Metrics() Metrics {
	return r.metrics
}

// OnResize registers a callback for every native resize.
func (r *ResizeTracker) OnResize(fn func(Metrics)) CallbackHandle {
	return r.resize.add(fn)
}

// OnResizeEnd registers a callback for settled resizes.
func (r *ResizeTracker) OnResizeEnd(fn func(Metrics)) CallbackHandle {
	return r.resizeEnd.add(fn)
}

func (r *ResizeTracker) handleResize() {
	r.measure()
	r.resize.emit(r.metrics)
	r.settle.reset(r.handleResizeEnd)
}

func (r *ResizeTracker) handleResizeEnd() {
	r.measure()
	r.resizeEnd.emit(r.metrics)
}

func (r *ResizeTracker) measure() {
	vp := smallestSize(r.host.ViewportCandidates())
	doc := largestSize(r.host.DocumentCandidates())
	r.metrics = Metrics{
		ViewportWidth:  vp.X,
		ViewportHeight: vp.Y,
		DocumentWidth:  doc.X,
		DocumentHeight: doc.Y,
	}
}

// smallestSize picks the smallest positive width and height across sources.
// Zero or negative readings are treated as unreported.
func smallestSize(sources []Vec2) Vec2 {
	var out Vec2
	for _, s := range sources {
		if s.X > 0 && (out.X == 0 || s.X < out.X) {
			out.X = s.X
		}
		if s.Y > 0 && (out.Y == 0 || s.Y < out.Y) {
			out.Y = s.Y
		}
	}
	return out
}

// largestSize picks the largest width and height across sources.
func largestSize(sources []Vec2) Vec2 {
	var out Vec2
	for _, s := range sources {
		out.X = max(out.X, s.X)
		out.Y = max(out.Y, s.Y)
	}
	return out
}
