package pagesim

import (
	"slices"
	"time"

	"github.com/phanxgames/glide"
)

// hooks is an ordered list of callbacks with removal by handle.
type hooks struct {
	entries []hook
	nextID  uint32
}

type hook struct {
	id uint32
	fn func()
}

func (h *hooks) add(fn func()) func() {
	h.nextID++
	id := h.nextID
	h.entries = append(h.entries, hook{id: id, fn: fn})
	return func() {
		i := slices.IndexFunc(h.entries, func(e hook) bool { return e.id == id })
		if i >= 0 {
			h.entries = slices.Delete(slices.Clone(h.entries), i, i+1)
		}
	}
}

// run calls every callback registered when run started.
func (h *hooks) run() {
	for _, e := range h.entries {
		e.fn()
	}
}

func (h *hooks) len() int {
	return len(h.entries)
}

// timer is a pending AfterFunc callback.
type timer struct {
	clock   *clock
	due     time.Duration
	seq     uint64
	fn      func()
	stopped bool
}

// Stop cancels the timer. Stopping a fired timer is a no-op.
func (t *timer) Stop() {
	if t.stopped {
		return
	}
	t.stopped = true
	t.clock.remove(t)
}

// clock is the page's manual time source: now only moves in Advance.
type clock struct {
	now       time.Duration
	nextFrame time.Duration
	seq       uint64
	timers    []*timer
}

func (c *clock) add(d time.Duration, fn func()) *timer {
	c.seq++
	t := &timer{clock: c, due: c.now + max(d, 0), seq: c.seq, fn: fn}
	i, _ := slices.BinarySearchFunc(c.timers, t, compareTimers)
	c.timers = slices.Insert(c.timers, i, t)
	return t
}

func (c *clock) remove(t *timer) {
	if i := slices.Index(c.timers, t); i >= 0 {
		c.timers = slices.Delete(c.timers, i, i+1)
	}
}

func compareTimers(a, b *timer) int {
	if a.due != b.due {
		if a.due < b.due {
			return -1
		}
		return 1
	}
	switch {
	case a.seq < b.seq:
		return -1
	case a.seq > b.seq:
		return 1
	}
	return 0
}

// --- glide.Scheduler ---

// AfterFunc runs fn once the page clock has advanced by d.
func (p *Page) AfterFunc(d time.Duration, fn func()) glide.Timer {
	return p.clock.add(d, fn)
}

// OnFrame subscribes fn to the animation-frame tick.
func (p *Page) OnFrame(fn func()) func() {
	return p.frames.add(fn)
}

// Now returns the time elapsed on the page clock.
func (p *Page) Now() time.Duration {
	return p.clock.now
}

// Advance moves the clock forward by d, running timers and animation frames
// in time order. Timers due at the same instant as a frame run first.
func (p *Page) Advance(d time.Duration) {
	end := p.clock.now + d
	for {
		if p.clock.nextFrame <= p.clock.now {
			p.clock.nextFrame = p.clock.now + p.cfg.FrameInterval
		}
		next := p.clock.nextFrame
		var t *timer
		if len(p.clock.timers) > 0 && p.clock.timers[0].due <= next {
			t = p.clock.timers[0]
			next = t.due
		}
		if next > end {
			break
		}
		p.clock.now = next
		if t != nil {
			p.clock.timers = p.clock.timers[1:]
			t.stopped = true
			t.fn()
			continue
		}
		p.frame()
	}
	p.clock.now = end
}

// Frames advances the clock by n frame intervals.
func (p *Page) Frames(n int) {
	p.Advance(time.Duration(n) * p.cfg.FrameInterval)
}

// frame runs one animation frame: smooth native scroll, then frame
// subscribers, then resize observers.
func (p *Page) frame() {
	p.stepScroll(float32(p.cfg.FrameInterval.Seconds()))
	p.frames.run()
	p.notifyObservers()
}

// FrameSubscribers returns the number of active frame subscriptions.
func (p *Page) FrameSubscribers() int {
	return p.frames.len()
}

// ListenerCount returns the number of native listeners for event.
func (p *Page) ListenerCount(event glide.HostEvent) int {
	if h, ok := p.native[event]; ok {
		return h.len()
	}
	return 0
}

// PendingTimers returns the number of timers that have not fired.
func (p *Page) PendingTimers() int {
	return len(p.clock.timers)
}
