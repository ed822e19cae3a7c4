package glide

import (
	"slices"
	"time"
)

// fakeElement is a minimal in-memory Element for unit tests that do not need
// layout.
type fakeElement struct {
	attrs   map[string]string
	classes []string
	style   map[string]string
	rect    Rect
	clicks  []func()
}

func newFakeElement(attrs ...string) *fakeElement {
	el := &fakeElement{attrs: make(map[string]string), style: make(map[string]string)}
	for i := 0; i+1 < len(attrs); i += 2 {
		el.attrs[attrs[i]] = attrs[i+1]
	}
	return el
}

func (e *fakeElement) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

func (e *fakeElement) BoundingClientRect() Rect { return e.rect }
func (e *fakeElement) OffsetHeight() float64    { return e.rect.Height }
func (e *fakeElement) ClientHeight() float64    { return e.rect.Height }

func (e *fakeElement) AddClass(name string) {
	if !slices.Contains(e.classes, name) {
		e.classes = append(e.classes, name)
	}
}

func (e *fakeElement) RemoveClass(name string) {
	if i := slices.Index(e.classes, name); i >= 0 {
		e.classes = slices.Delete(e.classes, i, i+1)
	}
}

func (e *fakeElement) HasClass(name string) bool { return slices.Contains(e.classes, name) }

func (e *fakeElement) SetStyle(prop, value string) {
	if value == "" {
		delete(e.style, prop)
		return
	}
	e.style[prop] = value
}

func (e *fakeElement) QueryAll(string) ([]Element, error) { return nil, nil }

func (e *fakeElement) OnClick(fn func()) func() {
	e.clicks = append(e.clicks, fn)
	return func() {}
}

// transformElement adds TransformReader to fakeElement.
type transformElement struct {
	*fakeElement
}

func (e *transformElement) ComputedTransform() string {
	if v, ok := e.style["transform"]; ok {
		return v
	}
	return "none"
}

// fakeScheduler is a manual Scheduler: timers fire only from advance.
type fakeScheduler struct {
	now    time.Duration
	timers []*fakeTimer
	frames []func()
}

type fakeTimer struct {
	due     time.Duration
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() { t.stopped = true }

func (s *fakeScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	t := &fakeTimer{due: s.now + d, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) OnFrame(fn func()) func() {
	s.frames = append(s.frames, fn)
	return func() {}
}

func (s *fakeScheduler) advance(d time.Duration) {
	s.now += d
	for _, t := range slices.Clone(s.timers) {
		if !t.stopped && t.due <= s.now {
			t.stopped = true
			t.fn()
		}
	}
}

func (s *fakeScheduler) pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}
