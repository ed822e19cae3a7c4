package glide

import "slices"

// ScrollEvent carries a position update. On the native path only the Y delta
// and DirectionY are populated; on the smoothing path both axes are.
type ScrollEvent struct {
	X, Y       float64
	Delta      Vec2
	DirectionX Direction
	DirectionY Direction
	// Smooth reports whether the event came from the frame tick.
	Smooth bool
}

// ScrollEndEvent fires once scrolling has settled. X and Y are the raw
// (non-smoothed) scroll offset.
type ScrollEndEvent struct {
	X, Y float64
}

// CallEvent is dispatched when a trigger with a call name enters or exits view.
type CallEvent struct {
	Name    string
	Element Element
	State   CallState
}

// Event is a single record for any engine event. Only the field matching
// Type is set.
type Event struct {
	Type      EventType
	Scroll    ScrollEvent    // EventScroll
	ScrollEnd ScrollEndEvent // EventScrollEnd
	Metrics   Metrics        // EventResize, EventResizeEnd
	Call      CallEvent      // EventCall
}

// EventStore receives every event a Scroller emits, as one stream. Attach
// one with Scroller.SetEventStore.
type EventStore interface {
	EmitEvent(Event)
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	remove func()
}

// Remove unregisters this callback so it no longer fires. Safe to call more
// than once and on the zero value.
func (h CallbackHandle) Remove() {
	if h.remove == nil {
		return
	}
	h.remove()
}

type handler[T any] struct {
	id uint32
	fn func(T)
}

// listeners is an ordered callback list. Removal replaces the backing slice,
// so a dispatch in progress keeps iterating the list it started with.
type listeners[T any] struct {
	entries []handler[T]
	nextID  uint32
}

func (l *listeners[T]) add(fn func(T)) CallbackHandle {
	l.nextID++
	id := l.nextID
	l.entries = append(l.entries, handler[T]{id: id, fn: fn})
	return CallbackHandle{remove: func() { l.removeID(id) }}
}

func (l *listeners[T]) removeID(id uint32) {
	i := slices.IndexFunc(l.entries, func(h handler[T]) bool { return h.id == id })
	if i < 0 {
		return
	}
	l.entries = slices.Delete(slices.Clone(l.entries), i, i+1)
}

func (l *listeners[T]) emit(v T) {
	for _, h := range l.entries {
		h.fn(v)
	}
}

func (l *listeners[T]) len() int {
	return len(l.entries)
}
