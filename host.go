package glide

import "time"

// HostEvent names a native event a Window can deliver.
type HostEvent string

const (
	HostScroll           HostEvent = "scroll"
	HostResize           HostEvent = "resize"
	HostReadyStateChange HostEvent = "readystatechange"
)

// Element is a node of the host document. Rects are viewport-relative and
// reflect any transform applied to the element or its ancestors.
type Element interface {
	// Attr returns the attribute value and whether the attribute is present.
	Attr(name string) (string, bool)
	BoundingClientRect() Rect
	OffsetHeight() float64
	ClientHeight() float64

	AddClass(name string)
	RemoveClass(name string)
	HasClass(name string) bool

	// SetStyle writes an inline style property. An empty value removes it.
	SetStyle(prop, value string)

	// QueryAll returns descendants matching selector in document order.
	QueryAll(selector string) ([]Element, error)

	// OnClick registers a click listener and returns a func that removes it.
	OnClick(fn func()) (remove func())
}

// TransformReader is implemented by elements that can report their computed
// transform (e.g. "matrix(1, 0, 0, 1, 0, 42)").
type TransformReader interface {
	ComputedTransform() string
}

// Window exposes the viewport, the native scroll position, and native events.
type Window interface {
	// ViewportCandidates returns every source reporting the viewport size
	// (innerWidth/innerHeight, documentElement.clientWidth/Height, ...).
	ViewportCandidates() []Vec2
	// DocumentCandidates returns every source reporting the document size
	// (body and root scroll/offset/client sizes).
	DocumentCandidates() []Vec2

	ScrollOffset() Vec2
	ScrollHeight() float64
	// ScrollTo requests a native scroll to the absolute y coordinate.
	ScrollTo(y float64, smooth bool)

	IsTouch() bool

	// On registers a native event listener and returns a func that removes it.
	On(event HostEvent, fn func()) (remove func())
}

// Document resolves selectors against the whole page.
type Document interface {
	Root() Element
	// Query returns the first element matching selector. A malformed selector
	// is an error; no match returns (nil, nil).
	Query(selector string) (Element, error)
}

// Timer is a pending callback created by Scheduler.AfterFunc.
type Timer interface {
	Stop()
}

// Scheduler runs callbacks on the host's event loop. Callbacks never run
// concurrently with each other or with native event handlers.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
	// OnFrame subscribes fn to the animation-frame tick.
	OnFrame(fn func()) (remove func())
}

// ResizeObserver is implemented by hosts that can report size changes of a
// single element.
type ResizeObserver interface {
	ObserveResize(el Element, fn func()) (remove func())
}

// Host is the page environment the engine runs against.
type Host interface {
	Window
	Document
	Scheduler
}
