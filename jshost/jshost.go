//go:build js && wasm

// Package jshost implements glide.Host on top of the browser DOM via
// syscall/js, for programs built with GOOS=js GOARCH=wasm.
//
//	s, err := glide.New(jshost.New(), glide.Options{Smooth: true})
//
// All callbacks run on the browser's event loop, which matches glide's
// single-threaded model.
package jshost

import (
	"fmt"
	"strconv"
	"time"

	"syscall/js"

	"github.com/phanxgames/glide"
)

const idProp = "__glideID"

// Host wraps window and document.
type Host struct {
	win js.Value
	doc js.Value

	elements map[int]*Element
	nextID   int

	frames     []frameSub
	nextFrame  int
	frameFunc  js.Func
	frameReq   js.Value
	frameArmed bool
}

type frameSub struct {
	id int
	fn func()
}

// observingHost adds glide.ResizeObserver when the browser has one.
type observingHost struct {
	*Host
}

// New returns a host for the current page. The result implements
// glide.ResizeObserver when the browser supports ResizeObserver.
func New() glide.Host {
	h := &Host{
		win:      js.Global(),
		doc:      js.Global().Get("document"),
		elements: make(map[int]*Element),
	}
	h.frameFunc = js.FuncOf(func(js.Value, []js.Value) any {
		h.runFrame()
		return nil
	})
	if ro := h.win.Get("ResizeObserver"); ro.Truthy() {
		return observingHost{h}
	}
	return h
}

// wrap returns the canonical wrapper for node so identity comparisons hold
// across queries.
func (h *Host) wrap(node js.Value) *Element {
	if node.IsNull() || node.IsUndefined() {
		return nil
	}
	if id := node.Get(idProp); id.Type() == js.TypeNumber {
		if el, ok := h.elements[id.Int()]; ok {
			return el
		}
	}
	h.nextID++
	node.Set(idProp, h.nextID)
	el := &Element{host: h, v: node}
	h.elements[h.nextID] = el
	return el
}

// call invokes a DOM method and turns a thrown exception into an error.
func call(v js.Value, method string, args ...any) (res js.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			if jsErr, ok := r.(js.Error); ok {
				err = fmt.Errorf("%s: %w", method, jsErr)
				return
			}
			err = fmt.Errorf("%s: %v", method, r)
		}
	}()
	return v.Call(method, args...), nil
}

// --- glide.Document ---

// Root returns document.documentElement.
func (h *Host) Root() glide.Element {
	return h.wrap(h.doc.Get("documentElement"))
}

// Query returns the first match for selector, or (nil, nil).
func (h *Host) Query(selector string) (glide.Element, error) {
	res, err := call(h.doc, "querySelector", selector)
	if err != nil {
		return nil, err
	}
	el := h.wrap(res)
	if el == nil {
		return nil, nil
	}
	return el, nil
}

// --- glide.Window ---

// ViewportCandidates reports innerWidth/innerHeight and the root client size.
func (h *Host) ViewportCandidates() []glide.Vec2 {
	root := h.doc.Get("documentElement")
	return []glide.Vec2{
		{X: h.win.Get("innerWidth").Float(), Y: h.win.Get("innerHeight").Float()},
		{X: root.Get("clientWidth").Float(), Y: root.Get("clientHeight").Float()},
	}
}

// DocumentCandidates reports the body and root scroll sizes.
func (h *Host) DocumentCandidates() []glide.Vec2 {
	out := []glide.Vec2{}
	if body := h.doc.Get("body"); body.Truthy() {
		out = append(out, glide.Vec2{X: body.Get("scrollWidth").Float(), Y: body.Get("scrollHeight").Float()})
	}
	root := h.doc.Get("documentElement")
	return append(out, glide.Vec2{X: root.Get("scrollWidth").Float(), Y: root.Get("scrollHeight").Float()})
}

// ScrollOffset returns window.pageXOffset/pageYOffset.
func (h *Host) ScrollOffset() glide.Vec2 {
	return glide.Vec2{X: h.win.Get("pageXOffset").Float(), Y: h.win.Get("pageYOffset").Float()}
}

// ScrollHeight returns the document scroll height.
func (h *Host) ScrollHeight() float64 {
	return h.doc.Get("documentElement").Get("scrollHeight").Float()
}

// ScrollTo calls window.scrollTo with the requested behavior.
func (h *Host) ScrollTo(y float64, smooth bool) {
	behavior := "auto"
	if smooth {
		behavior = "smooth"
	}
	h.win.Call("scrollTo", map[string]any{"top": y, "behavior": behavior})
}

// IsTouch reports a touch-capable device.
func (h *Host) IsTouch() bool {
	if h.win.Get("ontouchstart").Type() != js.TypeUndefined {
		return true
	}
	nav := h.win.Get("navigator")
	return nav.Truthy() && nav.Get("maxTouchPoints").Type() == js.TypeNumber && nav.Get("maxTouchPoints").Int() > 0
}

// On registers a native listener.
func (h *Host) On(event glide.HostEvent, fn func()) func() {
	target, name := h.win, ""
	switch event {
	case glide.HostScroll:
		name = "scroll"
	case glide.HostResize:
		name = "resize"
	case glide.HostReadyStateChange:
		target, name = h.doc, "readystatechange"
	default:
		return func() {}
	}
	return listen(target, name, fn)
}

func listen(target js.Value, name string, fn func()) func() {
	cb := js.FuncOf(func(js.Value, []js.Value) any {
		fn()
		return nil
	})
	target.Call("addEventListener", name, cb)
	var removed bool
	return func() {
		if removed {
			return
		}
		removed = true
		target.Call("removeEventListener", name, cb)
		cb.Release()
	}
}

// --- glide.Scheduler ---

type jsTimer struct {
	win     js.Value
	id      js.Value
	cb      js.Func
	stopped bool
}

func (t *jsTimer) Stop() {
	if t.stopped {
		return
	}
	t.stopped = true
	t.win.Call("clearTimeout", t.id)
	t.cb.Release()
}

// AfterFunc schedules fn with setTimeout.
func (h *Host) AfterFunc(d time.Duration, fn func()) glide.Timer {
	t := &jsTimer{win: h.win}
	t.cb = js.FuncOf(func(js.Value, []js.Value) any {
		if t.stopped {
			return nil
		}
		t.stopped = true
		t.cb.Release()
		fn()
		return nil
	})
	t.id = h.win.Call("setTimeout", t.cb, d.Milliseconds())
	return t
}

// OnFrame subscribes fn to requestAnimationFrame. One rAF loop serves every
// subscriber and stops when the last one leaves.
func (h *Host) OnFrame(fn func()) func() {
	h.nextFrame++
	id := h.nextFrame
	h.frames = append(h.frames, frameSub{id: id, fn: fn})
	h.armFrame()
	return func() {
		for i, s := range h.frames {
			if s.id == id {
				next := make([]frameSub, 0, len(h.frames)-1)
				next = append(next, h.frames[:i]...)
				h.frames = append(next, h.frames[i+1:]...)
				break
			}
		}
		if len(h.frames) == 0 && h.frameArmed {
			h.win.Call("cancelAnimationFrame", h.frameReq)
			h.frameArmed = false
		}
	}
}

func (h *Host) armFrame() {
	if h.frameArmed || len(h.frames) == 0 {
		return
	}
	h.frameArmed = true
	h.frameReq = h.win.Call("requestAnimationFrame", h.frameFunc)
}

func (h *Host) runFrame() {
	h.frameArmed = false
	for _, s := range h.frames {
		s.fn()
	}
	h.armFrame()
}

// --- glide.ResizeObserver ---

// ObserveResize attaches a ResizeObserver to el.
func (h observingHost) ObserveResize(el glide.Element, fn func()) func() {
	e, ok := el.(*Element)
	if !ok {
		return func() {}
	}
	cb := js.FuncOf(func(js.Value, []js.Value) any {
		fn()
		return nil
	})
	obs := h.win.Get("ResizeObserver").New(cb)
	obs.Call("observe", e.v)
	var removed bool
	return func() {
		if removed {
			return
		}
		removed = true
		obs.Call("disconnect")
		cb.Release()
	}
}

// Element wraps a DOM element. It implements glide.Element and
// glide.TransformReader.
type Element struct {
	host *Host
	v    js.Value
}

// Value returns the underlying DOM node.
func (e *Element) Value() js.Value { return e.v }

func (e *Element) Attr(name string) (string, bool) {
	if !e.v.Call("hasAttribute", name).Bool() {
		return "", false
	}
	return e.v.Call("getAttribute", name).String(), true
}

func (e *Element) BoundingClientRect() glide.Rect {
	r := e.v.Call("getBoundingClientRect")
	return glide.Rect{
		X:      r.Get("left").Float(),
		Y:      r.Get("top").Float(),
		Width:  r.Get("width").Float(),
		Height: r.Get("height").Float(),
	}
}

func (e *Element) OffsetHeight() float64 { return e.v.Get("offsetHeight").Float() }
func (e *Element) ClientHeight() float64 { return e.v.Get("clientHeight").Float() }

func (e *Element) AddClass(name string)      { e.v.Get("classList").Call("add", name) }
func (e *Element) RemoveClass(name string)   { e.v.Get("classList").Call("remove", name) }
func (e *Element) HasClass(name string) bool { return e.v.Get("classList").Call("contains", name).Bool() }

// SetStyle sets an inline property; an empty value removes it.
func (e *Element) SetStyle(prop, value string) {
	style := e.v.Get("style")
	if value == "" {
		style.Call("removeProperty", prop)
		return
	}
	style.Call("setProperty", prop, value)
}

// QueryAll runs querySelectorAll on the element.
func (e *Element) QueryAll(selector string) ([]glide.Element, error) {
	list, err := call(e.v, "querySelectorAll", selector)
	if err != nil {
		return nil, err
	}
	n := list.Length()
	out := make([]glide.Element, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, e.host.wrap(list.Index(i)))
	}
	return out, nil
}

// OnClick registers a click listener.
func (e *Element) OnClick(fn func()) func() {
	return listen(e.v, "click", fn)
}

// ComputedTransform returns the computed transform, or "none" when the
// browser lacks getComputedStyle.
func (e *Element) ComputedTransform() string {
	gcs := e.host.win.Get("getComputedStyle")
	if gcs.Type() != js.TypeFunction {
		return "none"
	}
	style := e.host.win.Call("getComputedStyle", e.v)
	if v := style.Call("getPropertyValue", "transform").String(); v != "" {
		return v
	}
	return "none"
}

// String identifies the element for logging.
func (e *Element) String() string {
	id := e.v.Get("id").String()
	if id == "" {
		return e.v.Get("tagName").String() + "#" + strconv.Itoa(e.v.Get(idProp).Int())
	}
	return "#" + id
}
