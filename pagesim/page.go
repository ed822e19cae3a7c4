// Package pagesim is a headless page for the glide engine. It parses an HTML
// document, lays block elements out top to bottom from their inline heights,
// and simulates the browser pieces glide needs: native scrolling (including
// animated smooth scrolling), resize and readystatechange events, timers and
// the animation-frame tick, all driven by a manual clock.
//
// Layout is deliberately small: every element spans the viewport width, its
// height is its inline height (or min-height) or the sum of its children,
// position: fixed takes it out of flow, and inline transforms translate it
// and its descendants.
package pagesim

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/andybalholm/cascadia"
	"github.com/phanxgames/glide"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"golang.org/x/net/html"
)

// Config sets the simulated window.
type Config struct {
	Width, Height float64
	// ScrollbarWidth narrows the root client width below the inner width.
	ScrollbarWidth float64
	// Touch makes the page report a touch-capable device.
	Touch bool
	// FrameInterval is the animation-frame period (default 16ms).
	FrameInterval time.Duration
	// ScrollDuration is the length of a smooth native scroll in seconds
	// (default 0.5).
	ScrollDuration float32
	// ScrollEase shapes smooth native scrolls (default ease.OutCubic).
	ScrollEase ease.TweenFunc
}

func (c Config) withDefaults() Config {
	if c.Width <= 0 {
		c.Width = 1280
	}
	if c.Height <= 0 {
		c.Height = 800
	}
	if c.FrameInterval <= 0 {
		c.FrameInterval = 16 * time.Millisecond
	}
	if c.ScrollDuration <= 0 {
		c.ScrollDuration = 0.5
	}
	if c.ScrollEase == nil {
		c.ScrollEase = ease.OutCubic
	}
	return c
}

// Page is a parsed document plus its window. It implements glide.Host and
// glide.ResizeObserver. Nothing here is safe for concurrent use.
type Page struct {
	cfg  Config
	doc  *html.Node
	root *Element
	body *Element

	elements  map[*html.Node]*Element
	selectors map[string]cascadia.Sel

	width, height float64
	scroll        glide.Vec2
	docHeight     float64
	dirty         bool
	readyState    string

	clock      clock
	native     map[glide.HostEvent]*hooks
	frames     hooks
	observers  []*observer
	scrollAnim *scrollAnim
}

// scrollAnim is an in-flight smooth native scroll.
type scrollAnim struct {
	tween  *gween.Tween
	target float64
}

// Parse reads an HTML document and builds a page for it.
func Parse(r io.Reader, cfg Config) (*Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	cfg = cfg.withDefaults()
	p := &Page{
		cfg:        cfg,
		doc:        doc,
		elements:   make(map[*html.Node]*Element),
		selectors:  make(map[string]cascadia.Sel),
		width:      cfg.Width,
		height:     cfg.Height,
		dirty:      true,
		readyState: "loading",
		native:     make(map[glide.HostEvent]*hooks),
	}
	p.root = p.element(findElement(doc, "html"))
	p.body = p.element(findElement(doc, "body"))
	if p.root == nil || p.body == nil {
		return nil, fmt.Errorf("parse page: document has no html/body element")
	}
	return p, nil
}

// ParseString is Parse for an in-memory document.
func ParseString(s string, cfg Config) (*Page, error) {
	return Parse(strings.NewReader(s), cfg)
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// element returns the wrapper for n, creating it on first use so identity
// comparisons between wrappers hold.
func (p *Page) element(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	if el, ok := p.elements[n]; ok {
		return el
	}
	el := newElement(p, n)
	p.elements[n] = el
	return el
}

func (p *Page) compile(selector string) (cascadia.Sel, error) {
	if sel, ok := p.selectors[selector]; ok {
		return sel, nil
	}
	sel, err := cascadia.Parse(selector)
	if err != nil {
		return nil, fmt.Errorf("selector %q: %w", selector, err)
	}
	p.selectors[selector] = sel
	return sel, nil
}

// --- glide.Document ---

// Root returns the html element.
func (p *Page) Root() glide.Element {
	return p.root
}

// Body returns the body element.
func (p *Page) Body() *Element {
	return p.body
}

// Query returns the first element matching selector, or (nil, nil).
func (p *Page) Query(selector string) (glide.Element, error) {
	el, err := p.QueryElement(selector)
	if err != nil || el == nil {
		return nil, err
	}
	return el, nil
}

// QueryElement is Query returning the concrete element type.
func (p *Page) QueryElement(selector string) (*Element, error) {
	sel, err := p.compile(selector)
	if err != nil {
		return nil, err
	}
	n := cascadia.Query(p.doc, sel)
	if n == nil {
		return nil, nil
	}
	return p.element(n), nil
}

// --- glide.Window ---

// ViewportCandidates reports innerWidth/innerHeight and the root client size.
func (p *Page) ViewportCandidates() []glide.Vec2 {
	return []glide.Vec2{
		{X: p.width, Y: p.height},
		{X: p.width - p.cfg.ScrollbarWidth, Y: p.height},
	}
}

// DocumentCandidates reports the body and root scroll sizes.
func (p *Page) DocumentCandidates() []glide.Vec2 {
	p.layout()
	return []glide.Vec2{
		{X: p.width, Y: p.docHeight},
		{X: p.width, Y: p.ScrollHeight()},
	}
}

// ScrollOffset returns the native scroll position.
func (p *Page) ScrollOffset() glide.Vec2 {
	return p.scroll
}

// ScrollHeight returns the scrollable document height.
func (p *Page) ScrollHeight() float64 {
	p.layout()
	return max(p.docHeight, p.height)
}

// MaxScroll returns the largest valid vertical scroll offset.
func (p *Page) MaxScroll() float64 {
	return p.ScrollHeight() - p.height
}

// ScrollTo scrolls natively to y. A smooth scroll animates over the
// following frames.
func (p *Page) ScrollTo(y float64, smooth bool) {
	y = p.clampScroll(y)
	if !smooth {
		p.scrollAnim = nil
		p.setScroll(y)
		return
	}
	p.scrollAnim = &scrollAnim{
		tween:  gween.New(float32(p.scroll.Y), float32(y), p.cfg.ScrollDuration, p.cfg.ScrollEase),
		target: y,
	}
}

// Scrolling reports whether a smooth native scroll is in progress.
func (p *Page) Scrolling() bool {
	return p.scrollAnim != nil
}

// IsTouch reports the configured touch capability.
func (p *Page) IsTouch() bool {
	return p.cfg.Touch
}

// On registers a native listener.
func (p *Page) On(event glide.HostEvent, fn func()) func() {
	h, ok := p.native[event]
	if !ok {
		h = &hooks{}
		p.native[event] = h
	}
	return h.add(fn)
}

// --- user actions ---

// Scroll sets the native scroll position as a user would, cancelling any
// smooth scroll in progress.
func (p *Page) Scroll(y float64) {
	p.scrollAnim = nil
	p.setScroll(p.clampScroll(y))
}

// ScrollBy scrolls by dy pixels.
func (p *Page) ScrollBy(dy float64) {
	p.Scroll(p.scroll.Y + dy)
}

// Resize changes the window size and fires the native resize event.
func (p *Page) Resize(width, height float64) {
	p.width, p.height = width, height
	p.dirty = true
	p.layout()
	p.dispatch(glide.HostResize)
}

// Viewport returns the window size.
func (p *Page) Viewport() glide.Vec2 {
	return glide.Vec2{X: p.width, Y: p.height}
}

// SetReadyState changes document.readyState and fires readystatechange.
func (p *Page) SetReadyState(state string) {
	if state == p.readyState {
		return
	}
	p.readyState = state
	p.dispatch(glide.HostReadyStateChange)
}

// ReadyState returns document.readyState.
func (p *Page) ReadyState() string {
	return p.readyState
}

// Legacy returns a view of the page without optional capabilities, like a
// browser lacking ResizeObserver.
func (p *Page) Legacy() glide.Host {
	return struct {
		glide.Window
		glide.Document
		glide.Scheduler
	}{p, p, p}
}

func (p *Page) clampScroll(y float64) float64 {
	return max(0, min(y, p.MaxScroll()))
}

func (p *Page) setScroll(y float64) {
	if y == p.scroll.Y {
		return
	}
	p.scroll.Y = y
	p.dispatch(glide.HostScroll)
}

func (p *Page) dispatch(event glide.HostEvent) {
	if h, ok := p.native[event]; ok {
		h.run()
	}
}

// stepScroll advances a smooth native scroll by one frame.
func (p *Page) stepScroll(dt float32) {
	a := p.scrollAnim
	if a == nil {
		return
	}
	val, done := a.tween.Update(dt)
	if done {
		p.scrollAnim = nil
		p.setScroll(a.target)
		return
	}
	p.setScroll(p.clampScroll(float64(val)))
}
