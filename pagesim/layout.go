package pagesim

import (
	"slices"

	"github.com/phanxgames/glide"
	"golang.org/x/net/html"
)

// layout recomputes element boxes when a geometry-affecting change happened
// since the last pass.
func (p *Page) layout() {
	if !p.dirty {
		return
	}
	p.dirty = false
	p.docHeight = p.layoutBox(p.body, 0, false)
	p.root.top, p.root.height, p.root.fixed = 0, max(p.docHeight, p.height), false

	if maxY := max(0, max(p.docHeight, p.height)-p.height); p.scroll.Y > maxY {
		p.setScroll(maxY)
	}
}

// layoutBox places el at top and returns the height it adds to its parent's
// flow. Fixed elements are placed relative to the viewport and add nothing.
func (p *Page) layoutBox(el *Element, top float64, fixed bool) float64 {
	if el.style["display"] == "none" {
		el.top, el.height, el.fixed = top, 0, fixed
		p.zeroChildren(el, top, fixed)
		return 0
	}
	self := el.style["position"] == "fixed"
	if self {
		fixed = true
		top, _ = parsePx(el.style["top"])
	}
	el.top, el.fixed = top, fixed

	y := top
	for c := el.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		y += p.layoutBox(p.element(c), y, fixed)
	}
	h := y - top
	if v, ok := parsePx(el.style["height"]); ok {
		h = v
	}
	if v, ok := parsePx(el.style["min-height"]); ok && h < v {
		h = v
	}
	el.height = h
	if self {
		return 0
	}
	return h
}

// observer is a ResizeObserver registration.
type observer struct {
	el      *Element
	fn      func()
	height  float64
	removed bool
}

// ObserveResize calls fn after any frame in which el's height changed.
func (p *Page) ObserveResize(el glide.Element, fn func()) func() {
	e, ok := el.(*Element)
	if !ok || e.page != p {
		return func() {}
	}
	o := &observer{el: e, fn: fn, height: e.OffsetHeight()}
	p.observers = append(p.observers, o)
	return func() {
		if o.removed {
			return
		}
		o.removed = true
		if i := slices.Index(p.observers, o); i >= 0 {
			p.observers = slices.Delete(slices.Clone(p.observers), i, i+1)
		}
	}
}

// Observers returns the number of active resize observers.
func (p *Page) Observers() int {
	return len(p.observers)
}

func (p *Page) notifyObservers() {
	if len(p.observers) == 0 {
		return
	}
	p.layout()
	for _, o := range p.observers {
		if o.removed || o.el.height == o.height {
			continue
		}
		o.height = o.el.height
		o.fn()
	}
}

func (p *Page) zeroChildren(el *Element, top float64, fixed bool) {
	for c := el.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		child := p.element(c)
		child.top, child.height, child.fixed = top, 0, fixed
		p.zeroChildren(child, top, fixed)
	}
}
