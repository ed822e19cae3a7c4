package pagesim

import (
	"slices"
	"strconv"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/phanxgames/glide"
	"golang.org/x/net/html"
)

// layoutProps are the style properties that change geometry.
var layoutProps = map[string]bool{
	"height":     true,
	"min-height": true,
	"display":    true,
	"position":   true,
	"top":        true,
}

// Element wraps an html element node. It implements glide.Element and
// glide.TransformReader.
type Element struct {
	page  *Page
	node  *html.Node
	style map[string]string
	order []string // style property insertion order
	click hooks

	// layout results
	top    float64 // page-absolute, or viewport-relative when fixed
	height float64
	fixed  bool
}

func newElement(p *Page, n *html.Node) *Element {
	el := &Element{page: p, node: n, style: make(map[string]string)}
	if v, ok := el.Attr("style"); ok {
		for _, decl := range strings.Split(v, ";") {
			prop, val, found := strings.Cut(decl, ":")
			if !found {
				continue
			}
			el.putStyle(strings.ToLower(strings.TrimSpace(prop)), strings.TrimSpace(val))
		}
	}
	return el
}

// Tag returns the element's tag name.
func (e *Element) Tag() string {
	return e.node.Data
}

// ID returns the id attribute.
func (e *Element) ID() string {
	v, _ := e.Attr("id")
	return v
}

// Attr returns an attribute value and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets an attribute, replacing an existing value.
func (e *Element) SetAttr(name, value string) {
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

func (e *Element) classes() []string {
	v, _ := e.Attr("class")
	return strings.Fields(v)
}

// HasClass reports whether the class list contains name.
func (e *Element) HasClass(name string) bool {
	return slices.Contains(e.classes(), name)
}

// AddClass adds name to the class list.
func (e *Element) AddClass(name string) {
	cls := e.classes()
	if slices.Contains(cls, name) {
		return
	}
	e.SetAttr("class", strings.Join(append(cls, name), " "))
}

// RemoveClass removes name from the class list.
func (e *Element) RemoveClass(name string) {
	cls := e.classes()
	i := slices.Index(cls, name)
	if i < 0 {
		return
	}
	e.SetAttr("class", strings.Join(slices.Delete(cls, i, i+1), " "))
}

// Style returns an inline style property.
func (e *Element) Style(prop string) string {
	return e.style[prop]
}

// SetStyle writes an inline style property; an empty value removes it.
func (e *Element) SetStyle(prop, value string) {
	if e.style[prop] == value {
		return
	}
	e.putStyle(prop, value)
	e.SetAttr("style", e.styleText())
	if layoutProps[prop] {
		e.page.dirty = true
	}
}

func (e *Element) putStyle(prop, value string) {
	if value == "" {
		delete(e.style, prop)
		if i := slices.Index(e.order, prop); i >= 0 {
			e.order = slices.Delete(e.order, i, i+1)
		}
		return
	}
	if _, ok := e.style[prop]; !ok {
		e.order = append(e.order, prop)
	}
	e.style[prop] = value
}

func (e *Element) styleText() string {
	var b strings.Builder
	for i, prop := range e.order {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(prop)
		b.WriteString(": ")
		b.WriteString(e.style[prop])
		b.WriteByte(';')
	}
	return b.String()
}

// ComputedTransform returns the inline transform or "none".
func (e *Element) ComputedTransform() string {
	if v := e.style["transform"]; v != "" {
		return v
	}
	return "none"
}

// Translation returns the element's own inline translation.
func (e *Element) Translation() glide.Vec2 {
	return glide.ParseTranslate(e.style["transform"])
}

// BoundingClientRect returns the viewport-relative box including every
// translation on the element and its ancestors.
func (e *Element) BoundingClientRect() glide.Rect {
	p := e.page
	p.layout()
	var shift glide.Vec2
	for n := e.node; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		t := p.element(n).Translation()
		shift.X += t.X
		shift.Y += t.Y
	}
	y := e.top + shift.Y
	x := shift.X
	if !e.fixed {
		y -= p.scroll.Y
		x -= p.scroll.X
	}
	return glide.Rect{X: x, Y: y, Width: p.width, Height: e.height}
}

// OffsetHeight returns the laid-out height.
func (e *Element) OffsetHeight() float64 {
	e.page.layout()
	return e.height
}

// ClientHeight returns the laid-out height.
func (e *Element) ClientHeight() float64 {
	return e.OffsetHeight()
}

// PageTop returns the untransformed page-absolute top.
func (e *Element) PageTop() float64 {
	e.page.layout()
	return e.top
}

// Fixed reports whether the element or an ancestor is position: fixed.
func (e *Element) Fixed() bool {
	e.page.layout()
	return e.fixed
}

// QueryAll returns descendants matching selector in document order.
func (e *Element) QueryAll(selector string) ([]glide.Element, error) {
	els, err := e.QueryElements(selector)
	if err != nil {
		return nil, err
	}
	out := make([]glide.Element, len(els))
	for i, el := range els {
		out[i] = el
	}
	return out, nil
}

// QueryElements is QueryAll returning the concrete element type.
func (e *Element) QueryElements(selector string) ([]*Element, error) {
	sel, err := e.page.compile(selector)
	if err != nil {
		return nil, err
	}
	nodes := cascadia.QueryAll(e.node, sel)
	out := make([]*Element, len(nodes))
	for i, n := range nodes {
		out[i] = e.page.element(n)
	}
	return out, nil
}

// Children returns the element children in document order.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.page.element(c))
		}
	}
	return out
}

// OnClick registers a click listener.
func (e *Element) OnClick(fn func()) func() {
	return e.click.add(fn)
}

// Click dispatches a click to the element's listeners.
func (e *Element) Click() {
	e.click.run()
}

// ClickListeners returns the number of registered click listeners.
func (e *Element) ClickListeners() int {
	return e.click.len()
}

// parsePx reads a pixel length ("120px", "120"). Other units are rejected.
func parsePx(v string) (float64, bool) {
	v = strings.TrimSpace(v)
	v = strings.TrimSuffix(v, "px")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
