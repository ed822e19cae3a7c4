// Package ebitenhost runs a pagesim page inside an ebiten window so a glide
// Scroller can be driven by a real wheel, keyboard and touch screen. Each
// element box is drawn as a flat rectangle; elements carrying the in-view
// class are highlighted.
package ebitenhost

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/glide"
	"github.com/phanxgames/glide/pagesim"
)

// Config sets up the window and input handling.
type Config struct {
	Title         string
	Width, Height int
	// WheelSpeed is the number of pixels scrolled per wheel notch (default 60).
	WheelSpeed float64
	// InViewClass marks highlighted elements (default glide.DefaultInViewClass).
	InViewClass string
	// Runner, when set, replays a scenario one frame at a time.
	Runner *pagesim.Runner
	// Status, when set, returns extra text drawn in the top-left corner.
	Status func() string
}

func (c Config) withDefaults() Config {
	if c.Title == "" {
		c.Title = "glide"
	}
	if c.Width <= 0 {
		c.Width = 960
	}
	if c.Height <= 0 {
		c.Height = 640
	}
	if c.WheelSpeed <= 0 {
		c.WheelSpeed = 60
	}
	if c.InViewClass == "" {
		c.InViewClass = glide.DefaultInViewClass
	}
	return c
}

var (
	colorBackground = color.RGBA{0x12, 0x14, 0x1c, 0xff}
	colorInView     = color.RGBA{0x4c, 0xc9, 0x8f, 0xff}
	colorHidden     = color.RGBA{0x30, 0x30, 0x38, 0xff}
	depthPalette    = []color.RGBA{
		{0x2b, 0x33, 0x4a, 0xff},
		{0x3a, 0x46, 0x66, 0xff},
		{0x50, 0x5f, 0x8a, 0xff},
		{0x6a, 0x7c, 0xb0, 0xff},
	}
)

// Game adapts a pagesim.Page to ebiten.Game.
type Game struct {
	page *pagesim.Page
	cfg  Config

	width, height int
	touches       []ebiten.TouchID
	touchY        map[ebiten.TouchID]float64
}

// New returns a game showing page. The page is resized to the window on the
// first Layout call.
func New(page *pagesim.Page, cfg Config) *Game {
	return &Game{
		page:   page,
		cfg:    cfg.withDefaults(),
		touchY: make(map[ebiten.TouchID]float64),
	}
}

// Run opens the window and blocks until it is closed.
func Run(g *Game) error {
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("ebitenhost: %w", err)
	}
	return nil
}

// Update handles input, steps the scenario runner, and advances the page
// clock by one tick.
func (g *Game) Update() error {
	g.processWheel()
	g.processKeys()
	g.processTouches()
	g.processClick()

	if r := g.cfg.Runner; r != nil && !r.Done() {
		r.Step(g.page)
		if err := r.Err(); err != nil {
			return err
		}
	}
	g.page.Advance(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

// Draw renders every element box in document order.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	g.drawElement(screen, g.page.Body(), 0)

	pos := g.page.ScrollOffset()
	msg := fmt.Sprintf("scroll %.0f / %.0f", pos.Y, g.page.MaxScroll())
	if g.cfg.Status != nil {
		msg += "\n" + g.cfg.Status()
	}
	ebitenutil.DebugPrintAt(screen, msg, 4, 4)
}

// Layout keeps the page viewport in sync with the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.page.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

func (g *Game) drawElement(screen *ebiten.Image, el *pagesim.Element, depth int) {
	if el.Style("display") == "none" {
		return
	}
	r := el.BoundingClientRect()
	if r.Height > 0 && r.Bottom() >= 0 && r.Top() <= float64(g.height) {
		inset := float32(depth * 6)
		clr := depthPalette[depth%len(depthPalette)]
		switch {
		case el.Style("visibility") == "hidden":
			clr = colorHidden
		case el.HasClass(g.cfg.InViewClass):
			clr = colorInView
		}
		vector.DrawFilledRect(screen,
			float32(r.X)+inset, float32(r.Y)+1,
			float32(g.width)-2*inset, float32(r.Height)-2,
			clr, false)
		if label := elementLabel(el); label != "" {
			ebitenutil.DebugPrintAt(screen, label, int(r.X)+int(inset)+4, int(r.Y)+4)
		}
	}
	for _, c := range el.Children() {
		g.drawElement(screen, c, depth+1)
	}
}

func elementLabel(el *pagesim.Element) string {
	label := el.ID()
	if call, ok := el.Attr("data-scroll-call"); ok {
		label += " call=" + call
	}
	return label
}

func (g *Game) processWheel() {
	_, dy := ebiten.Wheel()
	if dy != 0 {
		g.page.ScrollBy(-dy * g.cfg.WheelSpeed)
	}
}

func (g *Game) processKeys() {
	y := g.page.ScrollOffset().Y
	page := float64(g.height) * 0.9
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.page.ScrollTo(y+page, true)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		g.page.ScrollTo(y-page, true)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		g.page.ScrollTo(0, true)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		g.page.ScrollTo(g.page.MaxScroll(), true)
	case ebiten.IsKeyPressed(ebiten.KeyArrowDown):
		g.page.ScrollBy(g.cfg.WheelSpeed / 4)
	case ebiten.IsKeyPressed(ebiten.KeyArrowUp):
		g.page.ScrollBy(-g.cfg.WheelSpeed / 4)
	}
}

// processTouches scrolls by the vertical drag of the first active touch.
func (g *Game) processTouches() {
	g.touches = ebiten.AppendTouchIDs(g.touches[:0])
	active := make(map[ebiten.TouchID]bool, len(g.touches))
	for i, tid := range g.touches {
		active[tid] = true
		_, ty := ebiten.TouchPosition(tid)
		y := float64(ty)
		if prev, ok := g.touchY[tid]; ok && i == 0 {
			g.page.ScrollBy(prev - y)
		}
		g.touchY[tid] = y
	}
	for tid := range g.touchY {
		if !active[tid] {
			delete(g.touchY, tid)
		}
	}
}

// processClick dispatches a click to the deepest element under the cursor
// that has click listeners.
func (g *Game) processClick() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	_, cy := ebiten.CursorPosition()
	if el := hitTest(g.page.Body(), float64(cy)); el != nil {
		el.Click()
	}
}

func hitTest(el *pagesim.Element, y float64) *pagesim.Element {
	if el.Style("display") == "none" {
		return nil
	}
	for _, c := range el.Children() {
		if hit := hitTest(c, y); hit != nil {
			return hit
		}
	}
	r := el.BoundingClientRect()
	if el.ClickListeners() > 0 && y >= r.Top() && y < r.Bottom() {
		return el
	}
	return nil
}
