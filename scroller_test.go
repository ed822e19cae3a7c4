package glide_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/phanxgames/glide"
	"github.com/phanxgames/glide/pagesim"
)

// Layout (page-absolute, viewport 1000x800, document 4000):
//
//	#s1      0..1000   section
//	#intro   600..1000
//	#s2      1000..4000 section
//	#once    1000..1200 call "once"
//	#rep     2000..2200 call "rep", repeat
//	#para    2200..2400 speed 0.5, force-parallax
//	#jump    2400..2410 scroll-to #target +20
//	#target  2410..3000
const testPage = `<!doctype html>
<html><body>
<div data-scroll-container>
  <div data-scroll-content>
    <section id="s1" data-scroll-section style="height: 1000px">
      <div id="hero" style="height: 600px"></div>
      <div id="intro" style="height: 400px"></div>
    </section>
    <section id="s2" data-scroll-section style="height: 3000px">
      <div id="once" data-scroll data-scroll-call="once" style="height: 200px"></div>
      <div style="height: 800px"></div>
      <div id="rep" data-scroll data-scroll-call="rep" data-scroll-repeat style="height: 200px"></div>
      <div id="para" data-scroll data-scroll-speed="0.5" data-scroll-force-parallax style="height: 200px"></div>
      <a id="jump" data-scroll-to="#target" data-scroll-to-offset="20" style="height: 10px"></a>
      <div id="target" style="height: 590px"></div>
    </section>
  </div>
</div>
</body></html>`

type fixture struct {
	page *pagesim.Page
	s    *glide.Scroller
	log  *bytes.Buffer
}

func newFixture(t *testing.T, cfg pagesim.Config, opts glide.Options) *fixture {
	t.Helper()
	if cfg.Width == 0 {
		cfg.Width, cfg.Height = 1000, 800
	}
	page, err := pagesim.ParseString(testPage, cfg)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return newFixtureOn(t, page, page, opts)
}

func newFixtureOn(t *testing.T, page *pagesim.Page, host glide.Host, opts glide.Options) *fixture {
	t.Helper()
	s, err := glide.New(host, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var buf bytes.Buffer
	s.SetLogOutput(&buf)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(s.Stop)
	return &fixture{page: page, s: s, log: &buf}
}

func (f *fixture) el(t *testing.T, sel string) *pagesim.Element {
	t.Helper()
	el, err := f.page.QueryElement(sel)
	if err != nil || el == nil {
		t.Fatalf("query %q: %v", sel, err)
	}
	return el
}

func (f *fixture) trigger(t *testing.T, sel string) *glide.Trigger {
	t.Helper()
	el := f.el(t, sel)
	for _, tr := range f.s.Triggers().Triggers() {
		if tr.Element == glide.Element(el) {
			return tr
		}
	}
	t.Fatalf("no trigger for %q", sel)
	return nil
}

func TestNewRequiresContainer(t *testing.T) {
	page, err := pagesim.ParseString(`<html><body><div></div></body></html>`, pagesim.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := glide.New(page, glide.Options{}); err == nil {
		t.Error("expected error without container/content markup")
	}
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	page, err := pagesim.ParseString(testPage, pagesim.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := glide.New(page, glide.Options{SmoothFactor: 2}); err == nil {
		t.Error("expected error for smooth factor above 1")
	}
}

func TestStartRegistersTriggersAndSections(t *testing.T) {
	f := newFixture(t, pagesim.Config{}, glide.Options{})

	if n := len(f.s.Triggers().Triggers()); n != 3 {
		t.Errorf("triggers = %d, want 3", n)
	}
	if n := len(f.s.Triggers().Sections()); n != 2 {
		t.Errorf("sections = %d, want 2", n)
	}
	rep := f.trigger(t, "#rep")
	if rep.Top != 2000 || rep.Bottom != 2200 {
		t.Errorf("rep bounds = [%v, %v], want [2000, 2200]", rep.Top, rep.Bottom)
	}
	if f.s.ContentHeight() != 4000 {
		t.Errorf("ContentHeight = %v, want 4000", f.s.ContentHeight())
	}
	if !f.page.Root().HasClass(glide.DefaultScrollEnableClass) {
		t.Error("root missing scroll-enable class")
	}
	if f.page.Root().HasClass(glide.DefaultSmoothClass) {
		t.Error("smooth class set without smoothing")
	}
}

func TestSectionVisibility(t *testing.T) {
	f := newFixture(t, pagesim.Config{}, glide.Options{})
	s1, s2 := f.el(t, "#s1"), f.el(t, "#s2")

	if s1.Style("visibility") != "visible" || s2.Style("visibility") != "hidden" {
		t.Errorf("initial visibility s1=%q s2=%q", s1.Style("visibility"), s2.Style("visibility"))
	}
	if s2.Style("pointer-events") != "none" || s2.Style("opacity") != "0" {
		t.Error("hidden section should disable pointer events and opacity")
	}
	f.page.Scroll(500)
	if s2.Style("visibility") != "visible" {
		t.Error("s2 should become visible once it enters the viewport")
	}
	f.page.Scroll(1500)
	if s1.Style("visibility") != "hidden" {
		t.Error("s1 should be hidden after scrolling past it")
	}
}

func TestNonRepeatingCallFiresOnce(t *testing.T) {
	f := newFixture(t, pagesim.Config{}, glide.Options{})
	var events []glide.CallEvent
	f.s.OnCall(func(e glide.CallEvent) {
		if e.Name == "once" {
			events = append(events, e)
		}
	})
	once := f.el(t, "#once")

	f.page.Scroll(300) // enter
	f.page.Scroll(0)   // exit
	f.page.Scroll(300) // enter again

	if len(events) != 1 {
		t.Fatalf("once events = %d, want 1", len(events))
	}
	if events[0].State != glide.CallEnter || events[0].Element != glide.Element(once) {
		t.Errorf("event = %+v", events[0])
	}
	f.page.Scroll(0)
	if !once.HasClass(glide.DefaultInViewClass) {
		t.Error("non-repeating trigger should keep its class")
	}
}

func TestRepeatingCallFiresEveryTransition(t *testing.T) {
	f := newFixture(t, pagesim.Config{}, glide.Options{})
	var states []glide.CallState
	f.s.OnCall(func(e glide.CallEvent) {
		if e.Name == "rep" {
			states = append(states, e.State)
		}
	})
	rep := f.el(t, "#rep")

	f.page.Scroll(1300)
	if !rep.HasClass(glide.DefaultInViewClass) {
		t.Error("class not added on enter")
	}
	f.page.Scroll(2500)
	if rep.HasClass(glide.DefaultInViewClass) {
		t.Error("class not removed on repeat exit")
	}
	f.page.Scroll(1300)
	f.page.Scroll(0)

	want := []glide.CallState{glide.CallEnter, glide.CallExit, glide.CallEnter, glide.CallExit}
	if len(states) != len(want) {
		t.Fatalf("states = %v, want %v", states, want)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Fatalf("states = %v, want %v", states, want)
		}
	}
}

func TestRefreshIsIdempotent(t *testing.T) {
	f := newFixture(t, pagesim.Config{}, glide.Options{})
	f.page.Scroll(1800)

	reg := f.s.Triggers()
	reg.Refresh()
	type bounds struct{ top, bottom float64 }
	first := make([]bounds, 0, len(reg.Triggers()))
	for _, tr := range reg.Triggers() {
		first = append(first, bounds{tr.Top, tr.Bottom})
	}
	reg.Refresh()
	for i, tr := range reg.Triggers() {
		if tr.Top != first[i].top || tr.Bottom != first[i].bottom {
			t.Errorf("trigger %d moved: [%v, %v] -> [%v, %v]", i, first[i].top, first[i].bottom, tr.Top, tr.Bottom)
		}
		if tr.Top > tr.Bottom {
			t.Errorf("trigger %d: top > bottom", i)
		}
	}
}

func TestForcedParallax(t *testing.T) {
	f := newFixture(t, pagesim.Config{}, glide.Options{})
	para := f.el(t, "#para")

	f.page.Scroll(1800)
	// scrollMiddle 2200, elementMiddle 2200 + 200
	if got := para.Translation(); got.Y != 100 {
		t.Errorf("para translation = %v, want Y=100", got)
	}
	f.s.Triggers().Refresh()
	tr := f.trigger(t, "#para")
	if tr.Top != 2200 || tr.Bottom != 2400 {
		t.Errorf("para bounds include its own translation: [%v, %v]", tr.Top, tr.Bottom)
	}
}

func TestParallaxNeedsSmoothingUnlessForced(t *testing.T) {
	f := newFixture(t, pagesim.Config{}, glide.Options{})
	para := f.el(t, "#para")
	para.SetAttr("data-scroll-force-parallax", "false")
	if err := f.s.Triggers().Start(glide.RegistryOptions{Container: f.el(t, "[data-scroll-container]")}); err != nil {
		t.Fatal(err)
	}
	f.page.Scroll(1800)
	if para.ComputedTransform() != "none" {
		t.Errorf("transform = %q, want none without smoothing", para.ComputedTransform())
	}
}

func TestResolveTarget(t *testing.T) {
	f := newFixture(t, pagesim.Config{}, glide.Options{})
	f.page.Scroll(100)

	y, err := f.s.PositionTracker().ResolveTarget("#intro", 20)
	if err != nil {
		t.Fatal(err)
	}
	if y != 620 {
		t.Errorf("resolved = %v, want 620", y)
	}

	y, err = f.s.PositionTracker().ResolveTarget(f.el(t, "#intro"), 0)
	if err != nil || y != 600 {
		t.Errorf("element target = %v, %v; want 600", y, err)
	}
	// Numeric targets ignore the current position (100).
	y, err = f.s.PositionTracker().ResolveTarget(250, 10)
	if err != nil || y != 260 {
		t.Errorf("numeric target = %v, %v; want 260", y, err)
	}
}

func TestScrollTo(t *testing.T) {
	f := newFixture(t, pagesim.Config{}, glide.Options{})
	f.page.Scroll(100)
	if err := f.s.ScrollTo("#intro", 20); err != nil {
		t.Fatal(err)
	}
	f.page.Advance(time.Second)
	if got := f.page.ScrollOffset().Y; got != 620 {
		t.Errorf("scroll = %v, want 620", got)
	}
}

func TestScrollToInvalidTarget(t *testing.T) {
	f := newFixture(t, pagesim.Config{}, glide.Options{})
	tests := []struct {
		name   string
		target any
	}{
		{"missing selector", "#missing"},
		{"bad selector", "[["},
		{"nil", nil},
		{"nil element", (*pagesim.Element)(nil)},
		{"unsupported type", struct{}{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.log.Reset()
			err := f.s.ScrollTo(tt.target, 0)
			if !errors.Is(err, glide.ErrInvalidScrollTarget) {
				t.Errorf("err = %v, want ErrInvalidScrollTarget", err)
			}
			if !strings.Contains(f.log.String(), "[glide] error") {
				t.Errorf("error not logged: %q", f.log.String())
			}
			if f.page.Scrolling() {
				t.Error("invalid target started a scroll")
			}
		})
	}
}

func TestScrollToClick(t *testing.T) {
	f := newFixture(t, pagesim.Config{}, glide.Options{})
	f.el(t, "#jump").Click()
	f.page.Advance(time.Second)
	if got := f.page.ScrollOffset().Y; got != 2430 {
		t.Errorf("scroll = %v, want 2430", got)
	}
}

func TestScrollToBottomAndTop(t *testing.T) {
	f := newFixture(t, pagesim.Config{}, glide.Options{})
	f.s.PositionTracker().ScrollToBottom(0)
	f.page.Advance(time.Second)
	if got := f.page.ScrollOffset().Y; got != f.page.MaxScroll() {
		t.Errorf("scroll = %v, want %v", got, f.page.MaxScroll())
	}
	f.s.PositionTracker().ScrollToTop(0)
	f.page.Advance(time.Second)
	if got := f.page.ScrollOffset().Y; got != 0 {
		t.Errorf("scroll = %v, want 0", got)
	}
}

func TestNativeScrollEvents(t *testing.T) {
	f := newFixture(t, pagesim.Config{}, glide.Options{})
	var scrolls []glide.ScrollEvent
	var ends []glide.ScrollEndEvent
	f.s.OnScroll(func(e glide.ScrollEvent) { scrolls = append(scrolls, e) })
	f.s.OnScrollEnd(func(e glide.ScrollEndEvent) { ends = append(ends, e) })

	f.page.Scroll(200)
	f.page.Scroll(150)
	if len(scrolls) != 2 {
		t.Fatalf("scroll events = %d, want 2", len(scrolls))
	}
	if scrolls[0].DirectionY != glide.DirectionDown || scrolls[0].Delta.Y != -200 {
		t.Errorf("first event = %+v", scrolls[0])
	}
	if scrolls[1].DirectionY != glide.DirectionUp || scrolls[1].Smooth {
		t.Errorf("second event = %+v", scrolls[1])
	}
	if f.s.PositionTracker().Delta() != 50 {
		t.Errorf("Delta = %v, want 50", f.s.PositionTracker().Delta())
	}

	f.page.Advance(200 * time.Millisecond)
	if len(ends) != 0 {
		t.Fatal("scroll:end fired before settling")
	}
	f.page.Advance(200 * time.Millisecond)
	if len(ends) != 1 || ends[0].Y != 150 {
		t.Errorf("scroll:end = %v, want one at 150", ends)
	}
}

func TestSmoothScrolling(t *testing.T) {
	f := newFixture(t, pagesim.Config{}, glide.Options{Smooth: true})
	content := f.el(t, "[data-scroll-content]")
	container := f.el(t, "[data-scroll-container]")

	if content.Style("position") != "fixed" {
		t.Fatal("content not pinned")
	}
	if container.Style("height") != "4000px" {
		t.Errorf("container height = %q, want 4000px", container.Style("height"))
	}
	if !f.page.Root().HasClass(glide.DefaultSmoothClass) {
		t.Error("root missing smooth class")
	}

	var events []glide.ScrollEvent
	var ends []glide.ScrollEndEvent
	f.s.OnScroll(func(e glide.ScrollEvent) { events = append(events, e) })
	f.s.OnScrollEnd(func(e glide.ScrollEndEvent) { ends = append(ends, e) })

	f.page.Scroll(1000)
	if len(events) != 0 {
		t.Fatal("native scroll emitted while smoothing")
	}
	f.page.Frames(1)
	if got := f.s.Position().Y; got != 150 {
		t.Errorf("position after one frame = %v, want 150", got)
	}
	if len(events) != 1 || !events[0].Smooth || events[0].DirectionY != glide.DirectionDown {
		t.Errorf("events = %+v", events)
	}
	if got := content.Translation().Y; got != -150 {
		t.Errorf("content translation = %v, want -150", got)
	}

	f.page.Advance(5 * time.Second)
	if got := f.s.Position().Y; got != 1000 {
		t.Errorf("position = %v, want 1000", got)
	}
	if got := content.Translation().Y; got != -1000 {
		t.Errorf("content translation = %v, want -1000", got)
	}
	if len(ends) != 1 || ends[0].Y != 1000 {
		t.Errorf("scroll:end = %v", ends)
	}

	// Geometry stays page-absolute while the content is translated.
	f.s.Triggers().Refresh()
	if once := f.trigger(t, "#once"); once.Top != 1000 || once.Bottom != 1200 {
		t.Errorf("once bounds = [%v, %v]", once.Top, once.Bottom)
	}
	if !f.el(t, "#once").HasClass(glide.DefaultInViewClass) {
		t.Error("#once should be in view at 1000")
	}
}

func TestSmoothingStartsFromCurrentScroll(t *testing.T) {
	page, err := pagesim.ParseString(testPage, pagesim.Config{Width: 1000, Height: 800})
	if err != nil {
		t.Fatal(err)
	}
	page.Scroll(1500)
	f := newFixtureOn(t, page, page, glide.Options{Smooth: true})

	if got := f.s.Position().Y; got != 1500 {
		t.Errorf("position = %v, want 1500", got)
	}
	if got := page.ScrollOffset().Y; got != 1500 {
		t.Errorf("pinning the content moved the native scroll to %v", got)
	}
	if rep := f.trigger(t, "#rep"); rep.Top != 2000 {
		t.Errorf("rep top = %v, want 2000", rep.Top)
	}
}

func TestTouchKeepsNativeScrolling(t *testing.T) {
	f := newFixture(t, pagesim.Config{Touch: true}, glide.Options{Smooth: true})
	if f.s.PositionTracker().Smoothing() {
		t.Error("smoothing enabled on touch device")
	}
	if f.el(t, "[data-scroll-content]").Style("position") != "" {
		t.Error("content pinned on touch device")
	}
	f.page.Scroll(400)
	if f.s.Position().Y != 400 {
		t.Errorf("position = %v, want native 400", f.s.Position().Y)
	}
}

func TestToggleSmoothing(t *testing.T) {
	f := newFixture(t, pagesim.Config{}, glide.Options{})
	content := f.el(t, "[data-scroll-content]")
	f.page.Scroll(300)

	f.s.EnableSmoothing()
	if content.Style("position") != "fixed" || content.Translation().Y != -300 {
		t.Errorf("after enable: position=%q translation=%v", content.Style("position"), content.Translation())
	}
	f.s.DisableSmoothing()
	if content.Style("position") != "" || content.ComputedTransform() != "none" {
		t.Error("style properties not removed")
	}
	if f.el(t, "[data-scroll-container]").Style("height") != "" {
		t.Error("container height not cleared")
	}
	if f.page.ScrollOffset().Y != 300 {
		t.Errorf("scroll = %v, want 300", f.page.ScrollOffset().Y)
	}
}

func TestSetSmoothFactor(t *testing.T) {
	f := newFixture(t, pagesim.Config{}, glide.Options{Smooth: true})
	f.s.SetSmoothFactor(0.5)
	f.s.SetSmoothFactor(3)
	if got := f.s.PositionTracker().SmoothFactor(); got != 0.5 {
		t.Errorf("SmoothFactor = %v, want 0.5", got)
	}
	f.page.Scroll(100)
	f.page.Frames(1)
	if got := f.s.Position().Y; got != 50 {
		t.Errorf("position = %v, want 50", got)
	}
}

func TestDelayedParallaxEases(t *testing.T) {
	f := newFixture(t, pagesim.Config{}, glide.Options{})
	para := f.el(t, "#para")
	para.SetAttr("data-scroll-delay", "0.1")
	if err := f.s.Triggers().Start(glide.RegistryOptions{Container: f.el(t, "[data-scroll-container]")}); err != nil {
		t.Fatal(err)
	}

	f.page.Scroll(1800)
	f.page.Frames(1)
	first := para.Translation().Y
	if first <= 0 || first >= 100 {
		t.Errorf("after one frame translation = %v, want between 0 and 100", first)
	}
	f.page.Advance(10 * time.Second)
	if got := para.Translation().Y; got < 99 || got > 100 {
		t.Errorf("translation = %v, want close to 100", got)
	}
}

func TestResizeEvents(t *testing.T) {
	f := newFixture(t, pagesim.Config{}, glide.Options{})
	var resized, settled []glide.Metrics
	f.s.OnResize(func(m glide.Metrics) { resized = append(resized, m) })
	f.s.OnResizeEnd(func(m glide.Metrics) { settled = append(settled, m) })

	f.page.Resize(1000, 700)
	f.page.Resize(1000, 600)
	if len(resized) != 2 || resized[1].ViewportHeight != 600 {
		t.Errorf("resize events = %+v", resized)
	}
	f.page.Advance(time.Second)
	if len(settled) != 1 {
		t.Fatalf("resize:end events = %d, want 1", len(settled))
	}
	if m := settled[0]; m.ViewportHeight != 600 || m.DocumentHeight != 4000 {
		t.Errorf("metrics = %+v", m)
	}
}

func TestResizeEndRefreshesViewportOffset(t *testing.T) {
	page, err := pagesim.ParseString(strings.Replace(testPage,
		`id="rep" data-scroll`, `id="rep" data-scroll data-scroll-offset-viewport="0.1"`, 1),
		pagesim.Config{Width: 1000, Height: 800})
	if err != nil {
		t.Fatal(err)
	}
	f := newFixtureOn(t, page, page, glide.Options{})
	rep := f.trigger(t, "#rep")
	if rep.Top != 2080 || rep.Bottom != 2120 {
		t.Errorf("bounds = [%v, %v], want [2080, 2120]", rep.Top, rep.Bottom)
	}

	page.Resize(1000, 400)
	if rep.Top != 2080 {
		t.Error("bounds recomputed before resize settled")
	}
	page.Advance(time.Second)
	if rep.Top != 2040 || rep.Bottom != 2160 {
		t.Errorf("bounds = [%v, %v], want [2040, 2160]", rep.Top, rep.Bottom)
	}
}

func TestContentHeightObserved(t *testing.T) {
	f := newFixture(t, pagesim.Config{}, glide.Options{Smooth: true})
	f.el(t, "#hero").SetStyle("height", "700px")
	f.page.Frames(1)
	if got := f.s.ContentHeight(); got != 4100 {
		t.Errorf("ContentHeight = %v, want 4100", got)
	}
	if got := f.el(t, "[data-scroll-container]").Style("height"); got != "4100px" {
		t.Errorf("container height = %q", got)
	}
}

func TestContentHeightPolledWithoutObserver(t *testing.T) {
	page, err := pagesim.ParseString(testPage, pagesim.Config{Width: 1000, Height: 800})
	if err != nil {
		t.Fatal(err)
	}
	f := newFixtureOn(t, page, page.Legacy(), glide.Options{HeightCheck: 500 * time.Millisecond})
	f.el(t, "#hero").SetStyle("height", "700px")
	f.page.Frames(2)
	if f.s.ContentHeight() != 4000 {
		t.Error("polled before the height check interval")
	}
	f.page.Advance(600 * time.Millisecond)
	if got := f.s.ContentHeight(); got != 4100 {
		t.Errorf("ContentHeight = %v, want 4100", got)
	}
}

func TestReadyStateRemeasures(t *testing.T) {
	page, err := pagesim.ParseString(testPage, pagesim.Config{Width: 1000, Height: 800})
	if err != nil {
		t.Fatal(err)
	}
	f := newFixtureOn(t, page, page.Legacy(), glide.Options{})
	f.el(t, "#hero").SetStyle("height", "650px")
	page.SetReadyState("complete")
	if got := f.s.ContentHeight(); got != 4050 {
		t.Errorf("ContentHeight = %v, want 4050", got)
	}
	if rep := f.trigger(t, "#rep"); rep.Top != 2050 {
		t.Errorf("rep top = %v, want 2050 after remeasure", rep.Top)
	}
}

func TestUpdateForcesHeightCheck(t *testing.T) {
	page, err := pagesim.ParseString(testPage, pagesim.Config{Width: 1000, Height: 800})
	if err != nil {
		t.Fatal(err)
	}
	f := newFixtureOn(t, page, page.Legacy(), glide.Options{})
	f.el(t, "#hero").SetStyle("height", "800px")
	f.s.Update()
	if got := f.s.ContentHeight(); got != 4200 {
		t.Errorf("ContentHeight = %v, want 4200", got)
	}
}

func TestStopRemovesEverything(t *testing.T) {
	f := newFixture(t, pagesim.Config{}, glide.Options{Smooth: true})
	f.page.Scroll(300)
	f.page.Frames(3)

	var events int
	f.s.OnScroll(func(glide.ScrollEvent) { events++ })
	f.s.OnScrollEnd(func(glide.ScrollEndEvent) { events++ })
	f.s.OnResize(func(glide.Metrics) { events++ })
	f.s.OnResizeEnd(func(glide.Metrics) { events++ })
	f.s.OnCall(func(glide.CallEvent) { events++ })

	f.s.Stop()

	if n := f.page.ListenerCount(glide.HostScroll); n != 0 {
		t.Errorf("scroll listeners = %d", n)
	}
	if n := f.page.ListenerCount(glide.HostResize); n != 0 {
		t.Errorf("resize listeners = %d", n)
	}
	if n := f.page.ListenerCount(glide.HostReadyStateChange); n != 0 {
		t.Errorf("readystatechange listeners = %d", n)
	}
	if n := f.page.FrameSubscribers(); n != 0 {
		t.Errorf("frame subscribers = %d", n)
	}
	if n := f.page.PendingTimers(); n != 0 {
		t.Errorf("pending timers = %d", n)
	}
	if n := f.page.Observers(); n != 0 {
		t.Errorf("resize observers = %d", n)
	}
	if n := f.el(t, "#jump").ClickListeners(); n != 0 {
		t.Errorf("click listeners = %d", n)
	}
	if f.el(t, "[data-scroll-content]").Style("position") != "" {
		t.Error("content still pinned")
	}
	if f.page.Root().HasClass(glide.DefaultScrollEnableClass) || f.page.Root().HasClass(glide.DefaultSmoothClass) {
		t.Error("root classes not removed")
	}

	pos := f.s.Position()
	f.page.Scroll(2500)
	f.page.Resize(1000, 500)
	f.page.Advance(5 * time.Second)
	if events != 0 {
		t.Errorf("%d events after Stop", events)
	}
	if f.s.Position() != pos {
		t.Errorf("position changed after Stop: %v -> %v", pos, f.s.Position())
	}
	if n := len(f.s.Triggers().Triggers()); n != 0 {
		t.Errorf("triggers after Stop = %d", n)
	}
}

func TestDisableStopsEvents(t *testing.T) {
	f := newFixture(t, pagesim.Config{}, glide.Options{Smooth: true})
	once := f.el(t, "#once")

	var calls, scrolls, resizes int
	f.s.OnCall(func(glide.CallEvent) { calls++ })
	f.s.OnScroll(func(glide.ScrollEvent) { scrolls++ })
	f.s.OnScrollEnd(func(glide.ScrollEndEvent) { scrolls++ })
	f.s.OnResize(func(glide.Metrics) { resizes++ })
	f.s.OnResizeEnd(func(glide.Metrics) { resizes++ })

	f.s.Disable()

	if n := f.page.ListenerCount(glide.HostScroll); n != 0 {
		t.Errorf("scroll listeners = %d", n)
	}
	if n := f.page.ListenerCount(glide.HostResize); n != 0 {
		t.Errorf("resize listeners = %d", n)
	}
	if n := f.page.FrameSubscribers(); n != 0 {
		t.Errorf("frame subscribers = %d", n)
	}
	if n := f.page.PendingTimers(); n != 0 {
		t.Errorf("pending timers = %d", n)
	}
	if n := f.page.Observers(); n != 0 {
		t.Errorf("resize observers = %d", n)
	}

	pos := f.s.Position()
	f.page.Scroll(600)
	f.page.Resize(1000, 500)
	f.page.Advance(time.Second)
	f.s.Update()

	if calls != 0 || scrolls != 0 || resizes != 0 {
		t.Errorf("after Disable: calls=%d scrolls=%d resizes=%d", calls, scrolls, resizes)
	}
	if f.s.Position() != pos {
		t.Errorf("position changed after Disable: %v -> %v", pos, f.s.Position())
	}
	if once.HasClass(glide.DefaultInViewClass) {
		t.Error("trigger entered while disabled")
	}
	if n := len(f.s.Triggers().Triggers()); n != 3 {
		t.Errorf("triggers after Disable = %d, want 3", n)
	}

	f.s.Enable()

	if got := f.s.Position().Y; got != 600 {
		t.Errorf("position after Enable = %v, want 600", got)
	}
	if calls != 1 || !once.HasClass(glide.DefaultInViewClass) {
		t.Errorf("after Enable: calls=%d in-view=%v", calls, once.HasClass(glide.DefaultInViewClass))
	}
	if n := f.page.ListenerCount(glide.HostScroll); n != 1 {
		t.Errorf("scroll listeners after Enable = %d, want 1", n)
	}
	f.page.Scroll(700)
	f.page.Frames(1)
	if scrolls == 0 {
		t.Error("no scroll events after Enable")
	}
}

func TestDisableSmoothingClearsParallax(t *testing.T) {
	f := newFixture(t, pagesim.Config{}, glide.Options{Smooth: true})
	para := f.el(t, "#para")
	para.SetAttr("data-scroll-force-parallax", "false")
	if err := f.s.Triggers().Start(glide.RegistryOptions{Container: f.el(t, "[data-scroll-container]")}); err != nil {
		t.Fatal(err)
	}
	f.page.Scroll(1800)
	f.page.Frames(120)
	if para.ComputedTransform() == "none" {
		t.Fatal("parallax not applied while smoothing")
	}

	f.s.DisableSmoothing()

	if got := para.ComputedTransform(); got != "none" {
		t.Errorf("transform = %q, want none after DisableSmoothing", got)
	}
	if got := f.trigger(t, "#para").Applied(); got != (glide.Vec2{}) {
		t.Errorf("applied = %v, want zero", got)
	}
}

func TestRestart(t *testing.T) {
	f := newFixture(t, pagesim.Config{}, glide.Options{})
	f.s.Stop()
	if err := f.s.Start(); err != nil {
		t.Fatal(err)
	}
	var calls int
	f.s.OnCall(func(glide.CallEvent) { calls++ })
	f.page.Scroll(300)
	if calls == 0 {
		t.Error("no call events after restart")
	}
	if n := f.page.ListenerCount(glide.HostScroll); n != 1 {
		t.Errorf("scroll listeners = %d, want 1", n)
	}
}

func TestDebugLogging(t *testing.T) {
	f := newFixture(t, pagesim.Config{}, glide.Options{})
	f.s.SetDebugMode(true)
	f.page.Scroll(300)
	if !strings.Contains(f.log.String(), "[glide] enter") {
		t.Errorf("missing trace line: %q", f.log.String())
	}
}

func TestLoadOptionsDrivesScroller(t *testing.T) {
	opts, err := glide.LoadOptions([]byte("smooth: true\nsmoothFactor: 1\nclass: shown\n"))
	if err != nil {
		t.Fatal(err)
	}
	f := newFixture(t, pagesim.Config{}, opts)
	f.page.Scroll(300)
	f.page.Frames(1)
	if f.s.Position().Y != 300 {
		t.Errorf("position = %v, want 300 with factor 1", f.s.Position().Y)
	}
	if !f.el(t, "#once").HasClass("shown") {
		t.Error("custom in-view class not applied")
	}
}

type recordingStore struct {
	events []glide.Event
}

func (r *recordingStore) EmitEvent(e glide.Event) { r.events = append(r.events, e) }

func (r *recordingStore) count(typ glide.EventType) int {
	n := 0
	for _, e := range r.events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func TestEventStore(t *testing.T) {
	f := newFixture(t, pagesim.Config{}, glide.Options{})
	store := &recordingStore{}
	f.s.SetEventStore(store)

	f.page.Scroll(300)
	f.page.Resize(1000, 700)
	f.page.Advance(time.Second)

	if store.count(glide.EventScroll) != 1 || store.count(glide.EventScrollEnd) != 1 {
		t.Errorf("scroll events = %d/%d", store.count(glide.EventScroll), store.count(glide.EventScrollEnd))
	}
	if store.count(glide.EventResize) != 1 || store.count(glide.EventResizeEnd) != 1 {
		t.Errorf("resize events = %d/%d", store.count(glide.EventResize), store.count(glide.EventResizeEnd))
	}
	if store.count(glide.EventCall) != 1 {
		t.Errorf("call events = %d, want 1", store.count(glide.EventCall))
	}
	for _, e := range store.events {
		if e.Type == glide.EventCall && e.Call.Name != "once" {
			t.Errorf("call = %+v", e.Call)
		}
	}

	f.s.SetEventStore(nil)
	f.page.Scroll(0)
	if store.count(glide.EventScroll) != 1 {
		t.Error("detached store still receives events")
	}
}
