// Package glide is a smooth-scroll and viewport-trigger engine for pages.
//
// Glide decouples the visual scroll position from the native document
// scroll: a [PositionTracker] follows the native offset and, when smoothing
// is on, eases a second position toward it once per animation frame. The
// [Scroller] pins the page content and translates it by that eased position,
// while a [TriggerRegistry] watches marked elements enter and leave the
// viewport and writes parallax transforms.
//
// # Quick start
//
// The engine runs against a [Host], an abstraction of the browser window,
// document and event loop. Use [github.com/phanxgames/glide/jshost] in a
// browser (GOOS=js GOARCH=wasm), or [github.com/phanxgames/glide/pagesim] for
// a headless page parsed from HTML:
//
//	page, _ := pagesim.Parse(strings.NewReader(html), pagesim.Config{Width: 1280, Height: 800})
//	s, _ := glide.New(page, glide.Options{Smooth: true})
//	s.OnCall(func(e glide.CallEvent) { fmt.Println(e.Name, e.State) })
//	_ = s.Start()
//	defer s.Stop()
//
// # Markup
//
// Configuration is read once from attributes (names configurable through
// [Attributes]):
//
//	<div data-scroll-container>
//	  <div data-scroll-content>
//	    <section data-scroll-section>
//	      <h2 data-scroll data-scroll-call="title" data-scroll-repeat>...</h2>
//	      <img data-scroll data-scroll-speed="0.5" data-scroll-delay="0.1">
//	      <a data-scroll-to="#contact" data-scroll-to-offset="-20">Contact</a>
//	    </section>
//	  </div>
//	</div>
//
// # Events
//
// Callbacks are registered per event and return a [CallbackHandle]:
// OnScroll, OnScrollEnd, OnResize, OnResizeEnd and OnCall. While smoothing is
// active, scroll events come only from the frame tick, never from the native
// scroll path.
//
// Everything runs on the host's event loop; no method is safe for concurrent
// use from other goroutines.
package glide
