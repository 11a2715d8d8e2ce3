// Package drift is a momentum scroll engine for [Ebitengine].
//
// Drift gives long scrolling content the feel of a modern smooth-scroll
// page: wheel, touch, and keyboard input are normalized into a single
// integrator with inertia and easing, sections report visibility and
// progress as they cross the viewport, parallax elements derive their
// translations from the scroll position, and an optional snap mechanism
// settles the view onto the nearest section.
//
// # Quick start
//
// Create an [Engine], report your viewport size, and drive it from an
// [ebiten.Game]:
//
//	type Game struct{ scroll *drift.Engine }
//
//	func (g *Game) Update() error { g.scroll.Update(); return nil }
//
//	func (g *Game) Draw(screen *ebiten.Image) {
//		offset := g.scroll.State().Current
//		// draw content translated by -offset
//	}
//
//	func (g *Game) Layout(w, h int) (int, int) {
//		g.scroll.SetViewport(float64(w), float64(h))
//		return w, h
//	}
//
//	func main() {
//		game := &Game{scroll: drift.NewEngine(drift.Config{})}
//		ebiten.RunGame(game)
//	}
//
// # Sections
//
// Track content regions to learn when they are on screen and how far they
// have travelled through the viewport:
//
//	hero := engine.Track(drift.StaticRect(drift.Rect{Y: 0, Height: 900}),
//		drift.SectionOptions{Name: "hero"})
//
//	engine.OnSectionEnter(func(ev drift.SectionEvent) {
//		log.Println("visible:", ev.Section.Name)
//	})
//
// The engine derives the scrollable length from tracked sections unless
// [Engine.SetContentLength] sets it explicitly.
//
// # Parallax and snapping
//
// [Engine.TrackElement] registers decorative regions whose translation is
// recomputed every tick; [Config.Snap] makes the view glide onto the
// nearest section (eased via [gween]) whenever scrolling comes to rest.
//
// # Driving without a device
//
// The engine polls Ebitengine's wheel, touch, and keyboard state, but
// nothing requires a real device: [Engine.AddDelta] and [Engine.ScrollTo]
// move the view programmatically, the Inject methods queue synthetic
// input, and [ScriptRunner] replays whole JSON gesture scripts
// tick-by-tick. Non-Ebitengine hosts (a terminal UI, for example) disable
// polling with [Config.DisableInput] and feed input themselves.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package drift
