// Package pixelcafe drives a scripted sequence of animated pixel-art scenes
// (outside → inside → focused) joined by timed transitions, rendered at a
// fixed logical resolution and integer-scaled for display.
//
// The package is the pure core: it decodes scene assets, runs the scene
// state machine, composes frames and routes input. It has no display
// dependency. The display subpackage presents frames in an [Ebitengine]
// window and the audio subpackage plays cues through [beep].
//
// # Quick start
//
// Build a [Config], load the scenes and drive a [RenderLoop]:
//
//	cfg, err := pixelcafe.LoadConfig("pixelcafe.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	loader := pixelcafe.NewSequenceLoader(cfg.Loop, nil)
//	scenes := pixelcafe.Scenes{
//		Outside: loader.Load(cfg.Assets.Outside),
//		Inside:  loader.LoadWithFallback(cfg.Assets.Inside, cfg.Assets.InsideFallback),
//		Focused: loader.Load(cfg.Assets.Focused),
//	}
//	loop := pixelcafe.NewRenderLoop(cfg, scenes)
//	frame, err := loop.Tick()
//
// [RenderLoop.Run] schedules ticks at the configured FPS ceiling for
// headless use; a windowed host calls [RenderLoop.Tick] from its own update.
//
// # Scenes and transitions
//
// A [StateMachine] owns the current [SceneState] and walks an explicit
// transition table. Clicking the outside scene starts a crossfade to the
// inside scene; the focus trigger starts either a crossfade or a torn-page
// reveal to the focused scene. Transitions are counted in ticks and always
// run to completion unless forced.
//
// Missing or corrupt assets never stop playback: the [Compositor] draws a
// flat placeholder, or a tinted and vignetted copy of the inside scene when
// the focused scene is missing.
//
// # Coordinates
//
// All hit testing works in logical pixels. [CoordinateMapper] converts device
// pixels by integer division with the session's display scale.
//
// # Scripted playback
//
// A JSON script of click, move, key, fade, focus, escape, force, wait and
// screenshot steps replays a session deterministically:
//
//	{"steps": [
//		{"action": "click", "x": 60, "y": 60},
//		{"action": "wait", "state": "inside"},
//		{"action": "screenshot", "label": "inside"}
//	]}
//
// [Ebitengine]: https://ebitengine.org
// [beep]: https://github.com/gopxl/beep
package pixelcafe
