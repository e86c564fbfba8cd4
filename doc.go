// Package dotswarm morphs a fixed population of dots between shapes sampled
// from images.
//
// Each formation image is scanned on a grid and every sufficiently dark pixel
// becomes a target point. The point sets are shuffled and truncated to a common
// size N, so dot i always has exactly one target in every formation. An
// [Engine] then animates the dots from wherever they are toward the points of
// the requested formation, each dot starting after its own random delay and
// following an eased path while it fades in and shifts color.
//
// # Quick start
//
//	rng := dotswarm.NewRand(42)
//	provider := dotswarm.FileImageProvider{Width: 800, Height: 600}
//	cat, err := dotswarm.BuildCatalog(ctx, rng, provider, sources, 200)
//	if err != nil {
//		// *dotswarm.ResourceError names the image that failed
//	}
//	engine := dotswarm.NewEngine(cat, dotswarm.EngineConfig{
//		Width: 800, Height: 600, Duration: 600, MaxDelay: 60,
//	}, rng)
//
//	engine.BeginNext()
//	for !engine.AdvanceFrame() {
//		dots := engine.Snapshot(buf[:0])
//		// draw dots
//	}
//
// # Timeline
//
// A transition begun with [Engine.BeginTransition] resets the frame counter.
// Each [Engine.AdvanceFrame] moves it forward by one. A dot with delay d
// stays still while frame < d, animates for Duration frames and then rests
// exactly on its target. AdvanceFrame returns true once every dot rests.
// Beginning a new transition mid-flight retargets each dot from its current
// position, opacity and color, so nothing jumps.
//
// # Concurrency
//
// All Engine methods are safe for concurrent use. A driver may start
// transitions from an input goroutine while another goroutine advances
// frames and takes snapshots.
//
// # Drivers
//
// The engine does not draw. The cmd/dotswarm binary plays a configured show
// in an [Ebitengine] window or a terminal, and package frames renders
// snapshots to PNG files. Transition events can be forwarded into a
// [Donburi] world with package ecs.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package dotswarm
