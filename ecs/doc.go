// Package ecs bridges dotswarm transition events into an ECS world.
//
// [NewDonburiSink] publishes every [dotswarm.TransitionEvent] (transition
// started, transition settled) to a [Donburi] world as a typed event.
// Subscribe to [TransitionEventType] in your systems to react to them:
//
//	sink := ecs.NewDonburiSink(world)
//	engine.SetEventSink(sink)
//	ecs.TransitionEventType.Subscribe(world, onTransition)
//	// once per tick:
//	ecs.TransitionEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
