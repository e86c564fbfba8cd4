package ecs

import (
	"github.com/phanxgames/dotswarm"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// TransitionEventType is the Donburi event type for dotswarm transition events.
var TransitionEventType = events.NewEventType[dotswarm.TransitionEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on TransitionEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) dotswarm.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event dotswarm.TransitionEvent) {
	TransitionEventType.Publish(s.world, event)
}
