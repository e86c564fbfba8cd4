package ecs

import (
	"testing"

	"github.com/phanxgames/dotswarm"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func testEngine(t *testing.T) *dotswarm.Engine {
	t.Helper()
	cat, err := dotswarm.NewCatalog(
		dotswarm.Formation{Name: "a", Points: []dotswarm.Point{{X: 1, Y: 1}, {X: 2, Y: 2}}},
		dotswarm.Formation{Name: "b", Points: []dotswarm.Point{{X: 5, Y: 5}, {X: 6, Y: 6}}, Color: dotswarm.Color{R: 255}},
	)
	if err != nil {
		t.Fatal(err)
	}
	return dotswarm.NewEngine(cat, dotswarm.EngineConfig{
		Width: 10, Height: 10, Duration: 4, MaxDelay: 2,
	}, dotswarm.NewRand(1))
}

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []dotswarm.TransitionEvent
	TransitionEventType.Subscribe(world, func(w donburi.World, e dotswarm.TransitionEvent) {
		received = append(received, e)
	})

	sink.EmitEvent(dotswarm.TransitionEvent{Type: dotswarm.EventTransitionStarted, Formation: 2, Name: "logo", Dots: 40})
	sink.EmitEvent(dotswarm.TransitionEvent{Type: dotswarm.EventTransitionSettled, Formation: 2, Frame: 659})

	// Events are queued until processed.
	TransitionEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.Type != dotswarm.EventTransitionStarted || e.Name != "logo" || e.Dots != 40 {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.Type != dotswarm.EventTransitionSettled || e.Frame != 659 {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiSink_ImplementsEventSink(t *testing.T) {
	world := donburi.NewWorld()
	var sink dotswarm.EventSink = NewDonburiSink(world)
	_ = sink // compile-time interface check
}

func TestDonburiSink_EngineLifecycle(t *testing.T) {
	world := donburi.NewWorld()
	e := testEngine(t)
	e.SetEventSink(NewDonburiSink(world))

	var types []dotswarm.EventType
	TransitionEventType.Subscribe(world, func(w donburi.World, ev dotswarm.TransitionEvent) {
		types = append(types, ev.Type)
	})

	if err := e.BeginTransition(1); err != nil {
		t.Fatal(err)
	}
	for !e.AdvanceFrame() {
	}
	// Further frames after settling must not repeat the settled event.
	e.AdvanceFrame()
	events.ProcessAllEvents(world)

	if len(types) != 2 {
		t.Fatalf("got %d events, want 2", len(types))
	}
	if types[0] != dotswarm.EventTransitionStarted || types[1] != dotswarm.EventTransitionSettled {
		t.Errorf("event order = %v, want [started settled]", types)
	}
}
