package ecs

import (
	"github.com/phanxgames/glide"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EventType is the Donburi event type carrying every glide event.
var EventType = events.NewEventType[glide.Event]()

// CallEventType is the Donburi event type for trigger call events only.
// Systems that react to elements entering or leaving view subscribe here.
var CallEventType = events.NewEventType[glide.CallEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world.
// Events are queued on EventType (and CallEventType for calls) and delivered
// by ProcessEvents or events.ProcessAllEvents.
func NewDonburiStore(world donburi.World) glide.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event glide.Event) {
	EventType.Publish(s.world, event)
	if event.Type == glide.EventCall {
		CallEventType.Publish(s.world, event.Call)
	}
}
