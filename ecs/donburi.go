package ecs

import (
	"github.com/phanxgames/lumen"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EffectEventType is the Donburi event type for lumen effect events.
// Subscribe to this in your ECS systems to receive reveal, counter, navbar
// and theme milestones.
var EffectEventType = events.NewEventType[lumen.EffectEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world.
// Events are published to EffectEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) lumen.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event lumen.EffectEvent) {
	EffectEventType.Publish(s.world, event)
}
