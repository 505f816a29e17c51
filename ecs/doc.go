// Package ecs provides ECS adapters for lumen.
//
// [NewDonburiStore] forwards effect milestones (reveals, counters, navbar
// and theme changes) into a Donburi world as events, so game-style systems
// can react to the page without holding references to its elements:
//
//	world := donburi.NewWorld()
//	landing.SetEventStore(ecs.NewDonburiStore(world))
//	ecs.EffectEventType.Subscribe(world, func(w donburi.World, e lumen.EffectEvent) {
//		// ...
//	})
//	// once per frame, after landing.Tick:
//	ecs.EffectEventType.ProcessEvents(world)
package ecs
