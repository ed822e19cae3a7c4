// Package ecs provides ECS adapters for glide's event stream.
//
// The primary adapter is [NewDonburiStore], which bridges scroll, resize and
// call events into a [Donburi] world as typed events. Subscribe to
// [EventType] for the full stream, or to [CallEventType] for trigger calls
// only.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scroller.SetEventStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
