// Package ecs provides ECS adapters for pose documents and rig playback.
//
// [NewDonburiSink] bridges document notifications (node, key, frame and
// history changes) into a [Donburi] world as typed events. Subscribe to
// [NotificationEventType] in your ECS systems to receive them.
//
// [InstanceComponent] attaches a [player.Instance] to an entity, and
// [UpdateInstances] advances all of them in parallel once per tick.
//
// Usage:
//
//	ed := pose.NewEditor(pose.WithSink(ecs.NewDonburiSink(world)))
//	ecs.SpawnInstance(world, ed.Document().Export(), 0)
//	ecs.UpdateInstances(ctx, world, 1.0/60, 4)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
