package ecs

import (
	"context"

	"github.com/phanxgames/pose"
	"github.com/phanxgames/pose/player"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// NotificationEventType is the Donburi event type for document
// notifications. Subscribe to this in your ECS systems to react to edits.
var NotificationEventType = events.NewEventType[pose.Notification]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates a pose.Sink backed by a Donburi world.
// Notifications are published to NotificationEventType and can be consumed
// with events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) pose.Sink {
	return &donburiSink{world: world}
}

func (s *donburiSink) Notify(n pose.Notification) {
	NotificationEventType.Publish(s.world, n)
}

// InstanceData attaches a playing rig instance to an entity.
type InstanceData struct {
	Instance *player.Instance
}

// InstanceComponent marks entities animated by UpdateInstances.
var InstanceComponent = donburi.NewComponentType[InstanceData]()

var instanceQuery = donburi.NewQuery(filter.Contains(InstanceComponent))

// SpawnInstance creates an entity playing clip of rig. A negative clip
// leaves the instance at the design pose.
func SpawnInstance(world donburi.World, rig *player.Rig, clip int) donburi.Entity {
	in := player.NewInstance(rig)
	in.Play(clip)
	e := world.Create(InstanceComponent)
	InstanceComponent.SetValue(world.Entry(e), InstanceData{Instance: in})
	return e
}

// UpdateInstances advances every instance in world by dt seconds, spread
// over at most workers goroutines.
func UpdateInstances(ctx context.Context, world donburi.World, dt float64, workers int) error {
	instances := make([]*player.Instance, 0, instanceQuery.Count(world))
	instanceQuery.Each(world, func(e *donburi.Entry) {
		if in := InstanceComponent.Get(e).Instance; in != nil {
			instances = append(instances, in)
		}
	})
	return player.UpdateAll(ctx, instances, dt, workers)
}
