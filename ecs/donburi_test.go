package ecs

import (
	"context"
	"testing"

	"github.com/phanxgames/pose"
	"github.com/phanxgames/pose/player"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_PublishesEditorNotifications(t *testing.T) {
	world := donburi.NewWorld()

	var received []pose.Notification
	NotificationEventType.Subscribe(world, func(w donburi.World, n pose.Notification) {
		received = append(received, n)
	})

	ed := pose.NewEditor(pose.WithSink(NewDonburiSink(world)))
	id, err := ed.AddNode(pose.NodeTypeSprite, "hero", 0)
	if err != nil {
		t.Fatal(err)
	}

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("expected queued events, got %d delivered", len(received))
	}
	NotificationEventType.ProcessEvents(world)

	var added, history bool
	for _, n := range received {
		switch n := n.(type) {
		case pose.NodeAddedNotice:
			added = n.Node == id
		case pose.HistoryChanged:
			history = n.Version == 1
		}
	}
	if !added || !history {
		t.Errorf("missing notices in %+v", received)
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	NotificationEventType.Subscribe(world, func(w donburi.World, n pose.Notification) {
		count1++
	})
	NotificationEventType.Subscribe(world, func(w donburi.World, n pose.Notification) {
		count2++
	})

	sink.Notify(pose.ModeChanged{Mode: pose.ModeAnimate})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func testRig(t *testing.T) *player.Rig {
	t.Helper()
	ed := pose.NewEditor()
	bone, err := ed.AddNode(pose.NodeTypeBone, "bone", 0)
	if err != nil {
		t.Fatal(err)
	}
	ed.SetMode(pose.ModeAnimate)
	if _, err := ed.SetKey(bone, pose.PropertyTranslationX, 0, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := ed.SetKey(bone, pose.PropertyTranslationX, 30, 30); err != nil {
		t.Fatal(err)
	}
	first := ed.Document().CurrentAnimation()
	pa, _ := ed.Document().FindPropertyAnimation(first.ID(), bone, pose.PropertyTranslationX)
	if err := ed.SetKeyInterpolation(pa.Keys()[0].ID(), pose.Linear()); err != nil {
		t.Fatal(err)
	}
	return ed.Document().Export()
}

func TestUpdateInstances(t *testing.T) {
	world := donburi.NewWorld()
	rig := testRig(t)
	var entities []donburi.Entity
	for range 5 {
		entities = append(entities, SpawnInstance(world, rig, 0))
	}
	still := SpawnInstance(world, rig, -1)

	if err := UpdateInstances(context.Background(), world, 0.5, 2); err != nil {
		t.Fatal(err)
	}
	for _, e := range entities {
		in := InstanceComponent.Get(world.Entry(e)).Instance
		if in.Time() != 0.5 {
			t.Errorf("entity %v time = %v", e, in.Time())
		}
		// 0.5s at 30 fps is frame 15, halfway between the keys.
		if v := in.Value(0, player.ChannelTranslationX); v < 14.999 || v > 15.001 {
			t.Errorf("entity %v value = %v, want 15", e, v)
		}
	}
	if in := InstanceComponent.Get(world.Entry(still)).Instance; in.Time() != 0 {
		t.Errorf("design-pose instance advanced to %v", in.Time())
	}
}

func TestUpdateInstancesCanceled(t *testing.T) {
	world := donburi.NewWorld()
	SpawnInstance(world, testRig(t), 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := UpdateInstances(ctx, world, 0.1, 1); err == nil {
		t.Error("expected cancellation error")
	}
}
