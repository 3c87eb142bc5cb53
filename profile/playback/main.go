// Profiling:
// go build ./profile/playback
// go tool pprof -http=":8000" -nodefraction=0.001 ./playback cpu.pprof

package main

import (
	"context"
	"fmt"
	"log"

	"github.com/pkg/profile"

	"github.com/phanxgames/pose"
	"github.com/phanxgames/pose/player"
)

func main() {
	rounds := 20
	frames := 600
	instances := 2000
	rig, err := buildRig(64)
	if err != nil {
		log.Fatal(err)
	}
	p := profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	if err := run(rig, rounds, frames, instances); err != nil {
		log.Fatal(err)
	}
	p.Stop()
}

func run(rig *player.Rig, rounds, frames, numInstances int) error {
	ctx := context.Background()
	for range rounds {
		list := make([]*player.Instance, numInstances)
		for i := range list {
			list[i] = player.NewInstance(rig)
			list[i].Play(i % len(rig.Clips))
		}
		for range frames {
			if err := player.UpdateAll(ctx, list, 1.0/60, 0); err != nil {
				return err
			}
		}
	}
	return nil
}

// buildRig authors chains of ten bones with keys on every channel.
func buildRig(bones int) (*player.Rig, error) {
	ed := pose.NewEditor()
	ids := make([]pose.ID, 0, bones)
	parent := pose.ID(0)
	for i := range bones {
		if i%10 == 0 {
			parent = 0
		}
		id, err := ed.AddNode(pose.NodeTypeBone, fmt.Sprintf("bone_%d", i), parent)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
		parent = id
	}
	if _, err := ed.AddAnimation(pose.AnimationSettings{Name: "loop", EndFrame: 90, FPS: 30, Loop: true}); err != nil {
		return nil, err
	}
	ed.SetMode(pose.ModeAnimate)
	for _, anim := range ed.Document().Animations() {
		if err := ed.SelectAnimation(anim); err != nil {
			return nil, err
		}
		for i, id := range ids {
			for f := 0; f <= 60; f += 15 {
				v := float64(f*(i+1)) / 100
				for _, p := range []pose.PropertyType{pose.PropertyTranslationX, pose.PropertyRotationAngle, pose.PropertyBoneLength} {
					if _, err := ed.SetKey(id, p, f, v); err != nil {
						return nil, err
					}
				}
			}
		}
	}
	return ed.Document().Export(), nil
}
