package player

import (
	"context"
	"testing"

	"github.com/phanxgames/pose/curve"
)

// benchRig builds a chain of bones, each with rotation and translation
// tracks, so evaluation and transform composition both get exercised.
func benchRig(bones int) *Rig {
	timing := Timing{BeginFrame: 0, EndFrame: 59, FPS: 60, Loop: true}
	keys := []Keyframe{
		{Frame: 0, Value: 0, Kind: CurveBezier, Curve: curve.EaseLow},
		{Frame: 20, Value: 0.6, Kind: CurveBezier, Curve: curve.EaseMedium},
		{Frame: 40, Value: -0.6, Kind: CurveLinear},
	}
	r := &Rig{}
	clip := Clip{Name: "bench", Timing: timing, Duration: timing.Duration()}
	for i := range bones {
		n := Node{Kind: KindBone, Parent: i - 1}
		n.Design[ChannelTranslationX] = 20
		n.Design[ChannelVisibility] = 1
		r.Nodes = append(r.Nodes, n)
		r.DrawOrder = append(r.DrawOrder, i)
		clip.Tracks = append(clip.Tracks,
			Track{Node: i, Channel: ChannelRotation, Segments: CompileTrack(keys, timing, curve.DefaultTolerance)},
			Track{Node: i, Channel: ChannelTranslationY, Segments: CompileTrack(keys, timing, curve.DefaultTolerance)},
		)
	}
	r.Clips = []Clip{clip}
	return r
}

func BenchmarkInstanceUpdate(b *testing.B) {
	in := NewInstance(benchRig(32))
	in.Play(0)
	b.ReportAllocs()
	for b.Loop() {
		in.Update(1.0 / 60)
	}
}

func BenchmarkInstanceSeek(b *testing.B) {
	in := NewInstance(benchRig(32))
	in.Play(0)
	b.ReportAllocs()
	t := 0.0
	for b.Loop() {
		t += 0.37
		in.Seek(t)
	}
}

func BenchmarkUpdateAll1000(b *testing.B) {
	rig := benchRig(16)
	instances := make([]*Instance, 1000)
	for i := range instances {
		instances[i] = NewInstance(rig)
		instances[i].Play(0)
	}
	ctx := context.Background()
	b.ReportAllocs()
	for b.Loop() {
		_ = UpdateAll(ctx, instances, 1.0/60, 0)
	}
}
