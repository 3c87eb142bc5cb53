package player

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Instance is one playing copy of a rig. It owns every array it writes, so
// separate instances never share mutable state.
type Instance struct {
	rig     *Rig
	clip    int
	time    float64
	playing bool

	values  []float64 // len(rig.Nodes) * ChannelCount
	cursors []int     // one per track of the current clip
	world   []ebiten.GeoM
	visible []bool

	fade crossFade
}

// NewInstance creates an instance at the rig's design pose with no clip
// playing.
func NewInstance(r *Rig) *Instance {
	n := len(r.Nodes)
	in := &Instance{
		rig:     r,
		clip:    -1,
		values:  make([]float64, n*int(ChannelCount)),
		cursors: make([]int, r.maxTracks()),
		world:   make([]ebiten.GeoM, n),
		visible: make([]bool, n),
	}
	in.fade.from = make([]float64, len(in.values))
	in.evaluate()
	return in
}

// Rig returns the rig this instance plays.
func (in *Instance) Rig() *Rig { return in.rig }

// Clip returns the index of the current clip, or -1.
func (in *Instance) Clip() int { return in.clip }

// Time returns the playback position in seconds.
func (in *Instance) Time() float64 { return in.time }

// Playing reports whether Update advances time.
func (in *Instance) Playing() bool { return in.playing }

// Play starts the clip at index from time zero and cancels any crossfade.
// A negative index stops playback and restores the design pose.
func (in *Instance) Play(clip int) {
	in.fade.stop()
	in.start(clip)
	in.evaluate()
}

func (in *Instance) start(clip int) {
	if clip < 0 || clip >= len(in.rig.Clips) {
		in.clip = -1
		in.playing = false
	} else {
		in.clip = clip
		in.playing = true
	}
	in.time = 0
	clear(in.cursors)
}

// Stop freezes playback at the current time.
func (in *Instance) Stop() { in.playing = false }

// Resume continues playback from the current time.
func (in *Instance) Resume() { in.playing = in.clip >= 0 }

// Update advances playback by dt seconds and re-evaluates the pose.
// Looping clips wrap; other clips freeze on their last frame.
func (in *Instance) Update(dt float64) {
	if in.playing {
		in.time = in.wrap(in.time + dt)
	}
	in.evaluate()
	if in.fade.active {
		in.fade.update(dt, in.values)
		in.updateTransforms()
	}
}

// Seek jumps to t seconds. Cursors restart from the first segment because
// the forward scan only pays off for sequential playback.
func (in *Instance) Seek(t float64) {
	in.time = in.wrap(t)
	clear(in.cursors)
	in.evaluate()
}

func (in *Instance) wrap(t float64) float64 {
	if in.clip < 0 {
		return 0
	}
	c := &in.rig.Clips[in.clip]
	if c.Duration <= 0 {
		return 0
	}
	if c.Timing.Loop {
		t = math.Mod(t, c.Duration)
		if t < 0 {
			t += c.Duration
		}
		return t
	}
	return min(max(t, 0), c.Duration)
}

// evaluate resets every value to its design value, overwrites animated
// channels from the current clip and recomputes transforms.
func (in *Instance) evaluate() {
	for i := range in.rig.Nodes {
		copy(in.values[i*int(ChannelCount):], in.rig.Nodes[i].Design[:])
	}
	if in.clip >= 0 {
		tracks := in.rig.Clips[in.clip].Tracks
		for k := range tracks {
			tr := &tracks[k]
			if len(tr.Segments) == 0 {
				continue
			}
			in.values[tr.Node*int(ChannelCount)+int(tr.Channel)] = sample(tr.Segments, in.time, &in.cursors[k])
		}
	}
	in.updateTransforms()
}

func (in *Instance) updateTransforms() {
	for i := range in.rig.Nodes {
		n := &in.rig.Nodes[i]
		base := i * int(ChannelCount)

		var g ebiten.GeoM
		g.Rotate(in.values[base+int(ChannelRotation)])
		g.Translate(in.values[base+int(ChannelTranslationX)], in.values[base+int(ChannelTranslationY)])
		vis := in.values[base+int(ChannelVisibility)] >= 0.5
		if n.Parent >= 0 {
			g.Concat(in.world[n.Parent])
			vis = vis && in.visible[n.Parent]
		}
		in.world[i] = g
		in.visible[i] = vis
	}
}

// Value returns the resolved channel value of a node.
func (in *Instance) Value(node int, ch Channel) float64 {
	return in.values[node*int(ChannelCount)+int(ch)]
}

// World returns the node's world transform.
func (in *Instance) World(node int) ebiten.GeoM {
	return in.world[node]
}

// Visible reports whether the node and all its ancestors are visible.
func (in *Instance) Visible(node int) bool {
	return in.visible[node]
}

// DrawOrder returns sprite node indices back to front. The returned slice
// MUST NOT be mutated by the caller.
func (in *Instance) DrawOrder() []int {
	return in.rig.DrawOrder
}

// DrawOptions appends the node's world transform to op.GeoM and reports
// whether the node should be drawn at all.
func (in *Instance) DrawOptions(node int, op *ebiten.DrawImageOptions) bool {
	op.GeoM.Concat(in.world[node])
	return in.visible[node]
}
