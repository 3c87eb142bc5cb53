package player

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/pose/internal/logging"
)

// crossFade blends a frozen snapshot of the previous pose into the pose of
// the newly started clip. The blend weight is driven by a gween tween so any
// ease function can shape the transition.
type crossFade struct {
	tween  *gween.Tween
	from   []float64
	weight float64
	active bool
}

func (f *crossFade) stop() {
	f.active = false
	f.tween = nil
	f.weight = 1
}

// update advances the tween by dt and blends the snapshot into values.
func (f *crossFade) update(dt float64, values []float64) {
	w, done := f.tween.Update(float32(dt))
	f.weight = float64(w)
	for i, v := range values {
		if Channel(i%int(ChannelCount)) == ChannelVisibility {
			if f.weight < 0.5 {
				values[i] = f.from[i]
			}
			continue
		}
		values[i] = f.from[i]*(1-f.weight) + v*f.weight
	}
	if done {
		f.stop()
	}
}

// CrossFade starts clip from time zero and blends from the current pose to
// it over duration seconds using fn. A non-positive duration behaves like
// Play.
func (in *Instance) CrossFade(clip int, duration float32, fn ease.TweenFunc) {
	if duration <= 0 || fn == nil {
		in.Play(clip)
		return
	}
	copy(in.fade.from, in.values)
	in.fade.tween = gween.New(0, 1, duration, fn)
	in.fade.weight = 0
	in.fade.active = true
	in.start(clip)
	in.evaluate()
	in.fade.update(0, in.values)
	in.updateTransforms()
	logging.Logger().Debug("player: crossfade", "clip", clip, "duration", duration)
}

// Fading reports whether a crossfade is in progress.
func (in *Instance) Fading() bool { return in.fade.active }

// FadeWeight returns the weight of the current clip in an active crossfade,
// or 1 when no crossfade is running.
func (in *Instance) FadeWeight() float64 {
	if !in.fade.active {
		return 1
	}
	return in.fade.weight
}
