package player

import (
	"math"

	"github.com/phanxgames/pose/curve"
)

// CurveKind selects how a segment blends From into To.
type CurveKind uint8

const (
	CurveHold CurveKind = iota
	CurveLinear
	CurveBezier
)

// Segment is a precompiled interpolation window.
//
// The segment answers for times in [Start, End). The blend fraction is
// measured from Origin over Span, which differs from the lookup window only
// for the part of a loop's wrap segment that falls before the first key.
type Segment struct {
	Start, End   float64
	Origin, Span float64
	From, To     float64
	Kind         CurveKind
	Solver       *curve.Solver
}

// Contains reports whether t falls in the segment's lookup window.
func (s *Segment) Contains(t float64) bool {
	return t >= s.Start && t < s.End
}

// Value returns the interpolated value at time t.
func (s *Segment) Value(t float64) float64 {
	if s.Kind == CurveHold || s.Span <= 0 {
		return s.From
	}
	x := (t - s.Origin) / s.Span
	if x <= 0 {
		return s.From
	}
	if x >= 1 {
		return s.To
	}
	y := x
	if s.Kind == CurveBezier && s.Solver != nil {
		y = s.Solver.SolveYAtX(x)
	}
	return s.From*(1-y) + s.To*y
}

// Keyframe is the exporter's view of one key.
type Keyframe struct {
	Frame int
	Value float64
	Kind  CurveKind
	Curve curve.Bezier
}

// Timing carries the frame range and rate of a clip.
type Timing struct {
	BeginFrame int
	EndFrame   int
	FPS        float64
	Loop       bool
}

// Duration returns the clip length in seconds. Looping clips reserve one
// extra frame so the last frame can blend back into the first.
func (t Timing) Duration() float64 {
	frames := t.EndFrame - t.BeginFrame
	if t.Loop {
		frames++
	}
	return float64(frames) / t.FPS
}

func (t Timing) seconds(frame int) float64 {
	return float64(frame-t.BeginFrame) / t.FPS
}

// CompileTrack converts keys, ordered by frame, into playback segments.
//
// Non-looping tracks hold the first key's value before it and the last key's
// value forever after it. Looping tracks end with a wrap segment that blends
// the last key back into the first, and reuse that curve for the time before
// the first key.
func CompileTrack(keys []Keyframe, timing Timing, tolerance float64) []Segment {
	if len(keys) == 0 {
		return nil
	}
	solvers := make(map[curve.Bezier]*curve.Solver)
	solverFor := func(k Keyframe) *curve.Solver {
		if k.Kind != CurveBezier {
			return nil
		}
		s, ok := solvers[k.Curve]
		if !ok {
			s = curve.NewSolverTolerance(k.Curve, tolerance)
			solvers[k.Curve] = s
		}
		return s
	}

	first, last := keys[0], keys[len(keys)-1]
	t0, tn := timing.seconds(first.Frame), timing.seconds(last.Frame)
	segs := make([]Segment, 0, len(keys)+1)

	var wrap Segment
	if timing.Loop {
		d := timing.Duration()
		wrap = Segment{
			Start:  tn,
			End:    d,
			Origin: tn,
			Span:   d - tn + t0,
			From:   last.Value,
			To:     first.Value,
			Kind:   last.Kind,
			Solver: solverFor(last),
		}
		if len(keys) == 1 {
			wrap.Kind, wrap.Solver = CurveHold, nil
		}
		if t0 > 0 {
			lead := wrap
			lead.Start, lead.End = 0, t0
			lead.Origin = tn - d
			segs = append(segs, lead)
		}
	} else {
		segs = append(segs, Segment{
			Start: -math.MaxFloat64,
			End:   t0,
			From:  first.Value,
			To:    first.Value,
			Kind:  CurveHold,
		})
	}

	for i := 0; i+1 < len(keys); i++ {
		a, b := keys[i], keys[i+1]
		ta, tb := timing.seconds(a.Frame), timing.seconds(b.Frame)
		segs = append(segs, Segment{
			Start:  ta,
			End:    tb,
			Origin: ta,
			Span:   tb - ta,
			From:   a.Value,
			To:     b.Value,
			Kind:   a.Kind,
			Solver: solverFor(a),
		})
	}

	if timing.Loop {
		segs = append(segs, wrap)
	} else {
		segs = append(segs, Segment{
			Start: tn,
			End:   math.MaxFloat64,
			From:  last.Value,
			To:    last.Value,
			Kind:  CurveHold,
		})
	}
	return segs
}

// sample returns the track value at t, advancing *cursor forward (with
// wraparound) until it reaches the segment containing t.
func sample(segs []Segment, t float64, cursor *int) float64 {
	n := len(segs)
	i := *cursor
	if i < 0 || i >= n {
		i = 0
	}
	for range n {
		s := &segs[i]
		if s.Contains(t) {
			*cursor = i
			return s.Value(t)
		}
		i++
		if i == n {
			i = 0
		}
	}
	if t < segs[0].Start {
		return segs[0].From
	}
	return segs[n-1].Value(t)
}
