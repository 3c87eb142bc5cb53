package curve

import "github.com/gogpu/gg"

var (
	start = gg.Pt(0, 0)
	end   = gg.Pt(1, 1)
)

// Bezier is an ease curve from (0,0) to (1,1) shaped by P1 and P2.
// It is a value type; changing a control point means building a new Solver.
type Bezier struct {
	P1, P2 gg.Point
}

// Presets used as default interpolation for numeric properties.
var (
	EaseLinear = NewBezier(1.0/3, 1.0/3, 2.0/3, 2.0/3)
	EaseLow    = NewBezier(0.25, 0.1, 0.75, 0.9)
	EaseMedium = NewBezier(0.42, 0, 0.58, 1)
	EaseHigh   = NewBezier(0.6, 0, 0.4, 1)
)

// NewBezier creates an ease curve with control points (x1, y1) and (x2, y2).
func NewBezier(x1, y1, x2, y2 float64) Bezier {
	return Bezier{P1: gg.Pt(x1, y1), P2: gg.Pt(x2, y2)}
}

// Cubic returns the full four-point curve.
func (b Bezier) Cubic() gg.CubicBez {
	return gg.NewCubicBez(start, b.P1, b.P2, end)
}

// Solve returns the raw curve point at parameter t in [0, 1].
func (b Bezier) Solve(t float64) gg.Point {
	return b.Cubic().Eval(t)
}

// InUnitSquare reports whether both control points lie inside [0,1]x[0,1].
// Only such curves are guaranteed to have a monotonic X component.
func (b Bezier) InUnitSquare() bool {
	return in01(b.P1.X) && in01(b.P1.Y) && in01(b.P2.X) && in01(b.P2.Y)
}

func in01(v float64) bool { return v >= 0 && v <= 1 }
