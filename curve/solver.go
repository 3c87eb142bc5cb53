package curve

import (
	"math"

	"github.com/gogpu/gg"
)

// DefaultTolerance is the maximum |X(t)-x| accepted by SolveYAtX.
const DefaultTolerance = 0.002

const (
	tableSize     = 16
	maxIterations = 32
)

// Solver finds Y for a given X on a Bezier ease curve.
//
// A coarse table of X values at uniform t is built once; each query brackets
// x in the table and refines with Newton steps, falling back to bisection
// whenever a step leaves the bracket. Iterations are capped so degenerate
// curves terminate.
type Solver struct {
	curve     Bezier
	cubic     gg.CubicBez
	deriv     gg.QuadBez
	tolerance float64
	table     [tableSize]float64
}

// NewSolver builds a solver with DefaultTolerance.
func NewSolver(b Bezier) *Solver {
	return NewSolverTolerance(b, DefaultTolerance)
}

// NewSolverTolerance builds a solver with the given tolerance. A tolerance
// that is not positive is replaced by DefaultTolerance.
func NewSolverTolerance(b Bezier, tolerance float64) *Solver {
	if !(tolerance > 0) {
		tolerance = DefaultTolerance
	}
	c := b.Cubic()
	s := &Solver{
		curve:     b,
		cubic:     c,
		deriv:     c.Deriv(),
		tolerance: tolerance,
	}
	for i := range s.table {
		s.table[i] = c.Eval(float64(i) / (tableSize - 1)).X
	}
	return s
}

// Curve returns the curve this solver was built for.
func (s *Solver) Curve() Bezier { return s.curve }

// Tolerance returns the X tolerance used by SolveYAtX.
func (s *Solver) Tolerance() float64 { return s.tolerance }

// SolveYAtX returns Y at the parameter t where X(t) is within tolerance of x.
// x <= 0 returns exactly 0 and x >= 1 returns exactly 1.
func (s *Solver) SolveYAtX(x float64) float64 {
	if x <= 0 || math.IsNaN(x) {
		return 0
	}
	if x >= 1 {
		return 1
	}

	lo, hi, t := s.bracket(x)
	for range maxIterations {
		p := s.cubic.Eval(t)
		dx := p.X - x
		if math.Abs(dx) < s.tolerance {
			return p.Y
		}
		if dx < 0 {
			lo = t
		} else {
			hi = t
		}
		next := (lo + hi) / 2
		if d := s.deriv.Eval(t).X; d != 0 {
			if n := t - dx/d; n > lo && n < hi {
				next = n
			}
		}
		t = next
	}
	return s.cubic.Eval(t).Y
}

// bracket returns a t interval whose X range contains x, plus a starting
// guess interpolated linearly inside it.
func (s *Solver) bracket(x float64) (lo, hi, guess float64) {
	const step = 1.0 / (tableSize - 1)
	for i := 0; i < tableSize-1; i++ {
		x0, x1 := s.table[i], s.table[i+1]
		if x >= x0 && x <= x1 {
			lo = float64(i) * step
			hi = lo + step
			if x1 > x0 {
				return lo, hi, lo + step*(x-x0)/(x1-x0)
			}
			return lo, hi, (lo + hi) / 2
		}
	}
	// X is not monotonic for this curve; search the whole parameter range.
	return 0, 1, x
}
