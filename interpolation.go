package pose

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/phanxgames/pose/curve"
	"github.com/phanxgames/pose/player"
)

// InterpolationKind tags the variant stored in an Interpolation.
type InterpolationKind uint8

const (
	InterpolationLinear InterpolationKind = iota
	InterpolationHold
	InterpolationBezier
)

func (k InterpolationKind) String() string {
	switch k {
	case InterpolationLinear:
		return "Linear"
	case InterpolationHold:
		return "Hold"
	case InterpolationBezier:
		return "Bezier"
	}
	return fmt.Sprintf("InterpolationKind(%d)", uint8(k))
}

// ParseInterpolationKind returns the kind named s.
func ParseInterpolationKind(s string) (InterpolationKind, error) {
	switch s {
	case "Linear":
		return InterpolationLinear, nil
	case "Hold":
		return InterpolationHold, nil
	case "Bezier":
		return InterpolationBezier, nil
	}
	return 0, fmt.Errorf("pose: unknown interpolation type %q", s)
}

// Interpolation describes how a key blends into the next one. The zero
// value is Linear. Values are immutable; copies share the Bezier solver.
type Interpolation struct {
	kind  InterpolationKind
	curve curve.Bezier
	cache *solverCache
}

type solverCache struct {
	once   sync.Once
	solver *curve.Solver
}

// Linear blends proportionally to elapsed time.
func Linear() Interpolation { return Interpolation{kind: InterpolationLinear} }

// Hold keeps the left key's value until the next key.
func Hold() Interpolation { return Interpolation{kind: InterpolationHold} }

// Bezier eases along b. The solver is built on first use.
func Bezier(b curve.Bezier) Interpolation {
	return Interpolation{kind: InterpolationBezier, curve: b, cache: &solverCache{}}
}

// Kind returns the variant tag.
func (i Interpolation) Kind() InterpolationKind { return i.kind }

// Curve returns the ease curve; only meaningful for Bezier.
func (i Interpolation) Curve() curve.Bezier { return i.curve }

// Equal reports whether two interpolations describe the same blend.
func (i Interpolation) Equal(o Interpolation) bool {
	if i.kind != o.kind {
		return false
	}
	return i.kind != InterpolationBezier || i.curve == o.curve
}

// CalculateY maps the elapsed fraction x of a segment to the fraction of
// value progress: Hold gives 0, Linear gives x, Bezier solves the curve.
func (i Interpolation) CalculateY(x float64) float64 {
	switch i.kind {
	case InterpolationHold:
		return 0
	case InterpolationLinear:
		return x
	case InterpolationBezier:
		return i.solver().SolveYAtX(x)
	}
	panic(fmt.Sprintf("pose: unknown interpolation kind %d", i.kind))
}

func (i Interpolation) solver() *curve.Solver {
	if i.cache == nil {
		return curve.NewSolver(i.curve)
	}
	i.cache.once.Do(func() {
		i.cache.solver = curve.NewSolver(i.curve)
	})
	return i.cache.solver
}

func (i Interpolation) curveKind() player.CurveKind {
	switch i.kind {
	case InterpolationHold:
		return player.CurveHold
	case InterpolationBezier:
		return player.CurveBezier
	}
	return player.CurveLinear
}

func (i Interpolation) String() string {
	if i.kind == InterpolationBezier {
		return fmt.Sprintf("Bezier(%v, %v)", i.curve.P1, i.curve.P2)
	}
	return i.kind.String()
}

// MarshalText encodes the interpolation as its kind name, followed by the
// control point coordinates x1 y1 x2 y2 for Bezier.
func (i Interpolation) MarshalText() ([]byte, error) {
	switch i.kind {
	case InterpolationLinear, InterpolationHold:
		return []byte(i.kind.String()), nil
	case InterpolationBezier:
		b := []byte(i.kind.String())
		for _, v := range [4]float64{i.curve.P1.X, i.curve.P1.Y, i.curve.P2.X, i.curve.P2.Y} {
			b = append(b, ' ')
			b = strconv.AppendFloat(b, v, 'g', -1, 64)
		}
		return b, nil
	}
	return nil, fmt.Errorf("pose: cannot encode interpolation kind %d", i.kind)
}

// UnmarshalText decodes the form written by MarshalText.
func (i *Interpolation) UnmarshalText(text []byte) error {
	fields := strings.Fields(string(text))
	if len(fields) == 0 {
		return fmt.Errorf("pose: empty interpolation")
	}
	kind, err := ParseInterpolationKind(fields[0])
	if err != nil {
		return err
	}
	want := 1
	if kind == InterpolationBezier {
		want = 5
	}
	if len(fields) != want {
		return fmt.Errorf("pose: interpolation %q has %d fields, want %d", text, len(fields), want)
	}
	switch kind {
	case InterpolationHold:
		*i = Hold()
	case InterpolationBezier:
		var v [4]float64
		for j := range v {
			if v[j], err = strconv.ParseFloat(fields[j+1], 64); err != nil {
				return fmt.Errorf("pose: interpolation %q: %w", text, err)
			}
		}
		*i = Bezier(curve.NewBezier(v[0], v[1], v[2], v[3]))
	default:
		*i = Linear()
	}
	return nil
}
