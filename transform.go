package pose

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Matrix is a 2D affine transform stored as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Matrix [6]float64

// Identity is the identity transform.
var Identity = Matrix{1, 0, 0, 1, 0, 0}

// NewMatrix builds Translate(tx, ty) * Rotate(rotation) * Scale(scale).
func NewMatrix(tx, ty, rotation, scale float64) Matrix {
	sin, cos := math.Sincos(rotation)
	return Matrix{cos * scale, sin * scale, -sin * scale, cos * scale, tx, ty}
}

// Multiply returns m * c, which applies c first.
func (m Matrix) Multiply(c Matrix) Matrix {
	return Matrix{
		m[0]*c[0] + m[2]*c[1],
		m[1]*c[0] + m[3]*c[1],
		m[0]*c[2] + m[2]*c[3],
		m[1]*c[2] + m[3]*c[3],
		m[0]*c[4] + m[2]*c[5] + m[4],
		m[1]*c[4] + m[3]*c[5] + m[5],
	}
}

// Invert returns the inverse of m. ok is false when m is singular.
func (m Matrix) Invert() (inv Matrix, ok bool) {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return Identity, false
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Matrix{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}, true
}

// Apply transforms a point.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// Translation returns the translation column.
func (m Matrix) Translation() Vec2 { return Vec2{m[4], m[5]} }

// GeoM converts m for drawing with ebiten.
func (m Matrix) GeoM() ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(0, 1, m[2])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 0, m[1])
	g.SetElement(1, 1, m[3])
	g.SetElement(1, 2, m[5])
	return g
}

// Transformation is a node's local and world transform.
//
// GlobalRotation is the plain sum of rotations up the parent chain rather
// than an angle decomposed from Global. The two agree while nodes carry no
// shear or non-uniform scale.
type Transformation struct {
	Local          Matrix
	Global         Matrix
	Rotation       float64
	GlobalRotation float64
}

// NewTransformation composes a local transform with an optional parent.
func NewTransformation(translation Vec2, rotation, scale float64, parent *Transformation) Transformation {
	local := NewMatrix(translation.X, translation.Y, rotation, scale)
	t := Transformation{Local: local, Global: local, Rotation: rotation, GlobalRotation: rotation}
	if parent != nil {
		t.Global = parent.Global.Multiply(local)
		t.GlobalRotation += parent.GlobalRotation
	}
	return t
}

// Transformation resolves a node's transform by walking to the root. The
// result is built fresh on every call from the node's resolved values.
func (d *Document) Transformation(id ID) Transformation {
	var chain []ID
	for p := id; p != 0; p = d.mustNode(p).parent {
		chain = append(chain, p)
	}
	var t Transformation
	var parent *Transformation
	for i := len(chain) - 1; i >= 0; i-- {
		n := chain[i]
		t = NewTransformation(
			Vec2{d.Value(n, PropertyTranslationX), d.Value(n, PropertyTranslationY)},
			d.Value(n, PropertyRotationAngle), 1, parent)
		parent = &t
	}
	return t
}

// CorrectLocal solves the local translation and rotation that keep a node
// at global when its parent's world transform is parent. ok is false when
// parent is singular; callers then leave the local values alone.
func CorrectLocal(global, parent Matrix) (translation Vec2, rotation float64, ok bool) {
	inv, ok := parent.Invert()
	if !ok {
		return Vec2{}, 0, false
	}
	local := inv.Multiply(global)
	scale := math.Hypot(local[0], local[1])
	if scale == 0 {
		return local.Translation(), 0, true
	}
	cos := math.Max(-1, math.Min(1, local[0]/scale))
	rotation = math.Acos(cos)
	if local[1] < 0 {
		rotation = -rotation
	}
	return local.Translation(), rotation, true
}
