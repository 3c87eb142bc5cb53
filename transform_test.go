package pose

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want Matrix, tol float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > tol {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// --- Matrix ---

func TestNewMatrixIdentity(t *testing.T) {
	assertMatrix(t, "identity", NewMatrix(0, 0, 0, 1), Identity, epsilon)
}

func TestNewMatrixTranslation(t *testing.T) {
	assertMatrix(t, "translation", NewMatrix(10, 20, 0, 1), Matrix{1, 0, 0, 1, 10, 20}, epsilon)
}

func TestNewMatrixRotation90(t *testing.T) {
	// cos(90)=0, sin(90)=1 → a=0, b=1, c=-1, d=0
	assertMatrix(t, "rot90", NewMatrix(0, 0, math.Pi/2, 1), Matrix{0, 1, -1, 0, 0, 0}, epsilon)
}

func TestNewMatrixScale(t *testing.T) {
	assertMatrix(t, "scale", NewMatrix(0, 0, 0, 2), Matrix{2, 0, 0, 2, 0, 0}, epsilon)
}

func TestMultiplyIdentity(t *testing.T) {
	m := NewMatrix(5, -3, 0.7, 1)
	assertMatrix(t, "I*m", Identity.Multiply(m), m, epsilon)
	assertMatrix(t, "m*I", m.Multiply(Identity), m, epsilon)
}

func TestMultiplyTranslations(t *testing.T) {
	got := NewMatrix(10, 20, 0, 1).Multiply(NewMatrix(5, 7, 0, 1))
	assertMatrix(t, "sum", got, Matrix{1, 0, 0, 1, 15, 27}, epsilon)
}

func TestMultiplyAppliesChildFirst(t *testing.T) {
	parent := NewMatrix(100, 0, math.Pi/2, 1)
	child := NewMatrix(10, 0, 0, 1)
	x, y := parent.Multiply(child).Apply(0, 0)
	// Child offset (10, 0) is rotated to (0, 10) then moved by the parent.
	assertNear(t, "x", x, 100)
	assertNear(t, "y", y, 10)
}

func TestInvert(t *testing.T) {
	m := NewMatrix(12, -4, 1.1, 1)
	inv, ok := m.Invert()
	if !ok {
		t.Fatal("expected invertible")
	}
	assertMatrix(t, "m*inv", m.Multiply(inv), Identity, epsilon)
	assertMatrix(t, "inv*m", inv.Multiply(m), Identity, epsilon)
}

func TestInvertSingular(t *testing.T) {
	inv, ok := Matrix{0, 0, 0, 0, 5, 5}.Invert()
	if ok {
		t.Fatal("expected singular")
	}
	assertMatrix(t, "fallback", inv, Identity, epsilon)
}

func TestGeoMMatchesApply(t *testing.T) {
	m := NewMatrix(30, 40, 0.5, 1)
	g := m.GeoM()
	gx, gy := g.Apply(3, 4)
	mx, my := m.Apply(3, 4)
	assertNear(t, "x", gx, mx)
	assertNear(t, "y", gy, my)
}

// --- Transformation ---

func TestTransformationSumsRotation(t *testing.T) {
	root := NewTransformation(Vec2{10, 0}, 0.25, 1, nil)
	child := NewTransformation(Vec2{5, 0}, 0.5, 1, &root)
	assertNear(t, "GlobalRotation", child.GlobalRotation, 0.75)
	assertMatrix(t, "Global", child.Global, root.Global.Multiply(child.Local), epsilon)
}

func TestDocumentTransformationWalksChain(t *testing.T) {
	f := newFixture(t)
	hip := f.add(NodeTypeBone, "hip", 0)
	arm := f.add(NodeTypeSprite, "arm", hip)
	f.set(hip, PropertyTranslationX, 100)
	f.set(hip, PropertyRotationAngle, math.Pi/2)
	f.set(arm, PropertyTranslationX, 10)

	tr := f.doc().Transformation(arm)
	x, y := tr.Global.Apply(0, 0)
	assertNear(t, "x", x, 100)
	assertNear(t, "y", y, 10)
	assertNear(t, "GlobalRotation", tr.GlobalRotation, math.Pi/2)
}

func TestDocumentTransformationUsesAnimatedValues(t *testing.T) {
	f := newFixture(t)
	n := f.add(NodeTypeBone, "bone", 0)
	f.ed.SetMode(ModeAnimate)
	f.key(n, PropertyTranslationY, 0, 40)

	_, y := f.doc().Transformation(n).Global.Apply(0, 0)
	assertNear(t, "animate y", y, 40)

	f.ed.SetMode(ModeDesign)
	_, y = f.doc().Transformation(n).Global.Apply(0, 0)
	assertNear(t, "design y", y, 0)
}

// --- CorrectLocal ---

func TestCorrectLocalRoundTrip(t *testing.T) {
	cases := []struct {
		name           string
		parent, global Matrix
	}{
		{"identity parent", Identity, NewMatrix(3, 4, 0.3, 1)},
		{"rotated parent", NewMatrix(100, 0, math.Pi/2, 1), NewMatrix(100, 50, math.Pi/2, 1)},
		{"negative angle", NewMatrix(-20, 5, 1.2, 1), NewMatrix(7, 7, -0.9, 1)},
		{"near pi", NewMatrix(0, 0, 0.1, 1), NewMatrix(1, 2, 3.1, 1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr, rot, ok := CorrectLocal(tc.global, tc.parent)
			if !ok {
				t.Fatal("expected ok")
			}
			got := tc.parent.Multiply(NewMatrix(tr.X, tr.Y, rot, 1))
			assertMatrix(t, "global", got, tc.global, 1e-6)
		})
	}
}

func TestCorrectLocalSingularParent(t *testing.T) {
	_, _, ok := CorrectLocal(NewMatrix(1, 1, 0, 1), Matrix{})
	if ok {
		t.Fatal("expected singular parent to skip correction")
	}
}

// --- Benchmarks ---

func BenchmarkDocumentTransformationDepth16(b *testing.B) {
	ed := NewEditor()
	parent := ID(0)
	for range 16 {
		id, _ := ed.AddNode(NodeTypeBone, "bone", parent)
		_ = ed.SetPropertyValue(id, PropertyRotationAngle, 0.1)
		_ = ed.SetPropertyValue(id, PropertyTranslationX, 20)
		parent = id
	}
	d := ed.Document()
	for b.Loop() {
		_ = d.Transformation(parent)
	}
}
