package pose

import (
	"fmt"
	"testing"
)

// setupBenchEditor creates an editor with n bones chained in groups of ten,
// each keyed on rotation at every tenth frame.
func setupBenchEditor(n int) (*Editor, []ID) {
	ed := NewEditor()
	ids := make([]ID, 0, n)
	parent := ID(0)
	for i := range n {
		if i%10 == 0 {
			parent = 0
		}
		id, _ := ed.AddNode(NodeTypeBone, fmt.Sprintf("bone_%d", i), parent)
		ids = append(ids, id)
		parent = id
	}
	ed.SetMode(ModeAnimate)
	for _, id := range ids {
		for f := 0; f <= 60; f += 10 {
			_, _ = ed.SetKey(id, PropertyRotationAngle, f, float64(f)/60)
		}
	}
	return ed, ids
}

// --- Evaluation ---

func BenchmarkGetValueAt_Bezier(b *testing.B) {
	ed, ids := setupBenchEditor(1)
	pa, _ := ed.Document().FindPropertyAnimation(ed.Document().CurrentAnimation().ID(), ids[0], PropertyRotationAngle)
	f := 0.0
	for b.Loop() {
		_ = pa.GetValueAt(f)
		f += 0.37
		if f > 60 {
			f = 0
		}
	}
}

func BenchmarkValue_1000Nodes(b *testing.B) {
	ed, ids := setupBenchEditor(1000)
	d := ed.Document()
	ed.SetCurrentFrame(33)
	for b.Loop() {
		for _, id := range ids {
			_ = d.Value(id, PropertyRotationAngle)
		}
	}
}

// --- History ---

func BenchmarkUndoRedo_RemoveSubtree(b *testing.B) {
	ed, ids := setupBenchEditor(100)
	if err := ed.RemoveNode(ids[0]); err != nil {
		b.Fatal(err)
	}
	for b.Loop() {
		ed.Undo()
		ed.Redo()
	}
}

func BenchmarkSetKey(b *testing.B) {
	ed, ids := setupBenchEditor(1)
	v := 0.0
	for b.Loop() {
		v++
		_, _ = ed.SetKey(ids[0], PropertyTranslationX, 5, v)
	}
}

// --- Export ---

func BenchmarkExport_1000Nodes(b *testing.B) {
	ed, _ := setupBenchEditor(1000)
	d := ed.Document()
	for b.Loop() {
		_ = d.Export()
	}
}
