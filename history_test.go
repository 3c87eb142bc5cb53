package pose

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func assertCursor(t *testing.T, h *History, version, count int) {
	t.Helper()
	if h.Version() != version || h.Count() != count {
		t.Fatalf("history at %d/%d, want %d/%d", h.Version(), h.Count(), version, count)
	}
	if h.CanUndo() != (version > 0) {
		t.Errorf("CanUndo = %v at version %d", h.CanUndo(), version)
	}
	if h.CanRedo() != (version < count) {
		t.Errorf("CanRedo = %v at %d/%d", h.CanRedo(), version, count)
	}
}

func expectPanic(t *testing.T, contains string, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic containing %q", contains)
		}
		if msg := fmt.Sprint(r); !strings.Contains(msg, contains) {
			t.Errorf("panic %q does not mention %q", msg, contains)
		}
	}()
	fn()
}

func TestHistoryStartsEmpty(t *testing.T) {
	f := newFixture(t)
	assertCursor(t, f.ed.History(), 0, 0)
}

func TestHistoryUndoRedoCursor(t *testing.T) {
	f := newFixture(t)
	h := f.ed.History()
	a := f.add(NodeTypeSprite, "a", 0)
	f.add(NodeTypeSprite, "b", 0)
	assertCursor(t, h, 2, 2)
	if h.Label(1) != "Add a" || h.Label(2) != "Add b" {
		t.Errorf("labels %q %q", h.Label(1), h.Label(2))
	}

	before := snapshot(f.doc())
	f.ed.Undo()
	assertCursor(t, h, 1, 2)
	f.ed.Redo()
	assertCursor(t, h, 2, 2)
	assertSnapshot(t, "undo+redo", snapshot(f.doc()), before)

	f.ed.Undo()
	if err := f.ed.RenameNode(a, "renamed"); err != nil {
		t.Fatal(err)
	}
	assertCursor(t, h, 2, 2)
	if h.Label(2) != "Rename a" {
		t.Errorf("redo branch kept: label %q", h.Label(2))
	}
}

func TestHistoryEmptyUnitDropped(t *testing.T) {
	f := newFixture(t)
	h := f.ed.History()
	u := h.StartUnitOfWork("nothing")
	u.Commit()
	assertCursor(t, h, 0, 0)
	if !u.Committed() {
		t.Error("unit should report committed")
	}
	// A fresh unit can start once the empty one is closed.
	h.StartUnitOfWork("next").Commit()
}

func TestHistoryExecuteAfterCommitPanics(t *testing.T) {
	f := newFixture(t)
	id := f.add(NodeTypeSprite, "a", 0)
	u := f.ed.History().StartUnitOfWork("rename")
	u.Execute(NodeRenamed{Node: id, Name: "b", Undo: "a"})
	u.Commit()
	u.Commit()
	expectPanic(t, "committed", func() {
		u.Execute(NodeRenamed{Node: id, Name: "c", Undo: "b"})
	})
}

func TestHistorySecondOpenUnitPanics(t *testing.T) {
	f := newFixture(t)
	f.ed.History().StartUnitOfWork("first")
	expectPanic(t, "still open", func() {
		f.ed.History().StartUnitOfWork("second")
	})
}

func TestHistoryUndoWhileOpenPanics(t *testing.T) {
	f := newFixture(t)
	f.add(NodeTypeSprite, "a", 0)
	f.ed.History().StartUnitOfWork("open")
	expectPanic(t, "is open", f.ed.Undo)
}

func TestHistoryOutOfRangePanics(t *testing.T) {
	f := newFixture(t)
	expectPanic(t, "nothing to undo", f.ed.Undo)
	expectPanic(t, "nothing to redo", f.ed.Redo)
	expectPanic(t, "out of range", func() { f.ed.NavigateHistoryTo(3) })
}

func TestHistoryNavigate(t *testing.T) {
	f := newFixture(t)
	states := []string{snapshot(f.doc())}
	n := f.add(NodeTypeBone, "bone", 0)
	states = append(states, snapshot(f.doc()))
	f.set(n, PropertyTranslationX, 5)
	states = append(states, snapshot(f.doc()))
	f.ed.SetMode(ModeAnimate)
	f.key(n, PropertyRotationAngle, 3, 1)
	states = append(states, snapshot(f.doc()))
	f.ed.SetMode(ModeDesign)

	for _, v := range []int{0, 3, 1, 2, 0, 3} {
		f.ed.NavigateHistoryTo(v)
		assertCursor(t, f.ed.History(), v, 3)
		assertSnapshot(t, fmt.Sprintf("version %d", v), snapshot(f.doc()), states[v])
	}
}

func TestHistoryLimit(t *testing.T) {
	f := newFixture(t, WithHistoryLimit(2))
	a := f.add(NodeTypeSprite, "a", 0)
	f.add(NodeTypeSprite, "b", 0)
	f.add(NodeTypeSprite, "c", 0)
	h := f.ed.History()
	assertCursor(t, h, 2, 2)
	if h.Label(1) != "Add b" {
		t.Errorf("oldest kept unit = %q", h.Label(1))
	}
	for i, u := range h.units[len(h.units):cap(h.units)] {
		if u != nil {
			t.Errorf("dropped unit %q still referenced at slot %d", u.label, len(h.units)+i)
		}
	}
	f.ed.NavigateHistoryTo(0)
	if _, ok := f.doc().Node(a); !ok {
		t.Error("unit dropped by the limit was undone")
	}
	if f.doc().NumNodes() != 1 {
		t.Errorf("NumNodes = %d, want 1", f.doc().NumNodes())
	}
}

// Every unit, played backward right after it ran, restores the document.
func TestHistoryRoundTripLaw(t *testing.T) {
	f := newFixture(t)
	var (
		body, arm, bone ID
		key             ID
	)
	steps := []struct {
		name string
		run  func()
	}{
		{"add body", func() { body = f.add(NodeTypeSprite, "body", 0) }},
		{"add arm", func() { arm = f.add(NodeTypeSprite, "arm", body) }},
		{"add bone", func() { bone = f.add(NodeTypeBone, "bone", 0) }},
		{"set x", func() { f.set(arm, PropertyTranslationX, 12) }},
		{"rename", func() { _ = f.ed.RenameNode(bone, "spine") }},
		{"move", func() { _ = f.ed.MoveNode(arm, bone, 0) }},
		{"draw index", func() { _ = f.ed.SetDrawIndex(arm, 0) }},
		{"animate", func() { f.ed.SetMode(ModeAnimate) }},
		{"key", func() { key = f.key(arm, PropertyRotationAngle, 10, 1) }},
		{"key again", func() { f.key(arm, PropertyRotationAngle, 20, 2) }},
		{"overwrite", func() { f.key(arm, PropertyRotationAngle, 10, 3) }},
		{"interp", func() { _ = f.ed.SetKeyInterpolation(key, Hold()) }},
		{"move key", func() { _ = f.ed.MoveKey(key, 30) }},
		{"add anim", func() { f.anim("run") }},
		{"settings", func() {
			a := f.doc().CurrentAnimation()
			s := a.Settings()
			s.Loop, s.EndFrame = true, 40
			_ = f.ed.SetAnimationSettings(a.ID(), s)
		}},
		{"remove key", func() { _ = f.ed.RemoveKey(key) }},
		{"remove node", func() { _ = f.ed.RemoveNode(bone) }},
	}
	for _, step := range steps {
		h := f.ed.History()
		before, version := snapshot(f.doc()), h.Version()
		step.run()
		if h.Version() == version {
			continue
		}
		after := snapshot(f.doc())
		f.ed.Undo()
		assertSnapshot(t, step.name+" backward", snapshot(f.doc()), before)
		f.ed.Redo()
		assertSnapshot(t, step.name+" forward", snapshot(f.doc()), after)
	}
}

func TestHistoryPublishesChanges(t *testing.T) {
	bus := NewBus()
	var got []HistoryChanged
	Subscribe(bus, func(n HistoryChanged) { got = append(got, n) })
	f := newFixture(t, WithSink(bus))

	f.add(NodeTypeSprite, "a", 0)
	f.ed.Undo()
	f.ed.Redo()
	if len(got) != 3 {
		t.Fatalf("got %d notices, want 3", len(got))
	}
	want := []int{1, 0, 1}
	unit := f.ed.History().Unit(1).ID()
	for i, n := range got {
		if n.Version != want[i] || n.Count != 1 || n.Unit != unit {
			t.Errorf("notice %d = %+v", i, n)
		}
	}
	if unit == uuid.Nil {
		t.Error("unit id not assigned")
	}
}
