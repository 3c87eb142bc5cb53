package pose

import (
	"fmt"

	"github.com/google/uuid"
)

// History is the linear undo stack of a Document: the committed units of
// work and a version cursor. Version 0 means no unit is applied; version
// Count means every unit is.
type History struct {
	doc     *Document
	units   []*UnitOfWork
	version int
	limit   int
	open    *UnitOfWork
}

// NewHistory creates an empty history over doc. The limit configured with
// WithHistoryLimit applies.
func NewHistory(doc *Document) *History {
	return &History{doc: doc, limit: doc.opts.historyLimit}
}

// Document returns the document this history edits.
func (h *History) Document() *Document { return h.doc }

// Version returns the cursor.
func (h *History) Version() int { return h.version }

// Count returns the number of committed units.
func (h *History) Count() int { return len(h.units) }

// CanUndo reports whether Undo has a unit to reverse.
func (h *History) CanUndo() bool { return h.version > 0 }

// CanRedo reports whether Redo has a unit to replay.
func (h *History) CanRedo() bool { return h.version < len(h.units) }

// Label returns the label of the unit that produced version v, for v in
// [1, Count].
func (h *History) Label(v int) string {
	return h.unit(v).label
}

// Unit returns the unit that produced version v, for v in [1, Count].
func (h *History) Unit(v int) *UnitOfWork {
	return h.unit(v)
}

func (h *History) unit(v int) *UnitOfWork {
	if v < 1 || v > len(h.units) {
		panic(fmt.Sprintf("pose: history version %d out of range [1, %d]", v, len(h.units)))
	}
	return h.units[v-1]
}

// StartUnitOfWork opens a unit of work. Only one unit may be open at a
// time; starting a second panics.
func (h *History) StartUnitOfWork(label string) *UnitOfWork {
	if h.open != nil {
		panic(fmt.Sprintf("pose: unit of work %q still open", h.open.label))
	}
	u := &UnitOfWork{id: uuid.New(), label: label, history: h}
	h.open = u
	return u
}

// Undo plays the unit at the cursor backward, last event first, and moves
// the cursor back. It panics when CanUndo is false.
func (h *History) Undo() {
	h.mustBeIdle("Undo")
	if !h.CanUndo() {
		panic("pose: nothing to undo")
	}
	u := h.units[h.version-1]
	for i := len(u.events) - 1; i >= 0; i-- {
		h.doc.apply(u.events[i], false)
	}
	h.version--
	Logger().Debug("pose: undo", "label", u.label, "events", len(u.events), "version", h.version)
	h.settled(u)
}

// Redo plays the unit after the cursor forward and advances the cursor. It
// panics when CanRedo is false.
func (h *History) Redo() {
	h.mustBeIdle("Redo")
	if !h.CanRedo() {
		panic("pose: nothing to redo")
	}
	u := h.units[h.version]
	for _, e := range u.events {
		h.doc.apply(e, true)
	}
	h.version++
	Logger().Debug("pose: redo", "label", u.label, "events", len(u.events), "version", h.version)
	h.settled(u)
}

// NavigateHistoryTo undoes or redoes until the cursor equals version.
func (h *History) NavigateHistoryTo(version int) {
	if version < 0 || version > len(h.units) {
		panic(fmt.Sprintf("pose: history version %d out of range [0, %d]", version, len(h.units)))
	}
	for h.version > version {
		h.Undo()
	}
	for h.version < version {
		h.Redo()
	}
}

func (h *History) mustBeIdle(op string) {
	if h.open != nil {
		panic(fmt.Sprintf("pose: %s while unit of work %q is open", op, h.open.label))
	}
}

func (h *History) commit(u *UnitOfWork) {
	h.open = nil
	if len(u.events) == 0 {
		return
	}
	for i := h.version; i < len(h.units); i++ {
		h.units[i] = nil
	}
	h.units = append(h.units[:h.version], u)
	h.version++
	if h.limit > 0 && len(h.units) > h.limit {
		drop := len(h.units) - h.limit
		n := copy(h.units, h.units[drop:])
		clear(h.units[n:])
		h.units = h.units[:n]
		h.version -= drop
	}
	Logger().Debug("pose: commit", "label", u.label, "events", len(u.events), "version", h.version)
	h.settled(u)
}

func (h *History) settled(u *UnitOfWork) {
	if h.doc.opts.debug {
		h.doc.validate()
	}
	h.doc.notify(HistoryChanged{Version: h.version, Count: len(h.units), Unit: u.id})
}

// UnitOfWork groups the events of one undoable user action. Each executed
// event is applied immediately; Commit hands the unit to the history.
type UnitOfWork struct {
	id        uuid.UUID
	label     string
	history   *History
	events    []Event
	committed bool
}

// ID returns the unit's identifier.
func (u *UnitOfWork) ID() uuid.UUID { return u.id }

// Label returns the user-facing description.
func (u *UnitOfWork) Label() string { return u.label }

// Len returns the number of recorded events.
func (u *UnitOfWork) Len() int { return len(u.events) }

// Events returns the recorded events in execution order. The returned slice
// MUST NOT be mutated by the caller.
func (u *UnitOfWork) Events() []Event { return u.events }

// Committed reports whether Commit has run.
func (u *UnitOfWork) Committed() bool { return u.committed }

// Execute plays e forward and records it. It panics if the unit has
// already been committed.
func (u *UnitOfWork) Execute(e Event) {
	if u.committed {
		panic(fmt.Sprintf("pose: Execute on committed unit of work %q", u.label))
	}
	u.history.doc.apply(e, true)
	u.events = append(u.events, e)
}

// Commit closes the unit. A unit with events becomes the newest history
// entry and discards anything that could have been redone; an empty unit is
// dropped. Calling Commit again does nothing.
func (u *UnitOfWork) Commit() {
	if u.committed {
		return
	}
	u.committed = true
	u.history.commit(u)
}
