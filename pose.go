package pose

import (
	"log/slog"

	"github.com/phanxgames/pose/internal/logging"
	"github.com/phanxgames/pose/player"
)

// ID identifies an entity within a Document. Zero is never assigned.
type ID uint64

// Sequence hands out monotonically increasing ids. It is persisted with the
// document so that reloading resumes numbering without collisions.
type Sequence struct {
	last ID
}

// Next returns a new id.
func (s *Sequence) Next() ID {
	s.last++
	return s.last
}

// Last returns the most recently issued id.
func (s *Sequence) Last() ID { return s.last }

// Resume makes sure no id at or below last is issued again.
func (s *Sequence) Resume(last ID) {
	s.last = max(s.last, last)
}

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float64
}

// NodeType distinguishes sprites from bones.
type NodeType uint8

const (
	NodeTypeSprite NodeType = iota
	NodeTypeBone
)

func (t NodeType) String() string {
	switch t {
	case NodeTypeSprite:
		return "Sprite"
	case NodeTypeBone:
		return "Bone"
	}
	return "Unknown"
}

func (t NodeType) kind() player.NodeKind {
	if t == NodeTypeBone {
		return player.KindBone
	}
	return player.KindSprite
}

// Mode selects what property edits write to.
type Mode uint8

const (
	// ModeDesign edits write the persisted design value.
	ModeDesign Mode = iota
	// ModeAnimate edits write keys in the current animation.
	ModeAnimate
)

func (m Mode) String() string {
	if m == ModeAnimate {
		return "Animate"
	}
	return "Design"
}

// SetLogger configures the logger for pose and its sub-packages.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Log levels used:
//   - [slog.LevelDebug]: commits, undo/redo, export details
//   - [slog.LevelInfo]: document lifecycle
//   - [slog.LevelWarn]: skipped transform corrections, debug-mode thresholds
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the logger currently used by pose.
func Logger() *slog.Logger {
	return logging.Logger()
}
