// Package pose is the editing and evaluation core of a 2D skeletal sprite
// animation tool.
//
// A [Document] holds a tree of sprite and bone nodes, a draw order and a
// list of animations. Animations store keyframes per node property;
// [PropertyAnimation.GetValueAt] resolves a property at any fractional
// frame using linear, hold or Bezier interpolation (see package
// [github.com/phanxgames/pose/curve]).
//
// # Editing and history
//
// Documents are never mutated directly. Every change is an [Event] executed
// inside a [UnitOfWork]; committed units form the [History], which can undo,
// redo or jump to any version. An [Editor] bundles a document with its
// history and exposes the user-level operations:
//
//	ed := pose.NewEditor()
//	hip, _ := ed.AddNode(pose.NodeTypeBone, "hip", 0)
//	arm, _ := ed.AddNode(pose.NodeTypeSprite, "arm", hip)
//
//	ed.SetMode(pose.ModeAnimate)
//	ed.SetKey(arm, pose.PropertyRotationAngle, 0, 0)
//	ed.SetKey(arm, pose.PropertyRotationAngle, 30, math.Pi/4)
//
//	ed.Undo() // removes the second key
//
// Removing the last key of a curve removes the curve and, if it was the
// last one, the node's collection too. These cascades are recorded in the
// same unit, so a single Undo restores all of them.
//
// # Notifications
//
// Every applied event publishes a [Notification] to the [Sink] given with
// [WithSink]. [Bus] is a ready-made typed publish/subscribe sink:
//
//	bus := pose.NewBus()
//	pose.Subscribe(bus, func(n pose.KeyChanged) { timeline.Refresh(n.Node) })
//	ed := pose.NewEditor(pose.WithSink(bus))
//
// # Persistence
//
// [Document.State] captures everything a storage layer keeps, ids included,
// and [Restore] rebuilds the document from it without touching history.
// Events and states carry only exported fields; [Interpolation] encodes as
// text, so both work with encoding/json:
//
//	b, _ := json.Marshal(ed.Document().State())
//	...
//	var s pose.DocumentState
//	_ = json.Unmarshal(b, &s)
//	doc, err := pose.Restore(s)
//	ed := pose.NewEditorFor(doc)
//
// # Runtime
//
// [Document.Export] compiles the document into a [player.Rig], the flat,
// allocation-free form played back in games by package
// [github.com/phanxgames/pose/player].
//
// # Debug mode
//
// [WithDebug] validates every document invariant after each commit, undo
// and redo and panics with a "pose debug:" message on the first violation.
// It also logs warnings for very deep trees and very wide nodes. Logging is
// silent unless a logger is installed with [SetLogger].
package pose
