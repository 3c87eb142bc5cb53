package pose

import (
	"fmt"
	"maps"
	"slices"
)

// Editor runs user-level operations against a Document. Each operation is
// one UnitOfWork, so one Undo reverses it completely, including every
// cascade it triggered.
//
// Operations that do not apply in the current mode, or that would break an
// invariant the user can see, return a *RejectedError. Ids the document does
// not hold return an error matching ErrNotFound.
type Editor struct {
	doc     *Document
	history *History
}

// NewEditor creates an editor over a new document.
func NewEditor(opts ...Option) *Editor {
	return NewEditorFor(NewDocument(opts...))
}

// NewEditorFor creates an editor with an empty history over doc, typically
// one returned by Restore.
func NewEditorFor(doc *Document) *Editor {
	return &Editor{doc: doc, history: NewHistory(doc)}
}

// Document returns the edited document.
func (e *Editor) Document() *Document { return e.doc }

// History returns the undo stack.
func (e *Editor) History() *History { return e.history }

// Mode returns the editing mode.
func (e *Editor) Mode() Mode { return e.doc.mode }

func (e *Editor) CanUndo() bool           { return e.history.CanUndo() }
func (e *Editor) CanRedo() bool           { return e.history.CanRedo() }
func (e *Editor) Undo()                   { e.history.Undo() }
func (e *Editor) Redo()                   { e.history.Redo() }
func (e *Editor) NavigateHistoryTo(v int) { e.history.NavigateHistoryTo(v) }

func (e *Editor) begin(label string) *UnitOfWork { return e.history.StartUnitOfWork(label) }

func (e *Editor) requireMode(op string, m Mode) error {
	if e.doc.mode != m {
		return reject(op, "only available in %v mode", m)
	}
	return nil
}

// --- View state ---

// SetMode switches between design and animate mode. Preview increments are
// discarded. Not recorded in history.
func (e *Editor) SetMode(m Mode) { e.doc.setMode(m) }

// SelectAnimation makes id the current animation. Not recorded in history.
func (e *Editor) SelectAnimation(id ID) error {
	if _, ok := e.doc.animByID[id]; !ok {
		return notFound("SelectAnimation", "animation", id)
	}
	e.doc.selectAnimation(id)
	return nil
}

// SetCurrentFrame moves the current animation's scrubber, clamped into its
// range. Not recorded in history.
func (e *Editor) SetCurrentFrame(frame int) {
	e.doc.setCurrentFrame(e.doc.current, frame)
}

// SetIncrement sets the transient preview offset of a node property. Not
// recorded in history.
func (e *Editor) SetIncrement(node ID, p PropertyType, v float64) error {
	const op = "SetIncrement"
	n, ok := e.doc.nodes[node]
	if !ok {
		return notFound(op, "node", node)
	}
	if !p.AppliesTo(n.typ) {
		return reject(op, "%v nodes have no %v", n.typ, p)
	}
	e.doc.setIncrement(node, p, v)
	return nil
}

// SetAssetFolder changes the folder sprite images are loaded from.
func (e *Editor) SetAssetFolder(path string) {
	old := e.doc.assetFolder
	if old == path {
		return
	}
	u := e.begin("Set asset folder")
	defer u.Commit()
	u.Execute(AssetFolderChanged{Folder: path, Undo: old})
}

// --- Nodes ---

// AddNode appends a new node under parent, or as a root when parent is
// zero. New sprites go to the front of the draw order. Design mode only.
func (e *Editor) AddNode(typ NodeType, name string, parent ID) (ID, error) {
	const op = "AddNode"
	d := e.doc
	if err := e.requireMode(op, ModeDesign); err != nil {
		return 0, err
	}
	if typ != NodeTypeSprite && typ != NodeTypeBone {
		return 0, reject(op, "unknown node type %d", typ)
	}
	if parent != 0 {
		if _, ok := d.nodes[parent]; !ok {
			return 0, notFound(op, "node", parent)
		}
	}
	id := d.seq.Next()
	u := e.begin(fmt.Sprintf("Add %s", name))
	defer u.Commit()
	u.Execute(NodeAdded{Node: NodeState{
		ID:         id,
		Type:       typ,
		Name:       name,
		Parent:     parent,
		Index:      len(d.siblings(parent)),
		Properties: defaultProperties(typ),
	}})
	if typ == NodeTypeSprite {
		u.Execute(DrawOrderInserted{Node: id, Index: len(d.drawOrder)})
	}
	return id, nil
}

// RemoveNode removes a node, its descendants, their keys in every
// animation and their draw order entries.
func (e *Editor) RemoveNode(id ID) error {
	n, ok := e.doc.nodes[id]
	if !ok {
		return notFound("RemoveNode", "node", id)
	}
	u := e.begin(fmt.Sprintf("Remove %s", n.name))
	defer u.Commit()
	e.removeSubtree(u, id)
	return nil
}

// removeSubtree removes children before their parent so every NodeRemoved
// event sees a childless node, and undo restores parents first.
func (e *Editor) removeSubtree(u *UnitOfWork, id ID) {
	d := e.doc
	n := d.nodes[id]
	for len(n.children) > 0 {
		e.removeSubtree(u, n.children[len(n.children)-1])
	}
	for _, anim := range d.animations {
		e.removeNodeKeys(u, anim, id)
	}
	if i := indexOf(d.drawOrder, id); i >= 0 {
		u.Execute(DrawOrderRemoved{Node: id, Index: i})
	}
	u.Execute(NodeRemoved{Node: d.nodeState(id)})
}

// RenameNode changes a node's display name.
func (e *Editor) RenameNode(id ID, name string) error {
	n, ok := e.doc.nodes[id]
	if !ok {
		return notFound("RenameNode", "node", id)
	}
	if n.name == name {
		return nil
	}
	u := e.begin(fmt.Sprintf("Rename %s", n.name))
	defer u.Commit()
	u.Execute(NodeRenamed{Node: id, Name: name, Undo: n.name})
	return nil
}

// MoveNode reparents id under parent (zero for root) at index among the
// new siblings. When the parent changes, the local translation and
// rotation are corrected so the node keeps its world placement; the
// correction is skipped if the new parent's transform is singular. Design
// mode only.
func (e *Editor) MoveNode(id, parent ID, index int) error {
	const op = "MoveNode"
	d := e.doc
	if err := e.requireMode(op, ModeDesign); err != nil {
		return err
	}
	n, ok := d.nodes[id]
	if !ok {
		return notFound(op, "node", id)
	}
	if parent != 0 {
		if _, ok := d.nodes[parent]; !ok {
			return notFound(op, "node", parent)
		}
		if d.IsAncestor(id, parent) {
			return reject(op, "cannot move %q into its own subtree", n.name)
		}
	}
	oldParent, oldIndex := n.parent, d.ChildIndex(id)
	count := len(d.siblings(parent))
	if parent == oldParent {
		count--
	}
	index = min(max(index, 0), count)
	if parent == oldParent && index == oldIndex {
		return nil
	}

	global := d.Transformation(id).Global
	parentGlobal := Identity
	if parent != 0 {
		parentGlobal = d.Transformation(parent).Global
	}

	u := e.begin(fmt.Sprintf("Move %s", n.name))
	defer u.Commit()
	u.Execute(NodeMoved{Node: id, Parent: parent, Index: index, UndoParent: oldParent, UndoIndex: oldIndex})
	if parent == oldParent {
		return nil
	}
	t, rot, ok := CorrectLocal(global, parentGlobal)
	if !ok {
		Logger().Warn("pose: singular parent transform, keeping local values", "node", n.name)
		return nil
	}
	e.setDesign(u, id, PropertyTranslationX, t.X-n.props[PropertyTranslationX].Increment)
	e.setDesign(u, id, PropertyTranslationY, t.Y-n.props[PropertyTranslationY].Increment)
	e.setDesign(u, id, PropertyRotationAngle, rot-n.props[PropertyRotationAngle].Increment)
	return nil
}

// SetDrawIndex moves a sprite within the draw order.
func (e *Editor) SetDrawIndex(id ID, index int) error {
	const op = "SetDrawIndex"
	d := e.doc
	n, ok := d.nodes[id]
	if !ok {
		return notFound(op, "node", id)
	}
	old := indexOf(d.drawOrder, id)
	if old < 0 {
		return reject(op, "%v %q has no draw index", n.typ, n.name)
	}
	index = min(max(index, 0), len(d.drawOrder)-1)
	if index == old {
		return nil
	}
	u := e.begin(fmt.Sprintf("Reorder %s", n.name))
	defer u.Commit()
	u.Execute(DrawOrderMoved{Node: id, Index: index, UndoIndex: old})
	return nil
}

// SetPropertyValue edits what the user sees: the design value in design
// mode, or a key at the current frame of the current animation in animate
// mode.
func (e *Editor) SetPropertyValue(node ID, p PropertyType, v float64) error {
	const op = "SetPropertyValue"
	d := e.doc
	n, ok := d.nodes[node]
	if !ok {
		return notFound(op, "node", node)
	}
	if !p.AppliesTo(n.typ) {
		return reject(op, "%v nodes have no %v", n.typ, p)
	}
	if d.mode == ModeAnimate {
		_, err := e.SetKey(node, p, d.CurrentAnimation().current, v)
		return err
	}
	u := e.begin(fmt.Sprintf("Set %v of %s", p, n.name))
	defer u.Commit()
	e.setDesign(u, node, p, v)
	return nil
}

func (e *Editor) setDesign(u *UnitOfWork, node ID, p PropertyType, v float64) {
	v = p.Clamp(v)
	old := e.doc.nodes[node].props[p].Design
	if old == v {
		return
	}
	u.Execute(DesignValueChanged{Node: node, Property: p, Value: v, Undo: old})
}

// --- Keys ---

// SetKey writes a key at frame in the current animation. An existing key
// at that frame gets the new value; otherwise a key is inserted with the
// default interpolation for p, creating its containers as needed. Animate
// mode only.
func (e *Editor) SetKey(node ID, p PropertyType, frame int, v float64) (ID, error) {
	const op = "SetKey"
	d := e.doc
	if err := e.requireMode(op, ModeAnimate); err != nil {
		return 0, err
	}
	n, ok := d.nodes[node]
	if !ok {
		return 0, notFound(op, "node", node)
	}
	if !p.AppliesTo(n.typ) {
		return 0, reject(op, "%v nodes have no %v", n.typ, p)
	}
	a := d.CurrentAnimation()
	if frame != a.settings.ClampFrame(frame) {
		return 0, reject(op, "frame %d outside [%d, %d]", frame, a.settings.BeginFrame, a.settings.EndFrame)
	}
	v = p.Clamp(v)

	u := e.begin(fmt.Sprintf("Key %v of %s", p, n.name))
	defer u.Commit()
	pa, ok := d.FindPropertyAnimation(a.id, node, p)
	if ok {
		if k, ok := pa.KeyAt(frame); ok {
			if k.value != v {
				u.Execute(KeyValueChanged{Key: k.id, Value: v, Undo: k.value})
			}
			return k.id, nil
		}
	}
	if !ok {
		cid, exists := a.collections[node]
		if !exists {
			cid = d.seq.Next()
			u.Execute(CollectionAdded{Collection: cid, Animation: a.id, Node: node})
		}
		pid := d.seq.Next()
		u.Execute(PropertyAnimationAdded{PropertyAnimation: pid, Collection: cid, Property: p})
		pa = d.propAnims[pid]
	}
	kid := d.seq.Next()
	u.Execute(KeyAdded{Key: KeyState{
		ID:                kid,
		PropertyAnimation: pa.id,
		Frame:             frame,
		Value:             v,
		Interpolation:     d.defaultInterpolation(p),
	}})
	return kid, nil
}

// RemoveKey deletes a key. Removing the last key of a curve also removes
// the curve, and removing the last curve of a node's collection removes
// the collection. Animate mode only.
func (e *Editor) RemoveKey(key ID) error {
	const op = "RemoveKey"
	if err := e.requireMode(op, ModeAnimate); err != nil {
		return err
	}
	k, ok := e.doc.keys[key]
	if !ok {
		return notFound(op, "key", key)
	}
	u := e.begin(fmt.Sprintf("Remove key at %d", k.frame))
	defer u.Commit()
	e.removeKey(u, k)
	return nil
}

func (e *Editor) removeKey(u *UnitOfWork, k *Key) {
	d := e.doc
	pa := d.propAnims[k.owner]
	u.Execute(KeyRemoved{Key: k.state()})
	if pa.Len() > 0 {
		return
	}
	u.Execute(PropertyAnimationRemoved{PropertyAnimation: pa.id, Collection: pa.collection, Property: pa.property})
	c := d.collections[pa.collection]
	if c.Len() > 0 {
		return
	}
	u.Execute(CollectionRemoved{Collection: c.id, Animation: c.animation, Node: c.node})
}

// removeNodeKeys removes every key of node in anim, cascading to its
// containers.
func (e *Editor) removeNodeKeys(u *UnitOfWork, anim, node ID) {
	d := e.doc
	cid, ok := d.animByID[anim].collections[node]
	if !ok {
		return
	}
	c := d.collections[cid]
	var curves []*PropertyAnimation
	for _, p := range c.Properties() {
		curves = append(curves, d.propAnims[c.properties[p]])
	}
	for _, pa := range curves {
		for pa.Len() > 0 {
			e.removeKey(u, pa.keys[pa.Len()-1])
		}
	}
}

// SetKeyValue changes a key's value. Animate mode only.
func (e *Editor) SetKeyValue(key ID, v float64) error {
	const op = "SetKeyValue"
	if err := e.requireMode(op, ModeAnimate); err != nil {
		return err
	}
	k, ok := e.doc.keys[key]
	if !ok {
		return notFound(op, "key", key)
	}
	v = e.doc.propAnims[k.owner].property.Clamp(v)
	if v == k.value {
		return nil
	}
	u := e.begin(fmt.Sprintf("Set key at %d", k.frame))
	defer u.Commit()
	u.Execute(KeyValueChanged{Key: key, Value: v, Undo: k.value})
	return nil
}

// SetKeyInterpolation changes how a key blends into the next one. Animate
// mode only.
func (e *Editor) SetKeyInterpolation(key ID, interp Interpolation) error {
	const op = "SetKeyInterpolation"
	if err := e.requireMode(op, ModeAnimate); err != nil {
		return err
	}
	k, ok := e.doc.keys[key]
	if !ok {
		return notFound(op, "key", key)
	}
	if k.interp.Equal(interp) {
		return nil
	}
	u := e.begin(fmt.Sprintf("Set %v interpolation at %d", interp.Kind(), k.frame))
	defer u.Commit()
	u.Execute(KeyInterpolationChanged{Key: key, Interpolation: interp, Undo: k.interp})
	return nil
}

// MoveKey moves a key to a free frame within its animation's range.
// Animate mode only.
func (e *Editor) MoveKey(key ID, frame int) error {
	const op = "MoveKey"
	d := e.doc
	if err := e.requireMode(op, ModeAnimate); err != nil {
		return err
	}
	k, ok := d.keys[key]
	if !ok {
		return notFound(op, "key", key)
	}
	if frame == k.frame {
		return nil
	}
	pa := d.propAnims[k.owner]
	s := d.animByID[pa.animation].settings
	if frame != s.ClampFrame(frame) {
		return reject(op, "frame %d outside [%d, %d]", frame, s.BeginFrame, s.EndFrame)
	}
	if _, taken := pa.KeyAt(frame); taken {
		return reject(op, "frame %d already has a key", frame)
	}
	u := e.begin(fmt.Sprintf("Move key %d to %d", k.frame, frame))
	defer u.Commit()
	u.Execute(KeyMoved{Key: key, Frame: frame, UndoFrame: k.frame})
	return nil
}

// --- Animations ---

// AddAnimation appends an empty animation.
func (e *Editor) AddAnimation(s AnimationSettings) (ID, error) {
	const op = "AddAnimation"
	if !s.Valid() {
		return 0, reject(op, "invalid settings: frames [%d, %d] at %v fps", s.BeginFrame, s.EndFrame, s.FPS)
	}
	d := e.doc
	id := d.seq.Next()
	u := e.begin(fmt.Sprintf("Add animation %s", s.Name))
	defer u.Commit()
	u.Execute(AnimationAdded{Animation: id, Index: len(d.animations), Settings: s})
	return id, nil
}

// RemoveAnimation deletes an animation and all of its keys. The last
// remaining animation cannot be removed.
func (e *Editor) RemoveAnimation(id ID) error {
	const op = "RemoveAnimation"
	d := e.doc
	a, ok := d.animByID[id]
	if !ok {
		return notFound(op, "animation", id)
	}
	if len(d.animations) == 1 {
		return reject(op, "cannot remove the last animation")
	}
	u := e.begin(fmt.Sprintf("Remove animation %s", a.settings.Name))
	defer u.Commit()
	for _, node := range slices.Sorted(maps.Keys(a.collections)) {
		e.removeNodeKeys(u, id, node)
	}
	u.Execute(AnimationRemoved{
		Animation: id,
		Index:     indexOf(d.animations, id),
		Settings:  a.settings,
		Frame:     a.current,
	})
	return nil
}

// SetAnimationSettings replaces an animation's settings. The current frame
// is clamped into the new range.
func (e *Editor) SetAnimationSettings(id ID, s AnimationSettings) error {
	const op = "SetAnimationSettings"
	a, ok := e.doc.animByID[id]
	if !ok {
		return notFound(op, "animation", id)
	}
	if !s.Valid() {
		return reject(op, "invalid settings: frames [%d, %d] at %v fps", s.BeginFrame, s.EndFrame, s.FPS)
	}
	if s == a.settings {
		return nil
	}
	u := e.begin(fmt.Sprintf("Edit animation %s", a.settings.Name))
	defer u.Commit()
	u.Execute(AnimationSettingsChanged{Animation: id, Settings: s, Undo: a.settings, UndoFrame: a.current})
	return nil
}
