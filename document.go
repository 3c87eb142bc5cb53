package pose

import (
	"fmt"
	"maps"
	"slices"

	"github.com/phanxgames/pose/curve"
)

// Option configures a Document.
type Option func(*options)

type options struct {
	sink         Sink
	debug        bool
	animation    AnimationSettings
	numericCurve curve.Bezier
	tolerance    float64
	historyLimit int
	lastID       ID
}

func defaultOptions() options {
	return options{
		sink: nopSink{},
		animation: AnimationSettings{
			Name:       "Animation",
			BeginFrame: 0,
			EndFrame:   60,
			FPS:        30,
		},
		numericCurve: curve.EaseLow,
		tolerance:    curve.DefaultTolerance,
	}
}

// WithSink routes notifications to s.
func WithSink(s Sink) Option {
	return func(o *options) {
		if s != nil {
			o.sink = s
		}
	}
}

// WithDebug enables invariant checks after every unit of work, undo and
// redo. Violations panic.
func WithDebug(enabled bool) Option {
	return func(o *options) { o.debug = enabled }
}

// WithDefaultAnimation sets the settings of the animation every new
// document starts with. Invalid settings are ignored.
func WithDefaultAnimation(s AnimationSettings) Option {
	return func(o *options) {
		if s.Valid() {
			o.animation = s
		}
	}
}

// WithNumericCurve sets the ease curve given to new keys on numeric
// properties.
func WithNumericCurve(b curve.Bezier) Option {
	return func(o *options) { o.numericCurve = b }
}

// WithSolverTolerance sets the Bezier tolerance used when exporting.
func WithSolverTolerance(tol float64) Option {
	return func(o *options) {
		if tol > 0 {
			o.tolerance = tol
		}
	}
}

// WithHistoryLimit caps the number of units of work an Editor keeps.
// Zero keeps everything.
func WithHistoryLimit(n int) Option {
	return func(o *options) { o.historyLimit = max(n, 0) }
}

// WithSequence resumes id numbering after last, for reloaded documents.
func WithSequence(last ID) Option {
	return func(o *options) { o.lastID = last }
}

// Document is the root aggregate: nodes, draw order and animations.
//
// Exported methods only read. Every mutation goes through an Event applied
// by a UnitOfWork or by History during undo and redo.
type Document struct {
	opts options
	seq  Sequence
	sink Sink
	mode Mode

	assetFolder string

	nodes     map[ID]*Node
	roots     []ID
	drawOrder []ID

	animations  []ID
	animByID    map[ID]*Animation
	collections map[ID]*NodeAnimationCollection
	propAnims   map[ID]*PropertyAnimation
	keys        map[ID]*Key
	current     ID
}

// NewDocument creates an empty document with one default animation.
func NewDocument(opts ...Option) *Document {
	d := newDocument(opts)
	a := newAnimation(d.seq.Next(), d.opts.animation)
	d.animations = append(d.animations, a.id)
	d.animByID[a.id] = a
	d.current = a.id
	Logger().Info("pose: document created", "animation", a.settings.Name)
	return d
}

// newDocument creates a document without any animation.
func newDocument(opts []Option) *Document {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	d := &Document{
		opts:        o,
		sink:        o.sink,
		nodes:       make(map[ID]*Node),
		animByID:    make(map[ID]*Animation),
		collections: make(map[ID]*NodeAnimationCollection),
		propAnims:   make(map[ID]*PropertyAnimation),
		keys:        make(map[ID]*Key),
	}
	d.seq.Resume(o.lastID)
	return d
}

// LastID returns the last id handed out, for persistence.
func (d *Document) LastID() ID { return d.seq.Last() }

// AssetFolder returns the folder sprite images are loaded from. It is
// stored as given; making it relative to the saved file is up to the
// storage layer.
func (d *Document) AssetFolder() string { return d.assetFolder }

// Mode returns the current editing mode.
func (d *Document) Mode() Mode { return d.mode }

// --- Nodes ---

// Node returns the node with the given id.
func (d *Document) Node(id ID) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// NumNodes returns the number of nodes.
func (d *Document) NumNodes() int { return len(d.nodes) }

// Roots returns the ids of parentless nodes in order. The returned slice
// MUST NOT be mutated by the caller.
func (d *Document) Roots() []ID { return d.roots }

// DrawOrder returns sprite node ids back to front. The returned slice MUST
// NOT be mutated by the caller.
func (d *Document) DrawOrder() []ID { return d.drawOrder }

// Walk visits every node depth first, parents before children.
func (d *Document) Walk(fn func(n *Node)) {
	var visit func(ids []ID)
	visit = func(ids []ID) {
		for _, id := range ids {
			n := d.nodes[id]
			fn(n)
			visit(n.children)
		}
	}
	visit(d.roots)
}

// siblings returns the child list of parent, or the roots for zero.
func (d *Document) siblings(parent ID) []ID {
	if parent == 0 {
		return d.roots
	}
	return d.mustNode(parent).children
}

func (d *Document) setSiblings(parent ID, ids []ID) {
	if parent == 0 {
		d.roots = ids
		return
	}
	d.mustNode(parent).children = ids
}

// ChildIndex returns the position of a node among its siblings.
func (d *Document) ChildIndex(id ID) int {
	n := d.mustNode(id)
	return indexOf(d.siblings(n.parent), id)
}

// IsAncestor reports whether candidate is node or one of its ancestors.
func (d *Document) IsAncestor(candidate, node ID) bool {
	for p := node; p != 0; p = d.mustNode(p).parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// nodeState snapshots a node for add and remove events.
func (d *Document) nodeState(id ID) NodeState {
	n := d.mustNode(id)
	return NodeState{
		ID:         n.id,
		Type:       n.typ,
		Name:       n.name,
		Parent:     n.parent,
		Index:      d.ChildIndex(id),
		Properties: n.props,
	}
}

func (d *Document) mustNode(id ID) *Node {
	n, ok := d.nodes[id]
	if !ok {
		panic(fmt.Sprintf("pose: unknown node %d", id))
	}
	return n
}

// --- Animations ---

// Animations returns animation ids in order. The returned slice MUST NOT be
// mutated by the caller.
func (d *Document) Animations() []ID { return d.animations }

// Animation returns the animation with the given id.
func (d *Document) Animation(id ID) (*Animation, bool) {
	a, ok := d.animByID[id]
	return a, ok
}

// CurrentAnimation returns the selected animation.
func (d *Document) CurrentAnimation() *Animation { return d.animByID[d.current] }

// NodeAnimationCollection returns the collection with the given id.
func (d *Document) NodeAnimationCollection(id ID) (*NodeAnimationCollection, bool) {
	c, ok := d.collections[id]
	return c, ok
}

// PropertyAnimation returns the property animation with the given id.
func (d *Document) PropertyAnimation(id ID) (*PropertyAnimation, bool) {
	p, ok := d.propAnims[id]
	return p, ok
}

// Key returns the key with the given id.
func (d *Document) Key(id ID) (*Key, bool) {
	k, ok := d.keys[id]
	return k, ok
}

// NumKeys returns the number of keys over all animations.
func (d *Document) NumKeys() int { return len(d.keys) }

// FindPropertyAnimation returns the curve of (node, p) in animation anim.
func (d *Document) FindPropertyAnimation(anim, node ID, p PropertyType) (*PropertyAnimation, bool) {
	a, ok := d.animByID[anim]
	if !ok {
		return nil, false
	}
	cid, ok := a.collections[node]
	if !ok {
		return nil, false
	}
	pid, ok := d.collections[cid].properties[p]
	if !ok {
		return nil, false
	}
	return d.propAnims[pid], true
}

func (d *Document) mustAnimation(id ID) *Animation {
	a, ok := d.animByID[id]
	if !ok {
		panic(fmt.Sprintf("pose: unknown animation %d", id))
	}
	return a
}

// --- Resolved values ---

// Value returns the runtime-visible value of a node property. In design
// mode it is design + increment; in animate mode the current animation's
// curve, when present, replaces the design value. The result is clamped to
// the property's domain.
func (d *Document) Value(node ID, p PropertyType) float64 {
	n := d.mustNode(node)
	prop := n.props[p]
	base := prop.Design
	if d.mode == ModeAnimate {
		a := d.CurrentAnimation()
		if pa, ok := d.FindPropertyAnimation(a.id, node, p); ok {
			base = pa.GetValueAt(float64(a.current))
		}
	}
	return p.Clamp(base + prop.Increment)
}

// defaultInterpolation returns the interpolation given to new keys of p.
func (d *Document) defaultInterpolation(p PropertyType) Interpolation {
	if p.IsBoolean() {
		return Hold()
	}
	return Bezier(d.opts.numericCurve)
}

func (d *Document) notify(n Notification) {
	d.sink.Notify(n)
}

// --- View state (not recorded in history) ---

func (d *Document) setMode(m Mode) {
	if d.mode == m {
		return
	}
	d.mode = m
	for _, id := range slices.Sorted(maps.Keys(d.nodes)) {
		n := d.nodes[id]
		for p := range PropertyCount {
			if n.props[p].Increment != 0 {
				n.props[p].Increment = 0
				d.notify(PropertyChanged{Node: id, Property: p})
			}
		}
	}
	d.notify(ModeChanged{Mode: m})
}

func (d *Document) setCurrentFrame(anim ID, frame int) {
	a := d.mustAnimation(anim)
	frame = a.settings.ClampFrame(frame)
	if a.current == frame {
		return
	}
	a.current = frame
	d.notify(FrameChanged{Animation: anim, Frame: frame})
}

func (d *Document) selectAnimation(id ID) {
	d.mustAnimation(id)
	if d.current == id {
		return
	}
	d.current = id
	d.notify(AnimationChanged{Animation: id})
}

func (d *Document) setIncrement(node ID, p PropertyType, v float64) {
	n := d.mustNode(node)
	n.props[p].Increment = v
	d.notify(PropertyChanged{Node: node, Property: p})
}

// --- Mutators (called only from Document.apply) ---

func (d *Document) setAssetFolder(path string) {
	d.assetFolder = path
	d.notify(DocumentChanged{})
}

func (d *Document) insertNode(s NodeState) {
	if _, exists := d.nodes[s.ID]; exists {
		panic(fmt.Sprintf("pose: node %d already exists", s.ID))
	}
	n := &Node{id: s.ID, typ: s.Type, name: s.Name, parent: s.Parent, props: s.Properties}
	d.nodes[s.ID] = n
	d.setSiblings(s.Parent, insertAt(d.siblings(s.Parent), s.Index, s.ID))
	if d.opts.debug {
		d.debugCheckTreeDepth(s.ID)
		d.debugCheckChildCount(s.Parent)
	}
	d.notify(NodeAddedNotice{Node: s.ID})
}

func (d *Document) deleteNode(id ID) {
	n := d.mustNode(id)
	if len(n.children) > 0 {
		panic(fmt.Sprintf("pose: removing node %d that still has children", id))
	}
	sib := d.siblings(n.parent)
	d.setSiblings(n.parent, removeAt(sib, indexOf(sib, id)))
	delete(d.nodes, id)
	d.notify(NodeRemovedNotice{Node: id})
}

func (d *Document) renameNode(id ID, name string) {
	d.mustNode(id).name = name
	d.notify(NodeChanged{Node: id})
}

func (d *Document) moveNode(id, parent ID, index int) {
	n := d.mustNode(id)
	sib := d.siblings(n.parent)
	d.setSiblings(n.parent, removeAt(sib, indexOf(sib, id)))
	n.parent = parent
	d.setSiblings(parent, insertAt(d.siblings(parent), index, id))
	if d.opts.debug {
		d.debugCheckTreeDepth(id)
		d.debugCheckChildCount(parent)
	}
	d.notify(HierarchyChanged{Node: id, Parent: parent})
}

func (d *Document) setDesignValue(id ID, p PropertyType, v float64) {
	d.mustNode(id).props[p].Design = v
	d.notify(PropertyChanged{Node: id, Property: p})
}

func (d *Document) insertDrawOrder(id ID, index int) {
	d.drawOrder = insertAt(d.drawOrder, index, id)
	d.notify(DrawOrderChanged{})
}

func (d *Document) removeDrawOrder(id ID) {
	i := indexOf(d.drawOrder, id)
	if i < 0 {
		panic(fmt.Sprintf("pose: node %d not in draw order", id))
	}
	d.drawOrder = removeAt(d.drawOrder, i)
	d.notify(DrawOrderChanged{})
}

func (d *Document) insertAnimation(id ID, index int, s AnimationSettings, frame int) {
	if _, exists := d.animByID[id]; exists {
		panic(fmt.Sprintf("pose: animation %d already exists", id))
	}
	a := newAnimation(id, s)
	a.current = s.ClampFrame(frame)
	d.animByID[id] = a
	d.animations = insertAt(d.animations, index, id)
	d.notify(AnimationChanged{Animation: id})
}

func (d *Document) deleteAnimation(id ID) {
	a := d.mustAnimation(id)
	if len(a.collections) > 0 {
		panic(fmt.Sprintf("pose: removing animation %d that still has keys", id))
	}
	d.animations = removeAt(d.animations, indexOf(d.animations, id))
	delete(d.animByID, id)
	if d.current == id && len(d.animations) > 0 {
		d.current = d.animations[0]
	}
	d.notify(AnimationChanged{Animation: id, Removed: true})
}

func (d *Document) setAnimationSettings(id ID, s AnimationSettings, frame int) {
	a := d.mustAnimation(id)
	a.settings = s
	a.current = s.ClampFrame(frame)
	d.notify(AnimationChanged{Animation: id})
}

func (d *Document) insertCollection(id, anim, node ID) {
	a := d.mustAnimation(anim)
	d.mustNode(node)
	if _, exists := a.collections[node]; exists {
		panic(fmt.Sprintf("pose: node %d already animated in %d", node, anim))
	}
	d.collections[id] = &NodeAnimationCollection{
		id:         id,
		animation:  anim,
		node:       node,
		properties: make(map[PropertyType]ID),
	}
	a.collections[node] = id
	d.notify(CollectionChanged{Animation: anim, Node: node})
}

func (d *Document) deleteCollection(id ID) {
	c := d.mustCollection(id)
	if len(c.properties) > 0 {
		panic(fmt.Sprintf("pose: removing non-empty collection %d", id))
	}
	delete(d.mustAnimation(c.animation).collections, c.node)
	delete(d.collections, id)
	d.notify(CollectionChanged{Animation: c.animation, Node: c.node, Removed: true})
}

func (d *Document) insertPropertyAnimation(id, collection ID, p PropertyType) {
	c := d.mustCollection(collection)
	if _, exists := c.properties[p]; exists {
		panic(fmt.Sprintf("pose: %v already animated in collection %d", p, collection))
	}
	d.propAnims[id] = &PropertyAnimation{
		id:         id,
		collection: collection,
		animation:  c.animation,
		node:       c.node,
		property:   p,
	}
	c.properties[p] = id
	d.notify(CurveChanged{Animation: c.animation, Node: c.node, Property: p})
}

func (d *Document) deletePropertyAnimation(id ID) {
	pa := d.mustPropertyAnimation(id)
	if len(pa.keys) > 0 {
		panic(fmt.Sprintf("pose: removing non-empty property animation %d", id))
	}
	delete(d.mustCollection(pa.collection).properties, pa.property)
	delete(d.propAnims, id)
	d.notify(CurveChanged{Animation: pa.animation, Node: pa.node, Property: pa.property, Removed: true})
}

func (d *Document) insertKey(s KeyState) {
	if _, exists := d.keys[s.ID]; exists {
		panic(fmt.Sprintf("pose: key %d already exists", s.ID))
	}
	pa := d.mustPropertyAnimation(s.PropertyAnimation)
	k := &Key{id: s.ID, owner: s.PropertyAnimation, frame: s.Frame, value: s.Value, interp: s.Interpolation}
	pa.insertKey(k)
	d.keys[s.ID] = k
	d.notifyKey(pa, k, false)
}

func (d *Document) deleteKey(id ID) {
	k := d.mustKey(id)
	pa := d.mustPropertyAnimation(k.owner)
	pa.removeKey(k)
	delete(d.keys, id)
	d.notifyKey(pa, k, true)
}

func (d *Document) setKeyValue(id ID, v float64) {
	k := d.mustKey(id)
	k.value = v
	d.notifyKey(d.mustPropertyAnimation(k.owner), k, false)
}

func (d *Document) setKeyInterpolation(id ID, i Interpolation) {
	k := d.mustKey(id)
	k.interp = i
	d.notifyKey(d.mustPropertyAnimation(k.owner), k, false)
}

func (d *Document) setKeyFrame(id ID, frame int) {
	k := d.mustKey(id)
	pa := d.mustPropertyAnimation(k.owner)
	pa.removeKey(k)
	k.frame = frame
	pa.insertKey(k)
	d.notifyKey(pa, k, false)
}

func (d *Document) notifyKey(pa *PropertyAnimation, k *Key, removed bool) {
	d.notify(KeyChanged{
		Animation: pa.animation,
		Node:      pa.node,
		Property:  pa.property,
		Key:       k.id,
		Removed:   removed,
	})
}

func (d *Document) mustCollection(id ID) *NodeAnimationCollection {
	c, ok := d.collections[id]
	if !ok {
		panic(fmt.Sprintf("pose: unknown collection %d", id))
	}
	return c
}

func (d *Document) mustPropertyAnimation(id ID) *PropertyAnimation {
	p, ok := d.propAnims[id]
	if !ok {
		panic(fmt.Sprintf("pose: unknown property animation %d", id))
	}
	return p
}

func (d *Document) mustKey(id ID) *Key {
	k, ok := d.keys[id]
	if !ok {
		panic(fmt.Sprintf("pose: unknown key %d", id))
	}
	return k
}
