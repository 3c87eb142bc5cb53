package pose

import (
	"fmt"
	"maps"
	"slices"
)

// DocumentState is the persistent content of a Document: everything a
// storage layer has to keep so that Restore rebuilds the same document with
// the same ids. Preview increments, the editing mode and the history are
// not part of it.
//
// Nodes are listed parents first, each with its position among its
// siblings. All fields are exported so the state encodes with any
// reflection-based codec.
type DocumentState struct {
	LastID      ID
	AssetFolder string
	Nodes       []NodeState
	DrawOrder   []ID
	Animations  []AnimationState
	Current     ID
}

// AnimationState is the persistent content of one animation.
type AnimationState struct {
	ID           ID
	Settings     AnimationSettings
	CurrentFrame int
	Collections  []CollectionState
}

// CollectionState holds the curves of one node in one animation.
type CollectionState struct {
	ID     ID
	Node   ID
	Curves []CurveState
}

// CurveState holds the keys of one node property, in frame order.
type CurveState struct {
	ID       ID
	Property PropertyType
	Keys     []KeyState
}

// State captures the document for storage.
func (d *Document) State() DocumentState {
	s := DocumentState{
		LastID:      d.seq.Last(),
		AssetFolder: d.assetFolder,
		Nodes:       make([]NodeState, 0, len(d.nodes)),
		DrawOrder:   slices.Clone(d.drawOrder),
		Animations:  make([]AnimationState, 0, len(d.animations)),
		Current:     d.current,
	}
	d.Walk(func(n *Node) {
		ns := d.nodeState(n.id)
		for p := range ns.Properties {
			ns.Properties[p].Increment = 0
		}
		s.Nodes = append(s.Nodes, ns)
	})
	for _, aid := range d.animations {
		a := d.animByID[aid]
		as := AnimationState{ID: aid, Settings: a.settings, CurrentFrame: a.current}
		for _, node := range slices.Sorted(maps.Keys(a.collections)) {
			c := d.collections[a.collections[node]]
			cs := CollectionState{ID: c.id, Node: node}
			for _, p := range c.Properties() {
				pa := d.propAnims[c.properties[p]]
				curve := CurveState{ID: pa.id, Property: p, Keys: make([]KeyState, 0, len(pa.keys))}
				for _, k := range pa.keys {
					curve.Keys = append(curve.Keys, k.state())
				}
				cs.Curves = append(cs.Curves, curve)
			}
			as.Collections = append(as.Collections, cs)
		}
		s.Animations = append(s.Animations, as)
	}
	return s
}

// Restore rebuilds a document from s, keeping every id, without recording
// history or publishing notifications. The sequence resumes after
// max(s.LastID, WithSequence). A Current of zero selects the first
// animation. The result is checked like a debug-mode commit; any violated
// invariant returns an error matching ErrInvalidState.
func Restore(s DocumentState, opts ...Option) (d *Document, err error) {
	d = newDocument(opts)
	sink := d.sink
	d.sink = nopSink{}
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		msg, ok := r.(string)
		if !ok {
			panic(r)
		}
		d, err = nil, fmt.Errorf("%w: %s", ErrInvalidState, msg)
	}()

	d.seq.Resume(s.LastID)
	d.assetFolder = s.AssetFolder
	for _, n := range s.Nodes {
		for p := range n.Properties {
			n.Properties[p].Increment = 0
		}
		d.insertNode(n)
	}
	for i, id := range s.DrawOrder {
		d.insertDrawOrder(id, i)
	}
	for i, a := range s.Animations {
		d.insertAnimation(a.ID, i, a.Settings, a.CurrentFrame)
		for _, c := range a.Collections {
			d.insertCollection(c.ID, a.ID, c.Node)
			for _, curve := range c.Curves {
				d.insertPropertyAnimation(curve.ID, c.ID, curve.Property)
				for _, k := range curve.Keys {
					k.PropertyAnimation = curve.ID
					d.insertKey(k)
				}
			}
		}
	}
	d.current = s.Current
	if d.current == 0 && len(d.animations) > 0 {
		d.current = d.animations[0]
	}
	d.validate()

	d.sink = sink
	Logger().Info("pose: document restored",
		"nodes", len(d.nodes), "animations", len(d.animations), "keys", len(d.keys))
	return d, nil
}
