package pose

import (
	"fmt"
	"slices"
)

// debugf panics with an invariant violation found in debug mode.
func debugf(format string, args ...any) {
	panic("pose debug: " + fmt.Sprintf(format, args...))
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func (d *Document) debugCheckTreeDepth(id ID) {
	depth := 0
	for p := id; p != 0; p = d.mustNode(p).parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		Logger().Warn("pose: tree depth exceeds threshold",
			"node", d.nodes[id].name, "depth", depth, "threshold", debugMaxTreeDepth)
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func (d *Document) debugCheckChildCount(parent ID) {
	if parent == 0 {
		return
	}
	n := d.mustNode(parent)
	if len(n.children) > debugMaxChildCount {
		Logger().Warn("pose: node child count exceeds threshold",
			"node", n.name, "children", len(n.children), "threshold", debugMaxChildCount)
	}
}

// validate checks every structural invariant of the document and panics on
// the first violation. It runs after each commit, undo and redo in debug
// mode; events inside a unit of work may pass through states it would
// reject.
func (d *Document) validate() {
	d.validateIDs()
	d.validateTree()
	d.validateDrawOrder()
	d.validateAnimations()
}

func (d *Document) validateTree() {
	seen := make(map[ID]bool, len(d.nodes))
	var visit func(parent ID, ids []ID)
	visit = func(parent ID, ids []ID) {
		for _, id := range ids {
			n, ok := d.nodes[id]
			if !ok {
				debugf("child %d of %d is not in the arena", id, parent)
			}
			if seen[id] {
				debugf("node %d reachable twice", id)
			}
			seen[id] = true
			if n.parent != parent {
				debugf("node %d has parent %d but is listed under %d", id, n.parent, parent)
			}
			if n.typ != NodeTypeSprite && n.typ != NodeTypeBone {
				debugf("node %d has unknown type %d", id, n.typ)
			}
			for p := range PropertyCount {
				if !p.AppliesTo(n.typ) && n.props[p] != (Property{}) {
					debugf("node %d carries %v it does not have", id, p)
				}
				if v := n.props[p].Design; p.Clamp(v) != v {
					debugf("node %d %v design value %v outside its domain", id, p, v)
				}
			}
			visit(id, n.children)
		}
	}
	visit(0, d.roots)
	if len(seen) != len(d.nodes) {
		debugf("%d nodes in arena, %d reachable", len(d.nodes), len(seen))
	}
}

// validateIDs checks that every entity id is non-zero, unique across
// entity kinds and already handed out by the sequence.
func (d *Document) validateIDs() {
	owner := make(map[ID]string, len(d.nodes)+len(d.animByID)+len(d.collections)+len(d.propAnims)+len(d.keys))
	check := func(kind string, id ID) {
		if id == 0 {
			debugf("%s with the zero id", kind)
		}
		if other, dup := owner[id]; dup {
			debugf("id %d used by %s and %s", id, other, kind)
		}
		if id > d.seq.Last() {
			debugf("%s id %d ahead of sequence %d", kind, id, d.seq.Last())
		}
		owner[id] = kind
	}
	for id := range d.nodes {
		check("node", id)
	}
	for id := range d.animByID {
		check("animation", id)
	}
	for id := range d.collections {
		check("collection", id)
	}
	for id := range d.propAnims {
		check("property animation", id)
	}
	for id := range d.keys {
		check("key", id)
	}
}

func (d *Document) validateDrawOrder() {
	sprites := 0
	for _, n := range d.nodes {
		if n.typ == NodeTypeSprite {
			sprites++
		}
	}
	if len(d.drawOrder) != sprites {
		debugf("draw order has %d entries for %d sprites", len(d.drawOrder), sprites)
	}
	seen := make(map[ID]bool, len(d.drawOrder))
	for _, id := range d.drawOrder {
		n, ok := d.nodes[id]
		if !ok || n.typ != NodeTypeSprite || seen[id] {
			debugf("draw order entry %d is not a unique sprite", id)
		}
		seen[id] = true
	}
}

func (d *Document) validateAnimations() {
	if len(d.animations) == 0 {
		debugf("document has no animation")
	}
	if _, ok := d.animByID[d.current]; !ok {
		debugf("current animation %d does not exist", d.current)
	}
	collections, propAnims, keys := 0, 0, 0
	for _, aid := range d.animations {
		a, ok := d.animByID[aid]
		if !ok {
			debugf("animation %d listed but missing", aid)
		}
		if !a.settings.Valid() {
			debugf("animation %d has invalid settings %+v", aid, a.settings)
		}
		if a.current != a.settings.ClampFrame(a.current) {
			debugf("animation %d frame %d outside range", aid, a.current)
		}
		for node, cid := range a.collections {
			collections++
			c, ok := d.collections[cid]
			if !ok || c.animation != aid || c.node != node {
				debugf("collection %d does not belong to animation %d node %d", cid, aid, node)
			}
			if _, ok := d.nodes[node]; !ok {
				debugf("collection %d animates missing node %d", cid, node)
			}
			if len(c.properties) == 0 {
				debugf("collection %d is empty", cid)
			}
			for p, pid := range c.properties {
				propAnims++
				pa, ok := d.propAnims[pid]
				if !ok || pa.collection != cid || pa.property != p || pa.node != node || pa.animation != aid {
					debugf("property animation %d does not belong to collection %d", pid, cid)
				}
				if len(pa.keys) == 0 {
					debugf("property animation %d is empty", pid)
				}
				if !slices.IsSortedFunc(pa.keys, func(x, y *Key) int { return x.frame - y.frame }) {
					debugf("property animation %d keys out of order", pid)
				}
				for i, k := range pa.keys {
					keys++
					if i > 0 && pa.keys[i-1].frame == k.frame {
						debugf("property animation %d has two keys at frame %d", pid, k.frame)
					}
					if d.keys[k.id] != k || k.owner != pid {
						debugf("key %d is not registered to %d", k.id, pid)
					}
					if p.Clamp(k.value) != k.value {
						debugf("key %d value %v outside the %v domain", k.id, k.value, p)
					}
				}
			}
		}
	}
	if collections != len(d.collections) || propAnims != len(d.propAnims) || keys != len(d.keys) {
		debugf("orphaned entities: %d/%d collections, %d/%d property animations, %d/%d keys",
			collections, len(d.collections), propAnims, len(d.propAnims), keys, len(d.keys))
	}
}
