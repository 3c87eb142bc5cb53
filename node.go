package pose

// Node is a scene-graph entity. Nodes live in the document's arena and refer
// to their parent and children by id. The zero parent id means the node is a
// root.
type Node struct {
	id       ID
	typ      NodeType
	name     string
	parent   ID
	children []ID
	props    [PropertyCount]Property
}

// ID returns the node id.
func (n *Node) ID() ID { return n.id }

// Type returns the node type.
func (n *Node) Type() NodeType { return n.typ }

// Name returns the display name.
func (n *Node) Name() string { return n.name }

// Parent returns the parent id, or zero for root nodes.
func (n *Node) Parent() ID { return n.parent }

// Children returns the child ids in order. The returned slice MUST NOT be
// mutated by the caller.
func (n *Node) Children() []ID { return n.children }

// NumChildren returns the number of children.
func (n *Node) NumChildren() int { return len(n.children) }

// Property returns the stored values of p.
func (n *Node) Property(p PropertyType) Property { return n.props[p] }

// HasProperty reports whether the node carries p.
func (n *Node) HasProperty(p PropertyType) bool { return p.AppliesTo(n.typ) }

// NodeState is a full snapshot of a node as carried by add/remove events.
// Index is the position among the parent's children (or among the roots).
type NodeState struct {
	ID         ID
	Type       NodeType
	Name       string
	Parent     ID
	Index      int
	Properties [PropertyCount]Property
}

// --- Tree helpers ---

// indexOf returns the position of id in ids, or -1.
func indexOf(ids []ID, id ID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

// insertAt inserts id at index, clamping index into range.
func insertAt(ids []ID, index int, id ID) []ID {
	index = min(max(index, 0), len(ids))
	ids = append(ids, 0)
	copy(ids[index+1:], ids[index:])
	ids[index] = id
	return ids
}

// removeAt removes the element at index.
func removeAt(ids []ID, index int) []ID {
	copy(ids[index:], ids[index+1:])
	return ids[:len(ids)-1]
}
