package player

// Channel identifies an animated node property.
type Channel uint8

const (
	ChannelTranslationX Channel = iota
	ChannelTranslationY
	ChannelRotation
	ChannelVisibility
	ChannelBoneLength

	ChannelCount
)

// String returns the channel name.
func (c Channel) String() string {
	switch c {
	case ChannelTranslationX:
		return "TranslationX"
	case ChannelTranslationY:
		return "TranslationY"
	case ChannelRotation:
		return "Rotation"
	case ChannelVisibility:
		return "Visibility"
	case ChannelBoneLength:
		return "BoneLength"
	}
	return "Unknown"
}

// NodeKind distinguishes sprites from bones.
type NodeKind uint8

const (
	KindSprite NodeKind = iota
	KindBone
)

// Node is one entry of a rig's flattened hierarchy.
type Node struct {
	ID     uint64
	Name   string
	Kind   NodeKind
	Parent int // index into Rig.Nodes, -1 for roots
	Design [ChannelCount]float64
}

// Track holds the compiled segments of one animated (node, channel) pair.
type Track struct {
	Node     int
	Channel  Channel
	Segments []Segment
}

// Clip is one compiled animation.
type Clip struct {
	Name     string
	Timing   Timing
	Duration float64
	Tracks   []Track
}

// Rig is the read-only animation description shared by instances.
// Parents precede their children in Nodes.
type Rig struct {
	Nodes     []Node
	DrawOrder []int
	Clips     []Clip
}

// ClipIndex returns the index of the clip with the given name, or -1.
func (r *Rig) ClipIndex(name string) int {
	for i := range r.Clips {
		if r.Clips[i].Name == name {
			return i
		}
	}
	return -1
}

// NodeIndex returns the index of the node with the given name, or -1.
func (r *Rig) NodeIndex(name string) int {
	for i := range r.Nodes {
		if r.Nodes[i].Name == name {
			return i
		}
	}
	return -1
}

// maxTracks returns the largest track count over all clips.
func (r *Rig) maxTracks() int {
	n := 0
	for i := range r.Clips {
		n = max(n, len(r.Clips[i].Tracks))
	}
	return n
}
