package pose

import "sort"

// AnimationSettings are the editable attributes of an Animation.
type AnimationSettings struct {
	Name       string
	BeginFrame int
	EndFrame   int
	FPS        float64
	Loop       bool
}

// Valid reports whether the settings satisfy BeginFrame <= EndFrame and
// FPS > 0.
func (s AnimationSettings) Valid() bool {
	return s.BeginFrame <= s.EndFrame && s.FPS > 0
}

// ClampFrame clamps f into [BeginFrame, EndFrame].
func (s AnimationSettings) ClampFrame(f int) int {
	return min(max(f, s.BeginFrame), s.EndFrame)
}

// Duration returns the playback length in seconds; loops reserve one extra
// frame to blend back to the start.
func (s AnimationSettings) Duration() float64 {
	frames := s.EndFrame - s.BeginFrame
	if s.Loop {
		frames++
	}
	return float64(frames) / s.FPS
}

// Animation is a named timeline holding per-node keyframe collections.
type Animation struct {
	id          ID
	settings    AnimationSettings
	current     int
	collections map[ID]ID // node id -> collection id
}

func newAnimation(id ID, s AnimationSettings) *Animation {
	return &Animation{
		id:          id,
		settings:    s,
		current:     s.BeginFrame,
		collections: make(map[ID]ID),
	}
}

// ID returns the animation id.
func (a *Animation) ID() ID { return a.id }

// Name returns the animation name.
func (a *Animation) Name() string { return a.settings.Name }

// Settings returns the animation's editable attributes.
func (a *Animation) Settings() AnimationSettings { return a.settings }

// CurrentFrame returns the scrubber position, always within the range.
func (a *Animation) CurrentFrame() int { return a.current }

// Collection returns the id of the node's keyframe collection.
func (a *Animation) Collection(node ID) (ID, bool) {
	id, ok := a.collections[node]
	return id, ok
}

// NumCollections returns the number of animated nodes.
func (a *Animation) NumCollections() int { return len(a.collections) }

// NodeAnimationCollection groups the property animations of one node within
// one animation. It exists only while at least one of them does.
type NodeAnimationCollection struct {
	id         ID
	animation  ID
	node       ID
	properties map[PropertyType]ID
}

// ID returns the collection id.
func (c *NodeAnimationCollection) ID() ID { return c.id }

// Animation returns the owning animation id.
func (c *NodeAnimationCollection) Animation() ID { return c.animation }

// Node returns the animated node id.
func (c *NodeAnimationCollection) Node() ID { return c.node }

// PropertyAnimation returns the id of the animation curve for p.
func (c *NodeAnimationCollection) PropertyAnimation(p PropertyType) (ID, bool) {
	id, ok := c.properties[p]
	return id, ok
}

// Len returns the number of animated properties.
func (c *NodeAnimationCollection) Len() int { return len(c.properties) }

// Properties returns the animated property types in ascending order.
func (c *NodeAnimationCollection) Properties() []PropertyType {
	out := make([]PropertyType, 0, len(c.properties))
	for p := range PropertyCount {
		if _, ok := c.properties[p]; ok {
			out = append(out, p)
		}
	}
	return out
}

// PropertyAnimation is the keyframe curve of one node property within one
// animation. Keys are kept in strictly ascending frame order.
type PropertyAnimation struct {
	id         ID
	collection ID
	animation  ID
	node       ID
	property   PropertyType
	keys       []*Key
}

// ID returns the property animation id.
func (p *PropertyAnimation) ID() ID { return p.id }

// Collection returns the owning collection id.
func (p *PropertyAnimation) Collection() ID { return p.collection }

// Animation returns the owning animation id.
func (p *PropertyAnimation) Animation() ID { return p.animation }

// Node returns the animated node id.
func (p *PropertyAnimation) Node() ID { return p.node }

// Property returns the animated property.
func (p *PropertyAnimation) Property() PropertyType { return p.property }

// Len returns the number of keys.
func (p *PropertyAnimation) Len() int { return len(p.keys) }

// Keys returns the keys in frame order. The returned slice MUST NOT be
// mutated by the caller.
func (p *PropertyAnimation) Keys() []*Key { return p.keys }

// KeyAt returns the key at exactly frame.
func (p *PropertyAnimation) KeyAt(frame int) (*Key, bool) {
	i := p.search(float64(frame))
	if i < len(p.keys) && p.keys[i].frame == frame {
		return p.keys[i], true
	}
	return nil, false
}

// search returns the index of the first key at or after frame.
func (p *PropertyAnimation) search(frame float64) int {
	return sort.Search(len(p.keys), func(i int) bool {
		return float64(p.keys[i].frame) >= frame
	})
}

// GetValueAt resolves the curve at a possibly fractional frame.
//
// A frame that matches a key returns that key's value exactly. Frames before
// the first key or after the last key return that key's value; there is no
// extrapolation. Between keys the left key's interpolation maps the elapsed
// fraction to a blend weight y, and the result is left*(1-y) + right*y.
func (p *PropertyAnimation) GetValueAt(frame float64) float64 {
	n := len(p.keys)
	if n == 0 {
		panic("pose: GetValueAt on empty property animation")
	}
	i := p.search(frame)
	switch {
	case i < n && float64(p.keys[i].frame) == frame:
		return p.keys[i].value
	case i == 0:
		return p.keys[0].value
	case i == n:
		return p.keys[n-1].value
	}
	prev, next := p.keys[i-1], p.keys[i]
	x := (frame - float64(prev.frame)) / float64(next.frame-prev.frame)
	y := prev.interp.CalculateY(x)
	return prev.value*(1-y) + next.value*y
}

func (p *PropertyAnimation) insertKey(k *Key) {
	i := p.search(float64(k.frame))
	if i < len(p.keys) && p.keys[i].frame == k.frame {
		panic("pose: duplicate key frame")
	}
	p.keys = append(p.keys, nil)
	copy(p.keys[i+1:], p.keys[i:])
	p.keys[i] = k
}

func (p *PropertyAnimation) removeKey(k *Key) {
	for i, c := range p.keys {
		if c == k {
			copy(p.keys[i:], p.keys[i+1:])
			p.keys[len(p.keys)-1] = nil
			p.keys = p.keys[:len(p.keys)-1]
			return
		}
	}
	panic("pose: key not in property animation")
}

// Key is one keyframe.
type Key struct {
	id     ID
	owner  ID // property animation id
	frame  int
	value  float64
	interp Interpolation
}

// ID returns the key id.
func (k *Key) ID() ID { return k.id }

// PropertyAnimation returns the owning property animation id.
func (k *Key) PropertyAnimation() ID { return k.owner }

// Frame returns the key's frame.
func (k *Key) Frame() int { return k.frame }

// Value returns the key's value.
func (k *Key) Value() float64 { return k.value }

// Interpolation returns how the key blends into the next one.
func (k *Key) Interpolation() Interpolation { return k.interp }

// KeyState is a full snapshot of a key as carried by add/remove events.
type KeyState struct {
	ID                ID
	PropertyAnimation ID
	Frame             int
	Value             float64
	Interpolation     Interpolation
}

func (k *Key) state() KeyState {
	return KeyState{
		ID:                k.id,
		PropertyAnimation: k.owner,
		Frame:             k.frame,
		Value:             k.value,
		Interpolation:     k.interp,
	}
}
