package pose

import (
	"math"

	"github.com/phanxgames/pose/player"
)

// PropertyType names an animatable node property.
type PropertyType uint8

const (
	PropertyTranslationX PropertyType = iota
	PropertyTranslationY
	PropertyRotationAngle
	PropertyVisibility
	PropertyBoneLength

	PropertyCount
)

// DefaultBoneLength is the design bone length of new bones.
const DefaultBoneLength = 50

func (p PropertyType) String() string {
	switch p {
	case PropertyTranslationX:
		return "TranslationX"
	case PropertyTranslationY:
		return "TranslationY"
	case PropertyRotationAngle:
		return "RotationAngle"
	case PropertyVisibility:
		return "Visibility"
	case PropertyBoneLength:
		return "BoneLength"
	}
	return "Unknown"
}

// IsBoolean reports whether the property encodes a flag as 0 or 1.
func (p PropertyType) IsBoolean() bool {
	return p == PropertyVisibility
}

// Clamp maps v into the property's valid domain.
func (p PropertyType) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		v = 0
	}
	switch p {
	case PropertyVisibility:
		if v >= 0.5 {
			return 1
		}
		return 0
	case PropertyBoneLength:
		return math.Max(v, 0)
	}
	return v
}

// AppliesTo reports whether nodes of type t carry this property.
func (p PropertyType) AppliesTo(t NodeType) bool {
	if p == PropertyBoneLength {
		return t == NodeTypeBone
	}
	return p < PropertyCount
}

func (p PropertyType) channel() player.Channel {
	switch p {
	case PropertyTranslationX:
		return player.ChannelTranslationX
	case PropertyTranslationY:
		return player.ChannelTranslationY
	case PropertyRotationAngle:
		return player.ChannelRotation
	case PropertyVisibility:
		return player.ChannelVisibility
	case PropertyBoneLength:
		return player.ChannelBoneLength
	}
	panic("pose: unknown property type")
}

// Property holds the two values stored per node property: the persisted
// design value and a transient preview increment layered on top of it.
type Property struct {
	Design    float64
	Increment float64
}

// defaultProperties returns the initial property values for a node type.
func defaultProperties(t NodeType) [PropertyCount]Property {
	var p [PropertyCount]Property
	p[PropertyVisibility].Design = 1
	if t == NodeTypeBone {
		p[PropertyBoneLength].Design = DefaultBoneLength
	}
	return p
}
