package pose

import "fmt"

// Event is a reversible change to a Document. Every event carries both the
// new and the previous values it needs, captured when it is created, so
// replaying it in either direction never consults the current state.
//
// The set of events is closed: only the types in this file implement Event,
// and Document.apply is the single place that knows how to play them.
type Event interface {
	event()
}

// --- Nodes ---

// NodeAdded inserts a childless node.
type NodeAdded struct {
	Node NodeState
}

// NodeRemoved removes a childless node.
type NodeRemoved struct {
	Node NodeState
}

// NodeRenamed changes a node's display name.
type NodeRenamed struct {
	Node       ID
	Name, Undo string
}

// NodeMoved reparents or reorders a node. Index is the position among the
// new siblings once the node has left its old place.
type NodeMoved struct {
	Node       ID
	Parent     ID
	Index      int
	UndoParent ID
	UndoIndex  int
}

// DesignValueChanged sets the persisted design value of a node property.
type DesignValueChanged struct {
	Node        ID
	Property    PropertyType
	Value, Undo float64
}

// AssetFolderChanged sets the folder sprite images are loaded from.
type AssetFolderChanged struct {
	Folder, Undo string
}

// --- Draw order ---

// DrawOrderInserted adds a sprite to the draw order.
type DrawOrderInserted struct {
	Node  ID
	Index int
}

// DrawOrderRemoved removes a sprite from the draw order.
type DrawOrderRemoved struct {
	Node  ID
	Index int
}

// DrawOrderMoved changes a sprite's position in the draw order.
type DrawOrderMoved struct {
	Node             ID
	Index, UndoIndex int
}

// --- Animations ---

// AnimationAdded inserts an empty animation.
type AnimationAdded struct {
	Animation ID
	Index     int
	Settings  AnimationSettings
}

// AnimationRemoved removes an animation that no longer holds keys. Frame is
// the scrubber position restored on undo.
type AnimationRemoved struct {
	Animation ID
	Index     int
	Settings  AnimationSettings
	Frame     int
}

// AnimationSettingsChanged replaces an animation's settings. The current
// frame is clamped into the new range going forward and restored to
// UndoFrame going backward.
type AnimationSettingsChanged struct {
	Animation      ID
	Settings, Undo AnimationSettings
	UndoFrame      int
}

// CollectionAdded creates the keyframe collection of a node in an animation.
type CollectionAdded struct {
	Collection ID
	Animation  ID
	Node       ID
}

// CollectionRemoved deletes an empty collection.
type CollectionRemoved struct {
	Collection ID
	Animation  ID
	Node       ID
}

// PropertyAnimationAdded creates the curve of one property in a collection.
type PropertyAnimationAdded struct {
	PropertyAnimation ID
	Collection        ID
	Property          PropertyType
}

// PropertyAnimationRemoved deletes a curve that no longer holds keys.
type PropertyAnimationRemoved struct {
	PropertyAnimation ID
	Collection        ID
	Property          PropertyType
}

// --- Keys ---

// KeyAdded inserts a key.
type KeyAdded struct {
	Key KeyState
}

// KeyRemoved removes a key.
type KeyRemoved struct {
	Key KeyState
}

// KeyValueChanged sets a key's value.
type KeyValueChanged struct {
	Key         ID
	Value, Undo float64
}

// KeyInterpolationChanged sets how a key blends into the next one.
type KeyInterpolationChanged struct {
	Key                 ID
	Interpolation, Undo Interpolation
}

// KeyMoved moves a key to another free frame of the same curve.
type KeyMoved struct {
	Key              ID
	Frame, UndoFrame int
}

func (NodeAdded) event()                {}
func (NodeRemoved) event()              {}
func (NodeRenamed) event()              {}
func (NodeMoved) event()                {}
func (DesignValueChanged) event()       {}
func (AssetFolderChanged) event()       {}
func (DrawOrderInserted) event()        {}
func (DrawOrderRemoved) event()         {}
func (DrawOrderMoved) event()           {}
func (AnimationAdded) event()           {}
func (AnimationRemoved) event()         {}
func (AnimationSettingsChanged) event() {}
func (CollectionAdded) event()          {}
func (CollectionRemoved) event()        {}
func (PropertyAnimationAdded) event()   {}
func (PropertyAnimationRemoved) event() {}
func (KeyAdded) event()                 {}
func (KeyRemoved) event()               {}
func (KeyValueChanged) event()          {}
func (KeyInterpolationChanged) event()  {}
func (KeyMoved) event()                 {}

// apply plays e against the document, forward or backward.
func (d *Document) apply(e Event, forward bool) {
	switch e := e.(type) {
	case NodeAdded:
		if forward {
			d.insertNode(e.Node)
		} else {
			d.deleteNode(e.Node.ID)
		}
	case NodeRemoved:
		if forward {
			d.deleteNode(e.Node.ID)
		} else {
			d.insertNode(e.Node)
		}
	case NodeRenamed:
		if forward {
			d.renameNode(e.Node, e.Name)
		} else {
			d.renameNode(e.Node, e.Undo)
		}
	case NodeMoved:
		if forward {
			d.moveNode(e.Node, e.Parent, e.Index)
		} else {
			d.moveNode(e.Node, e.UndoParent, e.UndoIndex)
		}
	case DesignValueChanged:
		if forward {
			d.setDesignValue(e.Node, e.Property, e.Value)
		} else {
			d.setDesignValue(e.Node, e.Property, e.Undo)
		}
	case AssetFolderChanged:
		if forward {
			d.setAssetFolder(e.Folder)
		} else {
			d.setAssetFolder(e.Undo)
		}

	case DrawOrderInserted:
		if forward {
			d.insertDrawOrder(e.Node, e.Index)
		} else {
			d.removeDrawOrder(e.Node)
		}
	case DrawOrderRemoved:
		if forward {
			d.removeDrawOrder(e.Node)
		} else {
			d.insertDrawOrder(e.Node, e.Index)
		}
	case DrawOrderMoved:
		d.removeDrawOrder(e.Node)
		if forward {
			d.insertDrawOrder(e.Node, e.Index)
		} else {
			d.insertDrawOrder(e.Node, e.UndoIndex)
		}

	case AnimationAdded:
		if forward {
			d.insertAnimation(e.Animation, e.Index, e.Settings, e.Settings.BeginFrame)
		} else {
			d.deleteAnimation(e.Animation)
		}
	case AnimationRemoved:
		if forward {
			d.deleteAnimation(e.Animation)
		} else {
			d.insertAnimation(e.Animation, e.Index, e.Settings, e.Frame)
		}
	case AnimationSettingsChanged:
		if forward {
			d.setAnimationSettings(e.Animation, e.Settings, e.UndoFrame)
		} else {
			d.setAnimationSettings(e.Animation, e.Undo, e.UndoFrame)
		}
	case CollectionAdded:
		if forward {
			d.insertCollection(e.Collection, e.Animation, e.Node)
		} else {
			d.deleteCollection(e.Collection)
		}
	case CollectionRemoved:
		if forward {
			d.deleteCollection(e.Collection)
		} else {
			d.insertCollection(e.Collection, e.Animation, e.Node)
		}
	case PropertyAnimationAdded:
		if forward {
			d.insertPropertyAnimation(e.PropertyAnimation, e.Collection, e.Property)
		} else {
			d.deletePropertyAnimation(e.PropertyAnimation)
		}
	case PropertyAnimationRemoved:
		if forward {
			d.deletePropertyAnimation(e.PropertyAnimation)
		} else {
			d.insertPropertyAnimation(e.PropertyAnimation, e.Collection, e.Property)
		}

	case KeyAdded:
		if forward {
			d.insertKey(e.Key)
		} else {
			d.deleteKey(e.Key.ID)
		}
	case KeyRemoved:
		if forward {
			d.deleteKey(e.Key.ID)
		} else {
			d.insertKey(e.Key)
		}
	case KeyValueChanged:
		if forward {
			d.setKeyValue(e.Key, e.Value)
		} else {
			d.setKeyValue(e.Key, e.Undo)
		}
	case KeyInterpolationChanged:
		if forward {
			d.setKeyInterpolation(e.Key, e.Interpolation)
		} else {
			d.setKeyInterpolation(e.Key, e.Undo)
		}
	case KeyMoved:
		if forward {
			d.setKeyFrame(e.Key, e.Frame)
		} else {
			d.setKeyFrame(e.Key, e.UndoFrame)
		}

	default:
		panic(fmt.Sprintf("pose: unknown event %T", e))
	}
}
