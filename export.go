package pose

import "github.com/phanxgames/pose/player"

// Export compiles the document into a runtime rig. Nodes are numbered in
// depth-first order so parents precede children, and every animation
// becomes a clip in document order. Design values are exported without
// preview increments.
func (d *Document) Export() *player.Rig {
	rig := &player.Rig{
		Nodes:     make([]player.Node, 0, len(d.nodes)),
		DrawOrder: make([]int, 0, len(d.drawOrder)),
		Clips:     make([]player.Clip, 0, len(d.animations)),
	}
	index := make(map[ID]int, len(d.nodes))
	var order []ID
	d.Walk(func(n *Node) {
		parent := -1
		if n.parent != 0 {
			parent = index[n.parent]
		}
		index[n.id] = len(rig.Nodes)
		order = append(order, n.id)
		rn := player.Node{ID: uint64(n.id), Name: n.name, Kind: n.typ.kind(), Parent: parent}
		for p := range PropertyCount {
			if p.AppliesTo(n.typ) {
				rn.Design[p.channel()] = p.Clamp(n.props[p].Design)
			}
		}
		rig.Nodes = append(rig.Nodes, rn)
	})
	for _, id := range d.drawOrder {
		rig.DrawOrder = append(rig.DrawOrder, index[id])
	}

	var keys []player.Keyframe
	for _, aid := range d.animations {
		a := d.animByID[aid]
		s := a.settings
		clip := player.Clip{
			Name: s.Name,
			Timing: player.Timing{
				BeginFrame: s.BeginFrame,
				EndFrame:   s.EndFrame,
				FPS:        s.FPS,
				Loop:       s.Loop,
			},
		}
		clip.Duration = clip.Timing.Duration()
		for _, node := range order {
			cid, ok := a.collections[node]
			if !ok {
				continue
			}
			c := d.collections[cid]
			for _, p := range c.Properties() {
				pa := d.propAnims[c.properties[p]]
				keys = keys[:0]
				for _, k := range pa.keys {
					keys = append(keys, player.Keyframe{
						Frame: k.frame,
						Value: k.value,
						Kind:  k.interp.curveKind(),
						Curve: k.interp.curve,
					})
				}
				clip.Tracks = append(clip.Tracks, player.Track{
					Node:     index[node],
					Channel:  p.channel(),
					Segments: player.CompileTrack(keys, clip.Timing, d.opts.tolerance),
				})
			}
		}
		rig.Clips = append(rig.Clips, clip)
		Logger().Debug("pose: exported clip", "name", s.Name, "tracks", len(clip.Tracks))
	}
	return rig
}
