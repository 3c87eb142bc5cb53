// Package player evaluates exported pose animations at game runtime.
//
// The editor resolves a property by searching its keyframes on every query.
// The player instead compiles each property's keys once, at load time, into a
// flat array of [Segment] values and walks that array forward as time
// advances. Sequential playback therefore costs one range check per property
// per frame, and no allocations.
//
// A [Rig] is the read-only description produced by the exporter: node
// hierarchy, design values, draw order and clips. Many [Instance] values may
// share one Rig; each instance owns its own arrays, so instances can be
// updated in parallel with [UpdateAll] without synchronization.
//
// World transforms are exposed as [ebiten.GeoM] so they can be handed
// straight to DrawImage:
//
//	inst := player.NewInstance(rig)
//	inst.Play(rig.ClipIndex("walk"))
//
//	func (g *Game) Update() error {
//		g.inst.Update(1.0 / float64(ebiten.TPS()))
//		return nil
//	}
//
//	func (g *Game) Draw(screen *ebiten.Image) {
//		for _, i := range g.inst.DrawOrder() {
//			var op ebiten.DrawImageOptions
//			if g.inst.DrawOptions(i, &op) {
//				screen.DrawImage(g.images[i], &op)
//			}
//		}
//	}
//
// The player performs no validation; the exporter guarantees that keys are
// ordered, that parents precede their children in [Rig.Nodes], and that every
// index is in range.
package player
