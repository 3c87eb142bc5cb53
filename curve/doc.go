// Package curve provides the ease curves used to interpolate keyframes.
//
// A [Bezier] is a cubic Bézier constrained to run from (0,0) to (1,1). Its two
// free control points shape how a value blends between two keys: X is the
// elapsed fraction of the segment and Y the fraction of value progress.
//
// [Solver] inverts the curve numerically so that callers can ask for Y at a
// given X. Solvers are immutable once built and safe for concurrent use, so a
// single solver can be shared by every runtime instance playing the same clip.
//
// Curve evaluation is delegated to [gg.CubicBez] from gogpu/gg.
//
// [gg.CubicBez]: https://pkg.go.dev/github.com/gogpu/gg#CubicBez
package curve
