// Package geometry implements the Poincaré disk primitives used by the trainer:
// hyperbolic distance, its Riemannian gradient and the add-and-clip update rule.
//
// 🚀 What is the Poincaré disk?
//
//	The open unit disk {x ∈ ℝ² : ‖x‖ < 1} with the metric
//
//	  d(u, v) = acosh(1 + 2‖u−v‖² / ((1−‖u‖²)(1−‖v‖²)))
//
//	Distances grow without bound towards the boundary, which leaves room for
//	exponentially many leaves of a hierarchy.
//
// ✨ Key features:
//   - Distance returns a Context with every intermediate value so Gradient
//     never recomputes dot products.
//   - Gradient folds the metric correction (1−‖x‖²)²/4 into its result, so an
//     update is a plain add followed by a clip.
//   - Apply is the single writer that keeps points strictly inside the disk.
//
// Numerical policy:
//   - 1−‖u‖² and 1−‖v‖² are clamped from below by eps (DefaultEpsilon = 1e-6).
//   - The acosh argument is floored at 1.
//   - Updated points are clipped to radius 1−eps.
//
// Nothing here panics, logs or keeps state; all functions are pure.
package geometry
