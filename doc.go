// Package poincare learns two-dimensional hyperbolic embeddings of taxonomies
// inside the Poincaré disk, where tree-like hierarchies fit with low distortion.
//
// 🚀 What is poincare?
//
//	A small, deterministic toolkit that brings together:
//		• Geometry: hyperbolic distance, its Riemannian gradient, add-and-clip updates
//		• Vocabulary: dense term ids and hypernym edge lists
//		• Training: shuffled epochs, annealed learning rate, softmax negative sampling
//		• Persistence: trained runs stored in SQLite
//		• Tooling: hypernym extraction, reconstruction metrics, PNG/SVG plots
//
// Under the hood, everything is organized in subpackages:
//
//	geometry/   distance, gradient and the clipping update rule (pure functions)
//	vocab/      term ↔ id mapping and the positive edge store
//	edgelist/   reading and writing term1<TAB>term2 edge files
//	embedding/  the mutable embedding table and the read-only post-training view
//	trainer/    the negative-sampling training loop
//	store/      SQLite persistence of trained runs
//	extract/    hypernym-path extraction from a child→parent taxonomy
//	evaluate/   mean rank and MAP reconstruction metrics
//	plot/       rendering the disk with labelled points
//
// Quick picture of the disk:
//
//	       ╭───────╮
//	     ╱  mammal   ╲
//	    │  dog   cat  │   roots near the centre,
//	     ╲ puppy     ╱    leaves towards the boundary
//	       ╰───────╯
//
//	go install github.com/katalvlaran/poincare/cmd/poincare@latest
package poincare
