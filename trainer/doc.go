// Package trainer fits Poincaré disk embeddings to a hypernym edge list with
// Riemannian SGD and softmax negative sampling.
//
// 🚀 One training step
//
//	For a positive edge (w₁, w₂) the trainer forms 1+K candidate pairs: the edge
//	itself and K negatives, each drawn as two independent uniform ids (with
//	replacement, self pairs and repeats of the positive allowed). With
//	dᵢ = d(uᵢ, vᵢ) and Z = Σ exp(−dᵢ), candidate i receives the upstream
//	coefficient
//
//	  cᵢ = [i is positive] − exp(−dᵢ)/Z
//
//	which is the derivative of the softmax cross-entropy
//	L = −log(exp(−d₀)/Z) = d₀ + log Z with respect to dᵢ. The gradient of dᵢ
//	is scaled by cᵢ and every endpoint moves by −lr·cᵢ·∇dᵢ through
//	geometry.Apply. Pairs at distance exactly zero
//	have no gradient and are left untouched.
//
// ⚙️ One epoch
//
//  1. Shuffle the edge list (Fisher–Yates, seeded).
//  2. lr = (1−r)·lr₁ + r·lr₂ with r = epoch/epochs.
//  3. Run one step per edge, in order.
//  4. Report EpochStats to OnEpoch; an error aborts training.
//
// Usage:
//
//	tr, err := trainer.New(store,
//	    trainer.WithEpochs(200),
//	    trainer.WithNegatives(10),
//	    trainer.WithLearningRate(0.2, 0.01),
//	)
//	view, err := tr.Train()
//
// Determinism:
//   - Seed 0 selects a fixed default seed, so two runs with equal inputs and
//     options produce identical tables.
//
// Concurrency:
//   - A Trainer is single-goroutine. Train runs to completion sequentially and
//     owns the embedding table exclusively until it returns.
package trainer
