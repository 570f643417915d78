// RNG utilities for the training loop.
//
// Goals:
//   - Determinism: same seed ⇒ identical embeddings.
//   - Encapsulation: a single RNG factory; no time-based sources hidden anywhere.
//   - Independence: initialisation and training draw from separate streams, so
//     changing the negative count does not move the starting layout.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe; each Trainer owns its streams.
package trainer

import (
	"math/rand"

	"github.com/katalvlaran/poincare/vocab"
)

// defaultRNGSeed replaces a zero seed so an unset Seed still trains reproducibly.
const defaultRNGSeed int64 = 1

// Stream identifiers for deriveRNG.
const (
	streamInit uint64 = iota + 1
	streamTrain
)

// rngFromSeed builds the trainer's base generator. Zero maps to defaultRNGSeed
// and any other seed is used as given.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return rand.New(rand.NewSource(seed))
}

// deriveSeed mixes a parent seed and a stream identifier into a new 64-bit seed
// with a SplitMix64 finalizer.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// deriveRNG creates an independent deterministic stream from base.
// base.Int63() is consumed once so consecutive derivations differ even for
// a reused stream id.
func deriveRNG(base *rand.Rand, stream uint64) *rand.Rand {
	return rand.New(rand.NewSource(deriveSeed(base.Int63(), stream)))
}

// shuffleEdges performs an in-place Fisher–Yates shuffle of edges.
//
// Complexity: O(n) time, O(1) extra space.
func shuffleEdges(edges []vocab.Edge, rng *rand.Rand) {
	for i := len(edges) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		edges[i], edges[j] = edges[j], edges[i]
	}
}
