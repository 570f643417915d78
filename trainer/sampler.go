package trainer

import "math/rand"

// Sampler draws one negative pair of vocabulary ids from [0, n).
// Ids outside that range abort training with ErrSampleOutOfRange.
type Sampler interface {
	Sample(rng *rand.Rand, n int) (i, j int)
}

// UniformSampler picks both ids independently and uniformly, with replacement.
// It excludes neither self pairs nor the current positive edge.
type UniformSampler struct{}

// Sample implements Sampler.
func (UniformSampler) Sample(rng *rand.Rand, n int) (int, int) {
	return rng.Intn(n), rng.Intn(n)
}

// SamplerFunc adapts a plain function to Sampler.
type SamplerFunc func(rng *rand.Rand, n int) (int, int)

// Sample implements Sampler.
func (f SamplerFunc) Sample(rng *rand.Rand, n int) (int, int) { return f(rng, n) }
