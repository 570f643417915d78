package trainer

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/poincare/embedding"
	"github.com/katalvlaran/poincare/geometry"
)

// Sentinel errors for trainer configuration and lifecycle.
var (
	// ErrNilStore is returned when New receives a nil vocabulary store.
	ErrNilStore = errors.New("trainer: vocabulary store is nil")

	// ErrBadEpochs indicates a non-positive epoch count.
	ErrBadEpochs = errors.New("trainer: epochs must be positive")

	// ErrBadNegatives indicates a negative count of negative samples.
	ErrBadNegatives = errors.New("trainer: negatives must be non-negative")

	// ErrBadLearningRate indicates a non-finite, non-positive initial or negative final rate.
	ErrBadLearningRate = errors.New("trainer: invalid learning rate")

	// ErrBadEpsilon indicates an epsilon outside [geometry.MinEpsilon, 0.5).
	ErrBadEpsilon = errors.New("trainer: epsilon must be in [1e-12, 0.5)")

	// ErrBadInitRange indicates an initialisation half-width outside (0, 0.5).
	ErrBadInitRange = errors.New("trainer: init range must be in (0, 0.5)")

	// ErrUnsupportedDim indicates an embedding dimension other than geometry.Dim.
	ErrUnsupportedDim = errors.New("trainer: only dimension 2 is supported")

	// ErrOptionViolation wraps any invalid functional option.
	ErrOptionViolation = errors.New("trainer: invalid option supplied")

	// ErrAlreadyTrained is returned by a second Train call; training is not incremental.
	ErrAlreadyTrained = errors.New("trainer: already trained")

	// ErrNotTrained is returned by View before Train has finished.
	ErrNotTrained = errors.New("trainer: not trained yet")

	// ErrSampleOutOfRange indicates a Sampler returned an id outside [0, n).
	ErrSampleOutOfRange = errors.New("trainer: sampled id out of range")
)

// Defaults mirror the reference configuration.
const (
	DefaultEpochs            = 10
	DefaultNegatives         = 10
	DefaultLearningRate      = 0.2
	DefaultFinalLearningRate = 0.01
)

// EpochStats summarises one finished epoch.
type EpochStats struct {
	Epoch        int     // 0-based
	LearningRate float64 // rate used for every step of the epoch
	Loss         float64 // mean of −log p(positive) over the epoch's edges
	Edges        int     // steps taken
}

// Option configures a Trainer. Invalid values are recorded and surfaced by New
// as ErrOptionViolation wrapping the specific sentinel.
type Option func(*Options)

// Options holds the immutable training configuration.
type Options struct {
	// Epochs is the number of passes over the edge list.
	Epochs int

	// Negatives is the number of negative pairs drawn per positive edge.
	Negatives int

	// LearningRate and FinalLearningRate are the endpoints of the linear anneal.
	LearningRate      float64
	FinalLearningRate float64

	// Epsilon clamps 1−‖x‖² from below and sets the clipping radius 1−Epsilon.
	Epsilon float64

	// Dim is fixed at geometry.Dim; any other value is rejected.
	Dim int

	// InitRange is the half-width of the uniform initial box around the origin.
	InitRange float64

	// Seed drives shuffling, initialisation and sampling; 0 selects a fixed default.
	Seed int64

	// Sampler draws negative pairs; nil means UniformSampler.
	Sampler Sampler

	// InitialPoints, when set, replaces random initialisation.
	InitialPoints []geometry.Point

	// OnEpoch is called after every epoch; a non-nil error aborts training.
	OnEpoch func(EpochStats) error

	err error
}

// DefaultOptions returns the reference configuration: 10 epochs, 10 negatives,
// learning rate 0.2 annealed to 0.01, epsilon 1e-6, init range ±0.001.
func DefaultOptions() Options {
	return Options{
		Epochs:            DefaultEpochs,
		Negatives:         DefaultNegatives,
		LearningRate:      DefaultLearningRate,
		FinalLearningRate: DefaultFinalLearningRate,
		Epsilon:           geometry.DefaultEpsilon,
		Dim:               geometry.Dim,
		InitRange:         embedding.DefaultInitRange,
		Sampler:           UniformSampler{},
	}
}

func (o *Options) fail(err error) {
	if o.err == nil {
		o.err = err
	}
}

// WithEpochs sets the epoch count (> 0).
func WithEpochs(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.fail(fmt.Errorf("%w: %w: %d", ErrOptionViolation, ErrBadEpochs, n))
			return
		}
		o.Epochs = n
	}
}

// WithNegatives sets the negative sample count per positive edge (≥ 0).
func WithNegatives(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.fail(fmt.Errorf("%w: %w: %d", ErrOptionViolation, ErrBadNegatives, n))
			return
		}
		o.Negatives = n
	}
}

// WithLearningRate sets the initial and final learning rates.
func WithLearningRate(initial, final float64) Option {
	return func(o *Options) {
		o.LearningRate, o.FinalLearningRate = initial, final
	}
}

// WithEpsilon sets the numerical-stability epsilon.
func WithEpsilon(eps float64) Option {
	return func(o *Options) { o.Epsilon = eps }
}

// WithDim sets the embedding dimension; only geometry.Dim is accepted.
func WithDim(dim int) Option {
	return func(o *Options) { o.Dim = dim }
}

// WithInitRange sets the half-width of the uniform initialisation box.
func WithInitRange(r float64) Option {
	return func(o *Options) { o.InitRange = r }
}

// WithSeed sets the RNG seed (0 ⇒ fixed default).
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithSampler replaces the negative sampler. A nil sampler is ignored.
func WithSampler(s Sampler) Option {
	return func(o *Options) {
		if s != nil {
			o.Sampler = s
		}
	}
}

// WithInitialPoints starts training from a fixed layout instead of random noise.
func WithInitialPoints(points []geometry.Point) Option {
	return func(o *Options) {
		o.InitialPoints = append([]geometry.Point(nil), points...)
	}
}

// WithOnEpoch installs the per-epoch hook.
func WithOnEpoch(fn func(EpochStats) error) Option {
	return func(o *Options) { o.OnEpoch = fn }
}

// Validate checks every field and returns the first violation.
func (o Options) Validate() error {
	if o.err != nil {
		return o.err
	}
	switch {
	case o.Epochs <= 0:
		return ErrBadEpochs
	case o.Negatives < 0:
		return ErrBadNegatives
	case !(o.LearningRate > 0) || math.IsInf(o.LearningRate, 0):
		return fmt.Errorf("%w: initial %v", ErrBadLearningRate, o.LearningRate)
	case !(o.FinalLearningRate >= 0) || math.IsInf(o.FinalLearningRate, 0):
		return fmt.Errorf("%w: final %v", ErrBadLearningRate, o.FinalLearningRate)
	case !(o.Epsilon >= geometry.MinEpsilon && o.Epsilon < 0.5):
		return fmt.Errorf("%w: got %v", ErrBadEpsilon, o.Epsilon)
	case o.Dim != geometry.Dim:
		return fmt.Errorf("%w: got %d", ErrUnsupportedDim, o.Dim)
	case !(o.InitRange > 0 && o.InitRange < 0.5):
		return ErrBadInitRange
	}

	return nil
}
