package trainer

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/poincare/embedding"
	"github.com/katalvlaran/poincare/geometry"
	"github.com/katalvlaran/poincare/vocab"
)

// State is the trainer lifecycle: Idle → Training → Trained.
type State int

const (
	// StateIdle: constructed, table initialised, no epoch run yet.
	StateIdle State = iota
	// StateTraining: inside Train.
	StateTraining
	// StateTrained: Train returned; the table is final.
	StateTrained
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTraining:
		return "training"
	case StateTrained:
		return "trained"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// candidate is one pair of a step together with its pre-update distance context.
type candidate struct {
	i, j   int
	weight float64 // exp(−d)
	ctx    geometry.Context
}

// Trainer owns the edge list copy, the embedding table and the RNG of one run.
type Trainer struct {
	store *vocab.Store
	edges []vocab.Edge
	table *embedding.Table
	opts  Options
	rng   *rand.Rand
	state State

	cands   []candidate // reused per step
	history []EpochStats
}

// New validates the options, copies the edge list and initialises the table.
//
// Implementation:
//   - Stage 1: Apply options over DefaultOptions and validate.
//   - Stage 2: Seed the base RNG; derive the initialisation and training streams.
//   - Stage 3: Allocate the table; load InitialPoints or draw uniform noise in ±InitRange.
//
// Errors:
//   - ErrNilStore, ErrOptionViolation or a Validate sentinel.
//   - embedding errors when InitialPoints do not fit the vocabulary.
func New(store *vocab.Store, opts ...Option) (*Trainer, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}

	table, err := embedding.NewTable(store.Len(), o.Epsilon)
	if err != nil {
		return nil, err
	}
	base := rngFromSeed(o.Seed)
	initRNG := deriveRNG(base, streamInit)
	trainRNG := deriveRNG(base, streamTrain)
	if o.InitialPoints != nil {
		if err := table.Load(o.InitialPoints); err != nil {
			return nil, fmt.Errorf("trainer: initial points: %w", err)
		}
	} else {
		table.Randomize(initRNG, o.InitRange)
	}

	return &Trainer{
		store: store,
		edges: store.Edges(),
		table: table,
		opts:  o,
		rng:   trainRNG,
		state: StateIdle,
		cands: make([]candidate, 0, o.Negatives+1),
	}, nil
}

// Options returns the effective configuration.
func (t *Trainer) Options() Options { return t.opts }

// State returns the lifecycle state.
func (t *Trainer) State() State { return t.state }

// History returns the statistics of all finished epochs.
func (t *Trainer) History() []EpochStats {
	return append([]EpochStats(nil), t.history...)
}

// Points returns a snapshot of the current table.
func (t *Trainer) Points() []geometry.Point { return t.table.Points() }

// LearningRate returns (1−r)·lr₁ + r·lr₂ for r = epoch/Epochs.
func (t *Trainer) LearningRate(epoch int) float64 {
	r := float64(epoch) / float64(t.opts.Epochs)

	return (1-r)*t.opts.LearningRate + r*t.opts.FinalLearningRate
}

// Train runs every configured epoch and returns the read-only view of the result.
//
// Errors:
//   - ErrAlreadyTrained on a second call.
//   - ErrSampleOutOfRange, wrapped with the epoch number, when the Sampler
//     returns an id outside [0, Terms).
//   - The OnEpoch error, wrapped with the epoch number; the table keeps the
//     state reached so far and the trainer is still marked trained.
//
// Complexity: O(Epochs · E · (1+Negatives)).
func (t *Trainer) Train() (*embedding.View, error) {
	if t.state != StateIdle {
		return nil, ErrAlreadyTrained
	}
	t.state = StateTraining
	defer func() { t.state = StateTrained }()

	for epoch := 0; epoch < t.opts.Epochs; epoch++ {
		stats, err := t.epoch(epoch)
		if err != nil {
			return nil, fmt.Errorf("trainer: epoch %d: %w", epoch, err)
		}
		t.history = append(t.history, stats)
		if t.opts.OnEpoch != nil {
			if err := t.opts.OnEpoch(stats); err != nil {
				return nil, fmt.Errorf("trainer: epoch %d: %w", epoch, err)
			}
		}
	}

	return embedding.FromTable(t.store, t.table)
}

// View returns the post-training view.
func (t *Trainer) View() (*embedding.View, error) {
	if t.state != StateTrained {
		return nil, ErrNotTrained
	}

	return embedding.FromTable(t.store, t.table)
}

// epoch shuffles the edges and runs one step per edge at the annealed rate.
func (t *Trainer) epoch(epoch int) (EpochStats, error) {
	shuffleEdges(t.edges, t.rng)
	lr := t.LearningRate(epoch)

	var loss float64
	for _, e := range t.edges {
		l, err := t.step(e, lr)
		if err != nil {
			return EpochStats{}, err
		}
		loss += l
	}

	return EpochStats{
		Epoch:        epoch,
		LearningRate: lr,
		Loss:         loss / float64(len(t.edges)),
		Edges:        len(t.edges),
	}, nil
}

// step trains on one positive edge and returns its loss −log p(positive).
//
// All distances are taken before any update, then updates are applied in
// candidate order to the current table values. A sampled id outside [0, n)
// fails the step before anything moves.
func (t *Trainer) step(e vocab.Edge, lr float64) (float64, error) {
	n := t.table.Len()
	t.cands = append(t.cands[:0], t.candidate(e.From, e.To))
	for k := 0; k < t.opts.Negatives; k++ {
		i, j := t.opts.Sampler.Sample(t.rng, n)
		if i < 0 || i >= n || j < 0 || j >= n {
			return 0, fmt.Errorf("%w: (%d, %d) not in [0,%d)", ErrSampleOutOfRange, i, j, n)
		}
		t.cands = append(t.cands, t.candidate(i, j))
	}

	var z float64
	for _, c := range t.cands {
		z += c.weight
	}

	for k, c := range t.cands {
		coeff := -c.weight / z
		if k == 0 {
			coeff++
		}
		gu, gv, ok := geometry.Gradient(coeff, c.ctx)
		if !ok {
			continue
		}
		t.table.Update(c.i, -lr, gu)
		t.table.Update(c.j, -lr, gv)
	}

	return -math.Log(t.cands[0].weight / z), nil
}

func (t *Trainer) candidate(i, j int) candidate {
	d, ctx := geometry.Distance(t.table.At(i), t.table.At(j), t.opts.Epsilon)

	return candidate{i: i, j: j, weight: math.Exp(-d), ctx: ctx}
}
