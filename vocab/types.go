// File: types.go
// Role: Edge, Builder and Store types, sentinel errors, constructors.
//
// Determinism:
//   - Ids follow first-seen order of AddTerm/AddEdge calls.
//
// Concurrency:
//   - Builder is single-goroutine.
//   - Store is immutable after Build; all methods are safe for concurrent use.
package vocab

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/poincare/edgelist"
)

// Sentinel errors for vocabulary construction and lookup.
var (
	// ErrEmptyTerm indicates that a term is the empty string.
	ErrEmptyTerm = errors.New("vocab: term is empty")

	// ErrUnknownTerm indicates a lookup of a term that was never registered.
	ErrUnknownTerm = errors.New("vocab: unknown term")

	// ErrIndexOutOfRange indicates an id outside [0, Len()).
	ErrIndexOutOfRange = errors.New("vocab: id out of range")

	// ErrEmptyVocabulary indicates Build was called before any term was registered.
	ErrEmptyVocabulary = errors.New("vocab: vocabulary is empty")

	// ErrNoEdges indicates Build was called before any edge was registered.
	ErrNoEdges = errors.New("vocab: no edges")
)

// Edge is a positive training pair expressed in vocabulary ids.
// From is the hyponym side and To the hypernym side; the loss treats both alike.
type Edge struct {
	From int
	To   int
}

// Builder accumulates terms and edges in a single pass.
type Builder struct {
	ids   map[string]int // term → id
	terms []string       // id → term
	edges []Edge         // input order, duplicates kept
}

// NewBuilder returns an empty Builder.
// Complexity: O(1).
func NewBuilder() *Builder {
	return &Builder{ids: make(map[string]int)}
}

// Store is the immutable vocabulary and edge list handed to the trainer.
type Store struct {
	ids   map[string]int
	terms []string
	edges []Edge

	// adjacency[id] lists distinct neighbours of id over edges in either direction,
	// ascending, self excluded.
	adjacency [][]int
}

// FromPairs builds a Store from parsed edge-file pairs in one pass.
//
// Errors:
//   - ErrEmptyTerm when a pair carries an empty term (wrapped with the pair index).
//   - ErrEmptyVocabulary / ErrNoEdges when pairs is empty.
//
// Complexity: O(P) for P pairs.
func FromPairs(pairs []edgelist.Pair) (*Store, error) {
	b := NewBuilder()
	for i, p := range pairs {
		if _, err := b.AddEdge(p.From, p.To); err != nil {
			return nil, fmt.Errorf("vocab: pair %d: %w", i, err)
		}
	}

	return b.Build()
}
