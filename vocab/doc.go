// Package vocab maps taxonomy terms to dense integer ids and stores the
// positive hypernym edges between them.
//
// The vocabulary V = {t₀ … t_{N−1}} assigns ids in first-seen order during a
// single pass over the input, so ids are contiguous in [0, N) and stable for a
// given edge order. Edges are kept as (id, id) pairs in input order; duplicates
// are preserved because every line of the edge file is one training example.
//
// Lifecycle:
//
//	b := vocab.NewBuilder()         // mutable, single goroutine
//	b.AddTerm("mammal.n.01")        // optional: isolated terms
//	b.AddEdge("dog.n.01", "mammal.n.01")
//	s, err := b.Build()             // immutable Store, safe for concurrent reads
//
// Build fails fast with ErrEmptyVocabulary or ErrNoEdges rather than handing
// the trainer a degenerate problem.
//
// Errors:
//
//	ErrEmptyTerm        - term is the empty string.
//	ErrUnknownTerm      - lookup of a term that was never registered.
//	ErrIndexOutOfRange  - lookup of an id outside [0, N).
//	ErrEmptyVocabulary  - Build with no terms.
//	ErrNoEdges          - Build with no edges.
package vocab
