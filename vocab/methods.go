// File: methods.go
// Role: Builder mutation and Store queries.
//
// Determinism:
//   - Terms() is in id order; Edges() in input order; Neighbors() ascending.
package vocab

import (
	"fmt"
	"sort"
)

// AddTerm registers term if missing and returns its id (idempotent).
//
// Implementation:
//   - Stage 1: Reject the empty term (ErrEmptyTerm).
//   - Stage 2: Return the existing id, or assign the next dense id.
//
// Complexity: O(1) amortized.
func (b *Builder) AddTerm(term string) (int, error) {
	if term == "" {
		return 0, ErrEmptyTerm
	}
	if id, ok := b.ids[term]; ok {
		return id, nil
	}
	id := len(b.terms)
	b.ids[term] = id
	b.terms = append(b.terms, term)

	return id, nil
}

// AddEdge registers both endpoints (from first) and appends the edge.
// Repeated pairs are appended again; they count as separate examples.
//
// Complexity: O(1) amortized.
func (b *Builder) AddEdge(from, to string) (Edge, error) {
	i, err := b.AddTerm(from)
	if err != nil {
		return Edge{}, err
	}
	j, err := b.AddTerm(to)
	if err != nil {
		return Edge{}, err
	}
	e := Edge{From: i, To: j}
	b.edges = append(b.edges, e)

	return e, nil
}

// Len returns the number of terms registered so far.
func (b *Builder) Len() int { return len(b.terms) }

// Build freezes the accumulated state into a Store.
//
// Implementation:
//   - Stage 1: Fail fast on an empty vocabulary or an empty edge list.
//   - Stage 2: Copy terms, ids and edges so later Builder calls cannot leak in.
//   - Stage 3: Derive the undirected, de-duplicated adjacency.
//
// Complexity: O(N + E log E).
func (b *Builder) Build() (*Store, error) {
	if len(b.terms) == 0 {
		return nil, ErrEmptyVocabulary
	}
	if len(b.edges) == 0 {
		return nil, ErrNoEdges
	}

	s := &Store{
		ids:   make(map[string]int, len(b.ids)),
		terms: append([]string(nil), b.terms...),
		edges: append([]Edge(nil), b.edges...),
	}
	for t, id := range b.ids {
		s.ids[t] = id
	}
	s.adjacency = buildAdjacency(len(s.terms), s.edges)

	return s, nil
}

func buildAdjacency(n int, edges []Edge) [][]int {
	seen := make([]map[int]struct{}, n)
	link := func(a, b int) {
		if seen[a] == nil {
			seen[a] = make(map[int]struct{})
		}
		seen[a][b] = struct{}{}
	}
	for _, e := range edges {
		if e.From == e.To {
			continue
		}
		link(e.From, e.To)
		link(e.To, e.From)
	}

	adj := make([][]int, n)
	for id, set := range seen {
		if len(set) == 0 {
			continue
		}
		nbrs := make([]int, 0, len(set))
		for nb := range set {
			nbrs = append(nbrs, nb)
		}
		sort.Ints(nbrs)
		adj[id] = nbrs
	}

	return adj
}

// Len returns N, the vocabulary size.
func (s *Store) Len() int { return len(s.terms) }

// EdgeCount returns the number of positive edges, duplicates included.
func (s *Store) EdgeCount() int { return len(s.edges) }

// ID returns the id of term.
func (s *Store) ID(term string) (int, error) {
	id, ok := s.ids[term]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTerm, term)
	}

	return id, nil
}

// Term returns the term registered under id.
func (s *Store) Term(id int) (string, error) {
	if id < 0 || id >= len(s.terms) {
		return "", fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, id, len(s.terms))
	}

	return s.terms[id], nil
}

// Terms returns a copy of all terms in id order.
func (s *Store) Terms() []string {
	return append([]string(nil), s.terms...)
}

// Edges returns a copy of the edge list in input order.
// Callers (the trainer) may reorder their copy freely.
func (s *Store) Edges() []Edge {
	return append([]Edge(nil), s.edges...)
}

// Neighbors returns the distinct ids linked to id by an edge in either direction,
// ascending, excluding id itself. The slice is shared; do not modify it.
func (s *Store) Neighbors(id int) ([]int, error) {
	if id < 0 || id >= len(s.terms) {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, id, len(s.terms))
	}

	return s.adjacency[id], nil
}
