package extract

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/katalvlaran/poincare/edgelist"
)

var (
	// ErrEmptyRoot is returned when Extract is called without a root term.
	ErrEmptyRoot = errors.New("extract: root is empty")

	// ErrRootNotFound indicates a root term absent from the taxonomy.
	ErrRootNotFound = errors.New("extract: root not found in taxonomy")

	// ErrUnknownTerm indicates a term absent from the taxonomy.
	ErrUnknownTerm = errors.New("extract: unknown term")

	// ErrCycle indicates a hypernym chain that returns to one of its own terms.
	ErrCycle = errors.New("extract: hypernym cycle")
)

// Visitation states for the path search.
const (
	white = iota // not visited
	gray         // on the current search stack
	black        // all paths known
)

// Taxonomy is an immutable set of direct hypernym links.
type Taxonomy struct {
	parents map[string][]string // sorted, duplicate-free
	terms   []string            // sorted
}

// NewTaxonomy builds a taxonomy from child→parent pairs (Pair.From is the
// hyponym, Pair.To its direct hypernym). Duplicate links are merged.
//
// Errors:
//   - ErrCycle for a self link.
func NewTaxonomy(links []edgelist.Pair) (*Taxonomy, error) {
	set := make(map[string]map[string]struct{}, len(links))
	touch := func(term string) {
		if _, ok := set[term]; !ok {
			set[term] = make(map[string]struct{})
		}
	}
	for i, l := range links {
		if l.From == l.To {
			return nil, fmt.Errorf("%w: link %d: %q is its own hypernym", ErrCycle, i, l.From)
		}
		touch(l.From)
		touch(l.To)
		set[l.From][l.To] = struct{}{}
	}

	t := &Taxonomy{
		parents: make(map[string][]string, len(set)),
		terms:   make([]string, 0, len(set)),
	}
	for term, ps := range set {
		t.terms = append(t.terms, term)
		if len(ps) == 0 {
			continue
		}
		sorted := make([]string, 0, len(ps))
		for p := range ps {
			sorted = append(sorted, p)
		}
		sort.Strings(sorted)
		t.parents[term] = sorted
	}
	sort.Strings(t.terms)

	return t, nil
}

// ReadTaxonomy parses a `child<TAB>parent` stream.
func ReadTaxonomy(r io.Reader) (*Taxonomy, error) {
	links, err := edgelist.Read(r)
	if err != nil {
		return nil, err
	}

	return NewTaxonomy(links)
}

// ReadTaxonomyFile parses a `child<TAB>parent` file.
func ReadTaxonomyFile(path string) (*Taxonomy, error) {
	links, err := edgelist.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return NewTaxonomy(links)
}

// Len returns the number of distinct terms.
func (t *Taxonomy) Len() int { return len(t.terms) }

// Has reports whether term appears in any link.
func (t *Taxonomy) Has(term string) bool {
	i := sort.SearchStrings(t.terms, term)
	return i < len(t.terms) && t.terms[i] == term
}

// Terms returns every term in sorted order.
func (t *Taxonomy) Terms() []string { return append([]string(nil), t.terms...) }

// Parents returns the direct hypernyms of term in sorted order.
func (t *Taxonomy) Parents(term string) []string {
	return append([]string(nil), t.parents[term]...)
}

// HypernymPaths returns every path from a top-level term (one without
// hypernyms) down to term. Each path starts at its top-level term and ends
// with term itself; a top-level term has the single path [term].
// Paths are ordered lexicographically.
//
// Errors:
//   - ErrUnknownTerm if term is not in the taxonomy.
//   - ErrCycle if a hypernym chain above term loops.
func (t *Taxonomy) HypernymPaths(term string) ([][]string, error) {
	if !t.Has(term) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTerm, term)
	}
	s := pathSearch{tax: t, state: make(map[string]int), memo: make(map[string][][]string)}
	paths, err := s.visit(term)
	if err != nil {
		return nil, err
	}
	out := make([][]string, len(paths))
	for i, p := range paths {
		out[i] = append([]string(nil), p...)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.Join(out[i], "\x00") < strings.Join(out[j], "\x00")
	})

	return out, nil
}

// pathSearch carries the DFS state of one HypernymPaths call.
type pathSearch struct {
	tax   *Taxonomy
	state map[string]int
	stack []string
	memo  map[string][][]string
}

func (s *pathSearch) visit(term string) ([][]string, error) {
	switch s.state[term] {
	case black:
		return s.memo[term], nil
	case gray:
		return nil, fmt.Errorf("%w: %s", ErrCycle, s.cycleFrom(term))
	}
	s.state[term] = gray
	s.stack = append(s.stack, term)

	var paths [][]string
	parents := s.tax.parents[term]
	if len(parents) == 0 {
		paths = [][]string{{term}}
	}
	for _, p := range parents {
		up, err := s.visit(p)
		if err != nil {
			return nil, err
		}
		for _, path := range up {
			ext := make([]string, len(path), len(path)+1)
			copy(ext, path)
			paths = append(paths, append(ext, term))
		}
	}

	s.stack = s.stack[:len(s.stack)-1]
	s.state[term] = black
	s.memo[term] = paths

	return paths, nil
}

// cycleFrom renders the stack segment from term back to term.
func (s *pathSearch) cycleFrom(term string) string {
	i := len(s.stack) - 1
	for i > 0 && s.stack[i] != term {
		i--
	}
	seg := append(append([]string(nil), s.stack[i:]...), term)

	return strings.Join(seg, " -> ")
}
