package embedding

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/poincare/geometry"
	"github.com/katalvlaran/poincare/vocab"
)

// ErrDuplicateTerm indicates the same term offered twice to NewView.
var ErrDuplicateTerm = errors.New("embedding: duplicate term")

// View is the read-only term → point mapping exposed after training.
// It owns private copies of its inputs and is safe for concurrent reads.
type View struct {
	terms  []string
	points []geometry.Point
	index  map[string]int
	eps    float64
}

// Neighbor is one ranked result of Nearest.
type Neighbor struct {
	Term     string
	Distance float64
}

// NewView pairs terms[i] with points[i].
//
// Errors:
//   - ErrEmptyTable when there are no terms.
//   - ErrSizeMismatch when the slices differ in length.
//   - ErrDuplicateTerm when a term repeats.
//   - ErrOutsideDisk when a point violates the disk invariant.
func NewView(terms []string, points []geometry.Point, eps float64) (*View, error) {
	if len(terms) == 0 {
		return nil, ErrEmptyTable
	}
	if len(terms) != len(points) {
		return nil, fmt.Errorf("%w: %d terms, %d points", ErrSizeMismatch, len(terms), len(points))
	}

	v := &View{
		terms:  append([]string(nil), terms...),
		points: append([]geometry.Point(nil), points...),
		index:  make(map[string]int, len(terms)),
		eps:    eps,
	}
	for i, t := range v.terms {
		if _, dup := v.index[t]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTerm, t)
		}
		if !geometry.Inside(v.points[i]) {
			return nil, fmt.Errorf("%w: %q at %v", ErrOutsideDisk, t, v.points[i])
		}
		v.index[t] = i
	}

	return v, nil
}

// FromTable snapshots a trained table against its vocabulary.
func FromTable(s *vocab.Store, t *Table) (*View, error) {
	if s.Len() != t.Len() {
		return nil, fmt.Errorf("%w: %d terms, %d points", ErrSizeMismatch, s.Len(), t.Len())
	}

	return NewView(s.Terms(), t.Points(), t.Epsilon())
}

// Len returns the number of terms.
func (v *View) Len() int { return len(v.terms) }

// Epsilon returns the numerical epsilon used for distances.
func (v *View) Epsilon() float64 { return v.eps }

// Terms returns a copy of the terms in id order.
func (v *View) Terms() []string { return append([]string(nil), v.terms...) }

// Points returns a copy of the points in id order.
func (v *View) Points() []geometry.Point { return append([]geometry.Point(nil), v.points...) }

// Lookup returns the point of term.
func (v *View) Lookup(term string) (geometry.Point, bool) {
	i, ok := v.index[term]
	if !ok {
		return geometry.Point{}, false
	}

	return v.points[i], true
}

// Each calls fn for every term in id order.
func (v *View) Each(fn func(term string, p geometry.Point)) {
	for i, t := range v.terms {
		fn(t, v.points[i])
	}
}

// Distance returns the hyperbolic distance between two terms.
func (v *View) Distance(a, b string) (float64, error) {
	pa, ok := v.Lookup(a)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTerm, a)
	}
	pb, ok := v.Lookup(b)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTerm, b)
	}
	d, _ := geometry.Distance(pa, pb, v.eps)

	return d, nil
}

// Nearest returns up to k other terms ordered by ascending hyperbolic distance
// from term, ties broken by term.
//
// Complexity: O(N log N).
func (v *View) Nearest(term string, k int) ([]Neighbor, error) {
	if k <= 0 {
		return nil, ErrBadK
	}
	i, ok := v.index[term]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTerm, term)
	}

	out := make([]Neighbor, 0, len(v.terms)-1)
	for j, t := range v.terms {
		if j == i {
			continue
		}
		d, _ := geometry.Distance(v.points[i], v.points[j], v.eps)
		out = append(out, Neighbor{Term: t, Distance: d})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Distance != out[b].Distance {
			return out[a].Distance < out[b].Distance
		}
		return out[a].Term < out[b].Term
	})
	if len(out) > k {
		out = out[:k]
	}

	return out, nil
}

// WriteTSV writes "term<TAB>x<TAB>y" lines in id order with round-trip precision.
func (v *View) WriteTSV(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i, t := range v.terms {
		p := v.points[i]
		line := t + "\t" + strconv.FormatFloat(p[0], 'g', -1, 64) + "\t" + strconv.FormatFloat(p[1], 'g', -1, 64) + "\n"
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// ReadTSV parses the output of WriteTSV back into a View.
func ReadTSV(r io.Reader, eps float64) (*View, error) {
	var (
		terms  []string
		points []geometry.Point
		line   int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line++
		fields := strings.Split(strings.TrimSuffix(sc.Text(), "\r"), "\t")
		if len(fields) == 1 && fields[0] == "" {
			continue
		}
		if len(fields) != 3 {
			return nil, fmt.Errorf("embedding: line %d: want 3 fields, got %d", line, len(fields))
		}
		var p geometry.Point
		for k := 0; k < geometry.Dim; k++ {
			x, err := strconv.ParseFloat(fields[k+1], 64)
			if err != nil {
				return nil, fmt.Errorf("embedding: line %d: %w", line, err)
			}
			p[k] = x
		}
		terms = append(terms, fields[0])
		points = append(points, p)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return NewView(terms, points, eps)
}
