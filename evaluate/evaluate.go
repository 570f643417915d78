// Package evaluate measures how well an embedding reconstructs its training graph.
//
// For every term u and every true neighbor v of u, all other terms are ranked
// by hyperbolic distance to u. The rank of v counts the non-neighbors that are
// strictly closer, plus one, so a perfect embedding scores 1 everywhere.
// Average precision is taken over u's neighbors in that same ordering.
package evaluate

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/poincare/embedding"
	"github.com/katalvlaran/poincare/geometry"
	"github.com/katalvlaran/poincare/vocab"
)

// ErrNilInput is returned when the store or the view is nil.
var ErrNilInput = errors.New("evaluate: store or view is nil")

// Report summarises reconstruction quality.
type Report struct {
	Terms      int     // terms with at least one neighbor
	Pairs      int     // ranked (term, neighbor) pairs
	MeanRank   float64 // mean over pairs, 1 is best
	RankStdDev float64 // sample standard deviation of the ranks
	MAP        float64 // mean average precision over terms, 1 is best
}

// String implements fmt.Stringer.
func (r Report) String() string {
	return fmt.Sprintf("terms=%d pairs=%d mean_rank=%.4f rank_sd=%.4f map=%.4f",
		r.Terms, r.Pairs, r.MeanRank, r.RankStdDev, r.MAP)
}

type scored struct {
	id       int
	dist     float64
	neighbor bool
}

// Reconstruction ranks every term's neighbors in the undirected graph of
// store against view.
//
// Errors:
//   - ErrNilInput.
//   - embedding.ErrUnknownTerm when a vocabulary term has no point in view.
//
// Complexity: O(N² log N).
func Reconstruction(store *vocab.Store, view *embedding.View) (Report, error) {
	if store == nil || view == nil {
		return Report{}, ErrNilInput
	}
	n := store.Len()
	points := make([]geometry.Point, n)
	for id, term := range store.Terms() {
		p, ok := view.Lookup(term)
		if !ok {
			return Report{}, fmt.Errorf("evaluate: %w: %q", embedding.ErrUnknownTerm, term)
		}
		points[id] = p
	}
	eps := view.Epsilon()

	var (
		ranks []float64
		aps   []float64
		row   = make([]scored, 0, n)
	)
	for u := 0; u < n; u++ {
		nbrs, err := store.Neighbors(u)
		if err != nil {
			return Report{}, err
		}
		if len(nbrs) == 0 {
			continue
		}
		isNbr := make(map[int]bool, len(nbrs))
		for _, v := range nbrs {
			isNbr[v] = true
		}

		row = row[:0]
		for v := 0; v < n; v++ {
			if v == u {
				continue
			}
			d, _ := geometry.Distance(points[u], points[v], eps)
			row = append(row, scored{id: v, dist: d, neighbor: isNbr[v]})
		}
		sort.Slice(row, func(i, j int) bool {
			if row[i].dist != row[j].dist {
				return row[i].dist < row[j].dist
			}
			return row[i].id < row[j].id
		})

		var (
			closerNon int
			found     int
			precision float64
		)
		for pos, s := range row {
			if !s.neighbor {
				closerNon++
				continue
			}
			found++
			precision += float64(found) / float64(pos+1)
			ranks = append(ranks, float64(1+closerNon-countTies(row, pos)))
		}
		aps = append(aps, precision/float64(found))
	}

	if len(ranks) == 0 {
		return Report{}, nil
	}
	mean, sd := stat.MeanStdDev(ranks, nil)
	if len(ranks) == 1 {
		sd = 0
	}

	return Report{
		Terms:      len(aps),
		Pairs:      len(ranks),
		MeanRank:   mean,
		RankStdDev: sd,
		MAP:        stat.Mean(aps, nil),
	}, nil
}

// countTies returns the non-neighbors placed before pos at exactly the same
// distance; only strictly closer terms count against a rank.
func countTies(row []scored, pos int) int {
	ties := 0
	for i := pos - 1; i >= 0 && row[i].dist == row[pos].dist; i-- {
		if !row[i].neighbor {
			ties++
		}
	}

	return ties
}
