package extract

import (
	"sort"

	"github.com/katalvlaran/poincare/edgelist"
)

// Network maps each hyponym to the set of its selected hypernyms.
type Network struct {
	links map[string]map[string]struct{}
}

// NewNetwork returns an empty network.
func NewNetwork() *Network {
	return &Network{links: make(map[string]map[string]struct{})}
}

// Add records hyponym → hypernym; repeated links are kept once.
func (n *Network) Add(hyponym, hypernym string) {
	set, ok := n.links[hyponym]
	if !ok {
		set = make(map[string]struct{})
		n.links[hyponym] = set
	}
	set[hypernym] = struct{}{}
}

// Has reports whether the link hyponym → hypernym exists.
func (n *Network) Has(hyponym, hypernym string) bool {
	_, ok := n.links[hyponym][hypernym]
	return ok
}

// Len returns the number of links.
func (n *Network) Len() int {
	total := 0
	for _, set := range n.links {
		total += len(set)
	}

	return total
}

// Pairs returns every link sorted by hyponym, then hypernym.
func (n *Network) Pairs() []edgelist.Pair {
	out := make([]edgelist.Pair, 0, n.Len())
	for from, set := range n.links {
		for to := range set {
			out = append(out, edgelist.Pair{From: from, To: to})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})

	return out
}
