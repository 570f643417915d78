package extract

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Extract builds the training network below root.
//
// For every target present in the taxonomy, each hypernym path that passes
// through root contributes links from the target to every path term between
// root (inclusive) and the target (exclusive) that is itself a target. Paths
// not containing root are ignored; targets missing from the taxonomy are
// skipped. A fresh Network is built on each call.
//
// Errors:
//   - ErrEmptyRoot, ErrRootNotFound.
//   - ErrCycle from HypernymPaths.
func Extract(tax *Taxonomy, root string, targets map[string]bool) (*Network, error) {
	if root == "" {
		return nil, ErrEmptyRoot
	}
	if !tax.Has(root) {
		return nil, fmt.Errorf("%w: %q", ErrRootNotFound, root)
	}

	names := make([]string, 0, len(targets))
	for name, ok := range targets {
		if ok && tax.Has(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	net := NewNetwork()
	for _, term := range names {
		paths, err := tax.HypernymPaths(term)
		if err != nil {
			return nil, fmt.Errorf("extract: %q: %w", term, err)
		}
		for _, path := range paths {
			start := indexOf(path, root)
			if start < 0 {
				continue
			}
			for _, anc := range path[start : len(path)-1] {
				if targets[anc] {
					net.Add(term, anc)
				}
			}
		}
	}

	return net, nil
}

// Targets turns a term list into the allow-list accepted by Extract.
// Empty entries are dropped.
func Targets(terms []string) map[string]bool {
	out := make(map[string]bool, len(terms))
	for _, t := range terms {
		if t != "" {
			out[t] = true
		}
	}

	return out
}

// ReadTargets reads one term per line. Surrounding whitespace is trimmed and
// blank lines are ignored.
func ReadTargets(r io.Reader) (map[string]bool, error) {
	var terms []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		terms = append(terms, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("extract: read targets: %w", err)
	}

	return Targets(terms), nil
}

// ReadTargetsFile reads a targets file; see ReadTargets.
func ReadTargetsFile(path string) (map[string]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadTargets(f)
}

func indexOf(path []string, term string) int {
	for i, p := range path {
		if p == term {
			return i
		}
	}

	return -1
}
