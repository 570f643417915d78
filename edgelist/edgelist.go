// Package edgelist reads and writes hypernym edge files.
//
// Format: one edge per line, "term1<TAB>term2". Empty lines are skipped, a
// trailing "\r" is tolerated, anything else that does not split into exactly
// two non-empty terms aborts the read with ErrMalformedLine.
package edgelist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Sentinel errors for edge-file parsing.
var (
	// ErrMalformedLine indicates a non-empty line that is not "term1<TAB>term2".
	ErrMalformedLine = errors.New("edgelist: malformed line")

	// ErrNilReader is returned when Read is given a nil reader.
	ErrNilReader = errors.New("edgelist: reader is nil")
)

// maxLineBytes bounds a single line; taxonomy terms are short.
const maxLineBytes = 1 << 20

// Pair is one positive edge, in file order.
type Pair struct {
	From string
	To   string
}

// String renders the pair in file format without the newline.
func (p Pair) String() string {
	return p.From + "\t" + p.To
}

// Read parses every line of r. It fails fast on the first malformed line,
// reporting its 1-based number.
func Read(r io.Reader) ([]Pair, error) {
	if r == nil {
		return nil, ErrNilReader
	}

	var (
		pairs []Pair
		line  int
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		line++
		text := strings.TrimSuffix(sc.Text(), "\r")
		if text == "" {
			continue
		}
		p, err := parseLine(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		pairs = append(pairs, p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("edgelist: read after line %d: %w", line, err)
	}

	return pairs, nil
}

// ReadFile opens path and delegates to Read.
func ReadFile(path string) ([]Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("edgelist: %w", err)
	}
	defer f.Close()

	pairs, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return pairs, nil
}

// Write emits pairs in file format, one per line.
func Write(w io.Writer, pairs []Pair) error {
	bw := bufio.NewWriter(w)
	for _, p := range pairs {
		if strings.ContainsAny(p.From, "\t\n") || strings.ContainsAny(p.To, "\t\n") || p.From == "" || p.To == "" {
			return fmt.Errorf("%w: cannot encode %q", ErrMalformedLine, p.String())
		}
		if _, err := bw.WriteString(p.String() + "\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteFile creates (or truncates) path and writes pairs into it.
func WriteFile(path string, pairs []Pair) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("edgelist: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return Write(f, pairs)
}

func parseLine(text string) (Pair, error) {
	from, to, ok := strings.Cut(text, "\t")
	if !ok {
		return Pair{}, fmt.Errorf("%w: missing tab in %q", ErrMalformedLine, text)
	}
	if strings.Contains(to, "\t") {
		return Pair{}, fmt.Errorf("%w: more than two fields in %q", ErrMalformedLine, text)
	}
	if from == "" || to == "" {
		return Pair{}, fmt.Errorf("%w: empty term in %q", ErrMalformedLine, text)
	}

	return Pair{From: from, To: to}, nil
}
