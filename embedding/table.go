// Package embedding holds the learned state: a dense table of 2-D points in
// the Poincaré disk, indexed by vocabulary id, and the read-only View handed
// to consumers once training has finished.
package embedding

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/poincare/geometry"
)

// Sentinel errors for table and view operations.
var (
	// ErrEmptyTable indicates a table or view with no points.
	ErrEmptyTable = errors.New("embedding: empty table")

	// ErrIndexOutOfRange indicates an id outside [0, Len()).
	ErrIndexOutOfRange = errors.New("embedding: index out of range")

	// ErrUnknownTerm indicates a view lookup for a term it does not contain.
	ErrUnknownTerm = errors.New("embedding: unknown term")

	// ErrSizeMismatch indicates a vocabulary and a point slice of different lengths.
	ErrSizeMismatch = errors.New("embedding: vocabulary and points differ in size")

	// ErrOutsideDisk indicates a point with squared norm ≥ 1 offered to a view.
	ErrOutsideDisk = errors.New("embedding: point outside the unit disk")

	// ErrBadK indicates a non-positive neighbour count.
	ErrBadK = errors.New("embedding: k must be positive")
)

// DefaultInitRange is the half-width of the uniform initialisation box.
const DefaultInitRange = 0.001

// Table is the mutable embedding array owned by the trainer.
//
// Every point is kept strictly inside the disk: the only mutator, Update,
// routes through geometry.Apply.
type Table struct {
	points []geometry.Point
	eps    float64
}

// NewTable allocates n points at the origin.
func NewTable(n int, eps float64) (*Table, error) {
	if n <= 0 {
		return nil, ErrEmptyTable
	}

	return &Table{points: make([]geometry.Point, n), eps: eps}, nil
}

// Randomize draws every coordinate uniformly from [−radius, radius).
// radius must be well below 1/√2 so that the initial points are inside the disk.
func (t *Table) Randomize(rng *rand.Rand, radius float64) {
	for i := range t.points {
		t.points[i] = geometry.Point{
			(rng.Float64()*2 - 1) * radius,
			(rng.Float64()*2 - 1) * radius,
		}
	}
}

// Len returns the number of points.
func (t *Table) Len() int { return len(t.points) }

// Epsilon returns the clipping epsilon used by Update.
func (t *Table) Epsilon() float64 { return t.eps }

// At returns point i. It panics on out-of-range ids like a slice index would;
// trainer ids always come from the vocabulary.
func (t *Table) At(i int) geometry.Point { return t.points[i] }

// Update replaces point i with Apply(point, coeff, grad).
func (t *Table) Update(i int, coeff float64, grad geometry.Point) {
	t.points[i] = geometry.Apply(t.points[i], coeff, grad, t.eps)
}

// Points returns a snapshot copy of the table.
func (t *Table) Points() []geometry.Point {
	return append([]geometry.Point(nil), t.points...)
}

// Get is the bounds-checked variant of At.
func (t *Table) Get(i int) (geometry.Point, error) {
	if i < 0 || i >= len(t.points) {
		return geometry.Point{}, fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, i, len(t.points))
	}

	return t.points[i], nil
}

// Load overwrites the table with points, which must match Len and lie inside the disk.
func (t *Table) Load(points []geometry.Point) error {
	if len(points) != len(t.points) {
		return fmt.Errorf("%w: table has %d points, got %d", ErrSizeMismatch, len(t.points), len(points))
	}
	for i, p := range points {
		if !geometry.Inside(p) {
			return fmt.Errorf("%w: index %d at %v", ErrOutsideDisk, i, p)
		}
	}
	copy(t.points, points)

	return nil
}
