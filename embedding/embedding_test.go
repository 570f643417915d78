package embedding_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/poincare/edgelist"
	"github.com/katalvlaran/poincare/embedding"
	"github.com/katalvlaran/poincare/geometry"
	"github.com/katalvlaran/poincare/vocab"
)

func TestNewTable_Empty(t *testing.T) {
	_, err := embedding.NewTable(0, geometry.DefaultEpsilon)
	assert.ErrorIs(t, err, embedding.ErrEmptyTable)
}

// TestTable_RandomizeRange verifies initial points lie in the ±radius box near the centre.
func TestTable_RandomizeRange(t *testing.T) {
	tbl, err := embedding.NewTable(500, geometry.DefaultEpsilon)
	require.NoError(t, err)
	tbl.Randomize(rand.New(rand.NewSource(1)), embedding.DefaultInitRange)

	for i := 0; i < tbl.Len(); i++ {
		p := tbl.At(i)
		for k := 0; k < geometry.Dim; k++ {
			assert.GreaterOrEqual(t, p[k], -embedding.DefaultInitRange)
			assert.Less(t, p[k], embedding.DefaultInitRange)
		}
	}
}

// TestTable_UpdateKeepsInvariant verifies Update clips through geometry.Apply.
func TestTable_UpdateKeepsInvariant(t *testing.T) {
	tbl, err := embedding.NewTable(2, geometry.DefaultEpsilon)
	require.NoError(t, err)

	tbl.Update(0, -1, geometry.Point{-1e6, 3e6})
	assert.True(t, geometry.Inside(tbl.At(0)))
	assert.InDelta(t, 1-geometry.DefaultEpsilon, tbl.At(0).Norm2(), 1e-5)

	tbl.Update(1, 0, geometry.Point{5, 5})
	assert.Equal(t, geometry.Point{}, tbl.At(1))

	_, err = tbl.Get(2)
	assert.ErrorIs(t, err, embedding.ErrIndexOutOfRange)
}

// TestTable_PointsSnapshot verifies Points returns a copy.
func TestTable_PointsSnapshot(t *testing.T) {
	tbl, err := embedding.NewTable(1, geometry.DefaultEpsilon)
	require.NoError(t, err)
	pts := tbl.Points()
	pts[0] = geometry.Point{0.5, 0.5}
	assert.Equal(t, geometry.Point{}, tbl.At(0))
}

func newView(t *testing.T) *embedding.View {
	t.Helper()
	v, err := embedding.NewView(
		[]string{"mammal", "dog", "cat", "puppy"},
		[]geometry.Point{{0, 0}, {0.5, 0}, {-0.5, 0}, {0.8, 0.1}},
		geometry.DefaultEpsilon,
	)
	require.NoError(t, err)

	return v
}

func TestNewView_Errors(t *testing.T) {
	_, err := embedding.NewView(nil, nil, geometry.DefaultEpsilon)
	assert.ErrorIs(t, err, embedding.ErrEmptyTable)

	_, err = embedding.NewView([]string{"a"}, nil, geometry.DefaultEpsilon)
	assert.ErrorIs(t, err, embedding.ErrSizeMismatch)

	_, err = embedding.NewView([]string{"a", "a"}, make([]geometry.Point, 2), geometry.DefaultEpsilon)
	assert.ErrorIs(t, err, embedding.ErrDuplicateTerm)

	_, err = embedding.NewView([]string{"a"}, []geometry.Point{{1, 0}}, geometry.DefaultEpsilon)
	assert.ErrorIs(t, err, embedding.ErrOutsideDisk)
}

func TestFromTable(t *testing.T) {
	s, err := vocab.FromPairs([]edgelist.Pair{{From: "a", To: "b"}})
	require.NoError(t, err)
	tbl, err := embedding.NewTable(2, geometry.DefaultEpsilon)
	require.NoError(t, err)

	v, err := embedding.FromTable(s, tbl)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v.Terms())

	big, err := embedding.NewTable(3, geometry.DefaultEpsilon)
	require.NoError(t, err)
	_, err = embedding.FromTable(s, big)
	assert.ErrorIs(t, err, embedding.ErrSizeMismatch)
}

func TestView_LookupAndDistance(t *testing.T) {
	v := newView(t)

	p, ok := v.Lookup("dog")
	require.True(t, ok)
	assert.Equal(t, geometry.Point{0.5, 0}, p)

	_, ok = v.Lookup("whale")
	assert.False(t, ok)

	d, err := v.Distance("mammal", "dog")
	require.NoError(t, err)
	want, _ := geometry.Distance(geometry.Point{}, geometry.Point{0.5, 0}, geometry.DefaultEpsilon)
	assert.Equal(t, want, d)

	_, err = v.Distance("mammal", "whale")
	assert.ErrorIs(t, err, embedding.ErrUnknownTerm)
}

func TestView_Nearest(t *testing.T) {
	v := newView(t)

	got, err := v.Nearest("dog", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "mammal", got[0].Term)
	assert.Equal(t, "puppy", got[1].Term)
	assert.LessOrEqual(t, got[0].Distance, got[1].Distance)

	all, err := v.Nearest("dog", 10)
	require.NoError(t, err)
	assert.Len(t, all, 3, "self is excluded")

	_, err = v.Nearest("dog", 0)
	assert.ErrorIs(t, err, embedding.ErrBadK)
	_, err = v.Nearest("whale", 1)
	assert.ErrorIs(t, err, embedding.ErrUnknownTerm)
}

func TestView_TSVRoundTrip(t *testing.T) {
	v := newView(t)

	var buf bytes.Buffer
	require.NoError(t, v.WriteTSV(&buf))
	assert.Contains(t, buf.String(), "dog\t0.5\t0\n")

	back, err := embedding.ReadTSV(&buf, geometry.DefaultEpsilon)
	require.NoError(t, err)
	assert.Equal(t, v.Terms(), back.Terms())
	assert.Equal(t, v.Points(), back.Points())
}

func TestReadTSV_Malformed(t *testing.T) {
	_, err := embedding.ReadTSV(bytes.NewBufferString("a\t0.1\n"), geometry.DefaultEpsilon)
	assert.Error(t, err)

	_, err = embedding.ReadTSV(bytes.NewBufferString("a\tx\t0\n"), geometry.DefaultEpsilon)
	assert.Error(t, err)
}

func TestTable_Load(t *testing.T) {
	tbl, err := embedding.NewTable(2, geometry.DefaultEpsilon)
	require.NoError(t, err)

	require.NoError(t, tbl.Load([]geometry.Point{{0.1, 0}, {0, -0.2}}))
	assert.Equal(t, geometry.Point{0, -0.2}, tbl.At(1))

	assert.ErrorIs(t, tbl.Load([]geometry.Point{{0, 0}}), embedding.ErrSizeMismatch)
	assert.ErrorIs(t, tbl.Load([]geometry.Point{{0, 0}, {0.8, 0.8}}), embedding.ErrOutsideDisk)
	assert.Equal(t, geometry.Point{0.1, 0}, tbl.At(0), "failed Load leaves the table untouched")
}
