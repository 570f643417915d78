package edgelist_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/poincare/edgelist"
)

func TestRead_Basic(t *testing.T) {
	in := "dog.n.01\tmammal.n.01\ncat.n.01\tmammal.n.01\n\n\n"
	pairs, err := edgelist.Read(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []edgelist.Pair{
		{From: "dog.n.01", To: "mammal.n.01"},
		{From: "cat.n.01", To: "mammal.n.01"},
	}, pairs)
}

func TestRead_CRLFAndInnerBlankLines(t *testing.T) {
	in := "a\tb\r\n\r\nc\td\r\n"
	pairs, err := edgelist.Read(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []edgelist.Pair{{From: "a", To: "b"}, {From: "c", To: "d"}}, pairs)
}

func TestRead_Duplicates(t *testing.T) {
	pairs, err := edgelist.Read(strings.NewReader("x\ty\nx\ty\n"))
	require.NoError(t, err)
	assert.Len(t, pairs, 2, "duplicates are kept as separate positive examples")
}

func TestRead_Empty(t *testing.T) {
	pairs, err := edgelist.Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, pairs)
}

func TestRead_Malformed(t *testing.T) {
	cases := map[string]string{
		"no tab":      "a\tb\nc d\n",
		"three terms": "a\tb\tc\n",
		"empty left":  "\tb\n",
		"empty right": "a\t\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := edgelist.Read(strings.NewReader(in))
			assert.ErrorIs(t, err, edgelist.ErrMalformedLine)
		})
	}

	_, err := edgelist.Read(strings.NewReader("a\tb\nc d\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestRead_NilReader(t *testing.T) {
	_, err := edgelist.Read(nil)
	assert.ErrorIs(t, err, edgelist.ErrNilReader)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := edgelist.ReadFile(filepath.Join(t.TempDir(), "absent.tsv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edges.tsv")
	want := []edgelist.Pair{{From: "puppy", To: "dog"}, {From: "dog", To: "mammal"}}
	require.NoError(t, edgelist.WriteFile(path, want))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "puppy\tdog\ndog\tmammal\n", string(raw))

	got, err := edgelist.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWrite_RejectsUnencodable(t *testing.T) {
	var sb strings.Builder
	err := edgelist.Write(&sb, []edgelist.Pair{{From: "a\tb", To: "c"}})
	assert.ErrorIs(t, err, edgelist.ErrMalformedLine)
}
