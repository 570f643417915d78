package plot_test

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/poincare/embedding"
	"github.com/katalvlaran/poincare/geometry"
	"github.com/katalvlaran/poincare/plot"
)

func smallView(t *testing.T) *embedding.View {
	t.Helper()
	v, err := embedding.NewView(
		[]string{"o", "a&b", "<c>"},
		[]geometry.Point{{0, 0}, {0.5, 0.5}, {-0.5, -0.5}},
		geometry.DefaultEpsilon,
	)
	require.NoError(t, err)

	return v
}

func rgba(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

func TestRenderPNG_Scene(t *testing.T) {
	var buf bytes.Buffer
	opts := plot.Options{Size: 200, Margin: 1.1}
	require.NoError(t, plot.RenderPNG(&buf, smallView(t), opts))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())

	// Origin projects to (100, 100); (100, 103) lies inside its dot and below the label.
	assert.Equal(t, plot.DotColor, rgba(img.At(100, 103)))
	// The circle crosses the positive x axis at pixel (190, 100).
	assert.Equal(t, plot.CircleColor, rgba(img.At(190, 100)))
	// Corners stay background.
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, rgba(img.At(0, 0)))
}

func TestRenderSVG_Scene(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, plot.RenderSVG(&buf, smallView(t), plot.Options{Size: 200, Margin: 1.1}))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<svg "))
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))
	assert.Contains(t, out, `width="200" height="200"`)
	assert.Contains(t, out, `<circle cx="100.00" cy="100.00" r="90.91" fill="none"`)
	assert.Equal(t, 3, strings.Count(out, "<text "))
	assert.Contains(t, out, ">a&amp;b</text>")
	assert.Contains(t, out, ">&lt;c&gt;</text>")
	// Label of the origin term sits at (+0.01, +0.01).
	assert.Contains(t, out, `<text x="100.91" y="99.09"`)
}

func TestRender_Errors(t *testing.T) {
	var buf bytes.Buffer
	v := smallView(t)

	assert.ErrorIs(t, plot.RenderPNG(&buf, nil, plot.DefaultOptions()), plot.ErrNilView)
	assert.ErrorIs(t, plot.RenderSVG(&buf, nil, plot.DefaultOptions()), plot.ErrNilView)
	assert.ErrorIs(t, plot.RenderPNG(&buf, v, plot.Options{Size: 4, Margin: 1.1}), plot.ErrBadSize)
	assert.ErrorIs(t, plot.RenderSVG(&buf, v, plot.Options{Size: 100, Margin: 0.5}), plot.ErrBadMargin)
	assert.Zero(t, buf.Len())
}

func TestSaveFile(t *testing.T) {
	dir := t.TempDir()
	v := smallView(t)
	opts := plot.Options{Size: 64, Margin: 1.1}

	pngPath := filepath.Join(dir, "disk.PNG")
	require.NoError(t, plot.SaveFile(pngPath, v, opts))
	f, err := os.Open(pngPath)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())

	svgPath := filepath.Join(dir, "disk.svg")
	require.NoError(t, plot.SaveFile(svgPath, v, opts))
	data, err := os.ReadFile(svgPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg ")

	err = plot.SaveFile(filepath.Join(dir, "disk.jpg"), v, opts)
	assert.ErrorIs(t, err, plot.ErrUnknownFormat)
	_, statErr := os.Stat(filepath.Join(dir, "disk.jpg"))
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestDefaultOptions(t *testing.T) {
	o := plot.DefaultOptions()
	assert.Equal(t, 1000, o.Size)
	assert.Equal(t, 1.1, o.Margin)
}
