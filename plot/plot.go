// Package plot draws a trained embedding inside the Poincaré disk.
//
// The scene is the unit circle, one dot per term and the term's label offset
// by +0.01 in both coordinates. The visible square spans [−Margin, Margin] on
// both axes, y pointing up. RenderPNG rasterises with the standard image
// packages and labels with golang.org/x/image/font/basicfont; RenderSVG writes
// the same scene as markup.
package plot

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/poincare/embedding"
)

var (
	// ErrBadSize indicates an image edge shorter than MinSize pixels.
	ErrBadSize = errors.New("plot: image size too small")

	// ErrBadMargin indicates a margin that would crop the unit circle.
	ErrBadMargin = errors.New("plot: margin must be at least 1")

	// ErrNilView is returned when there is nothing to draw.
	ErrNilView = errors.New("plot: view is nil")

	// ErrUnknownFormat is returned by SaveFile for extensions other than .png and .svg.
	ErrUnknownFormat = errors.New("plot: unknown image format")
)

const (
	// DefaultSize is the image edge in pixels.
	DefaultSize = 1000
	// DefaultMargin is the half-width of the visible square in disk units.
	DefaultMargin = 1.1
	// MinSize is the smallest accepted image edge.
	MinSize = 16

	labelOffset = 0.01
	dotRadius   = 4 // pixels
)

// Options controls the rendered scene.
type Options struct {
	Size   int     // image edge in pixels
	Margin float64 // visible square is [−Margin, Margin]²
}

// DefaultOptions returns a 1000×1000 image spanning ±1.1.
func DefaultOptions() Options {
	return Options{Size: DefaultSize, Margin: DefaultMargin}
}

func (o Options) validate() error {
	if o.Size < MinSize {
		return fmt.Errorf("%w: %d < %d", ErrBadSize, o.Size, MinSize)
	}
	if !(o.Margin >= 1) {
		return fmt.Errorf("%w: %v", ErrBadMargin, o.Margin)
	}

	return nil
}

// project maps disk coordinates to pixel coordinates.
func (o Options) project(x, y float64) (float64, float64) {
	scale := float64(o.Size) / (2 * o.Margin)

	return (x + o.Margin) * scale, (o.Margin - y) * scale
}

// SaveFile renders view to path, choosing PNG or SVG by the file extension.
func SaveFile(path string, view *embedding.View, opts Options) (err error) {
	var render func(io.Writer, *embedding.View, Options) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		render = RenderPNG
	case ".svg":
		render = RenderSVG
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return render(f, view, opts)
}
