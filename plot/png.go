package plot

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/katalvlaran/poincare/embedding"
	"github.com/katalvlaran/poincare/geometry"
)

// Scene colors shared by both renderers.
var (
	CircleColor = color.RGBA{A: 0xff}
	DotColor    = color.RGBA{R: 0xe6, G: 0xc2, A: 0xff}
	LabelColor  = color.RGBA{B: 0xcc, A: 0xff}
)

// RenderPNG draws view and encodes it as PNG.
func RenderPNG(w io.Writer, view *embedding.View, opts Options) error {
	if view == nil {
		return ErrNilView
	}
	if err := opts.validate(); err != nil {
		return err
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Size, opts.Size))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	drawCircle(img, opts)
	view.Each(func(_ string, p geometry.Point) {
		x, y := opts.project(p[0], p[1])
		fillDot(img, int(math.Floor(x)), int(math.Floor(y)), dotRadius, DotColor)
	})

	d := &font.Drawer{Dst: img, Src: image.NewUniform(LabelColor), Face: basicfont.Face7x13}
	view.Each(func(term string, p geometry.Point) {
		x, y := opts.project(p[0]+labelOffset, p[1]+labelOffset)
		d.Dot = fixed.P(int(math.Floor(x)), int(math.Floor(y)))
		d.DrawString(term)
	})

	return png.Encode(w, img)
}

// drawCircle traces the unit circle one pixel wide.
func drawCircle(img *image.RGBA, opts Options) {
	_, r := opts.project(0, -1)
	_, c := opts.project(0, 0)
	steps := int(8*(r-c)) + 8
	for k := 0; k < steps; k++ {
		th := 2 * math.Pi * float64(k) / float64(steps)
		x, y := opts.project(math.Cos(th), math.Sin(th))
		img.SetRGBA(int(math.Floor(x)), int(math.Floor(y)), CircleColor)
	}
}

// fillDot paints a filled disc; pixels outside the image are ignored by SetRGBA.
func fillDot(img *image.RGBA, cx, cy, r int, c color.RGBA) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				img.SetRGBA(cx+dx, cy+dy, c)
			}
		}
	}
}
