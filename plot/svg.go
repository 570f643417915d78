package plot

import (
	"bufio"
	"fmt"
	"html"
	"image/color"
	"io"

	"github.com/katalvlaran/poincare/embedding"
	"github.com/katalvlaran/poincare/geometry"
)

// RenderSVG writes view as a standalone SVG document.
func RenderSVG(w io.Writer, view *embedding.View, opts Options) error {
	if view == nil {
		return ErrNilView
	}
	if err := opts.validate(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	cx, cy := opts.project(0, 0)
	_, bottom := opts.project(0, -1)

	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		opts.Size, opts.Size, opts.Size, opts.Size)
	fmt.Fprintf(bw, `<rect width="100%%" height="100%%" fill="white"/>`+"\n")
	fmt.Fprintf(bw, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="%s"/>`+"\n",
		cx, cy, bottom-cy, hex(CircleColor))
	view.Each(func(term string, p geometry.Point) {
		x, y := opts.project(p[0], p[1])
		lx, ly := opts.project(p[0]+labelOffset, p[1]+labelOffset)
		fmt.Fprintf(bw, `<circle cx="%.2f" cy="%.2f" r="%d" fill="%s"/>`+"\n", x, y, dotRadius, hex(DotColor))
		fmt.Fprintf(bw, `<text x="%.2f" y="%.2f" font-family="monospace" font-size="12" fill="%s">%s</text>`+"\n",
			lx, ly, hex(LabelColor), html.EscapeString(term))
	})
	fmt.Fprintln(bw, `</svg>`)

	return bw.Flush()
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
