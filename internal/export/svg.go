// Package export renders recorded runs as SVG.
package export

import (
	"fmt"
	"strings"

	"github.com/mverhelle/folio/internal/storage"
	"github.com/mverhelle/folio/internal/viz"
)

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	w, h := canvas.Dots()
	width := float64(w) * scale
	height := float64(h) * scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0f172a"/>
<g fill="#e2e8f0">
`, width, height, width, height)

	dotRadius := scale * 0.4
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
				float64(x)*scale+scale/2, float64(y)*scale+scale/2, dotRadius)
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

type TrajectoryOptions struct {
	Width       int // pixels; height follows the square world
	StrokeColor string
	ShowTargets bool
}

// TrajectoryToSVG draws the path of rows inside the world square. World y
// grows downward, as on screen.
func TrajectoryToSVG(rows []storage.Row, worldSize float64, opts TrajectoryOptions) string {
	if len(rows) < 2 || worldSize <= 0 {
		return ""
	}
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.StrokeColor == "" {
		opts.StrokeColor = "#38bdf8"
	}

	scale := float64(opts.Width) / worldSize
	size := opts.Width

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0f172a" stroke="#334155" stroke-width="2"/>
`, size, size, size, size)

	sb.WriteString(`<path fill="none" stroke="` + opts.StrokeColor + `" stroke-width="1.5" d="M`)
	for i, r := range rows {
		x, y := r.X*scale, r.Y*scale
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString("\"/>\n")

	if opts.ShowTargets {
		seen := map[[2]float64]bool{}
		for _, r := range rows {
			key := [2]float64{r.TargetX, r.TargetY}
			if !r.TargetActive || seen[key] {
				continue
			}
			seen[key] = true
			fmt.Fprintf(&sb, "<circle class=\"target\" cx=\"%.1f\" cy=\"%.1f\" r=\"4\" fill=\"none\" stroke=\"#f59e0b\"/>\n",
				r.TargetX*scale, r.TargetY*scale)
		}
	}

	first, last := rows[0], rows[len(rows)-1]
	fmt.Fprintf(&sb, "<circle class=\"start\" cx=\"%.1f\" cy=\"%.1f\" r=\"3\" fill=\"#22c55e\"/>\n", first.X*scale, first.Y*scale)
	fmt.Fprintf(&sb, "<circle class=\"end\" cx=\"%.1f\" cy=\"%.1f\" r=\"3\" fill=\"#ef4444\"/>\n", last.X*scale, last.Y*scale)

	sb.WriteString("</svg>")
	return sb.String()
}
