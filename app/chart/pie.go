package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/fogleman/gg"
)

type Slice struct {
	Label string
	Value int
	Color string
}

// PieRenderer draws slices counter-clockwise starting at twelve o'clock, each
// labelled with its name and share.
type PieRenderer struct {
	Width  int
	Height int
	Title  string
}

func NewPieRenderer(title string) *PieRenderer {
	return &PieRenderer{
		Width:  480,
		Height: 480,
		Title:  title,
	}
}

func (r *PieRenderer) Center() (float64, float64, float64) {
	cx := float64(r.Width) / 2
	cy := float64(r.Height)/2 + 10
	radius := math.Min(float64(r.Width), float64(r.Height))*0.5 - 70
	return cx, cy, radius
}

// RenderPNG writes the chart as PNG to w.
func (r *PieRenderer) RenderPNG(w io.Writer, slices []Slice) error {
	dc := gg.NewContext(r.Width, r.Height)

	dc.SetColor(color.White)
	dc.Clear()

	dc.SetColor(color.Black)
	dc.DrawStringAnchored(r.Title, float64(r.Width)/2, 20, 0.5, 0.5)

	cx, cy, radius := r.Center()

	total := 0
	for _, s := range slices {
		total += s.Value
	}

	if total == 0 {
		dc.SetColor(hexColor("#cccccc"))
		dc.DrawCircle(cx, cy, radius)
		dc.Stroke()
		dc.SetColor(color.Black)
		dc.DrawStringAnchored("No data", cx, cy, 0.5, 0.5)
		return dc.EncodePNG(w)
	}

	// Angles grow clockwise on screen, so counter-clockwise wedges are drawn
	// from their end angle back to their start.
	start := 0.0
	for _, s := range slices {
		if s.Value == 0 {
			continue
		}
		sweep := 2 * math.Pi * float64(s.Value) / float64(total)
		end := start + sweep

		a1 := -math.Pi/2 - end
		a2 := -math.Pi/2 - start

		dc.MoveTo(cx, cy)
		dc.DrawArc(cx, cy, radius, a1, a2)
		dc.ClosePath()
		dc.SetColor(hexColor(s.Color))
		dc.FillPreserve()
		dc.SetColor(color.White)
		dc.SetLineWidth(1)
		dc.Stroke()

		mid := (a1 + a2) / 2
		share := fmt.Sprintf("%.1f%%", 100*float64(s.Value)/float64(total))

		dc.SetColor(color.Black)
		dc.DrawStringAnchored(share, cx+radius*0.6*math.Cos(mid), cy+radius*0.6*math.Sin(mid), 0.5, 0.5)
		dc.DrawStringAnchored(s.Label, cx+(radius+25)*math.Cos(mid), cy+(radius+25)*math.Sin(mid), 0.5, 0.5)

		start = end
	}

	return dc.EncodePNG(w)
}

func hexColor(hex string) color.Color {
	hex = strings.TrimPrefix(hex, "#")
	var cr, cg, cb uint8
	fmt.Sscanf(hex, "%02x%02x%02x", &cr, &cg, &cb)
	return color.RGBA{cr, cg, cb, 255}
}
