package villagegraph

import (
	"image/color"
	"strings"

	"github.com/voidshard/villagegraph/powergrid"

	"github.com/fogleman/gg"
	"github.com/golang/geo/r2"
	"golang.org/x/image/font"
)

// OverlayScheme styles a power grid drawn over a village
type OverlayScheme struct {
	// Bounds is the area of grid space mapped on to the canvas
	Bounds r2.Rect

	LineOnline  color.Color
	LineOpen    color.Color
	LineFaulted color.Color

	NodeFill        map[powergrid.Kind]color.Color
	NodeFillDefault color.Color

	NodeRadius        map[powergrid.Kind]float64
	NodeRadiusDefault float64

	NodeOnline  color.Color
	NodeOpen    color.Color
	NodeFaulted color.Color

	Label     color.Color
	LabelSize float64
}

// DefaultOverlayScheme returns the default grid overlay style
func DefaultOverlayScheme() *OverlayScheme {
	return &OverlayScheme{
		Bounds:      powergrid.DefaultBounds,
		LineOnline:  color.RGBA{46, 106, 91, 255},
		LineOpen:    color.RGBA{241, 165, 58, 255},
		LineFaulted: color.RGBA{222, 61, 69, 255},
		NodeFill: map[powergrid.Kind]color.Color{
			powergrid.KindPlant:       color.RGBA{255, 244, 217, 255},
			powergrid.KindTransformer: color.RGBA{217, 234, 244, 255},
			powergrid.KindHouse:       color.RGBA{253, 228, 232, 255},
		},
		NodeFillDefault: color.RGBA{232, 243, 229, 255},
		NodeRadius: map[powergrid.Kind]float64{
			powergrid.KindPlant:       9,
			powergrid.KindTransformer: 7,
		},
		NodeRadiusDefault: 5,
		NodeOnline:        color.RGBA{58, 77, 60, 255},
		NodeOpen:          color.RGBA{241, 165, 58, 255},
		NodeFaulted:       color.RGBA{222, 61, 69, 255},
		Label:             color.RGBA{31, 60, 51, 255},
		LabelSize:         10,
	}
}

func (o *OverlayScheme) lineStyle(s powergrid.Status) (color.Color, float64, []float64) {
	switch s {
	case powergrid.StatusOpen:
		return o.LineOpen, 3, []float64{6, 6}
	case powergrid.StatusFaulted:
		return o.LineFaulted, 4.5, nil
	}
	return o.LineOnline, 2, nil
}

func (o *OverlayScheme) nodeStroke(s powergrid.Status) color.Color {
	switch s {
	case powergrid.StatusOpen:
		return o.NodeOpen
	case powergrid.StatusFaulted:
		return o.NodeFaulted
	}
	return o.NodeOnline
}

func (o *OverlayScheme) nodeFill(k powergrid.Kind) color.Color {
	if c, ok := o.NodeFill[k]; ok {
		return c
	}
	return o.NodeFillDefault
}

func (o *OverlayScheme) nodeRadius(k powergrid.Kind) float64 {
	if r, ok := o.NodeRadius[k]; ok {
		return r
	}
	return o.NodeRadiusDefault
}

// drawOverlay paints lines first then nodes on top. Lines with a missing
// endpoint are skipped.
func drawOverlay(dc *gg.Context, size float64, snap *powergrid.Snapshot, label font.Face, o *OverlayScheme) {
	dc.Push()
	defer dc.Pop()

	for _, l := range snap.SortedLines() {
		from, to, ok := snap.Endpoints(l)
		if !ok {
			continue
		}
		a := powergrid.Project(o.Bounds, from.Position, size)
		b := powergrid.Project(o.Bounds, to.Position, size)

		c, width, dash := o.lineStyle(l.Status)
		dc.SetColor(c)
		dc.SetLineWidth(width)
		dc.SetDash(dash...)
		dc.DrawLine(a.X, a.Y, b.X, b.Y)
		dc.Stroke()
	}
	dc.SetDash()

	dc.SetFontFace(label)
	for _, n := range snap.SortedNodes() {
		p := powergrid.Project(o.Bounds, n.Position, size)
		r := o.nodeRadius(n.Kind)

		dc.DrawCircle(p.X, p.Y, r)
		dc.SetColor(o.nodeFill(n.Kind))
		dc.FillPreserve()
		dc.SetColor(o.nodeStroke(n.Status))
		dc.SetLineWidth(2)
		dc.Stroke()

		dc.SetColor(o.Label)
		dc.DrawString(nodeLabel(n.Kind), p.X+r+2, p.Y+4)
	}
}

// nodeLabel is the upper cased first letter of the kind, N if unknown
func nodeLabel(k powergrid.Kind) string {
	if k == "" {
		return "N"
	}
	return strings.ToUpper(string(k)[:1])
}
