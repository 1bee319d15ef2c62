package villagegraph

import (
	"fmt"
	"image"
	"image/color"

	"github.com/voidshard/villagegraph/powergrid"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Stop is a colour stop in a vertical gradient
type Stop struct {
	Offset float64
	Colour color.Color
}

// Scheme defines how the features of a village are coloured & how thick
// the various lines are.
type Scheme struct {
	Background []Stop // top to bottom

	FieldHighlight color.Color
	FieldStroke    float64

	River               []Stop // top to bottom
	RiverHighlight      color.Color
	RiverWidth          float64
	RiverHighlightWidth float64

	MajorRoad        color.Color
	MajorStripe      color.Color
	MajorWidth       float64
	MajorStripeWidth float64
	MinorRoad        color.Color
	MinorStripe      color.Color
	MinorWidth       float64
	MinorStripeWidth float64

	Bridge        color.Color
	BridgeOutline color.Color

	HouseOutline color.Color

	Tree          color.Color
	TreeHighlight color.Color

	Title        color.Color
	TitleSize    float64
	Subtitle     color.Color
	SubtitleSize float64

	Overlay *OverlayScheme
}

// DefaultScheme returns a reasonable default Scheme.
func DefaultScheme() *Scheme {
	return &Scheme{
		Background: []Stop{
			{0, color.RGBA{214, 229, 185, 255}},
			{0.5, color.RGBA{199, 220, 161, 255}},
			{1, color.RGBA{177, 199, 137, 255}},
		},
		FieldHighlight: withAlpha(colornames.White, 0.35),
		FieldStroke:    1.2,
		River: []Stop{
			{0, color.RGBA{167, 215, 255, 255}},
			{0.65, color.RGBA{126, 199, 241, 255}},
			{1, color.RGBA{74, 146, 217, 255}},
		},
		RiverHighlight:      color.RGBA{253, 253, 253, 255},
		RiverWidth:          120,
		RiverHighlightWidth: 20,
		MajorRoad:           color.RGBA{220, 207, 178, 255},
		MajorStripe:         color.RGBA{155, 143, 121, 255},
		MajorWidth:          20,
		MajorStripeWidth:    5,
		MinorRoad:           color.RGBA{232, 223, 207, 255},
		MinorStripe:         color.RGBA{177, 161, 136, 255},
		MinorWidth:          10,
		MinorStripeWidth:    3,
		Bridge:              color.RGBA{199, 148, 101, 255},
		BridgeOutline:       color.RGBA{138, 92, 52, 255},
		HouseOutline:        color.RGBA{60, 42, 29, 255},
		Tree:                color.RGBA{76, 107, 53, 255},
		TreeHighlight:       withAlpha(colornames.White, 0.3),
		Title:               withAlpha(color.RGBA{22, 28, 34, 255}, 0.9),
		TitleSize:           32,
		Subtitle:            withAlpha(color.RGBA{22, 28, 34, 255}, 0.6),
		SubtitleSize:        12,
		Overlay:             DefaultOverlayScheme(),
	}
}

// roadWidth returns the base width of a road of type t
func (s *Scheme) roadWidth(t RoadType) float64 {
	if t == Major {
		return s.MajorWidth
	}
	return s.MinorWidth
}

// Render paints the village, and the grid overlay if one is given.
// Layers are painted back to front: background, fields, river, roads,
// bridge, houses, trees, title, overlay.
func Render(v *Village, overlay *powergrid.Snapshot, scheme *Scheme) (image.Image, error) {
	if scheme == nil {
		scheme = DefaultScheme()
	}
	title, err := loadFace(gobold.TTF, scheme.TitleSize)
	if err != nil {
		return nil, err
	}
	subtitle, err := loadFace(goregular.TTF, scheme.SubtitleSize)
	if err != nil {
		return nil, err
	}

	size := int(v.size)
	dc := gg.NewContext(size, size)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()

	drawBackground(dc, v.size, scheme)
	drawFields(dc, v.Fields, scheme)
	drawRiver(dc, v.size, v.River, scheme)
	drawRoads(dc, v.Roads, scheme)
	drawBridge(dc, v.size, scheme)
	drawHouses(dc, v.Houses, scheme)
	drawTrees(dc, v.TreeClusters, scheme)
	drawTitle(dc, v.Info, title, subtitle, scheme)
	if overlay != nil {
		o := scheme.Overlay
		if o == nil {
			o = DefaultOverlayScheme()
		}
		label, err := loadFace(goregular.TTF, o.LabelSize)
		if err != nil {
			return nil, err
		}
		drawOverlay(dc, v.size, overlay, label, o)
	}

	return dc.Image(), nil
}

// SavePNG renders the village & writes it to fpath
func SavePNG(fpath string, v *Village, overlay *powergrid.Snapshot, scheme *Scheme) error {
	im, err := Render(v, overlay, scheme)
	if err != nil {
		return err
	}
	return savePNG(fpath, im)
}

func drawBackground(dc *gg.Context, size float64, s *Scheme) {
	dc.SetFillStyle(verticalGradient(size, s.Background))
	dc.DrawRectangle(0, 0, size, size)
	dc.Fill()
}

func drawFields(dc *gg.Context, fields []*Field, s *Scheme) {
	for _, f := range fields {
		polygon(dc, f.Points)
		dc.SetColor(f.Fill)
		dc.FillPreserve()
		dc.SetColor(f.Stroke)
		dc.SetLineWidth(s.FieldStroke)
		dc.StrokePreserve()
		dc.SetColor(s.FieldHighlight)
		dc.SetLineWidth(0.5)
		dc.Stroke()
	}
}

func drawRiver(dc *gg.Context, size float64, river []Point, s *Scheme) {
	dc.SetStrokeStyle(verticalGradient(size, s.River))
	polyline(dc, river, s.RiverWidth)
	dc.SetColor(s.RiverHighlight)
	polyline(dc, river, s.RiverHighlightWidth)
}

func drawRoads(dc *gg.Context, roads []*Road, s *Scheme) {
	for _, r := range roads {
		base, stripe, stripeWidth := s.MinorRoad, s.MinorStripe, s.MinorStripeWidth
		if r.Type == Major {
			base, stripe, stripeWidth = s.MajorRoad, s.MajorStripe, s.MajorStripeWidth
		}
		dc.SetColor(base)
		polyline(dc, r.Path, s.roadWidth(r.Type))
		dc.SetColor(stripe)
		polyline(dc, r.Path, stripeWidth)
	}
}

// drawBridge paints the (purely decorative) plank bridge near the centre
func drawBridge(dc *gg.Context, size float64, s *Scheme) {
	length := size * 0.32
	width := 12.0

	dc.Push()
	defer dc.Pop()
	dc.Translate(size*0.45, size*0.48)

	dc.DrawRectangle(-length/2, -width/2, length, width)
	dc.SetColor(s.Bridge)
	dc.FillPreserve()
	dc.SetColor(s.BridgeOutline)
	dc.SetLineWidth(2)
	dc.Stroke()

	for i := -length/2 + 15; i < length/2; i += 30 {
		dc.DrawLine(i, -width/2, i, width/2)
		dc.Stroke()
	}
}

func drawHouses(dc *gg.Context, houses []*House, s *Scheme) {
	for _, h := range houses {
		dc.Push()
		dc.Translate(h.X, h.Y)
		dc.Rotate(h.Angle)

		dc.DrawRectangle(-h.Width/2, -h.Height/2, h.Width, h.Height)
		dc.SetHexColor(h.BodyColor)
		dc.FillPreserve()
		dc.SetColor(s.HouseOutline)
		dc.SetLineWidth(1.1)
		dc.Stroke()

		// roof
		dc.MoveTo(-h.Width/2, -h.Height/2)
		dc.LineTo(0, -h.Height/1.5)
		dc.LineTo(h.Width/2, -h.Height/2)
		dc.ClosePath()
		dc.SetHexColor(h.RoofColor)
		dc.FillPreserve()
		dc.SetColor(s.HouseOutline)
		dc.Stroke()

		dc.Pop()
	}
}

func drawTrees(dc *gg.Context, clusters []*TreeCluster, s *Scheme) {
	dc.SetLineWidth(0.5)
	for _, c := range clusters {
		for _, t := range c.Trees {
			dc.DrawCircle(t.X, t.Y, t.Radius)
			dc.SetColor(s.Tree)
			dc.FillPreserve()
			dc.SetColor(s.TreeHighlight)
			dc.Stroke()
		}
	}
}

func drawTitle(dc *gg.Context, info Info, title, subtitle font.Face, s *Scheme) {
	dc.SetFontFace(title)
	dc.SetColor(s.Title)
	dc.DrawString(info.Name, 40, 72)

	dc.SetFontFace(subtitle)
	dc.SetColor(s.Subtitle)
	dc.DrawString(fmt.Sprintf("pop. %d", info.Population), 40, 92)
}

// verticalGradient runs top (0) to bottom (size)
func verticalGradient(size float64, stops []Stop) gg.Gradient {
	grad := gg.NewLinearGradient(0, 0, 0, size)
	for _, st := range stops {
		grad.AddColorStop(st.Offset, st.Colour)
	}
	return grad
}

// loadFace parses a ttf font at the given point size
func loadFace(ttf []byte, points float64) (font.Face, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, errors.Wrap(err, "parsing font")
	}
	return truetype.NewFace(f, &truetype.Options{Size: points}), nil
}

// withAlpha returns c with its alpha set to a (0-1)
func withAlpha(c color.Color, a float64) color.NRGBA {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a * 255)}
}
