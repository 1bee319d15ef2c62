package villagegraph

import (
	"image"
	"image/color"
	"math"

	"github.com/voidshard/villagegraph/internal/line"

	"github.com/boljen/go-bitmap"
	"github.com/fogleman/gg"
)

const (
	// bit numbers for our bitmap
	bitRiver     = 0
	bitRoad      = 1
	bitMinorRoad = 2
	bitHouse     = 3
	bitField     = 4
	bitTree      = 5
)

// VillageMap is a pixel level representation of a Village.
// Unlike the Village itself (which is geometry) a VillageMap can answer
// "what is at (x,y)?" questions. More than one thing can be at a pixel
// (a house can sit on a field, a road runs over the river).
type VillageMap interface {
	// Save as a greyscale image where each pixel value is the bitmap of
	// flags set there
	Save(fpath string) error

	IsRiver(x, y int) bool
	IsRoad(x, y int) bool
	IsMinorRoad(x, y int) bool
	IsHouse(x, y int) bool
	IsField(x, y int) bool
	IsTree(x, y int) bool

	// Crossings returns every road broken into sections on land & over
	// the river (bridges)
	Crossings() []*Edge
}

// Edge represents a complete road broken into Sections, which are each
// parts of the road's path.
// Ie. a road from a - z might have three parts
// - a->f: a stretch of road
// - g->m: a bridge
// - n->z: a stretch of road
type Edge struct {
	Road     int
	Sections []*Section
}

// Section is a piece of an edge
type Section struct {
	Path   [2]image.Point
	Bridge bool `json:",omitempty"`
}

// Bridges returns how many sections of the edge are bridges
func (e *Edge) Bridges() int {
	count := 0
	for _, s := range e.Sections {
		if s.Bridge {
			count++
		}
	}
	return count
}

// imageMap is a VillageMap held in an 8 bit greyscale image, one bitmap
// byte per pixel.
type imageMap struct {
	im    *image.Gray
	roads []*Road
}

// Map rasterises the village using the stroke widths of DefaultScheme.
// The raster is rebuilt on each call.
func (v *Village) Map() VillageMap {
	return newMap(v, DefaultScheme())
}

// newMap paints each layer of v on to its own scratch context & copies
// the painted pixels into our bitmap image. Letting a drawing lib work
// out thick lines, rotated rectangles etc is far easier than doing the
// geometry ourselves.
func newMap(v *Village, scheme *Scheme) *imageMap {
	size := int(math.Ceil(v.size))
	m := &imageMap{im: image.NewGray(image.Rect(0, 0, size, size)), roads: v.Roads}

	m.paint(bitField, func(ctx *gg.Context) {
		for _, f := range v.Fields {
			polygon(ctx, f.Points)
			ctx.Fill()
		}
	})
	m.paint(bitRiver, func(ctx *gg.Context) {
		polyline(ctx, v.River, scheme.RiverWidth)
	})
	m.paint(bitRoad, func(ctx *gg.Context) {
		for _, r := range v.Roads {
			polyline(ctx, r.Path, scheme.roadWidth(r.Type))
		}
	})
	m.paint(bitMinorRoad, func(ctx *gg.Context) {
		for _, r := range v.Roads {
			if r.Type == Minor {
				polyline(ctx, r.Path, scheme.roadWidth(r.Type))
			}
		}
	})
	m.paint(bitHouse, func(ctx *gg.Context) {
		for _, h := range v.Houses {
			ctx.Push()
			ctx.Translate(h.X, h.Y)
			ctx.Rotate(h.Angle)
			ctx.DrawRectangle(-h.Width/2, -h.Height/2, h.Width, h.Height)
			ctx.Fill()
			ctx.Pop()
		}
	})
	m.paint(bitTree, func(ctx *gg.Context) {
		for _, c := range v.TreeClusters {
			for _, t := range c.Trees {
				ctx.DrawCircle(t.X, t.Y, t.Radius)
				ctx.Fill()
			}
		}
	})

	return m
}

// paint runs fn against a blank context & sets `bit` wherever fn painted
// at least half opaque.
func (m *imageMap) paint(bit int, fn func(ctx *gg.Context)) {
	bnds := m.im.Bounds()
	ctx := gg.NewContext(bnds.Dx(), bnds.Dy())
	ctx.SetColor(color.White)
	ctx.SetLineCapRound()
	ctx.SetLineJoinRound()
	fn(ctx)

	scratch := ctx.Image().(*image.RGBA)
	for dy := bnds.Min.Y; dy < bnds.Max.Y; dy++ {
		for dx := bnds.Min.X; dx < bnds.Max.X; dx++ {
			if scratch.RGBAAt(dx, dy).A < 128 {
				continue
			}
			m.getBM(dx, dy).Set(bit, true)
		}
	}
}

// getBM returns the bitmap at x,y. The bitmap shares memory with the
// image so setting a bit writes straight through.
func (m *imageMap) getBM(x, y int) bitmap.Bitmap {
	i := m.im.PixOffset(x, y)
	return bitmap.Bitmap(m.im.Pix[i : i+1])
}

// has returns if bit is set at x,y
func (m *imageMap) has(x, y, bit int) bool {
	if m.isOutOfBounds(x, y) {
		return false
	}
	return m.getBM(x, y).Get(bit)
}

// isOutOfBounds determines if x,y is outside of the image area
func (m *imageMap) isOutOfBounds(x, y int) bool {
	return !image.Pt(x, y).In(m.im.Bounds())
}

// Save the VillageMap as is to disk
func (m *imageMap) Save(fpath string) error {
	return savePNG(fpath, m.im)
}

// IsRiver returns if the river covers x,y
func (m *imageMap) IsRiver(x, y int) bool { return m.has(x, y, bitRiver) }

// IsRoad returns if any road (major or minor) covers x,y
func (m *imageMap) IsRoad(x, y int) bool { return m.has(x, y, bitRoad) }

// IsMinorRoad returns if a minor road covers x,y
func (m *imageMap) IsMinorRoad(x, y int) bool { return m.has(x, y, bitMinorRoad) }

// IsHouse returns if a house covers x,y
func (m *imageMap) IsHouse(x, y int) bool { return m.has(x, y, bitHouse) }

// IsField returns if a field covers x,y
func (m *imageMap) IsField(x, y int) bool { return m.has(x, y, bitField) }

// IsTree returns if a tree covers x,y
func (m *imageMap) IsTree(x, y int) bool { return m.has(x, y, bitTree) }

// Crossings walks the centre line of every road pixel by pixel, starting a
// new section each time the road moves on to or off of the river.
func (m *imageMap) Crossings() []*Edge {
	edges := make([]*Edge, 0, len(m.roads))
	for i, r := range m.roads {
		edge := &Edge{Road: i, Sections: []*Section{}}
		var current *Section

		for j := 0; j < len(r.Path)-1; j++ {
			a := line.Round(r.Path[j].X, r.Path[j].Y)
			b := line.Round(r.Path[j+1].X, r.Path[j+1].Y)
			first := true
			line.Walk(a, b, func(p image.Point) bool {
				if first && j > 0 {
					// the previous segment already visited this pixel
					first = false
					return true
				}
				first = false

				bridge := m.IsRiver(p.X, p.Y)
				if current == nil || current.Bridge != bridge {
					current = &Section{Path: [2]image.Point{p, p}, Bridge: bridge}
					edge.Sections = append(edge.Sections, current)
					return true
				}
				current.Path[1] = p
				return true
			})
		}

		edges = append(edges, edge)
	}
	return edges
}

// polyline strokes pts with the given width
func polyline(ctx *gg.Context, pts []Point, width float64) {
	if len(pts) == 0 {
		return
	}
	ctx.SetLineWidth(width)
	ctx.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		ctx.LineTo(p.X, p.Y)
	}
	ctx.Stroke()
}

// polygon adds a closed path through pts without filling or stroking it
func polygon(ctx *gg.Context, pts []Point) {
	if len(pts) == 0 {
		return
	}
	ctx.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		ctx.LineTo(p.X, p.Y)
	}
	ctx.ClosePath()
}
