package villagegraph

import (
	"image/color"
	"math"

	"github.com/golang/geo/r2"
)

var (
	// field centres as a fraction of the canvas size, pushed out towards
	// the corners & away from the village centre
	fieldCentres = []r2.Point{
		{X: 0.18, Y: 0.25},
		{X: 0.15, Y: 0.65},
		{X: 0.75, Y: 0.22},
		{X: 0.82, Y: 0.58},
	}

	fieldFill   = color.NRGBA{R: 189, G: 209, B: 146, A: 255}
	fieldStroke = color.NRGBA{R: 124, G: 138, B: 78, A: 255}
)

// buildFields returns one star shaped polygon per field centre.
// Vertices are spread evenly around the centre with a little angular
// jitter, which keeps the polygon star-convex about its centre.
func buildFields(rng Random, l *layout) []*Field {
	bounds := l.inset(20, 20, 20)
	fields := make([]*Field, 0, len(fieldCentres))

	for _, c := range fieldCentres {
		centre := c.Mul(l.size)
		radius := l.size * (0.15 + rng.Float64()*0.12)
		count := 5 + pick(rng, 4)

		points := make([]Point, 0, count)
		for i := 0; i < count; i++ {
			angle := float64(i)/float64(count)*math.Pi*2 + jitter(rng, 0.4)
			dist := radius * (0.6 + rng.Float64()*0.3)
			offset := r2.Point{X: math.Cos(angle), Y: math.Sin(angle)}.Mul(dist)
			points = append(points, clampInto(bounds, centre.Add(offset)))
		}

		alpha := 0.55 + rng.Float64()*0.2
		fill := fieldFill
		fill.A = uint8(math.Round(alpha * 255))

		fields = append(fields, &Field{Points: points, Alpha: alpha, Fill: fill, Stroke: fieldStroke})
	}

	return fields
}
