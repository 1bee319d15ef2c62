package villagegraph

import (
	"math"
)

const riverSamples = 7

// buildRiver returns a polyline running top to bottom across the canvas.
// The x position wobbles along a slow sine with a random offset per sample.
func buildRiver(rng Random, l *layout) []Point {
	path := make([]Point, 0, riverSamples)
	for i := 0; i < riverSamples; i++ {
		t := float64(i) / float64(riverSamples-1)
		wobble := math.Sin(t * math.Pi * 1.3)
		x := clamp(l.size*(0.2+wobble*0.12+rng.Float64()*0.4), 20, l.size-40)
		path = append(path, Pt(x, l.size*t))
	}
	return path
}
