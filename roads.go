package villagegraph

import (
	"math"

	"github.com/golang/geo/r2"
)

var (
	// headings (radians) of the major roads leaving the centre
	majorBaseAngles = []float64{-0.9, -0.2, 0.4, 1.1}
)

const (
	majorSegments = 5
	minorRoads    = 5
	minorSegments = 3
)

// buildRoads lays out the road network. All major roads are built before
// any minor road so that minor roads can branch from any of them (or from
// a minor road built earlier).
func buildRoads(rng Random, l *layout) []*Road {
	roads := make([]*Road, 0, len(majorBaseAngles)+minorRoads)

	majorBounds := l.inset(30, 30, 40)
	for _, base := range majorBaseAngles {
		angle := base + jitter(rng, 0.3)
		roads = append(roads, &Road{
			Type: Major,
			Path: walk(rng, l.centre, angle, majorSegments, l.size*0.16, l.size*0.25, 0.4, majorBounds),
		})
	}

	minorBounds := l.inset(30, 30, 30)
	for i := 0; i < minorRoads; i++ {
		from := roads[pick(rng, len(roads))]
		anchor := from.Path[1+pick(rng, len(from.Path)-2)]
		angle := heading(l.centre, anchor) + jitter(rng, 1.2)
		roads = append(roads, &Road{
			Type: Minor,
			Path: walk(rng, anchor, angle, minorSegments, l.size*0.1, l.size*0.18, 0.9, minorBounds),
		})
	}

	return roads
}

// walk extends a path from start for n segments. Each segment has a random
// length in [minLen, maxLen) and after each segment the heading drifts by
// up to drift/2 either way. The drift is never reset so it accumulates into
// a gentle curve.
func walk(rng Random, start Point, angle float64, n int, minLen, maxLen, drift float64, bounds r2.Rect) []Point {
	path := make([]Point, 0, n+1)
	path = append(path, start)
	for i := 0; i < n; i++ {
		dist := randomRange(rng, minLen, maxLen)
		prev := path[len(path)-1].vec()
		step := r2.Point{X: math.Cos(angle), Y: math.Sin(angle)}.Mul(dist)
		path = append(path, clampInto(bounds, prev.Add(step)))
		angle += jitter(rng, drift)
	}
	return path
}
