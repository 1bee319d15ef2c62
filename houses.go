package villagegraph

import (
	"github.com/golang/geo/r2"
)

const (
	// houses are never placed within this many units of a segment end
	segmentEndMargin = 12.0

	// houses are set back [minSetback, minSetback+setbackRange) from the road
	minSetback   = 28.0
	setbackRange = 30.0

	// extra random gap added after every placement attempt
	spacingJitter = 15.0

	// houses may not sit within plazaRadius * size of the centre
	plazaRadius = 0.18
)

// houseSpacing is the nominal gap between houses along a road of the given type
func houseSpacing(t RoadType) float64 {
	if t == Major {
		return 40
	}
	return 32
}

// houseBuilder places houses along roads, both sides, avoiding the plaza
type houseBuilder struct {
	rng    Random
	l      *layout
	body   []string
	roof   []string
	houses []*House
}

// buildHouses walks every segment of every road (in order) & places houses
// at (roughly) regular intervals either side of it.
func buildHouses(rng Random, l *layout, roads []*Road, body, roof []string) []*House {
	hb := &houseBuilder{rng: rng, l: l, body: body, roof: roof, houses: []*House{}}
	for i, road := range roads {
		spacing := houseSpacing(road.Type)
		for j := 0; j < len(road.Path)-1; j++ {
			hb.alongSegment(i, road.Path[j], road.Path[j+1], spacing)
		}
	}
	return hb.houses
}

// alongSegment scans segment a->b. An anchor that lands inside the plaza is
// skipped but the scan still advances by the same rule as a placement so
// the number of draws per step only depends on whether we placed.
func (hb *houseBuilder) alongSegment(road int, a, b Point, spacing float64) {
	d := b.vec().Sub(a.vec())
	segLen := d.Norm()
	minDist := hb.l.size * plazaRadius

	offset := hb.rng.Float64() * spacing
	for offset < segLen-segmentEndMargin {
		t := offset / segLen
		on := a.vec().Add(d.Mul(t))
		normal := r2.Point{X: -d.Y / segLen, Y: d.X / segLen}

		side := 1.0
		if hb.rng.Float64() < 0.5 {
			side = -1.0
		}
		shift := minSetback + hb.rng.Float64()*setbackRange
		anchor := fromVec(on.Add(normal.Mul(shift * side)))

		if distance(anchor, hb.l.centre) < minDist {
			offset += spacing + hb.rng.Float64()*spacingJitter
			continue
		}

		width := 26 + hb.rng.Float64()*12
		height := 16 + hb.rng.Float64()*12
		hb.houses = append(hb.houses, &House{
			X:         anchor.X,
			Y:         anchor.Y,
			Width:     width,
			Height:    height,
			Angle:     heading(a, b),
			BodyColor: hb.body[pick(hb.rng, len(hb.body))],
			RoofColor: hb.roof[pick(hb.rng, len(hb.roof))],
			Road:      road,
		})
		offset += spacing + hb.rng.Float64()*spacingJitter
	}
}
