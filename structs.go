package villagegraph

import (
	"image/color"
	"math"

	"github.com/golang/geo/r2"
)

// RoadType indicates roughly how important a road is.
// Major roads run out from the village centre, minor roads branch off
// of whatever road already exists.
type RoadType string

const (
	Major RoadType = "major" // the main roads out of the village
	Minor RoadType = "minor" // lanes branching off of other roads
)

// Point is a location on the canvas
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{x, y}
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// vec returns the point as a vector for maths
func (p Point) vec() r2.Point {
	return r2.Point{X: p.X, Y: p.Y}
}

// fromVec is the inverse of Point.vec()
func fromVec(v r2.Point) Point {
	return Point{X: v.X, Y: v.Y}
}

// Road is a polyline of at least two points.
type Road struct {
	Path []Point  `json:"path"`
	Type RoadType `json:"type"`
}

// House is a rotated rectangle with a triangular roof. (X,Y) is the
// centre of the house body & Angle the heading of the road segment it
// was placed along.
type House struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Angle     float64 `json:"angle"`
	BodyColor string  `json:"bodyColor"`
	RoofColor string  `json:"roofColor"`

	// index into Village.Roads of the road this house fronts
	Road int `json:"road"`
}

// Field is a closed polygon of farmland
type Field struct {
	Points []Point     `json:"points"`
	Alpha  float64     `json:"alpha"`
	Fill   color.NRGBA `json:"fill"`
	Stroke color.NRGBA `json:"stroke"`
}

// Tree is a single circular tree top
type Tree struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

// TreeCluster is a copse of trees scattered about an Anchor
type TreeCluster struct {
	Anchor Point  `json:"anchor"`
	Trees  []Tree `json:"trees"`
}

// Info is the title card of a village
type Info struct {
	Name       string `json:"name"`
	Population int    `json:"population"`
}

// Stats holds generic stats about the village
type Stats struct {
	// Count of roads of a given type
	RoadsByType map[RoadType]int `json:",omitempty"`

	// Count of houses placed along roads of a given type
	HousesByRoadType map[RoadType]int `json:",omitempty"`

	// Total trees over all clusters
	Trees int
}

// newStats returns blank Stats
func newStats() *Stats {
	return &Stats{RoadsByType: map[RoadType]int{}, HousesByRoadType: map[RoadType]int{}}
}

// collect fills in stats from generated content
func (s *Stats) collect(roads []*Road, houses []*House, clusters []*TreeCluster) {
	for _, r := range roads {
		s.RoadsByType[r.Type]++
	}
	for _, h := range houses {
		s.HousesByRoadType[roads[h.Road].Type]++
	}
	for _, c := range clusters {
		s.Trees += len(c.Trees)
	}
}

// distance between two points
func distance(a, b Point) float64 {
	return b.vec().Sub(a.vec()).Norm()
}

// heading returns the angle of the vector a->b
func heading(a, b Point) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}
