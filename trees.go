package villagegraph

import (
	"math"

	"github.com/golang/geo/r2"
)

const (
	minTreesPerCluster = 18
	treesPerClusterMax = 24 // exclusive upper bound of the random extra trees

	// trees scatter within clusterRadius * size of their anchor
	clusterRadius = 0.2
)

// anchorRegion describes where a cluster anchor may land: Min plus up to
// Spread, as fractions of the canvas size
type anchorRegion struct {
	Min    r2.Point
	Spread r2.Point
}

var clusterRegions = []anchorRegion{
	{Min: r2.Point{X: 0.12, Y: 0.18}, Spread: r2.Point{X: 0.2, Y: 0.12}},
	{Min: r2.Point{X: 0.22, Y: 0.62}, Spread: r2.Point{X: 0.15, Y: 0.12}},
	{Min: r2.Point{X: 0.7, Y: 0.15}, Spread: r2.Point{X: 0.18, Y: 0.15}},
}

// buildTreeClusters picks all anchors up front then scatters each cluster
func buildTreeClusters(rng Random, l *layout) []*TreeCluster {
	anchors := make([]Point, 0, len(clusterRegions))
	for _, reg := range clusterRegions {
		x := l.size * (reg.Min.X + rng.Float64()*reg.Spread.X)
		y := l.size * (reg.Min.Y + rng.Float64()*reg.Spread.Y)
		anchors = append(anchors, Pt(x, y))
	}

	bounds := l.inset(10, 10, 10)
	clusters := make([]*TreeCluster, 0, len(anchors))
	for _, anchor := range anchors {
		count := minTreesPerCluster + pick(rng, treesPerClusterMax)
		trees := make([]Tree, 0, count)
		for i := 0; i < count; i++ {
			angle := rng.Float64() * math.Pi * 2
			dist := (0.2 + rng.Float64()*0.6) * l.size * clusterRadius
			radius := rng.Float64()*6 + 6
			spread := 0.7 + rng.Float64()*0.5

			x := anchor.X + math.Cos(angle)*dist*spread
			y := anchor.Y + math.Sin(angle)*dist*spread
			p := clampInto(bounds, r2.Point{X: x, Y: y})
			trees = append(trees, Tree{X: p.X, Y: p.Y, Radius: radius})
		}
		clusters = append(clusters, &TreeCluster{Anchor: anchor, Trees: trees})
	}

	return clusters
}
