// Package line walks the integer pixels between two points.
package line

import (
	"image"
	"math"
)

// Walk calls fn for every pixel on the line a->b (both ends included),
// in order starting at a. Walking stops early if fn returns false.
// This is the usual all-octant Bresenham with a single error term.
func Walk(a, b image.Point, fn func(p image.Point) bool) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}

	err := dx + dy
	x, y := a.X, a.Y
	for {
		if !fn(image.Pt(x, y)) {
			return
		}
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// PointsBetween returns all points on a line between a,b
func PointsBetween(a, b image.Point) []image.Point {
	pts := []image.Point{}
	Walk(a, b, func(p image.Point) bool {
		pts = append(pts, p)
		return true
	})
	return pts
}

// Round snaps float co-ords to the nearest pixel
func Round(x, y float64) image.Point {
	return image.Pt(int(math.Round(x)), int(math.Round(y)))
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
