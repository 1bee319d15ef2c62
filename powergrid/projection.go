package powergrid

import (
	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
)

var (
	// DefaultBounds is the area of grid space drawn over the canvas.
	// The backend lays grids out roughly within x -60..80, y -40..160.
	DefaultBounds = r2.Rect{
		X: r1.Interval{Lo: -60, Hi: 80},
		Y: r1.Interval{Lo: -40, Hi: 160},
	}

	unit = r1.Interval{Lo: 0, Hi: 1}
)

// Project maps a grid position into a square canvas of the given size.
// Positions outside of bounds are pinned to the canvas edge & a nil
// position lands in the middle of the canvas.
func Project(bounds r2.Rect, p *Position, size float64) r2.Point {
	if p == nil {
		return r2.Point{X: size / 2, Y: size / 2}
	}
	pctX := unit.ClampPoint((p.X - bounds.X.Lo) / bounds.X.Length())
	pctY := unit.ClampPoint((p.Y - bounds.Y.Lo) / bounds.Y.Length())
	return r2.Point{X: pctX * size, Y: pctY * size}
}
