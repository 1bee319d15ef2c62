package line

import (
	"image"
	"testing"
)

func TestPointsBetween(t *testing.T) {
	cases := []struct {
		name string
		a, b image.Point
		want int
	}{
		{"point", image.Pt(3, 3), image.Pt(3, 3), 1},
		{"horizontal", image.Pt(0, 0), image.Pt(9, 0), 10},
		{"vertical up", image.Pt(2, 9), image.Pt(2, 0), 10},
		{"diagonal", image.Pt(0, 0), image.Pt(5, 5), 6},
		{"steep backwards", image.Pt(4, 10), image.Pt(0, 0), 11},
		{"shallow", image.Pt(0, 0), image.Pt(10, 3), 11},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pts := PointsBetween(tc.a, tc.b)
			if len(pts) != tc.want {
				t.Fatalf("expected %d points, got %d: %v", tc.want, len(pts), pts)
			}
			if pts[0] != tc.a {
				t.Errorf("expected first point %v, got %v", tc.a, pts[0])
			}
			if pts[len(pts)-1] != tc.b {
				t.Errorf("expected last point %v, got %v", tc.b, pts[len(pts)-1])
			}
			for i := 1; i < len(pts); i++ {
				d := pts[i].Sub(pts[i-1])
				if abs(d.X) > 1 || abs(d.Y) > 1 || d == image.ZP {
					t.Fatalf("points %v -> %v are not adjacent", pts[i-1], pts[i])
				}
			}
		})
	}
}

func TestWalkStopsEarly(t *testing.T) {
	n := 0
	Walk(image.Pt(0, 0), image.Pt(100, 0), func(p image.Point) bool {
		n++
		return p.X < 4
	})
	if n != 5 {
		t.Fatalf("expected walk to stop after 5 points, got %d", n)
	}
}

func TestRound(t *testing.T) {
	if got := Round(1.49, 2.5); got != image.Pt(1, 3) {
		t.Fatalf("expected (1,3), got %v", got)
	}
}
