package villagegraph

import (
	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

const (
	// DefaultSize is the width & height of the (square) canvas
	DefaultSize = 900.0

	// minSize is the smallest canvas where the fixed margins used by the
	// generators (20, 30, 40 units from the edges) still leave room
	minSize = 200.0
)

var (
	// ErrInvalidConfig implies the Config cannot produce a sane village
	ErrInvalidConfig = errors.New("invalid village config")

	defaultNames = []string{"Popytree", "Wrenfield", "Oakhurst", "Elean Isle", "Briarwell"}
	defaultBody  = []string{"#d79b6f", "#c97f5a", "#b86c4c", "#cfa781"}
	defaultRoof  = []string{"#50332b", "#644237", "#3c2215"}
)

// Config holds configuration for a given village.
// Everything other than the Seed is optional; zero values are replaced
// with the defaults returned by DefaultConfig. Note that changing anything
// other than the Seed changes every village produced (the draw order is
// the same but the values drawn are scaled differently).
type Config struct {
	// Seed for the random stream
	Seed uint32

	// Size of the square canvas the village is laid out on.
	// All relative distances (road lengths, field radii etc) scale with this.
	Size float64

	// Names that the village can be called, one is chosen at random
	Names []string

	// BodyColours of houses as hex strings, one is chosen per house
	BodyColours []string

	// RoofColours of houses as hex strings, one is chosen per house
	RoofColours []string
}

// DefaultConfig returns the configuration used by Generate.
func DefaultConfig(seed uint32) *Config {
	return &Config{
		Seed:        seed,
		Size:        DefaultSize,
		Names:       append([]string{}, defaultNames...),
		BodyColours: append([]string{}, defaultBody...),
		RoofColours: append([]string{}, defaultRoof...),
	}
}

// withDefaults returns a copy of c where unset fields are filled in
func (c *Config) withDefaults() *Config {
	out := DefaultConfig(c.Seed)
	if c.Size != 0 {
		out.Size = c.Size
	}
	if c.Names != nil {
		out.Names = c.Names
	}
	if c.BodyColours != nil {
		out.BodyColours = c.BodyColours
	}
	if c.RoofColours != nil {
		out.RoofColours = c.RoofColours
	}
	return out
}

// validate returns an error if the config would produce garbage
func (c *Config) validate() error {
	if c.Size < minSize {
		return errors.Wrapf(ErrInvalidConfig, "size %v is less than %v", c.Size, minSize)
	}
	if len(c.Names) == 0 {
		return errors.Wrap(ErrInvalidConfig, "at least one name is required")
	}
	if len(c.BodyColours) == 0 || len(c.RoofColours) == 0 {
		return errors.Wrap(ErrInvalidConfig, "house palettes must not be empty")
	}
	return nil
}

// layout holds measurements derived from a config that generators share
type layout struct {
	size   float64
	centre Point
}

func newLayout(size float64) *layout {
	return &layout{size: size, centre: Pt(size*0.56, size*0.45)}
}

// inset returns the canvas shrunk by the given margins (left & top,
// right & bottom). Generators clamp points into these.
func (l *layout) inset(lo, hiX, hiY float64) r2.Rect {
	return r2.Rect{
		X: r1.Interval{Lo: lo, Hi: l.size - hiX},
		Y: r1.Interval{Lo: lo, Hi: l.size - hiY},
	}
}

// clampInto clamps p to rect r
func clampInto(r r2.Rect, p r2.Point) Point {
	return fromVec(r.ClampPoint(p))
}
