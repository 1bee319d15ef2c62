package villagegraph

import (
	"encoding/json"
	"math"
	"os"

	"github.com/pkg/errors"
)

// Village is the complete generated layout for one seed.
// A Village is never modified after it is built; to get a different
// village generate a new one.
type Village struct {
	Seed         uint32         `json:"seed"`
	Info         Info           `json:"info"`
	River        []Point        `json:"river"`
	Roads        []*Road        `json:"roads"`
	Houses       []*House       `json:"houses"`
	Fields       []*Field       `json:"fields"`
	TreeClusters []*TreeCluster `json:"treeClusters"`
	Stats        *Stats         `json:"stats,omitempty"`

	size   float64
	centre Point
}

// Generate builds the village for seed using DefaultConfig.
// Every seed produces a valid village.
func Generate(seed uint32) *Village {
	cfg := DefaultConfig(seed)
	return build(cfg, newLayout(cfg.Size))
}

// New builds a village with the given configuration. A nil config is the
// same as DefaultConfig(0). Errors are only returned for a config that
// cannot be laid out, never because of the seed.
func New(cfg *Config) (*Village, error) {
	if cfg == nil {
		cfg = DefaultConfig(0)
	}
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return build(cfg, newLayout(cfg.Size)), nil
}

// build runs the generators. The order here is important, each generator
// consumes draws from the shared stream so reordering them would change
// every village.
func build(cfg *Config, l *layout) *Village {
	rng := NewMulberry32(cfg.Seed)

	river := buildRiver(rng, l)
	roads := buildRoads(rng, l)
	houses := buildHouses(rng, l, roads, cfg.BodyColours, cfg.RoofColours)
	fields := buildFields(rng, l)
	clusters := buildTreeClusters(rng, l)
	name := cfg.Names[pick(rng, len(cfg.Names))]
	population := int(math.Floor(float64(len(houses)) * (1.6 + rng.Float64()*0.6)))

	stats := newStats()
	stats.collect(roads, houses, clusters)

	return &Village{
		Seed:         cfg.Seed,
		Info:         Info{Name: name, Population: population},
		River:        river,
		Roads:        roads,
		Houses:       houses,
		Fields:       fields,
		TreeClusters: clusters,
		Stats:        stats,
		size:         l.size,
		centre:       l.centre,
	}
}

// Size returns the width (and height) of the canvas the village sits on
func (v *Village) Size() float64 {
	return v.size
}

// Centre returns the middle of the village (where major roads start).
// Note this isn't the middle of the canvas.
func (v *Village) Centre() Point {
	return v.centre
}

// JSON returns the village as json.
func (v *Village) JSON() ([]byte, error) {
	return json.Marshal(v)
}

// SaveJSON writes a json file to the given path.
func (v *Village) SaveJSON(fpath string) error {
	data, err := v.JSON()
	if err != nil {
		return errors.Wrap(err, "encoding village")
	}
	return errors.Wrapf(os.WriteFile(fpath, data, 0644), "writing %s", fpath)
}
