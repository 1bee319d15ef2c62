// Package app drives the villagemap example: it builds a village from a
// seed, optionally drives a power grid on the backend & writes the results
// to disk.
package app

import (
	"flag"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// Config for a single run. Environment variables set the defaults & flags
// override them.
type Config struct {
	// Seed for the village. Integers are used as is (wrapped to 32 bits),
	// decimals are truncated, anything else means "use the time".
	Seed string `env:"VILLAGE_SEED"`

	// OutDir is where images & json are written
	OutDir string `env:"VILLAGE_OUT_DIR" envDefault:"."`

	// Raster also writes the per pixel layer map
	Raster bool `env:"VILLAGE_RASTER" envDefault:"false"`

	// Backend is the power grid service url
	Backend string `env:"VILLAGE_BACKEND_URL" envDefault:"http://localhost:8000"`

	// Grid turns on the power grid overlay
	Grid bool `env:"VILLAGE_GRID" envDefault:"false"`

	// GridID loads an existing grid rather than creating one
	GridID string `env:"VILLAGE_GRID_ID"`

	// Ticks is how many simulation steps to run
	Ticks int `env:"VILLAGE_TICKS" envDefault:"0"`

	// Fault injects a fault on a random line after the ticks
	Fault bool `env:"VILLAGE_FAULT" envDefault:"false"`

	// Stream follows the grid websocket for this long
	Stream time.Duration `env:"VILLAGE_STREAM" envDefault:"0s"`

	// Verbose lists consumers & lines of the final grid
	Verbose bool `env:"VILLAGE_VERBOSE" envDefault:"false"`
}

// ParseConfig loads env defaults then parses flags over them
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse env")
	}

	fs.StringVar(&cfg.Seed, "seed", cfg.Seed, "village seed (integer, empty = current time)")
	fs.StringVar(&cfg.OutDir, "out", cfg.OutDir, "output directory")
	fs.BoolVar(&cfg.Raster, "raster", cfg.Raster, "also write the layer raster")
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "power grid backend url")
	fs.BoolVar(&cfg.Grid, "grid", cfg.Grid, "create (or load) a power grid & draw it")
	fs.StringVar(&cfg.GridID, "grid-id", cfg.GridID, "existing grid id to load")
	fs.IntVar(&cfg.Ticks, "ticks", cfg.Ticks, "simulation steps to run")
	fs.BoolVar(&cfg.Fault, "fault", cfg.Fault, "trigger a fault on a random line")
	fs.DurationVar(&cfg.Stream, "stream", cfg.Stream, "follow the grid websocket for this long")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "list consumers & lines")
	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Ticks < 0 {
		return Config{}, errors.Errorf("ticks must be >= 0, got %d", cfg.Ticks)
	}
	if cfg.Stream < 0 {
		return Config{}, errors.Errorf("stream must be >= 0, got %s", cfg.Stream)
	}
	return cfg, nil
}

// ParseSeed turns user input into a generator seed. Whole numbers wrap to
// 32 bits (so -1 is 4294967295), anything with a leading number is cut down
// to it ("12.7" and "12abc" are both 12) and everything else falls back
// to now in milliseconds.
func ParseSeed(s string, now func() time.Time) uint32 {
	if v, ok := leadingInt(s); ok {
		return v
	}
	return toUint32(float64(now().UnixMilli()))
}

// integerSeed reports if s is exactly an integer, in which case it is also
// handed to the backend when creating a grid
func integerSeed(s string) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// leadingInt parses the optionally signed run of digits at the front of s
func leadingInt(s string) (uint32, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}

	if v, err := strconv.ParseInt(s[:end], 10, 64); err == nil {
		return uint32(v), true
	}
	// too big for int64, go via float like everything else would
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return toUint32(f), true
}

// toUint32 truncates f & wraps it modulo 2^32
func toUint32(f float64) uint32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	m := math.Mod(math.Trunc(f), 1<<32)
	if m < 0 {
		m += 1 << 32
	}
	return uint32(m)
}
