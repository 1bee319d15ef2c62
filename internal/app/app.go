package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/voidshard/villagegraph"
	"github.com/voidshard/villagegraph/powergrid"

	"github.com/gookit/color"
	"github.com/pkg/errors"
)

var (
	colorOK     = color.Style{color.FgGreen}
	colorInfo   = color.Style{color.FgCyan}
	colorSubtle = color.Style{color.FgGray}
	colorFailed = color.Style{color.FgRed, color.OpBold}
)

// Run builds the village described by cfg & writes it out. Problems
// talking to the grid backend are reported on out & otherwise ignored, only
// failing to write our own files is an error.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}

	seed := ParseSeed(cfg.Seed, time.Now)
	v := villagegraph.Generate(seed)
	status(out, colorOK, "%s (seed %d): %d houses, pop. %d", v.Info.Name, seed, len(v.Houses), v.Info.Population)
	status(out, colorSubtle, "roads %d major / %d minor, %d trees",
		v.Stats.RoadsByType[villagegraph.Major], v.Stats.RoadsByType[villagegraph.Minor], v.Stats.Trees)

	var snap *powergrid.Snapshot
	if cfg.Grid {
		snap = runGrid(ctx, cfg, out)
	}

	if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
		return errors.Wrapf(err, "creating %s", cfg.OutDir)
	}
	base := filepath.Join(cfg.OutDir, fmt.Sprintf("village-%d", seed))

	if err := villagegraph.SavePNG(base+".png", v, snap, villagegraph.DefaultScheme()); err != nil {
		return err
	}
	if err := v.SaveJSON(base + ".json"); err != nil {
		return err
	}
	if cfg.Raster {
		if err := v.Map().Save(base + "-raster.png"); err != nil {
			return err
		}
	}

	status(out, colorInfo, "wrote %s.png", base)
	return nil
}

// runGrid creates or loads a grid & pushes it through the configured
// ticks, fault & stream. It returns the newest snapshot it saw, which may
// be nil if the backend could not be reached.
func runGrid(ctx context.Context, cfg Config, out io.Writer) *powergrid.Snapshot {
	client := powergrid.NewClient(cfg.Backend)

	var (
		snap *powergrid.Snapshot
		err  error
	)
	if cfg.GridID != "" {
		status(out, colorSubtle, "loading grid %s…", cfg.GridID)
		snap, err = client.Grid(ctx, cfg.GridID)
	} else {
		status(out, colorSubtle, "creating grid…")
		req := powergrid.CreateRequest{}
		if s, ok := integerSeed(cfg.Seed); ok {
			req.Seed = &s
		}
		snap, err = client.CreateGrid(ctx, req)
	}
	if err != nil {
		failed(out, "create failed", err)
		return nil
	}
	status(out, colorOK, "grid %s ready (%d nodes, %d lines)", powergrid.ShortID(snap.ID), len(snap.Nodes), len(snap.Lines))

	for i := 0; i < cfg.Ticks; i++ {
		next, err := client.Step(ctx, snap)
		if err != nil {
			failed(out, "simulate failed", err)
			break
		}
		snap = next
		status(out, colorSubtle, "simulation updated (t=%g)", snap.Meta.SimTime)
	}

	if cfg.Fault {
		next, err := client.Command(ctx, snap.ID, powergrid.TriggerFault(""))
		if err != nil {
			failed(out, "fault failed", err)
		} else {
			snap = next
			status(out, colorOK, "fault injected")
		}
	}

	if cfg.Stream > 0 {
		snap = follow(ctx, client, snap, cfg.Stream, out)
	}

	if cfg.Verbose {
		describe(out, snap)
	}
	return snap
}

// follow listens on the grid websocket for d, keeping the latest snapshot
func follow(ctx context.Context, client *powergrid.Client, snap *powergrid.Snapshot, d time.Duration, out io.Writer) *powergrid.Snapshot {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	st, err := client.Stream(ctx, snap.ID)
	if err != nil {
		failed(out, "WS unavailable", err)
		return snap
	}
	defer st.Close()
	status(out, colorSubtle, "WS connected")

	var mu sync.Mutex
	latest := snap
	err = st.Run(ctx, powergrid.Handlers{
		Snapshot: func(s *powergrid.Snapshot) {
			mu.Lock()
			latest = s
			mu.Unlock()
			status(out, colorSubtle, "tick t=%g", s.Meta.SimTime)
		},
		Ack: func(action string) {
			status(out, colorOK, "command %s ok", action)
		},
		Error: func(msg string) {
			status(out, colorFailed, "ws error: %s", msg)
		},
	})
	if err != nil {
		failed(out, "WS closed", err)
	} else {
		status(out, colorSubtle, "WS closed")
	}

	mu.Lock()
	defer mu.Unlock()
	return latest
}

// describe lists the consumers & lines of snap
func describe(out io.Writer, snap *powergrid.Snapshot) {
	for _, n := range snap.Consumers() {
		status(out, colorInfo, "consumer %s %s %.2fkW cosφ %.2f", powergrid.ShortID(n.ID), n.Profile(), n.BaseKW(), n.CosPhi())
	}
	for _, l := range snap.SortedLines() {
		status(out, colorInfo, "line %s %s→%s %s", powergrid.ShortID(l.ID), powergrid.ShortID(l.FromID), powergrid.ShortID(l.ToID), l.Status)
	}
}

func status(out io.Writer, style color.Style, format string, args ...interface{}) {
	fmt.Fprintln(out, style.Sprintf(format, args...))
}

// failed reports a backend problem as a status line & logs the detail
func failed(out io.Writer, what string, err error) {
	status(out, colorFailed, "%s", what)
	log.Printf("app: %s: %v", what, err)
}
