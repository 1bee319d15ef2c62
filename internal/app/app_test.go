package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/voidshard/villagegraph/powergrid"
)

func TestRunWritesFiles(t *testing.T) {
	dir := t.TempDir()
	out := &bytes.Buffer{}

	err := Run(context.Background(), Config{Seed: "42", OutDir: dir, Raster: true}, out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, name := range []string{"village-42.png", "village-42.json", "village-42-raster.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
	if !strings.Contains(out.String(), "Elean Isle") || !strings.Contains(out.String(), "47 houses") {
		t.Errorf("unexpected status output %q", out.String())
	}
}

func TestRunBadOutDir(t *testing.T) {
	// a file where the directory should be
	fpath := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(fpath, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Run(context.Background(), Config{Seed: "1", OutDir: fpath}, nil); err == nil {
		t.Fatal("expected an error writing into a file")
	}
}

func TestRunBackendDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	dir := t.TempDir()
	out := &bytes.Buffer{}
	err := Run(context.Background(), Config{Seed: "7", OutDir: dir, Grid: true, Backend: url, Ticks: 2}, out)
	if err != nil {
		t.Fatalf("backend problems should not fail the run: %v", err)
	}
	if !strings.Contains(out.String(), "create failed") {
		t.Errorf("expected a create failed status got %q", out.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "village-7.png")); err != nil {
		t.Errorf("expected the village to be written anyway: %v", err)
	}
}

func TestRunWithGrid(t *testing.T) {
	var paths []string
	var createBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		body := map[string]any{}
		json.NewDecoder(r.Body).Decode(&body)
		if r.URL.Path == "/v1/power-grid/grids" {
			createBody = body
		}

		simTime := 0.0
		if tm, ok := body["time"].(float64); ok {
			simTime = tm
		}
		json.NewEncoder(w).Encode(&powergrid.Snapshot{
			ID: "grid-0123456789",
			Nodes: map[string]*powergrid.Node{
				"plant": {ID: "plant", Kind: powergrid.KindPlant, Status: powergrid.StatusOnline, Position: &powergrid.Position{}},
				"home":  {ID: "home", Kind: powergrid.KindHouse, Status: powergrid.StatusOnline, Position: &powergrid.Position{X: 20, Y: 40}},
			},
			Lines: map[string]*powergrid.Line{
				"l1": {ID: "l1", FromID: "plant", ToID: "home", Status: powergrid.StatusOnline},
			},
			Meta: powergrid.Meta{SimTime: simTime},
		})
	}))
	defer srv.Close()

	out := &bytes.Buffer{}
	cfg := Config{Seed: "42", OutDir: t.TempDir(), Grid: true, Backend: srv.URL, Ticks: 2, Fault: true, Verbose: true}
	if err := Run(context.Background(), cfg, out); err != nil {
		t.Fatalf("run: %v", err)
	}

	want := []string{
		"POST /v1/power-grid/grids",
		"POST /v1/power-grid/grids/grid-0123456789/simulate",
		"POST /v1/power-grid/grids/grid-0123456789/simulate",
		"POST /v1/power-grid/grids/grid-0123456789/command",
	}
	if strings.Join(paths, "\n") != strings.Join(want, "\n") {
		t.Errorf("expected requests\n%v\ngot\n%v", want, paths)
	}
	if createBody["seed"] != 42.0 {
		t.Errorf("expected the seed to be passed to the backend, got %v", createBody)
	}

	for _, s := range []string{"grid 456789 ready", "t=1", "t=2", "fault injected", "consumer home house 1.50kW", "line l1 plant→home online"} {
		if !strings.Contains(out.String(), s) {
			t.Errorf("expected %q in output %q", s, out.String())
		}
	}
}

func TestRunWithGridNonIntegerSeed(t *testing.T) {
	var createBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		createBody = map[string]any{}
		json.NewDecoder(r.Body).Decode(&createBody)
		json.NewEncoder(w).Encode(&powergrid.Snapshot{ID: "g"})
	}))
	defer srv.Close()

	cfg := Config{Seed: "12.5", OutDir: t.TempDir(), Grid: true, Backend: srv.URL}
	if err := Run(context.Background(), cfg, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, ok := createBody["seed"]; ok {
		t.Errorf("only integer seeds go to the backend, got %v", createBody)
	}
}
