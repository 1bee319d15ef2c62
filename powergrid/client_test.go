package powergrid

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
)

// request is what the fake backend saw
type request struct {
	Method string
	Path   string
	Body   map[string]any
}

// fakeBackend records requests & answers each with a snapshot whose
// sim_time is one more than the last
func fakeBackend(t *testing.T, seen *[]request) *httptest.Server {
	t.Helper()
	simTime := 0.0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := request{Method: r.Method, Path: r.URL.Path}
		data, _ := io.ReadAll(r.Body)
		if len(data) > 0 {
			if err := json.Unmarshal(data, &req.Body); err != nil {
				t.Errorf("bad request body %q: %v", data, err)
			}
		}
		*seen = append(*seen, req)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(&Snapshot{
			ID:    "grid-1",
			Nodes: map[string]*Node{"n1": {ID: "n1", Kind: KindHouse, Status: StatusOnline}},
			Lines: map[string]*Line{},
			Meta:  Meta{SimTime: simTime},
		})
		simTime++
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientRequests(t *testing.T) {
	seen := []request{}
	srv := fakeBackend(t, &seen)
	c := NewClient(srv.URL + "/")
	ctx := context.Background()

	seed := int64(42)
	snap, err := c.CreateGrid(ctx, CreateRequest{Seed: &seed})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if snap.ID != "grid-1" || len(snap.Nodes) != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if _, err := c.Grid(ctx, "grid-1"); err != nil {
		t.Fatalf("get: %v", err)
	}
	snap.Meta.SimTime = 4
	if _, err := c.Step(ctx, snap); err != nil {
		t.Fatalf("step: %v", err)
	}
	if _, err := c.Command(ctx, "grid-1", TriggerFault("")); err != nil {
		t.Fatalf("command: %v", err)
	}
	if _, err := c.Command(ctx, "grid-1", SetLineStatus("l1", StatusOpen)); err != nil {
		t.Fatalf("command: %v", err)
	}

	expect := []struct {
		Method string
		Path   string
	}{
		{http.MethodPost, "/v1/power-grid/grids"},
		{http.MethodGet, "/v1/power-grid/grids/grid-1"},
		{http.MethodPost, "/v1/power-grid/grids/grid-1/simulate"},
		{http.MethodPost, "/v1/power-grid/grids/grid-1/command"},
		{http.MethodPost, "/v1/power-grid/grids/grid-1/command"},
	}
	if len(seen) != len(expect) {
		t.Fatalf("expected %d requests got %d", len(expect), len(seen))
	}
	for i, e := range expect {
		if seen[i].Method != e.Method || seen[i].Path != e.Path {
			t.Errorf("request %d: expected %s %s got %s %s", i, e.Method, e.Path, seen[i].Method, seen[i].Path)
		}
	}

	if seen[0].Body["seed"] != 42.0 {
		t.Errorf("expected seed 42 in create body got %v", seen[0].Body)
	}
	if seen[1].Body != nil {
		t.Errorf("expected no body on get, got %v", seen[1].Body)
	}
	if seen[2].Body["time"] != 5.0 {
		t.Errorf("expected time 5 got %v", seen[2].Body)
	}
	if seen[3].Body["action"] != ActionTriggerFault {
		t.Errorf("expected trigger_fault got %v", seen[3].Body)
	}
	if _, ok := seen[3].Body["payload"]; ok {
		t.Errorf("expected no payload for a random fault got %v", seen[3].Body)
	}
	payload, _ := seen[4].Body["payload"].(map[string]any)
	if seen[4].Body["action"] != ActionSetLineStatus || payload["line_id"] != "l1" || payload["status"] != "open" {
		t.Errorf("unexpected set_line_status body %v", seen[4].Body)
	}
}

func TestClientCreateWithoutSeed(t *testing.T) {
	seen := []request{}
	srv := fakeBackend(t, &seen)

	if _, err := NewClient(srv.URL).CreateGrid(context.Background(), CreateRequest{}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(seen[0].Body) != 0 {
		t.Errorf("expected an empty body got %v", seen[0].Body)
	}
}

func TestClientInvalidCommandNotSent(t *testing.T) {
	seen := []request{}
	srv := fakeBackend(t, &seen)

	_, err := NewClient(srv.URL).Command(context.Background(), "grid-1", Command{Action: "explode"})
	if errors.Cause(err) != ErrInvalidCommand {
		t.Fatalf("expected ErrInvalidCommand got %v", err)
	}
	if len(seen) != 0 {
		t.Errorf("invalid command reached the backend")
	}
}

func TestClientAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Grid not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Grid(context.Background(), "nope")
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError got %T %v", err, err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Body != `{"detail":"Grid not found"}` {
		t.Errorf("unexpected error %+v", apiErr)
	}
	if apiErr.Error() != `API 404: {"detail":"Grid not found"}` {
		t.Errorf("unexpected message %q", apiErr.Error())
	}
}

func TestClientBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).Grid(context.Background(), "g"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestClientStepNil(t *testing.T) {
	if _, err := NewClient("").Step(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil snapshot")
	}
}

func TestNormalizeURL(t *testing.T) {
	cases := map[string]string{
		"":                         "http://localhost:8000",
		"   ":                      "http://localhost:8000",
		"localhost:9000":           "http://localhost:9000",
		" grid.example.com/ ":      "http://grid.example.com",
		"https://grid.example.com": "https://grid.example.com",
		"http://10.0.0.1:8000/":    "http://10.0.0.1:8000",
	}
	for in, want := range cases {
		if got := NormalizeURL(in); got != want {
			t.Errorf("%q: expected %q got %q", in, want, got)
		}
	}
}

func TestStreamURL(t *testing.T) {
	cases := []struct {
		Base   string
		Expect string
	}{
		{"http://localhost:8000", "ws://localhost:8000/v1/power-grid/grids/g1/ws"},
		{"https://grid.example.com/", "wss://grid.example.com/v1/power-grid/grids/g1/ws"},
		{"grid.example.com", "ws://grid.example.com/v1/power-grid/grids/g1/ws"},
	}
	for _, tt := range cases {
		got, err := NewClient(tt.Base).StreamURL("g1")
		if err != nil {
			t.Fatalf("%s: %v", tt.Base, err)
		}
		if got != tt.Expect {
			t.Errorf("%s: expected %s got %s", tt.Base, tt.Expect, got)
		}
	}
}
