package powergrid

import (
	"encoding/json"
	"testing"
)

const sampleSnapshot = `{
  "id": "3f2b9c0e-aaaa-bbbb-cccc-0123456789ab",
  "nodes": {
    "b": {"id": "b", "position": {"x": 1, "y": 2}, "kind": "house", "status": "online", "props": {"base_kw": 2, "cos_phi": 0.9, "profile": "bakery"}},
    "a": {"id": "a", "position": {"x": 0, "y": 0}, "kind": "plant", "status": "online"},
    "c": {"id": "c", "kind": "house", "status": "open"}
  },
  "lines": {
    "l2": {"id": "l2", "from_id": "a", "to_id": "c", "status": "open"},
    "l1": {"id": "l1", "from_id": "a", "to_id": "b", "status": "online"},
    "l3": {"id": "l3", "from_id": "a", "to_id": "zzz", "status": "faulted"}
  },
  "meta": {"sim_time": 12, "hour": 6.5, "seed": 42}
}`

func TestSnapshot(t *testing.T) {
	snap := &Snapshot{}
	if err := json.Unmarshal([]byte(sampleSnapshot), snap); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if snap.Meta.SimTime != 12 || snap.Meta.Seed == nil || *snap.Meta.Seed != 42 {
		t.Errorf("unexpected meta %+v", snap.Meta)
	}

	consumers := snap.Consumers()
	if len(consumers) != 2 || consumers[0].ID != "b" || consumers[1].ID != "c" {
		t.Fatalf("unexpected consumers %v", consumers)
	}
	b, c := consumers[0], consumers[1]
	if b.BaseKW() != 2 || b.CosPhi() != 0.9 || b.Profile() != "bakery" {
		t.Errorf("unexpected props for b: %v %v %v", b.BaseKW(), b.CosPhi(), b.Profile())
	}
	if c.BaseKW() != 1.5 || c.CosPhi() != 0.95 || c.Profile() != "house" {
		t.Errorf("expected defaults for c got %v %v %v", c.BaseKW(), c.CosPhi(), c.Profile())
	}
	if c.Position != nil {
		t.Errorf("expected no position for c")
	}

	lines := snap.SortedLines()
	if len(lines) != 3 || lines[0].ID != "l1" || lines[2].ID != "l3" {
		t.Fatalf("unexpected line order %v", lines)
	}
	if _, _, ok := snap.Endpoints(lines[0]); !ok {
		t.Error("expected both ends of l1")
	}
	if _, _, ok := snap.Endpoints(lines[2]); ok {
		t.Error("l3 has a missing end")
	}

	nodes := snap.SortedNodes()
	if len(nodes) != 3 || nodes[0].ID != "a" {
		t.Errorf("unexpected node order %v", nodes)
	}
}

func TestShortID(t *testing.T) {
	cases := map[string]string{
		"":                                     "",
		"abc":                                  "abc",
		"3f2b9c0e-aaaa-bbbb-cccc-0123456789ab": "6789ab",
	}
	for in, want := range cases {
		if got := ShortID(in); got != want {
			t.Errorf("%q: expected %q got %q", in, want, got)
		}
	}
}
