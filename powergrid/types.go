// Package powergrid is a thin client for the power grid simulation backend.
//
// The backend owns the grid (creation, power flow, faults); this package
// only knows the wire shapes it speaks over HTTP & WebSocket so a grid can
// be created, poked with commands & drawn over a village.
package powergrid

import (
	"sort"
)

// Kind of a node as reported by the backend
type Kind string

const (
	KindPlant       Kind = "plant" // power source
	KindTransformer Kind = "tp"    // transformer point
	KindPole        Kind = "pole"  // hv or lv pole
	KindHouse       Kind = "house" // consumer
)

// Status of a node or line
type Status string

const (
	StatusOnline  Status = "online"
	StatusOpen    Status = "open"
	StatusFaulted Status = "faulted"
)

const (
	// defaults the backend uses for consumers missing these props
	defaultBaseKW = 1.5
	defaultCosPhi = 0.95
)

// Position of a node in grid space (metres-ish, not canvas units)
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a plant, transformer, pole or consumer
type Node struct {
	ID       string         `json:"id"`
	Position *Position      `json:"position,omitempty"`
	Kind     Kind           `json:"kind"`
	Status   Status         `json:"status"`
	Props    map[string]any `json:"props,omitempty"`
	State    map[string]any `json:"state,omitempty"`
}

// Line connects two nodes
type Line struct {
	ID     string         `json:"id"`
	FromID string         `json:"from_id"`
	ToID   string         `json:"to_id"`
	Status Status         `json:"status"`
	Props  map[string]any `json:"props,omitempty"`
	State  map[string]any `json:"state,omitempty"`
}

// Meta is simulation bookkeeping attached to a grid
type Meta struct {
	SimTime float64  `json:"sim_time"`
	Hour    float64  `json:"hour,omitempty"`
	Seed    *int64   `json:"seed,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// Snapshot is the backend's full description of a grid at a point in time
type Snapshot struct {
	ID    string           `json:"id"`
	Nodes map[string]*Node `json:"nodes"`
	Lines map[string]*Line `json:"lines"`
	Meta  Meta             `json:"meta"`
}

// Consumers returns all house nodes ordered by id
func (s *Snapshot) Consumers() []*Node {
	out := []*Node{}
	for _, n := range s.Nodes {
		if n.Kind == KindHouse {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out
}

// SortedLines returns all lines ordered by id
func (s *Snapshot) SortedLines() []*Line {
	out := make([]*Line, 0, len(s.Lines))
	for _, l := range s.Lines {
		out = append(out, l)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out
}

// SortedNodes returns all nodes ordered by id
func (s *Snapshot) SortedNodes() []*Node {
	out := make([]*Node, 0, len(s.Nodes))
	for _, n := range s.Nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out
}

// Endpoints returns the nodes at either end of l, ok is false if either
// is missing from the snapshot.
func (s *Snapshot) Endpoints(l *Line) (from, to *Node, ok bool) {
	from, fok := s.Nodes[l.FromID]
	to, tok := s.Nodes[l.ToID]
	return from, to, fok && tok && from != nil && to != nil
}

// prop returns a numeric prop or def if unset / not a number
func (n *Node) prop(key string, def float64) float64 {
	v, ok := n.Props[key]
	if !ok {
		return def
	}
	switch f := v.(type) {
	case float64:
		return f
	case int:
		return float64(f)
	case int64:
		return float64(f)
	}
	return def
}

// BaseKW is a consumer's base load
func (n *Node) BaseKW() float64 {
	return n.prop("base_kw", defaultBaseKW)
}

// CosPhi is a consumer's power factor
func (n *Node) CosPhi() float64 {
	return n.prop("cos_phi", defaultCosPhi)
}

// Profile is a consumer's load profile name ("house" if unset)
func (n *Node) Profile() string {
	if p, ok := n.Props["profile"].(string); ok && p != "" {
		return p
	}
	return string(KindHouse)
}

// ShortID returns the last six characters of an id, enough to tell
// uuid-ish ids apart in a status line
func ShortID(id string) string {
	if len(id) <= 6 {
		return id
	}
	return id[len(id)-6:]
}
