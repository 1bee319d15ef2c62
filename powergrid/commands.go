package powergrid

import (
	"github.com/pkg/errors"
	"github.com/zyedidia/generic/mapset"
)

// Action names understood by the backend's command endpoint
const (
	ActionSetLineStatus   = "set_line_status"
	ActionTriggerFault    = "trigger_fault"
	ActionClearFaults     = "clear_faults"
	ActionAddNode         = "add_node"
	ActionAddLine         = "add_line"
	ActionSetNodePosition = "set_node_position"
	ActionUpdateNodeProps = "update_node_props"
)

var (
	// ErrInvalidCommand is returned for commands the backend would reject
	ErrInvalidCommand = errors.New("invalid command")

	knownActions  = setOf(ActionSetLineStatus, ActionTriggerFault, ActionClearFaults, ActionAddNode, ActionAddLine, ActionSetNodePosition, ActionUpdateNodeProps)
	knownStatuses = setOf(StatusOnline, StatusOpen, StatusFaulted)
	nodeTypes     = setOf("source", "transformer", "pole", "consumer", "house")
)

func setOf[K comparable](vals ...K) mapset.Set[K] {
	s := mapset.New[K]()
	for _, v := range vals {
		s.Put(v)
	}
	return s
}

// Command is sent to the backend, over HTTP or the websocket
type Command struct {
	Action  string         `json:"action"`
	Payload map[string]any `json:"payload,omitempty"`
}

// SetLineStatus opens, closes (online) or faults a line
func SetLineStatus(lineID string, status Status) Command {
	return Command{Action: ActionSetLineStatus, Payload: map[string]any{"line_id": lineID, "status": string(status)}}
}

// TriggerFault faults the given line, or a random online line if lineID is empty
func TriggerFault(lineID string) Command {
	cmd := Command{Action: ActionTriggerFault}
	if lineID != "" {
		cmd.Payload = map[string]any{"line_id": lineID}
	}
	return cmd
}

// ClearFaults brings every faulted line back online
func ClearFaults() Command {
	return Command{Action: ActionClearFaults}
}

// AddNode adds a node of the given type ("source", "transformer", "pole",
// "consumer" or "house") at pos
func AddNode(nodeType string, pos Position, props map[string]any) Command {
	if props == nil {
		props = map[string]any{}
	}
	return Command{Action: ActionAddNode, Payload: map[string]any{
		"type":     nodeType,
		"position": map[string]any{"x": pos.X, "y": pos.Y},
		"props":    props,
	}}
}

// AddLine connects two existing nodes
func AddLine(fromID, toID string, props map[string]any) Command {
	if props == nil {
		props = map[string]any{}
	}
	return Command{Action: ActionAddLine, Payload: map[string]any{"from_id": fromID, "to_id": toID, "props": props}}
}

// SetNodePosition moves a node
func SetNodePosition(nodeID string, pos Position) Command {
	return Command{Action: ActionSetNodePosition, Payload: map[string]any{
		"node_id":  nodeID,
		"position": map[string]any{"x": pos.X, "y": pos.Y},
	}}
}

// UpdateNodeProps merges props into a node's props
func UpdateNodeProps(nodeID string, props map[string]any) Command {
	return Command{Action: ActionUpdateNodeProps, Payload: map[string]any{"node_id": nodeID, "props": props}}
}

// UpdateConsumer sets the base load & power factor of a consumer
func UpdateConsumer(nodeID string, baseKW, cosPhi float64) Command {
	return UpdateNodeProps(nodeID, map[string]any{"base_kw": baseKW, "cos_phi": cosPhi})
}

// Validate returns an error wrapping ErrInvalidCommand for commands the
// backend would answer with a 400. The messages match the backend's.
func (c Command) Validate() error {
	if !knownActions.Has(c.Action) {
		return errors.Wrapf(ErrInvalidCommand, "Unknown action: %s", c.Action)
	}

	switch c.Action {
	case ActionSetLineStatus:
		status := c.str("status")
		if c.str("line_id") == "" || status == "" {
			return errors.Wrap(ErrInvalidCommand, "line_id and status are required for set_line_status")
		}
		if !knownStatuses.Has(Status(status)) {
			return errors.Wrapf(ErrInvalidCommand, "unknown line status %q", status)
		}
	case ActionAddNode:
		nodeType := c.str("type")
		if nodeType == "" {
			return errors.Wrap(ErrInvalidCommand, "type is required for add_node")
		}
		if !nodeTypes.Has(nodeType) {
			return errors.Wrapf(ErrInvalidCommand, "unknown node type %q", nodeType)
		}
		if !c.hasXY("position") {
			return errors.Wrap(ErrInvalidCommand, "position.x and position.y are required for add_node")
		}
	case ActionAddLine:
		if c.str("from_id") == "" || c.str("to_id") == "" {
			return errors.Wrap(ErrInvalidCommand, "from_id and to_id are required for add_line")
		}
	case ActionSetNodePosition:
		if c.str("node_id") == "" || !c.hasXY("position") {
			return errors.Wrap(ErrInvalidCommand, "node_id and position dict required")
		}
	case ActionUpdateNodeProps:
		if _, ok := c.Payload["props"].(map[string]any); c.str("node_id") == "" || !ok {
			return errors.Wrap(ErrInvalidCommand, "node_id and props dict required")
		}
	}
	return nil
}

// str returns a string payload value or ""
func (c Command) str(key string) string {
	s, _ := c.Payload[key].(string)
	return s
}

// hasXY returns if payload[key] is a dict holding both x and y
func (c Command) hasXY(key string) bool {
	pos, ok := c.Payload[key].(map[string]any)
	if !ok {
		return false
	}
	_, x := pos["x"]
	_, y := pos["y"]
	return x && y
}
