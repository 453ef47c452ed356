package stream

import (
	"encoding/json"
	"fmt"
)

// Message types on the wire. Every frame is a JSON object with a "type"
// discriminator.
const (
	TypeHello   = "hello"
	TypeState   = "state"
	TypeFrame   = "frame"
	TypeCommand = "command"
	TypeError   = "error"
)

// Hello greets a new client with the world composition.
type Hello struct {
	Type     string   `json:"type"`
	World    string   `json:"world"`
	Objects  []string `json:"objects"`
	Robots   []string `json:"robots"`
	Timestep float64  `json:"timestep"`
}

// BodyState is one body in a state frame.
type BodyState struct {
	Name       string     `json:"name"`
	Position   [3]float64 `json:"position"`
	Euler      [3]float64 `json:"euler"`
	Positions  []float64  `json:"positions"`
	Velocities []float64  `json:"velocities"`
}

// State is the periodic world snapshot pushed to every client.
type State struct {
	Type   string      `json:"type"`
	Step   uint64      `json:"step"`
	Time   float64     `json:"time"`
	Bodies []BodyState `json:"bodies"`
}

// Frame is a coordinate-frame overlay drawn by a planner or controller,
// forwarded to clients as-is.
type Frame struct {
	Type     string     `json:"type"`
	Position [3]float64 `json:"position"`
	Euler    [3]float64 `json:"euler"`
	Length   float64    `json:"length"`
	Width    float64    `json:"width"`
}

// Command carries a teleoperation acceleration vector for one robot.
type Command struct {
	Type    string    `json:"type"`
	Robot   string    `json:"robot"`
	Control []float64 `json:"control"`
}

// Error reports a rejected client message.
type Error struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

// ParseCommand decodes an inbound frame, accepting only commands.
func ParseCommand(data []byte) (*Command, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("stream: malformed frame: %w", err)
	}
	if probe.Type != TypeCommand {
		return nil, fmt.Errorf("stream: unexpected message type %q", probe.Type)
	}
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return nil, fmt.Errorf("stream: malformed command: %w", err)
	}
	if cmd.Robot == "" {
		return nil, fmt.Errorf("stream: command without a robot name")
	}
	return &cmd, nil
}
