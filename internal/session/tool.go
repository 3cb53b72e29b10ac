package session

import (
	"fmt"
	"strings"
)

// Tool is the shape type armed for placement.
type Tool int

const (
	ToolNone Tool = iota
	ToolCircle
	ToolTriangle
	ToolRectangle
)

func (t Tool) String() string {
	switch t {
	case ToolCircle:
		return "circle"
	case ToolTriangle:
		return "triangle"
	case ToolRectangle:
		return "rectangle"
	}
	return "none"
}

// Title is the capitalized name used in popups.
func (t Tool) Title() string {
	s := t.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// Arity is the number of clicks that commit a shape of this type.
func (t Tool) Arity() int {
	switch t {
	case ToolCircle:
		return 1
	case ToolTriangle:
		return 3
	case ToolRectangle:
		return 4
	}
	return 0
}

// IsPolygon reports whether the tool places vertices.
func (t Tool) IsPolygon() bool { return t == ToolTriangle || t == ToolRectangle }

// ParseTool accepts the names returned by String.
func ParseTool(s string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return ToolNone, nil
	case "circle":
		return ToolCircle, nil
	case "triangle":
		return ToolTriangle, nil
	case "rectangle":
		return ToolRectangle, nil
	}
	return ToolNone, fmt.Errorf("unknown tool %q", s)
}

// State is the controller state derived from the armed tool.
type State int

const (
	StateIdle State = iota
	StateAwaitingCircleInput
	StateAccumulatingPolygon
)

func (s State) String() string {
	switch s {
	case StateAwaitingCircleInput:
		return "awaiting circle input"
	case StateAccumulatingPolygon:
		return "accumulating polygon"
	}
	return "idle"
}
