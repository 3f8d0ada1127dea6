package router

import "strings"

// Tool is a side-effecting action the model can ask for in its reply.
type Tool int

const (
	ToolNone Tool = iota
	ToolChart
	ToolCompatibility
)

// Identifiers the model is told to emit. A reply that contains one of
// these anywhere is treated as a tool call.
const (
	ChartToolID         = "tool_generate_bipolar_chart"
	CompatibilityToolID = "tool_calculate_compatibility"
)

// toolPriority is the order markers are checked in; a reply carrying both
// resolves to the first match.
var toolPriority = []Tool{ToolChart, ToolCompatibility}

func (t Tool) ID() string {
	switch t {
	case ToolChart:
		return ChartToolID
	case ToolCompatibility:
		return CompatibilityToolID
	default:
		return ""
	}
}

func (t Tool) String() string {
	switch t {
	case ToolChart:
		return "chart"
	case ToolCompatibility:
		return "compatibility"
	default:
		return "none"
	}
}

// Detect finds the tool marker in a model reply.
func Detect(reply string) Tool {
	for _, t := range toolPriority {
		if strings.Contains(reply, t.ID()) {
			return t
		}
	}
	return ToolNone
}
