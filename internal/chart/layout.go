package chart

import (
	"fmt"
	"strings"

	"github.com/MikeSquared-Agency/typecast/internal/mbti"
)

// Palette cycles by profile position.
var Palette = []string{"#FF69B4", "#1E90FF", "#32CD32", "#FFA500", "#9370DB", "#20B2AA"}

// Label positions alternate by index to keep neighbouring labels apart.
const (
	LabelAbove = "top center"
	LabelBelow = "bottom center"
)

// Layout is the finished draw instruction set for a spectrum chart.
type Layout struct {
	Title  string     `json:"title"`
	Axes   []Axis     `json:"axes"`
	Traces []Trace    `json:"traces"`
	XRange [2]float64 `json:"x_range"`
	YRange [2]float64 `json:"y_range"`
	Height int        `json:"height"`
	Legend Legend     `json:"legend"`
}

// Axis is one horizontal 0..100 track at ordinal position Y.
type Axis struct {
	Y         int    `json:"y"`
	Name      string `json:"name"`
	LowLabel  string `json:"low_label"`
	HighLabel string `json:"high_label"`
}

// Trace is one profile drawn as four points, one per axis.
type Trace struct {
	Name          string  `json:"name"`
	Color         string  `json:"color"`
	LabelPosition string  `json:"label_position"`
	Points        []Point `json:"points"`
}

type Point struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Label string `json:"label"`
}

type Legend struct {
	Orientation string  `json:"orientation"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	XAnchor     string  `json:"x_anchor"`
}

// ToolInvocationError means the chart could not be built from the current
// profiles. Callers treat it as "no chart".
type ToolInvocationError struct {
	Reason string
}

func (e *ToolInvocationError) Error() string {
	return "chart: " + e.Reason
}

// Build lays out every profile over the four fixed axes. Scores are aligned
// to their type code before plotting.
func Build(profiles []mbti.Profile) (*Layout, error) {
	if len(profiles) == 0 {
		return nil, &ToolInvocationError{Reason: "no profiles"}
	}

	l := &Layout{
		XRange: [2]float64{-25, 125},
		YRange: [2]float64{-0.5, 3.5},
		Height: 450,
		Legend: Legend{Orientation: "h", X: 0.5, Y: 1.1, XAnchor: "center"},
	}
	for i, dim := range mbti.Dimensions {
		l.Axes = append(l.Axes, Axis{Y: i, Name: dim.Name, LowLabel: dim.LowLabel, HighLabel: dim.HighLabel})
	}

	names := make([]string, 0, len(profiles))
	for i, p := range profiles {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return nil, &ToolInvocationError{Reason: fmt.Sprintf("profile %d has no name", i)}
		}
		names = append(names, name)

		aligned := mbti.Align(p.Type, p.Scores)
		tr := Trace{
			Name:          p.Label(),
			Color:         Palette[i%len(Palette)],
			LabelPosition: LabelAbove,
		}
		if i%2 == 1 {
			tr.LabelPosition = LabelBelow
		}
		for y, x := range aligned {
			tr.Points = append(tr.Points, Point{X: x, Y: y, Label: fmt.Sprint(x)})
		}
		l.Traces = append(l.Traces, tr)
	}
	l.Title = fmt.Sprintf("📊 %s Personality Spectrum", strings.Join(names, " vs "))

	return l, nil
}
