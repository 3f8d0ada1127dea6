package chart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Renderer turns a Layout into a displayable artifact.
type Renderer interface {
	Render(ctx context.Context, l *Layout) ([]byte, error)
}

// PlotlyRenderer emits a Plotly figure document ({"data":...,"layout":...})
// that a browser can hand straight to Plotly.newPlot.
type PlotlyRenderer struct{}

type figure struct {
	Data   []map[string]any `json:"data"`
	Layout map[string]any   `json:"layout"`
}

func (PlotlyRenderer) Render(ctx context.Context, l *Layout) ([]byte, error) {
	if l == nil {
		return nil, errors.New("render: nil layout")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var shapes, annotations []map[string]any
	for _, ax := range l.Axes {
		shapes = append(shapes, map[string]any{
			"type": "line", "x0": 0, "y0": ax.Y, "x1": 100, "y1": ax.Y,
			"line": map[string]any{"color": "#E0E0E0", "width": 6},
		})
		annotations = append(annotations,
			map[string]any{
				"x": -8, "y": ax.Y, "text": ax.LowLabel, "showarrow": false, "xanchor": "right",
				"font": map[string]any{"size": 14, "color": "#555"},
			},
			map[string]any{
				"x": 108, "y": ax.Y, "text": ax.HighLabel, "showarrow": false, "xanchor": "left",
				"font": map[string]any{"size": 14, "color": "#555"},
			},
		)
	}

	fig := figure{Data: make([]map[string]any, 0, len(l.Traces))}
	for _, tr := range l.Traces {
		xs := make([]int, len(tr.Points))
		ys := make([]int, len(tr.Points))
		text := make([]string, len(tr.Points))
		for i, p := range tr.Points {
			xs[i], ys[i], text[i] = p.X, p.Y, p.Label
		}
		fig.Data = append(fig.Data, map[string]any{
			"type":         "scatter",
			"mode":         "markers+text",
			"name":         tr.Name,
			"x":            xs,
			"y":            ys,
			"text":         text,
			"textposition": tr.LabelPosition,
			"textfont":     map[string]any{"color": tr.Color, "weight": "bold"},
			"marker": map[string]any{
				"size": 22, "color": tr.Color,
				"line": map[string]any{"width": 2, "color": "white"},
			},
		})
	}

	hidden := func(r [2]float64) map[string]any {
		return map[string]any{"range": r, "showgrid": false, "zeroline": false, "showticklabels": false}
	}
	fig.Layout = map[string]any{
		"title":      map[string]any{"text": l.Title, "font": map[string]any{"size": 20}},
		"height":     l.Height,
		"showlegend": true,
		"legend": map[string]any{
			"orientation": l.Legend.Orientation, "x": l.Legend.X, "y": l.Legend.Y, "xanchor": l.Legend.XAnchor,
		},
		"xaxis":        hidden(l.XRange),
		"yaxis":        hidden(l.YRange),
		"plot_bgcolor": "white",
		"margin":       map[string]any{"l": 50, "r": 50, "t": 80, "b": 20},
		"shapes":       shapes,
		"annotations":  annotations,
	}

	out, err := json.Marshal(fig)
	if err != nil {
		return nil, fmt.Errorf("marshal figure: %w", err)
	}
	return out, nil
}
