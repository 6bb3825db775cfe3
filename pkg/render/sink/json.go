package sink

import (
	"encoding/json"

	"github.com/matzehuels/depthplot/pkg/artwork"
	"github.com/matzehuels/depthplot/pkg/depth"
	"github.com/matzehuels/depthplot/pkg/scene"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	compact bool
}

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

type jsonOutput struct {
	Window jsonWindow  `json:"window"`
	Unit   float64     `json:"unit"`
	Blocks []jsonBlock `json:"blocks"`
	Axis   jsonMesh    `json:"axis"`
	Ticks  []jsonTick  `json:"ticks"`
	Stats  jsonStats   `json:"stats"`
}

type jsonWindow struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type jsonVec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type jsonMesh struct {
	ID       string  `json:"id"`
	Position jsonVec `json:"position"`
	Size     jsonVec `json:"size"`
	Color    string  `json:"color"`
	Opacity  float64 `json:"opacity"`
}

type jsonBlock struct {
	jsonMesh
	Style  string         `json:"style"`
	Record artwork.Record `json:"record"`
}

type jsonTick struct {
	Year int `json:"year"`
	jsonMesh
}

type jsonStats struct {
	Total        int `json:"total"`
	Rendered     int `json:"rendered"`
	OutOfWindow  int `json:"out_of_window"`
	UnknownStyle int `json:"unknown_style"`
}

// RenderJSON exports the plot as a JSON document: the time window, the scene
// unit, every block with its source record, the axis bar and the ticks.
// Blocks keep the order of the input records.
func RenderJSON(p *depth.Plot, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Window: jsonWindow{Start: depth.GraphStartYear, End: depth.GraphEndYear},
		Unit:   depth.SceneUnitLength,
		Blocks: make([]jsonBlock, 0, p.Len()),
		Ticks:  make([]jsonTick, 0, len(p.Ticks())),
	}

	for _, b := range p.Blocks() {
		out.Blocks = append(out.Blocks, jsonBlock{
			jsonMesh: toJSONMesh(b.Mesh),
			Style:    b.Mesh.Name,
			Record:   b.Record,
		})
	}
	if axis := p.Axis(); axis != nil {
		out.Axis = toJSONMesh(axis)
	}
	for _, t := range p.Ticks() {
		out.Ticks = append(out.Ticks, jsonTick{Year: t.Year, jsonMesh: toJSONMesh(t.Mesh)})
	}

	s := p.Stats()
	out.Stats = jsonStats{Total: s.Total, Rendered: s.Rendered, OutOfWindow: s.OutOfWindow, UnknownStyle: s.UnknownStyle}

	if r.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}

func toJSONMesh(m *scene.Mesh) jsonMesh {
	g := m.Geometry
	return jsonMesh{
		ID:       m.ID().String(),
		Position: jsonVec{g.Center.X, g.Center.Y, g.Center.Z},
		Size:     jsonVec{g.Size.X, g.Size.Y, g.Size.Z},
		Color:    m.Material.Color.Hex(),
		Opacity:  m.Material.Opacity,
	}
}
