package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/matzehuels/depthplot/pkg/artwork"
	"github.com/matzehuels/depthplot/pkg/depth"
	"github.com/matzehuels/depthplot/pkg/errors"
	"github.com/matzehuels/depthplot/pkg/scene"
)

var testRecords = []artwork.Record{
	{ID: "nw", Title: "The Night Watch", Artist: "Rembrandt", Year: 1642, Style: "Dutch Golden Age, Painting", Range: 2},
	{ID: "sn", Title: "Starry <Night>", Year: 1889, Style: "Post-Impressionism", Range: 0},
	{ID: "old", Title: "Too early", Year: 1100, Style: "Baroque"},
	{ID: "pe", Title: "The Persistence of Memory", Year: 1931, Style: "Surrealism", Range: 1},
}

func buildPlot(t *testing.T) (*scene.Scene, *depth.Plot) {
	t.Helper()
	sc := scene.New(scene.WithSequentialIDs(uuid.NameSpaceOID))
	p, err := depth.New(sc, testRecords)
	if err != nil {
		t.Fatalf("depth.New() error: %v", err)
	}
	return sc, p
}

func TestRenderJSON(t *testing.T) {
	_, p := buildPlot(t)

	data, err := RenderJSON(p)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if out.Window != (jsonWindow{Start: 1300, End: 2020}) {
		t.Errorf("Window = %+v", out.Window)
	}
	if out.Unit != depth.SceneUnitLength {
		t.Errorf("Unit = %v", out.Unit)
	}
	if len(out.Blocks) != 3 {
		t.Fatalf("Blocks count = %d, want 3", len(out.Blocks))
	}
	if len(out.Ticks) != 8 {
		t.Errorf("Ticks count = %d, want 8", len(out.Ticks))
	}

	first := out.Blocks[0]
	if first.Color != "#af060f" || first.Style != "Dutch Golden Age" {
		t.Errorf("first block = %s %s", first.Style, first.Color)
	}
	if diff := cmp.Diff(testRecords[0], first.Record); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
	if first.ID != p.Blocks()[0].Mesh.ID().String() {
		t.Errorf("block id = %s, want mesh id", first.ID)
	}
	if out.Stats.OutOfWindow != 1 || out.Stats.Rendered != 3 {
		t.Errorf("Stats = %+v", out.Stats)
	}
	if out.Axis.Color != "#888888" {
		t.Errorf("axis color = %s", out.Axis.Color)
	}
}

func TestRenderJSONCompact(t *testing.T) {
	_, p := buildPlot(t)

	data, err := RenderJSON(p, WithJSONCompact())
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(data, []byte("\n  ")) {
		t.Error("compact output should not be indented")
	}
}

func TestRenderSVG(t *testing.T) {
	_, p := buildPlot(t)
	svg := string(RenderSVG(p, WithWidth(800)))

	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatal("output is not a single svg element")
	}
	if !strings.Contains(svg, `width="800"`) {
		t.Error("width option not applied")
	}
	for _, b := range p.Blocks() {
		if !strings.Contains(svg, fmt.Sprintf(`data-id="%s"`, b.Mesh.ID())) {
			t.Errorf("missing block %s", b.Mesh.ID())
		}
	}
	if n := strings.Count(svg, `class="block"`); n != 3 {
		t.Errorf("block rects = %d, want 3", n)
	}
	if n := strings.Count(svg, `class="tick-label"`); n != 8 {
		t.Errorf("tick labels = %d, want 8", n)
	}
	if !strings.Contains(svg, ">1900</text>") {
		t.Error("missing 1900 tick label")
	}
	if !strings.Contains(svg, ">2000</text>") {
		t.Error("missing 2000 tick label")
	}
	if strings.Contains(svg, ">2020</text>") {
		t.Error("2020 should not get a tick label")
	}
	if !strings.Contains(svg, "Starry &lt;Night&gt; (1889)") {
		t.Error("block titles should be escaped")
	}
	if !strings.Contains(svg, `fill="#af060f" fill-opacity="0.5"`) {
		t.Error("missing translucent Dutch Golden Age block")
	}
}

func TestRenderSVGSelection(t *testing.T) {
	_, p := buildPlot(t)
	b := p.Blocks()[1]
	p.SetSelected(b.Mesh, 0xffffff, true)

	svg := string(RenderSVG(p, WithoutTickLabels()))
	if n := strings.Count(svg, `class="block selected"`); n != 1 {
		t.Errorf("selected blocks = %d, want 1", n)
	}
	if !strings.Contains(svg, `fill="#ffffff" fill-opacity="1"`) {
		t.Error("selected block should be opaque white")
	}
	if strings.Contains(svg, "tick-label\"") {
		t.Error("tick labels should be disabled")
	}
}

func TestBounds(t *testing.T) {
	_, p := buildPlot(t)
	min, max := Bounds(p)

	if min.X > -144 {
		t.Errorf("min.X = %v, should include the axis start", min.X)
	}
	if max.X < 144 {
		t.Errorf("max.X = %v, should include the axis end", max.X)
	}
	// Ticks span Y in [-2, 2] and reach higher than any test block.
	if min.Y != -2 || max.Y != 2 {
		t.Errorf("Y extent = [%v, %v], want [-2, 2]", min.Y, max.Y)
	}
}

func TestRenderHTML(t *testing.T) {
	_, p := buildPlot(t)

	data, err := RenderHTML(p, WithHTMLTitle("My Collection"))
	if err != nil {
		t.Fatalf("RenderHTML() error: %v", err)
	}
	html := string(data)
	for _, want := range []string{"<html", "echarts", "My Collection", "Dutch Golden Age", "Surrealism", "#af060f"} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(html, "Too early") {
		t.Error("excluded record should not be charted")
	}
}

func TestGroupByStyle(t *testing.T) {
	sc := scene.New()
	p, err := depth.New(sc, []artwork.Record{
		{Year: 1650, Style: "Baroque"},
		{Year: 1500, Style: "Renaissance"},
		{Year: 1660, Style: "Baroque, Late"},
	})
	if err != nil {
		t.Fatal(err)
	}

	series, order := groupByStyle(p)
	if diff := cmp.Diff([]string{"Baroque", "Renaissance"}, order); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if len(series["Baroque"]) != 2 {
		t.Errorf("Baroque points = %d, want 2", len(series["Baroque"]))
	}
}

func TestRenderPNG(t *testing.T) {
	_, p := buildPlot(t)

	data, err := RenderPNG(p, WithPNGSize(4, 2))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("output is not a PNG")
	}
}

func TestToDOT(t *testing.T) {
	sc, p := buildPlot(t)
	dot := ToDOT(sc)

	if !strings.Contains(dot, "digraph scene") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	group := p.Group().ID().String()
	if !strings.Contains(dot, fmt.Sprintf(`"scene" -> %q`, group)) {
		t.Error("group should hang off the scene root")
	}
	if !strings.Contains(dot, fmt.Sprintf(`"scene" -> %q`, p.Axis().ID().String())) {
		t.Error("axis should hang off the scene root")
	}
	for _, b := range p.Blocks() {
		if !strings.Contains(dot, fmt.Sprintf(`%q -> %q`, group, b.Mesh.ID().String())) {
			t.Errorf("block %s should hang off the group", b.Mesh.ID())
		}
	}
	if !strings.Contains(dot, `fillcolor="#af060f80"`) {
		t.Error("mesh fill should carry material alpha")
	}
	if !strings.Contains(dot, `label="blocks (3)"`) {
		t.Error("group label should count its children")
	}
}

func TestToDOTDetailed(t *testing.T) {
	sc, _ := buildPlot(t)
	dot := ToDOT(sc, WithDOTDetailed())
	if !strings.Contains(dot, "#af060f @ 0.50") {
		t.Error("detailed labels should include the material")
	}
}

func TestRenderGraphviz(t *testing.T) {
	sc := scene.New()
	if _, err := depth.New(sc, testRecords[:1]); err != nil {
		t.Fatal(err)
	}

	svg, err := RenderGraphviz(context.Background(), ToDOT(sc))
	if err != nil {
		t.Fatalf("RenderGraphviz() error: %v", err)
	}
	if !bytes.Contains(svg, []byte(`viewBox="0 0 `)) {
		t.Error("viewBox should be normalized to the origin")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{" SVG ", FormatSVG, false},
		{"html", FormatHTML, false},
		{"png", FormatPNG, false},
		{"dot", FormatDOT, false},
		{"graphviz", FormatGraphviz, false},
		{"pdf", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat() = %q, want %q", got, tt.want)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("code = %v", errors.GetCode(err))
			}
		})
	}
}

func TestParseFormatsDedupes(t *testing.T) {
	got, err := ParseFormats([]string{"svg", "json", "SVG"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]Format{FormatSVG, FormatJSON}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatMetadata(t *testing.T) {
	for _, f := range Formats() {
		if f.Ext() == "" || f.ContentType() == "" {
			t.Errorf("format %s lacks metadata", f)
		}
	}
}
