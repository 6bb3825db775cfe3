package depth

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/matzehuels/depthplot/pkg/artwork"
	"github.com/matzehuels/depthplot/pkg/errors"
	"github.com/matzehuels/depthplot/pkg/palette"
	"github.com/matzehuels/depthplot/pkg/scene"
)

const eps = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) < eps }

func build(t *testing.T, records []artwork.Record, opts ...Option) (*scene.Scene, *Plot) {
	t.Helper()
	sc := scene.New()
	p, err := New(sc, records, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return sc, p
}

func TestWorkedExamples(t *testing.T) {
	records := []artwork.Record{
		{Year: 1600, Style: "Dutch Golden Age, Painting", Range: 2},
		{Year: 1250, Style: "Baroque", Range: 0},
		{Year: 1700, Style: "Unknown Style", Range: 1},
	}
	_, p := build(t, records)

	if p.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", p.Len())
	}

	b := p.Blocks()[0]
	if b.Mesh.Material.Color != 0xaf060f {
		t.Errorf("color = %v, want #af060f", b.Mesh.Material.Color)
	}
	if b.Mesh.Material.Opacity != DefaultOpacity || !b.Mesh.Material.Transparent {
		t.Errorf("material = %+v, want translucent default opacity", *b.Mesh.Material)
	}

	c := b.Mesh.Geometry.Center
	if !approx(c.X, -24.0) || !approx(c.Y, 1.2) || c.Z != 0 {
		t.Errorf("center = %+v, want (-24, 1.2, 0)", c)
	}
	if want := (scene.Vec3{X: 0.8, Y: 0.8, Z: 0.8}); !approx(b.Mesh.Geometry.Size.X, want.X) ||
		!approx(b.Mesh.Geometry.Size.Y, want.Y) || !approx(b.Mesh.Geometry.Size.Z, want.Z) {
		t.Errorf("size = %+v, want %+v", b.Mesh.Geometry.Size, want)
	}

	want := Stats{Total: 3, Rendered: 1, OutOfWindow: 1, UnknownStyle: 1}
	if diff := cmp.Diff(want, p.Stats()); diff != "" {
		t.Errorf("Stats mismatch (-want +got):\n%s", diff)
	}
}

func TestInclusion(t *testing.T) {
	tests := []struct {
		name string
		rec  artwork.Record
		want bool
	}{
		{"start year", artwork.Record{Year: 1300, Style: "Renaissance"}, true},
		{"end year", artwork.Record{Year: 2020, Style: "Cubism"}, true},
		{"before window", artwork.Record{Year: 1299, Style: "Renaissance"}, false},
		{"after window", artwork.Record{Year: 2021, Style: "Cubism"}, false},
		{"exact style", artwork.Record{Year: 1650, Style: "Baroque"}, true},
		{"qualified style", artwork.Record{Year: 1650, Style: "Baroque, Something"}, true},
		{"case mismatch", artwork.Record{Year: 1650, Style: "baroque"}, false},
		{"unknown style", artwork.Record{Year: 1650, Style: "Vaporwave"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, p := build(t, []artwork.Record{tt.rec})
			if got := p.Len() == 1; got != tt.want {
				t.Errorf("included = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanonicalStyleSharesColor(t *testing.T) {
	_, p := build(t, []artwork.Record{
		{Year: 1650, Style: "Baroque"},
		{Year: 1660, Style: "Baroque, Something"},
	})
	blocks := p.Blocks()
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[0].Mesh.Material.Color != blocks[1].Mesh.Material.Color {
		t.Errorf("colors differ: %v vs %v", blocks[0].Mesh.Material.Color, blocks[1].Mesh.Material.Color)
	}
}

func TestXPositionIsIncreasing(t *testing.T) {
	prev := math.Inf(-1)
	for y := GraphStartYear; y <= GraphEndYear; y++ {
		x := XPosition(y)
		if x <= prev {
			t.Fatalf("XPosition(%d) = %v, not greater than XPosition(%d) = %v", y, x, y-1, prev)
		}
		prev = x
	}
	if !approx(XPosition(GraphStartYear+Offset), 0) {
		t.Errorf("timeline is not centered: XPosition(%d) = %v", GraphStartYear+Offset, XPosition(GraphStartYear+Offset))
	}
}

func TestYPosition(t *testing.T) {
	tests := []struct {
		rank float64
		want float64
	}{
		{0, 0.4},
		{1, 0.8},
		{2, 1.2},
		{2.5, 1.4},
		{-1, 0},
	}
	for _, tt := range tests {
		if got := YPosition(tt.rank); !approx(got, tt.want) {
			t.Errorf("YPosition(%v) = %v, want %v", tt.rank, got, tt.want)
		}
	}
}

func TestAxisAndTicks(t *testing.T) {
	sc, p := build(t, nil)

	wantYears := []int{1300, 1400, 1500, 1600, 1700, 1800, 1900, 2000}
	var years []int
	for _, tk := range p.Ticks() {
		years = append(years, tk.Year)
		c := tk.Mesh.Geometry.Center
		if !approx(c.X, XPosition(tk.Year)) || c.Y != 0 || c.Z != 0 {
			t.Errorf("tick %d center = %+v", tk.Year, c)
		}
		if !approx(tk.Mesh.Geometry.Size.Y, 4) {
			t.Errorf("tick %d height = %v, want 4", tk.Year, tk.Mesh.Geometry.Size.Y)
		}
		if tk.Mesh.Material.Color != AxisColor {
			t.Errorf("tick %d color = %v", tk.Year, tk.Mesh.Material.Color)
		}
	}
	if diff := cmp.Diff(wantYears, years); diff != "" {
		t.Errorf("tick years mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantYears, TickYears()); diff != "" {
		t.Errorf("TickYears mismatch (-want +got):\n%s", diff)
	}

	axis := p.Axis()
	if axis == nil {
		t.Fatal("no axis")
	}
	if axis.Geometry.Center != (scene.Vec3{}) {
		t.Errorf("axis center = %+v, want origin", axis.Geometry.Center)
	}
	if !approx(axis.Geometry.Size.X, 288) {
		t.Errorf("axis width = %v, want 288", axis.Geometry.Size.X)
	}

	// Root holds the group, the axis bar and eight ticks.
	roots := sc.Children()
	if len(roots) != 10 {
		t.Fatalf("scene has %d root objects, want 10", len(roots))
	}
	if roots[0] != p.Group() {
		t.Error("first root object should be the block group")
	}
	axes := 0
	for _, o := range roots {
		if o.Label() == AxisName {
			axes++
		}
	}
	if axes != 1 {
		t.Errorf("found %d axis bars, want 1", axes)
	}
}

func TestIndexMatchesGroup(t *testing.T) {
	records := []artwork.Record{
		{ID: "a", Year: 1500, Style: "Renaissance", Range: 0},
		{ID: "b", Year: 1500, Style: "Renaissance", Range: 1},
		{ID: "c", Year: 1100, Style: "Renaissance", Range: 0},
		{ID: "d", Year: 1888, Style: "Post-Impressionism, Landscape", Range: 3},
		{ID: "e", Year: 1937, Style: "Surrealism", Range: 0.5},
	}
	_, p := build(t, records)

	children := p.Group().Children()
	if len(children) != p.Len() {
		t.Fatalf("group has %d children, index has %d", len(children), p.Len())
	}

	var ids []string
	for _, o := range children {
		rec, ok := p.Lookup(o.ID())
		if !ok {
			t.Fatalf("group child %s is not indexed", o.ID())
		}
		ids = append(ids, rec.ID)
	}
	if diff := cmp.Diff([]string{"a", "b", "d", "e"}, ids); diff != "" {
		t.Errorf("block order mismatch (-want +got):\n%s", diff)
	}
}

func TestLookupRoundTrip(t *testing.T) {
	records := []artwork.Record{
		{ID: "1", Title: "The Night Watch", Artist: "Rembrandt", Year: 1642, Style: "Dutch Golden Age, Painting", Range: 2},
		{ID: "2", Title: "The Starry Night", Artist: "Van Gogh", Year: 1889, Style: "Post-Impressionism", Range: 1},
	}
	_, p := build(t, records)

	for i, b := range p.Blocks() {
		got, ok := p.Lookup(b.Mesh.ID())
		if !ok {
			t.Fatalf("Lookup(%s) missed", b.Mesh.ID())
		}
		if diff := cmp.Diff(records[i], got); diff != "" {
			t.Errorf("Lookup mismatch (-want +got):\n%s", diff)
		}
		if m, ok := p.Block(b.Mesh.ID()); !ok || m != b.Mesh {
			t.Errorf("Block(%s) = %v, %v", b.Mesh.ID(), m, ok)
		}
	}
}

func TestLookupMisses(t *testing.T) {
	_, p := build(t, []artwork.Record{{Year: 1600, Style: "Baroque"}})

	if _, ok := p.Lookup(uuid.New()); ok {
		t.Error("fresh id should miss")
	}
	if _, ok := p.Lookup(p.Axis().ID()); ok {
		t.Error("axis id should miss")
	}
	if _, ok := p.Lookup(p.Ticks()[0].Mesh.ID()); ok {
		t.Error("tick id should miss")
	}
	if _, ok := p.Lookup(p.Group().ID()); ok {
		t.Error("group id should miss")
	}
	if _, ok := p.Block(uuid.Nil); ok {
		t.Error("Block(nil id) should miss")
	}
}

func TestSetSelected(t *testing.T) {
	_, p := build(t, []artwork.Record{{Year: 1600, Style: "Baroque"}})
	m := p.Blocks()[0].Mesh
	geom := m.Geometry

	p.SetSelected(m, 0xffffff, true)
	once := *m.Material
	p.SetSelected(m, 0xffffff, true)
	if *m.Material != once {
		t.Errorf("SetSelected is not idempotent: %+v vs %+v", *m.Material, once)
	}
	if once.Color != 0xffffff || once.Opacity != SelectedOpacity {
		t.Errorf("selected material = %+v", once)
	}

	p.SetSelected(m, 0x5b2c6f, false)
	if m.Material.Color != 0x5b2c6f || m.Material.Opacity != DefaultOpacity {
		t.Errorf("deselected material = %+v", *m.Material)
	}
	if m.Geometry != geom {
		t.Error("SetSelected must not move the block")
	}
	if p.Len() != 1 {
		t.Error("SetSelected must not change the block set")
	}

	p.SetSelected(nil, 0, true)
}

func TestWithPalette(t *testing.T) {
	pal, err := palette.New(map[string]scene.Color{"Vaporwave": 0xff71ce})
	if err != nil {
		t.Fatal(err)
	}
	_, p := build(t, []artwork.Record{
		{Year: 1990, Style: "Vaporwave, Digital"},
		{Year: 1650, Style: "Baroque"},
	}, WithPalette(pal))

	if p.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", p.Len())
	}
	if c := p.Blocks()[0].Mesh.Material.Color; c != 0xff71ce {
		t.Errorf("color = %v", c)
	}
}

func TestMalformedRecordFailsFast(t *testing.T) {
	tests := []struct {
		name string
		rec  artwork.Record
	}{
		{"nan range", artwork.Record{Year: 1600, Style: "Baroque", Range: math.NaN()}},
		{"inf range", artwork.Record{Year: 1600, Style: "Baroque", Range: math.Inf(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := scene.New()
			records := []artwork.Record{{Year: 1600, Style: "Baroque"}, tt.rec}
			p, err := New(sc, records)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidRecord) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidRecord)
			}
			if p != nil {
				t.Error("plot should be nil on error")
			}
			if sc.Len() != 0 {
				t.Errorf("scene modified on error: %d objects", sc.Len())
			}
		})
	}
}

func TestEmptyStyleIsSkipped(t *testing.T) {
	records := []artwork.Record{
		{Year: 1600, Style: "Baroque"},
		{Year: 1650, Style: ""},
		{Year: 1700, Style: ", Baroque"},
		{Year: 1250, Style: ""},
	}

	sc := scene.New()
	p, err := New(sc, records)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	want := Stats{Total: 4, Rendered: 1, OutOfWindow: 1, UnknownStyle: 2}
	if diff := cmp.Diff(want, p.Stats()); diff != "" {
		t.Errorf("Stats mismatch (-want +got):\n%s", diff)
	}
}
