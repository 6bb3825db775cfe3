package palette

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/depthplot/pkg/errors"
	"github.com/matzehuels/depthplot/pkg/scene"
)

func TestDefault(t *testing.T) {
	p := Default()
	if p.Len() != 14 {
		t.Errorf("Len() = %d, want 14", p.Len())
	}

	c, ok := p.Lookup("Dutch Golden Age")
	if !ok || c != 0xaf060f {
		t.Errorf("Lookup(Dutch Golden Age) = %v, %v; want #af060f, true", c, ok)
	}

	for _, miss := range []string{"Unknown Style", "baroque", "Baroque, Painting", ""} {
		if _, ok := p.Lookup(miss); ok {
			t.Errorf("Lookup(%q) should miss", miss)
		}
	}
}

func TestDefaultIsIsolated(t *testing.T) {
	a := Default()
	b, err := a.With(map[string]scene.Color{"Baroque": 0x000000})
	if err != nil {
		t.Fatal(err)
	}

	if c, _ := a.Lookup("Baroque"); c == 0 {
		t.Error("With must not modify the receiver")
	}
	if c, _ := Default().Lookup("Baroque"); c == 0 {
		t.Error("With must not modify the built-in table")
	}
	if c, _ := b.Lookup("Baroque"); c != 0 {
		t.Errorf("override not applied: %v", c)
	}
}

func TestStylesSorted(t *testing.T) {
	styles := Default().Styles()
	for i := 1; i < len(styles); i++ {
		if styles[i-1] > styles[i] {
			t.Fatalf("Styles() not sorted at %d: %q > %q", i, styles[i-1], styles[i])
		}
	}
}

func TestNewRejectsBadNames(t *testing.T) {
	_, err := New(map[string]scene.Color{"Baroque, Painting": 0x111111})
	if !errors.Is(err, errors.ErrCodeInvalidPalette) {
		t.Errorf("New() error = %v, want %v", err, errors.ErrCodeInvalidPalette)
	}
}

func TestZeroTable(t *testing.T) {
	var p Table
	if _, ok := p.Lookup("Baroque"); ok {
		t.Error("zero table should be empty")
	}
	q, err := p.With(map[string]scene.Color{"Baroque": 0x010203})
	if err != nil {
		t.Fatal(err)
	}
	if q.Len() != 1 {
		t.Errorf("Len() = %d, want 1", q.Len())
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		style   string
		want    scene.Color
		wantLen int
		wantErr bool
	}{
		{
			name:    "replace",
			input:   "[styles]\n\"Art Nouveau\" = \"#7f9f3f\"\n",
			style:   "Art Nouveau",
			want:    0x7f9f3f,
			wantLen: 1,
		},
		{
			name:    "inherit",
			input:   "inherit = true\n[styles]\n\"Baroque\" = \"#336699\"\n",
			style:   "Baroque",
			want:    0x336699,
			wantLen: 14,
		},
		{
			name:    "inherit only",
			input:   "inherit = true\n",
			style:   "Dutch Golden Age",
			want:    0xaf060f,
			wantLen: 14,
		},
		{name: "empty", input: "", wantErr: true},
		{name: "bad color", input: "[styles]\nBaroque = \"purple\"\n", wantErr: true},
		{name: "bad toml", input: "[styles\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Decode(strings.NewReader(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if p.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", p.Len(), tt.wantLen)
			}
			if c, ok := p.Lookup(tt.style); !ok || c != tt.want {
				t.Errorf("Lookup(%q) = %v, %v; want %v", tt.style, c, ok, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "palette.toml")
	if err := os.WriteFile(path, []byte("[styles]\nCubism = \"#010203\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c, _ := p.Lookup("Cubism"); c != 0x010203 {
		t.Errorf("Cubism = %v", c)
	}

	_, err = Load(filepath.Join(dir, "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want %v", err, errors.ErrCodeFileNotFound)
	}
}
