package feature

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_EmbeddedDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.VocabularySize <= 0 {
		t.Errorf("vocabulary size = %d", cfg.VocabularySize)
	}
	if !cfg.StyleFeatures {
		t.Error("expected style features enabled by default")
	}
}

func TestLoadConfig_MissingFileIsFatal(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadConfig_RejectsZeroVocabulary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.yaml")
	if err := os.WriteFile(path, []byte("vocabulary_size: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for zero vocabulary size")
	}
}

func TestLoadNormalization_EmbeddedDefaults(t *testing.T) {
	norm, err := LoadNormalization("")
	if err != nil {
		t.Fatalf("LoadNormalization: %v", err)
	}
	if len(norm.Styles) == 0 {
		t.Fatal("expected style ranges in defaults")
	}
	for name, r := range norm.Styles {
		if r.Max <= r.Min {
			t.Errorf("range %s is empty: %+v", name, r)
		}
	}
}

func TestLoadNormalization_RejectsEmptyRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "n.yaml")
	content := "styles:\n  style=x:\n    min: 5\n    max: 5\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadNormalization(path); err == nil {
		t.Fatal("expected error for empty range")
	}
}

func TestNormalization_Normalize(t *testing.T) {
	norm := &Normalization{
		Clamp:  true,
		Styles: map[string]Range{"style=x": {Min: 0, Max: 10}},
	}

	tests := []struct {
		name string
		raw  float64
		want float64
	}{
		{"style=x", 5, 0.5},
		{"style=x", -3, 0},  // clamped below
		{"style=x", 120, 1}, // clamped above
		{"style=unknown", 0.25, 0.25},
	}
	for _, tt := range tests {
		if got := norm.Normalize(tt.name, tt.raw); got != tt.want {
			t.Errorf("Normalize(%s, %g) = %g, want %g", tt.name, tt.raw, got, tt.want)
		}
	}
}
