package feature

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed properties/feature-config.yaml
var defaultFeatureConfig []byte

//go:embed properties/normalization.yaml
var defaultNormalization []byte

// Config is the feature-selection table: which candidate features make the
// final list and how large the vocabulary may grow.
type Config struct {
	VocabularySize int  `yaml:"vocabulary_size"` // max token features kept after ranking
	Lowercase      bool `yaml:"lowercase"`       // fold token case before counting
	MinTokenLength int  `yaml:"min_token_length"`
	MinDocFreq     int  `yaml:"min_doc_freq"`   // drop tokens seen in fewer documents
	StyleFeatures  bool `yaml:"style_features"` // include the fixed style features
}

// Range is a min/max scaling interval for one feature.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Normalization is the scaling table: fixed ranges for style features plus
// optional per-feature overrides. Token features are relative frequencies and
// normalize without corpus state.
type Normalization struct {
	Clamp  bool             `yaml:"clamp"` // clip normalized values into [0, 1]
	Styles map[string]Range `yaml:"styles"`
}

// LoadConfig reads the feature-selection table from path, or the embedded
// defaults when path is empty. A missing or malformed file is fatal.
func LoadConfig(path string) (*Config, error) {
	data, err := tableBytes(path, defaultFeatureConfig)
	if err != nil {
		return nil, fmt.Errorf("load feature config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse feature config: %w", err)
	}
	if cfg.VocabularySize <= 0 {
		return nil, fmt.Errorf("feature config: vocabulary_size must be positive, got %d", cfg.VocabularySize)
	}
	return &cfg, nil
}

// LoadNormalization reads the normalization table from path, or the embedded
// defaults when path is empty.
func LoadNormalization(path string) (*Normalization, error) {
	data, err := tableBytes(path, defaultNormalization)
	if err != nil {
		return nil, fmt.Errorf("load normalization config: %w", err)
	}
	var norm Normalization
	if err := yaml.Unmarshal(data, &norm); err != nil {
		return nil, fmt.Errorf("parse normalization config: %w", err)
	}
	for name, r := range norm.Styles {
		if r.Max <= r.Min {
			return nil, fmt.Errorf("normalization config: range for %s is empty (min %g, max %g)", name, r.Min, r.Max)
		}
	}
	return &norm, nil
}

func tableBytes(path string, fallback []byte) ([]byte, error) {
	if path == "" {
		return fallback, nil
	}
	return os.ReadFile(path)
}

// Normalize scales raw into [0, 1] against the named style range. Unknown
// names pass through unscaled.
func (n *Normalization) Normalize(name string, raw float64) float64 {
	r, ok := n.Styles[name]
	if !ok {
		if n.Clamp {
			return clamp01(raw)
		}
		return raw
	}
	v := (raw - r.Min) / (r.Max - r.Min)
	if n.Clamp {
		return clamp01(v)
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
