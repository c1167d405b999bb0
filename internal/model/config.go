package model

import "runtime"

// Config holds runtime configuration for the stylo pipelines.
type Config struct {
	Extract    ExtractConfig    `yaml:"extract"`
	Preprocess PreprocessConfig `yaml:"preprocess"`
	Output     OutputConfig     `yaml:"output"`
}

// ExtractConfig configures the two-pass feature extraction run.
type ExtractConfig struct {
	FeatureConfigPath       string `yaml:"feature_config"`       // empty = embedded defaults
	NormalizationConfigPath string `yaml:"normalization_config"` // empty = embedded defaults
	Recursive               bool   `yaml:"recursive"`            // descend into corpus subdirectories
	CacheDocuments          bool   `yaml:"cache_documents"`      // reuse parsed documents between passes
}

// PreprocessConfig configures article ingest and routing.
type PreprocessConfig struct {
	Workers int `yaml:"workers"` // concurrent document builders
}

// OutputConfig configures reporting behaviour.
type OutputConfig struct {
	Verbose  bool `yaml:"verbose"`
	Manifest bool `yaml:"manifest"` // record runs and routed documents in manifest.db
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Extract: ExtractConfig{
			Recursive:      true,
			CacheDocuments: true,
		},
		Preprocess: PreprocessConfig{
			Workers: runtime.NumCPU(),
		},
		Output: OutputConfig{
			Manifest: true,
		},
	}
}
