// Package feature defines the feature-algorithm contract of the extraction
// pipeline, the configuration tables driving feature selection and
// normalization, the pluggable target-class specifications, and the default
// topic-and-style feature set.
package feature

import "github.com/pwestermann/stylo/internal/model"

// Set is the contract a feature algorithm family satisfies to plug into the
// two-pass pipeline. A Set instance serves exactly one phase of one run:
// determination instances observe the corpus and finalize the feature name
// list; computation instances are initialized with that list and emit
// normalized vectors aligned to it. The same name list, in the same order,
// governs every document of a run.
type Set interface {
	// InitializeFeatureDetermination prepares the instance for pass 1.
	InitializeFeatureDetermination(cfg *Config) error

	// UpdateCandidateFeatures observes one document's [begin, end) region
	// during pass 1 candidate discovery.
	UpdateCandidateFeatures(doc *model.AnnotatedDocument, begin, end int)

	// DetermineFeatures finalizes the ordered feature name list from the
	// observed corpus and the two configuration tables.
	DetermineFeatures(cfg *Config, norm *Normalization) ([]string, error)

	// InitializeFeatureComputation prepares the instance for pass 2 with a
	// finalized name list.
	InitializeFeatureComputation(names []string, cfg *Config, norm *Normalization) error

	// ComputeNormalizedFeatureValues returns one value per initialized name,
	// aligned by position, for the document's [begin, end) region.
	ComputeNormalizedFeatureValues(doc *model.AnnotatedDocument, begin, end int) []float64
}
