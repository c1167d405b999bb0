// Package annotate defines the analysis-engine port of the feature pipeline
// and provides the default linguistic annotator.
//
// An engine holds a single document cursor: it processes one document at a
// time and must never be shared between pipeline passes or goroutines. The
// pipeline obtains a fresh instance per pass through a Factory and closes it
// when the pass ends.
package annotate

import "github.com/pwestermann/stylo/internal/model"

// Engine enriches annotated documents in place with the linguistic
// annotations feature algorithms need.
type Engine interface {
	// Process annotates one document in place.
	Process(doc *model.AnnotatedDocument) error
	// Close releases the engine. A closed engine rejects further documents.
	Close() error
}

// Factory produces a fresh engine instance. Each pipeline pass calls the
// factory again; analysis state never leaks across passes.
type Factory func() (Engine, error)
