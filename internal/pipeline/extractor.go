// Package pipeline drives the two-pass corpus scan that turns a directory of
// annotated documents into a labeled, deduplicated dataset and hands it to
// the export coordinator.
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pwestermann/stylo/internal/annotate"
	"github.com/pwestermann/stylo/internal/corpus"
	"github.com/pwestermann/stylo/internal/export"
	"github.com/pwestermann/stylo/internal/feature"
	"github.com/pwestermann/stylo/internal/model"
)

// FeatureFileName is the single tabular file an extract-all run produces.
const FeatureFileName = "full-corpus.arff"

// Options wires an Extractor. Target, Features, Engine and Reader are
// required; they are factories (not instances) because every pass consumes a
// fresh reader/engine pair and each phase gets its own feature-set instance.
type Options struct {
	Target        feature.TargetClass
	Features      func() feature.Set
	Engine        annotate.Factory
	Reader        corpus.ReaderFactory
	FeatureConfig *feature.Config
	Normalization *feature.Normalization
	Exporter      *export.Exporter
	Logger        *slog.Logger
}

// Extractor orchestrates candidate discovery (pass 1), normalized extraction
// (pass 2), deduplication and export for one corpus directory. A document
// skipped in one pass (absent class label) is skipped in the other: both
// passes read the label through the same target class before anything else
// touches the document.
type Extractor struct {
	target   feature.TargetClass
	newSet   func() feature.Set
	engines  annotate.Factory
	readers  corpus.ReaderFactory
	cfg      *feature.Config
	norm     *feature.Normalization
	exporter *export.Exporter
	logger   *slog.Logger
}

// New validates the options and returns an extractor.
func New(opts Options) (*Extractor, error) {
	switch {
	case opts.Target == nil:
		return nil, errors.New("pipeline: missing target class")
	case opts.Features == nil:
		return nil, errors.New("pipeline: missing feature set factory")
	case opts.Engine == nil:
		return nil, errors.New("pipeline: missing analysis engine factory")
	case opts.Reader == nil:
		return nil, errors.New("pipeline: missing collection reader factory")
	case opts.FeatureConfig == nil || opts.Normalization == nil:
		return nil, errors.New("pipeline: missing configuration tables")
	case opts.Exporter == nil:
		return nil, errors.New("pipeline: missing exporter")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		target:   opts.Target,
		newSet:   opts.Features,
		engines:  opts.Engine,
		readers:  opts.Reader,
		cfg:      opts.FeatureConfig,
		norm:     opts.Normalization,
		exporter: opts.Exporter,
		logger:   logger,
	}, nil
}

// ExtractAll runs the full flow: the training partition under dataRoot is
// extracted into a single feature file under outputRoot.
func (e *Extractor) ExtractAll(dataRoot, outputRoot string) error {
	trainingDir := filepath.Join(dataRoot, corpus.TrainingPartition)
	outputFile := filepath.Join(outputRoot, FeatureFileName)
	if err := os.MkdirAll(outputRoot, 0o755); err != nil {
		return fmt.Errorf("create output root %s: %w", outputRoot, err)
	}
	return e.Extract(trainingDir, outputFile)
}

// Extract runs both passes over dataDir and exports the resulting dataset,
// treated as a training set, to outputFile.
func (e *Extractor) Extract(dataDir, outputFile string) error {
	e.logger.Info("extracting corpus", "data", dataDir, "output", outputFile)

	names, err := e.DetermineFeatures(dataDir)
	if err != nil {
		return err
	}
	dataset, err := e.ComputeVectors(dataDir, names)
	if err != nil {
		return err
	}
	return e.exporter.Export(dataset.Values, dataset.Labels, true, e.target, dataDir, outputFile, names)
}

// DetermineFeatures is pass 1: observe every labeled document and finalize
// the ordered feature name list. The list is immutable for the rest of the
// run; pass 2 may not start until this returns, reader and engine included.
func (e *Extractor) DetermineFeatures(dataDir string) ([]string, error) {
	set := e.newSet()
	if err := set.InitializeFeatureDetermination(e.cfg); err != nil {
		return nil, fmt.Errorf("pass 1: %w", err)
	}

	err := e.scan(dataDir, "candidate discovery", func(doc *model.AnnotatedDocument, label string) error {
		set.UpdateCandidateFeatures(doc, doc.Meta.Begin, doc.Meta.End)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("pass 1: %w", err)
	}

	names, err := set.DetermineFeatures(e.cfg, e.norm)
	if err != nil {
		return nil, fmt.Errorf("pass 1: %w", err)
	}
	e.logger.Info("finalized feature list", "features", len(names))
	return names, nil
}

// ComputeVectors is pass 2: compute a normalized vector per labeled document,
// aligned to the finalized name list, deduplicated on insertion.
func (e *Extractor) ComputeVectors(dataDir string, names []string) (*Dataset, error) {
	set := e.newSet()
	if err := set.InitializeFeatureComputation(names, e.cfg, e.norm); err != nil {
		return nil, fmt.Errorf("pass 2: %w", err)
	}

	dataset := NewDataset()
	dropped := 0
	err := e.scan(dataDir, "extraction", func(doc *model.AnnotatedDocument, label string) error {
		values := set.ComputeNormalizedFeatureValues(doc, doc.Meta.Begin, doc.Meta.End)
		if len(values) != len(names) {
			return fmt.Errorf("vector length %d does not match feature list length %d", len(values), len(names))
		}
		if !dataset.Add(values, label) {
			dropped++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("pass 2: %w", err)
	}
	e.logger.Info("computed vectors", "kept", dataset.Len(), "duplicates", dropped)
	return dataset, nil
}

// scan consumes one fresh reader/engine pair over dataDir, invoking observe
// for every document with a present class label. Teardown of both instances
// completes before scan returns; any failure aborts the whole pass.
func (e *Extractor) scan(dataDir, phase string, observe func(doc *model.AnnotatedDocument, label string) error) error {
	reader, err := e.readers(dataDir)
	if err != nil {
		return fmt.Errorf("create collection reader: %w", err)
	}
	engine, err := e.engines()
	if err != nil {
		reader.Close()
		return fmt.Errorf("create analysis engine: %w", err)
	}
	defer engine.Close()
	defer reader.Close()

	seen, skipped := 0, 0
	for {
		doc, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("%s: %w", phase, err)
		}

		label, ok := e.target.ClassValue(doc)
		if !ok {
			skipped++
			continue
		}
		if err := engine.Process(doc); err != nil {
			return fmt.Errorf("%s: annotate %s: %w", phase, doc.Meta.URI, err)
		}
		if err := observe(doc, label); err != nil {
			return fmt.Errorf("%s: %s: %w", phase, doc.Meta.URI, err)
		}
		seen++
	}

	e.logger.Debug("pass complete", "phase", phase, "documents", seen, "skipped", skipped)
	return nil
}
