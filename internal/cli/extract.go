package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pwestermann/stylo/internal/annotate"
	"github.com/pwestermann/stylo/internal/corpus"
	"github.com/pwestermann/stylo/internal/export"
	"github.com/pwestermann/stylo/internal/feature"
	"github.com/pwestermann/stylo/internal/manifest"
	"github.com/pwestermann/stylo/internal/model"
	"github.com/pwestermann/stylo/internal/pipeline"
)

var (
	featureConfigPath string
	normConfigPath    string
	nonRecursive      bool
	noDocCache        bool
	noManifest        bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <target-class> <data-root> <output-root>",
	Short: "Run the two-pass feature extraction over a preprocessed corpus",
	Long: `Extract scans the training partition under <data-root> twice:
pass 1 discovers which features are well-defined across the whole corpus
and finalizes the ordered feature list; pass 2 computes normalized vectors
per document against that list. Duplicate (vector, label) pairs are dropped,
the dataset is class-balanced, and a single ARFF file is written.

<target-class> selects the labeling policy (` + fmt.Sprint(feature.TargetNames()) + `).

Example:
  stylo extract veracity ./corpus ./features
  stylo extract orientation ./corpus ./features --feature-config my-features.yaml`,
	Args: cobra.ExactArgs(3),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&featureConfigPath, "feature-config", "", "feature selection table (default: embedded)")
	extractCmd.Flags().StringVar(&normConfigPath, "normalization-config", "", "normalization table (default: embedded)")
	extractCmd.Flags().BoolVar(&nonRecursive, "no-recursive", false, "do not descend into corpus subdirectories")
	extractCmd.Flags().BoolVar(&noDocCache, "no-doc-cache", false, "re-parse documents in pass 2 instead of caching")
	extractCmd.Flags().BoolVar(&noManifest, "no-manifest", false, "do not record the run in manifest.db")
}

func runExtract(cmd *cobra.Command, args []string) error {
	targetName, dataRoot, outputRoot := args[0], args[1], args[2]
	logger := newLogger()

	target, err := feature.TargetByName(targetName)
	if err != nil {
		return err
	}

	cfg := model.DefaultConfig()
	cfg.Extract.FeatureConfigPath = featureConfigPath
	cfg.Extract.NormalizationConfigPath = normConfigPath
	cfg.Extract.Recursive = !nonRecursive
	cfg.Extract.CacheDocuments = !noDocCache
	cfg.Output.Manifest = !noManifest

	featureCfg, err := feature.LoadConfig(cfg.Extract.FeatureConfigPath)
	if err != nil {
		return err
	}
	normCfg, err := feature.LoadNormalization(cfg.Extract.NormalizationConfigPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputRoot, 0o755); err != nil {
		return fmt.Errorf("create output root %s: %w", outputRoot, err)
	}

	var runID string
	var store *manifest.Store
	if cfg.Output.Manifest {
		store, err = manifest.Open(filepath.Join(outputRoot, manifest.FileName))
		if err != nil {
			return err
		}
		defer store.Close()
		if runID, err = store.BeginRun("extract", targetName); err != nil {
			return err
		}
	}

	docCache := corpus.NewDocumentCache()
	if !cfg.Extract.CacheDocuments {
		docCache = nil
	}

	extractor, err := pipeline.New(pipeline.Options{
		Target:        target,
		Features:      feature.NewSet,
		Engine:        annotate.NewEngine,
		Reader:        corpus.DirectoryReaderFactory(cfg.Extract.Recursive, docCache),
		FeatureConfig: featureCfg,
		Normalization: normCfg,
		Exporter:      export.NewExporter(nil, nil, logger),
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	if err := extractor.ExtractAll(dataRoot, outputRoot); err != nil {
		return err
	}

	if store != nil {
		if err := store.FinishRun(runID); err != nil {
			return err
		}
	}
	return nil
}
