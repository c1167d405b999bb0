package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pwestermann/stylo/internal/corpus"
	"github.com/pwestermann/stylo/internal/manifest"
	"github.com/pwestermann/stylo/internal/model"
	"github.com/pwestermann/stylo/internal/worker"
)

var preprocessWorkers int

// preprocessCmd represents the preprocess command
var preprocessCmd = &cobra.Command{
	Use:   "preprocess <input-folder> <output-folder> <veracity-type>",
	Short: "Build annotated documents from raw articles and route them into partitions",
	Long: `Preprocess reads raw articles (JSON or HTML) from <input-folder>,
builds one offset-addressed annotated document per article, and writes each
through sequence-numbered partition sinks under <output-folder>.

<veracity-type> tags the output filenames and fills in the veracity label of
articles that do not carry one themselves ("true" or "false").

Example:
  stylo preprocess ./raw/fake ./corpus false
  stylo preprocess ./raw/real ./corpus true --workers 4`,
	Args: cobra.ExactArgs(3),
	RunE: runPreprocess,
}

func init() {
	rootCmd.AddCommand(preprocessCmd)

	preprocessCmd.Flags().IntVar(&preprocessWorkers, "workers", 0, "concurrent document builders (default: CPU count)")
	preprocessCmd.Flags().BoolVar(&noManifest, "no-manifest", false, "do not record the run in manifest.db")
}

func runPreprocess(cmd *cobra.Command, args []string) error {
	inputFolder, outputFolder, veracityType := args[0], args[1], args[2]
	logger := newLogger()

	cfg := model.DefaultConfig()
	if preprocessWorkers > 0 {
		cfg.Preprocess.Workers = preprocessWorkers
	}
	cfg.Output.Manifest = !noManifest

	articles, err := corpus.ReadArticles(inputFolder, veracityType)
	if err != nil {
		return err
	}
	logger.Info("read articles", "input", inputFolder, "count", len(articles))

	if err := os.MkdirAll(outputFolder, 0o755); err != nil {
		return fmt.Errorf("create output folder %s: %w", outputFolder, err)
	}

	var record corpus.RouteRecord
	if cfg.Output.Manifest {
		store, err := manifest.Open(filepath.Join(outputFolder, manifest.FileName))
		if err != nil {
			return err
		}
		defer store.Close()
		runID, err := store.BeginRun("preprocess", veracityType)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.FinishRun(runID); err != nil {
				logger.Warn("finish run", "error", err)
			}
		}()
		record = func(partition string, seq int, filename string, doc *model.AnnotatedDocument) error {
			return store.RecordDocument(runID, partition, seq, filename, doc.Meta.Veracity, doc.Meta.URI)
		}
	}

	router := corpus.NewRouter(outputFolder, veracityType, corpus.TrainingOnly(), record, logger)

	jobs := make([]worker.Job, len(articles))
	for i, article := range articles {
		jobs[i] = worker.RouteJob{Article: article, Router: router}
	}
	if errs := worker.NewPool(cfg.Preprocess.Workers).Run(context.Background(), jobs); len(errs) > 0 {
		return fmt.Errorf("preprocess failed: %w", errors.Join(errs...))
	}

	for partition, count := range router.Counts() {
		logger.Info("partition complete", "partition", partition, "documents", count)
	}
	return nil
}
