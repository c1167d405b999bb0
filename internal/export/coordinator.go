package export

import (
	"log/slog"

	"github.com/pwestermann/stylo/internal/feature"
	"github.com/pwestermann/stylo/internal/model"
)

// Exporter coordinates the final step of a pipeline run: balance the dataset
// when it is a training set, then write the feature file. Balancer and writer
// are ports so tests can substitute deterministic fakes.
type Exporter struct {
	balancer Balancer
	writer   *ARFFWriter
	logger   *slog.Logger
}

// NewExporter wires a coordinator. A nil balancer defaults to the
// downsampler; a nil writer defaults to the fixed ARFF configuration.
func NewExporter(balancer Balancer, writer *ARFFWriter, logger *slog.Logger) *Exporter {
	if balancer == nil {
		balancer = Downsampler{}
	}
	if writer == nil {
		writer = NewARFFWriter("stylo")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{balancer: balancer, writer: writer, logger: logger}
}

// Export balances (training sets only) and writes the dataset. The balanced
// slices replace the originals wholesale; nothing is merged back.
func (x *Exporter) Export(values [][]float64, labels []string, isTrainingSet bool,
	target feature.TargetClass, dataDir, outputFile string, featureNames []string) error {

	if isTrainingSet {
		before := len(labels)
		values, labels = x.balancer.Balance(values, labels)
		x.logger.Info("balanced dataset", "before", before, "after", len(labels))
	}

	err := x.writer.Write(outputFile, values, labels,
		dataDir, model.MetaDataTypeName, target.ClassFeature(),
		target.ClassMapping(), featureNames)
	if err != nil {
		return err
	}
	x.logger.Info("wrote feature file", "path", outputFile, "rows", len(labels), "columns", len(featureNames)+1)
	return nil
}
