package corpus

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/pwestermann/stylo/internal/document"
	"github.com/pwestermann/stylo/internal/model"
)

// TrainingPartition is the partition every document routes to by default.
const TrainingPartition = "training"

// Strategy decides which partitions an article belongs to. Returning an
// empty slice drops the article from routing; returning several names writes
// the document to each of them.
type Strategy func(article *model.Article) []string

// TrainingOnly routes every article to the training partition.
func TrainingOnly() Strategy {
	return func(*model.Article) []string {
		return []string{TrainingPartition}
	}
}

// PortalFolds routes by portal membership: an article lands in every
// partition whose portal set contains its portal. An empty fold table routes
// nothing, which makes the strategy no-op-compatible with TrainingOnly when
// fold routing is not wanted.
func PortalFolds(folds map[string][]string) Strategy {
	sets := make(map[string]map[string]bool, len(folds))
	for partition, portals := range folds {
		set := make(map[string]bool, len(portals))
		for _, p := range portals {
			set[p] = true
		}
		sets[partition] = set
	}
	return func(article *model.Article) []string {
		var out []string
		for partition, set := range sets {
			if set[article.Portal] {
				out = append(out, partition)
			}
		}
		return out
	}
}

// RouteRecord is the provenance callback invoked once per routed document.
type RouteRecord func(partition string, seq int, filename string, doc *model.AnnotatedDocument) error

// Router builds annotated documents from articles and writes them through
// partition sinks. Sinks are created lazily per partition name; the router
// itself is safe for concurrent Accept calls because sink state is the only
// shared-mutable piece and each sink serializes internally.
type Router struct {
	outputRoot string
	label      string
	strategy   Strategy
	record     RouteRecord
	logger     *slog.Logger

	mu    sync.Mutex
	sinks map[string]*Sink
}

// NewRouter returns a router writing partitions under outputRoot, tagging
// filenames with the given veracity-type label. record may be nil.
func NewRouter(outputRoot, label string, strategy Strategy, record RouteRecord, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		outputRoot: outputRoot,
		label:      label,
		strategy:   strategy,
		record:     record,
		logger:     logger,
		sinks:      make(map[string]*Sink),
	}
}

// Accept builds the article's annotated document and writes it to every
// partition the strategy selects. Zero selected partitions is a valid
// outcome, not an error.
func (r *Router) Accept(article *model.Article) error {
	doc, err := document.Build(article)
	if err != nil {
		return fmt.Errorf("build document %s: %w", article.URI, err)
	}

	for _, partition := range r.strategy(article) {
		sink, err := r.sink(partition)
		if err != nil {
			return err
		}
		seq, name, err := sink.Write(doc)
		if err != nil {
			return err
		}
		if r.record != nil {
			if err := r.record(partition, seq, name, doc); err != nil {
				return fmt.Errorf("record routed document %s: %w", name, err)
			}
		}
	}
	return nil
}

// Counts returns per-partition document counts.
func (r *Router) Counts() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]int, len(r.sinks))
	for name, sink := range r.sinks {
		out[name] = sink.Count()
	}
	return out
}

func (r *Router) sink(partition string) (*Sink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sink, ok := r.sinks[partition]; ok {
		return sink, nil
	}
	sink, err := NewSink(filepath.Join(r.outputRoot, partition), r.label, r.logger)
	if err != nil {
		return nil, err
	}
	r.sinks[partition] = sink
	return sink, nil
}
