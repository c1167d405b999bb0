package corpus

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/pwestermann/stylo/internal/model"
)

// Sink is an append-only writer for one output partition. Every accepted
// document gets the next zero-padded sequence number; counter increment and
// file creation happen inside one critical section so concurrent producers
// never share a number.
type Sink struct {
	mu     sync.Mutex
	dir    string
	label  string // veracity-type tag embedded in filenames
	count  int
	logger *slog.Logger
}

// NewSink creates the partition directory and returns a sink writing into it.
func NewSink(dir, label string, logger *slog.Logger) (*Sink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create partition directory %s: %w", dir, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sink{dir: dir, label: label, logger: logger}, nil
}

// Dir returns the partition directory the sink writes into.
func (s *Sink) Dir() string {
	return s.dir
}

// Write serializes the document under the sink's next sequence number and
// returns the assigned sequence and filename.
func (s *Sink) Write(doc *model.AnnotatedDocument) (int, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq := s.count
	name := fmt.Sprintf("%010d-%s-%d.json", seq, s.label, seq)
	path := filepath.Join(s.dir, name)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return 0, "", fmt.Errorf("encode document %s: %w", name, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, "", fmt.Errorf("write document %s: %w", path, err)
	}

	s.count++
	s.logger.Debug("wrote document", "path", path)
	return seq, name, nil
}

// Count returns how many documents the sink has accepted so far.
func (s *Sink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}
