// Package corpus handles the on-disk corpus: reading raw articles, reading
// serialized annotated documents, and routing built documents into
// sequence-numbered partition directories.
package corpus

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/pwestermann/stylo/internal/model"
)

// Reader yields the serialized documents of one corpus directory, one at a
// time, in stable path order. A reader is lazy, finite and non-restartable:
// it is consumed by exactly one pipeline pass and then closed.
type Reader interface {
	// Next returns the next document, or io.EOF when the corpus is exhausted.
	Next() (*model.AnnotatedDocument, error)
	Close() error
}

// ReaderFactory produces a fresh Reader over a corpus root. Each pipeline
// pass must call the factory again; instances are never shared or reused.
type ReaderFactory func(root string) (Reader, error)

// DirectoryReader reads JSON-serialized annotated documents from a directory
// tree. Paths are collected up front so the document order is deterministic;
// decoding stays lazy.
type DirectoryReader struct {
	paths  []string
	next   int
	cache  *gocache.Cache // optional decoded-document cache, shared across passes
	closed bool
}

// DirectoryReaderFactory returns a ReaderFactory for JSON corpus directories.
// When cache is non-nil, decoded documents are stored in it keyed by path, so
// the second pass of an extraction run skips re-parsing. Cached documents are
// re-read as values, not shared pointers: each pass gets its own copy because
// the analysis engine annotates documents in place.
func DirectoryReaderFactory(recursive bool, cache *gocache.Cache) ReaderFactory {
	return func(root string) (Reader, error) {
		return NewDirectoryReader(root, recursive, cache)
	}
}

// NewDirectoryReader opens a reader over root. With recursive set, it
// descends into subdirectories.
func NewDirectoryReader(root string, recursive bool, cache *gocache.Cache) (*DirectoryReader, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("open corpus %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open corpus %s: not a directory", root)
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !recursive && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".json") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk corpus %s: %w", root, err)
	}
	sort.Strings(paths)

	return &DirectoryReader{paths: paths, cache: cache}, nil
}

// Len returns the number of documents the reader will yield in total.
func (r *DirectoryReader) Len() int {
	return len(r.paths)
}

// Next decodes and returns the next document, or io.EOF after the last one.
func (r *DirectoryReader) Next() (*model.AnnotatedDocument, error) {
	if r.closed {
		return nil, fmt.Errorf("read from closed corpus reader")
	}
	if r.next >= len(r.paths) {
		return nil, io.EOF
	}
	path := r.paths[r.next]
	r.next++

	if r.cache != nil {
		if cached, found := r.cache.Get(path); found {
			doc := detach(cached.(model.AnnotatedDocument))
			return &doc, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", path, err)
	}
	var doc model.AnnotatedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", path, err)
	}

	if r.cache != nil {
		r.cache.Set(path, detach(doc), gocache.DefaultExpiration)
	}
	return &doc, nil
}

// detach gives doc its own annotation slice. The analysis engine annotates
// documents in place, so the cached copy and the copies handed to each pass
// must not share a backing array.
func detach(doc model.AnnotatedDocument) model.AnnotatedDocument {
	doc.Annotations = append([]model.Annotation(nil), doc.Annotations...)
	return doc
}

// Close marks the reader exhausted. Further Next calls fail.
func (r *DirectoryReader) Close() error {
	r.closed = true
	r.paths = nil
	return nil
}

// NewDocumentCache returns the decoded-document cache used to share parsing
// work between the two passes of one extraction run.
func NewDocumentCache() *gocache.Cache {
	return gocache.New(30*time.Minute, time.Hour)
}
