package corpus

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/pwestermann/stylo/internal/model"
)

// writeCorpus routes one document per URI into root/training and returns the
// partition directory.
func writeCorpus(t *testing.T, root string, uris ...string) string {
	t.Helper()
	dir := filepath.Join(root, TrainingPartition)
	sink, err := NewSink(dir, "true", nil)
	if err != nil {
		t.Fatalf("NewSink: %v", err)
	}
	for _, uri := range uris {
		if _, _, err := sink.Write(testDoc(uri)); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	return dir
}

func TestDirectoryReader_YieldsAllInOrder(t *testing.T) {
	dir := writeCorpus(t, t.TempDir(), "u0", "u1", "u2")

	reader, err := NewDirectoryReader(dir, true, nil)
	if err != nil {
		t.Fatalf("NewDirectoryReader: %v", err)
	}
	defer reader.Close()

	if reader.Len() != 3 {
		t.Fatalf("Len = %d, want 3", reader.Len())
	}
	var uris []string
	for {
		doc, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		uris = append(uris, doc.Meta.URI)
	}
	// Sink sequence numbers sort lexicographically, so corpus order holds.
	want := []string{"u0", "u1", "u2"}
	for i := range want {
		if uris[i] != want[i] {
			t.Errorf("document %d = %q, want %q", i, uris[i], want[i])
		}
	}
}

func TestDirectoryReader_NotRestartable(t *testing.T) {
	dir := writeCorpus(t, t.TempDir(), "u0")
	reader, err := NewDirectoryReader(dir, true, nil)
	if err != nil {
		t.Fatalf("NewDirectoryReader: %v", err)
	}
	if err := reader.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := reader.Next(); err == nil || errors.Is(err, io.EOF) {
		t.Fatalf("expected error from closed reader, got %v", err)
	}
}

func TestDirectoryReader_MissingDirectory(t *testing.T) {
	if _, err := NewDirectoryReader(filepath.Join(t.TempDir(), "nope"), true, nil); err == nil {
		t.Fatal("expected error for missing corpus directory")
	}
}

func TestDirectoryReader_CachedDocumentsAreCopies(t *testing.T) {
	dir := filepath.Join(t.TempDir(), TrainingPartition)
	sink, err := NewSink(dir, "true", nil)
	if err != nil {
		t.Fatalf("NewSink: %v", err)
	}
	doc := testDoc("u0")
	doc.Add(model.KindTitle, 0, 1)
	if _, _, err := sink.Write(doc); err != nil {
		t.Fatalf("Write: %v", err)
	}
	cache := NewDocumentCache()

	first, err := NewDirectoryReader(dir, true, cache)
	if err != nil {
		t.Fatalf("NewDirectoryReader: %v", err)
	}
	doc1, err := first.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	// Simulate in-place annotation by the first pass: appends and mutation
	// of existing annotations must both stay invisible to the next pass.
	doc1.Add(model.KindToken, 0, 1)
	doc1.Annotations[0].End = 99
	first.Close()

	second, err := NewDirectoryReader(dir, true, cache)
	if err != nil {
		t.Fatalf("NewDirectoryReader: %v", err)
	}
	defer second.Close()
	doc2, err := second.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if len(doc2.ByKind(model.KindToken)) != 0 {
		t.Error("annotations from the first pass leaked into the second pass")
	}
	if titles := doc2.ByKind(model.KindTitle); len(titles) != 1 || titles[0].End != 1 {
		t.Errorf("mutation of a shared annotation leaked into the second pass: %+v", titles)
	}
	if doc2.Meta.URI != "u0" {
		t.Errorf("cached document URI = %q", doc2.Meta.URI)
	}
}
