package feature

import (
	"math"
	"strings"
	"testing"

	"github.com/pwestermann/stylo/internal/annotate"
	"github.com/pwestermann/stylo/internal/model"
)

func annotatedDoc(t *testing.T, text string) *model.AnnotatedDocument {
	t.Helper()
	doc := &model.AnnotatedDocument{
		Text: text,
		Meta: model.MetaData{End: len(text), DocumentSize: len(text), LastSegment: true},
	}
	engine := annotate.NewSegmenter()
	if err := engine.Process(doc); err != nil {
		t.Fatalf("annotate: %v", err)
	}
	return doc
}

func testTables(vocab int) (*Config, *Normalization) {
	cfg := &Config{
		VocabularySize: vocab,
		Lowercase:      true,
		MinTokenLength: 2,
		MinDocFreq:     1,
		StyleFeatures:  true,
	}
	norm := &Normalization{
		Clamp: true,
		Styles: map[string]Range{
			"style=avg_sentence_length": {Min: 0, Max: 60},
			"style=avg_word_length":     {Min: 0, Max: 15},
			"style=type_token_ratio":    {Min: 0, Max: 1},
			"style=uppercase_ratio":     {Min: 0, Max: 1},
			"style=quote_density":       {Min: 0, Max: 1},
		},
	}
	return cfg, norm
}

func TestTopicStyle_DeterminationRanksByDocumentFrequency(t *testing.T) {
	cfg, norm := testTables(2)

	set := NewTopicStyle()
	if err := set.InitializeFeatureDetermination(cfg); err != nil {
		t.Fatalf("InitializeFeatureDetermination: %v", err)
	}

	docs := []string{
		"apple banana apple",
		"apple cherry",
		"apple banana",
	}
	for _, text := range docs {
		doc := annotatedDoc(t, text)
		set.UpdateCandidateFeatures(doc, doc.Meta.Begin, doc.Meta.End)
	}

	names, err := set.DetermineFeatures(cfg, norm)
	if err != nil {
		t.Fatalf("DetermineFeatures: %v", err)
	}

	// apple (df 3) and banana (df 2) survive the vocabulary cut; cherry (df 1)
	// does not. Style features follow the vocabulary.
	wantTokens := []string{"token=apple", "token=banana"}
	if len(names) != len(wantTokens)+len(styleNames) {
		t.Fatalf("names = %v", names)
	}
	for i, want := range wantTokens {
		if names[i] != want {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want)
		}
	}
	for i, want := range styleNames {
		if names[len(wantTokens)+i] != want {
			t.Errorf("style name %d = %q, want %q", i, names[len(wantTokens)+i], want)
		}
	}
}

func TestTopicStyle_MinDocFreqFilter(t *testing.T) {
	cfg, norm := testTables(10)
	cfg.MinDocFreq = 2

	set := NewTopicStyle()
	if err := set.InitializeFeatureDetermination(cfg); err != nil {
		t.Fatal(err)
	}
	for _, text := range []string{"common rare", "common other"} {
		doc := annotatedDoc(t, text)
		set.UpdateCandidateFeatures(doc, doc.Meta.Begin, doc.Meta.End)
	}
	names, err := set.DetermineFeatures(cfg, norm)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range names {
		if name == "token=rare" || name == "token=other" {
			t.Errorf("singleton token survived the document-frequency filter: %s", name)
		}
	}
}

func TestTopicStyle_ComputationAlignsToNameList(t *testing.T) {
	cfg, norm := testTables(3)
	names := []string{"token=alpha", "token=beta", "style=type_token_ratio"}

	set := NewTopicStyle()
	if err := set.InitializeFeatureComputation(names, cfg, norm); err != nil {
		t.Fatalf("InitializeFeatureComputation: %v", err)
	}

	doc := annotatedDoc(t, "alpha alpha beta gamma")
	values := set.ComputeNormalizedFeatureValues(doc, doc.Meta.Begin, doc.Meta.End)

	if len(values) != len(names) {
		t.Fatalf("got %d values for %d names", len(values), len(names))
	}
	// 4 tokens total: alpha 2/4, beta 1/4.
	if math.Abs(values[0]-0.5) > 1e-9 {
		t.Errorf("alpha frequency = %g, want 0.5", values[0])
	}
	if math.Abs(values[1]-0.25) > 1e-9 {
		t.Errorf("beta frequency = %g, want 0.25", values[1])
	}
	// 3 distinct of 4 tokens.
	if math.Abs(values[2]-0.75) > 1e-9 {
		t.Errorf("type/token ratio = %g, want 0.75", values[2])
	}
}

func TestTopicStyle_ValuesStayNormalized(t *testing.T) {
	cfg, norm := testTables(5)

	set := NewTopicStyle()
	if err := set.InitializeFeatureDetermination(cfg); err != nil {
		t.Fatal(err)
	}
	text := "The quick brown fox. The lazy dog sleeps! A very long sentence follows with many more words than before."
	doc := annotatedDoc(t, text)
	set.UpdateCandidateFeatures(doc, doc.Meta.Begin, doc.Meta.End)
	names, err := set.DetermineFeatures(cfg, norm)
	if err != nil {
		t.Fatal(err)
	}

	compute := NewTopicStyle()
	if err := compute.InitializeFeatureComputation(names, cfg, norm); err != nil {
		t.Fatal(err)
	}
	values := compute.ComputeNormalizedFeatureValues(doc, doc.Meta.Begin, doc.Meta.End)
	for i, v := range values {
		if v < 0 || v > 1 {
			t.Errorf("value %d (%s) = %g outside [0,1]", i, names[i], v)
		}
	}
}

func TestTopicStyle_RejectsForeignNames(t *testing.T) {
	cfg, norm := testTables(3)
	set := NewTopicStyle()
	err := set.InitializeFeatureComputation([]string{"mystery"}, cfg, norm)
	if err == nil || !strings.Contains(err.Error(), "unrecognized") {
		t.Fatalf("expected unrecognized-name error, got %v", err)
	}
}
