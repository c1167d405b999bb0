package feature

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pwestermann/stylo/internal/model"
)

// Name prefixes distinguishing the two feature families in the final list.
const (
	tokenPrefix = "token="
	stylePrefix = "style="
)

// The fixed style features, in output order.
var styleNames = []string{
	stylePrefix + "avg_sentence_length",
	stylePrefix + "avg_word_length",
	stylePrefix + "type_token_ratio",
	stylePrefix + "uppercase_ratio",
	stylePrefix + "quote_density",
}

// TopicStyle is the default feature set: a corpus-frequency-ranked unigram
// vocabulary (topic) plus fixed stylometric measurements (style). Candidate
// discovery counts token document frequencies across pass 1; determination
// ranks and truncates them to the configured vocabulary size. Computation
// needs no corpus state beyond the finalized name list — token values are
// relative frequencies and style values scale against the normalization
// table, which is what keeps the two passes mutually consistent.
type TopicStyle struct {
	cfg  *Config
	norm *Normalization

	// pass 1 state
	docFreq map[string]int
	docs    int

	// pass 2 state
	names  []string
	tokens []string // vocabulary, in list order
	styles []string // style names included in the list, in list order
}

// NewTopicStyle returns an uninitialized topic-and-style feature set.
func NewTopicStyle() *TopicStyle {
	return &TopicStyle{}
}

// NewSet is the pipeline factory for the default feature set.
func NewSet() Set {
	return NewTopicStyle()
}

// InitializeFeatureDetermination prepares pass 1 state.
func (t *TopicStyle) InitializeFeatureDetermination(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("topicstyle: nil feature config")
	}
	t.cfg = cfg
	t.docFreq = make(map[string]int)
	t.docs = 0
	return nil
}

// UpdateCandidateFeatures counts each region token once per document.
func (t *TopicStyle) UpdateCandidateFeatures(doc *model.AnnotatedDocument, begin, end int) {
	t.docs++
	seen := make(map[string]bool)
	for _, tok := range t.regionTokens(doc, begin, end) {
		if !seen[tok] {
			seen[tok] = true
			t.docFreq[tok]++
		}
	}
}

// DetermineFeatures finalizes the ordered feature name list: vocabulary
// tokens ranked by document frequency (ties alphabetical), truncated to the
// configured size, followed by the style features when enabled.
func (t *TopicStyle) DetermineFeatures(cfg *Config, norm *Normalization) ([]string, error) {
	if t.docFreq == nil {
		return nil, fmt.Errorf("topicstyle: determination not initialized")
	}
	if norm == nil {
		return nil, fmt.Errorf("topicstyle: nil normalization config")
	}

	type entry struct {
		token string
		freq  int
	}
	entries := make([]entry, 0, len(t.docFreq))
	for tok, freq := range t.docFreq {
		if freq >= cfg.MinDocFreq {
			entries = append(entries, entry{tok, freq})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].freq != entries[j].freq {
			return entries[i].freq > entries[j].freq
		}
		return entries[i].token < entries[j].token
	})
	if len(entries) > cfg.VocabularySize {
		entries = entries[:cfg.VocabularySize]
	}

	names := make([]string, 0, len(entries)+len(styleNames))
	for _, e := range entries {
		names = append(names, tokenPrefix+e.token)
	}
	if cfg.StyleFeatures {
		names = append(names, styleNames...)
	}
	return names, nil
}

// InitializeFeatureComputation prepares pass 2 state from a finalized list.
func (t *TopicStyle) InitializeFeatureComputation(names []string, cfg *Config, norm *Normalization) error {
	if len(names) == 0 {
		return fmt.Errorf("topicstyle: empty feature name list")
	}
	if cfg == nil || norm == nil {
		return fmt.Errorf("topicstyle: nil configuration table")
	}
	t.cfg = cfg
	t.norm = norm
	t.names = names
	t.tokens = t.tokens[:0]
	t.styles = t.styles[:0]
	for _, name := range names {
		switch {
		case strings.HasPrefix(name, tokenPrefix):
			t.tokens = append(t.tokens, strings.TrimPrefix(name, tokenPrefix))
		case strings.HasPrefix(name, stylePrefix):
			t.styles = append(t.styles, name)
		default:
			return fmt.Errorf("topicstyle: unrecognized feature name %q", name)
		}
	}
	return nil
}

// ComputeNormalizedFeatureValues emits one value per initialized name:
// relative token frequencies within the region, then scaled style values.
func (t *TopicStyle) ComputeNormalizedFeatureValues(doc *model.AnnotatedDocument, begin, end int) []float64 {
	toks := t.regionTokens(doc, begin, end)
	counts := make(map[string]int, len(toks))
	for _, tok := range toks {
		counts[tok]++
	}

	values := make([]float64, 0, len(t.names))
	for _, tok := range t.tokens {
		var v float64
		if len(toks) > 0 {
			v = float64(counts[tok]) / float64(len(toks))
		}
		values = append(values, v)
	}
	if len(t.styles) > 0 {
		raw := t.styleValues(doc, begin, end)
		for _, name := range t.styles {
			values = append(values, t.norm.Normalize(name, raw[name]))
		}
	}
	return values
}

// regionTokens returns the region's token texts after the configured case
// folding and length filter. Discovery and computation share this path so a
// token observed in pass 1 is the same token counted in pass 2.
func (t *TopicStyle) regionTokens(doc *model.AnnotatedDocument, begin, end int) []string {
	anns := doc.KindInRegion(model.KindToken, begin, end)
	out := make([]string, 0, len(anns))
	for _, a := range anns {
		tok := doc.Covered(a)
		if utf8.RuneCountInString(tok) < t.cfg.MinTokenLength {
			continue
		}
		if t.cfg.Lowercase {
			tok = strings.ToLower(tok)
		}
		out = append(out, tok)
	}
	return out
}

// styleValues computes the raw stylometric measurements for a region.
func (t *TopicStyle) styleValues(doc *model.AnnotatedDocument, begin, end int) map[string]float64 {
	tokens := doc.KindInRegion(model.KindToken, begin, end)
	sentences := doc.KindInRegion(model.KindSentence, begin, end)
	quotes := doc.KindInRegion(model.KindQuote, begin, end)

	var tokenChars, upper int
	types := make(map[string]bool, len(tokens))
	for _, a := range tokens {
		text := doc.Covered(a)
		tokenChars += utf8.RuneCountInString(text)
		if r, _ := utf8.DecodeRuneInString(text); unicode.IsUpper(r) {
			upper++
		}
		types[strings.ToLower(text)] = true
	}

	var quoted int
	for _, q := range quotes {
		quoted += q.End - q.Begin
	}

	raw := map[string]float64{}
	if len(sentences) > 0 {
		raw[stylePrefix+"avg_sentence_length"] = float64(len(tokens)) / float64(len(sentences))
	}
	if len(tokens) > 0 {
		raw[stylePrefix+"avg_word_length"] = float64(tokenChars) / float64(len(tokens))
		raw[stylePrefix+"type_token_ratio"] = float64(len(types)) / float64(len(tokens))
		raw[stylePrefix+"uppercase_ratio"] = float64(upper) / float64(len(tokens))
	}
	if end > begin {
		raw[stylePrefix+"quote_density"] = float64(quoted) / float64(end-begin)
	}
	return raw
}
