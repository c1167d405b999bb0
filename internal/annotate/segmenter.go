package annotate

import (
	"fmt"
	"unicode"

	"github.com/pwestermann/stylo/internal/model"
)

// Segmenter is the default analysis engine: it annotates tokens (maximal
// letter/digit runs) and sentences (terminator-delimited stretches) over the
// document buffer. All state is per call, so the single-cursor contract holds
// trivially.
type Segmenter struct {
	closed bool
}

// NewSegmenter returns a fresh segmentation engine.
func NewSegmenter() *Segmenter {
	return &Segmenter{}
}

// NewEngine is a Factory producing segmenters.
func NewEngine() (Engine, error) {
	return NewSegmenter(), nil
}

// Process appends token and sentence annotations to the document.
func (s *Segmenter) Process(doc *model.AnnotatedDocument) error {
	if s.closed {
		return fmt.Errorf("process on closed engine")
	}

	text := doc.Text
	tokenBegin := -1
	sentenceBegin := 0
	lastNonSpace := -1

	flushToken := func(end int) {
		if tokenBegin >= 0 {
			doc.Add(model.KindToken, tokenBegin, end)
			tokenBegin = -1
		}
	}
	flushSentence := func(end int) {
		// Whitespace-only stretches between terminators are not sentences.
		if end > sentenceBegin && lastNonSpace >= sentenceBegin {
			doc.Add(model.KindSentence, sentenceBegin, end)
		}
	}

	for i, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if tokenBegin < 0 {
				tokenBegin = i
			}
		} else {
			flushToken(i)
		}

		if unicode.IsSpace(r) {
			// Trim leading whitespace so sentence spans begin at text.
			if lastNonSpace < sentenceBegin {
				sentenceBegin = i + runeLen(r)
			}
		} else {
			lastNonSpace = i
		}
		if isSentenceTerminator(r) {
			flushSentence(i + runeLen(r))
			sentenceBegin = i + runeLen(r)
		}
	}
	flushToken(len(text))
	if lastNonSpace >= sentenceBegin {
		flushSentence(len(text))
	}
	return nil
}

// Close marks the engine unusable.
func (s *Segmenter) Close() error {
	s.closed = true
	return nil
}

func isSentenceTerminator(r rune) bool {
	switch r {
	case '.', '!', '?', '\n':
		return true
	}
	return false
}

func runeLen(r rune) int {
	if r < 0x80 {
		return 1
	}
	return len(string(r))
}
