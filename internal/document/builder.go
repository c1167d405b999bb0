// Package document converts raw articles into annotated documents: one
// concatenated text buffer per article with metadata and typed span layers
// addressed by absolute buffer offsets.
package document

import (
	"errors"
	"fmt"

	"github.com/pwestermann/stylo/internal/model"
)

// TitleSeparator joins title and main text in the document buffer.
const TitleSeparator = "\n\n"

// ErrSpanOutOfRange reports an article span that falls outside its declared
// source region. Such spans are rejected, never clamped.
var ErrSpanOutOfRange = errors.New("span out of range")

// Build converts one article into an annotated document. Pure construction,
// no I/O: the buffer is title + separator + main text, the metadata record
// covers the whole buffer, and every article-relative span is translated into
// buffer-absolute offsets.
func Build(article *model.Article) (*model.AnnotatedDocument, error) {
	text := article.Title + TitleSeparator + article.MainText
	textOffset := len(article.Title) + len(TitleSeparator)

	doc := &model.AnnotatedDocument{
		Text:     text,
		Language: "en",
		Meta: model.MetaData{
			URI:            article.URI,
			Author:         article.Author,
			Portal:         article.Portal,
			Orientation:    article.Orientation,
			Veracity:       article.Veracity,
			OffsetInSource: 0,
			DocumentSize:   len(text),
			LastSegment:    true, // one segment per article
			Begin:          0,
			End:            len(text),
		},
	}

	doc.Add(model.KindTitle, 0, len(article.Title))
	doc.Add(model.KindMainText, textOffset, len(text))

	// Paragraph, quote and link spans arrive relative to the article's main
	// text and shift by textOffset into buffer coordinates.
	layers := []struct {
		kind  model.AnnotationKind
		spans []model.Span
	}{
		{model.KindParagraph, article.Paragraphs},
		{model.KindQuote, article.Quotes},
		{model.KindLink, article.Links},
	}
	for _, layer := range layers {
		for i, span := range layer.spans {
			if span.Begin < 0 || span.End < span.Begin || span.End > len(article.MainText) {
				return nil, fmt.Errorf("%s span %d [%d,%d) exceeds main text length %d: %w",
					layer.kind, i, span.Begin, span.End, len(article.MainText), ErrSpanOutOfRange)
			}
			doc.Add(layer.kind, span.Begin+textOffset, span.End+textOffset)
		}
	}

	return doc, nil
}
