package model

// Span marks a [Begin, End) character region. Spans attached to an Article
// are relative to the article's own main text; spans attached to an
// AnnotatedDocument are absolute offsets into the document buffer.
type Span struct {
	Begin int `json:"begin"`
	End   int `json:"end"`
}

// Len returns the number of characters the span covers.
func (s Span) Len() int {
	return s.End - s.Begin
}

// Article is one raw input record as read from the corpus: the text fields,
// the labels, and the structural spans the source format already knows about.
// Articles are never mutated after they are read.
type Article struct {
	Title       string `json:"title"`
	MainText    string `json:"main_text"`
	Author      string `json:"author,omitempty"`
	Portal      string `json:"portal,omitempty"`      // publishing site identifier
	Orientation string `json:"orientation,omitempty"` // political orientation label
	Veracity    string `json:"veracity,omitempty"`    // veracity label ("true", "false", ...)
	URI         string `json:"uri,omitempty"`

	Paragraphs []Span `json:"paragraphs,omitempty"`
	Quotes     []Span `json:"quotes,omitempty"`
	Links      []Span `json:"links,omitempty"`
}
