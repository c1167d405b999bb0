package model

// MetaDataTypeName names the record type the class attribute belongs to in
// exported feature files.
const MetaDataTypeName = "stylo.article.MetaData"

// AnnotationKind classifies an annotation layer over the document buffer.
type AnnotationKind string

const (
	KindTitle     AnnotationKind = "title"
	KindMainText  AnnotationKind = "main_text"
	KindParagraph AnnotationKind = "paragraph"
	KindQuote     AnnotationKind = "quote"
	KindLink      AnnotationKind = "link"

	// Added by the analysis engine, not by the document builder.
	KindToken    AnnotationKind = "token"
	KindSentence AnnotationKind = "sentence"
)

// Annotation is a typed [Begin, End) region over an AnnotatedDocument buffer.
// Annotations from different layers may overlap freely.
type Annotation struct {
	Kind  AnnotationKind `json:"kind"`
	Begin int            `json:"begin"`
	End   int            `json:"end"`
}

// MetaData is the whole-buffer metadata record of an annotated document.
// Begin/End always cover the full buffer; feature computation is bounded by
// this region rather than by the raw buffer length so that a future
// multi-segment layout stays a metadata change.
type MetaData struct {
	URI         string `json:"uri,omitempty"`
	Author      string `json:"author,omitempty"`
	Portal      string `json:"portal,omitempty"`
	Orientation string `json:"orientation,omitempty"`
	Veracity    string `json:"veracity,omitempty"`

	OffsetInSource int  `json:"offset_in_source"`
	DocumentSize   int  `json:"document_size"`
	LastSegment    bool `json:"last_segment"`

	Begin int `json:"begin"`
	End   int `json:"end"`
}

// AnnotatedDocument is the offset-addressed in-memory representation of one
// article: a single concatenated text buffer plus metadata and annotation
// layers expressed as offsets into that buffer. It is constructed once by the
// document builder and never mutated afterwards, except that the analysis
// engine appends token/sentence annotations in place.
type AnnotatedDocument struct {
	Text        string       `json:"text"`
	Language    string       `json:"language"`
	Meta        MetaData     `json:"meta"`
	Annotations []Annotation `json:"annotations"`
}

// Covered returns the buffer text the annotation spans.
func (d *AnnotatedDocument) Covered(a Annotation) string {
	return d.Text[a.Begin:a.End]
}

// ByKind returns all annotations of one kind in attachment order.
func (d *AnnotatedDocument) ByKind(kind AnnotationKind) []Annotation {
	var out []Annotation
	for _, a := range d.Annotations {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}

// KindInRegion returns annotations of one kind fully contained in [begin, end).
func (d *AnnotatedDocument) KindInRegion(kind AnnotationKind, begin, end int) []Annotation {
	var out []Annotation
	for _, a := range d.Annotations {
		if a.Kind == kind && a.Begin >= begin && a.End <= end {
			out = append(out, a)
		}
	}
	return out
}

// Add appends an annotation layer entry.
func (d *AnnotatedDocument) Add(kind AnnotationKind, begin, end int) {
	d.Annotations = append(d.Annotations, Annotation{Kind: kind, Begin: begin, End: end})
}
