package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pwestermann/stylo/internal/model"
)

func TestParseHTMLArticle(t *testing.T) {
	markup := `<html><head><title>A headline</title></head><body>
	<p>First paragraph with a <a href="http://x">link inside</a> it.</p>
	<blockquote>Someone said this.</blockquote>
	<p>Second   paragraph
	with folded whitespace.</p>
	</body></html>`

	article, err := ParseHTMLArticle(markup)
	if err != nil {
		t.Fatalf("ParseHTMLArticle: %v", err)
	}

	if article.Title != "A headline" {
		t.Errorf("title = %q", article.Title)
	}
	if len(article.Paragraphs) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d: %+v", len(article.Paragraphs), article.Paragraphs)
	}
	if len(article.Quotes) != 1 {
		t.Fatalf("expected 1 quote, got %d", len(article.Quotes))
	}
	if len(article.Links) != 1 {
		t.Fatalf("expected 1 link, got %d", len(article.Links))
	}

	text := article.MainText
	spanText := func(s model.Span) string { return text[s.Begin:s.End] }

	if got := spanText(article.Paragraphs[0]); got != "First paragraph with a link inside it." {
		t.Errorf("paragraph 0 = %q", got)
	}
	if got := spanText(article.Quotes[0]); got != "Someone said this." {
		t.Errorf("quote = %q", got)
	}
	if got := spanText(article.Links[0]); got != "link inside" {
		t.Errorf("link = %q", got)
	}
	if got := spanText(article.Paragraphs[1]); got != "Second paragraph with folded whitespace." {
		t.Errorf("paragraph 1 = %q", got)
	}

	// All spans stay within the rebuilt main text.
	for _, spans := range [][]model.Span{article.Paragraphs, article.Quotes, article.Links} {
		for _, s := range spans {
			if s.Begin < 0 || s.End < s.Begin || s.End > len(text) {
				t.Errorf("span %+v out of bounds [0,%d)", s, len(text))
			}
		}
	}
}

func TestParseHTMLArticle_NestedBlocks(t *testing.T) {
	markup := `<html><body>
	<blockquote>intro words <p>inner para</p> outro words</blockquote>
	<p>next paragraph</p>
	</body></html>`

	article, err := ParseHTMLArticle(markup)
	if err != nil {
		t.Fatalf("ParseHTMLArticle: %v", err)
	}

	text := article.MainText
	spanText := func(s model.Span) string { return text[s.Begin:s.End] }

	// Text around the nested paragraph survives, and the blank-line separator
	// only divides top-level blocks.
	if want := "intro words inner para outro words\n\nnext paragraph"; text != want {
		t.Fatalf("main text = %q, want %q", text, want)
	}
	if len(article.Quotes) != 1 {
		t.Fatalf("expected 1 quote, got %d: %+v", len(article.Quotes), article.Quotes)
	}
	if got := spanText(article.Quotes[0]); got != "intro words inner para outro words" {
		t.Errorf("quote = %q", got)
	}
	if len(article.Paragraphs) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d: %+v", len(article.Paragraphs), article.Paragraphs)
	}
	if got := spanText(article.Paragraphs[0]); got != "inner para" {
		t.Errorf("nested paragraph = %q", got)
	}
	if got := spanText(article.Paragraphs[1]); got != "next paragraph" {
		t.Errorf("paragraph 1 = %q", got)
	}
}

func TestReadArticles(t *testing.T) {
	dir := t.TempDir()

	jsonArticle := `{"title":"J","main_text":"json body","portal":"p1","veracity":"true"}`
	if err := os.WriteFile(filepath.Join(dir, "a.json"), []byte(jsonArticle), 0o644); err != nil {
		t.Fatal(err)
	}
	htmlArticle := `<html><head><title>H</title></head><body><p>html body</p></body></html>`
	if err := os.WriteFile(filepath.Join(dir, "b.html"), []byte(htmlArticle), 0o644); err != nil {
		t.Fatal(err)
	}
	// Files with other extensions are ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("irrelevant"), 0o644); err != nil {
		t.Fatal(err)
	}

	articles, err := ReadArticles(dir, "false")
	if err != nil {
		t.Fatalf("ReadArticles: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}

	// Path order: a.json before b.html.
	if articles[0].Title != "J" || articles[1].Title != "H" {
		t.Errorf("titles = %q, %q", articles[0].Title, articles[1].Title)
	}
	// JSON article keeps its own veracity; the HTML one gets the default.
	if articles[0].Veracity != "true" {
		t.Errorf("json veracity = %q, want %q", articles[0].Veracity, "true")
	}
	if articles[1].Veracity != "false" {
		t.Errorf("html veracity = %q, want %q", articles[1].Veracity, "false")
	}
}

func TestReadArticle_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.xml")
	if err := os.WriteFile(path, []byte("<a/>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadArticle(path); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}
