package corpus

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/net/html"

	"github.com/pwestermann/stylo/internal/model"
)

// ReadArticles loads every article file under dir, in stable path order.
// JSON files decode directly into the article record; HTML files are parsed
// structurally, recovering title, paragraph, quote and link spans from the
// markup. Articles with no veracity label of their own get defaultVeracity.
func ReadArticles(dir, defaultVeracity string) ([]*model.Article, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json", ".html", ".htm":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk articles %s: %w", dir, err)
	}
	sort.Strings(paths)

	articles := make([]*model.Article, 0, len(paths))
	for _, path := range paths {
		article, err := ReadArticle(path)
		if err != nil {
			return nil, err
		}
		if article.Veracity == "" {
			article.Veracity = defaultVeracity
		}
		articles = append(articles, article)
	}
	return articles, nil
}

// ReadArticle loads a single article file, dispatching on extension.
func ReadArticle(path string) (*model.Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read article %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		var article model.Article
		if err := json.Unmarshal(data, &article); err != nil {
			return nil, fmt.Errorf("decode article %s: %w", path, err)
		}
		return &article, nil
	case ".html", ".htm":
		article, err := ParseHTMLArticle(string(data))
		if err != nil {
			return nil, fmt.Errorf("parse article %s: %w", path, err)
		}
		if article.URI == "" {
			article.URI = "file://" + path
		}
		return article, nil
	default:
		return nil, fmt.Errorf("read article %s: unsupported extension", path)
	}
}

// ParseHTMLArticle extracts an article from HTML markup. The main text is
// rebuilt from <p> and <blockquote> content joined by blank lines, with
// paragraph/quote spans pointing into the rebuilt text and link spans around
// anchor text encountered inside those blocks.
func ParseHTMLArticle(markup string) (*model.Article, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	p := &htmlArticleParser{article: &model.Article{}}
	p.walk(root)
	p.article.MainText = p.text.String()
	return p.article, nil
}

type htmlArticleParser struct {
	article *model.Article
	text    strings.Builder
	inBlock bool // inside a <p> or <blockquote> subtree

	blockBegin   int  // text offset where the current block started
	pendingSpace bool // whitespace seen since the last written rune
}

func (p *htmlArticleParser) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "title":
			p.article.Title = strings.TrimSpace(textContent(n))
			return
		case "script", "style":
			return
		case "p":
			p.block(n, model.KindParagraph)
			return
		case "blockquote":
			p.block(n, model.KindQuote)
			return
		case "a":
			if p.inBlock {
				// Flush any pending separator first so it stays outside the
				// link span.
				if p.pendingSpace {
					p.text.WriteByte(' ')
					p.pendingSpace = false
				}
				begin := p.text.Len()
				p.children(n)
				p.article.Links = append(p.article.Links, model.Span{Begin: begin, End: p.text.Len()})
				return
			}
		}
	}
	if n.Type == html.TextNode && p.inBlock {
		p.writeText(n.Data)
		return
	}
	p.children(n)
}

// block captures one <p> or <blockquote> as a span over the rebuilt text.
// Blocks nest (<blockquote><p>…</p></blockquote> is common), so the
// enclosing block's state is saved and restored; only top-level blocks get
// the blank-line separator, nested ones separate with a single space.
func (p *htmlArticleParser) block(n *html.Node, kind model.AnnotationKind) {
	nested := p.inBlock
	prevBegin := p.blockBegin
	if nested {
		// Flush any pending separator first so it stays outside the
		// nested span.
		if p.pendingSpace {
			p.text.WriteByte(' ')
		}
	} else if p.text.Len() > 0 {
		p.text.WriteString("\n\n")
	}
	begin := p.text.Len()
	p.blockBegin = begin
	p.pendingSpace = false
	p.inBlock = true
	p.children(n)
	p.inBlock = nested
	p.blockBegin = prevBegin
	span := model.Span{Begin: begin, End: p.text.Len()}
	if span.Len() == 0 {
		return
	}
	switch kind {
	case model.KindQuote:
		p.article.Quotes = append(p.article.Quotes, span)
	default:
		p.article.Paragraphs = append(p.article.Paragraphs, span)
	}
}

func (p *htmlArticleParser) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c)
	}
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var rec func(*html.Node)
	rec = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			rec(c)
		}
	}
	rec(n)
	return sb.String()
}

// writeText appends text-node content, folding whitespace runs into single
// spaces so span offsets are stable against source formatting. Leading
// whitespace at the start of a block is dropped.
func (p *htmlArticleParser) writeText(s string) {
	for _, r := range s {
		if unicode.IsSpace(r) {
			p.pendingSpace = p.text.Len() > p.blockBegin
			continue
		}
		if p.pendingSpace {
			p.text.WriteByte(' ')
			p.pendingSpace = false
		}
		p.text.WriteRune(r)
	}
}
