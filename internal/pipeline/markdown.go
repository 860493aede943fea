package pipeline

import (
	"bytes"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
)

// DefaultHighlightStyle is the chroma style used for fenced code blocks.
const DefaultHighlightStyle = "github"

// newMarkdown configures goldmark for page rendering.
// Highlighting emits CSS classes; the matching rules are generated by the
// stylesheet compiler so no inline styles reach the page.
func newMarkdown(style string) goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
			Frontmatter,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
}

// ParseMarkdown parses file.Source into file.Markdown.
func (p *Processor) ParseMarkdown(file *File) error {
	file.Markdown = p.md.Parser().Parse(text.NewReader(file.Source))
	return nil
}

// renderMarkdown renders the semantic tree to an HTML fragment.
func (p *Processor) renderMarkdown(file *File) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.md.Renderer().Render(&buf, file.Source, file.Markdown); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return buf.Bytes(), nil
}
