package pipeline

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Highlight placeholders use Unicode Private Use Area characters.
// These are guaranteed to not conflict with any standard characters
// and will pass through Goldmark unchanged (no WithUnsafe needed).
// After markup conversion they become <mark> elements in the tree.
const (
	MarkStartPlaceholder = "\uE000" // U+E000: Private Use Area start
	MarkEndPlaceholder   = "\uE001" // U+E001: Private Use Area end
)

const byteOrderMark = "\uFEFF"

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress multiple blank lines to max 2
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// Highlight syntax ==text==
	highlightPattern = regexp.MustCompile(`==(.*?)==`)
)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CommonMarkPreprocessor applies transformations before CommonMark conversion.
type CommonMarkPreprocessor struct{}

// PreprocessMarkdown applies all transformations to prepare Markdown for conversion.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	// Check for cancellation before processing
	if ctx.Err() != nil {
		return content
	}

	content = strings.TrimPrefix(content, byteOrderMark)
	content = normalizeLineEndings(content)

	// YAML values are data, not Markdown.
	head, body := splitFrontmatter(content)
	body = convertHighlights(body)
	body = compressBlankLines(body)
	return head + body
}

// splitFrontmatter returns the leading fenced YAML block, closing fence and
// its newline included, and the rest of content. Without an opening fence on
// the first line head is empty; without a closing fence the block runs to
// the end of content, as the block parser reads it.
func splitFrontmatter(content string) (head, body string) {
	first, rest, _ := strings.Cut(content, "\n")
	if !isFence([]byte(first)) {
		return "", content
	}
	offset := len(first) + 1
	for rest != "" {
		line, next, found := strings.Cut(rest, "\n")
		offset += len(line)
		if found {
			offset++
		}
		if isFence([]byte(line)) {
			return content[:offset], content[offset:]
		}
		rest = next
	}
	return content, ""
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to 2 maximum.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// convertHighlights transforms ==text== to placeholder markers.
func convertHighlights(content string) string {
	return highlightPattern.ReplaceAllString(content, MarkStartPlaceholder+"$1"+MarkEndPlaceholder)
}

// restoreHighlights turns stray placeholders back into the literal syntax.
func restoreHighlights(s string) string {
	return strings.NewReplacer(MarkStartPlaceholder, "==", MarkEndPlaceholder, "==").Replace(s)
}

// ConvertMarkPlaceholders replaces placeholder pairs in text nodes with
// <mark> elements. Inside <pre> and <code>, and for pairs split across
// inline formatting, the original ==text== is restored instead.
func ConvertMarkPlaceholders(root *html.Node) {
	var walk func(n *html.Node, literal bool)
	walk = func(n *html.Node, literal bool) {
		for c := n.FirstChild; c != nil; {
			next := c.NextSibling
			switch c.Type {
			case html.TextNode:
				if strings.Contains(c.Data, MarkStartPlaceholder) || strings.Contains(c.Data, MarkEndPlaceholder) {
					if literal {
						c.Data = restoreHighlights(c.Data)
					} else {
						splitMarks(n, c)
					}
				}
			case html.ElementNode:
				walk(c, literal || c.DataAtom == atom.Pre || c.DataAtom == atom.Code)
			}
			c = next
		}
	}
	walk(root, false)
}

// splitMarks rewrites one text node into text and <mark> siblings.
func splitMarks(parent, text *html.Node) {
	s := text.Data
	for {
		start := strings.Index(s, MarkStartPlaceholder)
		if start < 0 {
			break
		}
		inner := start + len(MarkStartPlaceholder)
		end := strings.Index(s[inner:], MarkEndPlaceholder)
		if end < 0 {
			break
		}
		end += inner

		if start > 0 {
			parent.InsertBefore(Text(restoreHighlights(s[:start])), text)
		}
		parent.InsertBefore(Element("mark", Text(s[inner:end])), text)
		s = s[end+len(MarkEndPlaceholder):]
	}

	if s == "" {
		parent.RemoveChild(text)
		return
	}
	text.Data = restoreHighlights(s)
}
