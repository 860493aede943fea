package pipeline

import (
	"bytes"
	"fmt"

	"github.com/alnah/go-staticpage/internal/yamlutil"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindFrontmatter is the node kind of a leading YAML block.
var KindFrontmatter = ast.NewNodeKind("Frontmatter")

// FrontmatterBlock holds the raw lines of a `---` fenced YAML block.
// It only ever appears as the first child of the document.
type FrontmatterBlock struct {
	ast.BaseBlock

	// Closed is false when the source ended before the closing fence.
	Closed bool
}

// Kind implements ast.Node.
func (n *FrontmatterBlock) Kind() ast.NodeKind { return KindFrontmatter }

// IsRaw implements ast.Node.
func (n *FrontmatterBlock) IsRaw() bool { return true }

// Dump implements ast.Node.
func (n *FrontmatterBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// Value returns the raw YAML text between the fences.
func (n *FrontmatterBlock) Value(source []byte) []byte {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.Bytes()
}

// frontmatterParser opens a block only on the very first line of the source.
type frontmatterParser struct{}

func isFence(line []byte) bool {
	return bytes.Equal(util.TrimRightSpace(line), []byte("---"))
}

func (p *frontmatterParser) Trigger() []byte {
	return []byte{'-'}
}

func (p *frontmatterParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	if lineNum, _ := reader.Position(); lineNum != 0 {
		return nil, parser.NoChildren
	}
	line, _ := reader.PeekLine()
	if !isFence(line) {
		return nil, parser.NoChildren
	}
	return &FrontmatterBlock{}, parser.NoChildren
}

func (p *frontmatterParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, segment := reader.PeekLine()
	if isFence(line) {
		reader.Advance(segment.Len())
		node.(*FrontmatterBlock).Closed = true
		return parser.Close
	}
	node.Lines().Append(segment)
	return parser.Continue | parser.NoChildren
}

func (p *frontmatterParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (p *frontmatterParser) CanInterruptParagraph() bool { return false }

func (p *frontmatterParser) CanAcceptIndentedLine() bool { return false }

// frontmatterExtension registers the block parser ahead of thematic breaks
// and setext headings, which would otherwise claim the `---` fence.
type frontmatterExtension struct{}

func (e *frontmatterExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithBlockParsers(
		util.Prioritized(&frontmatterParser{}, 0),
	))
}

// Frontmatter keeps the leading YAML block as a FrontmatterBlock node.
var Frontmatter goldmark.Extender = &frontmatterExtension{}

// ExtractFrontmatter validates the document's leading YAML block, stores the
// parsed mapping on file.Matter, and removes the block from the tree.
func ExtractFrontmatter(file *File) error {
	doc := file.Markdown
	if doc == nil {
		return ErrMissingFrontmatter
	}

	block, ok := doc.FirstChild().(*FrontmatterBlock)
	if !ok {
		return ErrMissingFrontmatter
	}
	if !block.Closed {
		return fmt.Errorf("%w: closing fence not found", ErrMissingFrontmatter)
	}

	raw := block.Value(file.Source)
	matter := Matter{}
	if len(bytes.TrimSpace(raw)) > 0 {
		parsed, err := yamlutil.UnmarshalMapping(raw)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
		matter = Matter(parsed)
	}

	if _, ok := matter[KeyTitle].(string); !ok {
		return ErrMissingTitle
	}

	doc.RemoveChild(doc, block)
	file.Matter = matter
	return nil
}
