package pipeline

import (
	"bytes"
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// bodyContext parses fragments as if they appeared inside <body>.
var bodyContext = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}

// ConvertMarkup renders the semantic tree and parses the result into
// file.Tree, a document node holding the content as children.
func (p *Processor) ConvertMarkup(file *File) error {
	fragment, err := p.renderMarkdown(file)
	if err != nil {
		return err
	}

	nodes, err := html.ParseFragment(bytes.NewReader(fragment), bodyContext)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	ConvertMarkPlaceholders(root)

	file.Tree = root
	return nil
}

// Serialize renders file.Tree into file.HTML.
func Serialize(file *File) error {
	if file.Tree == nil {
		return fmt.Errorf("%w: no document tree", ErrHTMLConversion)
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, file.Tree); err != nil {
		return fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	file.HTML = buf.String()
	return nil
}
