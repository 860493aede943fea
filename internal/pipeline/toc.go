package pipeline

import (
	"bytes"
	"regexp"

	"github.com/yuin/goldmark/ast"
)

// MaxTOCDepth is the deepest heading level listed in a table of contents.
const MaxTOCDepth = 6

var tocHeadingPattern = regexp.MustCompile(`(?i)^(?:(?:table[ -]of[ -])?contents?|toc)$`)

type tocEntry struct {
	depth int
	id    []byte
	text  []byte
}

// GenerateTOC fills the section under the first "Contents" (or "Table of
// contents", "TOC") heading with a nested list of links to every heading
// that follows it. The section's previous content, up to the next heading
// of the same or a higher rank, is replaced. Documents without such a
// heading, or without headings after it, are left unchanged.
func GenerateTOC(file *File) {
	doc := file.Markdown
	if doc == nil {
		return
	}

	anchor := findTOCHeading(doc, file.Source)
	if anchor == nil {
		return
	}

	// Section boundary: everything up to the next heading of equal or lower depth.
	var section []ast.Node
	for n := anchor.NextSibling(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok && h.Level <= anchor.Level {
			break
		}
		section = append(section, n)
	}

	entries := collectTOCEntries(anchor, file.Source)
	if len(entries) == 0 {
		return
	}

	for _, n := range section {
		doc.RemoveChild(doc, n)
	}
	doc.InsertAfter(doc, anchor, buildTOCList(entries))
}

func findTOCHeading(doc ast.Node, source []byte) *ast.Heading {
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		if tocHeadingPattern.Match(bytes.TrimSpace(nodeText(h, source))) {
			return h
		}
	}
	return nil
}

// collectTOCEntries walks every node after anchor and keeps headings that
// carry an id.
func collectTOCEntries(anchor *ast.Heading, source []byte) []tocEntry {
	var entries []tocEntry
	for n := anchor.NextSibling(); n != nil; n = n.NextSibling() {
		_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
			if !entering {
				return ast.WalkContinue, nil
			}
			h, ok := node.(*ast.Heading)
			if !ok {
				return ast.WalkContinue, nil
			}
			if h.Level <= MaxTOCDepth {
				if id := headingID(h); len(id) > 0 {
					entries = append(entries, tocEntry{depth: h.Level, id: id, text: nodeText(h, source)})
				}
			}
			return ast.WalkSkipChildren, nil
		})
	}
	return entries
}

func headingID(h *ast.Heading) []byte {
	v, ok := h.AttributeString("id")
	if !ok {
		return nil
	}
	switch id := v.(type) {
	case []byte:
		return id
	case string:
		return []byte(id)
	}
	return nil
}

// nodeText concatenates the literal text below n.
func nodeText(n ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		default:
			buf.Write(nodeText(c, source))
		}
	}
	return buf.Bytes()
}

// buildTOCList nests entries into tight bullet lists.
func buildTOCList(entries []tocEntry) *ast.List {
	root := newTOCList()
	lists := []*ast.List{root}
	var items []*ast.ListItem
	levels := &depthNormalizer{}

	for _, e := range entries {
		level := levels.level(e.depth)

		if level < len(lists)-1 {
			lists = lists[:level+1]
			items = items[:level+1]
		}
		if level == len(lists) {
			parent := items[level-1]
			sub := newTOCList()
			parent.AppendChild(parent, sub)
			lists = append(lists, sub)
		}

		item := newTOCItem(e)
		list := lists[level]
		list.AppendChild(list, item)
		items = append(items[:level], item)
	}
	return root
}

func newTOCList() *ast.List {
	list := ast.NewList('-')
	list.IsTight = true
	return list
}

func newTOCItem(e tocEntry) *ast.ListItem {
	link := ast.NewLink()
	link.Destination = append([]byte("#"), e.id...)
	link.AppendChild(link, ast.NewString(bytes.TrimSpace(e.text)))

	block := ast.NewTextBlock()
	block.AppendChild(block, link)

	item := ast.NewListItem(2)
	item.AppendChild(item, block)
	return item
}

// depthNormalizer maps heading depths to list nesting levels.
// The first depth seen is level 0 and a deeper heading only ever nests one
// level below the previous one, so skipped ranks do not leave empty lists.
type depthNormalizer struct {
	depths []int
}

func (d *depthNormalizer) level(depth int) int {
	for len(d.depths) > 0 && d.depths[len(d.depths)-1] > depth {
		d.depths = d.depths[:len(d.depths)-1]
	}
	if len(d.depths) == 0 || d.depths[len(d.depths)-1] < depth {
		d.depths = append(d.depths, depth)
	}
	return len(d.depths) - 1
}
