package pipeline

import "golang.org/x/net/html"

// PatchTitle overwrites the text of the first <title> element found by a
// depth-first search of doc. It reports whether a title was patched.
// A missing title element, or one without a leading text child, is left
// alone.
func PatchTitle(doc *html.Node, title string) bool {
	node := FindNode(doc, IsElement("title"))
	if node == nil || node.FirstChild == nil || node.FirstChild.Type != html.TextNode {
		return false
	}
	node.FirstChild.Data = title
	return true
}
