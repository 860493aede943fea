// Package pipeline implements the Markdown-to-HTML render pipeline.
//
// A File flows through a fixed sequence of stages, each mutating the trees
// it owns in place:
//   - parse: Markdown source to a goldmark AST (frontmatter fence kept as a node)
//   - frontmatter: validate and strip the leading YAML block into File.Matter
//   - toc: insert a table of contents under a "Contents" heading
//   - markup: render the AST and parse it into an x/net/html tree
//   - structure: wrap the content in the page chrome (hero, section, footer)
//   - document: move the page into a full HTML document envelope
//   - title: overwrite the envelope's <title> with the frontmatter title
//   - serialize: render the final tree to File.HTML
//
// Ordering matters: the frontmatter block is stripped before the table of
// contents is built so it is never mistaken for content, and the table of
// contents is built on the semantic tree so anchors match heading IDs.
//
// Stylesheet compilation is handled separately by internal/stylesheet.
package pipeline
