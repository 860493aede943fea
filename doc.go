// Package staticpage renders a single Markdown page and its Sass stylesheet
// into static HTML and CSS.
//
// # Quick Start
//
// Create a renderer, render once, and close when done:
//
//	r, err := staticpage.NewRenderer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	res, err := r.Render(ctx, staticpage.Input{
//	    Path:     "page.md",
//	    Markdown: "---\ntitle: Hi\n---\n# Hello",
//	}, stylesheetSource)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Page.HTML, res.Stylesheet.CSS)
//
// # Render Pipeline
//
// The page goes through a fixed sequence of stages:
//
//  1. parse: line normalization, ==highlight== syntax, Goldmark parse
//  2. frontmatter: the leading YAML block is extracted and stripped
//  3. toc: a "Table of contents" heading gets a list of links
//  4. markup: the Markdown tree is converted to an HTML tree
//  5. structure: hero header, content section and footer are added
//  6. document: the page is wrapped in an HTML5 envelope
//  7. title: the <title> element gets the frontmatter title
//  8. serialize: the tree is rendered to a string
//
// The first failing stage aborts the render. There is no partial result.
//
// # Stylesheet
//
// The stylesheet is indented-syntax Sass compiled by Dart Sass. A
// `$primary: <theme>` declaration built from the frontmatter theme is
// prepended before compilation, and the CSS for highlighted code blocks is
// appended after it. A Dart Sass binary must be available, see
// WithSassBinary.
package staticpage
