package pipeline

import (
	"bytes"
	"fmt"
	"html/template"

	"golang.org/x/net/html"
)

// Link is a <link> element of the document head.
type Link struct {
	Rel  string
	Href string
}

// DocumentOptions lists the assets referenced by the document envelope.
type DocumentOptions struct {
	Lang        string
	Stylesheets []string
	Links       []Link
	Scripts     []string
}

// DefaultDocumentOptions references the routes served next to the page.
func DefaultDocumentOptions() DocumentOptions {
	return DocumentOptions{
		Lang:        "en",
		Stylesheets: []string{"/style.css"},
		Links:       []Link{{Rel: "icon", Href: "/favicon.png"}},
		Scripts:     []string{"/script.js"},
	}
}

var envelopeTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
{{- range .Stylesheets}}
<link rel="stylesheet" href="{{.}}">
{{- end}}
{{- range .Links}}
<link rel="{{.Rel}}" href="{{.Href}}">
{{- end}}
</head>
<body>
{{- range .Scripts}}
<script src="{{.}}"></script>
{{- end}}
</body>
</html>
`))

type envelopeData struct {
	DocumentOptions
	Title string
}

// WrapDocument builds an HTML document around content's children. The
// placeholder title is written to <title>, so it always has a text child for
// PatchTitle; an empty placeholder becomes DefaultDocumentTitle. The content
// is placed at the start of <body>, ahead of the scripts.
func WrapDocument(content *html.Node, placeholderTitle string, opts DocumentOptions) (*html.Node, error) {
	if opts.Lang == "" {
		opts.Lang = "en"
	}
	if placeholderTitle == "" {
		placeholderTitle = DefaultDocumentTitle
	}

	var buf bytes.Buffer
	if err := envelopeTemplate.Execute(&buf, envelopeData{DocumentOptions: opts, Title: placeholderTitle}); err != nil {
		return nil, fmt.Errorf("%w: rendering document envelope: %v", ErrHTMLConversion, err)
	}

	doc, err := html.Parse(&buf)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing document envelope: %v", ErrHTMLConversion, err)
	}

	body := FindNode(doc, IsElement("body"))
	if body == nil {
		return nil, fmt.Errorf("%w: document envelope has no body", ErrHTMLConversion)
	}

	first := body.FirstChild
	for _, n := range DetachChildren(content) {
		body.InsertBefore(n, first)
	}
	return doc, nil
}
