package pipeline

import "golang.org/x/net/html"

// Footer attribution.
const (
	ProjectURL  = "https://github.com/alnah/go-staticpage"
	ProjectName = "alnah/go-staticpage"
)

// InjectPageStructure replaces root's children with the page chrome and
// moves the original children into its content block:
//
//	div.page
//	  header.hero.is-primary > div.hero-body > div.container
//	    h1.title
//	    h2.subtitle (only when the subtitle is non-empty)
//	  section.section.page-expand > div.container > div.content
//	  footer.footer.has-text-centered.has-text-monospace > div.container
func InjectPageStructure(root *html.Node, matter Matter) {
	content := Element(".content", DetachChildren(root)...)

	heading := []*html.Node{Element("h1.title", Text(matter.Title()))}
	if subtitle := matter.Subtitle(); subtitle != "" {
		heading = append(heading, Element("h2.subtitle", Text(subtitle)))
	}

	link := Element("a", Text(ProjectName))
	SetAttr(link, "href", ProjectURL)

	root.AppendChild(Element(".page",
		Element("header.hero.is-primary",
			Element(".hero-body",
				Element(".container", heading...),
			),
		),
		Element("section.section.page-expand",
			Element(".container", content),
		),
		Element("footer.footer.has-text-centered.has-text-monospace",
			Element(".container", Text("Page rendered with "), link),
		),
	))
}
