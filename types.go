package staticpage

import (
	"time"

	"github.com/alnah/go-staticpage/internal/pipeline"
)

// Input is the source document.
type Input struct {
	Markdown string // must start with a YAML frontmatter block
	Path     string // optional, its stem is the placeholder document title
}

// Frontmatter is the metadata parsed from the document's leading YAML block.
// Use Title, Subtitle and Theme to read the known keys.
type Frontmatter = pipeline.Matter

// DefaultTheme is the primary color used when the frontmatter has no
// usable theme.
const DefaultTheme = pipeline.DefaultTheme

// StageTiming is the time spent in one render stage.
type StageTiming struct {
	Stage    string
	Duration time.Duration
}

// Page is a rendered HTML document.
type Page struct {
	Matter   Frontmatter
	HTML     string
	Duration time.Duration
	Stages   []StageTiming // in execution order
}

// Stylesheet is the compiled CSS for a page.
type Stylesheet struct {
	CSS      string
	Theme    string // resolved $primary value
	Duration time.Duration
}

// Result holds both artifacts of Render.
type Result struct {
	Page       *Page
	Stylesheet *Stylesheet
}
