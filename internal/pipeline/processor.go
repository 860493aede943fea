package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"golang.org/x/net/html"
)

// Stage names, in execution order.
const (
	StageParse       = "parse"
	StageFrontmatter = "frontmatter"
	StageTOC         = "toc"
	StageMarkup      = "markup"
	StageStructure   = "structure"
	StageDocument    = "document"
	StageTitle       = "title"
	StageSerialize   = "serialize"
)

// DefaultDocumentTitle is the placeholder title when the file has no path.
const DefaultDocumentTitle = "Document"

// File is the in-flight state of one render. Each stage reads and mutates
// the fields left by the stages before it.
type File struct {
	Path   string
	Source []byte

	// Matter is set by the frontmatter stage.
	Matter Matter

	// Markdown is the semantic tree, set by the parse stage.
	Markdown ast.Node

	// Tree is the markup tree, set by the markup stage. After the document
	// stage it is the full HTML document.
	Tree *html.Node

	// HTML is the serialized result.
	HTML string

	// Timings records each completed stage.
	Timings []Timing
}

// Timing is the wall time spent in one stage.
type Timing struct {
	Stage    string
	Duration time.Duration
}

// NewFile creates a File from raw Markdown.
func NewFile(path, markdown string) *File {
	return &File{Path: path, Source: []byte(markdown)}
}

// Stem returns the file name without directory and extension, or
// DefaultDocumentTitle when that leaves nothing (no path, or a name such
// as ".md").
func (f *File) Stem() string {
	if f.Path == "" {
		return DefaultDocumentTitle
	}
	base := filepath.Base(f.Path)
	if stem := strings.TrimSuffix(base, filepath.Ext(base)); stem != "" {
		return stem
	}
	return DefaultDocumentTitle
}

// Stage is one named step of the pipeline.
type Stage struct {
	Name string
	Run  func(ctx context.Context, file *File) error
}

// Processor runs the fixed stage list over a File.
type Processor struct {
	md           goldmark.Markdown
	preprocessor MarkdownPreprocessor
	document     DocumentOptions
	style        string
}

// Option configures a Processor.
type Option func(*Processor)

// WithHighlightStyle sets the chroma style name used for code blocks.
func WithHighlightStyle(style string) Option {
	return func(p *Processor) {
		p.style = style
	}
}

// WithDocumentOptions sets the stylesheet, link and script references of
// the document envelope.
func WithDocumentOptions(opts DocumentOptions) Option {
	return func(p *Processor) {
		p.document = opts
	}
}

// WithPreprocessor replaces the Markdown preprocessor.
func WithPreprocessor(pre MarkdownPreprocessor) Option {
	return func(p *Processor) {
		p.preprocessor = pre
	}
}

// NewProcessor creates a Processor with default settings.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		preprocessor: &CommonMarkPreprocessor{},
		document:     DefaultDocumentOptions(),
		style:        DefaultHighlightStyle,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.md = newMarkdown(p.style)
	return p
}

// Stages returns the pipeline in execution order.
func (p *Processor) Stages() []Stage {
	return []Stage{
		{Name: StageParse, Run: p.parse},
		{Name: StageFrontmatter, Run: func(_ context.Context, f *File) error {
			return ExtractFrontmatter(f)
		}},
		{Name: StageTOC, Run: func(_ context.Context, f *File) error {
			GenerateTOC(f)
			return nil
		}},
		{Name: StageMarkup, Run: func(_ context.Context, f *File) error {
			return p.ConvertMarkup(f)
		}},
		{Name: StageStructure, Run: func(_ context.Context, f *File) error {
			InjectPageStructure(f.Tree, f.Matter)
			return nil
		}},
		{Name: StageDocument, Run: func(_ context.Context, f *File) error {
			doc, err := WrapDocument(f.Tree, f.Stem(), p.document)
			if err != nil {
				return err
			}
			f.Tree = doc
			return nil
		}},
		{Name: StageTitle, Run: func(_ context.Context, f *File) error {
			PatchTitle(f.Tree, f.Matter.Title())
			return nil
		}},
		{Name: StageSerialize, Run: func(_ context.Context, f *File) error {
			return Serialize(f)
		}},
	}
}

// Process runs every stage in order. The first failing stage aborts the
// run; file.HTML is only set when all stages succeed.
func (p *Processor) Process(ctx context.Context, file *File) error {
	for _, stage := range p.Stages() {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		if err := runStage(ctx, stage, file); err != nil {
			return fmt.Errorf("%s: %w", stage.Name, err)
		}
		file.Timings = append(file.Timings, Timing{Stage: stage.Name, Duration: time.Since(start)})
	}
	return nil
}

func runStage(ctx context.Context, stage Stage, file *File) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrStagePanic, r)
		}
	}()
	return stage.Run(ctx, file)
}

func (p *Processor) parse(ctx context.Context, file *File) error {
	file.Source = []byte(p.preprocessor.PreprocessMarkdown(ctx, string(file.Source)))
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.ParseMarkdown(file)
}
