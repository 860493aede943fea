package pipeline

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func TestNormalizeLineEndings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "LF unchanged",
			input:    "line1\nline2\nline3",
			expected: "line1\nline2\nline3",
		},
		{
			name:     "CRLF to LF",
			input:    "line1\r\nline2\r\nline3",
			expected: "line1\nline2\nline3",
		},
		{
			name:     "CR to LF",
			input:    "line1\rline2\rline3",
			expected: "line1\nline2\nline3",
		},
		{
			name:     "mixed line endings",
			input:    "line1\r\nline2\rline3\nline4",
			expected: "line1\nline2\nline3\nline4",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := normalizeLineEndings(tt.input)
			if got != tt.expected {
				t.Errorf("normalizeLineEndings() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCompressBlankLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single blank line unchanged",
			input:    "line1\n\nline2",
			expected: "line1\n\nline2",
		},
		{
			name:     "two blank lines compressed to two newlines",
			input:    "line1\n\n\nline2",
			expected: "line1\n\nline2",
		},
		{
			name:     "three blank lines compressed to two",
			input:    "line1\n\n\n\nline2",
			expected: "line1\n\nline2",
		},
		{
			name:     "five blank lines compressed to two",
			input:    "line1\n\n\n\n\n\nline2",
			expected: "line1\n\nline2",
		},
		{
			name:     "multiple groups compressed",
			input:    "a\n\n\n\nb\n\n\n\n\nc",
			expected: "a\n\nb\n\nc",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := compressBlankLines(tt.input)
			if got != tt.expected {
				t.Errorf("compressBlankLines() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestConvertHighlights(t *testing.T) {
	t.Parallel()

	// Helper to build expected output with placeholders
	mark := func(s string) string {
		return MarkStartPlaceholder + s + MarkEndPlaceholder
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single highlight",
			input:    "This is ==highlighted== text",
			expected: "This is " + mark("highlighted") + " text",
		},
		{
			name:     "multiple highlights",
			input:    "==one== and ==two==",
			expected: mark("one") + " and " + mark("two"),
		},
		{
			name:     "empty highlight",
			input:    "empty ==== here",
			expected: "empty " + mark("") + " here",
		},
		{
			name:     "highlight with spaces",
			input:    "==hello world==",
			expected: mark("hello world"),
		},
		{
			name:     "no highlights",
			input:    "plain text",
			expected: "plain text",
		},
		{
			name:     "unclosed highlight unchanged",
			input:    "==unclosed",
			expected: "==unclosed",
		},
		{
			name:     "unicode highlight",
			input:    "This is ==日本語== text",
			expected: "This is " + mark("日本語") + " text",
		},
		{
			name:     "triple equals captures inner equals with trailing",
			input:    "===not highlight===",
			expected: mark("=not highlight") + "=",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := convertHighlights(tt.input)
			if got != tt.expected {
				t.Errorf("convertHighlights() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestConvertMarkPlaceholders(t *testing.T) {
	t.Parallel()

	mark := func(s string) string {
		return MarkStartPlaceholder + s + MarkEndPlaceholder
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single placeholder",
			input:    "<p>text " + mark("highlighted") + " more</p>",
			expected: "<p>text <mark>highlighted</mark> more</p>",
		},
		{
			name:     "multiple placeholders",
			input:    "<p>" + mark("one") + " and " + mark("two") + "</p>",
			expected: "<p><mark>one</mark> and <mark>two</mark></p>",
		},
		{
			name:     "no placeholders",
			input:    "<p>plain text without markers</p>",
			expected: "<p>plain text without markers</p>",
		},
		{
			name:     "empty mark kept as element",
			input:    "<p>a" + mark("") + "b</p>",
			expected: "<p>a<mark></mark>b</p>",
		},
		{
			name:     "literal inside code",
			input:    "<p><code>" + mark("x") + "</code></p>",
			expected: "<p><code>==x==</code></p>",
		},
		{
			name:     "literal inside pre",
			input:    "<pre>a " + mark("b") + "</pre>",
			expected: "<pre>a ==b==</pre>",
		},
		{
			name:     "pair split by inline element restored",
			input:    "<p>" + MarkStartPlaceholder + "a <em>b</em> c" + MarkEndPlaceholder + "</p>",
			expected: "<p>==a <em>b</em> c==</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := parseTestFragment(t, tt.input)
			ConvertMarkPlaceholders(root)
			got := renderTestChildren(t, root)
			if got != tt.expected {
				t.Errorf("ConvertMarkPlaceholders() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func parseTestFragment(t *testing.T, s string) *html.Node {
	t.Helper()
	nodes, err := html.ParseFragment(strings.NewReader(s), bodyContext)
	if err != nil {
		t.Fatalf("ParseFragment() error = %v", err)
	}
	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root
}

func renderTestChildren(t *testing.T, root *html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			t.Fatalf("Render() error = %v", err)
		}
	}
	return buf.String()
}

func TestCommonMarkPreprocessor_PreprocessMarkdown(t *testing.T) {
	t.Parallel()

	// Helper to build expected output with placeholders
	mark := func(s string) string {
		return MarkStartPlaceholder + s + MarkEndPlaceholder
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "plain text unchanged",
			input:    "Hello world",
			expected: "Hello world",
		},
		{
			name:     "CRLF normalized to LF",
			input:    "line1\r\nline2\r\nline3",
			expected: "line1\nline2\nline3",
		},
		{
			name:     "CR normalized to LF",
			input:    "line1\rline2\rline3",
			expected: "line1\nline2\nline3",
		},
		{
			name:     "highlights converted to placeholders",
			input:    "This is ==important== text",
			expected: "This is " + mark("important") + " text",
		},
		{
			name:     "multiple highlights converted to placeholders",
			input:    "==one== and ==two==",
			expected: mark("one") + " and " + mark("two"),
		},
		{
			name:     "multiple blank lines compressed to two",
			input:    "a\n\n\n\n\nb",
			expected: "a\n\nb",
		},
		{
			name:     "byte order mark stripped",
			input:    "\uFEFF# Title",
			expected: "# Title",
		},
		{
			name:     "frontmatter left untouched",
			input:    "---\ntitle: a ==b==\nnote: |\n  x\n\n\n\n  y\n---\n==z==\n\n\n\nend",
			expected: "---\ntitle: a ==b==\nnote: |\n  x\n\n\n\n  y\n---\n" + mark("z") + "\n\nend",
		},
		{
			name:     "full pipeline: normalize, highlight, compress",
			input:    "Title\r\n\r\n\r\n\r\nText with ==highlight==\r\n\r\n\r\nEnd",
			expected: "Title\n\nText with " + mark("highlight") + "\n\nEnd",
		},
	}

	preprocessor := &CommonMarkPreprocessor{}
	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := preprocessor.PreprocessMarkdown(ctx, tt.input)
			if got != tt.expected {
				t.Errorf("PreprocessMarkdown():\ngot:  %q\nwant: %q", got, tt.expected)
			}
		})
	}
}

func TestCommonMarkPreprocessor_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := "a\r\nb"
	got := (&CommonMarkPreprocessor{}).PreprocessMarkdown(ctx, input)
	if got != input {
		t.Errorf("PreprocessMarkdown() = %q, want input unchanged", got)
	}
}

func TestSplitFrontmatter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantHead string
		wantBody string
	}{
		{"no frontmatter", "# Title\ntext", "", "# Title\ntext"},
		{"empty input", "", "", ""},
		{"fence not on first line", "text\n---\na: b\n---\n", "", "text\n---\na: b\n---\n"},
		{"closed block", "---\na: b\n---\nbody", "---\na: b\n---\n", "body"},
		{"closing fence at end", "---\na: b\n---", "---\na: b\n---", ""},
		{"trailing spaces on fences", "---  \na: b\n--- \nbody", "---  \na: b\n--- \n", "body"},
		{"empty block", "---\n---\nbody", "---\n---\n", "body"},
		{"unclosed block", "---\na: ==b==\n", "---\na: ==b==\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			head, body := splitFrontmatter(tt.input)
			if head != tt.wantHead || body != tt.wantBody {
				t.Errorf("splitFrontmatter() = (%q, %q), want (%q, %q)", head, body, tt.wantHead, tt.wantBody)
			}
		})
	}
}
