// Package stylesheet compiles the page's indented Sass source to CSS.
//
// The frontmatter theme color is prepended as a $primary variable before
// compilation, and CSS for syntax-highlighted code blocks is generated from
// a chroma style so it matches the classes emitted by the Markdown renderer.
package stylesheet
