// Package content renders user-authored workout notes as sanitized HTML.
package content

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var notesPipeline = Chain(MarkdownToHTML(), SanitizeHTML())

// RenderNotes converts Markdown workout notes into HTML safe to embed in a
// page. The result is marked as trusted template HTML because the sanitizer
// has already run; everything it strips stays stripped.
func RenderNotes(notes string) (template.HTML, error) {
	if notes == "" {
		return "", nil
	}
	out, err := notesPipeline(bytes.TrimSpace([]byte(notes)))
	if err != nil {
		return "", err
	}
	return template.HTML(out), nil //nolint:gosec // sanitized above
}

// MarkdownToHTML converts a CommonMark Markdown input into HTML. Note that the
// produced HTML is _not_ sanitized.
func MarkdownToHTML() TransformerFunc {
	markdown := goldmark.New(
		goldmark.WithExtensions(
			extension.Linkify,
			extension.Table,
			extension.Strikethrough,
			extension.Typographer,
		),
	)

	return func(input []byte) ([]byte, error) {
		output := &bytes.Buffer{}
		if err := markdown.Convert(input, output); err != nil {
			return nil, fmt.Errorf("failed to convert markdown to HTML: %w", err)
		}
		return output.Bytes(), nil
	}
}

// SanitizeHTML strips everything from the rendered notes that isn't basic
// formatted text.
func SanitizeHTML() TransformerFunc {
	htmlSanitizer := sanitizer()
	return func(input []byte) ([]byte, error) {
		return htmlSanitizer.SanitizeBytes(input), nil
	}
}

// sanitizer is a modification of [bluemonday.UGCPolicy].
// Differences:
//
//   - Target _blank and noreferrer for links
//   - No figure/image elements (to avoid hot-linking)
func sanitizer() *bluemonday.Policy {
	policy := bluemonday.NewPolicy()

	policy.AllowStandardAttributes()

	policy.AllowStandardURLs()
	policy.RequireNoReferrerOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	policy.AllowElements(
		"b", "blockquote", "br", "code", "del", "em", "h1", "h2", "h3", "h4",
		"hr", "i", "li", "ol", "p", "pre", "s", "strong", "sub", "sup",
		"table", "tbody", "td", "th", "thead", "tr", "ul",
	)
	policy.AllowAttrs("href").OnElements("a")

	return policy
}
