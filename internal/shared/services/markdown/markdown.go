// Package markdown renders pack descriptions and strips unsafe markup from
// free-text fields.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

type Renderer interface {
	ToHTML(source string) (string, error)
	StripTags(text string) string
}

type renderer struct {
	md     goldmark.Markdown
	ugc    *bluemonday.Policy
	strict *bluemonday.Policy
}

func NewRenderer() Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	return &renderer{
		md:     md,
		ugc:    bluemonday.UGCPolicy(),
		strict: bluemonday.StrictPolicy(),
	}
}

// ToHTML converts markdown to HTML that is safe to embed in a page.
func (r *renderer) ToHTML(source string) (string, error) {
	if strings.TrimSpace(source) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return r.ugc.Sanitize(buf.String()), nil
}

// StripTags removes all markup, keeping text content.
func (r *renderer) StripTags(text string) string {
	return strings.TrimSpace(r.strict.Sanitize(text))
}
