// Package markdown renders board descriptions to sanitised HTML.
package markdown

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/taskboards/boards/internal/logger"
)

type TextProcessor struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *TextProcessor {
	md := goldmark.New(
		goldmark.WithRendererOptions(html.WithUnsafe(), html.WithHardWraps()),
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
	)

	p := bluemonday.UGCPolicy()
	p.AddTargetBlankToFullyQualifiedLinks(true)

	return &TextProcessor{md: md, policy: p}
}

// Render converts a description to HTML safe to embed in a page.
// The stored text is never changed.
func (tp *TextProcessor) Render(text string) template.HTML {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	rendered, err := tp.renderText(text)
	if err != nil {
		logger.Log.Warn("markdown render failed, falling back to escaped text", "error", err)
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(tp.sanitizeText(rendered))
}

func (tp *TextProcessor) renderText(text string) (string, error) {
	var buf bytes.Buffer
	if err := tp.md.Convert([]byte(text), &buf); err != nil {
		return text, err
	}
	return strings.TrimSpace(buf.String()), nil
}

func (tp *TextProcessor) sanitizeText(text string) string {
	return tp.policy.Sanitize(text)
}
