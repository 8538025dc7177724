package message

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	previewRenderer goldmark.Markdown
	previewPolicy   *bluemonday.Policy
)

func init() {
	previewRenderer = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	previewPolicy = bluemonday.UGCPolicy()
}

// PreviewHTML converts a rendered message body to sanitized HTML for the
// template preview. Returns empty string for empty input.
func PreviewHTML(body string) string {
	if body == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := previewRenderer.Convert([]byte(body), &buf); err != nil {
		return previewPolicy.Sanitize(body)
	}

	return previewPolicy.Sanitize(buf.String())
}
