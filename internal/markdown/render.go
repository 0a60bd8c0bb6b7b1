// Package markdown converts post content to sanitized HTML.
package markdown

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// md enables tables and hard line breaks on top of CommonMark, which
// already covers fenced code blocks.
var md = goldmark.New(
	goldmark.WithExtensions(extension.Table, extension.Strikethrough),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
		html.WithUnsafe(),
	),
)

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowTables()
	p.AllowElements("br")
	p.AllowAttrs("class").OnElements("code", "pre")
	return p
}

// Render converts markdown content to sanitized HTML. It is a pure
// function of content and is invoked fresh on every read; nothing is
// cached or persisted.
func Render(content string) string {
	if content == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		// Conversion only fails on writer errors, which bytes.Buffer
		// does not produce. Fall back to nothing rather than raw input.
		return ""
	}
	return policy.Sanitize(buf.String())
}
