package utils

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	mdParser = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	policy      = bluemonday.UGCPolicy()
	plainPolicy = bluemonday.StrictPolicy()
)

func init() {
	// Allow images
	policy.AllowImages()
	// Force links to open in new tab
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	policy.RequireNoReferrerOnLinks(true)
}

// RenderMarkdown 渲染 Markdown 并清洗输出 HTML
func RenderMarkdown(source string) template.HTML {
	if source == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(source), &buf); err != nil {
		return template.HTML(plainPolicy.Sanitize(source)) // Fallback
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes()))
}
