package render

import (
	"bytes"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmparser "github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Markdown converts markdown source to HTML.
type Markdown func(src string) string

// Gomarkdown renders with github.com/gomarkdown/markdown. Raw HTML passes
// through, which layouts rely on when they embed child pages.
func Gomarkdown(src string) string {
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	p := parser.NewWithExtensions(extensions)
	return string(markdown.ToHTML([]byte(src), p, nil))
}

var goldmarkEngine = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(
		gmparser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		gmhtml.WithUnsafe(),
	),
)

// Goldmark renders CommonMark with GitHub extensions.
func Goldmark(src string) string {
	var buf bytes.Buffer
	// Writes to a bytes.Buffer cannot fail.
	_ = goldmarkEngine.Convert([]byte(src), &buf)
	return buf.String()
}

var markdownRenderers = map[string]Markdown{
	"gomarkdown": Gomarkdown,
	"goldmark":   Goldmark,
}

// MarkdownNames lists the renderers MarkdownByName accepts.
func MarkdownNames() []string {
	names := make([]string, 0, len(markdownRenderers))
	for name := range markdownRenderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MarkdownByName returns a registered renderer. The empty name selects
// gomarkdown.
func MarkdownByName(name string) (Markdown, error) {
	if name == "" {
		return Gomarkdown, nil
	}
	md, ok := markdownRenderers[strings.ToLower(name)]
	if !ok {
		return nil, errors.Errorf("unknown markdown renderer %q (want one of %s)", name, strings.Join(MarkdownNames(), ", "))
	}
	return md, nil
}
