package render

import (
	"strings"

	"github.com/ZacxDev/crank/content"
)

// Page is one unit of generation: a source file's rendered content and its
// resolved configuration.
type Page struct {
	Source  string
	Content string
	Conf    content.Values
}

// Renderer turns a source body into HTML.
type Renderer struct {
	// Markdown converts markdown sources. Gomarkdown is used when nil.
	Markdown Markdown
}

// Render substitutes conf into body and then, for markdown sources, converts
// the result to HTML. Substitution runs first so configuration values can
// carry markdown syntax. HTML sources are only trimmed.
func (r Renderer) Render(path, body string, conf content.Values) (string, error) {
	out, err := Substitute(path, body, conf)
	if err != nil {
		return "", err
	}
	if !content.IsMarkdown(path) {
		return strings.TrimSpace(out), nil
	}
	md := r.Markdown
	if md == nil {
		md = Gomarkdown
	}
	return md(out), nil
}
