package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZacxDev/crank/content"
	"github.com/pkg/errors"
)

// MaxLayoutDepth bounds how many layouts may wrap a single page.
const MaxLayoutDepth = 32

// Configuration keys with a meaning to the resolver.
const (
	KeyContent        = "content"
	KeyLayout         = "layout"
	KeyHeader         = "header"
	KeyFooter         = "footer"
	KeyNoHeaderFooter = "no_header_footer"
	KeyRedirect       = "redirect"
	KeyTitle          = "title"
)

// LayoutCycleError is returned when a layout chain revisits a file or grows
// past the depth limit.
type LayoutCycleError struct {
	Chain []string
	Limit int
}

func (e *LayoutCycleError) Error() string {
	if e.Limit > 0 {
		return fmt.Sprintf("%s: layout chain deeper than %d levels: %s", e.Chain[0], e.Limit, strings.Join(e.Chain, " -> "))
	}
	return fmt.Sprintf("%s: layout cycle: %s", e.Chain[0], strings.Join(e.Chain, " -> "))
}

// ReferenceTypeError reports a layout, header, footer or redirect key whose
// value is not a string.
type ReferenceTypeError struct {
	Path string
	Key  string
	Got  content.Value
}

func (e *ReferenceTypeError) Error() string {
	return fmt.Sprintf("%s: %s must be a string, got %s", e.Path, e.Key, e.Got.Text())
}

// Resolver renders pages and wraps them in their layouts.
type Resolver struct {
	// Root is the source directory; layout, header and footer paths are
	// relative to it.
	Root string
	// Site holds the site-wide defaults every page starts from.
	Site     content.Values
	Renderer Renderer
	// MaxDepth overrides MaxLayoutDepth when positive.
	MaxDepth int
}

// layer is one file of a layout chain, page first.
type layer struct {
	path string
	fm   content.Values
	body string
}

// Resolve renders the page at path and every layout above it.
//
// The page's configuration is the site defaults, then each layout's front
// matter from the outermost in, then the page's own front matter. The page
// body is rendered with that configuration; each layout body is rendered
// with it plus the inner rendered HTML bound to "content".
func (r *Resolver) Resolve(path string) (*Page, error) {
	chain, err := r.chain(path)
	if err != nil {
		return nil, err
	}

	stack := make([]content.Values, 0, len(chain)+1)
	stack = append(stack, r.Site)
	for i := len(chain) - 1; i >= 0; i-- {
		stack = append(stack, chain[i].fm)
	}
	conf := content.Merge(stack...)

	url, err := reference(path, conf, KeyRedirect)
	if err != nil {
		return nil, err
	}
	if url != "" {
		html, err := Redirect(url, conf)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: rendering redirect", path)
		}
		return &Page{Source: path, Content: html, Conf: conf}, nil
	}

	html, err := r.Renderer.Render(chain[0].path, chain[0].body, conf)
	if err != nil {
		return nil, err
	}
	if html, err = r.decorate(path, html, conf); err != nil {
		return nil, err
	}
	for _, l := range chain[1:] {
		html, err = r.Renderer.Render(l.path, l.body, content.Merge(conf, content.Values{KeyContent: content.String(html)}))
		if err != nil {
			return nil, err
		}
	}
	return &Page{Source: path, Content: html, Conf: conf}, nil
}

// chain loads the page and follows each file's own "layout" key.
func (r *Resolver) chain(path string) ([]layer, error) {
	limit := r.MaxDepth
	if limit <= 0 {
		limit = MaxLayoutDepth
	}

	var (
		chain   []layer
		names   []string
		visited = map[string]bool{}
	)
	for next := path; next != ""; {
		key, err := filepath.Abs(next)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		names = append(names, next)
		if visited[key] {
			return nil, &LayoutCycleError{Chain: names}
		}
		if len(chain) > limit {
			return nil, &LayoutCycleError{Chain: names, Limit: limit}
		}
		visited[key] = true

		f, err := content.Read(next)
		if err != nil {
			return nil, err
		}
		fm, body, err := f.Parse()
		if err != nil {
			return nil, err
		}
		chain = append(chain, layer{path: next, fm: fm, body: body})

		ref, err := reference(next, fm, KeyLayout)
		if err != nil {
			return nil, err
		}
		next = r.sourcePath(ref)
	}
	return chain, nil
}

// decorate places the header and footer partials around a page's own
// content.
func (r *Resolver) decorate(path, html string, conf content.Values) (string, error) {
	if conf.Bool(KeyNoHeaderFooter) {
		return html, nil
	}
	headerRef, err := reference(path, conf, KeyHeader)
	if err != nil {
		return "", err
	}
	footerRef, err := reference(path, conf, KeyFooter)
	if err != nil {
		return "", err
	}
	if headerRef != "" {
		header, err := r.partial(r.sourcePath(headerRef), conf)
		if err != nil {
			return "", err
		}
		html = header + "\n" + html
	}
	if footerRef != "" {
		footer, err := r.partial(r.sourcePath(footerRef), conf)
		if err != nil {
			return "", err
		}
		html = html + "\n" + footer
	}
	return html, nil
}

func (r *Resolver) partial(path string, conf content.Values) (string, error) {
	f, err := content.Read(path)
	if err != nil {
		return "", err
	}
	fm, body, err := f.Parse()
	if err != nil {
		return "", err
	}
	return r.Renderer.Render(path, body, content.Merge(fm, conf))
}

// reference returns the string under key, or "" when the key is unset or
// null.
func reference(path string, conf content.Values, key string) (string, error) {
	switch v := conf[key].(type) {
	case nil, content.Null:
		return "", nil
	case content.String:
		return string(v), nil
	default:
		return "", &ReferenceTypeError{Path: path, Key: key, Got: v}
	}
}

func (r *Resolver) sourcePath(ref string) string {
	if ref == "" || filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(r.Root, ref)
}
