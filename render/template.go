package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ZacxDev/crank/content"
)

// TemplateKeyError reports a placeholder whose key is not in the page's
// configuration.
type TemplateKeyError struct {
	Path string
	Key  string
}

func (e *TemplateKeyError) Error() string {
	return fmt.Sprintf("%s: template key %q is not defined", e.Path, e.Key)
}

var placeholderName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z0-9_]+)*$`)

// Substitute replaces every {key} placeholder in body with the text of the
// matching configuration value. Dotted keys such as {site.title} or
// {categories.0} index into mappings and sequences. "{{" and "}}" produce
// literal braces. Brace groups that do not form a key name, such as inline
// CSS rules, are copied unchanged.
func Substitute(path, body string, conf content.Values) (string, error) {
	var b strings.Builder
	b.Grow(len(body))

	for i := 0; i < len(body); {
		c := body[i]
		if (c == '{' || c == '}') && i+1 < len(body) && body[i+1] == c {
			b.WriteByte(c)
			i += 2
			continue
		}
		if c == '{' {
			if end := strings.IndexAny(body[i+1:], "{}"); end >= 0 && body[i+1+end] == '}' {
				name := body[i+1 : i+1+end]
				if placeholderName.MatchString(name) {
					v, ok := conf.Lookup(strings.Split(name, ".")...)
					if !ok {
						return "", &TemplateKeyError{Path: path, Key: name}
					}
					b.WriteString(v.Text())
					i += end + 2
					continue
				}
			}
		}
		b.WriteByte(c)
		i++
	}
	return b.String(), nil
}
