package content

import (
	"bytes"
	"fmt"
	"strings"
)

// Delimiter ends a front matter block: the closing brace of the JSON object
// on its own line, followed by a blank line.
const Delimiter = "\n}\n\n"

const byteOrderMark = "\ufeff"

// FrontMatterSyntaxError reports a front matter block that is not a valid
// JSON object.
type FrontMatterSyntaxError struct {
	Path string
	Err  error
}

func (e *FrontMatterSyntaxError) Error() string {
	return fmt.Sprintf("%s: invalid front matter: %v", e.Path, e.Err)
}

func (e *FrontMatterSyntaxError) Unwrap() error { return e.Err }

// ParseFrontMatter splits text into its front matter and body.
//
// A block is only recognised when the text starts with "{" and contains
// Delimiter. Without one the whole text is the body and the front matter is
// empty. A leading UTF-8 byte order mark is dropped, and the body is trimmed
// of surrounding whitespace.
func ParseFrontMatter(path, text string) (Values, string, error) {
	text = strings.TrimPrefix(text, byteOrderMark)
	if !strings.HasPrefix(strings.TrimLeft(text, " \t\r\n"), "{") {
		return Values{}, strings.TrimSpace(text), nil
	}
	head, body, found := strings.Cut(text, Delimiter)
	if !found {
		return Values{}, strings.TrimSpace(text), nil
	}

	fm, rest, err := DecodeObject([]byte(head + "}"))
	if err != nil {
		return nil, "", &FrontMatterSyntaxError{Path: path, Err: err}
	}
	// The object may already have closed on the line above the delimiter, in
	// which case the delimiter's brace is all that is left over.
	if rest = bytes.TrimSpace(rest); len(rest) > 0 && string(rest) != "}" {
		return nil, "", &FrontMatterSyntaxError{
			Path: path,
			Err:  fmt.Errorf("unexpected %q after front matter object", truncate(string(rest), 20)),
		}
	}
	return fm, strings.TrimSpace(body), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
