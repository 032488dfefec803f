package site

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZacxDev/crank/content"
)

// IndexFile is the leaf written into each page's directory.
const IndexFile = "index.html"

// Configuration keys that place a page in the output tree.
const (
	KeyCategories = "categories"
	KeySlug       = "slug"
)

// MissingOutputMetadataError reports a page whose configuration cannot be
// turned into an output path.
type MissingOutputMetadataError struct {
	Field  string
	Reason string
}

func (e *MissingOutputMetadataError) Error() string {
	return fmt.Sprintf("missing output metadata: %s %s", e.Field, e.Reason)
}

// BuildPath returns outDir/categories.../slug/index.html.
func BuildPath(outDir string, conf content.Values) (string, error) {
	rawCategories, ok := conf[KeyCategories]
	if !ok {
		return "", &MissingOutputMetadataError{Field: KeyCategories, Reason: "is not set"}
	}
	categories, ok := rawCategories.(content.Seq)
	if !ok {
		return "", &MissingOutputMetadataError{Field: KeyCategories, Reason: "must be a list of strings"}
	}
	rawSlug, ok := conf[KeySlug]
	if !ok {
		return "", &MissingOutputMetadataError{Field: KeySlug, Reason: "is not set"}
	}
	slug, ok := rawSlug.(content.String)
	if !ok {
		return "", &MissingOutputMetadataError{Field: KeySlug, Reason: "must be a string"}
	}

	parts := make([]string, 0, len(categories)+3)
	parts = append(parts, outDir)
	for i, c := range categories {
		s, ok := c.(content.String)
		if !ok {
			return "", &MissingOutputMetadataError{Field: fmt.Sprintf("%s[%d]", KeyCategories, i), Reason: "must be a string"}
		}
		if reason := badSegment(string(s)); reason != "" {
			return "", &MissingOutputMetadataError{Field: fmt.Sprintf("%s[%d]", KeyCategories, i), Reason: reason}
		}
		parts = append(parts, string(s))
	}
	if reason := badSegment(string(slug)); reason != "" {
		return "", &MissingOutputMetadataError{Field: KeySlug, Reason: reason}
	}
	parts = append(parts, string(slug), IndexFile)
	return filepath.Join(parts...), nil
}

// badSegment explains why s cannot be a single directory name, or returns
// the empty string.
func badSegment(s string) string {
	switch {
	case s == "":
		return "is empty"
	case s == "." || s == "..":
		return fmt.Sprintf("%q is not a directory name", s)
	case strings.ContainsAny(s, `/\`):
		return fmt.Sprintf("%q contains a path separator", s)
	}
	return ""
}
