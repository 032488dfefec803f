package content

import (
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Extensions maps recognised content extensions to whether they hold
// markdown.
var Extensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".html":     false,
}

// IsMarkdown reports whether path names a markdown source.
func IsMarkdown(path string) bool {
	return Extensions[strings.ToLower(filepath.Ext(path))]
}

// PathNotFoundError is returned when the source root does not exist.
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("source path not found: %s", e.Path)
}

// excluded reports whether a name marks a file or directory as non-content,
// such as layout and partial storage.
func excluded(name string) bool {
	return strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")
}

// CheckRoot returns a *PathNotFoundError unless root is an existing
// directory.
func CheckRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return &PathNotFoundError{Path: root}
		}
		return errors.WithStack(err)
	}
	if !info.IsDir() {
		return &PathNotFoundError{Path: root}
	}
	return nil
}

// Scan yields the content files under root in lexical walk order. A missing
// root yields a single *PathNotFoundError. The walk stops early when the
// caller stops iterating.
func Scan(root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if err := CheckRoot(root); err != nil {
			yield("", err)
			return
		}

		stopped := false
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path == root {
				return nil
			}
			if d.IsDir() {
				if excluded(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() || excluded(d.Name()) {
				return nil
			}
			if _, ok := Extensions[strings.ToLower(filepath.Ext(path))]; !ok {
				return nil
			}
			if !yield(path, nil) {
				stopped = true
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil && !stopped {
			yield("", errors.Wrapf(err, "scanning %s", root))
		}
	}
}

// SourceFile is a content file as read from disk.
type SourceFile struct {
	Path string
	Data []byte
}

// Read loads a source file.
func Read(path string) (*SourceFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return &SourceFile{Path: path, Data: data}, nil
}

// Parse splits the file into front matter and body.
func (f *SourceFile) Parse() (Values, string, error) {
	return ParseFrontMatter(f.Path, string(f.Data))
}
