package content

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

func collect(t *testing.T, root string) []string {
	t.Helper()
	var got []string
	for path, err := range Scan(root) {
		require.NoError(t, err)
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)
		got = append(got, filepath.ToSlash(rel))
	}
	return got
}

func TestScan_FiltersAndOrders(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{
		"index.md",
		"about.html",
		"notes.markdown",
		"blog/b.md",
		"blog/a.md",
		"blog/_draft.md",
		"_layouts/base.html",
		"blog/_partials/nav.html",
		".git/HEAD.md",
		"style.css",
		"image.png",
	} {
		writeFile(t, filepath.Join(root, name), "x")
	}

	require.Equal(t, []string{
		"about.html",
		"blog/a.md",
		"blog/b.md",
		"index.md",
		"notes.markdown",
	}, collect(t, root))
}

func TestScan_RootUnderscoreIsNotExcluded(t *testing.T) {
	root := filepath.Join(t.TempDir(), "_site_src")
	writeFile(t, filepath.Join(root, "page.md"), "x")

	require.Equal(t, []string{"page.md"}, collect(t, root))
}

func TestScan_MissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "missing")

	var errs []error
	for _, err := range Scan(root) {
		errs = append(errs, err)
	}
	require.Len(t, errs, 1)

	var notFound *PathNotFoundError
	require.True(t, errors.As(errs[0], &notFound))
	require.Equal(t, root, notFound.Path)
}

func TestScan_StopsWhenCallerBreaks(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.md"), "x")
	writeFile(t, filepath.Join(root, "b.md"), "x")

	n := 0
	for range Scan(root) {
		n++
		break
	}
	require.Equal(t, 1, n)
}

func TestScan_EmptyRoot(t *testing.T) {
	require.Empty(t, collect(t, t.TempDir()))
}

func TestIsMarkdown(t *testing.T) {
	require.True(t, IsMarkdown("a/b.md"))
	require.True(t, IsMarkdown("a/b.MD"))
	require.True(t, IsMarkdown("b.markdown"))
	require.False(t, IsMarkdown("b.html"))
}
