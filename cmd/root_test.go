package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZacxDev/crank/content"
	"github.com/ZacxDev/crank/site"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	stdout, _, err := executeCapture(t, args...)
	return stdout, err
}

func executeCapture(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	configFile, renderer, sitemap, metricsFile, verbose = "", "gomarkdown", false, "", false
	// cobra registers --version lazily and keeps its value between runs.
	if f := rootCmd.Flags().Lookup("version"); f != nil {
		require.NoError(t, f.Value.Set("false"))
		f.Changed = false
	}

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

func TestVersionFlag(t *testing.T) {
	for _, flag := range []string{"--version", "-v"} {
		out, err := execute(t, flag)
		require.NoError(t, err)
		require.Equal(t, "crank "+Version+"\n", out)
	}
}

func TestRequiresSourceAndOutput(t *testing.T) {
	_, err := execute(t, "only-one")
	require.Error(t, err)
}

func TestErrorsAreLeftToExecute(t *testing.T) {
	_, stderr, err := executeCapture(t, t.TempDir(), t.TempDir(), "--renderer", "pandoc")
	require.Error(t, err)
	require.Empty(t, stderr)
}

func TestBuild_DefaultConfigInsideOutput(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "public")
	writeFile(t, filepath.Join(out, "config.json"), `{"name": "World"}`)
	writeFile(t, filepath.Join(src, "hello.md"), "{\"slug\": \"hello\", \"categories\": []}\n}\n\n# Hi {name}")

	_, err := execute(t, src, out)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(out, "hello", "index.html"))
	require.NoError(t, err)
	require.Contains(t, string(data), "Hi World</h1>")
	require.NoFileExists(t, filepath.Join(out, "config.json"))
}

func TestBuild_MissingSourceKeepsOutput(t *testing.T) {
	out := t.TempDir()
	writeFile(t, filepath.Join(out, "config.json"), `{"name": "World"}`)

	_, err := execute(t, filepath.Join(t.TempDir(), "typo"), out)

	var notFound *content.PathNotFoundError
	require.True(t, errors.As(err, &notFound))
	require.FileExists(t, filepath.Join(out, "config.json"))
}

func TestBuild_MissingConfigUsesDefaults(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeFile(t, filepath.Join(src, "index.html"), "{\"slug\": \"home\", \"categories\": []\n}\n\n<h1>[{title}]</h1>")

	_, err := execute(t, src, out, "--config", filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(out, "home", "index.html"))
	require.NoError(t, err)
	require.Equal(t, "<h1>[]</h1>", string(data))
}

func TestBuild_MalformedConfigFails(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	cfg := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, cfg, `{"title": "x",}`)
	writeFile(t, filepath.Join(out, "keep.txt"), "untouched")

	_, err := execute(t, src, out, "-c", cfg)
	require.Error(t, err)
	require.FileExists(t, filepath.Join(out, "keep.txt"))
}

func TestBuild_UnknownRenderer(t *testing.T) {
	_, err := execute(t, t.TempDir(), t.TempDir(), "--renderer", "pandoc")
	require.Error(t, err)
}

func TestBuild_PageFailureIsReported(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeFile(t, filepath.Join(src, "broken.md"), "{\"slug\": \"x\",\n}\n\nbody")
	metricsPath := filepath.Join(t.TempDir(), "crank.prom")

	_, err := execute(t, src, out, "--metrics-file", metricsPath)

	var buildErr *site.BuildError
	require.True(t, errors.As(err, &buildErr))
	require.Len(t, buildErr.Failures, 1)

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	require.Contains(t, string(data), `crank_pages_total{result="failed"} 1`)
}

func TestBuild_YAMLConfigAndSitemap(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	cfg := filepath.Join(t.TempDir(), "site.yaml")
	writeFile(t, cfg, "baseURL: https://example.com\nauthor: Ada\n")
	writeFile(t, filepath.Join(src, "about.md"), "{\"slug\": \"about\", \"categories\": [\"pages\"]\n}\n\nBy {author}")

	_, err := execute(t, src, out, "-c", cfg, "--sitemap", "--renderer", "goldmark")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(out, "pages", "about", "index.html"))
	require.NoError(t, err)
	require.Equal(t, "<p>By Ada</p>\n", string(data))

	sitemapData, err := os.ReadFile(filepath.Join(out, "sitemap.xml"))
	require.NoError(t, err)
	require.Contains(t, string(sitemapData), "<loc>https://example.com/pages/about/</loc>")
}
