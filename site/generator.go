// Package site runs a build: it generates a page for every content file and
// writes the result to a fresh output tree.
package site

import (
	"fmt"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZacxDev/crank/content"
	"github.com/ZacxDev/crank/metrics"
	"github.com/ZacxDev/crank/render"
	"github.com/ZacxDev/crank/utils"
	"github.com/pkg/errors"
)

// Generator produces rendered pages from a source directory.
type Generator struct {
	Src      string
	Site     content.Values
	Markdown render.Markdown
}

// Pages yields one rendered page per content file, in scan order. Failures
// confined to one file are yielded as *PageError; a missing source root is
// yielded as is and ends the sequence.
func (g *Generator) Pages() iter.Seq2[*render.Page, error] {
	resolver := &render.Resolver{
		Root:     g.Src,
		Site:     g.Site,
		Renderer: render.Renderer{Markdown: g.Markdown},
	}
	return func(yield func(*render.Page, error) bool) {
		for path, err := range content.Scan(g.Src) {
			if err != nil {
				yield(nil, err)
				return
			}
			page, err := resolver.Resolve(path)
			if err != nil {
				if !yield(nil, &PageError{Source: path, Err: err}) {
					return
				}
				continue
			}
			if !yield(page, nil) {
				return
			}
		}
	}
}

// Options configures a build.
type Options struct {
	Src string
	Out string
	// Site is the loaded site configuration.
	Site     content.Values
	Markdown render.Markdown
	// Sitemap writes Out/sitemap.xml under the site's baseURL.
	Sitemap bool
	Logger  *slog.Logger
	Metrics metrics.Recorder
}

// Build regenerates Out from Src. It returns a *BuildError when some pages
// failed; the pages that succeeded are still written. A missing Src, or an
// Out that contains Src, fails before Out is removed.
func Build(opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	rec := opts.Metrics
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	start := time.Now()

	// Nothing under Out is touched until both directories check out.
	if err := checkDirs(opts.Src, opts.Out); err != nil {
		return nil, err
	}

	gen := &Generator{Src: opts.Src, Site: opts.Site, Markdown: opts.Markdown}
	w := &Writer{Logger: logger, Metrics: rec}
	res, err := w.Write(opts.Out, gen.Pages())
	if err != nil {
		return res, err
	}

	if opts.Sitemap {
		baseURL, _ := opts.Site.String("baseURL")
		if err := utils.GenerateSitemaps(opts.Out, baseURL, res.Written); err != nil {
			return res, err
		}
	}

	elapsed := time.Since(start)
	rec.ObserveBuildDuration(elapsed)
	logger.Info("Build finished",
		utils.Pages(len(res.Written)),
		utils.Failed(len(res.Failures)),
		utils.DurationMS(elapsed.Milliseconds()),
	)
	return res, res.Err()
}

// OutputOverlapError is returned when the output directory is the source
// directory or one of its parents. Cleaning it would delete the sources.
type OutputOverlapError struct {
	Src string
	Out string
}

func (e *OutputOverlapError) Error() string {
	return fmt.Sprintf("output directory %s contains source directory %s", e.Out, e.Src)
}

func checkDirs(src, out string) error {
	if err := content.CheckRoot(src); err != nil {
		return err
	}
	absSrc, err := realPath(src)
	if err != nil {
		return err
	}
	absOut, err := realPath(out)
	if err != nil {
		return err
	}
	rel, err := filepath.Rel(absOut, absSrc)
	if err != nil {
		return nil
	}
	if rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
		return &OutputOverlapError{Src: src, Out: out}
	}
	return nil
}

// realPath returns the absolute path with symlinks resolved when path exists.
func realPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.WithStack(err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return abs, nil
		}
		return "", errors.WithStack(err)
	}
	return resolved, nil
}
