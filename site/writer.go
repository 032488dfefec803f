package site

import (
	"fmt"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZacxDev/crank/metrics"
	"github.com/ZacxDev/crank/render"
	"github.com/ZacxDev/crank/utils"
	"github.com/pkg/errors"
)

// PageError wraps a failure confined to one source file. The build skips
// the page and carries on.
type PageError struct {
	Source string
	Err    error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *PageError) Unwrap() error { return e.Err }

// BuildError lists every page that failed during a build.
type BuildError struct {
	Failures []*PageError
}

func (e *BuildError) Error() string {
	lines := make([]string, 0, len(e.Failures)+1)
	lines = append(lines, fmt.Sprintf("%d page(s) failed:", len(e.Failures)))
	for _, f := range e.Failures {
		lines = append(lines, "  "+f.Error())
	}
	return strings.Join(lines, "\n")
}

// Result is the outcome of writing a site.
type Result struct {
	// Written holds output files in the order they were written. A path
	// appears once per page written to it.
	Written  []string
	Failures []*PageError
}

// Err returns a *BuildError when any page failed.
func (r *Result) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	return &BuildError{Failures: r.Failures}
}

// Writer writes generated pages into an output directory.
type Writer struct {
	Logger  *slog.Logger
	Metrics metrics.Recorder
}

// Write removes outDir, recreates it empty and writes each page as it is
// pulled from pages. Pages whose output paths collide overwrite each other;
// the last one wins.
//
// A *PageError from the sequence, a page without usable output metadata, or
// a page whose file cannot be created is recorded and skipped. Any other
// error from the sequence, or a failure to recreate outDir itself, stops the
// build and is returned alongside what was written so far.
func (w *Writer) Write(outDir string, pages iter.Seq2[*render.Page, error]) (*Result, error) {
	logger := w.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	rec := w.Metrics
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}

	logger.Debug("Cleaning output directory", utils.Output(outDir))
	if err := os.RemoveAll(outDir); err != nil {
		return nil, errors.Wrapf(err, "removing output directory %s", outDir)
	}
	if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
		return nil, errors.Wrapf(err, "creating output directory %s", outDir)
	}

	res := &Result{}
	fail := func(pe *PageError) {
		logger.Error("Skipping page", utils.Source(pe.Source), utils.Error(pe.Err))
		rec.IncPage(metrics.ResultFailed)
		res.Failures = append(res.Failures, pe)
	}
	owners := make(map[string]string)

	for page, err := range pages {
		if err != nil {
			var pe *PageError
			if errors.As(err, &pe) {
				fail(pe)
				continue
			}
			return res, err
		}

		path, err := BuildPath(outDir, page.Conf)
		if err != nil {
			fail(&PageError{Source: page.Source, Err: err})
			continue
		}
		if prev, ok := owners[path]; ok {
			logger.Warn("Output path collision, overwriting", utils.Output(path), utils.Source(page.Source), slog.String("previous", prev))
		}

		// Another page's file can sit where this page needs a directory.
		if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
			fail(&PageError{Source: page.Source, Err: errors.Wrapf(err, "creating directory for %s", path)})
			continue
		}
		if err := os.WriteFile(path, []byte(page.Content), 0644); err != nil {
			fail(&PageError{Source: page.Source, Err: errors.Wrapf(err, "writing %s", path)})
			continue
		}

		owners[path] = page.Source
		res.Written = append(res.Written, path)
		rec.IncPage(metrics.ResultWritten)
		rec.AddOutputBytes(len(page.Content))
		logger.Info("Generated", utils.Output(path), utils.Source(page.Source))
	}
	return res, nil
}
