package cmd

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZacxDev/crank/config"
	"github.com/ZacxDev/crank/metrics"
	"github.com/ZacxDev/crank/render"
	"github.com/ZacxDev/crank/site"
	"github.com/ZacxDev/crank/utils"
	"github.com/spf13/cobra"
)

var (
	configFile  string
	renderer    string
	sitemap     bool
	metricsFile string
	verbose     bool
)

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&configFile, "config", "c", "", "site configuration file, JSON or YAML (default: OUT/config.json)")
	flags.StringVar(&renderer, "renderer", "gomarkdown", "markdown renderer: "+strings.Join(render.MarkdownNames(), ", "))
	flags.BoolVar(&sitemap, "sitemap", false, "write OUT/sitemap.xml under the site's baseURL")
	flags.StringVar(&metricsFile, "metrics-file", "", "write build metrics in Prometheus text format to this file")
	flags.BoolVar(&verbose, "verbose", false, "enable debug logging")
}

func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func runBuild(cmd *cobra.Command, args []string) error {
	src, out := args[0], args[1]
	logger := newLogger(os.Stderr)

	// The config is read before OUT is cleared, so the default location
	// inside OUT works.
	cfgPath := configFile
	if cfgPath == "" {
		cfgPath = filepath.Join(out, config.DefaultFile)
	}
	siteConf, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	logger.Debug("Loaded site config", slog.String("path", cfgPath), slog.Int("keys", len(siteConf)))

	md, err := render.MarkdownByName(renderer)
	if err != nil {
		return err
	}

	var rec metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if metricsFile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		rec = prom
	}

	logger.Info("Building static site", utils.Source(src), utils.Output(out))
	_, buildErr := site.Build(site.Options{
		Src:      src,
		Out:      out,
		Site:     siteConf,
		Markdown: md,
		Sitemap:  sitemap,
		Logger:   logger,
		Metrics:  rec,
	})

	if prom != nil {
		if err := prom.WriteTextfile(metricsFile); err != nil {
			logger.Error("Writing metrics failed", utils.Error(err))
		}
	}
	return buildErr
}
