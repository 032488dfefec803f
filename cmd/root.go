package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is the release printed by --version.
var Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "crank SRC OUT",
	Short: "crank - a simple static site generator",
	Long: `crank turns a directory of markdown and HTML files, each starting with a JSON
front matter block, into a static site. Every page is written to
OUT/<categories...>/<slug>/index.html; OUT is removed and rebuilt on each run.`,
	Version:       Version,
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runBuild,
}

func init() {
	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")
}

// Execute runs the root command. Errors are printed once, here.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
