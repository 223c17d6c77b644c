// fsmindex - token transition index builder
//
// Builds, scans, and inspects constrained-generation index bundles from the
// command line. The heavy lifting lives in the fsmindex library; this binary
// adds file handling and human-readable output.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kolkov/fsmindex"
	"github.com/kolkov/fsmindex/internal/bundle"
)

// version is set by GoReleaser at build time via -ldflags.
// For development builds, it will be "dev".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := NewCLI().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fsmindex: %v\n", err)
		os.Exit(1)
	}
}

// NewCLI assembles the command tree.
func NewCLI() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "fsmindex",
		Short: "Precompute token transition indexes for constrained generation",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Disable usage printing on errors
			cmd.SilenceUsage = true
			if verbose {
				slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
		},
		Version: version,
	}
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"fsmindex version {{.Version}}\n  commit: %s\n  built:  %s\n", commit, date))
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	cobra.EnableCommandSorting = false

	rootCmd.AddCommand(NewBuildCmd(), NewScanCmd(), NewStatsCmd())
	return rootCmd
}

// compileBundle loads a bundle file, applies the token exclusion pattern,
// and compiles the inputs. The format flag, when non-empty, overrides the
// file extension. The decoded document is returned alongside the indexer for
// commands that report on the raw inputs.
func compileBundle(path, format, exclude string) (*fsmindex.Indexer, *bundle.Document, error) {
	f := bundle.DetectFormat(path)
	if format != "" {
		f = bundle.Format(strings.ToLower(format))
	}
	doc, err := bundle.Load(path, f)
	if err != nil {
		return nil, nil, err
	}
	automaton, alphabet, vocab, err := doc.ToInputs()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	if exclude != "" {
		vocab, err = vocab.Exclude(exclude)
		if err != nil {
			return nil, nil, err
		}
	}
	ix, err := fsmindex.Compile(automaton, alphabet, vocab)
	if err != nil {
		return nil, nil, err
	}
	return ix, doc, nil
}
