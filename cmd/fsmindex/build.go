package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kolkov/fsmindex"
	"github.com/kolkov/fsmindex/internal/bundle"
)

// NewBuildCmd returns the command that builds the complete index.
func NewBuildCmd() *cobra.Command {
	var (
		file    string
		format  string
		workers int
		serial  int
		exclude string
		asCBOR  bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the complete index from a bundle",
		Long: "Build resolves every automaton state reachable from the initial state\n" +
			"and writes the finished index to stdout as JSON, or CBOR with --cbor.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ix, _, err := compileBundle(file, format, exclude)
			if err != nil {
				return err
			}

			idx, err := ix.Build(&fsmindex.Config{
				Workers:         workers,
				SerialThreshold: serial,
			})
			if err != nil {
				return err
			}

			format := bundle.FormatJSON
			if asCBOR {
				format = bundle.FormatCBOR
			}
			data, err := bundle.NewIndexDocument(idx).Encode(format)
			if err != nil {
				return err
			}
			if _, err := os.Stdout.Write(data); err != nil {
				return err
			}
			if format == bundle.FormatJSON {
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Bundle file, JSON or CBOR")
	cmd.Flags().StringVar(&format, "format", "", "Bundle format, json or cbor (default: by file extension)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Scan worker count (default: number of CPUs)")
	cmd.Flags().IntVar(&serial, "serial-threshold", 0, "Vocabulary size scanned without fan-out (default 1000)")
	cmd.Flags().StringVar(&exclude, "exclude", "", "Drop vocabulary tokens matching this pattern")
	cmd.Flags().BoolVar(&asCBOR, "cbor", false, "Emit CBOR instead of JSON")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
