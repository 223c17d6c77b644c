package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/kolkov/fsmindex"
)

// NewStatsCmd returns the command that summarizes a bundle and its index.
func NewStatsCmd() *cobra.Command {
	var (
		file    string
		format  string
		workers int
		exclude string
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize a bundle and the index built from it",
		Long: "Stats builds the index and prints input counters plus a per-state view:\n" +
			"how many tokens are consumable from each resolved state and whether the\n" +
			"state is accepting.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ix, doc, err := compileBundle(file, format, exclude)
			if err != nil {
				return err
			}

			idx, err := ix.Build(&fsmindex.Config{Workers: workers})
			if err != nil {
				return err
			}

			fmt.Printf("transitions:     %d\n", len(doc.Automaton.Transitions))
			fmt.Printf("alphabet:        %d mapped characters\n", len(doc.Alphabet.Symbols))
			fmt.Printf("tokens:          %d in bundle, %d retained\n", len(doc.Vocabulary), ix.VocabLen())
			fmt.Printf("resolved states: %d\n", idx.Len())
			fmt.Println()

			var data [][]string
			for _, s := range idx.States() {
				data = append(data, []string{
					strconv.FormatInt(int64(s), 10),
					strconv.Itoa(len(idx.Allowed(s))),
					yesNo(idx.Final(s)),
				})
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"STATE", "TOKENS", "FINAL"})
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetHeaderLine(false)
			table.SetBorder(false)
			table.SetNoWhiteSpace(true)
			table.SetTablePadding("    ")
			table.AppendBulk(data)
			table.Render()

			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Bundle file, JSON or CBOR")
	cmd.Flags().StringVar(&format, "format", "", "Bundle format, json or cbor (default: by file extension)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Scan worker count (default: number of CPUs)")
	cmd.Flags().StringVar(&exclude, "exclude", "", "Drop vocabulary tokens matching this pattern")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
