package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/kolkov/fsmindex"
)

// NewScanCmd returns the command that scans the vocabulary from one state.
func NewScanCmd() *cobra.Command {
	var (
		file    string
		format  string
		state   int32
		workers int
		exclude string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the vocabulary from one automaton state",
		Long: "Scan walks every vocabulary token from the given state and lists the\n" +
			"tokens the automaton consumes in full, with the state each one reaches.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ix, _, err := compileBundle(file, format, exclude)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("state") {
				state = ix.Initial()
			}

			transitions, err := ix.Scan(state, &fsmindex.Config{Workers: workers})
			if err != nil {
				return err
			}

			if asJSON {
				return writeScanJSON(state, transitions)
			}
			if len(transitions) == 0 {
				fmt.Printf("no tokens consumable from state %d\n", state)
				return nil
			}

			var data [][]string
			for _, tr := range transitions {
				data = append(data, []string{
					strconv.FormatInt(int64(tr.TokenID), 10),
					strconv.FormatInt(int64(tr.EndState), 10),
				})
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"TOKEN", "END STATE"})
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
	cmd.Flags().Int32Var(&state, "state", 0, "State to scan from (default: the initial state)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Scan worker count (default: number of CPUs)")
	cmd.Flags().StringVar(&exclude, "exclude", "", "Drop vocabulary tokens matching this pattern")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func writeScanJSON(state int32, transitions []fsmindex.TokenTransition) error {
	type pair struct {
		Token int32 `json:"token"`
		End   int32 `json:"end"`
	}
	out := struct {
		State  int32  `json:"state"`
		Tokens []pair `json:"tokens"`
	}{State: state, Tokens: make([]pair, len(transitions))}
	for i, tr := range transitions {
		out.Tokens[i] = pair{Token: tr.TokenID, End: tr.EndState}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
