package main

import (
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"duedds/core"
	"duedds/host/analysis"
)

func newTableCmd(opts *globalOpts) *cobra.Command {
	var asCSV bool

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Build the phase table and print it or its statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve()
			if err != nil {
				return err
			}

			w, err := core.WaveformByName(cfg.Waveform)
			if err != nil {
				return err
			}
			table, err := core.NewPhaseTableFor(cfg.TableSize, w, cfg.Hardware().DACMax)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asCSV {
				cw := csv.NewWriter(out)
				cw.Write([]string{"index", "value"})
				for i, v := range table.Samples() {
					cw.Write([]string{strconv.Itoa(i), strconv.Itoa(int(v))})
				}
				cw.Flush()
				return cw.Error()
			}

			r, err := analysis.Analyze(table.Samples())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "waveform:      %s, %d samples, full scale %d\n", table.Waveform(), table.Len(), table.Max())
			fmt.Fprintf(out, "min/max:       %.0f / %.0f\n", r.Min, r.Max)
			fmt.Fprintf(out, "mean:          %.3f\n", r.Mean)
			fmt.Fprintf(out, "ac rms:        %.3f\n", r.RMS)
			fmt.Fprintf(out, "fundamental:   %.3f\n", r.Fundamental)
			fmt.Fprintf(out, "thd:           %.4f%% (%.1f dB)\n", 100*r.THD, r.THDdB())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asCSV, "csv", false, "print the table as CSV instead of statistics")
	return cmd
}
