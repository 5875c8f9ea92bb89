package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"duedds/core"
	"duedds/host/analysis"
)

func newPlanCmd(opts *globalOpts) *cobra.Command {
	var neighbors int

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute the compare value and the frequency actually produced",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve()
			if err != nil {
				return err
			}
			hw := cfg.Hardware()

			plan, err := core.PlanTrigger(cfg.TriggerConfig(), hw.CounterBits)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "target:        %s (%d-bit counter)\n", cfg.Target, hw.CounterBits)
			fmt.Fprintf(out, "timer clock:   %d Hz\n", cfg.TimerClock)
			fmt.Fprintf(out, "requested:     %d Hz x %d samples\n", cfg.SignalFrequency, cfg.TableSize)
			fmt.Fprintf(out, "compare:       %d\n", plan.Compare)
			fmt.Fprintf(out, "trigger:       %.3f Hz (%d ticks)\n", plan.TriggerHz, plan.PeriodTicks)
			fmt.Fprintf(out, "signal:        %.4f Hz\n", plan.SignalHz)
			fmt.Fprintf(out, "error:         %+.4f Hz (%+.1f ppm)\n", plan.ErrorHz(), plan.ErrorPPM())

			if neighbors <= 0 {
				return nil
			}
			cands, err := analysis.Neighbors(cfg.TriggerConfig(), hw.CounterBits, neighbors)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "\ncompare  signal [Hz]   error [ppm]")
			for _, c := range cands {
				fmt.Fprintf(out, "%7d  %11.4f  %+12.1f\n", c.Compare, c.SignalHz, c.ErrorPPM)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&neighbors, "neighbors", 2, "also list this many compare values on either side")
	return cmd
}
