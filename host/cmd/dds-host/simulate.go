package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"duedds/core"
	"duedds/host/analysis"
	"duedds/host/monitor"
	"duedds/sim"
)

func newSimulateCmd(opts *globalOpts) *cobra.Command {
	var (
		periods int
		dump    bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run setup and the feed loop against simulated peripherals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve()
			if err != nil {
				return err
			}
			if periods < 1 {
				return fmt.Errorf("periods must be at least 1, got %d", periods)
			}
			hw := cfg.Hardware()

			dac := sim.NewDAC(nil, hw.FIFODepth, hw.DACMax)
			timer := sim.NewTimer(hw.TimerClock, hw.CounterBits)
			uart := &sim.UART{}

			sig, err := core.Setup(cfg.SignalConfig(), dac, timer, core.NewReporter(uart))
			if err != nil {
				return err
			}
			output := sim.Play(sig.Feeder, dac, periods*int(sig.Table.Len()))

			out := cmd.OutOrStdout()
			report, err := monitor.New(&uart.Tx).Next(cmd.Context())
			if err != nil {
				return fmt.Errorf("boot report: %w", err)
			}
			s := report.Status
			fmt.Fprintf(out, "boot report:   %s f=%d Hz n=%d compare=%d (plays %.4f Hz)\n",
				s.Waveform, s.SignalFrequency, s.TableSize, s.Compare, s.SignalHz())
			fmt.Fprintf(out, "timer:         %v, %d ticks per trigger\n", timer.Calls(), timer.TriggerPeriodTicks())
			fmt.Fprintf(out, "converter:     %d writes, %d conversions, %d underruns, %d polls\n",
				dac.Writes(), dac.Conversions(), dac.Underruns(), dac.Polls())

			r, err := analysis.Analyze(output[:sig.Table.Len()])
			if err == nil {
				fmt.Fprintf(out, "first period:  thd %.4f%%, p-p %.0f\n", 100*r.THD, r.PeakToPeak)
			}

			if dump {
				for _, v := range output {
					fmt.Fprintln(out, v)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&periods, "periods", "p", 2, "signal periods to feed")
	cmd.Flags().BoolVar(&dump, "dump", false, "print every converted value")
	return cmd
}
