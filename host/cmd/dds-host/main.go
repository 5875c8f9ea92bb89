// Command dds-host plans, inspects and monitors the signal generator
// firmware from a desktop machine.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"duedds/host/config"
	"duedds/protocol"
)

// globalOpts are shared by all subcommands. Zero values mean "not given".
type globalOpts struct {
	configPath string
	over       config.Config
}

func newRootCmd() *cobra.Command {
	opts := &globalOpts{}

	rootCmd := &cobra.Command{
		Use:           "dds-host",
		Short:         "Host tools for the DAC signal generator",
		Long:          "Compute trigger timing, inspect phase tables, simulate the feed loop and read the boot report of the DAC signal generator firmware.",
		Version:       protocol.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "JSON configuration file")
	flags.StringVarP(&opts.over.Target, "target", "t", "", "firmware target (sam3x, rp2040, rp2350)")
	flags.Uint32VarP(&opts.over.SignalFrequency, "freq", "f", 0, "signal frequency [Hz]")
	flags.Uint32VarP(&opts.over.TableSize, "size", "n", 0, "phase table size (power of two)")
	flags.StringVarP(&opts.over.Waveform, "waveform", "w", "", "waveform name")
	flags.Uint32Var(&opts.over.TimerClock, "clock", 0, "timer clock [Hz], defaults to the target's")

	rootCmd.AddCommand(
		newPlanCmd(opts),
		newTableCmd(opts),
		newSimulateCmd(opts),
		newMonitorCmd(opts),
	)
	return rootCmd
}

func (o *globalOpts) resolve() (*config.Config, error) {
	return config.Resolve(o.configPath, o.over)
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
