package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"duedds/host/monitor"
	"duedds/host/serial"
)

func newMonitorCmd(opts *globalOpts) *cobra.Command {
	var (
		device  string
		baud    int
		timeout time.Duration
		follow  bool
	)

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Read the boot report from the board's UART",
		Long:  "Open the serial port, wait for the status frame the firmware sends before it starts the trigger timer, and print it. Reset the board after starting the monitor.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve()
			if err != nil {
				return err
			}
			if device == "" {
				device = cfg.Device
			}
			if baud == 0 {
				baud = cfg.Baud
			}

			pcfg := serial.DefaultConfig(device)
			pcfg.Baud = baud
			port, err := serial.Open(pcfg)
			if err != nil {
				return err
			}
			defer port.Close()
			if err := port.Flush(); err != nil {
				return fmt.Errorf("flush %s: %w", device, err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			out := cmd.OutOrStdout()
			mon := monitor.New(port)
			mon.OnError = func(err error) {
				fmt.Fprintln(cmd.ErrOrStderr(), "bad frame:", err)
			}
			show := func(r monitor.Report) {
				s := r.Status
				fmt.Fprintf(out, "[%d] %s f=%d Hz n=%d clock=%d compare=%d max=%d -> %.4f Hz\n",
					r.Seq, s.Waveform, s.SignalFrequency, s.TableSize, s.TimerClock, s.Compare, s.DACMax, s.SignalHz())
			}

			if follow {
				err := mon.Watch(ctx, show)
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}

			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			r, err := mon.Next(ctx)
			if err != nil {
				return fmt.Errorf("no status report from %s: %w", device, err)
			}
			show(r)
			return nil
		},
	}

	cmd.Flags().StringVarP(&device, "device", "d", "", "serial device, defaults to the configured one")
	cmd.Flags().IntVarP(&baud, "baud", "b", 0, "baud rate, defaults to the configured one")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "give up after this long (0 waits forever)")
	cmd.Flags().BoolVar(&follow, "follow", false, "keep printing reports until interrupted")
	return cmd
}
