// serialmon prints ASCII lines arriving on a serial port and lists the ports
// present on the system.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Thiagojm/rngbench/capture"
	"github.com/Thiagojm/rngbench/cli"
	"github.com/Thiagojm/rngbench/config"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "serialmon",
		Short:         "Print text lines received on a serial port",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	config.DefineLogFlags(rootCmd)
	config.DefineCaptureFlags(rootCmd)
	rootCmd.AddCommand(listCmd(), cli.VersionCmd("serialmon"), cli.GenConfigCmd())
	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	conf, closeLog, err := cli.Setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	portName, err := capture.FindPort(conf.Capture.Port)
	if err != nil {
		return err
	}
	port, err := capture.Open(portName, capture.Config{Baud: conf.Capture.Baud, ReadTimeout: time.Duration(conf.Capture.ReadTimeout)})
	if err != nil {
		return err
	}
	defer func() { _ = port.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info().Str("port", portName).Int("baud", conf.Capture.Baud).Msg("monitoring")
	out := cmd.OutOrStdout()
	err = capture.Lines(ctx, port, func(line string) { fmt.Fprintln(out, line) })
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List serial ports",
		RunE: func(cmd *cobra.Command, args []string) error {
			ports, err := capture.ListPorts()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(ports) == 0 {
				fmt.Fprintln(out, "No serial ports found")
				return nil
			}
			for i, p := range ports {
				fmt.Fprintf(out, "Port %d: %s\n", i+1, p.Name)
				if p.IsUSB {
					fmt.Fprintf(out, "  USB ID: %s:%s\n", p.VID, p.PID)
					if p.Product != "" {
						fmt.Fprintf(out, "  Product: %s\n", p.Product)
					}
					if p.SerialNumber != "" {
						fmt.Fprintf(out, "  Serial: %s\n", p.SerialNumber)
					}
				}
			}
			return nil
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("serialmon failed")
		os.Exit(1)
	}
}
