// onesreport turns the running ones-percentage log into a spreadsheet with a
// line chart.
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Thiagojm/rngbench/bitstat"
	"github.com/Thiagojm/rngbench/cli"
	"github.com/Thiagojm/rngbench/config"
	"github.com/Thiagojm/rngbench/report"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "onesreport <ones_log.csv>",
		Short:         "Export the ones log to an xlsx chart",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	config.DefineLogFlags(rootCmd)
	rootCmd.Flags().String("out", "", "output path (default: log path with .xlsx extension)")
	rootCmd.AddCommand(cli.VersionCmd("onesreport"))
	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	_, closeLog, err := cli.Setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	logPath := args[0]
	records, err := bitstat.ReadLogFile(logPath)
	if err != nil {
		return err
	}
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = strings.TrimSuffix(logPath, filepath.Ext(logPath)) + ".xlsx"
	}
	if err := report.WriteOnesLog(records, out); err != nil {
		return err
	}
	log.Info().Int("records", len(records)).Str("path", out).Msg("report written")
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("onesreport failed")
		os.Exit(1)
	}
}
