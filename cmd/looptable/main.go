// looptable prints the Verilog case table mapping the fast and slow
// configuration selectors to prime loop lengths.
package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Thiagojm/rngbench/cli"
	"github.com/Thiagojm/rngbench/config"
	"github.com/Thiagojm/rngbench/looptable"
	"github.com/Thiagojm/rngbench/primes"
	"github.com/Thiagojm/rngbench/report"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "looptable",
		Short:         "Generate the fast/slow loop length case table",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	config.DefineLogFlags(rootCmd)
	config.DefineTableFlags(rootCmd)
	rootCmd.Flags().String("out", "", "write the table to this file instead of stdout")
	rootCmd.Flags().String("xlsx", "", "also write the table as a spreadsheet grid")
	rootCmd.AddCommand(cli.VersionCmd("looptable"), cli.GenConfigCmd())
	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	conf, closeLog, err := cli.Setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	base, err := primes.Sequence(conf.Table.Primes)
	if err != nil {
		return fmt.Errorf("base sequence: %w", err)
	}
	spec := conf.Table.Spec()
	log.Debug().Int("primes", base.Len()).Int("fast_first", spec.FastFirst).Int("fast_last", spec.FastLast).
		Ints("multipliers", spec.Multipliers).Msg("generating table")

	table, err := looptable.Build(base, spec)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := table.WriteVerilog(&buf, spec.Format); err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		_, err = buf.WriteTo(cmd.OutOrStdout())
		if err != nil {
			return err
		}
	} else {
		if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write table: %w", err)
		}
		log.Info().Str("path", out).Int("entries", len(table.Entries)).Msg("table written")
	}

	if xlsx, _ := cmd.Flags().GetString("xlsx"); xlsx != "" {
		if err := report.WriteTable(table, xlsx); err != nil {
			return fmt.Errorf("write spreadsheet: %w", err)
		}
		log.Info().Str("path", xlsx).Msg("spreadsheet written")
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("looptable failed")
		os.Exit(1)
	}
}
