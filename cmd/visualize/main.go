// visualize renders captured .bin files as a grayscale bitmap (one pixel per
// byte) and a green/black bit-plane bitmap (one pixel per bit).
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Thiagojm/rngbench/bitmap"
	"github.com/Thiagojm/rngbench/bitstat"
	"github.com/Thiagojm/rngbench/cli"
	"github.com/Thiagojm/rngbench/config"
	"github.com/Thiagojm/rngbench/naming"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "visualize <file.bin>...",
		Short:         "Render captures as grayscale and bit-plane PNG images",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	config.DefineLogFlags(rootCmd)
	rootCmd.Flags().Bool("ones", false, "print the ones percentage of each file")
	rootCmd.Flags().String("ones_log", "", "also append the ones percentage to this CSV log")
	rootCmd.AddCommand(cli.VersionCmd("visualize"))
	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	_, closeLog, err := cli.Setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	showOnes, _ := cmd.Flags().GetBool("ones")
	onesLog, _ := cmd.Flags().GetString("ones_log")
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if len(data) == 0 {
			return fmt.Errorf("%s: empty capture", path)
		}
		grayPath, bwPath := naming.ImagePaths(path)
		if err := bitmap.WritePNG(grayPath, bitmap.Grayscale(data)); err != nil {
			return err
		}
		if err := bitmap.WritePNG(bwPath, bitmap.BitPlane(data)); err != nil {
			return err
		}
		log.Info().Str("file", path).Str("grayscale", grayPath).Str("bitplane", bwPath).Msg("rendered")

		if showOnes || onesLog != "" {
			rec := bitstat.NewRecord(time.Now(), path, int64(len(data)), int64(bitstat.CountOnes(data)))
			if showOnes {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ones %.4f%%\n", path, rec.Percent)
			}
			if onesLog != "" {
				if err := bitstat.AppendLog(onesLog, rec); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("visualize failed")
		os.Exit(1)
	}
}
