// capture streams raw bytes from a UART randomness source into a .bin file,
// optionally appending the ones percentage of the capture to a running log.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Thiagojm/rngbench/bitstat"
	"github.com/Thiagojm/rngbench/capture"
	"github.com/Thiagojm/rngbench/cli"
	"github.com/Thiagojm/rngbench/config"
	"github.com/Thiagojm/rngbench/naming"
	"github.com/Thiagojm/rngbench/progress"
	"github.com/Thiagojm/rngbench/pseudorng"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "capture",
		Short:         "Capture raw bytes from a serial randomness source",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	config.DefineLogFlags(rootCmd)
	config.DefineCaptureFlags(rootCmd)
	rootCmd.Flags().Bool("ones", false, "compute the ones percentage and append it to the ones log")
	rootCmd.Flags().Bool("sim", false, "read from the software generator instead of a serial port")
	rootCmd.Flags().Uint64("seed", 0, "seed for --sim (0 picks a random seed)")
	rootCmd.AddCommand(cli.VersionCmd("capture"), cli.GenConfigCmd())
	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	conf, closeLog, err := cli.Setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()
	c := conf.Capture

	src, srcName, err := openSource(cmd, conf.Capture)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	if err := os.MkdirAll(c.OutDir, 0o755); err != nil {
		return fmt.Errorf("creating out dir: %w", err)
	}
	binPath, err := naming.BuildCapturePath(c.OutDir, time.Now(), c.Source, c.Bytes)
	if err != nil {
		return err
	}
	binFile, err := os.OpenFile(binPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open bin file: %w", err)
	}
	defer func() { _ = binFile.Close() }()
	binBuf := bufio.NewWriter(binFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info().Str("source", srcName).Int("baud", c.Baud).Int64("bytes", c.Bytes).Str("file", binPath).Msg("capturing")
	bar := progress.New(cmd.ErrOrStderr(), c.Bytes)
	res, err := capture.Stream(ctx, src, binBuf, c.Bytes, capture.Options{
		ChunkSize:   c.ChunkSize,
		IdleTimeout: time.Duration(c.IdleTimeout),
		OnProgress:  func(done, total int64) { bar.Update(done) },
	})
	bar.Finish()
	if ferr := binBuf.Flush(); ferr != nil && err == nil {
		err = fmt.Errorf("write bin: %w", ferr)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn().Int64("bytes", res.Bytes).Msg("capture interrupted")
		}
		return err
	}
	log.Info().Int64("bytes", res.Bytes).Str("file", binPath).Msg("capture complete")

	if ones, _ := cmd.Flags().GetBool("ones"); ones {
		rec := bitstat.NewRecord(time.Now(), binPath, res.Bytes, res.Ones)
		if err := bitstat.AppendLog(c.OnesLog, rec); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ones: %.4f%%\n", rec.Percent)
	}
	return nil
}

func openSource(cmd *cobra.Command, c config.Capture) (io.ReadCloser, string, error) {
	if sim, _ := cmd.Flags().GetBool("sim"); sim {
		seed, _ := cmd.Flags().GetUint64("seed")
		r, err := pseudorng.NewReader(seed)
		if err != nil {
			return nil, "", err
		}
		return r, "pseudorng", nil
	}
	portName, err := capture.FindPort(c.Port)
	if err != nil {
		return nil, "", err
	}
	port, err := capture.Open(portName, capture.Config{Baud: c.Baud, ReadTimeout: time.Duration(c.ReadTimeout)})
	if err != nil {
		return nil, "", err
	}
	return port, portName, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("capture failed")
		os.Exit(1)
	}
}
