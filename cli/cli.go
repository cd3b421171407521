// Package cli holds cobra subcommands shared by the rngbench binaries.
package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/Thiagojm/rngbench/config"
	"github.com/Thiagojm/rngbench/logging"
)

// Version is set at build time with -ldflags "-X github.com/Thiagojm/rngbench/cli.Version=...".
var Version = "dev"

func VersionCmd(tool string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (Go version: %s)\n", tool, Version, runtime.Version())
		},
	}
}

func GenConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "genconfig",
		Short: "Print a TOML config file with default values",
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.WriteDefault(cmd.OutOrStdout())
		},
	}
}

// Setup loads and validates the config for cmd and configures logging. The
// returned func must be called on exit.
func Setup(cmd *cobra.Command) (config.Config, func(), error) {
	conf, err := config.Load(cmd)
	if err != nil {
		return config.Config{}, nil, err
	}
	if err := conf.Validate(); err != nil {
		return config.Config{}, nil, err
	}
	closeLog, err := logging.Setup(conf.Log)
	if err != nil {
		return config.Config{}, nil, err
	}
	return conf, closeLog, nil
}
