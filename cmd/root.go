// SPDX-License-Identifier: Apache-2.0

// Package cmd implements the pglint CLI: a Cobra command tree that wires
// pkg/config, internal/unitio, pkg/engine, pkg/suppress, and pkg/report
// together.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is the pglint version, overridden at build time via -ldflags.
var Version = "development"

func init() {
	viper.SetEnvPrefix("PGLINT")
	viper.AutomaticEnv()
}

var rootCmd = &cobra.Command{
	Use:          "pglint",
	Short:        "Replay and lint PostgreSQL migrations without a live database",
	SilenceUsage: true,
	Version:      Version,
}

// Prepare builds the command tree without running it, so tooling (e.g.
// tools/build-cli-definition.go) can introspect it.
func Prepare() *cobra.Command {
	rootCmd.AddCommand(lintCmd())
	rootCmd.AddCommand(explainCmd())
	rootCmd.AddCommand(rulesCmd())
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return Prepare().Execute()
}
