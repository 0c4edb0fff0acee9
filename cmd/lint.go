// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pglint/pglint/internal/unitio"
	"github.com/pglint/pglint/pkg/config"
	"github.com/pglint/pglint/pkg/engine"
	"github.com/pglint/pglint/pkg/logging"
	"github.com/pglint/pglint/pkg/report"
	"github.com/pglint/pglint/pkg/severity"
	"github.com/pglint/pglint/pkg/suppress"
)

func lintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint <directory>",
		Short: "Replay migration units in order and lint the ones that changed",
		Args:  cobra.ExactArgs(1),
		RunE:  runLint,
	}

	cmd.Flags().String("config", "", "path to a pglint config file (defaults to every rule active)")
	cmd.Flags().String("schema", "public", "default schema for unqualified object names")
	cmd.Flags().String("fail-on", "", "minimum severity that causes a non-zero exit code (overrides the config's failOn)")
	cmd.Flags().String("format", "text", "output format: text, table, or json")
	cmd.Flags().String("since", "", "file name at or after which units are linted; earlier units are only replayed")

	viper.BindPFlag("CONFIG", cmd.Flags().Lookup("config"))
	viper.BindPFlag("LINT_SCHEMA", cmd.Flags().Lookup("schema"))
	viper.BindPFlag("FAIL_ON", cmd.Flags().Lookup("fail-on"))
	viper.BindPFlag("FORMAT", cmd.Flags().Lookup("format"))
	viper.BindPFlag("SINCE", cmd.Flags().Lookup("since"))

	return cmd
}

func runLint(cmd *cobra.Command, args []string) error {
	dir := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	schema := viper.GetString("LINT_SCHEMA")
	units, err := unitio.LoadDir(dir, schema)
	if err != nil {
		return fmt.Errorf("failed to load migration units: %w", err)
	}

	since := viper.GetString("SINCE")
	activeRules := cfg.ActiveRuleSet()
	pipeline := engine.New(logging.New())

	var findings []severity.Finding
	lintingStarted := since == ""
	for _, unit := range units {
		if !lintingStarted && strings.Contains(unit.SourceFile, since) {
			lintingStarted = true
		}
		if !lintingStarted {
			pipeline.Replay(unit)
			continue
		}
		unitFindings := pipeline.Lint(unit, activeRules)
		for i, f := range unitFindings {
			if sev, ok := cfg.SeverityOverrides[f.RuleID]; ok {
				f.Severity = sev
			}
			unitFindings[i] = f
		}
		if unit.IsDown {
			unitFindings = severity.Cap(unitFindings, severity.Info)
		}
		findings = append(findings, unitFindings...)
	}

	findings = suppress.Apply(findings, nil)

	failOn := cfg.FailOn
	if s := viper.GetString("FAIL_ON"); s != "" {
		sev, ok := severity.ParseSeverity(s)
		if !ok {
			return fmt.Errorf("invalid --fail-on severity %q", s)
		}
		failOn = sev
	}

	if err := renderFindings(cmd, findings); err != nil {
		return err
	}

	for _, f := range findings {
		if severity.MeetsThreshold(f.Severity, failOn) {
			os.Exit(1)
		}
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	path := viper.GetString("CONFIG")
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func renderFindings(cmd *cobra.Command, findings []severity.Finding) error {
	switch viper.GetString("FORMAT") {
	case "json":
		return report.JSON(cmd.OutOrStdout(), findings)
	case "table":
		return report.Table(findings)
	default:
		return report.Text(cmd.OutOrStdout(), findings)
	}
}
