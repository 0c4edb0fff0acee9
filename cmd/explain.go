// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pglint/pglint/pkg/rules"
)

func explainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain <rule-id>",
		Short: "Print a rule's full explanation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, ok := rules.Get(args[0])
			if !ok {
				return fmt.Errorf("unknown rule id %q", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n\n%s\n", r.ID(), r.DefaultSeverity(), r.Explanation())
			return nil
		},
	}
}
