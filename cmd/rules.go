// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/pglint/pglint/pkg/rules"
)

func rulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List every registered lint rule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data := pterm.TableData{{"id", "default severity", "description"}}
			for _, r := range rules.All() {
				data = append(data, []string{r.ID(), fmt.Sprint(r.DefaultSeverity()), r.Description()})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
		},
	}
}
