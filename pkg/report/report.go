// SPDX-License-Identifier: Apache-2.0

// Package report renders findings as plain text, a colorized terminal
// table, or machine-readable JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/pglint/pglint/pkg/severity"
)

// Text writes one line per finding: "file:line: RULEID [severity] message".
func Text(w io.Writer, findings []severity.Finding) error {
	for _, f := range findings {
		if _, err := fmt.Fprintf(w, "%s:%d: %s [%s] %s\n", f.File, f.Span.StartLine, f.RuleID, f.Severity, f.Message); err != nil {
			return err
		}
	}
	return nil
}

// Table renders findings with pterm.DefaultTable, severity-colored.
func Table(findings []severity.Finding) error {
	data := pterm.TableData{{"severity", "rule", "file", "line", "message"}}
	for _, f := range findings {
		data = append(data, []string{
			styleForSeverity(f.Severity).Sprint(f.Severity.String()),
			f.RuleID,
			f.File,
			fmt.Sprintf("%d", f.Span.StartLine),
			f.Message,
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func styleForSeverity(sev severity.Severity) *pterm.Style {
	switch sev {
	case severity.Blocker, severity.Critical:
		return pterm.NewStyle(pterm.FgRed)
	case severity.Major:
		return pterm.NewStyle(pterm.FgYellow)
	default:
		return pterm.NewStyle(pterm.FgDefault)
	}
}

// jsonFinding is the on-the-wire shape for JSON output; it flattens
// Finding's nested Span so consumers don't need to know about the
// internal severity.Span type.
type jsonFinding struct {
	RuleID      string `json:"rule_id"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	File        string `json:"file"`
	StartLine   int    `json:"start_line"`
	EndLine     int    `json:"end_line"`
	StartOffset int    `json:"start_offset"`
	EndOffset   int    `json:"end_offset"`
}

// JSON writes findings as a JSON array.
func JSON(w io.Writer, findings []severity.Finding) error {
	out := make([]jsonFinding, len(findings))
	for i, f := range findings {
		out[i] = jsonFinding{
			RuleID:      f.RuleID,
			Severity:    f.Severity.String(),
			Message:     f.Message,
			File:        f.File,
			StartLine:   f.Span.StartLine,
			EndLine:     f.Span.EndLine,
			StartOffset: f.Span.StartOffset,
			EndOffset:   f.Span.EndOffset,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
