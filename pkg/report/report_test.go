// SPDX-License-Identifier: Apache-2.0

package report_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pglint/pglint/pkg/report"
	"github.com/pglint/pglint/pkg/severity"
)

func sampleFindings() []severity.Finding {
	return []severity.Finding{
		{RuleID: "PGM201", Severity: severity.Critical, Message: "DROP TABLE orders", File: "002.sql", Span: severity.Span{StartLine: 3}},
		{RuleID: "PGM401", Severity: severity.Minor, Message: "missing IF EXISTS", File: "002.sql", Span: severity.Span{StartLine: 3}},
	}
}

func TestTextListsOneLinePerFinding(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.Text(&buf, sampleFindings()))

	out := buf.String()
	assert.Contains(t, out, "PGM201")
	assert.Contains(t, out, "002.sql:3")
	assert.Contains(t, out, "PGM401")
}

func TestJSONRoundTripsFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.JSON(&buf, sampleFindings()))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "PGM201", decoded[0]["rule_id"])
	assert.Equal(t, "critical", decoded[0]["severity"])
	assert.Equal(t, float64(3), decoded[0]["start_line"])
}

func TestJSONEmptyFindingsIsEmptyArray(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.JSON(&buf, nil))
	assert.JSONEq(t, "[]", buf.String())
}
