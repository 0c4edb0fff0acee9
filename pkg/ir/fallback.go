// SPDX-License-Identifier: Apache-2.0

package ir

import "github.com/oapi-codegen/nullable"

// Unparseable is a statement the upstream parser recognized as SQL but
// could not classify into any other Node variant. TableHint, when set,
// names the table the statement most likely concerns (e.g. extracted by
// a best-effort regex over an unsupported ALTER TABLE form); replay marks
// that table Incomplete rather than dropping the statement silently.
type Unparseable struct {
	RawSQL     string
	TableHint  nullable.Nullable[string]
}

// Ignored is DDL the engine deliberately does not model (e.g. COMMENT ON,
// GRANT, CREATE EXTENSION). It is distinct from Unparseable: the front
// end recognized the statement perfectly well, it's just out of scope.
type Ignored struct {
	RawSQL string
}

func (Unparseable) isNode() {}
func (Ignored) isNode()     {}
