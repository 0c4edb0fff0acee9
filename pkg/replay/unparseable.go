// SPDX-License-Identifier: Apache-2.0

package replay

import (
	"github.com/pglint/pglint/pkg/catalog"
	"github.com/pglint/pglint/pkg/ir"
)

func applyUnparseable(cat *catalog.Catalog, n ir.Unparseable) {
	hint, ok := ir.GetOpt(n.TableHint)
	if !ok {
		return
	}
	if table := cat.Get(hint); table != nil {
		table.Incomplete = true
	}
}
