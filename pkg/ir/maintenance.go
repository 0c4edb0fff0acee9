// SPDX-License-Identifier: Apache-2.0

package ir

import "github.com/oapi-codegen/nullable"

// VacuumFull is `VACUUM FULL [table]`. Table is absent for a
// database-wide VACUUM FULL.
type VacuumFull struct {
	Table nullable.Nullable[string]
}

// Cluster is `CLUSTER table [USING index]`.
type Cluster struct {
	Table string
}

// AlterIndexAttachPartition is `ALTER INDEX parent_index ATTACH
// PARTITION child_index`.
type AlterIndexAttachPartition struct {
	ParentIndex string
	ChildIndex  string
}

// DisableTrigger is `ALTER TABLE table DISABLE TRIGGER name`.
type DisableTrigger struct {
	Table   string
	Trigger string
}

func (VacuumFull) isNode()                {}
func (Cluster) isNode()                   {}
func (AlterIndexAttachPartition) isNode() {}
func (DisableTrigger) isNode()            {}
