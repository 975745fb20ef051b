// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package journal

import (
	"fmt"
	"time"
)

// Kind - type of journalled operation
type Kind string

// all journalled operations
const (
	KindOpen     Kind = "open"
	KindClose    Kind = "close"
	KindDeposit  Kind = "deposit"
	KindWithdraw Kind = "withdraw"
	KindTransfer Kind = "transfer"
	KindInterest Kind = "interest"
	KindRollback Kind = "rollback"

	// a failed transfer whose debit could not be undone; Amount left
	// the ledger
	KindInconsistency Kind = "inconsistency"
)

// Entry - one committed operation
//
// Source is the debited account, Destination the credited one; open
// and close use Destination and Source respectively
type Entry struct {
	Sequence    uint64    `json:"sequence"`
	Kind        Kind      `json:"kind"`
	Source      string    `json:"source,omitempty"`
	Destination string    `json:"destination,omitempty"`
	Amount      int64     `json:"amount"`
	Timestamp   time.Time `json:"timestamp"`
}

// String - single line form for logs and the cli
func (e Entry) String() string {
	src := e.Source
	if "" == src {
		src = "-"
	}
	dst := e.Destination
	if "" == dst {
		dst = "-"
	}
	return fmt.Sprintf("%8d %s %-8s %s -> %s %d", e.Sequence, e.Timestamp.Format(time.RFC3339), e.Kind, src, dst, e.Amount)
}
