// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"go.uber.org/atomic"
)

type statistics struct {
	opened              atomic.Uint64
	closed              atomic.Uint64
	deposits            atomic.Uint64
	withdrawals         atomic.Uint64
	transfers           atomic.Uint64
	interest            atomic.Uint64
	rejected            atomic.Uint64
	rollbacks           atomic.Uint64
	inconsistencies     atomic.Uint64
	persistenceFailures atomic.Uint64
}

// Statistics - operation counters since the ledger was created
type Statistics struct {
	Opened              uint64 `json:"opened"`
	Closed              uint64 `json:"closed"`
	Deposits            uint64 `json:"deposits"`
	Withdrawals         uint64 `json:"withdrawals"`
	Transfers           uint64 `json:"transfers"`
	Interest            uint64 `json:"interest"`
	Rejected            uint64 `json:"rejected"`
	Rollbacks           uint64 `json:"rollbacks"`
	Inconsistencies     uint64 `json:"inconsistencies"`
	PersistenceFailures uint64 `json:"persistence_failures"`
}

// Statistics - read the counters without taking the ledger lock
func (l *Ledger) Statistics() Statistics {
	return Statistics{
		Opened:              l.stats.opened.Load(),
		Closed:              l.stats.closed.Load(),
		Deposits:            l.stats.deposits.Load(),
		Withdrawals:         l.stats.withdrawals.Load(),
		Transfers:           l.stats.transfers.Load(),
		Interest:            l.stats.interest.Load(),
		Rejected:            l.stats.rejected.Load(),
		Rollbacks:           l.stats.rollbacks.Load(),
		Inconsistencies:     l.stats.inconsistencies.Load(),
		PersistenceFailures: l.stats.persistenceFailures.Load(),
	}
}
