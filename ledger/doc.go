// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - deposits, withdrawals, transfers and interest over
// a store of accounts
//
// every public operation validates first and either commits fully
// or leaves all accounts untouched.  Committed changes are written
// through the Persister before the operation returns and are then
// appended to the Recorder; failures of either are logged and
// counted but never change the outcome.
//
// the single exception is a transfer whose credit fails and whose
// compensating credit back to the source also fails: this returns
// fault.ErrLedgerInconsistency and is written to the critical log.
package ledger
