// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/swfe/bankd/fault"
)

// common errors - keep in alphabetic order
const (
	ErrMissingAccounts = fault.InvalidError("accounts directory is required")
	ErrMissingCode     = fault.InvalidError("account code is required")
	ErrMissingJournal  = fault.InvalidError("journal directory is required")
	ErrNotDirectory    = fault.NotFoundError("not a directory")
	ErrVerifyFailed    = fault.RecordError("verification found problems")
)
