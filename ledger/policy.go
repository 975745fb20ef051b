// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"math"

	"github.com/swfe/bankd/balance"
	"github.com/swfe/bankd/fault"
)

// Policy - tunable limits of the ledger
type Policy struct {
	MinimumTransaction int64   `gluamapper:"minimum_transaction" json:"minimum_transaction"`
	MaximumTransaction int64   `gluamapper:"maximum_transaction" json:"maximum_transaction"`
	MaximumAccounts    int     `gluamapper:"maximum_accounts" json:"maximum_accounts"`
	MinimumRate        float64 `gluamapper:"minimum_rate" json:"minimum_rate"`
	MaximumRate        float64 `gluamapper:"maximum_rate" json:"maximum_rate"`
	DefaultRate        float64 `gluamapper:"default_rate" json:"default_rate"`
	SafeAdditionLimit  int64   `gluamapper:"safe_addition_limit" json:"safe_addition_limit"`
}

// DefaultPolicy - the standard limits
func DefaultPolicy() Policy {
	return Policy{
		MinimumTransaction: 1,
		MaximumTransaction: balance.MaximumAmount,
		MaximumAccounts:    10,
		MinimumRate:        1.01,
		MaximumRate:        2.10,
		DefaultRate:        1.05,
		SafeAdditionLimit:  math.MaxInt64 / 2,
	}
}

// Validate - check the limits are consistent
func (p Policy) Validate() error {
	switch {
	case p.MinimumTransaction < 1:
	case p.MaximumTransaction < p.MinimumTransaction:
	case p.MaximumTransaction > balance.MaximumAmount:
	case p.MaximumAccounts < 1:
	case p.MinimumRate < 1.0:
	case p.MaximumRate < p.MinimumRate:
	case p.DefaultRate < p.MinimumRate || p.DefaultRate > p.MaximumRate:
	case p.SafeAdditionLimit < 1 || p.SafeAdditionLimit > math.MaxInt64/2:
	default:
		return nil
	}
	return fault.ErrInvalidPolicy
}

// check a transaction amount against the limits
func (p Policy) checkAmount(amount int64) error {
	if amount < p.MinimumTransaction || amount > p.MaximumTransaction {
		return fault.ErrInvalidAmount
	}
	return nil
}
