// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package balance

import (
	"fmt"
	"math"

	"github.com/holiman/uint256"

	"github.com/swfe/bankd/fault"
)

// limb constants
const (
	Threshold int64 = 999999999   // largest value of the low limb
	Radix     int64 = Threshold + 1 // one unit of the high limb

	// MaximumAmount - largest single add, no larger than Radix
	MaximumAmount int64 = 1000000000

	maximumHigh int64 = math.MaxInt64
)

// Balance - two limb value
type Balance struct {
	Hi int64 `json:"hi"`
	Lo int64 `json:"lo"`
}

// New - create a balance from limbs, normalising the result
func New(hi int64, lo int64) (Balance, error) {
	b := Balance{Hi: hi, Lo: lo}
	err := b.Normalise()
	return b, err
}

// Valid - true if both limbs are within range
func (b Balance) Valid() bool {
	return b.Hi >= 0 && b.Lo >= 0 && b.Lo <= Threshold
}

// IsZero - true if the balance is exactly zero
func (b Balance) IsZero() bool {
	return 0 == b.Hi && 0 == b.Lo
}

// Normalise - fold an out of range low limb into the high limb
//
// on error the balance is unchanged
func (b *Balance) Normalise() error {
	hi := b.Hi
	lo := b.Lo

	if lo > Threshold {
		carry := lo / Radix
		if hi > maximumHigh-carry {
			return fault.ErrBalanceOverflow
		}
		hi += carry
		lo %= Radix
	}

	if lo < 0 {
		// number of high units needed to bring lo back into range
		borrow := -(lo+1)/Radix + 1
		if hi < borrow {
			return fault.ErrNegativeBalance
		}
		hi -= borrow
		lo += (borrow - 1) * Radix
		lo += Radix
	}

	if hi < 0 {
		return fault.ErrNegativeBalance
	}

	b.Hi = hi
	b.Lo = lo
	return nil
}

// Add - credit a non-negative amount
//
// on error the balance is unchanged
func (b *Balance) Add(amount int64) error {
	if err := checkAmount(amount); nil != err {
		return err
	}

	hi := b.Hi
	lo := b.Lo

	// whole radix units go straight to the high limb
	for amount > Threshold {
		amount -= Radix
		if hi >= maximumHigh {
			return fault.ErrBalanceOverflow
		}
		hi += 1
	}

	// both values are at most Threshold so this cannot overflow
	lo += amount

	for lo > Threshold {
		lo -= Radix
		if hi >= maximumHigh {
			return fault.ErrBalanceOverflow
		}
		hi += 1
	}

	b.Hi = hi
	b.Lo = lo
	return nil
}

// Subtract - debit a non-negative amount
//
// on error the balance is unchanged
func (b *Balance) Subtract(amount int64) error {
	if amount < 0 {
		return fault.ErrNegativeAmount
	}

	// the only guard against underflow
	if !b.HasFunds(amount) {
		return fault.ErrInsufficientFunds
	}

	// whole radix units come from the high limb
	hi := b.Hi - amount/Radix
	lo := b.Lo
	amount %= Radix

	if amount <= lo {
		lo -= amount
	} else if hi > 0 {
		hi -= 1
		lo = Radix + lo - amount
	} else {
		// unreachable while HasFunds holds
		return fault.ErrInsufficientFunds
	}

	b.Hi = hi
	b.Lo = lo
	return nil
}

// HasFunds - check the balance covers amount
//
// any non-zero high limb covers an amount of up to one radix unit,
// which includes every single transaction
func (b Balance) HasFunds(amount int64) bool {
	if amount < 0 {
		return false
	}
	units := amount / Radix
	if b.Hi != units {
		return b.Hi > units
	}
	return b.Lo >= amount%Radix
}

// Total - exact true value
func (b Balance) Total() *uint256.Int {
	t := uint256.NewInt(uint64(b.Hi))
	t.Mul(t, uint256.NewInt(uint64(Radix)))
	return t.Add(t, uint256.NewInt(uint64(b.Lo)))
}

// Cmp - compare true values: -1, 0 or +1
//
// both balances must be normalised
func (b Balance) Cmp(other Balance) int {
	if b.Hi != other.Hi {
		if b.Hi < other.Hi {
			return -1
		}
		return 1
	}
	switch {
	case b.Lo < other.Lo:
		return -1
	case b.Lo > other.Lo:
		return 1
	}
	return 0
}

// String - decimal representation of the true value
func (b Balance) String() string {
	switch {
	case b.IsZero():
		return "0"
	case b.Hi > 0:
		return fmt.Sprintf("%d%09d", b.Hi, b.Lo)
	default:
		return fmt.Sprintf("%d", b.Lo)
	}
}

func checkAmount(amount int64) error {
	if amount < 0 {
		return fault.ErrNegativeAmount
	}
	if amount > MaximumAmount {
		return fault.ErrAmountTooLarge
	}
	return nil
}
