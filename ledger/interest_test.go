// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"

	"github.com/swfe/bankd/balance"
	"github.com/swfe/bankd/journal"
)

func TestInterestCycle(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	outOfRange := makeAccount(codeC, "chewie", 0, 1000)
	outOfRange.InterestRate = 3.0

	l, p, r := setupStrict(t, ctl,
		makeAccount(codeA, "leia", 0, 1000),
		makeAccount(codeB, "han", 0, 0),
		outOfRange,
	)

	// every account is saved, only the credit is journalled
	p.EXPECT().Save(gomock.Any()).Return(nil).Times(3)
	r.EXPECT().Record(journal.Entry{Kind: journal.KindInterest, Destination: codeA, Amount: 50}).Return(nil).Times(1)

	result := l.RunInterestCycle()

	assert.Equal(t, 3, result.Accounts)
	assert.Equal(t, 1, result.Credited)
	assert.Equal(t, 1, result.Zero)
	assert.Equal(t, 1, result.Reset)
	assert.Equal(t, 0, result.Rejected)
	assert.Equal(t, uint256.NewInt(50), result.Interest)

	assert.Equal(t, balance.Balance{Hi: 0, Lo: 1050}, balanceOf(t, l, codeA))
	assert.True(t, balanceOf(t, l, codeB).IsZero())

	// reset rate, balance untouched this cycle
	c, err := l.Status(codeC)
	assert.NoError(t, err)
	assert.Equal(t, 1.05, c.InterestRate)
	assert.Equal(t, int64(1000), c.Balance.Lo)
	assert.Equal(t, uint64(1), l.Statistics().Interest)
}

func TestInterestMissingRate(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	a := makeAccount(codeA, "leia", 0, 1000)
	a.InterestRate = 0
	l := setup(t, ctl, a)

	result := l.RunInterestCycle()
	assert.Equal(t, 1, result.Reset)
	assert.Equal(t, int64(1000), balanceOf(t, l, codeA).Lo)

	result = l.RunInterestCycle()
	assert.Equal(t, 1, result.Credited)
	assert.Equal(t, int64(1050), balanceOf(t, l, codeA).Lo)
}

func TestInterestHighLimb(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	l := setup(t, ctl, makeAccount(codeA, "leia", 1, 0))

	result := l.RunInterestCycle()
	assert.Equal(t, 1, result.Credited)
	assert.Equal(t, balance.Balance{Hi: 1, Lo: 50000000}, balanceOf(t, l, codeA))
}

func TestInterestRejected(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	// 5% of 100 × radix exceeds a single transaction
	l := setup(t, ctl,
		makeAccount(codeA, "leia", 100, 0),
		makeAccount(codeB, "han", 0, 10),
	)

	result := l.RunInterestCycle()
	assert.Equal(t, 1, result.Rejected)
	assert.Equal(t, 0, result.Credited)
	assert.Equal(t, balance.Balance{Hi: 100, Lo: 0}, balanceOf(t, l, codeA))

	// 10 × 0.05 truncates to nothing
	assert.Equal(t, int64(10), balanceOf(t, l, codeB).Lo)
	assert.True(t, result.Interest.IsZero())
}
