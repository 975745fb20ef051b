// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/holiman/uint256"

	"github.com/swfe/bankd/account"
	"github.com/swfe/bankd/balance"
	"github.com/swfe/bankd/fault"
	"github.com/swfe/bankd/journal"
)

// CycleResult - outcome of one interest cycle
type CycleResult struct {
	Accounts int          // accounts visited
	Credited int          // received interest
	Zero     int          // skipped: zero balance
	Reset    int          // rate was out of range and was reset
	Rejected int          // interest computation failed its bounds
	Interest *uint256.Int // total credited
}

// RunInterestCycle - accrue interest on every account then save all
// accounts
func (l *Ledger) RunInterestCycle() CycleResult {
	l.Lock()
	defer l.Unlock()

	result := CycleResult{
		Interest: uint256.NewInt(0),
	}

	l.store.Each(func(a *account.Account) {
		result.Accounts += 1

		if a.Balance.IsZero() {
			result.Zero += 1
			l.save(a)
			return
		}

		if !l.rateInRange(a.InterestRate) {
			l.log.Warnf("interest: %s  rate: %g  out of range, reset to: %g", a.Code, a.InterestRate, l.policy.DefaultRate)
			a.InterestRate = l.policy.DefaultRate
			result.Reset += 1
			l.save(a)
			return
		}

		amount, err := l.accrue(a)
		if nil != err {
			l.log.Warnf("interest: %s  balance: %s  rejected: %s", a.Code, a.Balance, err)
			result.Rejected += 1
			l.stats.rejected.Inc()
			l.save(a)
			return
		}

		if amount > 0 {
			result.Credited += 1
			result.Interest.Add(result.Interest, uint256.NewInt(uint64(amount)))
			l.record(journal.Entry{Kind: journal.KindInterest, Destination: a.Code, Amount: amount})
			l.stats.interest.Inc()
		}
		l.save(a)
	})

	l.log.Infof("interest: accounts: %d  credited: %d  reset: %d  rejected: %d  total: %s",
		result.Accounts, result.Credited, result.Reset, result.Rejected, result.Interest.Dec())
	return result
}

func (l *Ledger) rateInRange(rate float64) bool {
	return rate >= l.policy.MinimumRate && rate <= l.policy.MaximumRate
}

// compute and credit the interest on one account
//
// returns the amount credited, zero if the interest truncates to
// nothing; on error the balance is unchanged
func (l *Ledger) accrue(a *account.Account) (int64, error) {
	gain := a.InterestRate - 1.0

	loInterest := int64(float64(a.Balance.Lo) * gain)

	hiCredit := float64(a.Balance.Hi) * float64(balance.Radix) * gain
	if hiCredit < 0 || hiCredit > float64(l.policy.SafeAdditionLimit) {
		return 0, fault.ErrInterestOverflow
	}
	hiInterest := int64(hiCredit)

	total := loInterest + hiInterest
	if total < 0 || total > l.policy.MaximumTransaction {
		return 0, fault.ErrInterestOverflow
	}
	if total < l.policy.MinimumTransaction {
		return 0, nil
	}

	if err := l.deposit(a, total); nil != err {
		return 0, err
	}
	return total, nil
}
