// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/swfe/bankd/account"
	"github.com/swfe/bankd/fault"
	"github.com/swfe/bankd/journal"
)

// progress of a two phase transfer
type transferState int

const (
	withdrawPending transferState = iota
	depositAttempted
	committed
	rolledBack
	fatalInconsistency
)

func (s transferState) String() string {
	switch s {
	case withdrawPending:
		return "WithdrawPending"
	case depositAttempted:
		return "DepositAttempted"
	case committed:
		return "Committed"
	case rolledBack:
		return "RolledBack"
	case fatalInconsistency:
		return "FatalInconsistency"
	default:
		return "Unknown"
	}
}

// Deposit - credit an account
func (l *Ledger) Deposit(code string, amount int64) error {
	l.Lock()
	defer l.Unlock()

	a, err := l.get(code)
	if nil != err {
		return err
	}
	if err := l.deposit(a, amount); nil != err {
		l.stats.rejected.Inc()
		return err
	}

	l.save(a)
	l.record(journal.Entry{Kind: journal.KindDeposit, Destination: code, Amount: amount})
	l.stats.deposits.Inc()
	return nil
}

// Withdraw - debit an account
func (l *Ledger) Withdraw(code string, amount int64) error {
	l.Lock()
	defer l.Unlock()

	a, err := l.get(code)
	if nil != err {
		return err
	}
	if err := l.withdraw(a, amount); nil != err {
		l.stats.rejected.Inc()
		return err
	}

	l.save(a)
	l.record(journal.Entry{Kind: journal.KindWithdraw, Source: code, Amount: amount})
	l.stats.withdrawals.Inc()
	return nil
}

// Transfer - move funds between two accounts
//
// the credit is undone if it fails; if undoing also fails the
// result is fault.ErrLedgerInconsistency
func (l *Ledger) Transfer(source string, destination string, amount int64) error {
	l.Lock()
	defer l.Unlock()

	if err := l.policy.checkAmount(amount); nil != err {
		l.stats.rejected.Inc()
		return err
	}
	src, err := l.get(source)
	if nil != err {
		return err
	}
	dst, err := l.get(destination)
	if nil != err {
		return err
	}
	if src == dst {
		l.stats.rejected.Inc()
		return fault.ErrSameAccount
	}

	state, err := twoPhase(
		func() error { return l.withdraw(src, amount) },
		func() error { return l.deposit(dst, amount) },
		func() error { return l.deposit(src, amount) },
	)

	return l.settle(state, err, src, dst, amount)
}

// act on the final state of a transfer, caller must hold the lock
func (l *Ledger) settle(state transferState, err error, src *account.Account, dst *account.Account, amount int64) error {
	switch state {
	case committed:
		l.save(src)
		l.save(dst)
		l.record(journal.Entry{Kind: journal.KindTransfer, Source: src.Code, Destination: dst.Code, Amount: amount})
		l.stats.transfers.Inc()
		return nil

	case rolledBack:
		l.log.Warnf("transfer: %s -> %s  amount: %d  rolled back: %s", src.Code, dst.Code, amount, err)
		l.record(journal.Entry{Kind: journal.KindRollback, Source: src.Code, Destination: dst.Code, Amount: amount})
		l.stats.rollbacks.Inc()
		l.stats.rejected.Inc()
		return err

	case fatalInconsistency:
		fault.Criticalf("transfer: %s -> %s  amount: %d  state: %s  funds lost: %s", src.Code, dst.Code, amount, state, err)
		l.log.Criticalf("transfer: %s -> %s  amount: %d  %s", src.Code, dst.Code, amount, err)
		l.save(src)
		l.save(dst)
		l.record(journal.Entry{Kind: journal.KindInconsistency, Source: src.Code, Destination: dst.Code, Amount: amount})
		l.stats.inconsistencies.Inc()
		return err

	default:
		l.stats.rejected.Inc()
		return err
	}
}

// run debit then credit, undoing the debit with compensate if the
// credit fails
func twoPhase(debit func() error, credit func() error, compensate func() error) (transferState, error) {
	state := withdrawPending
	if err := debit(); nil != err {
		return state, err
	}

	state = depositAttempted
	err := credit()
	if nil == err {
		return committed, nil
	}

	if nil != compensate() {
		return fatalInconsistency, fault.ErrLedgerInconsistency
	}
	return rolledBack, err
}

// caller must hold the lock
func (l *Ledger) deposit(a *account.Account, amount int64) error {
	if err := l.policy.checkAmount(amount); nil != err {
		return err
	}
	return a.Balance.Add(amount)
}

// caller must hold the lock
func (l *Ledger) withdraw(a *account.Account, amount int64) error {
	if err := l.policy.checkAmount(amount); nil != err {
		return err
	}
	if !a.Balance.HasFunds(amount) {
		return fault.ErrInsufficientFunds
	}
	return a.Balance.Subtract(amount)
}
