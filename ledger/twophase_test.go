// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swfe/bankd/account"
	"github.com/swfe/bankd/balance"
	"github.com/swfe/bankd/fault"
	"github.com/swfe/bankd/journal"
	"github.com/swfe/bankd/mocks"
)

func TestTwoPhase(t *testing.T) {
	errDebit := errors.New("debit")
	errCredit := errors.New("credit")
	errUndo := errors.New("undo")

	ok := func() error { return nil }
	fail := func(err error) func() error {
		return func() error { return err }
	}

	tests := []struct {
		debit      func() error
		credit     func() error
		compensate func() error
		state      transferState
		err        error
	}{
		{ok, ok, ok, committed, nil},
		{fail(errDebit), ok, ok, withdrawPending, errDebit},
		{ok, fail(errCredit), ok, rolledBack, errCredit},
		{ok, fail(errCredit), fail(errUndo), fatalInconsistency, fault.ErrLedgerInconsistency},
	}

	for i, item := range tests {
		state, err := twoPhase(item.debit, item.credit, item.compensate)
		assert.Equal(t, item.state, state, "%d: state: %s", i, state)
		assert.Equal(t, item.err, err, "%d", i)
	}
}

func TestTwoPhaseSkipsCompensation(t *testing.T) {
	calls := 0
	count := func() error {
		calls += 1
		return nil
	}

	_, _ = twoPhase(func() error { return errors.New("no funds") }, count, count)
	assert.Equal(t, 0, calls, "ran after failed debit")

	_, _ = twoPhase(count, count, func() error { t.Error("compensated a committed transfer"); return nil })
	assert.Equal(t, 2, calls)
}

func TestFatalInconsistencyIsCritical(t *testing.T) {
	_, err := twoPhase(
		func() error { return nil },
		func() error { return fault.ErrBalanceOverflow },
		func() error { return fault.ErrBalanceOverflow },
	)
	assert.True(t, fault.IsErrCritical(err))
	assert.False(t, fault.IsErrOverflow(err))
	assert.Equal(t, "FatalInconsistency", fatalInconsistency.String())
}

func TestSettleFatalInconsistencyIsJournalled(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	p := mocks.NewMockPersister(ctl)
	r := mocks.NewMockRecorder(ctl)

	l, err := New(DefaultPolicy(), p, r, nil)
	require.NoError(t, err)

	src := &account.Account{Code: "aaaaaaaaaa0000000001", Owner: "leia", Trustees: account.Trustees{}, InterestRate: 1.05}
	dst := &account.Account{Code: "bbbbbbbbbb0000000002", Owner: "han", Trustees: account.Trustees{}, InterestRate: 1.05, Balance: balance.Balance{Lo: 10}}
	require.NoError(t, l.Load([]*account.Account{src, dst}))

	gomock.InOrder(
		p.EXPECT().Save(src).Return(nil).Times(1),
		p.EXPECT().Save(dst).Return(nil).Times(1),
		r.EXPECT().Record(journal.Entry{
			Kind:        journal.KindInconsistency,
			Source:      src.Code,
			Destination: dst.Code,
			Amount:      250,
		}).Return(nil).Times(1),
	)

	l.Lock()
	err = l.settle(fatalInconsistency, fault.ErrLedgerInconsistency, src, dst, 250)
	l.Unlock()

	assert.Equal(t, fault.ErrLedgerInconsistency, err)
	stats := l.Statistics()
	assert.Equal(t, uint64(1), stats.Inconsistencies)
	assert.Equal(t, uint64(0), stats.Rollbacks)
	assert.Equal(t, uint64(0), stats.Transfers)
}

func TestSettleRollbackIsJournalled(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	p := mocks.NewMockPersister(ctl)
	r := mocks.NewMockRecorder(ctl)

	l, err := New(DefaultPolicy(), p, r, nil)
	require.NoError(t, err)

	src := &account.Account{Code: "aaaaaaaaaa0000000001", Owner: "leia", Trustees: account.Trustees{}, InterestRate: 1.05}
	dst := &account.Account{Code: "bbbbbbbbbb0000000002", Owner: "han", Trustees: account.Trustees{}, InterestRate: 1.05}
	require.NoError(t, l.Load([]*account.Account{src, dst}))

	r.EXPECT().Record(journal.Entry{
		Kind:        journal.KindRollback,
		Source:      src.Code,
		Destination: dst.Code,
		Amount:      7,
	}).Return(nil).Times(1)

	l.Lock()
	err = l.settle(rolledBack, fault.ErrBalanceOverflow, src, dst, 7)
	l.Unlock()

	assert.Equal(t, fault.ErrBalanceOverflow, err)
	assert.Equal(t, uint64(1), l.Statistics().Rollbacks)
	assert.Equal(t, uint64(0), l.Statistics().Inconsistencies)
}
