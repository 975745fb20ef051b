// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"math/rand"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/holiman/uint256"

	"github.com/swfe/bankd/account"
	"github.com/swfe/bankd/fault"
	"github.com/swfe/bankd/journal"
)

// Persister - durable storage of accounts
type Persister interface {
	Save(a *account.Account) error
	Remove(code string) error
	WriteIndex(codes []string) error
}

// Recorder - receives every committed operation
type Recorder interface {
	Record(entry journal.Entry) error
}

// Ledger - the set of accounts and the operations on them
type Ledger struct {
	sync.Mutex

	log       *logger.L
	policy    Policy
	store     *account.Store
	codes     *account.Generator
	persister Persister
	recorder  Recorder
	loaded    bool
	stats     statistics
}

// New - create an empty ledger
//
// recorder may be nil to disable journalling; source may be nil to
// seed account codes from the clock
func New(policy Policy, persister Persister, recorder Recorder, source rand.Source) (*Ledger, error) {
	if err := policy.Validate(); nil != err {
		return nil, err
	}
	if nil == persister {
		return nil, fault.ErrNotInitialised
	}

	log := logger.New("ledger")
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}

	return &Ledger{
		log:       log,
		policy:    policy,
		store:     account.NewStore(),
		codes:     account.NewGenerator(source),
		persister: persister,
		recorder:  recorder,
	}, nil
}

// Policy - the limits in force
func (l *Ledger) Policy() Policy {
	return l.policy
}

// Load - populate an empty ledger from previously saved accounts
//
// accounts with a missing or malformed code receive a new code and
// out of range balances are normalised, both are saved again;
// duplicates and balances that cannot be normalised are logged and
// dropped
func (l *Ledger) Load(accounts []*account.Account) error {
	l.Lock()
	defer l.Unlock()

	if l.loaded || 0 != l.store.Count() {
		return fault.ErrAlreadyInitialised
	}
	l.loaded = true

	changed := make([]*account.Account, 0)
	recoded := false
load_loop:
	for _, a := range accounts {
		if nil == a {
			continue load_loop
		}
		modified := false

		if !a.Balance.Valid() {
			before := a.Balance
			if err := a.Balance.Normalise(); nil != err {
				l.log.Errorf("load: %q  owner: %q  balance: %d/%d  dropped: %s", a.Code, a.Owner, before.Hi, before.Lo, err)
				continue load_loop
			}
			l.log.Warnf("load: %q  balance: %d/%d  normalised: %d/%d", a.Code, before.Hi, before.Lo, a.Balance.Hi, a.Balance.Lo)
			modified = true
		}

		if !account.ValidCode(a.Code) {
			code, err := l.codes.Generate(l.store.Has)
			if nil != err {
				return err
			}
			l.log.Warnf("load: owner: %q  invalid code: %q  assigned: %s", a.Owner, a.Code, code)
			a.Code = code
			modified = true
			recoded = true
		}
		if nil == a.Trustees {
			a.Trustees = account.Trustees{}
		}
		if err := l.store.Add(a); nil != err {
			l.log.Errorf("load: %s: %s", a.Code, err)
			continue load_loop
		}
		if modified {
			changed = append(changed, a)
		}
	}

	for _, a := range changed {
		l.save(a)
	}
	if recoded {
		l.writeIndex()
	}

	l.log.Infof("loaded: %d accounts", l.store.Count())
	return nil
}

// OpenAccount - open an account created by its owner
func (l *Ledger) OpenAccount(owner string) (*account.Account, error) {
	return l.OpenAccountFor(owner, owner)
}

// OpenAccountFor - open an account on behalf of an owner
func (l *Ledger) OpenAccountFor(creator string, owner string) (*account.Account, error) {
	l.Lock()
	defer l.Unlock()

	if !account.ValidName(owner) || !account.ValidName(creator) {
		l.stats.rejected.Inc()
		return nil, fault.ErrInvalidOwner
	}
	if l.store.CountOwnedBy(owner) >= l.policy.MaximumAccounts {
		l.stats.rejected.Inc()
		return nil, fault.ErrAccountLimit
	}

	code, err := l.codes.Generate(l.store.Has)
	if nil != err {
		l.stats.rejected.Inc()
		return nil, err
	}

	a := &account.Account{
		Code:         code,
		Creator:      creator,
		Owner:        owner,
		Trustees:     account.Trustees{},
		InterestRate: l.policy.DefaultRate,
	}
	if err := l.store.Add(a); nil != err {
		l.stats.rejected.Inc()
		return nil, err
	}

	l.save(a)
	l.writeIndex()
	l.record(journal.Entry{Kind: journal.KindOpen, Destination: code})
	l.stats.opened.Inc()

	l.log.Infof("open: %s  owner: %q  creator: %q", code, owner, creator)
	return a.Copy(), nil
}

// CloseAccount - remove an account with a zero balance
func (l *Ledger) CloseAccount(code string) error {
	l.Lock()
	defer l.Unlock()

	a, err := l.get(code)
	if nil != err {
		return err
	}
	if !a.Balance.IsZero() {
		l.stats.rejected.Inc()
		return fault.ErrBalanceNotZero
	}

	if _, err := l.store.Remove(code); nil != err {
		return err
	}
	if err := l.persister.Remove(code); nil != err {
		l.persistenceFailure("remove", code, err)
	}
	l.writeIndex()
	l.record(journal.Entry{Kind: journal.KindClose, Source: code})
	l.stats.closed.Inc()

	l.log.Infof("close: %s", code)
	return nil
}

// BalanceString - display form of an account balance
func (l *Ledger) BalanceString(code string) (string, error) {
	l.Lock()
	defer l.Unlock()

	a, err := l.get(code)
	if nil != err {
		return "", err
	}
	return a.Balance.String(), nil
}

// AccountsOwnedBy - number of accounts an owner holds
func (l *Ledger) AccountsOwnedBy(owner string) int {
	l.Lock()
	defer l.Unlock()
	return l.store.CountOwnedBy(owner)
}

// Count - number of open accounts
func (l *Ledger) Count() int {
	l.Lock()
	defer l.Unlock()
	return l.store.Count()
}

// Status - snapshot of one account
func (l *Ledger) Status(code string) (account.Account, error) {
	l.Lock()
	defer l.Unlock()

	a, err := l.get(code)
	if nil != err {
		return account.Account{}, err
	}
	return *a.Copy(), nil
}

// Supply - exact sum of all balances
func (l *Ledger) Supply() *uint256.Int {
	l.Lock()
	defer l.Unlock()

	total := uint256.NewInt(0)
	l.store.Each(func(a *account.Account) {
		total.Add(total, a.Balance.Total())
	})
	return total
}

// SaveAll - write every account and the index
func (l *Ledger) SaveAll() error {
	l.Lock()
	defer l.Unlock()

	ok := true
	l.store.Each(func(a *account.Account) {
		ok = l.save(a) && ok
	})
	ok = l.writeIndex() && ok

	if !ok {
		return fault.ErrPersistenceFailure
	}
	return nil
}

// find an account, caller must hold the lock
func (l *Ledger) get(code string) (*account.Account, error) {
	a, ok := l.store.Get(code)
	if !ok {
		l.stats.rejected.Inc()
		return nil, fault.ErrAccountNotFound
	}
	return a, nil
}

// write one account, failure is logged and counted only
func (l *Ledger) save(a *account.Account) bool {
	if err := l.persister.Save(a); nil != err {
		l.persistenceFailure("save", a.Code, err)
		return false
	}
	return true
}

func (l *Ledger) writeIndex() bool {
	if err := l.persister.WriteIndex(l.store.Codes()); nil != err {
		l.persistenceFailure("index", "-", err)
		return false
	}
	return true
}

func (l *Ledger) record(entry journal.Entry) {
	if nil == l.recorder {
		return
	}
	if err := l.recorder.Record(entry); nil != err {
		l.persistenceFailure("journal", string(entry.Kind), err)
	}
}

func (l *Ledger) persistenceFailure(operation string, item string, err error) {
	l.stats.persistenceFailures.Inc()
	l.log.Errorf("%s: %s: %s: %s", operation, item, fault.ErrPersistenceFailure, err)
}
