// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/swfe/bankd/account"
	"github.com/swfe/bankd/fault"
)

// AccessStatus - how a principal reaches an account
type AccessStatus int

// access kinds
const (
	NoAccess AccessStatus = iota
	OwnerAccess
	TrusteeAccess
)

func (s AccessStatus) String() string {
	switch s {
	case OwnerAccess:
		return "Owner"
	case TrusteeAccess:
		return "Trustee"
	default:
		return "None"
	}
}

// Access - one line of an account listing
type Access struct {
	Code    string       `json:"code"`
	Owner   string       `json:"owner"`
	Status  AccessStatus `json:"status"`
	Balance string       `json:"balance"`
}

// Entrust - give a trustee deposit, withdraw and status rights
//
// only the owner may change trustees; adding an existing trustee
// is not an error
func (l *Ledger) Entrust(code string, owner string, trustee string) error {
	l.Lock()
	defer l.Unlock()

	a, err := l.owned(code, owner)
	if nil != err {
		return err
	}
	if !account.ValidName(trustee) {
		l.stats.rejected.Inc()
		return fault.ErrInvalidTrustee
	}
	if trustee == a.Owner {
		l.stats.rejected.Inc()
		return fault.ErrSelfTrustee
	}

	if a.Trustees.Add(trustee) {
		l.save(a)
		l.log.Infof("entrust: %s  trustee: %q", code, trustee)
	}
	return nil
}

// RemoveTrustee - withdraw a trustee's rights
func (l *Ledger) RemoveTrustee(code string, owner string, trustee string) error {
	l.Lock()
	defer l.Unlock()

	a, err := l.owned(code, owner)
	if nil != err {
		return err
	}
	if !a.Trustees.Remove(trustee) {
		l.stats.rejected.Inc()
		return fault.ErrTrusteeNotFound
	}

	l.save(a)
	l.log.Infof("distrust: %s  trustee: %q", code, trustee)
	return nil
}

// ClearTrustees - remove all trustees
func (l *Ledger) ClearTrustees(code string, owner string) error {
	l.Lock()
	defer l.Unlock()

	a, err := l.owned(code, owner)
	if nil != err {
		return err
	}
	if 0 == len(a.Trustees) {
		return nil
	}

	a.Trustees = account.Trustees{}
	l.save(a)
	l.log.Infof("distrust: %s  all trustees", code)
	return nil
}

// HasAccess - principal is the owner or a trustee
func (l *Ledger) HasAccess(code string, principal string) bool {
	l.Lock()
	defer l.Unlock()

	a, ok := l.store.Get(code)
	return ok && a.HasAccess(principal)
}

// Accessible - accounts a principal owns or is trusted with, in the
// order they were opened
func (l *Ledger) Accessible(principal string) []Access {
	l.Lock()
	defer l.Unlock()

	list := make([]Access, 0)
	l.store.Each(func(a *account.Account) {
		var status AccessStatus
		switch {
		case a.IsOwner(principal):
			status = OwnerAccess
		case a.Trustees.Has(principal):
			status = TrusteeAccess
		default:
			return
		}
		list = append(list, Access{
			Code:    a.Code,
			Owner:   a.Owner,
			Status:  status,
			Balance: a.Balance.String(),
		})
	})
	return list
}

// find an account and check ownership, caller must hold the lock
func (l *Ledger) owned(code string, owner string) (*account.Account, error) {
	a, err := l.get(code)
	if nil != err {
		return nil, err
	}
	if !a.IsOwner(owner) {
		l.stats.rejected.Inc()
		return nil, fault.ErrNotOwner
	}
	return a, nil
}
