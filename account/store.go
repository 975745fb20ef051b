// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"github.com/swfe/bankd/fault"
)

// Store - insertion ordered collection of accounts
//
// not safe for concurrent use; the ledger serialises access
type Store struct {
	order    []string
	accounts map[string]*Account
}

// NewStore - create an empty store
func NewStore() *Store {
	return &Store{
		order:    make([]string, 0, 16),
		accounts: make(map[string]*Account),
	}
}

// Add - append an account; its code must be new
func (s *Store) Add(a *Account) error {
	if "" == a.Code {
		return fault.ErrInvalidRecord
	}
	if _, ok := s.accounts[a.Code]; ok {
		return fault.ErrAccountExists
	}
	s.accounts[a.Code] = a
	s.order = append(s.order, a.Code)
	return nil
}

// Get - lookup by code
func (s *Store) Get(code string) (*Account, bool) {
	a, ok := s.accounts[code]
	return a, ok
}

// Has - check for a code
func (s *Store) Has(code string) bool {
	_, ok := s.accounts[code]
	return ok
}

// Remove - delete by code, returning the removed account
func (s *Store) Remove(code string) (*Account, error) {
	a, ok := s.accounts[code]
	if !ok {
		return nil, fault.ErrAccountNotFound
	}
	delete(s.accounts, code)
	for i, c := range s.order {
		if c == code {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return a, nil
}

// Count - number of accounts
func (s *Store) Count() int {
	return len(s.order)
}

// CountOwnedBy - number of accounts with this owner
func (s *Store) CountOwnedBy(owner string) int {
	n := 0
	for _, code := range s.order {
		if s.accounts[code].Owner == owner {
			n += 1
		}
	}
	return n
}

// Codes - all codes in insertion order
func (s *Store) Codes() []string {
	codes := make([]string, len(s.order))
	copy(codes, s.order)
	return codes
}

// Each - visit accounts in insertion order
//
// the callback must not add or remove accounts
func (s *Store) Each(f func(a *Account)) {
	for _, code := range s.order {
		f(s.accounts[code])
	}
}
