// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"strings"
	"unicode"

	"github.com/swfe/bankd/balance"
)

// Flags - administrative state bits, set by collaborators only
type Flags uint64

// flag bits
const (
	Frozen Flags = 1 << iota
	Blocked
)

// placeholders for records that were saved without these fields
const (
	NoCreator = "NOCREATOR"
	NoOwner   = "NOOWNER"
)

// Account - a single bank account
type Account struct {
	Code         string          `json:"code"`
	Creator      string          `json:"creator"`
	Owner        string          `json:"owner"`
	Trustees     Trustees        `json:"trustees"`
	Flags        Flags           `json:"flags"`
	InterestRate float64         `json:"interest"`
	Balance      balance.Balance `json:"balance"`
}

// Has - check a flag
func (f Flags) Has(flag Flags) bool {
	return flag == f&flag
}

// IsOwner - principal owns the account
func (a *Account) IsOwner(principal string) bool {
	return "" != principal && principal == a.Owner
}

// HasAccess - owner or trustee
func (a *Account) HasAccess(principal string) bool {
	return a.IsOwner(principal) || a.Trustees.Has(principal)
}

// Copy - detached snapshot, safe to hand to callers
func (a *Account) Copy() *Account {
	c := *a
	c.Trustees = a.Trustees.Copy()
	return &c
}

// ValidName - a principal name that the account file stores unchanged:
// not blank, no whitespace and no string terminator
func ValidName(name string) bool {
	if "" == name || strings.Contains(name, "~") {
		return false
	}
	return -1 == strings.IndexFunc(name, unicode.IsSpace)
}
