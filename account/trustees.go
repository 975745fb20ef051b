// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"encoding/json"
	"sort"
	"strings"
)

// Trustees - set of principals with deposit/withdraw/status rights
type Trustees map[string]struct{}

// ParseTrustees - convert the space delimited file form to a set
func ParseTrustees(s string) Trustees {
	t := make(Trustees)
	for _, name := range strings.Fields(s) {
		t[name] = struct{}{}
	}
	return t
}

// Add - include a principal, returns false if already present
func (t *Trustees) Add(name string) bool {
	if nil == *t {
		*t = make(Trustees)
	}
	if _, ok := (*t)[name]; ok {
		return false
	}
	(*t)[name] = struct{}{}
	return true
}

// Remove - exclude a principal, returns false if not present
func (t Trustees) Remove(name string) bool {
	if _, ok := t[name]; !ok {
		return false
	}
	delete(t, name)
	return true
}

// Has - membership test
func (t Trustees) Has(name string) bool {
	_, ok := t[name]
	return ok
}

// List - sorted names
func (t Trustees) List() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Copy - independent set with the same members
func (t Trustees) Copy() Trustees {
	c := make(Trustees, len(t))
	for name := range t {
		c[name] = struct{}{}
	}
	return c
}

// String - the space delimited file form
func (t Trustees) String() string {
	return strings.Join(t.List(), " ")
}

// MarshalJSON - sorted list
func (t Trustees) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.List())
}

// UnmarshalJSON - from a list
func (t *Trustees) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); nil != err {
		return err
	}
	*t = make(Trustees, len(names))
	for _, name := range names {
		(*t)[name] = struct{}{}
	}
	return nil
}
