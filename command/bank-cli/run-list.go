// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/swfe/bankd/account"
)

type listItem struct {
	Code     string `json:"code"`
	Owner    string `json:"owner"`
	Trustees string `json:"trustees"`
	Interest string `json:"interest"`
	Balance  string `json:"balance"`
}

func runList(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner := c.String("owner")

	accounts, err := m.directory.LoadAll()
	if nil != err {
		return err
	}

	items := make([]listItem, 0, len(accounts))
	for _, a := range accounts {
		if "" != owner && !a.HasAccess(owner) {
			continue
		}
		items = append(items, makeListItem(a))
	}

	if m.json {
		return printJson(m.w, items)
	}

	for _, item := range items {
		fmt.Fprintf(m.w, "%s %-16s %8s %24s\n", item.Code, item.Owner, item.Interest, item.Balance)
	}
	if m.verbose {
		fmt.Fprintf(m.e, "listed: %d of %d\n", len(items), len(accounts))
	}
	return nil
}

func makeListItem(a *account.Account) listItem {
	return listItem{
		Code:     a.Code,
		Owner:    a.Owner,
		Trustees: a.Trustees.String(),
		Interest: fmt.Sprintf("%.4f", a.InterestRate),
		Balance:  a.Balance.String(),
	}
}
