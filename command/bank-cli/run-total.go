// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"sort"

	"github.com/holiman/uint256"
	"github.com/urfave/cli"

	"github.com/swfe/bankd/account"
)

type ownerTotal struct {
	Owner    string `json:"owner"`
	Accounts int    `json:"accounts"`
	Total    string `json:"total"`
}

type totalReply struct {
	Accounts int          `json:"accounts"`
	Total    string       `json:"total"`
	Owners   []ownerTotal `json:"owners,omitempty"`
}

func runTotal(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	accounts, err := m.directory.LoadAll()
	if nil != err {
		return err
	}

	reply := sumAccounts(accounts, c.Bool("owners"))

	if m.json {
		return printJson(m.w, reply)
	}

	for _, o := range reply.Owners {
		fmt.Fprintf(m.w, "%-16s %4d %24s\n", o.Owner, o.Accounts, o.Total)
	}
	fmt.Fprintf(m.w, "accounts: %d\n", reply.Accounts)
	fmt.Fprintf(m.w, "total:    %s\n", reply.Total)
	return nil
}

func sumAccounts(accounts []*account.Account, byOwner bool) totalReply {
	total := uint256.NewInt(0)
	owners := make(map[string]*uint256.Int)
	counts := make(map[string]int)

	for _, a := range accounts {
		value := a.Balance.Total()
		total.Add(total, value)
		if !byOwner {
			continue
		}
		sum, ok := owners[a.Owner]
		if !ok {
			sum = uint256.NewInt(0)
			owners[a.Owner] = sum
		}
		sum.Add(sum, value)
		counts[a.Owner] += 1
	}

	reply := totalReply{
		Accounts: len(accounts),
		Total:    total.Dec(),
	}
	if !byOwner {
		return reply
	}

	names := make([]string, 0, len(owners))
	for name := range owners {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		reply.Owners = append(reply.Owners, ownerTotal{
			Owner:    name,
			Accounts: counts[name],
			Total:    owners[name].Dec(),
		})
	}
	return reply
}
