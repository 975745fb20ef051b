// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli"

	"github.com/swfe/bankd/account"
	"github.com/swfe/bankd/storage"
)

type showReply struct {
	File     string   `json:"file"`
	Code     string   `json:"code"`
	Creator  string   `json:"creator"`
	Owner    string   `json:"owner"`
	Trustees []string `json:"trustees"`
	Frozen   bool     `json:"frozen"`
	Blocked  bool     `json:"blocked"`
	Interest float64  `json:"interest"`
	Hi       int64    `json:"hi"`
	Lo       int64    `json:"lo"`
	Balance  string   `json:"balance"`
}

func runShow(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	code := strings.TrimSpace(c.Args().Get(0))
	if "" == code {
		return ErrMissingCode
	}
	name := code
	if !strings.HasSuffix(name, storage.AccountSuffix) {
		name = storage.FileName(code)
	}

	a, err := m.directory.Load(name)
	if nil != err {
		return err
	}

	reply := showReply{
		File:     name,
		Code:     a.Code,
		Creator:  a.Creator,
		Owner:    a.Owner,
		Trustees: a.Trustees.List(),
		Frozen:   a.Flags.Has(account.Frozen),
		Blocked:  a.Flags.Has(account.Blocked),
		Interest: a.InterestRate,
		Hi:       a.Balance.Hi,
		Lo:       a.Balance.Lo,
		Balance:  a.Balance.String(),
	}

	if m.json {
		return printJson(m.w, reply)
	}

	fmt.Fprintf(m.w, "code:     %s\n", reply.Code)
	fmt.Fprintf(m.w, "creator:  %s\n", reply.Creator)
	fmt.Fprintf(m.w, "owner:    %s\n", reply.Owner)
	fmt.Fprintf(m.w, "trustees: %s\n", strings.Join(reply.Trustees, " "))
	fmt.Fprintf(m.w, "frozen:   %t\n", reply.Frozen)
	fmt.Fprintf(m.w, "blocked:  %t\n", reply.Blocked)
	fmt.Fprintf(m.w, "interest: %g\n", reply.Interest)
	fmt.Fprintf(m.w, "balance:  %s (hi: %d  lo: %d)\n", reply.Balance, reply.Hi, reply.Lo)
	return nil
}
