// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/urfave/cli"

	"github.com/swfe/bankd/account"
	"github.com/swfe/bankd/ledger"
	"github.com/swfe/bankd/storage"
)

type verifyReply struct {
	Indexed  int      `json:"indexed"`
	Valid    int      `json:"valid"`
	Problems []string `json:"problems"`
	Warnings []string `json:"warnings"`
}

func runVerify(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	reply, err := verifyDirectory(m.directory, ledger.DefaultPolicy())
	if nil != err {
		return err
	}

	if m.json {
		if err := printJson(m.w, reply); nil != err {
			return err
		}
	} else {
		for _, w := range reply.Warnings {
			fmt.Fprintf(m.w, "warning: %s\n", w)
		}
		for _, p := range reply.Problems {
			fmt.Fprintf(m.w, "problem: %s\n", p)
		}
		fmt.Fprintf(m.w, "valid: %d of %d\n", reply.Valid, reply.Indexed)
	}

	if 0 != len(reply.Problems) {
		return ErrVerifyFailed
	}
	return nil
}

// check each indexed file independently and look for files the index
// does not mention
func verifyDirectory(d *storage.Directory, policy ledger.Policy) (*verifyReply, error) {

	names, err := d.ReadIndex()
	if nil != err {
		return nil, err
	}

	reply := &verifyReply{
		Indexed:  len(names),
		Problems: []string{},
		Warnings: []string{},
	}
	problem := func(format string, arguments ...interface{}) {
		reply.Problems = append(reply.Problems, fmt.Sprintf(format, arguments...))
	}

	indexed := make(map[string]bool)
	codes := make(map[string]string)

loop:
	for _, name := range names {
		if indexed[name] {
			problem("%s: listed more than once", name)
			continue loop
		}
		indexed[name] = true

		a, warnings, err := decodeFile(filepath.Join(d.Path(), name))
		for _, w := range warnings {
			reply.Warnings = append(reply.Warnings, name+": "+w)
		}
		if nil != err {
			problem("%s: %s", name, err)
			continue loop
		}

		if !account.ValidCode(a.Code) {
			problem("%s: invalid code: %q", name, a.Code)
			continue loop
		}
		if previous, ok := codes[a.Code]; ok {
			problem("%s: duplicate code: %s also in: %s", name, a.Code, previous)
			continue loop
		}
		codes[a.Code] = name

		if storage.FileName(a.Code) != name {
			reply.Warnings = append(reply.Warnings, fmt.Sprintf("%s: holds code: %s", name, a.Code))
		}
		if !account.ValidName(a.Owner) || !account.ValidName(a.Creator) {
			reply.Warnings = append(reply.Warnings, fmt.Sprintf("%s: owner: %q  creator: %q  invalid principal name", name, a.Owner, a.Creator))
		}
		if !a.Balance.Valid() {
			problem("%s: invalid balance: hi: %d  lo: %d", name, a.Balance.Hi, a.Balance.Lo)
			continue loop
		}
		if a.InterestRate < policy.MinimumRate || a.InterestRate > policy.MaximumRate {
			reply.Warnings = append(reply.Warnings, fmt.Sprintf("%s: interest: %g outside [%g, %g]", name, a.InterestRate, policy.MinimumRate, policy.MaximumRate))
		}
		reply.Valid += 1
	}

	files, err := filepath.Glob(filepath.Join(d.Path(), "*"+storage.AccountSuffix))
	if nil != err {
		return nil, err
	}
	sort.Strings(files)
	for _, file := range files {
		name := filepath.Base(file)
		if !indexed[name] {
			reply.Warnings = append(reply.Warnings, name+": not in index")
		}
	}

	return reply, nil
}

func decodeFile(filename string) (*account.Account, []string, error) {
	f, err := os.Open(filename)
	if nil != err {
		return nil, nil, err
	}
	defer f.Close()
	return storage.Decode(f)
}
