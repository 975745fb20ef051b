// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/swfe/bankd/journal"
)

type journalReply struct {
	Last    uint64          `json:"last"`
	Entries []journal.Entry `json:"entries"`
}

func runJournal(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	if "" == m.journal {
		return ErrMissingJournal
	}

	j, err := journal.Open(m.journal, journal.ReadOnly, logger.New("journal"))
	if nil != err {
		return err
	}
	defer j.Close()

	from := c.Uint64("from")
	count := c.Int("count")
	if count < 0 {
		count = 0
	}

	entries, err := j.Entries(from, count)
	if nil != err {
		return err
	}

	if m.json {
		return printJson(m.w, journalReply{
			Last:    j.Last(),
			Entries: entries,
		})
	}

	for _, e := range entries {
		fmt.Fprintf(m.w, "%s\n", e)
	}
	if m.verbose {
		fmt.Fprintf(m.e, "last sequence: %d\n", j.Last())
	}
	return nil
}
