// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"runtime"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/swfe/bankd/ledger"
)

const (
	mega = 1048576
)

// periodic ledger and memory statistics
type statistics struct {
	log      *logger.L
	ledger   *ledger.Ledger
	interval time.Duration
	memory   bool
}

func newStatistics(l *ledger.Ledger, interval time.Duration, memory bool) *statistics {
	return &statistics{
		log:      logger.New("stats"),
		ledger:   l,
		interval: interval,
		memory:   memory,
	}
}

func (s *statistics) Run(args interface{}, shutdown <-chan struct{}) {

	log := s.log

	delay := time.After(s.interval)
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-delay:
			delay = time.After(s.interval)
		}

		text, err := json.Marshal(s.ledger.Statistics())
		if nil != err {
			log.Errorf("marshal error: %s", err)
		} else {
			log.Infof("ledger: %s", text)
		}

		if s.memory {
			memstats(log)
		}
	}
}

func memstats(log *logger.L) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	a := m.Alloc / mega
	t := m.TotalAlloc / mega
	sys := m.Sys / mega
	log.Infof("allocated: %d M  cumulative: %d M  OS virtual: %d M", a, t, sys)
}
