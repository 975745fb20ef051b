// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/swfe/bankd/fault"
)

// InterestProcess - background process running the interest cycle
type InterestProcess struct {
	log      *logger.L
	ledger   *Ledger
	interval time.Duration
	cycles   func(result CycleResult)
}

// NewInterestProcess - create the process, notify receives each
// cycle's result and may be nil
func NewInterestProcess(l *Ledger, interval time.Duration, notify func(result CycleResult)) (*InterestProcess, error) {
	if nil == l {
		return nil, fault.ErrNotInitialised
	}
	if interval <= 0 {
		return nil, fault.ErrInvalidInterval
	}

	log := logger.New("interest")
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}

	return &InterestProcess{
		log:      log,
		ledger:   l,
		interval: interval,
		cycles:   notify,
	}, nil
}

// Run - one cycle per interval until shutdown
func (p *InterestProcess) Run(args interface{}, shutdown <-chan struct{}) {

	log := p.log

	log.Infof("starting…  interval: %s", p.interval)

	delay := time.After(p.interval)
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-delay:
			delay = time.After(p.interval)
			result := p.ledger.RunInterestCycle()
			log.Debugf("cycle: %+v", result)
			if nil != p.cycles {
				p.cycles(result)
			}
		}
	}

	log.Info("stopped")
}
