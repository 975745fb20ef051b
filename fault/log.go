// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/bitmark-inc/logger"
)

// hold a logger channel
var critical struct {
	sync.Mutex
	log *logger.L
}

// Initialise - setup a log channel for critical ledger events
//
// must be called after logger.Initialise
func Initialise() error {
	critical.Lock()
	defer critical.Unlock()

	if nil != critical.log {
		return ErrAlreadyInitialised
	}
	critical.log = logger.New("PANIC")
	if nil == critical.log {
		return ErrInvalidLoggerChannel
	}
	return nil
}

// Finalise - flush any data and detach the channel
func Finalise() {
	critical.Lock()
	defer critical.Unlock()

	if nil != critical.log {
		critical.log.Flush()
		critical.log = nil
	}
}

// Critical - log a simple string
func Critical(message string) {
	if _, file, line, ok := runtime.Caller(1); ok {
		internalCriticalf("(%q:%d) "+message, file, line)
	} else {
		internalCriticalf("%s", message)
	}
}

// Criticalf - log a formatted string with arguments like fmt.Sprintf()
func Criticalf(format string, arguments ...interface{}) {
	if _, file, line, ok := runtime.Caller(1); ok {
		a := make([]interface{}, 2, 2+len(arguments))
		a[0] = file
		a[1] = line
		a = append(a, arguments...)
		internalCriticalf("(%q:%d) "+format, a...)
	} else {
		internalCriticalf(format, arguments...)
	}
}

// PanicIfError - conditional panic
func PanicIfError(message string, err error) {
	if nil == err {
		return
	}
	s := fmt.Sprintf("%s failed with error: %v", message, err)
	internalCriticalf("%s", s)
	panic(s)
}

// handle an uninitialised logger channel by writing to stdout
func internalCriticalf(format string, arguments ...interface{}) {
	critical.Lock()
	defer critical.Unlock()

	if nil == critical.log {
		fmt.Printf("*** "+format+"\n", arguments...)
	} else {
		critical.log.Criticalf(format, arguments...)
		critical.log.Flush() // make sure log file is saved
	}
}
