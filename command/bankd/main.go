// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/swfe/bankd/background"
	"github.com/swfe/bankd/fault"
	"github.com/swfe/bankd/journal"
	"github.com/swfe/bankd/ledger"
	"github.com/swfe/bankd/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "memory-stats", HasArg: getoptions.NO_ARGUMENT, Short: 'm'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	if err = fault.Initialise(); nil != err {
		exitwithstatus.Message("%s: critical log setup failed with error: %s", program, err)
	}
	defer fault.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	log.Infof("accounts: %q  index: %q", theConfiguration.Accounts.Directory, theConfiguration.Accounts.Index)
	log.Infof("policy: %+v", theConfiguration.Policy)

	// account files
	log.Info("initialise storage")
	directory, err := storage.New(theConfiguration.Accounts.Directory, theConfiguration.Accounts.Index, logger.New("storage"))
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}

	// optional journal
	var recorder ledger.Recorder
	if "" != theConfiguration.Journal.Directory {
		log.Infof("initialise journal: %q", theConfiguration.Journal.Directory)
		j, err := journal.Open(theConfiguration.Journal.Directory, journal.ReadWrite, logger.New("journal"))
		if nil != err {
			log.Criticalf("journal initialise error: %s", err)
			exitwithstatus.Message("journal initialise error: %s", err)
		}
		defer j.Close()
		recorder = j
	} else {
		log.Warn("journal disabled")
	}

	theLedger, err := ledger.New(theConfiguration.Policy, directory, recorder, nil)
	if nil != err {
		log.Criticalf("ledger initialise error: %s", err)
		exitwithstatus.Message("ledger initialise error: %s", err)
	}

	accounts, err := directory.LoadAll()
	if nil != err {
		log.Criticalf("account load error: %s", err)
		exitwithstatus.Message("account load error: %s", err)
	}
	if err = theLedger.Load(accounts); nil != err {
		log.Criticalf("ledger load error: %s", err)
		exitwithstatus.Message("ledger load error: %s", err)
	}
	log.Infof("accounts: %d  supply: %s", theLedger.Count(), theLedger.Supply().Dec())

	// these commands operate on the loaded ledger then exit
	if len(arguments) > 0 && processDataCommand(log, arguments, theLedger) {
		return
	}

	// background processes
	interest, err := ledger.NewInterestProcess(theLedger, theConfiguration.interestInterval, nil)
	if nil != err {
		log.Criticalf("interest initialise error: %s", err)
		exitwithstatus.Message("interest initialise error: %s", err)
	}

	processes := background.Processes{
		interest,
	}
	if theConfiguration.statsInterval > 0 {
		processes = append(processes, newStatistics(theLedger, theConfiguration.statsInterval, len(options["memory-stats"]) > 0))
	}
	bg := background.Start(processes, nil)

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
	bg.Stop()

	// final full save
	if err := theLedger.SaveAll(); nil != err {
		log.Errorf("final save error: %s", err)
	}
	log.Infof("statistics: %+v", theLedger.Statistics())
}
