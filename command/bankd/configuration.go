// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/swfe/bankd/configuration"
	"github.com/swfe/bankd/fault"
	"github.com/swfe/bankd/ledger"
	"github.com/swfe/bankd/storage"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultAccountsDirectory = "accounts"
	defaultJournalDirectory  = "journal.leveldb"

	defaultInterestInterval = "30m"
	defaultStatsInterval    = "60s"

	defaultLogDirectory = "log"
	defaultLogFile      = "bankd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// AccountsType - the account directory
type AccountsType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Index     string `gluamapper:"index" json:"index"`
}

// JournalType - the transaction journal, blank directory to disable
type JournalType struct {
	Directory string `gluamapper:"directory" json:"directory"`
}

// InterestType - interest accrual schedule
type InterestType struct {
	Interval string `gluamapper:"interval" json:"interval"`
}

// Configuration - the complete daemon configuration
type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string               `gluamapper:"pidfile" json:"pidfile"`
	StatsInterval string               `gluamapper:"stats_interval" json:"stats_interval"`
	Accounts      AccountsType         `gluamapper:"accounts" json:"accounts"`
	Journal       JournalType          `gluamapper:"journal" json:"journal"`
	Interest      InterestType         `gluamapper:"interest" json:"interest"`
	Policy        ledger.Policy        `gluamapper:"policy" json:"policy"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`

	interestInterval time.Duration
	statsInterval    time.Duration
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default
		StatsInterval: defaultStatsInterval,

		Accounts: AccountsType{
			Directory: defaultAccountsDirectory,
			Index:     storage.DefaultIndexName,
		},

		Journal: JournalType{
			Directory: defaultJournalDirectory,
		},

		Interest: InterestType{
			Interval: defaultInterestInterval,
		},

		Policy: ledger.DefaultPolicy(),

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	if err := options.Policy.Validate(); nil != err {
		return nil, err
	}

	options.interestInterval, err = time.ParseDuration(options.Interest.Interval)
	if nil != err {
		return nil, err
	}
	if options.interestInterval <= 0 {
		return nil, fault.ErrInvalidInterval
	}

	options.statsInterval, err = time.ParseDuration(options.StatsInterval)
	if nil != err {
		return nil, err
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
		&options.Journal.Directory,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = configuration.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// fail if any of these are not simple file names
	mustNotBePaths := []*string{
		&options.Accounts.Index,
		&options.Logging.File,
	}
	for _, f := range mustNotBePaths {
		if !configuration.IsPlainName(*f) {
			return nil, fmt.Errorf("Files: %q is not plain name", *f)
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Accounts.Directory,
		&options.Logging.Directory,
	} {
		*d = configuration.EnsureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}
