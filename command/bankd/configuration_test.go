// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swfe/bankd/fault"
	"github.com/swfe/bankd/ledger"
)

func writeConfiguration(t *testing.T, dir string, content string) string {
	fileName := filepath.Join(dir, "bankd.conf")
	require.NoError(t, ioutil.WriteFile(fileName, []byte(content), 0600))
	return fileName
}

func TestSampleConfiguration(t *testing.T) {
	dir, err := ioutil.TempDir("", "bankd-test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	sample, err := ioutil.ReadFile("bankd.conf.sample")
	require.NoError(t, err)
	fileName := writeConfiguration(t, dir, string(sample))

	options, err := getConfiguration(fileName)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "accounts"), options.Accounts.Directory)
	assert.Equal(t, "bank.lst", options.Accounts.Index)
	assert.Equal(t, filepath.Join(dir, "journal.leveldb"), options.Journal.Directory)
	assert.Equal(t, filepath.Join(dir, "log"), options.Logging.Directory)
	assert.Equal(t, "", options.PidFile)
	assert.Equal(t, 30*time.Minute, options.interestInterval)
	assert.Equal(t, time.Minute, options.statsInterval)
	assert.Equal(t, ledger.DefaultPolicy(), options.Policy)
	assert.Equal(t, "info", options.Logging.Levels["ledger"])
	assert.Equal(t, 100, options.Logging.Count)

	for _, d := range []string{options.Accounts.Directory, options.Logging.Directory} {
		info, err := os.Stat(d)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestMinimalConfiguration(t *testing.T) {
	dir, err := ioutil.TempDir("", "bankd-test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	fileName := writeConfiguration(t, dir, `
return {
    data_directory = ".",
    pidfile = "bankd.pid",
    journal = { directory = "" },
    policy = { maximum_accounts = 3 },
}
`)

	options, err := getConfiguration(fileName)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "bankd.pid"), options.PidFile)
	assert.Equal(t, "", options.Journal.Directory)
	assert.Equal(t, 3, options.Policy.MaximumAccounts)
	assert.Equal(t, 1.05, options.Policy.DefaultRate)
	assert.Equal(t, defaultLogFile, options.Logging.File)
}

func TestConfigurationErrors(t *testing.T) {
	dir, err := ioutil.TempDir("", "bankd-test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	tests := []struct {
		content string
		err     error
	}{
		{`return {}`, nil},
		{`return { data_directory = "~" }`, nil},
		{`return { data_directory = ".", policy = { default_rate = 5 } }`, fault.ErrInvalidPolicy},
		{`return { data_directory = ".", interest = { interval = "-1m" } }`, fault.ErrInvalidInterval},
		{`return { data_directory = ".", interest = { interval = "soon" } }`, nil},
		{`return { data_directory = ".", accounts = { index = "x/bank.lst" } }`, nil},
		{`return { data_directory = "` + filepath.Join(dir, "missing") + `" }`, nil},
	}
	for i, item := range tests {
		fileName := writeConfiguration(t, dir, item.content)
		_, err := getConfiguration(fileName)
		require.Error(t, err, "%d: %s", i, item.content)
		if nil != item.err {
			assert.Equal(t, item.err, err, "%d", i)
		}
	}

	_, err = getConfiguration(filepath.Join(dir, "absent.conf"))
	assert.Equal(t, fault.ErrNotFoundConfigFile, err)
}
