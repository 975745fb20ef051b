// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swfe/bankd/configuration"
	"github.com/swfe/bankd/fault"
)

type limits struct {
	MaximumAccounts int     `gluamapper:"maximum_accounts"`
	DefaultRate     float64 `gluamapper:"default_rate"`
}

type testConfiguration struct {
	DataDirectory string            `gluamapper:"data_directory"`
	Name          string            `gluamapper:"name"`
	Limits        limits            `gluamapper:"limits"`
	Levels        map[string]string `gluamapper:"levels"`
}

const luaConfig = `
local M = {}

M.data_directory = arg[0]:match("(.*/)")
M.name = "bank" .. "-" .. "one"
M.limits = {
    maximum_accounts = 3,
    default_rate = 1.25,
}
M.levels = {
    ledger = "info",
    DEFAULT = "error",
}

return M
`

func writeFile(t *testing.T, dir string, name string, content string) string {
	fileName := filepath.Join(dir, name)
	require.NoError(t, ioutil.WriteFile(fileName, []byte(content), 0600))
	return fileName
}

func TestParseConfigurationFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "configuration-test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	fileName := writeFile(t, dir, "bankd.conf", luaConfig)

	config := testConfiguration{
		Limits: limits{
			MaximumAccounts: 10,
			DefaultRate:     1.05,
		},
	}
	require.NoError(t, configuration.ParseConfigurationFile(fileName, &config))

	assert.Equal(t, dir+"/", config.DataDirectory)
	assert.Equal(t, "bank-one", config.Name)
	assert.Equal(t, 3, config.Limits.MaximumAccounts)
	assert.Equal(t, 1.25, config.Limits.DefaultRate)
	assert.Equal(t, map[string]string{"ledger": "info", "DEFAULT": "error"}, config.Levels)
}

func TestParseKeepsDefaults(t *testing.T) {
	dir, err := ioutil.TempDir("", "configuration-test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	fileName := writeFile(t, dir, "bankd.conf", `return { name = "only" }`)

	config := testConfiguration{
		DataDirectory: "/var/lib/bank",
		Limits: limits{
			MaximumAccounts: 10,
		},
	}
	require.NoError(t, configuration.ParseConfigurationFile(fileName, &config))
	assert.Equal(t, "only", config.Name)
	assert.Equal(t, "/var/lib/bank", config.DataDirectory)
	assert.Equal(t, 10, config.Limits.MaximumAccounts)
}

func TestParseErrors(t *testing.T) {
	dir, err := ioutil.TempDir("", "configuration-test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	config := testConfiguration{}

	err = configuration.ParseConfigurationFile(filepath.Join(dir, "missing.conf"), &config)
	assert.Equal(t, fault.ErrNotFoundConfigFile, err)

	fileName := writeFile(t, dir, "syntax.conf", `return {`)
	assert.Error(t, configuration.ParseConfigurationFile(fileName, &config))

	fileName = writeFile(t, dir, "scalar.conf", `return 42`)
	assert.Equal(t, fault.ErrInvalidConfiguration, configuration.ParseConfigurationFile(fileName, &config))
}

func TestEnsureAbsolute(t *testing.T) {
	assert.Equal(t, "/data/log", configuration.EnsureAbsolute("/data", "log"))
	assert.Equal(t, "/var/log", configuration.EnsureAbsolute("/data", "/var/log"))
	assert.Equal(t, "/data/b", configuration.EnsureAbsolute("/data", "a/../b"))
}

func TestIsPlainName(t *testing.T) {
	assert.True(t, configuration.IsPlainName("bank.lst"))
	assert.False(t, configuration.IsPlainName(""))
	assert.False(t, configuration.IsPlainName("dir/bank.lst"))
	assert.False(t, configuration.IsPlainName("/bank.lst"))
}
