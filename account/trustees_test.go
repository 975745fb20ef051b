// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swfe/bankd/account"
)

func TestParseTrustees(t *testing.T) {
	tr := account.ParseTrustees("  han  chewie han ")

	assert.Equal(t, []string{"chewie", "han"}, tr.List())
	assert.Equal(t, "chewie han", tr.String())
	assert.Equal(t, "", account.ParseTrustees("").String())
}

func TestTrusteesAddRemove(t *testing.T) {
	var tr account.Trustees

	assert.False(t, tr.Has("han"))
	assert.True(t, tr.Add("han"))
	assert.False(t, tr.Add("han"))
	assert.True(t, tr.Has("han"))
	assert.True(t, tr.Remove("han"))
	assert.False(t, tr.Remove("han"))
	assert.Empty(t, tr.List())
}

func TestTrusteesJSON(t *testing.T) {
	tr := account.ParseTrustees("lando han")

	data, err := json.Marshal(tr)
	require.NoError(t, err)
	assert.Equal(t, `["han","lando"]`, string(data))

	var back account.Trustees
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, tr, back)
}
