// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swfe/bankd/fault"
	"github.com/swfe/bankd/ledger"
)

func TestTrustees(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	l := setup(t, ctl,
		makeAccount(codeA, "leia", 0, 10),
		makeAccount(codeB, "han", 1, 0),
	)

	assert.Equal(t, fault.ErrNotOwner, l.Entrust(codeA, "han", "chewie"))
	assert.Equal(t, fault.ErrSelfTrustee, l.Entrust(codeA, "leia", "leia"))
	assert.Equal(t, fault.ErrInvalidTrustee, l.Entrust(codeA, "leia", ""))
	assert.Equal(t, fault.ErrInvalidTrustee, l.Entrust(codeA, "leia", "two words"))
	assert.Equal(t, fault.ErrAccountNotFound, l.Entrust(codeC, "leia", "han"))

	require.NoError(t, l.Entrust(codeA, "leia", "han"))
	require.NoError(t, l.Entrust(codeA, "leia", "han"))
	require.NoError(t, l.Entrust(codeA, "leia", "chewie"))

	assert.True(t, l.HasAccess(codeA, "leia"))
	assert.True(t, l.HasAccess(codeA, "han"))
	assert.False(t, l.HasAccess(codeA, "vader"))
	assert.False(t, l.HasAccess(codeC, "leia"))

	expected := []ledger.Access{
		{Code: codeA, Owner: "leia", Status: ledger.TrusteeAccess, Balance: "10"},
		{Code: codeB, Owner: "han", Status: ledger.OwnerAccess, Balance: "1000000000"},
	}
	assert.Equal(t, expected, l.Accessible("han"))
	assert.Empty(t, l.Accessible("vader"))

	assert.Equal(t, fault.ErrTrusteeNotFound, l.RemoveTrustee(codeA, "leia", "vader"))
	assert.Equal(t, fault.ErrNotOwner, l.RemoveTrustee(codeA, "han", "han"))
	require.NoError(t, l.RemoveTrustee(codeA, "leia", "han"))
	assert.False(t, l.HasAccess(codeA, "han"))

	assert.Equal(t, fault.ErrNotOwner, l.ClearTrustees(codeA, "chewie"))
	require.NoError(t, l.ClearTrustees(codeA, "leia"))
	assert.False(t, l.HasAccess(codeA, "chewie"))
	require.NoError(t, l.ClearTrustees(codeA, "leia"))
}

func TestAccessStatusString(t *testing.T) {
	assert.Equal(t, "Owner", ledger.OwnerAccess.String())
	assert.Equal(t, "Trustee", ledger.TrusteeAccess.String())
	assert.Equal(t, "None", ledger.NoAccess.String())
}
