// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swfe/bankd/fault"
	"github.com/swfe/bankd/journal"
	"github.com/swfe/bankd/ledger"
	"github.com/swfe/bankd/storage"
)

// full cycle through the account directory and the journal
func TestPersistAndReload(t *testing.T) {
	dir, err := ioutil.TempDir("", "ledger-test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	accounts, err := storage.New(filepath.Join(dir, "accounts"), "", logger.New("storage"))
	require.NoError(t, err)
	j, err := journal.Open(filepath.Join(dir, "journal.leveldb"), journal.ReadWrite, logger.New("journal"))
	require.NoError(t, err)

	l, err := ledger.New(ledger.DefaultPolicy(), accounts, j, nil)
	require.NoError(t, err)
	require.NoError(t, l.Load(nil))

	leia, err := l.OpenAccount("leia")
	require.NoError(t, err)
	han, err := l.OpenAccount("han")
	require.NoError(t, err)
	spare, err := l.OpenAccount("han")
	require.NoError(t, err)

	require.NoError(t, l.Deposit(leia.Code, 999999999))
	require.NoError(t, l.Deposit(leia.Code, 2))
	require.NoError(t, l.Transfer(leia.Code, han.Code, 100))
	require.NoError(t, l.Entrust(leia.Code, "leia", "han"))
	require.NoError(t, l.CloseAccount(spare.Code))
	l.RunInterestCycle()

	leiaBefore, err := l.Status(leia.Code)
	require.NoError(t, err)
	hanBefore, err := l.Status(han.Code)
	require.NoError(t, err)
	supply := l.Supply()

	require.NoError(t, j.Close())

	// reload into a fresh ledger
	loaded, err := accounts.LoadAll()
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	reloaded, err := ledger.New(ledger.DefaultPolicy(), accounts, nil, nil)
	require.NoError(t, err)
	require.NoError(t, reloaded.Load(loaded))

	leiaAfter, err := reloaded.Status(leia.Code)
	require.NoError(t, err)
	hanAfter, err := reloaded.Status(han.Code)
	require.NoError(t, err)

	assert.Equal(t, leiaBefore, leiaAfter)
	assert.Equal(t, hanBefore, hanAfter)
	assert.Equal(t, supply, reloaded.Supply())
	assert.True(t, reloaded.HasAccess(leia.Code, "han"))
	assert.Equal(t, 1, reloaded.AccountsOwnedBy("han"))

	// journal holds every committed operation in order
	r, err := journal.Open(filepath.Join(dir, "journal.leveldb"), journal.ReadOnly, logger.New("journal"))
	require.NoError(t, err)
	defer r.Close()

	entries, err := r.Entries(0, 0)
	require.NoError(t, err)

	kinds := make([]journal.Kind, 0, len(entries))
	for _, e := range entries {
		kinds = append(kinds, e.Kind)
	}
	expected := []journal.Kind{
		journal.KindOpen,
		journal.KindOpen,
		journal.KindOpen,
		journal.KindDeposit,
		journal.KindDeposit,
		journal.KindTransfer,
		journal.KindClose,
		journal.KindInterest,
		journal.KindInterest,
	}
	assert.Equal(t, expected, kinds)
}

// every accepted owner must come back unchanged after a reload
func TestOwnerNamesSurviveReload(t *testing.T) {
	dir, err := ioutil.TempDir("", "ledger-test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	accounts, err := storage.New(dir, "", logger.New("storage"))
	require.NoError(t, err)

	l, err := ledger.New(ledger.DefaultPolicy(), accounts, nil, nil)
	require.NoError(t, err)
	require.NoError(t, l.Load(nil))

	for _, name := range []string{"bob~smith", " bob", "bob "} {
		_, err := l.OpenAccount(name)
		assert.Equal(t, fault.ErrInvalidOwner, err, "owner: %q", name)
	}

	opened := make(map[string]string)
	for _, name := range []string{"bob", "bob_smith", "O'Brien"} {
		a, err := l.OpenAccount(name)
		require.NoError(t, err, "owner: %q", name)
		require.NoError(t, l.Deposit(a.Code, 500))
		opened[a.Code] = name
	}
	assert.Equal(t, uint64(0), l.Statistics().PersistenceFailures)

	loaded, err := accounts.LoadAll()
	require.NoError(t, err)
	require.Len(t, loaded, len(opened))

	reloaded, err := ledger.New(ledger.DefaultPolicy(), accounts, nil, nil)
	require.NoError(t, err)
	require.NoError(t, reloaded.Load(loaded))

	for code, name := range opened {
		a, err := reloaded.Status(code)
		require.NoError(t, err)
		assert.Equal(t, name, a.Owner)
		assert.Equal(t, name, a.Creator)
		assert.Equal(t, "500", a.Balance.String())
		assert.Equal(t, 1, reloaded.AccountsOwnedBy(name))
	}
}
