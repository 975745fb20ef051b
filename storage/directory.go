// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/swfe/bankd/account"
	"github.com/swfe/bankd/fault"
)

// file naming
const (
	AccountSuffix    = ".acct"
	DefaultIndexName = "bank.lst"

	indexEnd  = "$"
	tmpSuffix = ".tmp"
)

// Directory - account files and index in a single directory
type Directory struct {
	log       *logger.L
	path      string
	indexName string
}

// New - open (creating if necessary) an account directory
func New(path string, indexName string, log *logger.L) (*Directory, error) {
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}
	if "" == indexName {
		indexName = DefaultIndexName
	}
	if filepath.Base(indexName) != indexName {
		return nil, fault.ErrInvalidRecord
	}
	if err := os.MkdirAll(path, 0700); nil != err {
		return nil, err
	}
	return &Directory{
		log:       log,
		path:      path,
		indexName: indexName,
	}, nil
}

// Path - the directory
func (d *Directory) Path() string {
	return d.path
}

// FileName - account file name for a code
func FileName(code string) string {
	return code + AccountSuffix
}

// Save - write one account file
func (d *Directory) Save(a *account.Account) error {
	if "" == a.Code {
		return fault.ErrInvalidRecord
	}
	return writeAtomic(filepath.Join(d.path, FileName(a.Code)), func(w io.Writer) error {
		return Encode(w, a)
	})
}

// Remove - delete one account file
func (d *Directory) Remove(code string) error {
	if "" == code {
		return fault.ErrInvalidRecord
	}
	return os.Remove(filepath.Join(d.path, FileName(code)))
}

// WriteIndex - rewrite the complete index
func (d *Directory) WriteIndex(codes []string) error {
	return writeAtomic(filepath.Join(d.path, d.indexName), func(w io.Writer) error {
		b := bufio.NewWriter(w)
		for _, code := range codes {
			b.WriteString(FileName(code))
			b.WriteByte('\n')
		}
		b.WriteString(indexEnd)
		b.WriteByte('\n')
		return b.Flush()
	})
}

// ReadIndex - account file names in index order
func (d *Directory) ReadIndex() ([]string, error) {
	f, err := os.Open(filepath.Join(d.path, d.indexName))
	if nil != err {
		return nil, err
	}
	defer f.Close()

	names := make([]string, 0, 16)
	scanner := bufio.NewScanner(f)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		name := scanner.Text()
		if strings.HasPrefix(name, indexEnd) {
			break
		}
		if filepath.Base(name) != name {
			d.log.Warnf("index: skip unsafe name: %q", name)
			continue
		}
		names = append(names, name)
	}
	return names, scanner.Err()
}

// Load - read one account file, logging any warnings
func (d *Directory) Load(name string) (*account.Account, error) {
	f, err := os.Open(filepath.Join(d.path, name))
	if nil != err {
		return nil, err
	}
	defer f.Close()

	a, warnings, err := Decode(f)
	for _, w := range warnings {
		d.log.Warnf("load: %s: %s", name, w)
	}
	return a, err
}

// LoadAll - read every account listed in the index
//
// a missing index is an empty directory; unreadable accounts are
// logged and skipped
func (d *Directory) LoadAll() ([]*account.Account, error) {
	names, err := d.ReadIndex()
	if os.IsNotExist(err) {
		d.log.Warnf("no index: %q", d.indexName)
		return []*account.Account{}, nil
	}
	if nil != err {
		return nil, err
	}

	accounts := make([]*account.Account, 0, len(names))
	for _, name := range names {
		a, err := d.Load(name)
		if nil != err {
			d.log.Errorf("load: %s: error: %s", name, err)
			continue
		}
		accounts = append(accounts, a)
	}
	d.log.Infof("loaded %d of %d accounts", len(accounts), len(names))
	return accounts, nil
}

// write to a temporary file then rename over the target
func writeAtomic(filename string, write func(w io.Writer) error) error {
	tmp := filename + tmpSuffix

	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if nil != err {
		return err
	}

	err = write(f)
	if nil == err {
		err = f.Sync()
	}
	if closeErr := f.Close(); nil == err {
		err = closeErr
	}
	if nil != err {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, filename)
}
