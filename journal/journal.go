// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package journal

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/swfe/bankd/fault"
)

const (
	sequenceSize   = 8
	currentVersion = 1
)

var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N', 0x00}

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Journal - handle to an open journal database
type Journal struct {
	sync.Mutex

	log      *logger.L
	db       *leveldb.DB
	readOnly bool
	last     uint64
}

// Open - open the journal, creating it unless read only
func Open(path string, readOnly bool, log *logger.L) (*Journal, error) {
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}

	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(path, opt)
	if nil != err {
		return nil, err
	}

	ok := false
	defer func() {
		if !ok {
			db.Close()
		}
	}()

	version, err := getVersion(db)
	if nil != err {
		return nil, err
	}
	if version > currentVersion {
		log.Criticalf("journal version: %d > current version: %d", version, currentVersion)
		return nil, fmt.Errorf("journal version: %d > current version: %d", version, currentVersion)
	}
	if 0 == version && !readOnly {
		if err := putVersion(db, currentVersion); nil != err {
			return nil, err
		}
	}

	last, err := lastSequence(db)
	if nil != err {
		return nil, err
	}

	log.Infof("opened: %q  last sequence: %d", path, last)

	ok = true
	return &Journal{
		log:      log,
		db:       db,
		readOnly: readOnly,
		last:     last,
	}, nil
}

// Close - release the database
func (j *Journal) Close() error {
	j.Lock()
	defer j.Unlock()

	if nil == j.db {
		return nil
	}
	err := j.db.Close()
	j.db = nil
	return err
}

// Last - highest sequence number written
func (j *Journal) Last() uint64 {
	j.Lock()
	defer j.Unlock()
	return j.last
}

// Record - append an entry, assigning its sequence number and, if
// not already set, its timestamp
func (j *Journal) Record(entry Entry) error {
	j.Lock()
	defer j.Unlock()

	if nil == j.db {
		return fault.ErrNotInitialised
	}
	if j.readOnly {
		return fault.ErrInvalidRecord
	}

	entry.Sequence = j.last + 1
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	value, err := json.Marshal(entry)
	if nil != err {
		return err
	}

	err = j.db.Put(sequenceKey(entry.Sequence), value, &ldb_opt.WriteOptions{Sync: true})
	if nil != err {
		j.log.Errorf("record: %d  error: %s", entry.Sequence, err)
		return err
	}
	j.last = entry.Sequence
	j.log.Debugf("record: %s", entry)
	return nil
}

// Entries - up to limit entries starting at sequence from
//
// a limit of zero or less returns all remaining entries
func (j *Journal) Entries(from uint64, limit int) ([]Entry, error) {
	j.Lock()
	defer j.Unlock()

	if nil == j.db {
		return nil, fault.ErrNotInitialised
	}

	iter := j.db.NewIterator(&ldb_util.Range{Start: sequenceKey(from)}, nil)
	defer iter.Release()

	entries := make([]Entry, 0, 16)
iterate:
	for iter.Next() {
		if sequenceSize != len(iter.Key()) {
			continue iterate
		}
		var e Entry
		if err := json.Unmarshal(iter.Value(), &e); nil != err {
			return nil, err
		}
		entries = append(entries, e)
		if limit > 0 && len(entries) >= limit {
			break iterate
		}
	}
	return entries, iter.Error()
}

func sequenceKey(n uint64) []byte {
	key := make([]byte, sequenceSize)
	binary.BigEndian.PutUint64(key, n)
	return key
}

func lastSequence(db *leveldb.DB) (uint64, error) {
	iter := db.NewIterator(nil, nil)
	defer iter.Release()

	for ok := iter.Last(); ok; ok = iter.Prev() {
		if sequenceSize == len(iter.Key()) {
			return binary.BigEndian.Uint64(iter.Key()), nil
		}
	}
	return 0, iter.Error()
}

func getVersion(db *leveldb.DB) (int, error) {
	value, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}
	if 4 != len(value) {
		return 0, fmt.Errorf("incompatible journal version length: expected: %d  actual: %d", 4, len(value))
	}
	return int(binary.BigEndian.Uint32(value)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	value := make([]byte, 4)
	binary.BigEndian.PutUint32(value, uint32(version))
	return db.Put(versionKey, value, nil)
}
