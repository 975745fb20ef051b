// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package journal - append only record of committed ledger operations
//
// each entry is stored in a LevelDB database under its 8 byte big
// endian sequence number, the value is the JSON encoded entry:
//
//   {"sequence":1,"kind":"deposit","destination":"<code>","amount":100,"timestamp":"..."}
//
// a version record is held under a key of a different length so
// that it never appears in a sequence scan
package journal
