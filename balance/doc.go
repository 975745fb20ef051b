// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package balance - two limb account balance
//
// A balance is held as a pair (Hi, Lo) where Lo is always in the
// range [0, Threshold] and Hi counts whole units of Radix.  The true
// value is Hi × Radix + Lo which can exceed the range of int64; use
// Total to obtain it exactly.
//
// Every mutating operation either fully applies or returns an error
// and leaves the balance unchanged.
package balance
