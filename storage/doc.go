// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - account files and the account index
//
// Each account is kept in its own text file named <code>.acct:
//
//   #ACCOUNT
//   Code        0a1b2c3d4e5f6a7b8c9d~
//   Creator     leia~
//   Owner       leia~
//   Trustees    chewie han~
//   Flags       0
//   Interest    1.05
//   Amounthi    0
//   Amountlo    1050
//   End
//
// The index file lists one account file name per line and ends with
// a line containing a single "$".
package storage
