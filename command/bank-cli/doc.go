// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// bank-cli - offline inspection of an account directory and journal
//
// the daemon should be stopped first since account files are read
// without any locking
package main
