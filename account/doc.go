// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - bank account records and the in-memory store
//
// The store keeps accounts in the order they were added (the order
// used for the index file and for interest sweeps) and indexes them
// by their generated code.
package account
