// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/swfe/bankd/account"
	"github.com/swfe/bankd/fault"
)

// record markers
const (
	recordHeader    = "#ACCOUNT"
	recordEnd       = "End"
	stringTerminate = "~"
	keyWidth        = 12
)

// record keys, matched case insensitively
const (
	keyCode     = "code"
	keyCreator  = "creator"
	keyOwner    = "owner"
	keyTrustees = "trustees"
	keyFlags    = "flags"
	keyInterest = "interest"
	keyAmountHi = "amounthi"
	keyAmountLo = "amountlo"
)

// Encode - write an account record
func Encode(w io.Writer, a *account.Account) error {
	strs := [][2]string{
		{"Code", a.Code},
		{"Creator", a.Creator},
		{"Owner", a.Owner},
		{"Trustees", a.Trustees.String()},
	}

	b := bufio.NewWriter(w)
	fmt.Fprintf(b, "%s\n", recordHeader)
	for _, s := range strs {
		if strings.Contains(s[1], stringTerminate) {
			return fault.ErrInvalidRecord
		}
		fmt.Fprintf(b, "%-*s%s%s\n", keyWidth, s[0], s[1], stringTerminate)
	}
	fmt.Fprintf(b, "%-*s%d\n", keyWidth, "Flags", uint64(a.Flags))
	fmt.Fprintf(b, "%-*s%s\n", keyWidth, "Interest", strconv.FormatFloat(a.InterestRate, 'f', -1, 64))
	fmt.Fprintf(b, "%-*s%d\n", keyWidth, "Amounthi", a.Balance.Hi)
	fmt.Fprintf(b, "%-*s%d\n", keyWidth, "Amountlo", a.Balance.Lo)
	fmt.Fprintf(b, "%s\n", recordEnd)
	return b.Flush()
}

// Decode - read an account record
//
// unknown keys and repaired values are returned as warnings; missing
// optional fields receive defaults.  A missing code is left blank for
// the caller to assign.
func Decode(r io.Reader) (*account.Account, []string, error) {
	scanner := bufio.NewScanner(r)
	warnings := []string(nil)

	header := ""
	for scanner.Scan() {
		header = strings.TrimSpace(scanner.Text())
		if "" != header {
			break
		}
	}
	if nil != scanner.Err() {
		return nil, nil, scanner.Err()
	}
	if recordHeader != header {
		return nil, nil, fault.ErrMissingHeader
	}

	a := &account.Account{}
	seen := make(map[string]bool)
	ended := false

	lineNumber := 1
scan_loop:
	for scanner.Scan() {
		lineNumber += 1
		line := strings.TrimSpace(scanner.Text())
		if "" == line {
			continue scan_loop
		}

		key, value := splitKey(line)
		lowerKey := strings.ToLower(key)

		switch lowerKey {

		case strings.ToLower(recordEnd):
			ended = true
			break scan_loop

		case keyCode, keyCreator, keyOwner, keyTrustees:
			for !strings.HasSuffix(value, stringTerminate) {
				if !scanner.Scan() {
					return nil, warnings, fault.ErrInvalidRecord
				}
				lineNumber += 1
				value += "\n" + strings.TrimRight(scanner.Text(), " \t")
			}
			value = strings.TrimSuffix(value, stringTerminate)

			switch lowerKey {
			case keyCode:
				a.Code = value
			case keyCreator:
				a.Creator = value
			case keyOwner:
				a.Owner = value
			case keyTrustees:
				a.Trustees = account.ParseTrustees(value)
			}

		case keyFlags:
			n, err := strconv.ParseUint(value, 10, 64)
			if nil != err {
				return nil, warnings, fault.ErrInvalidRecord
			}
			a.Flags = account.Flags(n)

		case keyInterest:
			f, err := strconv.ParseFloat(value, 64)
			if nil != err {
				return nil, warnings, fault.ErrInvalidRecord
			}
			a.InterestRate = f

		case keyAmountHi, keyAmountLo:
			n, err := strconv.ParseInt(value, 10, 64)
			if nil != err {
				return nil, warnings, fault.ErrInvalidRecord
			}
			if keyAmountHi == lowerKey {
				a.Balance.Hi = n
			} else {
				a.Balance.Lo = n
			}

		default:
			warnings = append(warnings, fmt.Sprintf("line %d: no match for: %q", lineNumber, key))
			continue scan_loop
		}

		if seen[lowerKey] {
			warnings = append(warnings, fmt.Sprintf("line %d: duplicate key: %q", lineNumber, key))
		}
		seen[lowerKey] = true
	}
	if nil != scanner.Err() {
		return nil, warnings, scanner.Err()
	}
	if !ended {
		warnings = append(warnings, "missing End marker")
	}

	if "" == a.Creator {
		a.Creator = account.NoCreator
	}
	if "" == a.Owner {
		a.Owner = account.NoOwner
	}
	if nil == a.Trustees {
		a.Trustees = account.Trustees{}
	}

	if !a.Balance.Valid() {
		before := a.Balance
		if err := a.Balance.Normalise(); nil != err {
			return nil, warnings, err
		}
		warnings = append(warnings, fmt.Sprintf("balance normalised: %d/%d -> %d/%d", before.Hi, before.Lo, a.Balance.Hi, a.Balance.Lo))
	}

	return a, warnings, nil
}

// split "Key   value" into key and value
func splitKey(line string) (string, string) {
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimLeft(line[i:], " \t")
}
