// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type CriticalError GenericError
type ExistsError GenericError
type FundsError GenericError
type InvalidError GenericError
type LimitError GenericError
type NotFoundError GenericError
type OverflowError GenericError
type PermissionError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAccountExists        = ExistsError("account already exists")
	ErrAccountLimit         = LimitError("owner has too many accounts")
	ErrAccountNotFound      = NotFoundError("account not found")
	ErrAlreadyInitialised   = ExistsError("already initialised")
	ErrAmountTooLarge       = InvalidError("amount exceeds transaction maximum")
	ErrBalanceNotZero       = FundsError("balance is not zero")
	ErrBalanceOverflow      = OverflowError("balance overflow")
	ErrCodeExhausted        = LimitError("unable to generate a unique account code")
	ErrInsufficientFunds    = FundsError("insufficient funds")
	ErrInterestOverflow     = OverflowError("interest calculation overflow")
	ErrInvalidAmount        = InvalidError("invalid amount")
	ErrInvalidConfiguration = InvalidError("configuration file must return a table")
	ErrInvalidInterval      = InvalidError("invalid interest interval")
	ErrInvalidLoggerChannel = InvalidError("invalid logger channel")
	ErrInvalidOwner         = InvalidError("invalid owner")
	ErrInvalidPolicy        = InvalidError("invalid ledger policy")
	ErrInvalidRecord        = RecordError("invalid account record")
	ErrInvalidTrustee       = InvalidError("invalid trustee")
	ErrLedgerInconsistency  = CriticalError("ledger inconsistency: transfer rollback failed")
	ErrMissingHeader        = RecordError("account record header is missing")
	ErrNegativeAmount       = InvalidError("amount is negative")
	ErrNegativeBalance      = FundsError("balance is negative")
	ErrNotFoundConfigFile   = NotFoundError("config file is not found")
	ErrNotInitialised       = NotFoundError("not initialised")
	ErrNotOwner             = PermissionError("only the owner may do that")
	ErrPersistenceFailure   = RecordError("persistence failure")
	ErrSameAccount          = InvalidError("source and destination are the same account")
	ErrSelfTrustee          = InvalidError("owner cannot be a trustee")
	ErrTrusteeNotFound      = NotFoundError("trustee not found")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e CriticalError) Error() string   { return string(e) }
func (e ExistsError) Error() string     { return string(e) }
func (e FundsError) Error() string      { return string(e) }
func (e InvalidError) Error() string    { return string(e) }
func (e LimitError) Error() string      { return string(e) }
func (e NotFoundError) Error() string   { return string(e) }
func (e OverflowError) Error() string   { return string(e) }
func (e PermissionError) Error() string { return string(e) }
func (e ProcessError) Error() string    { return string(e) }
func (e RecordError) Error() string     { return string(e) }

// determine the class of an error
func IsErrCritical(e error) bool   { _, ok := e.(CriticalError); return ok }
func IsErrExists(e error) bool     { _, ok := e.(ExistsError); return ok }
func IsErrFunds(e error) bool      { _, ok := e.(FundsError); return ok }
func IsErrInvalid(e error) bool    { _, ok := e.(InvalidError); return ok }
func IsErrLimit(e error) bool      { _, ok := e.(LimitError); return ok }
func IsErrNotFound(e error) bool   { _, ok := e.(NotFoundError); return ok }
func IsErrOverflow(e error) bool   { _, ok := e.(OverflowError); return ok }
func IsErrPermission(e error) bool { _, ok := e.(PermissionError); return ok }
func IsErrProcess(e error) bool    { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool     { _, ok := e.(RecordError); return ok }
