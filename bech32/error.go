// Copyright (c) 2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bech32

import (
	"fmt"
)

// AssertError identifies an error that indicates an internal code consistency
// issue and should be treated as a critical and unrecoverable error.
type AssertError string

// Error returns the assertion error as a human-readable string and satisfies
// the error interface.
func (e AssertError) Error() string {
	return "assertion failed: " + string(e)
}

// ErrorCode identifies a kind of error.
type ErrorCode int

// These constants are used to identify a specific Error.
const (
	// ErrInvalidLength indicates the string is shorter than the minimum
	// of 8 characters or longer than the maximum of 90 characters.
	ErrInvalidLength ErrorCode = iota

	// ErrInvalidCharacter indicates a character outside of the printable
	// US-ASCII range [33, 126] was found.
	ErrInvalidCharacter

	// ErrMixedCase indicates the string contains both lowercase and
	// uppercase characters.
	ErrMixedCase

	// ErrInvalidSeparatorIndex indicates the separator is missing, is the
	// first character (empty hrp) or is one of the last 6 characters.
	ErrInvalidSeparatorIndex

	// ErrNonCharsetChar indicates a character in the data part that is not
	// part of the bech32 charset.
	ErrNonCharsetChar

	// ErrInvalidChecksum indicates the checksum is valid for neither
	// bech32 nor bech32m, or not for the requested version.
	ErrInvalidChecksum

	// ErrInvalidPadding indicates a bit conversion that left too many or
	// non-zero padding bits.
	ErrInvalidPadding

	// ErrInvalidBitGroups indicates ConvertBits was called with a group
	// size outside of [1, 8].
	ErrInvalidBitGroups

	// ErrInvalidDataByte indicates a value that does not fit the source
	// group size, such as a 5-bit group greater than 31.
	ErrInvalidDataByte

	// ErrInvalidHRP indicates an empty human-readable part was passed to
	// one of the encoding functions.
	ErrInvalidHRP

	// numErrorCodes is the maximum error code number used in tests.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrInvalidLength:         "ErrInvalidLength",
	ErrInvalidCharacter:      "ErrInvalidCharacter",
	ErrMixedCase:             "ErrMixedCase",
	ErrInvalidSeparatorIndex: "ErrInvalidSeparatorIndex",
	ErrNonCharsetChar:        "ErrNonCharsetChar",
	ErrInvalidChecksum:       "ErrInvalidChecksum",
	ErrInvalidPadding:        "ErrInvalidPadding",
	ErrInvalidBitGroups:      "ErrInvalidBitGroups",
	ErrInvalidDataByte:       "ErrInvalidDataByte",
	ErrInvalidHRP:            "ErrInvalidHRP",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error satisfies the error interface so an ErrorCode can be used as the
// target of errors.Is.
func (e ErrorCode) Error() string {
	return e.String()
}

// Error identifies a bech32 encoding or decoding failure.  The caller can use
// errors.Is with one of the ErrorCode constants, or type assert and inspect
// the ErrorCode field, to ascertain the specific reason for the failure.
type Error struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying ErrorCode.
func (e Error) Unwrap() error {
	return e.ErrorCode
}

// bechError creates an Error given a set of arguments.
func bechError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}
