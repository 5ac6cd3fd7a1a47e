// Copyright (c) 2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package segwit

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a kind of error.
type ErrorCode int

// These constants are used to identify a specific DecodeError or
// EncodeError.
const (
	// ErrMalformed indicates the string or data was rejected by the bech32
	// layer.  The underlying bech32.Error holds the specific reason.
	ErrMalformed ErrorCode = iota

	// ErrHrpDoesNotMatch indicates the address is well formed but belongs
	// to a different human-readable part than the expected one.
	ErrHrpDoesNotMatch

	// ErrEmptyData indicates the data part holds no witness version.
	ErrEmptyData

	// ErrInvalidWitnessVersion indicates a witness version above 16.
	ErrInvalidWitnessVersion

	// ErrInvalidProgramLength indicates a witness program outside of
	// [2, 40] bytes, or a version 0 program that is not 20 or 32 bytes.
	ErrInvalidProgramLength

	// ErrInvalidChecksumVariant indicates a version 0 address with a
	// bech32m checksum, or a version 1+ address with a bech32 checksum.
	ErrInvalidChecksumVariant

	// ErrInvalidHRP indicates an human-readable part that can not be used
	// to encode an address.
	ErrInvalidHRP

	// ErrInvalidPubKey indicates a public key that could not be parsed
	// while building a witness program.
	ErrInvalidPubKey

	// ErrUnknownNet indicates an address whose human-readable part is not
	// used by any known network.
	ErrUnknownNet

	// numErrorCodes is the maximum error code number used in tests.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrMalformed:              "ErrMalformed",
	ErrHrpDoesNotMatch:        "ErrHrpDoesNotMatch",
	ErrEmptyData:              "ErrEmptyData",
	ErrInvalidWitnessVersion:  "ErrInvalidWitnessVersion",
	ErrInvalidProgramLength:   "ErrInvalidProgramLength",
	ErrInvalidChecksumVariant: "ErrInvalidChecksumVariant",
	ErrInvalidHRP:             "ErrInvalidHRP",
	ErrInvalidPubKey:          "ErrInvalidPubKey",
	ErrUnknownNet:             "ErrUnknownNet",
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

// DecodeError describes why a string or script could not be decoded into a
// witness version and program.
type DecodeError struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
	Err         error     // Underlying bech32 error, if any
}

// Error satisfies the error interface and prints human-readable errors.
func (e DecodeError) Error() string {
	if e.Err != nil {
		return e.Description + ": " + e.Err.Error()
	}
	return e.Description
}

// Unwrap returns the error code and the underlying error so both can be
// matched with errors.Is.
func (e DecodeError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.ErrorCode, e.Err}
	}
	return []error{e.ErrorCode}
}

// EncodeError describes why a witness version and program could not be
// encoded.
type EncodeError struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
	Err         error     // Underlying bech32 error, if any
}

// Error satisfies the error interface and prints human-readable errors.
func (e EncodeError) Error() string {
	if e.Err != nil {
		return e.Description + ": " + e.Err.Error()
	}
	return e.Description
}

// Unwrap returns the error code and the underlying error so both can be
// matched with errors.Is.
func (e EncodeError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.ErrorCode, e.Err}
	}
	return []error{e.ErrorCode}
}

// decodeError creates a DecodeError given a set of arguments.
func decodeError(c ErrorCode, desc string, err error) DecodeError {
	return DecodeError{ErrorCode: c, Description: desc, Err: err}
}

// encodeError creates an EncodeError given a set of arguments.
func encodeError(c ErrorCode, desc string, err error) EncodeError {
	return EncodeError{ErrorCode: c, Description: desc, Err: err}
}

// IsHrpMismatch returns whether err reports an address that belongs to a
// different human-readable part.  Such a failure is recoverable by retrying
// with the human-readable part of another network.
func IsHrpMismatch(err error) bool {
	return errors.Is(err, ErrHrpDoesNotMatch)
}
