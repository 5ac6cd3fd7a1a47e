// Copyright (c) 2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package segwit encodes and decodes segregated witness addresses as defined by
BIP 173 and BIP 350.

A segwit address is the bech32 encoding of a human-readable part identifying
the network, a witness version in [0, 16] and a witness program of 2 to 40
bytes.  Version 0 programs must be exactly 20 (P2WPKH) or 32 (P2WSH) bytes and
use the original bech32 checksum.  Versions 1 through 16 use the bech32m
checksum.

Decoding takes the expected human-readable part.  An address for a different
network fails with ErrHrpDoesNotMatch before any other data is inspected,
which lets callers retry with another network:

	version, program, err := segwit.Decode("bc", addr)
	if segwit.IsHrpMismatch(err) {
		version, program, err = segwit.Decode("tb", addr)
	}

ParseAddress performs that retry over every known network.

Errors

Every decoding failure is a DecodeError and every encoding failure is an
EncodeError.  Both carry an ErrorCode and, when the failure originated in the
bech32 layer, the underlying bech32.Error, so errors.Is matches either:

	errors.Is(err, segwit.ErrInvalidProgramLength)
	errors.Is(err, bech32.ErrInvalidPadding)
*/
package segwit
