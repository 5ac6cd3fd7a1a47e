// Copyright (c) 2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package bech32 provides a Go implementation of the bech32 format specified in
BIP 173 and its bech32m revision specified in BIP 350.

Bech32 strings consist of a human-readable part (hrp), followed by the
separator 1, then a checksummed data part encoded using the 32 characters
"qpzry9x8gf2tvdw0s3jn54khce6mua7l".

The two variants share the charset, the HRP expansion and the generator
polynomial of the BCH code. They only differ in the constant the final
checksum is XORed with, which is exposed through the Version type:

	Version0  bech32   constant 1
	VersionM  bech32m  constant 0x2bc830a3

Decoding validates, in order: the overall length, the character range, the
case, the position of the separator, the charset of the data part and finally
the checksum. The first failing rule determines the returned ErrorCode.

Data is handled as a slice of 5-bit groups. Use ConvertBits (or the
EncodeFromBase256 and DecodeToBase256 helpers) to regroup 8-bit bytes.

More info: https://github.com/bitcoin/bips/blob/master/bip-0173.mediawiki
*/
package bech32
