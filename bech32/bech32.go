// Copyright (c) 2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bech32

import (
	"fmt"
	"strings"
)

const (
	// MaxLength is the maximum length of a bech32 string, including the
	// hrp, the separator and the checksum.
	MaxLength = 90

	// minLength is the length of the shortest possible bech32 string: a
	// single character hrp, the separator and the checksum.
	minLength = 8

	// separator splits the hrp from the data part.
	separator = '1'
)

// splitHRP runs the structural checks shared by all decoding functions and
// splits the string at the last separator.  The returned hrp and data part
// are lowercase.
//
// The checks run in a fixed order so that the error reported for a malformed
// string is deterministic: length, character range, case, separator.
func splitHRP(bech string, limit bool) (string, string, error) {
	// The maximum allowed length for a bech32 string is 90. It must also
	// be at least 8 characters, since it needs a non-empty HRP, a
	// separator, and a 6 character checksum.
	if len(bech) < minLength || (limit && len(bech) > MaxLength) {
		str := fmt.Sprintf("invalid bech32 string length %d", len(bech))
		return "", "", bechError(ErrInvalidLength, str)
	}

	// Only ASCII characters between 33 and 126 are allowed.
	var hasLower, hasUpper bool
	for i := 0; i < len(bech); i++ {
		c := bech[i]
		if c < 33 || c > 126 {
			str := fmt.Sprintf("invalid character in string: %q", c)
			return "", "", bechError(ErrInvalidCharacter, str)
		}

		hasLower = hasLower || (c >= 'a' && c <= 'z')
		hasUpper = hasUpper || (c >= 'A' && c <= 'Z')
	}

	// The characters must be either all lowercase or all uppercase.
	if hasLower && hasUpper {
		return "", "", bechError(ErrMixedCase, "string not all "+
			"lowercase or all uppercase")
	}

	// We'll work with the lowercase string from now on.
	bech = strings.ToLower(bech)

	// The string is invalid if the last '1' is non-existent, it is the
	// first character of the string (no human-readable part) or one of the
	// last 6 characters of the string (since checksum cannot contain '1').
	one := strings.LastIndexByte(bech, separator)
	if one < 1 || one+checksumLength+1 > len(bech) {
		str := fmt.Sprintf("invalid separator index %d", one)
		return "", "", bechError(ErrInvalidSeparatorIndex, str)
	}

	return bech[:one], bech[one+1:], nil
}

// decodeNoLimit decodes a bech32 encoded string, returning the
// human-readable part, the data part excluding the checksum and the version
// whose checksum constant matched.
func decodeNoLimit(bech string, limit bool) (string, []byte, Version, error) {
	hrp, dataPart, err := splitHRP(bech, limit)
	if err != nil {
		return "", nil, VersionUnknown, err
	}

	// Each character corresponds to the byte with value of the index in
	// 'charset'.
	decoded, err := toBytes(dataPart)
	if err != nil {
		return "", nil, VersionUnknown, err
	}

	version := VerifyChecksum(hrp, decoded)
	if version == VersionUnknown {
		payload := decoded[:len(decoded)-checksumLength]
		actual := dataPart[len(dataPart)-checksumLength:]
		str := fmt.Sprintf("invalid checksum (expected bech32=%v "+
			"bech32m=%v got %v)",
			checksumString(hrp, payload, Version0),
			checksumString(hrp, payload, VersionM), actual)
		return "", nil, VersionUnknown, bechError(ErrInvalidChecksum,
			str)
	}

	// We exclude the last 6 bytes, which is the checksum.
	return hrp, decoded[:len(decoded)-checksumLength], version, nil
}

// checksumString renders the expected checksum for use in error messages.
func checksumString(hrp string, data []byte, version Version) string {
	var sb strings.Builder
	_ = writeChars(&sb, CreateChecksum(hrp, data, version))
	return sb.String()
}

// DecodeHRP validates the structure of a bech32 string and returns its
// lowercase human-readable part without decoding the data part or verifying
// the checksum.  It allows callers to match the hrp against an expected
// value before doing any further work.
func DecodeHRP(bech string) (string, error) {
	hrp, _, err := splitHRP(bech, true)
	return hrp, err
}

// DecodeNoLimit decodes a bech32 encoded string, returning the human-readable
// part and the data part excluding the checksum.  This function does NOT
// validate against the BIP-173 maximum length allowed for bech32 strings and
// is meant for use in custom applications (such as lightning network payment
// requests), NOT on-chain addresses.  Only bech32 checksums are accepted.
//
// Note that the returned data is 5-bit (base32) encoded and the human-readable
// part will be lowercase.
func DecodeNoLimit(bech string) (string, []byte, error) {
	hrp, data, version, err := decodeNoLimit(bech, false)
	if err != nil {
		return "", nil, err
	}
	if version != Version0 {
		return "", nil, bechError(ErrInvalidChecksum, "invalid "+
			"checksum: expected bech32, got "+version.String())
	}
	return hrp, data, nil
}

// Decode decodes a bech32 encoded string, returning the human-readable part
// and the data part excluding the checksum.  Only bech32 checksums are
// accepted, use DecodeGeneric to also accept bech32m.
//
// Note that the returned data is 5-bit (base32) encoded and the human-readable
// part will be lowercase.
func Decode(bech string) (string, []byte, error) {
	hrp, data, version, err := DecodeGeneric(bech)
	if err != nil {
		return "", nil, err
	}
	if version != Version0 {
		return "", nil, bechError(ErrInvalidChecksum, "invalid "+
			"checksum: expected bech32, got "+version.String())
	}
	return hrp, data, nil
}

// DecodeGeneric is identical to the existing Decode method, but will also
// return bech32m strings, reporting which checksum variant matched.
func DecodeGeneric(bech string) (string, []byte, Version, error) {
	return decodeNoLimit(bech, true)
}

// DecodeToBase256 decodes a bech32-encoded string into its associated
// human-readable part and base32-encoded data, converts that data to a
// base256-encoded byte slice and returns it along with the human-readable
// part.
func DecodeToBase256(bech string) (string, []byte, error) {
	hrp, data, err := Decode(bech)
	if err != nil {
		return "", nil, err
	}
	converted, err := ConvertBits(data, 5, 8, true)
	if err != nil {
		return "", nil, err
	}
	return hrp, converted, nil
}

// validateHRP checks that hrp is non-empty and only contains characters in
// the printable US-ASCII range.
func validateHRP(hrp string) error {
	if len(hrp) == 0 {
		return bechError(ErrInvalidHRP, "empty human-readable part")
	}
	for i := 0; i < len(hrp); i++ {
		if hrp[i] < 33 || hrp[i] > 126 {
			str := fmt.Sprintf("invalid character in human-readable "+
				"part: %q", hrp[i])
			return bechError(ErrInvalidCharacter, str)
		}
	}
	return nil
}

// EncodeGeneric is the base bech32 encoding function that is aware of the
// existence of the checksum versions.  Encode and EncodeM are shorthands for
// the two known versions.
//
// The hrp is converted to lowercase before the checksum is computed, so the
// result is always lowercase.
func EncodeGeneric(hrp string, data []byte, version Version) (string, error) {
	if err := validateHRP(hrp); err != nil {
		return "", err
	}
	if _, ok := version.Const(); !ok {
		return "", bechError(ErrInvalidChecksum, "cannot encode "+
			version.String())
	}

	totalLen := len(hrp) + 1 + len(data) + checksumLength
	if totalLen > MaxLength {
		str := fmt.Sprintf("invalid bech32 string length %d", totalLen)
		return "", bechError(ErrInvalidLength, str)
	}

	// The resulting bech32 string is the concatenation of the lowercase
	// hrp, the separator 1, data and the 6-byte checksum.
	hrp = strings.ToLower(hrp)
	var sb strings.Builder
	sb.Grow(totalLen)
	sb.WriteString(hrp)
	sb.WriteByte(separator)

	// Write the data part, using the bech32 charset.
	if err := writeChars(&sb, data); err != nil {
		return "", err
	}

	// Calculate and write the checksum of the data.
	if err := writeChars(&sb, CreateChecksum(hrp, data, version)); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// Encode encodes a byte slice into a bech32 string with the given
// human-readable part (HRP).  The HRP will be converted to lowercase if needed
// since mixed cased encodings are not permitted and lowercase is used for
// checksum purposes.  Note that the bytes must each encode 5 bits (base32).
func Encode(hrp string, data []byte) (string, error) {
	return EncodeGeneric(hrp, data, Version0)
}

// EncodeM is exactly the same as the Encode method, but it uses the new
// bech32m constant instead.
func EncodeM(hrp string, data []byte) (string, error) {
	return EncodeGeneric(hrp, data, VersionM)
}

// EncodeFromBase256 converts a base256-encoded byte slice into a base32-encoded
// byte slice and then encodes it into a bech32 string with the given
// human-readable part (HRP).  The HRP will be converted to lowercase if needed
// since mixed cased encodings are not permitted and lowercase is used for
// checksum purposes.
func EncodeFromBase256(hrp string, data []byte) (string, error) {
	converted, err := ConvertBits(data, 8, 5, true)
	if err != nil {
		return "", err
	}
	return Encode(hrp, converted)
}
