// Copyright (c) 2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bech32

import (
	"fmt"
	"strings"
)

// charset is the set of characters used in the data section of bech32
// strings.  Note that this is ordered, such that for a given charset[i], i is
// the binary value of the character.
const charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

// invalidValue marks bytes of charsetRev that are not part of the charset.
const invalidValue = 0xff

// charsetRev maps an ASCII byte back to its 5-bit value.  Both the lowercase
// and the uppercase form of every charset character are mapped; everything
// else holds invalidValue.
var charsetRev = func() [256]byte {
	var rev [256]byte
	for i := range rev {
		rev[i] = invalidValue
	}
	for i := 0; i < len(charset); i++ {
		rev[charset[i]] = byte(i)
		rev[strings.ToUpper(charset[i:i+1])[0]] = byte(i)
	}
	return rev
}()

// CharToValue returns the 5-bit value of the passed charset character.  The
// lookup is case-insensitive; rejecting mixed case input is left to the
// caller, which sees the whole string.
func CharToValue(c byte) (byte, error) {
	v := charsetRev[c]
	if v == invalidValue {
		str := fmt.Sprintf("invalid character not part of charset: %q",
			c)
		return 0, bechError(ErrNonCharsetChar, str)
	}
	return v, nil
}

// ValueToChar returns the lowercase charset character for the passed 5-bit
// value.
func ValueToChar(v byte) byte {
	if v >= byte(len(charset)) {
		panic(AssertError(fmt.Sprintf("value %d does not fit in 5 "+
			"bits", v)))
	}
	return charset[v]
}

// toBytes converts each character in the string 'chars' to the value of the
// index of the corresponding character in 'charset'.
func toBytes(chars string) ([]byte, error) {
	decoded := make([]byte, 0, len(chars))
	for i := 0; i < len(chars); i++ {
		v, err := CharToValue(chars[i])
		if err != nil {
			return nil, err
		}
		decoded = append(decoded, v)
	}
	return decoded, nil
}

// writeChars appends the charset characters for each 5-bit value in data to
// the passed builder.
func writeChars(sb *strings.Builder, data []byte) error {
	for _, b := range data {
		if b >= byte(len(charset)) {
			str := fmt.Sprintf("invalid data byte: %v", b)
			return bechError(ErrInvalidDataByte, str)
		}
		sb.WriteByte(charset[b])
	}
	return nil
}
