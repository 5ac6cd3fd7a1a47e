// Copyright (c) 2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bech32

import "fmt"

// ConvertBits converts a byte slice where each byte is encoding fromBits bits,
// to a byte slice where each byte is encoding toBits bits.
//
// With pad set, leftover bits are left-aligned into one final group.  Without
// it, fewer than fromBits leftover bits are tolerated as long as they are all
// zero; anything else fails with ErrInvalidPadding.
func ConvertBits(data []byte, fromBits, toBits uint8, pad bool) ([]byte, error) {
	if fromBits < 1 || fromBits > 8 || toBits < 1 || toBits > 8 {
		str := fmt.Sprintf("invalid bit groups (from %d, to %d)",
			fromBits, toBits)
		return nil, bechError(ErrInvalidBitGroups, str)
	}

	// The final bytes, each byte encoding toBits bits.
	regrouped := make([]byte, 0, len(data)*int(fromBits)/int(toBits)+1)

	maxValue := uint32(1)<<toBits - 1
	maxAcc := uint32(1)<<(fromBits+toBits-1) - 1

	var acc uint32
	var bits uint8
	for _, b := range data {
		if b>>fromBits != 0 {
			str := fmt.Sprintf("invalid data byte: %d does not fit "+
				"in %d bits", b, fromBits)
			return nil, bechError(ErrInvalidDataByte, str)
		}

		acc = (acc<<fromBits | uint32(b)) & maxAcc
		bits += fromBits
		for bits >= toBits {
			bits -= toBits
			regrouped = append(regrouped, byte(acc>>bits&maxValue))
		}
	}

	if pad {
		if bits > 0 {
			regrouped = append(regrouped,
				byte(acc<<(toBits-bits)&maxValue))
		}
	} else if bits >= fromBits {
		str := fmt.Sprintf("invalid padding: %d leftover bits", bits)
		return nil, bechError(ErrInvalidPadding, str)
	} else if acc<<(toBits-bits)&maxValue != 0 {
		return nil, bechError(ErrInvalidPadding,
			"invalid padding: non-zero padding bits")
	}

	return regrouped, nil
}
