// Copyright (c) 2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bech32

const (
	// checksumLength is the number of 5-bit groups in a checksum.
	checksumLength = 6

	// polymodMask keeps the residue within 25 bits before it is shifted
	// left by one group.
	polymodMask = 0x1ffffff
)

// gen encodes the generator polynomial for the bech32 BCH checksum.
var gen = [5]int{0x3b6a57b2, 0x26508e6d, 0x1ea119fa, 0x3d4233dd, 0x2a1462b3}

// polymodStep feeds a single 5-bit value into the running checksum residue.
func polymodStep(chk int, v byte) int {
	b := chk >> 25
	chk = (chk&polymodMask)<<5 ^ int(v)
	for i := 0; i < 5; i++ {
		if (b>>uint(i))&1 == 1 {
			chk ^= gen[i]
		}
	}
	return chk
}

// bech32Polymod calculates the BCH checksum for a given hrp, values and
// checksum data.  The hrp is expanded on the fly as
//
//	hrp[i] >> 5 for each i, then a 0, then hrp[i] & 31 for each i
//
// so no intermediate slice is allocated.  When checksum is nil six zero
// groups are fed instead, which is the form used to create a checksum.
func bech32Polymod(hrp string, values, checksum []byte) int {
	chk := 1

	for i := 0; i < len(hrp); i++ {
		chk = polymodStep(chk, hrp[i]>>5)
	}
	chk = polymodStep(chk, 0)
	for i := 0; i < len(hrp); i++ {
		chk = polymodStep(chk, hrp[i]&31)
	}

	for _, v := range values {
		chk = polymodStep(chk, v)
	}

	if checksum == nil {
		for i := 0; i < checksumLength; i++ {
			chk = polymodStep(chk, 0)
		}
		return chk
	}
	for _, v := range checksum {
		chk = polymodStep(chk, v)
	}

	return chk
}

// HRPExpand returns the 5-bit expansion of the hrp that prefixes the data
// fed into the checksum.  It binds the checksum to the hrp.
func HRPExpand(hrp string) []byte {
	expanded := make([]byte, 0, len(hrp)*2+1)
	for i := 0; i < len(hrp); i++ {
		expanded = append(expanded, hrp[i]>>5)
	}
	expanded = append(expanded, 0)
	for i := 0; i < len(hrp); i++ {
		expanded = append(expanded, hrp[i]&31)
	}
	return expanded
}

// CreateChecksum returns the six 5-bit groups that make the checksum of the
// hrp and data valid for the given version.  The hrp must already be in its
// lowercase form.
func CreateChecksum(hrp string, data []byte, version Version) []byte {
	c, ok := version.Const()
	if !ok {
		panic(AssertError("checksum requested for " + version.String()))
	}

	polymod := bech32Polymod(hrp, data, nil) ^ int(c)

	checksum := make([]byte, checksumLength)
	for i := 0; i < checksumLength; i++ {
		checksum[i] = byte((polymod >> uint(5*(5-i))) & 31)
	}
	return checksum
}

// VerifyChecksum returns the version whose checksum constant matches the hrp
// and the data, which must include the trailing six checksum groups.  When
// no constant matches VersionUnknown is returned.
func VerifyChecksum(hrp string, data []byte) Version {
	if len(data) < checksumLength {
		return VersionUnknown
	}

	values := data[:len(data)-checksumLength]
	checksum := data[len(data)-checksumLength:]
	polymod := bech32Polymod(hrp, values, checksum)

	if v, ok := ConstsToVersion[ChecksumConst(polymod)]; ok {
		return v
	}
	return VersionUnknown
}
