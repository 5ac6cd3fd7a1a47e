// Copyright (c) 2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package segwit

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/bech32m/bech32"
)

const (
	// MaxWitnessVersion is the highest witness version an address can
	// carry.
	MaxWitnessVersion = 16

	// MinProgramLen is the minimum length of a witness program.
	MinProgramLen = 2

	// MaxProgramLen is the maximum length of a witness program.
	MaxProgramLen = 40

	// WitnessV0PubKeyHashLen is the length of a P2WPKH witness program.
	WitnessV0PubKeyHashLen = 20

	// WitnessV0ScriptHashLen is the length of a P2WSH witness program.
	WitnessV0ScriptHashLen = 32
)

// checksumVersion returns the bech32 checksum variant mandated for the given
// witness version.
func checksumVersion(witnessVersion byte) bech32.Version {
	if witnessVersion == 0 {
		return bech32.Version0
	}
	return bech32.VersionM
}

// validateProgram checks the witness version and program length against the
// BIP 141 rules.  It returns the failing error code and a description.
func validateProgram(witnessVersion byte, programLen int) (ErrorCode, string, bool) {
	if witnessVersion > MaxWitnessVersion {
		str := fmt.Sprintf("invalid witness version %d", witnessVersion)
		return ErrInvalidWitnessVersion, str, false
	}

	if programLen < MinProgramLen || programLen > MaxProgramLen {
		str := fmt.Sprintf("invalid witness program length %d, must "+
			"be between %d and %d", programLen, MinProgramLen,
			MaxProgramLen)
		return ErrInvalidProgramLength, str, false
	}

	if witnessVersion == 0 && programLen != WitnessV0PubKeyHashLen &&
		programLen != WitnessV0ScriptHashLen {

		str := fmt.Sprintf("invalid witness program length %d for "+
			"witness version 0", programLen)
		return ErrInvalidProgramLength, str, false
	}

	return 0, "", true
}

// Encode encodes a witness version and program into a segwit address with
// the given human-readable part.  Version 0 uses a bech32 checksum, later
// versions use bech32m.
//
// The hrp must be lowercase, the returned address always is.
func Encode(hrp string, witnessVersion byte, witnessProgram []byte) (string, error) {
	if hrp == "" || hrp != strings.ToLower(hrp) {
		str := fmt.Sprintf("invalid human-readable part %q", hrp)
		return "", encodeError(ErrInvalidHRP, str, nil)
	}

	code, str, ok := validateProgram(witnessVersion, len(witnessProgram))
	if !ok {
		return "", encodeError(code, str, nil)
	}

	// Group the program into 5 bits and prefix the witness version.
	converted, err := bech32.ConvertBits(witnessProgram, 8, 5, true)
	if err != nil {
		return "", encodeError(ErrMalformed, "unable to regroup "+
			"witness program", err)
	}
	data := make([]byte, 0, len(converted)+1)
	data = append(data, witnessVersion)
	data = append(data, converted...)

	// A program of valid length always fits, so only the hrp can make the
	// bech32 encoding fail.
	addr, err := bech32.EncodeGeneric(hrp, data,
		checksumVersion(witnessVersion))
	if err != nil {
		str := fmt.Sprintf("invalid human-readable part %q", hrp)
		return "", encodeError(ErrInvalidHRP, str, err)
	}

	return addr, nil
}

// Decode decodes a segwit address for the expected human-readable part and
// returns its witness version and program.
//
// The rules are checked in a fixed order: string structure, human-readable
// part, charset and checksum, witness version, padding, program length and
// finally the checksum variant required by the witness version.
func Decode(hrp, addr string) (byte, []byte, error) {
	version, program, err := decode(hrp, addr)
	if err != nil {
		log.Debugf("Rejected address %q for hrp %q: %v", addr, hrp, err)
		return 0, nil, err
	}

	log.Tracef("Decoded address %q: witness version %d, program %v",
		addr, version, newLogClosure(func() string {
			return hex.EncodeToString(program)
		}))
	return version, program, nil
}

func decode(expectedHRP, addr string) (byte, []byte, error) {
	hrp, err := bech32.DecodeHRP(addr)
	if err != nil {
		return 0, nil, decodeError(ErrMalformed, "malformed address", err)
	}

	if !strings.EqualFold(hrp, expectedHRP) {
		str := fmt.Sprintf("address hrp %q does not match expected "+
			"hrp %q", hrp, expectedHRP)
		return 0, nil, decodeError(ErrHrpDoesNotMatch, str, nil)
	}

	_, data, bechVersion, err := bech32.DecodeGeneric(addr)
	if err != nil {
		return 0, nil, decodeError(ErrMalformed, "malformed address", err)
	}

	if len(data) < 1 {
		return 0, nil, decodeError(ErrEmptyData, "empty data section",
			nil)
	}

	// The first 5-bit group is the witness version.
	witnessVersion := data[0]
	if witnessVersion > MaxWitnessVersion {
		str := fmt.Sprintf("invalid witness version %d", witnessVersion)
		return 0, nil, decodeError(ErrInvalidWitnessVersion, str, nil)
	}

	// The remaining groups are the program, which the reference encoder
	// always pads with fewer than 5 zero bits.
	program, err := bech32.ConvertBits(data[1:], 5, 8, false)
	if err != nil {
		return 0, nil, decodeError(ErrMalformed, "invalid witness "+
			"program", err)
	}

	code, str, ok := validateProgram(witnessVersion, len(program))
	if !ok {
		return 0, nil, decodeError(code, str, nil)
	}

	if expected := checksumVersion(witnessVersion); bechVersion != expected {
		str := fmt.Sprintf("witness version %d requires a %v checksum, "+
			"got %v", witnessVersion, expected, bechVersion)
		return 0, nil, decodeError(ErrInvalidChecksumVariant, str, nil)
	}

	return witnessVersion, program, nil
}

// Address is a segwit address: a witness version and program bound to the
// human-readable part of a network.
type Address struct {
	hrp            string
	witnessVersion byte
	witnessProgram []byte
}

// NewAddress returns a new Address after validating the witness version and
// program against the rules enforced by Encode.
func NewAddress(hrp string, witnessVersion byte, witnessProgram []byte) (*Address, error) {
	if _, err := Encode(hrp, witnessVersion, witnessProgram); err != nil {
		return nil, err
	}

	// Copy the program so the caller can't modify the address.
	program := make([]byte, len(witnessProgram))
	copy(program, witnessProgram)

	return &Address{
		hrp:            hrp,
		witnessVersion: witnessVersion,
		witnessProgram: program,
	}, nil
}

// DecodeAddress decodes the string encoding of a segwit address for the given
// network.
func DecodeAddress(addr string, net *Net) (*Address, error) {
	version, program, err := Decode(net.HRP, addr)
	if err != nil {
		return nil, err
	}
	return &Address{
		hrp:            net.HRP,
		witnessVersion: version,
		witnessProgram: program,
	}, nil
}

// ParseAddress decodes the string encoding of a segwit address for any of
// the known networks.  Networks are tried in the order of Nets, retrying
// whenever the human-readable part does not match.  Since testnet3, testnet4
// and signet share an hrp, the first of them is returned for such addresses.
func ParseAddress(addr string) (*Address, *Net, error) {
	for _, net := range Nets {
		a, err := DecodeAddress(addr, net)
		if IsHrpMismatch(err) {
			log.Tracef("Address %q is not for %v", addr, net.Name)
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		return a, net, nil
	}

	str := fmt.Sprintf("address %q does not belong to a known network",
		addr)
	return nil, nil, decodeError(ErrUnknownNet, str, nil)
}

// HRP returns the human-readable part of the address.
func (a *Address) HRP() string {
	return a.hrp
}

// WitnessVersion returns the witness version of the address.
func (a *Address) WitnessVersion() byte {
	return a.witnessVersion
}

// WitnessProgram returns a copy of the witness program of the address.
func (a *Address) WitnessProgram() []byte {
	program := make([]byte, len(a.witnessProgram))
	copy(program, a.witnessProgram)
	return program
}

// EncodeAddress returns the bech32 or bech32m string encoding of the
// address.
func (a *Address) EncodeAddress() string {
	str, err := Encode(a.hrp, a.witnessVersion, a.witnessProgram)
	if err != nil {
		return ""
	}
	return str
}

// String returns a human-readable string for the address.  This is
// equivalent to calling EncodeAddress.
func (a *Address) String() string {
	return a.EncodeAddress()
}

// ScriptPubKey returns the output script paying to the address.
func (a *Address) ScriptPubKey() []byte {
	script, err := ScriptPubKey(a.witnessVersion, a.witnessProgram)
	if err != nil {
		return nil
	}
	return script
}

// IsForNet returns whether the address is associated with the passed
// network.
func (a *Address) IsForNet(net *Net) bool {
	return a.hrp == net.HRP
}

// Equal returns whether two addresses have the same hrp, witness version and
// witness program.
func (a *Address) Equal(other *Address) bool {
	return a.hrp == other.hrp && a.witnessVersion == other.witnessVersion &&
		bytes.Equal(a.witnessProgram, other.witnessProgram)
}
