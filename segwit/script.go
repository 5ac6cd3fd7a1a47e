// Copyright (c) 2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package segwit

import (
	"fmt"
	"hash"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"golang.org/x/crypto/ripemd160"
)

const (
	// OP_0 pushes an empty item and doubles as witness version 0.
	OP_0 = 0x00

	// OP_1 is the opcode of witness version 1.  OP_2 through OP_16 follow
	// it directly.
	OP_1 = 0x51

	// OP_16 is the opcode of witness version 16.
	OP_16 = 0x60
)

// versionOpcode returns the small integer opcode pushing the witness
// version.
func versionOpcode(witnessVersion byte) byte {
	if witnessVersion == 0 {
		return OP_0
	}
	return OP_1 - 1 + witnessVersion
}

// ScriptPubKey returns the output script for a witness version and program:
// the version opcode followed by a single data push of the program.
func ScriptPubKey(witnessVersion byte, witnessProgram []byte) ([]byte, error) {
	code, str, ok := validateProgram(witnessVersion, len(witnessProgram))
	if !ok {
		return nil, encodeError(code, str, nil)
	}

	script := make([]byte, 0, len(witnessProgram)+2)
	script = append(script, versionOpcode(witnessVersion))
	script = append(script, byte(len(witnessProgram)))
	script = append(script, witnessProgram...)
	return script, nil
}

// ParseScriptPubKey extracts the witness version and program from a witness
// output script.
func ParseScriptPubKey(script []byte) (byte, []byte, error) {
	if len(script) < MinProgramLen+2 || len(script) > MaxProgramLen+2 {
		str := fmt.Sprintf("invalid witness script length %d",
			len(script))
		return 0, nil, decodeError(ErrInvalidProgramLength, str, nil)
	}

	var witnessVersion byte
	switch op := script[0]; {
	case op == OP_0:
		witnessVersion = 0
	case op >= OP_1 && op <= OP_16:
		witnessVersion = op - OP_1 + 1
	default:
		str := fmt.Sprintf("invalid witness version opcode 0x%02x", op)
		return 0, nil, decodeError(ErrInvalidWitnessVersion, str, nil)
	}

	if int(script[1]) != len(script)-2 {
		str := fmt.Sprintf("witness program push of %d bytes does "+
			"not match remaining script length %d", script[1],
			len(script)-2)
		return 0, nil, decodeError(ErrInvalidProgramLength, str, nil)
	}

	program := script[2:]
	code, str, ok := validateProgram(witnessVersion, len(program))
	if !ok {
		return 0, nil, decodeError(code, str, nil)
	}

	return witnessVersion, append([]byte(nil), program...), nil
}

// calcHash calculates the hash of hasher over buf.
func calcHash(buf []byte, hasher hash.Hash) []byte {
	_, _ = hasher.Write(buf)
	return hasher.Sum(nil)
}

// Hash160 calculates the hash ripemd160(sha256(b)).
func Hash160(buf []byte) []byte {
	return calcHash(chainhash.HashB(buf), ripemd160.New())
}

// NewP2WPKHProgram returns the version 0 witness program paying to the
// passed serialized public key.  Uncompressed and hybrid keys are accepted
// and compressed before hashing.
func NewP2WPKHProgram(serializedPubKey []byte) ([]byte, error) {
	pubKey, err := btcec.ParsePubKey(serializedPubKey)
	if err != nil {
		return nil, encodeError(ErrInvalidPubKey, "invalid public key",
			err)
	}
	return Hash160(pubKey.SerializeCompressed()), nil
}

// NewP2WSHProgram returns the version 0 witness program committing to the
// passed witness script.
func NewP2WSHProgram(witnessScript []byte) []byte {
	return chainhash.HashB(witnessScript)
}

// NewP2TRProgram returns the version 1 witness program for the passed
// taproot output key.  The key may be given in its 32-byte x-only form or
// as any serialized public key, in which case its parity is dropped.  No
// tweak is applied, the key must already be the output key.
func NewP2TRProgram(outputKey []byte) ([]byte, error) {
	var (
		pubKey *btcec.PublicKey
		err    error
	)
	if len(outputKey) == schnorr.PubKeyBytesLen {
		pubKey, err = schnorr.ParsePubKey(outputKey)
	} else {
		pubKey, err = btcec.ParsePubKey(outputKey)
	}
	if err != nil {
		return nil, encodeError(ErrInvalidPubKey, "invalid taproot "+
			"output key", err)
	}
	return schnorr.SerializePubKey(pubKey), nil
}
