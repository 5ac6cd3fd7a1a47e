// Copyright (c) 2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package segwit

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/btcsuite/bech32m/bech32"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

// hexToBytes converts the passed hex string into bytes and will panic if
// there is an error.  This is only provided for the hard-coded constants so
// errors in the source code can be detected.  It will only (and must only) be
// called with hard-coded values.
func hexToBytes(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("invalid hex in source file: " + s)
	}
	return b
}

// TestValidAddresses ensures the BIP-173 and BIP-350 address test vectors
// decode to the expected output script and re-encode to their lowercase form.
func TestValidAddresses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		addr         string
		scriptPubKey string
	}{
		{"BC1QW508D6QEJXTDG4Y5R3ZARVARY0C5XW7KV8F3T4", "0014751e76e8199196d454941c45d1b3a323f1433bd6"},
		{"tb1qrp33g0q5c5txsp9arysrx4k6zdkfs4nce4xj0gdcccefvpysxf3q0sl5k7", "00201863143c14c5166804bd19203356da136c985678cd4d27a1b8c6329604903262"},
		{"bc1pw508d6qejxtdg4y5r3zarvary0c5xw7kw508d6qejxtdg4y5r3zarvary0c5xw7kt5nd6y", "5128751e76e8199196d454941c45d1b3a323f1433bd6751e76e8199196d454941c45d1b3a323f1433bd6"},
		{"BC1SW50QGDZ25J", "6002751e"},
		{"bc1zw508d6qejxtdg4y5r3zarvaryvaxxpcs", "5210751e76e8199196d454941c45d1b3a323"},
		{"tb1qqqqqp399et2xygdj5xreqhjjvcmzhxw4aywxecjdzew6hylgvsesrxh6hy", "0020000000c4a5cad46221b2a187905e5266362b99d5e91c6ce24d165dab93e86433"},
		{"tb1pqqqqp399et2xygdj5xreqhjjvcmzhxw4aywxecjdzew6hylgvsesf3hn0c", "5120000000c4a5cad46221b2a187905e5266362b99d5e91c6ce24d165dab93e86433"},
		{"bc1p0xlxvlhemja6c4dqv22uapctqupfhlxm9h8z3k2e72q4k9hcz7vqzk5jj0", "512079be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"},
	}

	for i, test := range tests {
		hrp := "bc"
		version, program, err := Decode(hrp, test.addr)
		if IsHrpMismatch(err) {
			hrp = "tb"
			version, program, err = Decode(hrp, test.addr)
		}
		if err != nil {
			t.Errorf("%d: unexpected decode error for %s: %v", i,
				test.addr, err)
			continue
		}

		script, err := ScriptPubKey(version, program)
		if err != nil {
			t.Errorf("%d: unexpected script error: %v", i, err)
			continue
		}
		want := hexToBytes(test.scriptPubKey)
		if !bytes.Equal(script, want) {
			t.Errorf("%d: mismatched script -- got %s, want %s", i,
				spew.Sdump(script), spew.Sdump(want))
			continue
		}

		addr, err := Encode(hrp, version, program)
		if err != nil {
			t.Errorf("%d: unexpected encode error: %v", i, err)
			continue
		}
		if addr != strings.ToLower(test.addr) {
			t.Errorf("%d: mismatched encoding -- got %s, want %s", i,
				addr, strings.ToLower(test.addr))
		}
	}
}

// TestInvalidAddresses ensures the invalid BIP-173 and BIP-350 address test
// vectors fail to decode for the expected reason.  Decoding for the other
// network must fail as well.
func TestInvalidAddresses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		addr    string
		hrp     string
		code    ErrorCode
		bechErr error
	}{{
		name: "invalid hrp",
		addr: "tc1p0xlxvlhemja6c4dqv22uapctqupfhlxm9h8z3k2e72q4k9hcz7vq5zuyut",
		hrp:  "bc",
		code: ErrHrpDoesNotMatch,
	}, {
		name: "bech32 instead of bech32m, version 1",
		addr: "bc1p0xlxvlhemja6c4dqv22uapctqupfhlxm9h8z3k2e72q4k9hcz7vqh2y7hd",
		hrp:  "bc",
		code: ErrInvalidChecksumVariant,
	}, {
		name: "bech32 instead of bech32m, version 2",
		addr: "tb1z0xlxvlhemja6c4dqv22uapctqupfhlxm9h8z3k2e72q4k9hcz7vqglt7rf",
		hrp:  "tb",
		code: ErrInvalidChecksumVariant,
	}, {
		name: "bech32 instead of bech32m, version 16",
		addr: "BC1S0XLXVLHEMJA6C4DQV22UAPCTQUPFHLXM9H8Z3K2E72Q4K9HCZ7VQ54WELL",
		hrp:  "bc",
		code: ErrInvalidChecksumVariant,
	}, {
		name: "bech32m instead of bech32, p2wpkh",
		addr: "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kemeawh",
		hrp:  "bc",
		code: ErrInvalidChecksumVariant,
	}, {
		name: "bech32m instead of bech32, p2wsh",
		addr: "tb1q0xlxvlhemja6c4dqv22uapctqupfhlxm9h8z3k2e72q4k9hcz7vq24jc47",
		hrp:  "tb",
		code: ErrInvalidChecksumVariant,
	}, {
		name:    "invalid character in checksum",
		addr:    "bc1p38j9r5y49hruaue7wxjce0updqjuyyx0kh56v8s25huc6995vvpql3jow4",
		hrp:     "bc",
		code:    ErrMalformed,
		bechErr: bech32.ErrNonCharsetChar,
	}, {
		name: "invalid witness version",
		addr: "BC130XLXVLHEMJA6C4DQV22UAPCTQUPFHLXM9H8Z3K2E72Q4K9HCZ7VQ7ZWS8R",
		hrp:  "bc",
		code: ErrInvalidWitnessVersion,
	}, {
		name: "program of 1 byte",
		addr: "bc1pw5dgrnzv",
		hrp:  "bc",
		code: ErrInvalidProgramLength,
	}, {
		name: "program of 41 bytes",
		addr: "bc1p0xlxvlhemja6c4dqv22uapctqupfhlxm9h8z3k2e72q4k9hcz7v8n0nx0muaewav253zgeav",
		hrp:  "bc",
		code: ErrInvalidProgramLength,
	}, {
		name: "invalid program length for witness version 0",
		addr: "BC1QR508D6QEJXTDG4Y5R3ZARVARYV98GJ9P",
		hrp:  "bc",
		code: ErrInvalidProgramLength,
	}, {
		name:    "mixed case",
		addr:    "tb1p0xlxvlhemja6c4dqv22uapctqupfhlxm9h8z3k2e72q4k9hcz7vq47Zagq",
		hrp:     "tb",
		code:    ErrMalformed,
		bechErr: bech32.ErrMixedCase,
	}, {
		name:    "more than 4 padding bits",
		addr:    "bc1p0xlxvlhemja6c4dqv22uapctqupfhlxm9h8z3k2e72q4k9hcz7v07qwwzcrf",
		hrp:     "bc",
		code:    ErrMalformed,
		bechErr: bech32.ErrInvalidPadding,
	}, {
		name:    "non-zero padding in 8-to-5 conversion",
		addr:    "tb1p0xlxvlhemja6c4dqv22uapctqupfhlxm9h8z3k2e72q4k9hcz7vpggkg4j",
		hrp:     "tb",
		code:    ErrMalformed,
		bechErr: bech32.ErrInvalidPadding,
	}, {
		name: "empty data section",
		addr: "bc1gmk9yu",
		hrp:  "bc",
		code: ErrEmptyData,
	}}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			_, _, err := Decode(test.hrp, test.addr)
			require.ErrorIs(t, err, test.code)
			if test.bechErr != nil {
				require.ErrorIs(t, err, test.bechErr)
			}

			var decodeErr DecodeError
			require.True(t, errors.As(err, &decodeErr))
			require.Equal(t, test.code, decodeErr.ErrorCode)

			// Decoding for any of the two networks must fail.
			for _, hrp := range []string{"bc", "tb"} {
				_, _, err := Decode(hrp, test.addr)
				require.True(t, errors.As(err, &decodeErr),
					"hrp %s", hrp)
			}
		})
	}
}

// TestInvalidEncode ensures encoding rejects invalid human-readable parts,
// witness versions and program lengths.
func TestInvalidEncode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		hrp     string
		version byte
		length  int
		code    ErrorCode
		bechErr error
	}{
		{"uppercase hrp", "BC", 0, 20, ErrInvalidHRP, nil},
		{"mixed case hrp", "Bc", 1, 32, ErrInvalidHRP, nil},
		{"empty hrp", "", 1, 32, ErrInvalidHRP, nil},
		{"version 0 with 21 bytes", "bc", 0, 21, ErrInvalidProgramLength, nil},
		{"version 17", "bc", 17, 32, ErrInvalidWitnessVersion, nil},
		{"version 1 with 1 byte", "bc", 1, 1, ErrInvalidProgramLength, nil},
		{"version 16 with 41 bytes", "bc", 16, 41, ErrInvalidProgramLength, nil},
		{"hrp with space", "b c", 1, 32, ErrInvalidHRP, bech32.ErrInvalidCharacter},
		{"too long", strings.Repeat("a", 19), 1, 40, ErrInvalidHRP, bech32.ErrInvalidLength},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			_, err := Encode(test.hrp, test.version,
				make([]byte, test.length))
			require.ErrorIs(t, err, test.code)
			if test.bechErr != nil {
				require.ErrorIs(t, err, test.bechErr)
			}

			var encodeErr EncodeError
			require.True(t, errors.As(err, &encodeErr))
			require.Equal(t, test.code, encodeErr.ErrorCode)
		})
	}

	// The longest possible address is accepted.
	addr, err := Encode(strings.Repeat("a", 18), 1, make([]byte, 40))
	require.NoError(t, err)
	require.Len(t, addr, bech32.MaxLength)
}

// TestRoundTrip ensures every valid witness version and program length
// survives an encode/decode round trip, both in lowercase and uppercase.
func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for _, hrp := range []string{"bc", "tb", "bcrt"} {
		for version := byte(0); version <= MaxWitnessVersion; version++ {
			lengths := []int{WitnessV0PubKeyHashLen,
				WitnessV0ScriptHashLen}
			if version > 0 {
				lengths = nil
				for l := MinProgramLen; l <= MaxProgramLen; l++ {
					lengths = append(lengths, l)
				}
			}

			for _, l := range lengths {
				program := make([]byte, l)
				for i := range program {
					program[i] = byte(i*7) ^ version
				}

				addr, err := Encode(hrp, version, program)
				require.NoError(t, err)
				require.Equal(t, strings.ToLower(addr), addr)

				for _, s := range []string{addr,
					strings.ToUpper(addr)} {

					gotVersion, gotProgram, err := Decode(hrp, s)
					require.NoError(t, err)
					require.Equal(t, version, gotVersion)
					require.Equal(t, program, gotProgram)
				}

				// The expected hrp is matched case-insensitively.
				_, _, err = Decode(strings.ToUpper(hrp), addr)
				require.NoError(t, err)
			}
		}
	}
}

// TestChecksumVariantCoupling ensures version 0 is always encoded with
// bech32 and later versions with bech32m, and that a version 0 program
// checksummed as bech32m is refused.
func TestChecksumVariantCoupling(t *testing.T) {
	t.Parallel()

	program := hexToBytes("751e76e8199196d454941c45d1b3a323f1433bd6")

	addr, err := Encode("bc", 0, program)
	require.NoError(t, err)
	_, _, version, err := bech32.DecodeGeneric(addr)
	require.NoError(t, err)
	require.Equal(t, bech32.Version0, version)

	addr, err = Encode("bc", 1, program)
	require.NoError(t, err)
	_, _, version, err = bech32.DecodeGeneric(addr)
	require.NoError(t, err)
	require.Equal(t, bech32.VersionM, version)

	// Build a version 0 address with a bech32m checksum by hand.
	converted, err := bech32.ConvertBits(program, 8, 5, true)
	require.NoError(t, err)
	bad, err := bech32.EncodeM("bc", append([]byte{0}, converted...))
	require.NoError(t, err)
	require.Equal(t, "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kemeawh", bad)

	_, _, err = Decode("bc", bad)
	require.ErrorIs(t, err, ErrInvalidChecksumVariant)
}

// TestHrpBinding ensures an address re-labelled with another network's hrp
// is rejected by the checksum.
func TestHrpBinding(t *testing.T) {
	t.Parallel()

	addr, err := Encode("bc", 0, hexToBytes(
		"751e76e8199196d454941c45d1b3a323f1433bd6"))
	require.NoError(t, err)

	relabelled := "tb" + strings.TrimPrefix(addr, "bc")
	_, _, err = Decode("tb", relabelled)
	require.ErrorIs(t, err, ErrMalformed)
	require.ErrorIs(t, err, bech32.ErrInvalidChecksum)

	_, _, err = Decode("bc", relabelled)
	require.ErrorIs(t, err, ErrHrpDoesNotMatch)
}

// TestAddress ensures the Address type exposes the decoded fields, copies
// its program and reports the network it belongs to.
func TestAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		addr    string
		net     *Net
		version byte
		program string
		script  string
	}{{
		name:    "mainnet p2wpkh",
		addr:    "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4",
		net:     &MainNet,
		version: 0,
		program: "751e76e8199196d454941c45d1b3a323f1433bd6",
		script:  "0014751e76e8199196d454941c45d1b3a323f1433bd6",
	}, {
		name:    "testnet p2wsh",
		addr:    "tb1qrp33g0q5c5txsp9arysrx4k6zdkfs4nce4xj0gdcccefvpysxf3q0sl5k7",
		net:     &TestNet3,
		version: 0,
		program: "1863143c14c5166804bd19203356da136c985678cd4d27a1b8c6329604903262",
		script:  "00201863143c14c5166804bd19203356da136c985678cd4d27a1b8c6329604903262",
	}, {
		name:    "mainnet p2tr",
		addr:    "bc1p0xlxvlhemja6c4dqv22uapctqupfhlxm9h8z3k2e72q4k9hcz7vqzk5jj0",
		net:     &MainNet,
		version: 1,
		program: "79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798",
		script:  "512079be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798",
	}}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			addr, net, err := ParseAddress(test.addr)
			require.NoError(t, err)
			require.Equal(t, test.net, net)
			require.True(t, addr.IsForNet(test.net))
			require.Equal(t, test.net.HRP, addr.HRP())
			require.Equal(t, test.version, addr.WitnessVersion())
			require.Equal(t, hexToBytes(test.program),
				addr.WitnessProgram())
			require.Equal(t, hexToBytes(test.script),
				addr.ScriptPubKey())
			require.Equal(t, test.addr, addr.EncodeAddress())
			require.Equal(t, test.addr, addr.String())

			// Mutating the returned program must not affect the
			// address.
			program := addr.WitnessProgram()
			program[0] ^= 0xff
			require.Equal(t, test.addr, addr.EncodeAddress())

			built, err := NewAddress(test.net.HRP, test.version,
				hexToBytes(test.program))
			require.NoError(t, err)
			require.True(t, built.Equal(addr))

			decoded, err := DecodeAddress(test.addr, test.net)
			require.NoError(t, err)
			require.True(t, decoded.Equal(addr))
		})
	}

	_, err := NewAddress("bc", 0, make([]byte, 21))
	require.ErrorIs(t, err, ErrInvalidProgramLength)

	_, _, err = ParseAddress("tc1p0xlxvlhemja6c4dqv22uapctqupfhlxm9h8z3k2e72q4k9hcz7vq5zuyut")
	require.ErrorIs(t, err, ErrUnknownNet)

	_, _, err = ParseAddress("bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kemeawh")
	require.ErrorIs(t, err, ErrInvalidChecksumVariant)

	regtest, err := NewAddress(RegressionNet.HRP, 1, make([]byte, 32))
	require.NoError(t, err)
	parsed, net, err := ParseAddress(regtest.EncodeAddress())
	require.NoError(t, err)
	require.Equal(t, &RegressionNet, net)
	require.True(t, parsed.Equal(regtest))
	require.False(t, parsed.IsForNet(&MainNet))
}

// FuzzDecode ensures that any string that decodes re-encodes to its
// lowercase form.
func FuzzDecode(f *testing.F) {
	f.Add("bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4")
	f.Add("BC1SW50QGDZ25J")
	f.Add("bc1p0xlxvlhemja6c4dqv22uapctqupfhlxm9h8z3k2e72q4k9hcz7vqzk5jj0")
	f.Add("bc1gmk9yu")

	f.Fuzz(func(t *testing.T, addr string) {
		version, program, err := Decode("bc", addr)
		if err != nil {
			var decodeErr DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("unexpected error type %T: %v", err, err)
			}
			return
		}

		encoded, err := Encode("bc", version, program)
		if err != nil {
			t.Fatalf("re-encode of %q failed: %v", addr, err)
		}
		if encoded != strings.ToLower(addr) {
			t.Fatalf("re-encode mismatch: got %q, want %q", encoded,
				strings.ToLower(addr))
		}
	})
}
