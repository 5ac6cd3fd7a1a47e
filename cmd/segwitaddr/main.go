// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/btcsuite/bech32m/internal/log"
	"github.com/btcsuite/bech32m/segwit"
)

// decodeAddress decodes addr with the configured human-readable part.  When
// the address belongs to another network and no override was given, the
// other known networks are tried.
func decodeAddress(cfg *config, addr string) (*segwit.Address, error) {
	version, program, err := segwit.Decode(cfg.hrp(), addr)
	if segwit.IsHrpMismatch(err) && cfg.HRP == "" {
		log.AddrLog.Debugf("Address %q is not for %s, trying other "+
			"networks", addr, cfg.net.Name)

		a, net, err := segwit.ParseAddress(addr)
		if err != nil {
			return nil, err
		}
		log.AddrLog.Infof("Address %q decoded for network %s", addr,
			net.Name)
		return a, nil
	}
	if err != nil {
		return nil, err
	}
	return segwit.NewAddress(cfg.hrp(), version, program)
}

// encodeAddress encodes the program with the configured human-readable part
// and logs the result.
func encodeAddress(cfg *config, w io.Writer, witnessVersion byte, program []byte) error {
	addr, err := segwit.Encode(cfg.hrp(), witnessVersion, program)
	if err != nil {
		return err
	}
	log.AddrLog.Debugf("Encoded version %d program %x as %s",
		witnessVersion, program, addr)
	fmt.Fprintln(w, addr)
	return nil
}

// decodeHex decodes a hex argument, naming it in the returned error.
func decodeHex(name, s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return b, nil
}

// runCommand executes the command selected in cfg and writes its results
// to w.
func runCommand(cfg *config, w io.Writer) error {
	switch cfg.command {
	case "encode":
		program, err := decodeHex("witness program", cfg.Encode.Args.Program)
		if err != nil {
			return err
		}
		return encodeAddress(cfg, w, cfg.Encode.Args.Version, program)

	case "decode":
		var failed bool
		for _, addr := range cfg.Decode.Args.Addresses {
			a, err := decodeAddress(cfg, addr)
			if err != nil {
				log.AddrLog.Errorf("Unable to decode %q: %v", addr, err)
				failed = true
				continue
			}
			fmt.Fprintf(w, "%s hrp=%s version=%d program=%x\n",
				addr, a.HRP(), a.WitnessVersion(),
				a.WitnessProgram())
		}
		if failed {
			return errors.New("not all addresses could be decoded")
		}
		return nil

	case "script":
		a, err := decodeAddress(cfg, cfg.Script.Args.Address)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%x\n", a.ScriptPubKey())
		return nil

	case "p2wpkh":
		pubKey, err := decodeHex("public key", cfg.P2WPKH.Args.PubKey)
		if err != nil {
			return err
		}
		program, err := segwit.NewP2WPKHProgram(pubKey)
		if err != nil {
			return err
		}
		return encodeAddress(cfg, w, 0, program)

	case "p2tr":
		outputKey, err := decodeHex("output key", cfg.P2TR.Args.PubKey)
		if err != nil {
			return err
		}
		program, err := segwit.NewP2TRProgram(outputKey)
		if err != nil {
			return err
		}
		return encodeAddress(cfg, w, 1, program)

	case "p2wsh":
		script, err := decodeHex("witness script", cfg.P2WSH.Args.Script)
		if err != nil {
			return err
		}
		return encodeAddress(cfg, w, 0, segwit.NewP2WSHProgram(script))
	}

	return fmt.Errorf("unknown command %q", cfg.command)
}

// realMain is the real main function for the utility.  It is necessary to work
// around the fact that deferred functions do not run when os.Exit() is called.
func realMain() error {
	// Load configuration and parse command line.
	cfg, _, err := loadConfig(os.Args[1:])
	if err != nil {
		return err
	}
	defer log.CloseLogRotator()

	if err := runCommand(cfg, os.Stdout); err != nil {
		log.AddrLog.Errorf("%s: %v", cfg.command, err)
		return err
	}
	return nil
}

func main() {
	if err := realMain(); err != nil {
		if errors.Is(err, errHelpShown) {
			return
		}
		os.Exit(1)
	}
}
