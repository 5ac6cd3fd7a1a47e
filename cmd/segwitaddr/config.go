// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/btcsuite/bech32m/internal/log"
	"github.com/btcsuite/bech32m/internal/version"
	"github.com/btcsuite/bech32m/segwit"
	flags "github.com/jessevdk/go-flags"
)

const (
	defaultNet         = "mainnet"
	defaultLogLevel    = "info"
	defaultLogDirname  = "logs"
	defaultLogFilename = "segwitaddr.log"
)

var (
	appHomeDir    = filepath.Join(homeDir(), ".segwitaddr")
	defaultLogDir = filepath.Join(appHomeDir, defaultLogDirname)

	// errHelpShown is returned from loadConfig when the help or version
	// was printed and the utility should exit without an error.
	errHelpShown = errors.New("help shown")
)

// encodeCmd holds the arguments of the encode command.
type encodeCmd struct {
	Args struct {
		Version uint8  `positional-arg-name:"version"`
		Program string `positional-arg-name:"hexprogram"`
	} `positional-args:"yes" required:"yes"`
}

// decodeCmd holds the arguments of the decode command.
type decodeCmd struct {
	Args struct {
		Addresses []string `positional-arg-name:"address"`
	} `positional-args:"yes" required:"yes"`
}

// scriptCmd holds the arguments of the script command.
type scriptCmd struct {
	Args struct {
		Address string `positional-arg-name:"address"`
	} `positional-args:"yes" required:"yes"`
}

// pubKeyCmd holds the arguments of the p2wpkh and p2tr commands.
type pubKeyCmd struct {
	Args struct {
		PubKey string `positional-arg-name:"hexpubkey"`
	} `positional-args:"yes" required:"yes"`
}

// witnessScriptCmd holds the arguments of the p2wsh command.
type witnessScriptCmd struct {
	Args struct {
		Script string `positional-arg-name:"hexscript"`
	} `positional-args:"yes" required:"yes"`
}

// config defines the configuration options for segwitaddr.
//
// See loadConfig for details on the configuration load process.
type config struct {
	ShowVersion bool   `short:"V" long:"version" description:"Display version information and exit"`
	Net         string `short:"n" long:"net" description:"Network whose human-readable part is used" choice:"mainnet" choice:"testnet3" choice:"testnet4" choice:"signet" choice:"regtest" choice:"simnet"`
	HRP         string `long:"hrp" description:"Override the human-readable part of the selected network"`
	DebugLevel  string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`
	LogDir      string `long:"logdir" description:"Directory to log output"`
	NoLogFile   bool   `long:"nologfile" description:"Disable logging to a file"`

	Encode  encodeCmd        `command:"encode" description:"Encode a witness version and hex program into an address"`
	Decode  decodeCmd        `command:"decode" description:"Decode one or more addresses into witness version and program"`
	Script  scriptCmd        `command:"script" description:"Print the scriptPubKey paying to an address"`
	P2WPKH  pubKeyCmd        `command:"p2wpkh" description:"Create a version 0 pay-to-pubkey-hash address from a public key"`
	P2TR    pubKeyCmd        `command:"p2tr" description:"Create a version 1 taproot address from an output key"`
	P2WSH   witnessScriptCmd `command:"p2wsh" description:"Create a version 0 pay-to-script-hash address from a witness script"`

	command string
	net     *segwit.Net
}

// hrp returns the human-readable part used to encode and decode addresses.
func (cfg *config) hrp() string {
	if cfg.HRP != "" {
		return cfg.HRP
	}
	return cfg.net.HRP
}

// homeDir returns the home directory of the current user, falling back to
// the working directory.
func homeDir() string {
	if u, err := user.Current(); err == nil && u.HomeDir != "" {
		return u.HomeDir
	}
	return "."
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	// NOTE: The os.ExpandEnv doesn't work with Windows cmd.exe-style
	// %VARIABLE%, but the variables can still be expanded via POSIX-style
	// $VARIABLE.
	path = os.ExpandEnv(path)

	if !strings.HasPrefix(path, "~") {
		return filepath.Clean(path)
	}

	// Expand initial ~ to the current user's home directory, or ~otheruser
	// to otheruser's home directory.  On Windows, both forward and backward
	// slashes can be used.
	path = path[1:]

	var pathSeparators string
	if runtime.GOOS == "windows" {
		pathSeparators = string(os.PathSeparator) + "/"
	} else {
		pathSeparators = string(os.PathSeparator)
	}

	userName := ""
	if i := strings.IndexAny(path, pathSeparators); i != -1 {
		userName = path[:i]
		path = path[i:]
	}

	home := ""
	var u *user.User
	var err error
	if userName == "" {
		u, err = user.Current()
	} else {
		u, err = user.Lookup(userName)
	}
	if err == nil {
		home = u.HomeDir
	}
	// Fallback to CWD if user lookup fails or user has no home directory.
	if home == "" {
		home = "."
	}

	return filepath.Join(home, path)
}

// loadConfig initializes and parses the config using command line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Parse the command line options and select the command
//  3. Resolve the network and validate the human-readable part override
//  4. Set up logging
//
// The remaining arguments after the command arguments are returned.
func loadConfig(args []string) (*config, []string, error) {
	// Default config.
	cfg := config{
		Net:        defaultNet,
		DebugLevel: defaultLogLevel,
		LogDir:     defaultLogDir,
	}

	// Parse command line options.  The version flag is honored even when
	// no command was given.
	parser := flags.NewParser(&cfg, flags.Default)
	parser.SubcommandsOptional = true
	remainingArgs, err := parser.ParseArgs(args)
	if cfg.ShowVersion {
		fmt.Println("segwitaddr version", version.String())
		return nil, nil, errHelpShown
	}
	if err != nil {
		var e *flags.Error
		if errors.As(err, &e) && e.Type == flags.ErrHelp {
			return nil, nil, errHelpShown
		}
		return nil, nil, err
	}
	if parser.Active == nil {
		parser.WriteHelp(os.Stderr)
		return nil, nil, errors.New("no command specified")
	}
	cfg.command = parser.Active.Name

	// Special show command to list supported subsystems and exit.
	if cfg.DebugLevel == "show" {
		fmt.Println("Supported subsystems", log.SupportedSubsystems())
		return nil, nil, errHelpShown
	}

	net, ok := segwit.NetByName(cfg.Net)
	if !ok {
		err := fmt.Errorf("loadConfig: unknown network %q", cfg.Net)
		fmt.Fprintln(os.Stderr, err)
		return nil, nil, err
	}
	cfg.net = net

	// The human-readable part override must be usable for encoding.
	if cfg.HRP != "" && cfg.HRP != strings.ToLower(cfg.HRP) {
		str := "loadConfig: the human-readable part [%v] must be " +
			"lowercase"
		err := fmt.Errorf(str, cfg.HRP)
		fmt.Fprintln(os.Stderr, err)
		return nil, nil, err
	}

	// Parse, validate, and set debug log level(s).
	if err := log.ParseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		err := fmt.Errorf("loadConfig: %w", err)
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, nil, err
	}

	// Initialize log rotation.  After log rotation has been initialized,
	// the logger variables may be used.
	if !cfg.NoLogFile {
		cfg.LogDir = cleanAndExpandPath(cfg.LogDir)
		logFile := filepath.Join(cfg.LogDir, defaultLogFilename)
		if err := log.InitLogRotator(logFile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return nil, nil, err
		}
	}

	return &cfg, remainingArgs, nil
}
