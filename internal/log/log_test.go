// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/btcsuite/btclog"
	"github.com/stretchr/testify/require"
)

// TestSupportedSubsystems ensures the subsystems are reported sorted.
func TestSupportedSubsystems(t *testing.T) {
	require.Equal(t, []string{"ADDR", "SGWT"}, SupportedSubsystems())
}

// TestParseAndSetDebugLevels ensures debug level strings are validated and
// applied to the expected subsystems.
func TestParseAndSetDebugLevels(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		valid  bool
		levels map[string]btclog.Level
	}{{
		name:  "single level",
		level: "debug",
		valid: true,
		levels: map[string]btclog.Level{
			"ADDR": btclog.LevelDebug,
			"SGWT": btclog.LevelDebug,
		},
	}, {
		name:  "per subsystem",
		level: "ADDR=warn,SGWT=trace",
		valid: true,
		levels: map[string]btclog.Level{
			"ADDR": btclog.LevelWarn,
			"SGWT": btclog.LevelTrace,
		},
	}, {
		name:  "invalid level",
		level: "verbose",
	}, {
		name:  "invalid subsystem",
		level: "PEER=info",
	}, {
		name:  "invalid level for subsystem",
		level: "SGWT=loud",
	}, {
		name:  "missing pair separator",
		level: "ADDR=info,SGWT",
	}}

	for _, test := range tests {
		SetLogLevels("info")

		err := ParseAndSetDebugLevels(test.level)
		if !test.valid {
			require.Error(t, err, test.name)
			continue
		}
		require.NoError(t, err, test.name)

		for subsystem, want := range test.levels {
			require.Equal(t, want, SubsystemLoggers[subsystem].Level(),
				"%s: %s", test.name, subsystem)
		}
	}
	SetLogLevels("info")
}

// TestInitLogRotator ensures log output reaches the rotated log file.
func TestInitLogRotator(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "segwitaddr.log")
	require.NoError(t, InitLogRotator(logFile))

	AddrLog.Info("rotator test")
	CloseLogRotator()

	contents, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(contents), "rotator test")
}
