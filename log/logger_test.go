package log

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewFormats(t *testing.T) {
	tests := []struct {
		format string
		check  func(t *testing.T, line string)
	}{
		{"json", func(t *testing.T, line string) {
			var entry map[string]any
			require.NoError(t, json.Unmarshal([]byte(line), &entry))
			assert.Equal(t, "address encoded", entry["msg"])
			assert.Equal(t, "symbol-mainnet", entry["network"])
		}},
		{"logfmt", func(t *testing.T, line string) {
			assert.Contains(t, line, `msg="address encoded"`)
			assert.Contains(t, line, "network=symbol-mainnet")
		}},
		{"console", func(t *testing.T, line string) {
			assert.Contains(t, line, "address encoded")
			assert.Contains(t, line, `"network": "symbol-mainnet"`)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			out := filepath.Join(t.TempDir(), "logs", "core.log")
			logger, err := New(Config{Format: tt.format, Level: "debug", Output: out}, zapcore.AddSync(&buf))
			require.NoError(t, err)

			logger.Info("address encoded", zap.String("network", "symbol-mainnet"))
			require.NoError(t, logger.Sync())

			tt.check(t, strings.TrimSpace(buf.String()))

			written, err := os.ReadFile(out)
			require.NoError(t, err)
			assert.Equal(t, buf.String(), string(written))
		})
	}
}

func TestNewLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Format: "json", Level: "warn", Output: filepath.Join(t.TempDir(), "x.log")}, zapcore.AddSync(&buf))
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestNewErrors(t *testing.T) {
	_, err := New(Config{Format: "xml"})
	assert.Error(t, err)

	_, err = New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Info("nothing") })
}
