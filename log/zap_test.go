// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package log

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type entry struct {
	Level   string `json:"level"`
	Message string `json:"msg"`
	Actor   string `json:"actor"`
	Caller  string `json:"caller"`
}

func decode(t *testing.T, buffer *bytes.Buffer) []entry {
	t.Helper()
	var entries []entry
	decoder := json.NewDecoder(buffer)
	for decoder.More() {
		var e entry
		require.NoError(t, decoder.Decode(&e))
		entries = append(entries, e)
	}
	return entries
}

func TestZap(t *testing.T) {
	t.Run("With levels", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(DebugLevel, buffer)
		require.Equal(t, DebugLevel, logger.LogLevel())

		logger.Debug("brewing")
		logger.Infof("guests=%d", 3)
		logger.Warnf("cold %s", "coffee")
		logger.Error("spilled")

		entries := decode(t, buffer)
		require.Len(t, entries, 4)
		assert.Equal(t, entry{Level: "debug", Message: "brewing", Caller: entries[0].Caller}, entries[0])
		assert.Equal(t, "guests=3", entries[1].Message)
		assert.Equal(t, "warn", entries[2].Level)
		assert.Equal(t, "error", entries[3].Level)
		assert.Contains(t, entries[0].Caller, "zap_test.go")
	})
	t.Run("With entries below the level", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(ErrorLevel, buffer)
		logger.Info("hidden")
		logger.Warn("hidden")
		require.Empty(t, buffer.String())
	})
	t.Run("With invalid level", func(t *testing.T) {
		logger := NewZap(InvalidLevel, new(bytes.Buffer))
		require.Equal(t, InfoLevel, logger.LogLevel())
	})
	t.Run("With fields", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		require.Same(t, logger, logger.With())

		tagged := logger.With("actor", "house/user/coffee-house/waiter")
		require.Equal(t, InfoLevel, tagged.LogLevel())
		tagged.Info("served")

		entries := decode(t, buffer)
		require.Len(t, entries, 1)
		assert.Equal(t, "house/user/coffee-house/waiter", entries[0].Actor)
	})
	t.Run("With panic", func(t *testing.T) {
		logger := NewZap(PanicLevel, new(bytes.Buffer))
		assert.Panics(t, func() { logger.Panic("boom") })
		assert.Panics(t, func() { logger.Panicf("boom %d", 1) })
	})
	t.Run("With file output", func(t *testing.T) {
		file, err := os.Create(filepath.Join(t.TempDir(), "coffeehouse.log"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = file.Close() })

		logger := NewZap(InfoLevel, file, os.Stderr)
		logger.Info("written")
		require.NoError(t, logger.Flush())

		content, err := os.ReadFile(file.Name())
		require.NoError(t, err)
		assert.Contains(t, string(content), "written")
	})
	t.Run("With observer core", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		logger := NewZapWithCore(core)
		require.Equal(t, DebugLevel, logger.LogLevel())

		logger.With("actor", "guest-1").Infof("Enjoying my %d yummy %s!", 1, "Akkaccino")

		entries := logs.FilterMessage("Enjoying my 1 yummy Akkaccino!").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "guest-1", entries[0].ContextMap()["actor"])
		require.NoError(t, logger.Flush())
	})
}

func TestDiscardLogger(t *testing.T) {
	DiscardLogger.Debug("discarded")
	DiscardLogger.Infof("discarded %s", "msg")
	DiscardLogger.With("actor", "test").Error("discarded")

	assert.Equal(t, InvalidLevel, DiscardLogger.LogLevel())
	require.NoError(t, DiscardLogger.Flush())
	assert.Panics(t, func() { DiscardLogger.Panicf("boom %d", 1) })
}

func TestParseLevel(t *testing.T) {
	testCases := map[string]Level{
		"DEBUG":   DebugLevel,
		"info":    InfoLevel,
		"":        InfoLevel,
		"warning": WarningLevel,
		"warn":    WarningLevel,
		"error":   ErrorLevel,
		"fatal":   FatalLevel,
		"panic":   PanicLevel,
	}
	for input, expected := range testCases {
		level, err := ParseLevel(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, level, input)
	}

	var level Level
	require.NoError(t, level.UnmarshalText([]byte("error")))
	assert.Equal(t, ErrorLevel, level)
	require.Error(t, level.UnmarshalText([]byte("chatty")))
	assert.Equal(t, "invalid", InvalidLevel.String())
	assert.Equal(t, "warn", WarningLevel.String())
}
