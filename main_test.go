//go:build !(js && wasm)

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SwiftGuides/HexColorCode-Extension/internal/logging"
)

func TestRun_Usage(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 1, run(nil, &out))
	assert.Contains(t, out.String(), "Usage: hexcolortool")

	out.Reset()
	assert.Equal(t, 1, run([]string{"parse"}, &out))
	assert.Equal(t, 1, run([]string{"bogus", "x"}, &out))
}

func TestRun_Parse(t *testing.T) {
	var out bytes.Buffer
	require.Equal(t, 0, run([]string{"parse", "#1a2b3c", "2"}, &out))
	assert.Equal(t, "#1a2b3c r=0.101961 g=0.168627 b=0.235294 a=1.000000\n", out.String())

	out.Reset()
	require.Equal(t, 0, run([]string{"expand", "F0A"}, &out))
	assert.Equal(t, "#ff00aa\n", out.String())
}

func TestRun_ErrorIsWrittenToLogFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "tool.log")
	t.Setenv("HEXCOLOR_LOG_FILE", logFile)
	defer logging.Root().ReplaceHooks(make(logrus.LevelHooks))
	logging.SetOutput(&bytes.Buffer{})
	defer logging.SetOutput(os.Stderr)

	var out bytes.Buffer
	assert.Equal(t, 1, run([]string{"parse", "ZZZ"}, &out))
	assert.Contains(t, out.String(), "Error:")

	// the file logger is closed by the time run returns
	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "| main | invalid hex color")
}
