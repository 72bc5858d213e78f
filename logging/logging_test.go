package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/revelaction/curiam/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.LogConfig{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)

	log.Debug("hidden")
	log.WithField("doc", "opinion").Warn("truncated")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "opinion", entry["doc"])
	assert.Equal(t, "truncated", entry["msg"])
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.LogConfig{Level: "debug"}, &buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log.Debug("imported")
	assert.Contains(t, buf.String(), "msg=imported")
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curiam.log")
	log, err := New(config.LogConfig{Level: "info", Format: "text", File: path, MaxSize: 1}, nil)
	require.NoError(t, err)

	log.Info("to file")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestNewErrors(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud"}, nil)
	assert.Error(t, err)

	_, err = New(config.LogConfig{Level: "info", Format: "xml"}, nil)
	assert.Error(t, err)
}
