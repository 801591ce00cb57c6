package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/cryai2821/pizza-wale-fe/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithOutputJSON(t *testing.T) {
	cfg := &config.Config{Logging: config.LoggingConfig{Level: "warn", Format: "json"}}
	var buf bytes.Buffer

	log := NewWithOutput(cfg, &buf)
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())

	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.WithField("order_id", "o-1").Warn("feed lost")
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "feed lost", entry["msg"])
	assert.Equal(t, "o-1", entry["order_id"])
}

func TestNewWithOutputFallsBackToInfo(t *testing.T) {
	cfg := &config.Config{Logging: config.LoggingConfig{Level: "chatty", Format: "text"}}

	log := NewWithOutput(cfg, &bytes.Buffer{})
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	_, isText := log.Formatter.(*logrus.TextFormatter)
	assert.True(t, isText)
}
