package sl

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErr_ReturnsCorrectAttr(t *testing.T) {
	err := errors.New("something went wrong")
	attr := Err(err)

	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, slog.StringValue("something went wrong"), attr.Value)
}

func TestErr_NilError(t *testing.T) {
	assert.NotPanics(t, func() {
		attr := Err(nil)
		assert.Equal(t, "<nil>", attr.Value.String())
	})
}

func TestNewLogger_ProdWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, EnvProd)

	log.Debug("hidden")
	log.Info("payment processed", slog.String("payment_id", "PAY-1"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "payment processed", entry["msg"])
	assert.Equal(t, "PAY-1", entry["payment_id"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewLogger_LocalWritesText(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, EnvLocal)

	log.Debug("signup", slog.String("username", "alice"))

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "username=alice")
}
