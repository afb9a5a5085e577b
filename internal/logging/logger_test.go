package logging_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/enetx/tickfsm/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer

	logger, err := logging.New(&buf, "debug", "text")
	require.NoError(t, err)

	logger.Debug("entering state", "state", "idle", "error", errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "msg=\"entering state\"")
	assert.Contains(t, out, "state=idle")
	assert.Contains(t, out, "err=boom")
	assert.NotContains(t, out, "error=")
}

func TestNew_JSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer

	logger, err := logging.New(&buf, "WARN", "json")
	require.NoError(t, err)

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}

func TestNew_Invalid(t *testing.T) {
	_, err := logging.New(&bytes.Buffer{}, "loud", "text")
	assert.Error(t, err)

	_, err = logging.New(&bytes.Buffer{}, "info", "xml")
	assert.Error(t, err)
}

func TestNewNop(t *testing.T) {
	assert.NotPanics(t, func() { logging.NewNop().Error("ignored") })
}
