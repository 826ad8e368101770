package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONOutputOutsideLocal(t *testing.T) {
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("LOG_LEVEL", "debug")
	var buf bytes.Buffer

	l := NewWithWriter(&buf)
	l.Component("segment").WithField("clients", 3).Debug("partitioned")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "segment", entry["component"])
	assert.Equal(t, "ngr-insights-go", entry["service"])
	assert.Equal(t, "partitioned", entry["msg"])
}

func TestLevelFiltering(t *testing.T) {
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("LOG_LEVEL", "warn")
	var buf bytes.Buffer

	l := NewWithWriter(&buf)
	l.Info("hidden")
	assert.Zero(t, buf.Len())

	l.WithError(errors.New("boom")).Warn("shown")
	assert.Contains(t, buf.String(), "boom")
}

func TestWithRequest(t *testing.T) {
	l := NewWithWriter(&bytes.Buffer{})

	r := httptest.NewRequest("GET", "/datasets/bonus/summary", nil)
	r.Header.Set("X-Request-ID", "req-42")
	e := l.WithRequest(r)
	assert.Equal(t, "req-42", e.Data["req_id"])
	assert.Equal(t, "/datasets/bonus/summary", e.Data["path"])

	r = httptest.NewRequest("GET", "/healthz", nil)
	e = l.WithRequest(r)
	assert.NotEmpty(t, e.Data["req_id"])
}
