package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func TestSlogLogger_LogRequest(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "INFO"},
		{http.StatusUnprocessableEntity, "WARN"},
		{http.StatusInternalServerError, "ERROR"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		logger := NewLogger(&buf, true)

		logger.LogRequest(http.MethodPost, "/api/v1/sessions", tt.status, "3ms", "client_ip", "203.0.113.9")

		entry := lastEntry(t, &buf)
		assert.Equal(t, tt.level, entry["level"])
		assert.EqualValues(t, tt.status, entry["status_code"])
		assert.Equal(t, "203.0.113.9", entry["client_ip"])
	}
}

func TestSlogLogger_WithAndLogError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, true).With("session_id", "s-1")

	logger.LogError(errors.New("disk full"), "Backup failed", "participant_id", 7)

	entry := lastEntry(t, &buf)
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "disk full", entry["error"])
	assert.Equal(t, "s-1", entry["session_id"])
	assert.NotNil(t, logger.Slog())
}

func TestNewLogger_DevelopmentIsText(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, false).Debug("rendered", "screen", 2)

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "screen=2")
}

func TestContextLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := NewLogger(&buf, true)

	router := gin.New()
	router.Use(ContextLogger(logger), LoggerMiddleware(logger))
	router.GET("/ping", func(c *gin.Context) {
		scoped, ok := c.MustGet("logger").(Logger)
		require.True(t, ok)
		scoped.Info("handling")
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	t.Run("generates an id", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		id := w.Header().Get(RequestIDHeader)
		assert.NotEmpty(t, id)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("keeps the caller's id", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "req-7")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "req-7", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "req-7", lastEntry(t, &buf)["request_id"])
		assert.Contains(t, buf.String(), `"msg":"handling"`)
	})
}
