package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := RequestLogger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/boom" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("OK"))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	entries := logs.All()
	require.Len(t, entries, 2)

	ok := entries[0].ContextMap()
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "/health", ok["path"])
	assert.EqualValues(t, http.StatusOK, ok["status"])
	assert.EqualValues(t, 2, ok["bytes"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.EqualValues(t, http.StatusInternalServerError, entries[1].ContextMap()["status"])
}
