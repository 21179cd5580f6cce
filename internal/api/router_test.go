package api

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"leetboard/internal/app/service"
	"leetboard/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRouter(t *testing.T) {
	repo := repository.NewFileSnapshotRepository(filepath.Join(t.TempDir(), "data.json"))
	router := NewRouter(service.NewQueryService(repo), zap.NewNop())

	t.Run("health", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "OK", rec.Body.String())
	})

	t.Run("cors", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://dashboard.example")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("no mutating routes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/data", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
