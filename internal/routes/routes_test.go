package routes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/01moynul/storefront-golang/internal/handlers"
	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noTokens struct{}

func (noTokens) ValidateToken(string) (int64, error) { return 0, errors.New("no tokens in this test") }

type noIdentities struct{}

func (noIdentities) Identity(context.Context, int64) (*models.User, error) {
	return nil, errors.New("no users in this test")
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestOperationalRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "abc-mug.png"), []byte("PNGDATA"), 0o644))

	r := SetupRouter(&handlers.Handlers{}, Options{
		Tokens:     noTokens{},
		Identities: noIdentities{},
		UploadDir:  dir,
	})

	w := get(r, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())

	w = get(r, "/v1/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong!"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = get(r, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "storefront_http_requests_total")

	w = get(r, "/uploads/abc-mug.png")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "PNGDATA", w.Body.String())
}

func TestUploadsNotServedWithoutLocalDriver(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := SetupRouter(&handlers.Handlers{}, Options{Tokens: noTokens{}, Identities: noIdentities{}})
	assert.Equal(t, http.StatusNotFound, get(r, "/uploads/abc-mug.png").Code)
}
