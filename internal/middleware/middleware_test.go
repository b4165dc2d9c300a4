package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/01moynul/storefront-golang/internal/apperr"
	"github.com/01moynul/storefront-golang/internal/logger"
	"github.com/01moynul/storefront-golang/internal/metrics"
	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeTokens map[string]int64

func (f fakeTokens) ValidateToken(s string) (int64, error) {
	if id, ok := f[s]; ok {
		return id, nil
	}
	return 0, errors.New("token is malformed")
}

type fakeIdentities map[int64]*models.User

func (f fakeIdentities) Identity(_ context.Context, id int64) (*models.User, error) {
	if u, ok := f[id]; ok {
		if !u.IsActive {
			return nil, apperr.Unauthorized("User inactive or deleted.")
		}
		return u, nil
	}
	if id == 500 {
		return nil, errors.New("connection refused")
	}
	return nil, apperr.Unauthorized("User not found")
}

func authRouter() *gin.Engine {
	tokens := fakeTokens{"staff": 1, "shopper": 2, "inactive": 3, "ghost": 4, "broken": 500}
	users := fakeIdentities{
		1: {ID: 1, Username: "admin", IsStaff: true, IsActive: true},
		2: {ID: 2, Username: "shopper", IsActive: true},
		3: {ID: 3, Username: "gone"},
	}

	r := gin.New()
	r.Use(RequestID(), Authenticate(tokens, users))
	r.GET("/whoami", func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			c.JSON(http.StatusOK, gin.H{"user": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": u.Username})
	})
	catalog := r.Group("/catalog", StaffOrReadOnly())
	catalog.GET("", func(c *gin.Context) { c.Status(http.StatusOK) })
	catalog.POST("", func(c *gin.Context) { c.Status(http.StatusCreated) })
	r.POST("/uploads", RequireStaff(), func(c *gin.Context) { c.Status(http.StatusCreated) })
	return r
}

func do(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	r := authRouter()

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"anonymous", "", http.StatusOK, `{"user":null}`},
		{"valid token", "Bearer shopper", http.StatusOK, `{"user":"shopper"}`},
		{"lowercase scheme", "bearer staff", http.StatusOK, `{"user":"admin"}`},
		{"wrong scheme", "Basic c2hvcHBlcg==", http.StatusUnauthorized, `{"error":"Invalid token format (must be Bearer)"}`},
		{"invalid token", "Bearer forged", http.StatusUnauthorized, `{"error":"Invalid or expired token"}`},
		{"inactive user", "Bearer inactive", http.StatusUnauthorized, `{"error":"User inactive or deleted."}`},
		{"unknown user", "Bearer ghost", http.StatusUnauthorized, `{"error":"User not found"}`},
		{"identity lookup failure", "Bearer broken", http.StatusInternalServerError, `{"error":"Internal server error"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestStaffGuards(t *testing.T) {
	r := authRouter()

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/catalog", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/catalog", "").Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodPost, "/catalog", "shopper").Code)
	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/catalog", "staff").Code)

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/uploads", "").Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodPost, "/uploads", "shopper").Code)
	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/uploads", "staff").Code)

	w := do(r, http.MethodPost, "/catalog", "")
	assert.JSONEq(t, `{"error":"Authentication credentials were not provided."}`, w.Body.String())
	w = do(r, http.MethodPost, "/uploads", "shopper")
	assert.JSONEq(t, `{"error":"You do not have permission to perform this action."}`, w.Body.String())
}

func TestAbortWithError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"field errors", apperr.FieldErrors(map[string]string{"slug": "taken"}), http.StatusBadRequest, `{"error":"invalid input","fields":{"slug":"taken"}}`},
		{"upstream", apperr.Upstream("card declined", errors.New("402")), http.StatusBadRequest, `{"error":"card declined"}`},
		{"not found", apperr.NotFound("order"), http.StatusNotFound, `{"error":"order not found"}`},
		{"permission denied", apperr.PermissionDenied("staff only"), http.StatusForbidden, `{"error":"staff only"}`},
		{"unauthorized", apperr.Unauthorized("login required"), http.StatusUnauthorized, `{"error":"login required"}`},
		{"internal kind", &apperr.Error{Kind: apperr.KindInternal, Message: "secret detail"}, http.StatusInternalServerError, `{"error":"Internal server error"}`},
		{"plain error", errors.New("dial tcp: refused"), http.StatusInternalServerError, `{"error":"Internal server error"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/", func(c *gin.Context) { AbortWithError(c, tt.err) })

			w := do(r, http.MethodGet, "/", "")
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.status, StatusFor(apperr.KindOf(tt.err)))
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		fromGin := logger.FromContext(c)
		fromRequest := logger.FromContext(c.Request.Context())
		assert.Same(t, fromGin, fromRequest)
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	w := do(r, http.MethodGet, "/", "")
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-from-client")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-from-client", w.Header().Get(RequestIDHeader))
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173"}))
	r.GET("/v1/products", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/v1/products", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "Authorization")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("actual request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/products", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("foreign origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/products", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	r := gin.New()
	r.Use(Metrics(), AccessLog())
	r.GET("/v1/products/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/v1/products/:id", "200"))
	require.Equal(t, http.StatusOK, do(r, http.MethodGet, "/v1/products/12", "").Code)
	require.Equal(t, http.StatusOK, do(r, http.MethodGet, "/v1/products/13", "").Code)
	after := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/v1/products/:id", "200"))
	assert.Equal(t, 2.0, after-before)

	do(r, http.MethodGet, "/nowhere", "")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")))
}
