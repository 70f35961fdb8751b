package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/quocanhngo/travelmate/internal/apperror"
	"github.com/quocanhngo/travelmate/internal/model"
	"github.com/quocanhngo/travelmate/pkg/auth"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type authFixture struct {
	router  *gin.Engine
	jwt     *auth.JWTManager
	revoked *auth.RevocationList
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	f := &authFixture{
		jwt:     auth.NewJWTManager("test-secret", time.Hour),
		revoked: auth.NewRevocationList(rdb),
	}
	log := zap.NewNop()
	f.router = gin.New()
	f.router.Use(ErrorHandler(log))
	f.router.GET("/me", AuthMiddleware(f.jwt, f.revoked, log), func(c *gin.Context) {
		p := GetPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"uid": p.UID, "email": p.Email, "token": GetBearerToken(c)})
	})
	return f
}

func (f *authFixture) get(header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()
	var body model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	f := newAuthFixture(t)
	token, err := f.jwt.GenerateToken("uid-1", "alice@example.com")
	require.NoError(t, err)

	w := f.get("Bearer " + token)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "uid-1", body["uid"])
	assert.Equal(t, "alice@example.com", body["email"])
	assert.Equal(t, token, body["token"])
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	f := newAuthFixture(t)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"empty token", "Bearer  "},
		{"garbage token", "Bearer not-a-jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.get(tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, string(apperror.CodeUnauthorized), decodeError(t, w).Code)
		})
	}
}

func TestAuthMiddleware_RevokedToken(t *testing.T) {
	f := newAuthFixture(t)
	token, err := f.jwt.GenerateToken("uid-1", "alice@example.com")
	require.NoError(t, err)
	require.NoError(t, f.revoked.Revoke(context.Background(), token, time.Now().Add(time.Hour)))

	w := f.get("Bearer " + token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "token has been revoked", decodeError(t, w).Error)
}

type brokenRevocations struct{}

func (brokenRevocations) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func TestAuthMiddleware_FailsClosed(t *testing.T) {
	jwt := auth.NewJWTManager("s", time.Hour)
	token, err := jwt.GenerateToken("uid", "e@example.com")
	require.NoError(t, err)

	r := gin.New()
	r.Use(ErrorHandler(zap.NewNop()))
	r.GET("/x", AuthMiddleware(jwt, brokenRevocations{}, zap.NewNop()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler(zap.NewNop()))
	r.GET("/domain", func(c *gin.Context) {
		_ = c.Error(apperror.Conflict("taken").WithDetails(map[string]string{"field": "nickname"}))
	})
	r.GET("/raw", func(c *gin.Context) {
		_ = c.Error(errors.New("pq: connection refused"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/domain", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "taken", body.Error)
	assert.Equal(t, "CONFLICT", body.Code)
	assert.Equal(t, map[string]any{"field": "nickname"}, body.Details)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/raw", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestStandardChainLogsRenderedStatus(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := gin.New()
	r.Use(Standard(zap.New(core), []string{"http://localhost:3000"})...)
	r.GET("/missing", func(c *gin.Context) {
		_ = c.Error(apperror.NotFound("post not found"))
	})
	r.GET("/broken", func(c *gin.Context) {
		_ = c.Error(errors.New("pq: connection refused"))
	})

	tests := []struct {
		path   string
		status int
		level  zapcore.Level
	}{
		{"/missing", http.StatusNotFound, zapcore.InfoLevel},
		{"/broken", http.StatusInternalServerError, zapcore.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.Equal(t, tt.status, w.Code)

			entries := logs.FilterMessage("request").FilterField(zap.String("path", tt.path)).All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.level, entries[0].Level)
			assert.Equal(t, int64(tt.status), entries[0].ContextMap()["status"])
		})
	}
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(zap.NewNop()))
	r.GET("/panic", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, internalErrorMessage, decodeError(t, w).Error)
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://localhost:3000"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
