package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	walletHttp "github.com/yuchenwang/wallet-api/internal/http"
	txHandler "github.com/yuchenwang/wallet-api/internal/http/transaction"
	"github.com/yuchenwang/wallet-api/internal/ratelimit"
	"github.com/yuchenwang/wallet-api/internal/transaction"
)

type stubLimiter struct {
	res ratelimit.Result
	err error
}

func (s *stubLimiter) Allow(context.Context, string) (ratelimit.Result, error) {
	return s.res, s.err
}

func newRouter(t *testing.T, limiter ratelimit.Limiter, jwtSecret string) (http.Handler, *transaction.MockRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := transaction.NewMockRepository(ctrl)
	handler := txHandler.NewHandler(transaction.NewService(repo))

	return walletHttp.New(handler, limiter, jwtSecret), repo
}

func TestRouter_Health(t *testing.T) {
	router, _ := newRouter(t, nil, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_RateLimitAllows(t *testing.T) {
	limiter := &stubLimiter{res: ratelimit.Result{Allowed: true, Limit: 100, Remaining: 99}}
	router, repo := newRouter(t, limiter, "")

	repo.EXPECT().
		Summarize(gomock.Any(), "u1").
		Return(transaction.Summary{}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/transactions/summary/u1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RateLimitBlocks(t *testing.T) {
	limiter := &stubLimiter{res: ratelimit.Result{
		Allowed: false,
		Limit:   100,
		Reset:   time.Now().Add(30 * time.Second),
	}}

	// The repository must never see a rate-limited request, so no
	// expectations are registered.
	router, _ := newRouter(t, limiter, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/transactions/summary/u1", nil))

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	var got struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "too many requests, please try again later", got.Message)
}

func TestRouter_RateLimitFailsClosed(t *testing.T) {
	limiter := &stubLimiter{err: errors.New("redis: connection refused")}
	router, _ := newRouter(t, limiter, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/transactions/summary/u1", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "redis")
}

func TestRouter_AuthDisabledByDefault(t *testing.T) {
	router, repo := newRouter(t, nil, "")

	repo.EXPECT().
		Summarize(gomock.Any(), "u1").
		Return(transaction.Summary{}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/transactions/summary/u1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_AuthRejectsBadToken(t *testing.T) {
	router, _ := newRouter(t, nil, "topsecret")

	tests := []struct {
		name   string
		header string
	}{
		{name: "NoHeader", header: ""},
		{name: "NotBearer", header: "Basic abc"},
		{name: "Garbage", header: "Bearer not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/transactions/summary/u1", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"error":"invalid or missing token"}`, rec.Body.String())
		})
	}
}

func TestRouter_AuthAcceptsValidToken(t *testing.T) {
	const secret = "topsecret"

	router, repo := newRouter(t, nil, secret)

	repo.EXPECT().
		Summarize(gomock.Any(), "u1").
		Return(transaction.Summary{}, nil)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/transactions/summary/u1", nil)
	req.Header.Set("Authorization", "Bearer "+signed)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_HealthBypassesAuth(t *testing.T) {
	router, _ := newRouter(t, nil, "topsecret")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
