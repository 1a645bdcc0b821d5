package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// =====================
// helper
// =====================

type mwErrorResponse struct {
	Error string `json:"error"`
}

type mwOKResponse struct {
	UserID   int64  `json:"user_id"`
	Role     string `json:"role"`
	Username string `json:"username"`
}

func mustMakeJWT(t *testing.T, secret string, sub int64, role string, signingMethod jwt.SigningMethod) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":      sub,
		"role":     role,
		"username": "ana",
		"iat":      1,
		"exp":      9999999999,
	}
	s, err := jwt.NewWithClaims(signingMethod, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}
	return s
}

func runRequest(t *testing.T, e *echo.Echo, authHeader string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeMWError(t *testing.T, rec *httptest.ResponseRecorder) mwErrorResponse {
	t.Helper()
	var r mwErrorResponse
	_ = json.NewDecoder(rec.Body).Decode(&r)
	return r
}

func protectedEcho(mw ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		return c.JSON(http.StatusOK, mwOKResponse{
			UserID:   c.Get(middleware.CtxUserIDKey).(int64),
			Role:     c.Get(middleware.CtxUserRoleKey).(string),
			Username: c.Get(middleware.CtxUsernameKey).(string),
		})
	}, mw...)
	return e
}

// =====================
// AuthJWT
// =====================

// Authorizationなし => 401
func TestAuthJWT_Unauthorized_NoHeader(t *testing.T) {
	e := protectedEcho(middleware.AuthJWT([]byte("test-secret")))

	rec := runRequest(t, e, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", decodeMWError(t, rec).Error)
}

// Basic などは 401
func TestAuthJWT_Unauthorized_BadScheme(t *testing.T) {
	e := protectedEcho(middleware.AuthJWT([]byte("test-secret")))

	raw := mustMakeJWT(t, "test-secret", 1, "USER", jwt.SigningMethodHS256)
	rec := runRequest(t, e, "Basic "+raw)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// 署名違い => 401
func TestAuthJWT_Unauthorized_BadSignature(t *testing.T) {
	e := protectedEcho(middleware.AuthJWT([]byte("correct-secret")))

	raw := mustMakeJWT(t, "wrong-secret", 1, "USER", jwt.SigningMethodHS256)
	rec := runRequest(t, e, "Bearer "+raw)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// アルゴリズム違い（HS512）=> 401
func TestAuthJWT_Unauthorized_WrongAlg(t *testing.T) {
	e := protectedEcho(middleware.AuthJWT([]byte("test-secret")))

	raw := mustMakeJWT(t, "test-secret", 1, "USER", jwt.SigningMethodHS512)
	rec := runRequest(t, e, "Bearer "+raw)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// "Token" スキームでも通る
func TestAuthJWT_Success_TokenScheme(t *testing.T) {
	e := protectedEcho(middleware.AuthJWT([]byte("test-secret")))

	raw := mustMakeJWT(t, "test-secret", 123, "USER", jwt.SigningMethodHS256)
	rec := runRequest(t, e, "Token "+raw)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body mwOKResponse
	_ = json.NewDecoder(rec.Body).Decode(&body)
	assert.Equal(t, int64(123), body.UserID)
	assert.Equal(t, "USER", body.Role)
	assert.Equal(t, "ana", body.Username)
}

// =====================
// RoleGuard
// =====================

func TestRoleGuard_ForbiddenForUser(t *testing.T) {
	e := protectedEcho(middleware.AuthJWT([]byte("s")), middleware.RoleGuard("ADMIN"))

	rec := runRequest(t, e, "Bearer "+mustMakeJWT(t, "s", 1, "USER", jwt.SigningMethodHS256))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", decodeMWError(t, rec).Error)
}

func TestRoleGuard_AllowsAdmin(t *testing.T) {
	e := protectedEcho(middleware.AuthJWT([]byte("s")), middleware.RoleGuard("ADMIN"))

	rec := runRequest(t, e, "Bearer "+mustMakeJWT(t, "s", 1, "ADMIN", jwt.SigningMethodHS256))
	assert.Equal(t, http.StatusOK, rec.Code)
}

// =====================
// RequireCredential
// =====================

type tokenSourceFunc func(ctx context.Context) (string, error)

func (f tokenSourceFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

func TestRequireCredential(t *testing.T) {
	cases := []struct {
		name   string
		source tokenSourceFunc
		want   int
	}{
		{"missing", func(context.Context) (string, error) { return "", usecase.NewAuthError("credential not found") }, http.StatusUnauthorized},
		{"present", func(context.Context) (string, error) { return "tok", nil }, http.StatusOK},
		{"storage broken", func(context.Context) (string, error) { return "", assert.AnError }, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			e.GET("/protected", func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			}, middleware.RequireCredential(tc.source))

			rec := runRequest(t, e, "")
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
