package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/erp/accounting/internal/infrastructure/auth"
	"github.com/erp/accounting/internal/infrastructure/config"
	"github.com/erp/accounting/internal/infrastructure/logger"
	"github.com/erp/accounting/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWTService(expiration time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-with-32-characters!",
		Issuer:                "accounting-test",
		AccessTokenExpiration: expiration,
	})
}

func issue(t *testing.T, svc *auth.JWTService) (*auth.AccessToken, uuid.UUID) {
	t.Helper()

	id := uuid.New()
	token, err := svc.Issue(auth.Subject{UserID: id, Username: "alice", Role: "accountant"})
	require.NoError(t, err)
	return token, id
}

func newJWTEngine(cfg JWTMiddlewareConfig) *gin.Engine {
	r := gin.New()
	r.Use(JWTAuth(cfg))
	handler := func(c *gin.Context) {
		claims := GetJWTClaims(c)
		username := ""
		if claims != nil {
			username = claims.Username
		}
		c.JSON(http.StatusOK, gin.H{
			"user_id":  GetJWTUserID(c),
			"username": username,
			"ctx_user": logger.GetUser(c.Request.Context()),
		})
	}
	r.GET("/api/v1/invoices", handler)
	r.POST("/api/v1/auth/login", handler)
	return r
}

func authRequest(method, path, header string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	if header != "" {
		req.Header.Set(AuthHeaderKey, header)
	}
	return req
}

func TestJWTAuth_ValidToken(t *testing.T) {
	svc := newJWTService(time.Hour)
	token, id := issue(t, svc)
	r := newJWTEngine(JWTMiddlewareConfig{Validator: svc})

	w := serve(r, authRequest(http.MethodGet, "/api/v1/invoices", BearerPrefix+token.Token))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":"`+id.String()+`","username":"alice","ctx_user":"alice"}`, w.Body.String())
}

func TestJWTAuth_Rejections(t *testing.T) {
	svc := newJWTService(time.Hour)
	expired, _ := issue(t, newJWTService(-time.Minute))

	tests := []struct {
		name    string
		header  string
		message string
	}{
		{"missing header", "", dto.MessageUnauthorized},
		{"wrong scheme", "Basic dXNlcjpwYXNz", dto.MessageUnauthorized},
		{"empty token", BearerPrefix + "  ", dto.MessageUnauthorized},
		{"garbage token", BearerPrefix + "not.a.jwt", dto.MessageUnauthorized},
		{"expired token", BearerPrefix + expired.Token, "token has expired"},
	}

	r := newJWTEngine(JWTMiddlewareConfig{Validator: svc})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(r, authRequest(http.MethodGet, "/api/v1/invoices", tt.header))

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			resp := decode(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}

func TestJWTAuth_OtherIssuerSecret(t *testing.T) {
	other := auth.NewJWTService(config.JWTConfig{
		Secret:                "another-secret-key-with-32-chars!!",
		Issuer:                "accounting-test",
		AccessTokenExpiration: time.Hour,
	})
	token, _ := issue(t, other)
	r := newJWTEngine(JWTMiddlewareConfig{Validator: newJWTService(time.Hour)})

	w := serve(r, authRequest(http.MethodGet, "/api/v1/invoices", BearerPrefix+token.Token))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_RevokedToken(t *testing.T) {
	svc := newJWTService(time.Hour)
	token, _ := issue(t, svc)
	claims, err := svc.Validate(token.Token)
	require.NoError(t, err)

	blacklist := auth.NewInMemoryTokenBlacklist()
	r := newJWTEngine(JWTMiddlewareConfig{Validator: svc, Blacklist: blacklist})

	w := serve(r, authRequest(http.MethodGet, "/api/v1/invoices", BearerPrefix+token.Token))
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, blacklist.Revoke(context.Background(), claims.ID, time.Hour))

	w = serve(r, authRequest(http.MethodGet, "/api/v1/invoices", BearerPrefix+token.Token))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "token has been revoked", decode(t, w).Message)
}

func TestJWTAuth_SkipPaths(t *testing.T) {
	r := newJWTEngine(JWTMiddlewareConfig{
		Validator: newJWTService(time.Hour),
		SkipPaths: []string{"/api/v1/auth/login"},
	})

	w := serve(r, authRequest(http.MethodPost, "/api/v1/auth/login", ""))
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, authRequest(http.MethodGet, "/api/v1/invoices", ""))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetJWTClaims_Absent(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Nil(t, GetJWTClaims(c))
	assert.Empty(t, GetJWTUserID(c))
}
