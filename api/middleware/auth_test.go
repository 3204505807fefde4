// ABOUTME: Tests for the API key authentication middleware
// ABOUTME: Header and bearer token acceptance, rejection and the disabled mode

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func authRouter(authKey string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AuthMiddleware(authKey))
	router.GET("/probe", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func TestAuthMiddleware_DisabledWithoutKey(t *testing.T) {
	router := authRouter("")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/probe", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 with auth disabled", w.Code)
	}
}

func TestAuthMiddleware_RejectsMissingKey(t *testing.T) {
	router := authRouter("secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/probe", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddleware_AcceptsHeader(t *testing.T) {
	router := authRouter("secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set("X-API-Key", "secret")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 with X-API-Key", w.Code)
	}
}

func TestAuthMiddleware_AcceptsBearerToken(t *testing.T) {
	router := authRouter("secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set("Authorization", "Bearer secret")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 with bearer token", w.Code)
	}
}

func TestAuthMiddleware_AcceptsQueryParam(t *testing.T) {
	router := authRouter("secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/probe?api_key=secret", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 with api_key query", w.Code)
	}
}

func TestAuthMiddleware_RejectsWrongKey(t *testing.T) {
	router := authRouter("secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set("X-API-Key", "guess")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for wrong key", w.Code)
	}
}
