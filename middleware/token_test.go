package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Ilhamsafeek/panvel-final-sub001/service"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func tokenRouter() (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)

	var seen string
	router := gin.New()
	router.Use(BearerToken("portal_token"))
	router.GET("/test", func(c *gin.Context) {
		seen = GetToken(c)
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return router, &seen
}

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return signed
}

func TestBearerTokenFromHeader(t *testing.T) {
	router, seen := tokenRouter()

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer opaque-token-123")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if *seen != "opaque-token-123" {
		t.Errorf("Expected token from header, got '%s'", *seen)
	}
}

func TestBearerTokenFromCookie(t *testing.T) {
	router, seen := tokenRouter()

	req := httptest.NewRequest("GET", "/test", nil)
	req.AddCookie(&http.Cookie{Name: "portal_token", Value: "cookie-token-456"})
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if *seen != "cookie-token-456" {
		t.Errorf("Expected token from cookie, got '%s'", *seen)
	}
}

func TestBearerTokenHeaderWinsOverCookie(t *testing.T) {
	router, seen := tokenRouter()

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer header-token")
	req.AddCookie(&http.Cookie{Name: "portal_token", Value: "cookie-token"})
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if *seen != "header-token" {
		t.Errorf("Expected header token to win, got '%s'", *seen)
	}
}

func TestBearerTokenMalformedHeader(t *testing.T) {
	router, seen := tokenRouter()

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if *seen != "" {
		t.Errorf("Expected empty token for non-bearer header, got '%s'", *seen)
	}
}

func TestBearerTokenExpiredJWTDropped(t *testing.T) {
	router, seen := tokenRouter()

	expired := signedToken(t, time.Now().Add(-time.Hour))
	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if *seen != "" {
		t.Errorf("Expected expired JWT to be dropped, got '%s'", *seen)
	}
}

func TestBearerTokenValidJWTKept(t *testing.T) {
	router, seen := tokenRouter()

	valid := signedToken(t, time.Now().Add(time.Hour))
	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+valid)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if *seen != valid {
		t.Error("Expected unexpired JWT to be kept")
	}
}

func TestBearerTokenPropagatesToRequestContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var fromCtx string
	router := gin.New()
	router.Use(BearerToken("portal_token"))
	router.GET("/test", func(c *gin.Context) {
		fromCtx = service.TokenFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer ctx-token")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if fromCtx != "ctx-token" {
		t.Errorf("Expected token in request context, got '%s'", fromCtx)
	}
}

func TestGetTokenEmpty(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if token := GetToken(c); token != "" {
		t.Errorf("Expected empty token, got '%s'", token)
	}
}
