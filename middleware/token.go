package middleware

import (
	"log/slog"
	"strings"
	"time"

	"github.com/Ilhamsafeek/panvel-final-sub001/service"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// TokenKey is the gin context key holding the resolved upstream API token.
const TokenKey = "api_token"

// BearerToken resolves the caller's API token so every upstream call speaks a
// single mechanism. The Authorization bearer header is canonical; the named
// session cookie is accepted as a fallback for plain browser navigation.
// Tokens that carry an already-passed JWT expiry are dropped here instead of
// being forwarded upstream just to fail. No signature is verified: the portal
// only transports tokens, the upstream API owns authentication.
func BearerToken(cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""

		if header := c.GetHeader("Authorization"); header != "" {
			parts := strings.SplitN(header, " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				token = parts[1]
			}
		}

		if token == "" && cookieName != "" {
			if v, err := c.Cookie(cookieName); err == nil {
				token = v
			}
		}

		if token != "" && tokenExpired(token) {
			slog.Warn("dropping expired bearer token",
				"request_id", GetRequestID(c),
			)
			token = ""
		}

		c.Set(TokenKey, token)

		// Make the token visible to the upstream API client
		ctx := service.ContextWithToken(c.Request.Context(), token)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetToken returns the resolved API token, or empty when the caller is
// anonymous.
func GetToken(c *gin.Context) string {
	if token, exists := c.Get(TokenKey); exists {
		return token.(string)
	}
	return ""
}

// tokenExpired inspects JWT claims without verifying the signature. Opaque
// (non-JWT) tokens and tokens without an exp claim pass through untouched.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
