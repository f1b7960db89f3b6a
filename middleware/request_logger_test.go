package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))

	router := gin.New()
	router.Use(RequestID())
	router.Use(RequestLogger())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	router.GET("/bad", func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	t.Run("logs completed request", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest("GET", "/test?term=nda", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		out := buf.String()
		if !strings.Contains(out, "request completed") {
			t.Error("Expected request completion log")
		}
		if !strings.Contains(out, "path=/test") {
			t.Error("Expected path in log")
		}
		if !strings.Contains(out, "term=nda") {
			t.Error("Expected query in log")
		}
	})

	t.Run("4xx logs at warn", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest("GET", "/bad", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if !strings.Contains(buf.String(), "level=WARN") {
			t.Error("Expected warn level for 4xx response")
		}
	})

	t.Run("health probes are not logged", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest("GET", "/health", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if strings.Contains(buf.String(), "request completed") {
			t.Error("Expected /health to be skipped")
		}
	})
}
