package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/Ilhamsafeek/panvel-final-sub001/config"
	"github.com/Ilhamsafeek/panvel-final-sub001/service"
	"github.com/Ilhamsafeek/panvel-final-sub001/view"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestClient(t *testing.T, upstream *httptest.Server) *service.Client {
	t.Helper()
	client, err := service.NewClient(&config.APIConfig{
		BaseURL:        upstream.URL,
		TimeoutSeconds: 5,
	})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return client
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	templates, err := view.Load()
	if err != nil {
		t.Fatalf("Failed to parse templates: %v", err)
	}
	router := gin.New()
	router.SetHTMLTemplate(templates)
	return router
}
