package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestDocsHandlerListsRegisteredRoutes(t *testing.T) {
	app := fiber.New()
	app.Post("/api/auth/login", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })
	app.Get("/api/v1/payments/pending", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })
	app.Get("/api/docs", docsHandler(app))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/docs", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Routes []struct {
			Method string `json:"method"`
			Path   string `json:"path"`
		} `json:"routes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	found := map[string]bool{}
	for _, route := range body.Routes {
		found[route.Method+" "+route.Path] = true
	}
	if !found["POST /api/auth/login"] || !found["GET /api/v1/payments/pending"] {
		t.Fatalf("expected registered routes in listing, got %+v", body.Routes)
	}
}
