package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestMiddleware_PreservesExistingId(t *testing.T) {
	app := fiber.New()
	app.Use(RequestMiddleware())
	app.Get("/ping", func(c *fiber.Ctx) error {
		assert.Equal(t, "req-42", c.Get("X-Request-Id"))
		return c.SendString("ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-Id", "req-42")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequestMiddleware_GeneratesId(t *testing.T) {
	app := fiber.New()
	app.Use(RequestMiddleware())
	app.Get("/ping", func(c *fiber.Ctx) error {
		_, err := uuid.Parse(c.Get("X-Request-Id"))
		assert.NoError(t, err)
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
