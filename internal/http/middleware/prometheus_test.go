package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(m.Handler())
	app.Get("/api/manpower", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/metrics", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	t.Run("counts requests by method, path pattern, and status", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/manpower", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		count := testutil.ToFloat64(m.requestCount.WithLabelValues("GET", "/api/manpower", "200"))
		assert.Equal(t, float64(1), count)
	})

	t.Run("metrics endpoint itself is not counted", func(t *testing.T) {
		_, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
		require.NoError(t, err)

		count := testutil.ToFloat64(m.requestCount.WithLabelValues("GET", "/metrics", "200"))
		assert.Equal(t, float64(0), count)
	})

	t.Run("double registration fails", func(t *testing.T) {
		_, err := NewPrometheusMiddleware(reg)
		assert.Error(t, err)
	})
}
