package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// requestObserver lo implementa *metrics.Prometheus.
type requestObserver interface {
	ObserveRequest(route, method string, status int, seconds float64)
}

// MetricsMiddleware registra ruta, método, código y latencia de cada petición.
// Usa el patrón de ruta (/api/invoices/:id) para no disparar la cardinalidad.
func MetricsMiddleware(obs requestObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		obs.ObserveRequest(c.Route().Path, c.Method(), status, time.Since(start).Seconds())
		return err
	}
}
