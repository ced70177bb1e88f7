package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthResponse es el estado reportado en /api/health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Health responde el health check del servicio. Siempre 200: el servicio
// degrada sirviendo tableros viejos o vacíos, no cayéndose.
func Health(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:    "ok",
		Message:   "stationboard operativo",
		Timestamp: time.Now(),
	})
}
