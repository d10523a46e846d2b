package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const readinessTimeout = 2 * time.Second

type HealthHandler struct {
	sqlDB *sql.DB
	rdb   *redis.Client
}

func RegisterHealthRoutes(app fiber.Router, sqlDB *sql.DB, rdb *redis.Client) {
	h := &HealthHandler{sqlDB: sqlDB, rdb: rdb}
	app.Get("/livez", h.Livez)
	app.Get("/readyz", h.Readyz)
}

func (h *HealthHandler) Livez(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}

// Readyz pings both backing stores; either one down makes the instance
// not ready, since sends need the rate limiter and the message log.
func (h *HealthHandler) Readyz(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), readinessTimeout)
	defer cancel()

	checks := fiber.Map{
		"postgres": checkStatus(h.sqlDB.PingContext(ctx)),
		"redis":    checkStatus(h.rdb.Ping(ctx).Err()),
	}

	status := "ready"
	statusCode := fiber.StatusOK
	for _, v := range checks {
		if v == "down" {
			status = "not_ready"
			statusCode = fiber.StatusServiceUnavailable
			break
		}
	}

	return c.Status(statusCode).JSON(fiber.Map{
		"status": status,
		"checks": checks,
	})
}

func checkStatus(err error) string {
	if err != nil {
		return "down"
	}
	return "ok"
}
