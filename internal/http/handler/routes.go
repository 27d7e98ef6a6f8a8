package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/RushikJoshi/GT-HRMS-sub000/internal/http/middleware"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/metrics"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/service"
)

// Dependencies are what the routes are built from.
type Dependencies struct {
	DB         *sql.DB
	Career     service.CareerService
	Normalized service.NormalizedService
	// Gatherer backs /metrics; nil skips the endpoint.
	Gatherer prometheus.Gatherer
	Recorder metrics.Recorder
	Logger   *zap.Logger
	// MaxPayloadMB is the payload guard threshold of authoring routes.
	MaxPayloadMB int
	// DebugErrors adds stack traces to publish failures.
	DebugErrors bool
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Dependencies) {
	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())
	if d.Gatherer != nil {
		app.Get("/metrics", Metrics(d.Gatherer))
	}

	career := app.Group("/career")

	// public reads are resolved from the path, not the tenant header
	career.Get("/public/:tenantId", GetPublicPage(d.Career))
	career.Get("/public/:tenantId/snapshot", GetPublishedSnapshot(d.Career))

	guard := middleware.PayloadGuard(d.MaxPayloadMB, d.Recorder, d.Logger)
	tenant := middleware.Tenant()

	career.Get("/customization", tenant, GetCustomization(d.Career))
	career.Post("/customization", tenant, guard, SaveCustomization(d.Career))
	career.Post("/publish", tenant, guard, PublishCareerPage(d.Career, d.DebugErrors))

	career.Put("/seo", tenant, SaveSEO(d.Normalized))
	career.Put("/sections", tenant, guard, SaveSections(d.Normalized))
	career.Get("/draft-data", tenant, GetDraftData(d.Normalized))
}

// HealthCheck godoc
// @Summary Readiness probe
// @Description Checks database connectivity.
// @Tags ops
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db == nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe godoc
// @Summary Liveness probe
// @Tags ops
// @Success 200
// @Router /healthz [get]
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// Metrics serves the Prometheus exposition of g.
func Metrics(g prometheus.Gatherer) fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
}
