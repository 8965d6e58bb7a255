package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/questboard/backend/internal/config"
	"github.com/questboard/backend/internal/http/handlers"
	"github.com/questboard/backend/internal/middleware"
	"go.uber.org/zap"
)

// campaignPrefixes are the mount points of the campaigns resource; /api is
// the path the web client has always used.
var campaignPrefixes = []string{"", "/api"}

// NewApp builds the fiber app with the JSON error handler every binary
// shares.
func NewApp(cfg *config.Config) *fiber.App {
	return fiber.New(fiber.Config{
		BodyLimit: cfg.BodyLimitBytes,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			msg := "internal error"
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				msg = e.Message
			}
			return c.Status(code).JSON(fiber.Map{
				"error":      msg,
				"request_id": middleware.GetRequestID(c),
			})
		},
	})
}

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rateLimiter fiber.Handler,
	campaignHandler *handlers.CampaignHandler,
	metaHandler *handlers.MetaHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID, Idempotency-Key",
		AllowMethods: "GET, HEAD, POST",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Meta
	app.Get("/meta/contract", metaHandler.GetContract)
	app.Get("/meta/task-template", metaHandler.GetTaskTemplate)

	// Campaigns
	for _, prefix := range campaignPrefixes {
		path := prefix + "/campaigns"
		if rateLimiter != nil {
			app.Post(path, rateLimiter)
		}
		app.Get(path, campaignHandler.ListCampaigns)
		app.Post(path, campaignHandler.CreateCampaign)
		app.All(path, campaignHandler.MethodNotAllowed)
	}

	// WebSocket
	if wsHub != nil {
		app.Use("/ws", handlers.WSUpgradeMiddleware())
		app.Get("/ws", websocket.New(wsHub.HandleWS))
	}
}
