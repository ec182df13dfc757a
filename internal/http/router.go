package http

import (
	"time"

	"github.com/campaignhub/backend/internal/config"
	"github.com/campaignhub/backend/internal/http/handlers"
	"github.com/campaignhub/backend/internal/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	activityHandler *handlers.ActivityHandler,
	orgHandler *handlers.OrganizationHandler,
	campaignHandler *handlers.CampaignHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))

	// Meta (public, no auth required)
	metaHandler := handlers.NewMetaHandler()
	api.Get("/meta/activity", metaHandler.GetActivityMeta)

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))

	// Activity feed
	protected.Get("/activities", activityHandler.ListActivities)
	protected.Post("/activities", activityHandler.CreateActivity)
	protected.Get("/activities/stats", activityHandler.GetStats)

	// Organizations
	protected.Post("/organizations", orgHandler.CreateOrganization)
	protected.Get("/organizations", orgHandler.ListOrganizations)
	protected.Get("/organizations/:id", orgHandler.GetOrganization)
	protected.Put("/organizations/:id", orgHandler.UpdateOrganization)
	protected.Delete("/organizations/:id", orgHandler.DeleteOrganization)
	protected.Get("/organizations/:id/members", orgHandler.ListMembers)
	protected.Post("/organizations/:id/members", orgHandler.AddMember)
	protected.Delete("/organizations/:id/members/:userId", orgHandler.RemoveMember)

	// Campaigns
	protected.Post("/campaigns", campaignHandler.CreateCampaign)
	protected.Get("/campaigns", campaignHandler.ListCampaigns)
	protected.Get("/campaigns/:id", campaignHandler.GetCampaign)
	protected.Put("/campaigns/:id", campaignHandler.UpdateCampaign)
	protected.Delete("/campaigns/:id", campaignHandler.DeleteCampaign)

	// WebSocket (live activity feed)
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(wsHub.HandleWS))
}
