package main

import (
	"context"
	"os"

	"github.com/go-co-op/gocron/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sushil1817/mealbridge-api/internal/config"
	"github.com/sushil1817/mealbridge-api/internal/handler"
	"github.com/sushil1817/mealbridge-api/internal/middleware"
	"github.com/sushil1817/mealbridge-api/internal/repository"
	"github.com/sushil1817/mealbridge-api/internal/service"
	"github.com/sushil1817/mealbridge-api/internal/service/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using environment variables")
	}

	cfg := config.Load()

	if cfg.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer redisClient.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("failed to connect to MinIO, image upload will not work")
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redisClient, minioClient, cfg)
	handlers := handler.NewHandlers(services)

	scheduler := startClaimSweeper(cfg, services)
	if scheduler != nil {
		defer func() { _ = scheduler.Shutdown() }()
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    10 << 20,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth)

	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

// startClaimSweeper periodically returns abandoned claims to the pool so
// a volunteer who walks away does not strand a posting forever.
func startClaimSweeper(cfg *config.Config, services *service.Services) gocron.Scheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Warn().Err(err).Msg("failed to create scheduler, stale claims will not be swept")
		return nil
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(cfg.SweepInterval),
		gocron.NewTask(func() {
			released, err := services.Donation.ReleaseStale(context.Background(), cfg.ClaimTTL)
			if err != nil {
				log.Error().Err(err).Msg("stale claim sweep failed")
				return
			}
			if len(released) > 0 {
				log.Info().Int("count", len(released)).Msg("released stale claims")
			}
		}),
	)
	if err != nil {
		log.Warn().Err(err).Msg("failed to schedule stale claim sweep")
		return nil
	}

	scheduler.Start()
	return scheduler
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	public := v1.Group("/public")
	public.Get("/stats", h.Public.GetStats)

	authGroup := v1.Group("/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)
	authGroup.Post("/forgot-password", h.Auth.ForgotPassword)
	authGroup.Post("/reset-password", h.Auth.ResetPassword)
	authGroup.Get("/verify-email", h.Auth.VerifyEmail)
	authGroup.Post("/resend-verification", h.Auth.ResendVerificationEmail)

	protected := v1.Group("", middleware.AuthRequired(authService))

	users := protected.Group("/users")
	users.Get("/me", h.Auth.GetMe)

	donations := protected.Group("/donations")
	donations.Post("/", h.Donation.Create)
	donations.Get("/available", h.Donation.ListAvailable)
	donations.Get("/active", h.Donation.ListActive)
	donations.Get("/history", h.Donation.ListHistory)
	donations.Get("/:donationId", h.Donation.Get)
	donations.Post("/:donationId/claim", h.Donation.Claim)
	donations.Post("/:donationId/complete", h.Donation.Complete)
	donations.Post("/:donationId/release", h.Donation.Release)
	donations.Post("/:donationId/reviews", h.Review.Create)
	donations.Get("/:donationId/reviews", h.Review.List)
	donations.Get("/:donationId/audit", h.Audit.GetDonationTrail)

	protected.Get("/feed", h.Feed.Stream)

	profile := protected.Group("/profile")
	profile.Get("/stats", h.Profile.GetStats)
	profile.Get("/certificate", h.Profile.GetCertificate)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)

	audit := protected.Group("/audit")
	audit.Get("/recent", h.Audit.GetRecentActivities)
}
