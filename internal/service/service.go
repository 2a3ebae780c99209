package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"github.com/sushil1817/mealbridge-api/internal/config"
	"github.com/sushil1817/mealbridge-api/internal/repository"
	"github.com/sushil1817/mealbridge-api/internal/service/audit"
	"github.com/sushil1817/mealbridge-api/internal/service/auth"
	"github.com/sushil1817/mealbridge-api/internal/service/donation"
	"github.com/sushil1817/mealbridge-api/internal/service/email"
	"github.com/sushil1817/mealbridge-api/internal/service/feed"
	"github.com/sushil1817/mealbridge-api/internal/service/media"
	"github.com/sushil1817/mealbridge-api/internal/service/notification"
	"github.com/sushil1817/mealbridge-api/internal/service/report"
	"github.com/sushil1817/mealbridge-api/internal/service/review"
)

type Services struct {
	Auth         auth.Service
	Audit        audit.Service
	Donation     donation.Service
	Feed         feed.Service
	Media        media.Service
	Review       review.Service
	Report       report.Service
	Notification notification.Service
	Email        email.Service
}

func NewServices(repos *repository.Repositories, redisClient *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	emailService := email.NewService(cfg)
	authService := auth.NewService(repos.User, repos.Session, emailService, cfg)
	mediaService := media.NewService(minioClient, cfg)
	feedService := feed.NewService(redisClient)
	notificationService := notification.NewService(repos.Notification, repos.User, emailService)

	donationService := donation.NewService(repos.Donation, repos.AuditLog, mediaService, feedService, redisClient)
	donationService.SetNotificationService(notificationService)

	reviewService := review.NewService(repos.Review, repos.Donation)
	reviewService.SetNotificationService(notificationService)

	reportService := report.NewService(repos.Donation)
	auditService := audit.NewService(repos.AuditLog)

	return &Services{
		Auth:         authService,
		Audit:        auditService,
		Donation:     donationService,
		Feed:         feedService,
		Media:        mediaService,
		Review:       reviewService,
		Report:       reportService,
		Notification: notificationService,
		Email:        emailService,
	}
}
