package handler

import (
	"github.com/go-playground/validator/v10"

	"github.com/sushil1817/mealbridge-api/internal/service"
)

var validate = validator.New()

type Handlers struct {
	Auth         *AuthHandler
	Donation     *DonationHandler
	Review       *ReviewHandler
	Profile      *ProfileHandler
	Feed         *FeedHandler
	Notification *NotificationHandler
	Audit        *AuditHandler
	Public       *PublicHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		Donation:     NewDonationHandler(services.Donation),
		Review:       NewReviewHandler(services.Review),
		Profile:      NewProfileHandler(services.Report),
		Feed:         NewFeedHandler(services.Feed),
		Notification: NewNotificationHandler(services.Notification),
		Audit:        NewAuditHandler(services.Audit),
		Public:       NewPublicHandler(services.Report),
	}
}
