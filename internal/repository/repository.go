package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User         UserRepository
	Donation     DonationRepository
	Review       ReviewRepository
	Notification NotificationRepository
	AuditLog     AuditLogRepository
	Session      SessionRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Donation:     NewDonationRepository(db),
		Review:       NewReviewRepository(db),
		Notification: NewNotificationRepository(db),
		AuditLog:     NewAuditLogRepository(db),
		Session:      NewSessionRepository(db),
	}
}
