package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sushil1817/mealbridge-api/internal/domain"
	"github.com/sushil1817/mealbridge-api/internal/repository"
	"github.com/sushil1817/mealbridge-api/internal/service/email"
)

type Service interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)

	NotifyDonationClaimed(ctx context.Context, donation *domain.Donation, volunteerID uuid.UUID) error
	NotifyDonationDelivered(ctx context.Context, donation *domain.Donation, volunteerID uuid.UUID) error
	NotifyDonationReleased(ctx context.Context, donation *domain.Donation) error
	NotifyNewReview(ctx context.Context, donation *domain.Donation, review *domain.Review) error
}

type service struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	emailSvc  email.Service
}

func NewService(notifRepo repository.NotificationRepository, userRepo repository.UserRepository, emailSvc email.Service) Service {
	return &service{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		emailSvc:  emailSvc,
	}
}

func (s *service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, unreadOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}

	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *service) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.notifRepo.MarkAsRead(ctx, id)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifRepo.MarkAllAsRead(ctx, userID)
}

func (s *service) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

func (s *service) NotifyDonationClaimed(ctx context.Context, donation *domain.Donation, volunteerID uuid.UUID) error {
	volunteer, err := s.userRepo.GetByID(ctx, volunteerID)
	if err != nil {
		return fmt.Errorf("failed to get volunteer: %w", err)
	}
	if volunteer == nil {
		return nil
	}

	if err := s.createForDonor(ctx, donation, domain.NotifDonationClaimed,
		"Donation Claimed",
		fmt.Sprintf("%s will pick up %q", volunteer.FullName, donation.Title),
	); err != nil {
		return err
	}

	s.emailDonor(ctx, donation, func(donor *domain.User) error {
		return s.emailSvc.SendDonationClaimedEmail(context.Background(), donor.Email, donor.FullName, volunteer.FullName, donation.Title)
	})

	return nil
}

func (s *service) NotifyDonationDelivered(ctx context.Context, donation *domain.Donation, volunteerID uuid.UUID) error {
	volunteer, err := s.userRepo.GetByID(ctx, volunteerID)
	if err != nil {
		return fmt.Errorf("failed to get volunteer: %w", err)
	}
	if volunteer == nil {
		return nil
	}

	if err := s.createForDonor(ctx, donation, domain.NotifDonationDelivered,
		"Donation Delivered",
		fmt.Sprintf("%s delivered %q", volunteer.FullName, donation.Title),
	); err != nil {
		return err
	}

	s.emailDonor(ctx, donation, func(donor *domain.User) error {
		return s.emailSvc.SendDonationDeliveredEmail(context.Background(), donor.Email, donor.FullName, volunteer.FullName, donation.Title)
	})

	return nil
}

func (s *service) NotifyDonationReleased(ctx context.Context, donation *domain.Donation) error {
	return s.createForDonor(ctx, donation, domain.NotifDonationReleased,
		"Donation Back in the Pool",
		fmt.Sprintf("The pickup for %q was released; your donation is visible to volunteers again", donation.Title),
	)
}

func (s *service) NotifyNewReview(ctx context.Context, donation *domain.Donation, review *domain.Review) error {
	if err := s.createForDonor(ctx, donation, domain.NotifNewReview,
		"New Feedback",
		fmt.Sprintf("A volunteer rated %q %d/5", donation.Title, review.Rating),
	); err != nil {
		return err
	}

	s.emailDonor(ctx, donation, func(donor *domain.User) error {
		return s.emailSvc.SendNewReviewEmail(context.Background(), donor.Email, donor.FullName, donation.Title, review.Rating)
	})

	return nil
}

func (s *service) createForDonor(ctx context.Context, donation *domain.Donation, notifType domain.NotificationType, title, message string) error {
	data, _ := json.Marshal(map[string]string{
		"donation_id": donation.ID.String(),
	})

	notif := &domain.Notification{
		ID:      uuid.New(),
		UserID:  donation.DonorID,
		Type:    notifType,
		Title:   title,
		Message: message,
		Data:    json.RawMessage(data),
	}

	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (s *service) emailDonor(ctx context.Context, donation *domain.Donation, send func(donor *domain.User) error) {
	if s.emailSvc == nil {
		return
	}

	donor, err := s.userRepo.GetByID(ctx, donation.DonorID)
	if err != nil || donor == nil || donor.Email == "" {
		return
	}

	go func() {
		if err := send(donor); err != nil {
			log.Warn().Err(err).Str("donation_id", donation.ID.String()).Msg("failed to send donor email")
		}
	}()
}
