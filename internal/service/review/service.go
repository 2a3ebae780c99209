package review

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sushil1817/mealbridge-api/internal/domain"
	"github.com/sushil1817/mealbridge-api/internal/repository"
	"github.com/sushil1817/mealbridge-api/internal/service/notification"
)

type Service interface {
	Create(ctx context.Context, donationID uuid.UUID, volunteerID uuid.UUID, input domain.CreateReviewInput) (*domain.Review, error)
	ListByDonation(ctx context.Context, donationID uuid.UUID) ([]domain.Review, error)
	SetNotificationService(notifSvc notification.Service)
}

type service struct {
	reviewRepo   repository.ReviewRepository
	donationRepo repository.DonationRepository
	notifSvc     notification.Service
}

func NewService(reviewRepo repository.ReviewRepository, donationRepo repository.DonationRepository) Service {
	return &service{
		reviewRepo:   reviewRepo,
		donationRepo: donationRepo,
	}
}

func (s *service) SetNotificationService(notifSvc notification.Service) {
	s.notifSvc = notifSvc
}

func (s *service) Create(ctx context.Context, donationID uuid.UUID, volunteerID uuid.UUID, input domain.CreateReviewInput) (*domain.Review, error) {
	donation, err := s.donationRepo.GetByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if donation == nil {
		return nil, domain.ErrDonationNotFound
	}

	if donation.Status != domain.StatusCompleted || donation.VolunteerID == nil || *donation.VolunteerID != volunteerID {
		return nil, domain.ErrReviewNotAllowed
	}

	existing, err := s.reviewRepo.GetByDonationID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyReviewed
	}

	review := &domain.Review{
		ID:          uuid.New(),
		DonationID:  donationID,
		VolunteerID: volunteerID,
		Rating:      input.Rating,
		Comment:     input.Comment,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	if s.notifSvc != nil {
		notifSvc := s.notifSvc
		go func() {
			if err := notifSvc.NotifyNewReview(context.Background(), donation, review); err != nil {
				log.Warn().Err(err).Str("donation_id", donationID.String()).Msg("failed to notify donor of review")
			}
		}()
	}

	return review, nil
}

func (s *service) ListByDonation(ctx context.Context, donationID uuid.UUID) ([]domain.Review, error) {
	donation, err := s.donationRepo.GetByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if donation == nil {
		return nil, domain.ErrDonationNotFound
	}

	return s.reviewRepo.ListByDonation(ctx, donationID)
}
