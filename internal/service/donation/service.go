package donation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/sushil1817/mealbridge-api/internal/domain"
	"github.com/sushil1817/mealbridge-api/internal/repository"
	"github.com/sushil1817/mealbridge-api/internal/service/feed"
	"github.com/sushil1817/mealbridge-api/internal/service/media"
	"github.com/sushil1817/mealbridge-api/internal/service/notification"
)

const (
	availableCacheKey = "donations:available"
	availableCacheTTL = 5 * time.Minute
)

// ImageUpload is the optional image attached to a new posting.
type ImageUpload struct {
	FileSize int64
	MimeType string
	Reader   io.Reader
}

type Service interface {
	Create(ctx context.Context, donorID uuid.UUID, input domain.CreateDonationInput, image *ImageUpload) (*domain.Donation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Donation, error)
	Claim(ctx context.Context, id uuid.UUID, volunteerID uuid.UUID) (*domain.Donation, error)
	Complete(ctx context.Context, id uuid.UUID, volunteerID uuid.UUID) (*domain.Donation, error)
	Release(ctx context.Context, id uuid.UUID, volunteerID uuid.UUID) (*domain.Donation, error)
	ReleaseStale(ctx context.Context, olderThan time.Duration) ([]domain.Donation, error)
	ListAvailable(ctx context.Context) ([]domain.Donation, error)
	ListActiveFor(ctx context.Context, volunteerID uuid.UUID) ([]domain.Donation, error)
	ListHistoryFor(ctx context.Context, userID uuid.UUID, role domain.UserRole) ([]domain.Donation, error)
	SetNotificationService(notifSvc notification.Service)
}

type service struct {
	donationRepo repository.DonationRepository
	auditRepo    repository.AuditLogRepository
	mediaSvc     media.Service
	feedSvc      feed.Service
	redis        *redis.Client
	notifSvc     notification.Service
}

func NewService(donationRepo repository.DonationRepository, auditRepo repository.AuditLogRepository, mediaSvc media.Service, feedSvc feed.Service, redisClient *redis.Client) Service {
	return &service{
		donationRepo: donationRepo,
		auditRepo:    auditRepo,
		mediaSvc:     mediaSvc,
		feedSvc:      feedSvc,
		redis:        redisClient,
	}
}

func (s *service) SetNotificationService(notifSvc notification.Service) {
	s.notifSvc = notifSvc
}

func (s *service) Create(ctx context.Context, donorID uuid.UUID, input domain.CreateDonationInput, image *ImageUpload) (*domain.Donation, error) {
	// The checklist gate runs before anything touches storage.
	if !input.Safety.Complete() {
		return nil, domain.ErrChecklistIncomplete
	}

	var imageURL *string
	if image != nil {
		url, err := s.mediaSvc.UploadDonationImage(ctx, image.FileSize, image.MimeType, image.Reader)
		if err != nil {
			return nil, fmt.Errorf("image upload failed: %w", err)
		}
		imageURL = &url
	}

	donation := &domain.Donation{
		ID:       uuid.New(),
		Title:    input.Title,
		Quantity: input.Quantity,
		Location: input.Location,
		Phone:    input.Phone,
		ImageURL: imageURL,
		DonorID:  donorID,
		Status:   domain.StatusAvailable,
	}

	if err := s.donationRepo.Create(ctx, donation); err != nil {
		return nil, err
	}

	_ = repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		UserID:     donorID,
		Action:     "CREATE",
		EntityType: "DONATION",
		EntityID:   donation.ID,
		NewValue:   donation,
	})

	s.invalidateAvailableCache(ctx)
	s.feedSvc.Publish(ctx, domain.EventDonationCreated, *donation)

	return donation, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Donation, error) {
	donation, err := s.donationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if donation == nil {
		return nil, domain.ErrDonationNotFound
	}
	return donation, nil
}

// Claim delegates the race to the store: the repository issues one
// conditional update, so out of any number of concurrent claimants
// exactly one gets the row back and the rest get a conflict.
func (s *service) Claim(ctx context.Context, id uuid.UUID, volunteerID uuid.UUID) (*domain.Donation, error) {
	donation, err := s.donationRepo.Claim(ctx, id, volunteerID)
	if err != nil {
		return nil, err
	}
	if donation == nil {
		current, err := s.donationRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, domain.ErrDonationNotFound
		}
		// Double-tap from the winner is not a conflict.
		if current.Status == domain.StatusClaimed && current.VolunteerID != nil && *current.VolunteerID == volunteerID {
			return current, nil
		}
		return nil, domain.ErrClaimConflict
	}

	_ = repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		UserID:     volunteerID,
		Action:     "CLAIM",
		EntityType: "DONATION",
		EntityID:   donation.ID,
		NewValue:   donation,
	})

	s.invalidateAvailableCache(ctx)
	s.feedSvc.Publish(ctx, domain.EventDonationClaimed, *donation)
	s.notifyAsync(func(notifSvc notification.Service) error {
		return notifSvc.NotifyDonationClaimed(context.Background(), donation, volunteerID)
	})

	return donation, nil
}

func (s *service) Complete(ctx context.Context, id uuid.UUID, volunteerID uuid.UUID) (*domain.Donation, error) {
	donation, err := s.donationRepo.Complete(ctx, id, volunteerID)
	if err != nil {
		return nil, err
	}
	if donation == nil {
		current, err := s.donationRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, domain.ErrDonationNotFound
		}
		return nil, domain.ErrNotClaimant
	}

	_ = repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		UserID:     volunteerID,
		Action:     "COMPLETE",
		EntityType: "DONATION",
		EntityID:   donation.ID,
		NewValue:   donation,
	})

	s.feedSvc.Publish(ctx, domain.EventDonationCompleted, *donation)
	s.notifyAsync(func(notifSvc notification.Service) error {
		return notifSvc.NotifyDonationDelivered(context.Background(), donation, volunteerID)
	})

	return donation, nil
}

func (s *service) Release(ctx context.Context, id uuid.UUID, volunteerID uuid.UUID) (*domain.Donation, error) {
	donation, err := s.donationRepo.Release(ctx, id, volunteerID)
	if err != nil {
		return nil, err
	}
	if donation == nil {
		current, err := s.donationRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, domain.ErrDonationNotFound
		}
		return nil, domain.ErrNotClaimant
	}

	_ = repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		UserID:     volunteerID,
		Action:     "RELEASE",
		EntityType: "DONATION",
		EntityID:   donation.ID,
		NewValue:   donation,
	})

	s.invalidateAvailableCache(ctx)
	s.feedSvc.Publish(ctx, domain.EventDonationReleased, *donation)
	s.notifyAsync(func(notifSvc notification.Service) error {
		return notifSvc.NotifyDonationReleased(context.Background(), donation)
	})

	return donation, nil
}

func (s *service) ReleaseStale(ctx context.Context, olderThan time.Duration) ([]domain.Donation, error) {
	released, err := s.donationRepo.ReleaseStale(ctx, olderThan)
	if err != nil {
		return nil, err
	}
	if len(released) == 0 {
		return released, nil
	}

	s.invalidateAvailableCache(ctx)
	for i := range released {
		s.feedSvc.Publish(ctx, domain.EventDonationReleased, released[i])
		donation := released[i]
		s.notifyAsync(func(notifSvc notification.Service) error {
			return notifSvc.NotifyDonationReleased(context.Background(), &donation)
		})
	}

	return released, nil
}

// ListAvailable serves the live listing. On a store failure it falls back
// to the last cached snapshot so the feed does not falsely read as empty.
func (s *service) ListAvailable(ctx context.Context) ([]domain.Donation, error) {
	donations, err := s.donationRepo.ListAvailable(ctx)
	if err != nil {
		if snapshot, ok := s.cachedAvailable(ctx); ok {
			log.Warn().Err(err).Msg("serving available donations from cache snapshot")
			return snapshot, nil
		}
		return nil, err
	}

	if s.redis != nil {
		if payload, err := json.Marshal(donations); err == nil {
			_ = s.redis.Set(ctx, availableCacheKey, payload, availableCacheTTL).Err()
		}
	}

	return donations, nil
}

func (s *service) ListActiveFor(ctx context.Context, volunteerID uuid.UUID) ([]domain.Donation, error) {
	return s.donationRepo.ListActiveFor(ctx, volunteerID)
}

func (s *service) ListHistoryFor(ctx context.Context, userID uuid.UUID, role domain.UserRole) ([]domain.Donation, error) {
	if role == domain.RoleVolunteer {
		return s.donationRepo.ListDeliveredBy(ctx, userID)
	}
	return s.donationRepo.ListByDonor(ctx, userID)
}

func (s *service) cachedAvailable(ctx context.Context) ([]domain.Donation, bool) {
	if s.redis == nil {
		return nil, false
	}

	payload, err := s.redis.Get(ctx, availableCacheKey).Bytes()
	if err != nil {
		return nil, false
	}

	var donations []domain.Donation
	if err := json.Unmarshal(payload, &donations); err != nil {
		return nil, false
	}
	return donations, true
}

func (s *service) invalidateAvailableCache(ctx context.Context) {
	if s.redis != nil {
		_ = s.redis.Del(ctx, availableCacheKey).Err()
	}
}

func (s *service) notifyAsync(notify func(notification.Service) error) {
	if s.notifSvc == nil {
		return
	}
	notifSvc := s.notifSvc
	go func() {
		if err := notify(notifSvc); err != nil {
			log.Warn().Err(err).Msg("failed to create donor notification")
		}
	}()
}
