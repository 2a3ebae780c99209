package report

import (
	"context"
	"errors"
	"time"

	"github.com/sushil1817/mealbridge-api/internal/domain"
	"github.com/sushil1817/mealbridge-api/internal/repository"
)

var ErrCertificateLocked = errors.New("monthly delivery target not yet reached")

type Service interface {
	GetStats(ctx context.Context, user *domain.User) (domain.ImpactStats, error)
	GetCertificate(ctx context.Context, user *domain.User) (*domain.Certificate, error)
	GetPublicStats(ctx context.Context) (domain.PublicStats, error)
}

type service struct {
	donationRepo repository.DonationRepository
}

func NewService(donationRepo repository.DonationRepository) Service {
	return &service{donationRepo: donationRepo}
}

func (s *service) GetStats(ctx context.Context, user *domain.User) (domain.ImpactStats, error) {
	donated, delivered, err := s.history(ctx, user)
	if err != nil {
		return domain.ImpactStats{}, err
	}
	return ComputeStats(donated, delivered, time.Now()), nil
}

func (s *service) GetCertificate(ctx context.Context, user *domain.User) (*domain.Certificate, error) {
	donated, delivered, err := s.history(ctx, user)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	stats := ComputeStats(donated, delivered, now)
	if !stats.CertificateUnlocked {
		return nil, ErrCertificateLocked
	}

	return &domain.Certificate{
		VolunteerName:  user.FullName,
		Month:          now.Format("January 2006"),
		DeliveredCount: stats.DeliveredThisMonth,
		IssuedAt:       now,
	}, nil
}

func (s *service) GetPublicStats(ctx context.Context) (domain.PublicStats, error) {
	posted, err := s.donationRepo.CountAll(ctx)
	if err != nil {
		return domain.PublicStats{}, err
	}

	delivered, err := s.donationRepo.CountByStatus(ctx, domain.StatusCompleted)
	if err != nil {
		return domain.PublicStats{}, err
	}

	return domain.PublicStats{
		DonationsPosted: posted,
		MealsDelivered:  delivered,
	}, nil
}

func (s *service) history(ctx context.Context, user *domain.User) (donated, delivered []domain.Donation, err error) {
	donated, err = s.donationRepo.ListByDonor(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	delivered, err = s.donationRepo.ListDeliveredBy(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	return donated, delivered, nil
}

// ComputeStats is a pure function over history snapshots; a user with no
// history gets zero counts, never an error.
func ComputeStats(donated, delivered []domain.Donation, now time.Time) domain.ImpactStats {
	monthly := 0
	for i := range delivered {
		deliveredAt := delivered[i].DeliveredAt
		if deliveredAt == nil {
			continue
		}
		if deliveredAt.Year() == now.Year() && deliveredAt.Month() == now.Month() {
			monthly++
		}
	}

	capped := monthly
	if capped > domain.MonthlyCertificateTarget {
		capped = domain.MonthlyCertificateTarget
	}

	return domain.ImpactStats{
		DonatedCount:        len(donated),
		DeliveredCount:      len(delivered),
		DeliveredThisMonth:  monthly,
		CertificateTarget:   domain.MonthlyCertificateTarget,
		ProgressPercent:     capped * 100 / domain.MonthlyCertificateTarget,
		CertificateUnlocked: monthly >= domain.MonthlyCertificateTarget,
	}
}
