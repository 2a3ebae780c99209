package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/sushil1817/mealbridge-api/internal/domain"
)

type DonationRepository struct {
	mock.Mock
}

func (m *DonationRepository) Create(ctx context.Context, donation *domain.Donation) error {
	args := m.Called(ctx, donation)
	return args.Error(0)
}

func (m *DonationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Donation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donation), args.Error(1)
}

func (m *DonationRepository) Claim(ctx context.Context, id uuid.UUID, volunteerID uuid.UUID) (*domain.Donation, error) {
	args := m.Called(ctx, id, volunteerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donation), args.Error(1)
}

func (m *DonationRepository) Complete(ctx context.Context, id uuid.UUID, volunteerID uuid.UUID) (*domain.Donation, error) {
	args := m.Called(ctx, id, volunteerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donation), args.Error(1)
}

func (m *DonationRepository) Release(ctx context.Context, id uuid.UUID, volunteerID uuid.UUID) (*domain.Donation, error) {
	args := m.Called(ctx, id, volunteerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donation), args.Error(1)
}

func (m *DonationRepository) ReleaseStale(ctx context.Context, olderThan time.Duration) ([]domain.Donation, error) {
	args := m.Called(ctx, olderThan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Donation), args.Error(1)
}

func (m *DonationRepository) ListAvailable(ctx context.Context) ([]domain.Donation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Donation), args.Error(1)
}

func (m *DonationRepository) ListActiveFor(ctx context.Context, volunteerID uuid.UUID) ([]domain.Donation, error) {
	args := m.Called(ctx, volunteerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Donation), args.Error(1)
}

func (m *DonationRepository) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]domain.Donation, error) {
	args := m.Called(ctx, donorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Donation), args.Error(1)
}

func (m *DonationRepository) ListDeliveredBy(ctx context.Context, volunteerID uuid.UUID) ([]domain.Donation, error) {
	args := m.Called(ctx, volunteerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Donation), args.Error(1)
}

func (m *DonationRepository) CountByStatus(ctx context.Context, status domain.DonationStatus) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

func (m *DonationRepository) CountAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
