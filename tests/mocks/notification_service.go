package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/sushil1817/mealbridge-api/internal/domain"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	args := m.Called(ctx, userID, unreadOnly, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Notification]), args.Error(1)
}

func (m *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) NotifyDonationClaimed(ctx context.Context, donation *domain.Donation, volunteerID uuid.UUID) error {
	args := m.Called(ctx, donation, volunteerID)
	return args.Error(0)
}

func (m *NotificationService) NotifyDonationDelivered(ctx context.Context, donation *domain.Donation, volunteerID uuid.UUID) error {
	args := m.Called(ctx, donation, volunteerID)
	return args.Error(0)
}

func (m *NotificationService) NotifyDonationReleased(ctx context.Context, donation *domain.Donation) error {
	args := m.Called(ctx, donation)
	return args.Error(0)
}

func (m *NotificationService) NotifyNewReview(ctx context.Context, donation *domain.Donation, review *domain.Review) error {
	args := m.Called(ctx, donation, review)
	return args.Error(0)
}
