package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sushil1817/mealbridge-api/internal/domain"
)

type FeedService struct {
	mock.Mock
}

func (m *FeedService) Publish(ctx context.Context, eventType domain.DonationEventType, donation domain.Donation) {
	m.Called(ctx, eventType, donation)
}

func (m *FeedService) Subscribe(ctx context.Context) (<-chan domain.DonationEvent, func()) {
	args := m.Called(ctx)
	return args.Get(0).(<-chan domain.DonationEvent), args.Get(1).(func())
}
