package unit_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sushil1817/mealbridge-api/internal/domain"
	"github.com/sushil1817/mealbridge-api/internal/service/review"
	"github.com/sushil1817/mealbridge-api/tests/mocks"
)

func TestReviewService_Create(t *testing.T) {
	ctx := context.Background()
	donationID := uuid.New()
	volunteerID := uuid.New()

	completedBy := func(volunteer uuid.UUID) *domain.Donation {
		return &domain.Donation{
			ID:          donationID,
			Title:       "Cooked rice, 5 plates",
			Status:      domain.StatusCompleted,
			VolunteerID: &volunteer,
		}
	}
	input := domain.CreateReviewInput{Rating: 5, Comment: stringPtr("Smooth pickup")}

	t.Run("Delivering Volunteer Reviews Once", func(t *testing.T) {
		mockReviewRepo := new(mocks.ReviewRepository)
		mockDonationRepo := new(mocks.DonationRepository)
		svc := review.NewService(mockReviewRepo, mockDonationRepo)

		mockDonationRepo.On("GetByID", ctx, donationID).Return(completedBy(volunteerID), nil).Once()
		mockReviewRepo.On("GetByDonationID", ctx, donationID).Return(nil, nil).Once()
		mockReviewRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.Review) bool {
			return r.DonationID == donationID && r.VolunteerID == volunteerID && r.Rating == 5
		})).Return(nil).Once()

		created, err := svc.Create(ctx, donationID, volunteerID, input)

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, donationID, created.DonationID)

		mockReviewRepo.AssertExpectations(t)
		mockDonationRepo.AssertExpectations(t)
	})

	t.Run("Not Completed Yet", func(t *testing.T) {
		mockReviewRepo := new(mocks.ReviewRepository)
		mockDonationRepo := new(mocks.DonationRepository)
		svc := review.NewService(mockReviewRepo, mockDonationRepo)

		claimed := completedBy(volunteerID)
		claimed.Status = domain.StatusClaimed
		mockDonationRepo.On("GetByID", ctx, donationID).Return(claimed, nil).Once()

		created, err := svc.Create(ctx, donationID, volunteerID, input)

		assert.ErrorIs(t, err, domain.ErrReviewNotAllowed)
		assert.Nil(t, created)
		mockReviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Stranger May Not Review", func(t *testing.T) {
		mockReviewRepo := new(mocks.ReviewRepository)
		mockDonationRepo := new(mocks.DonationRepository)
		svc := review.NewService(mockReviewRepo, mockDonationRepo)

		mockDonationRepo.On("GetByID", ctx, donationID).Return(completedBy(uuid.New()), nil).Once()

		created, err := svc.Create(ctx, donationID, volunteerID, input)

		assert.ErrorIs(t, err, domain.ErrReviewNotAllowed)
		assert.Nil(t, created)
	})

	t.Run("Second Review Rejected", func(t *testing.T) {
		mockReviewRepo := new(mocks.ReviewRepository)
		mockDonationRepo := new(mocks.DonationRepository)
		svc := review.NewService(mockReviewRepo, mockDonationRepo)

		mockDonationRepo.On("GetByID", ctx, donationID).Return(completedBy(volunteerID), nil).Once()
		mockReviewRepo.On("GetByDonationID", ctx, donationID).Return(&domain.Review{
			ID:         uuid.New(),
			DonationID: donationID,
		}, nil).Once()

		created, err := svc.Create(ctx, donationID, volunteerID, input)

		assert.ErrorIs(t, err, domain.ErrAlreadyReviewed)
		assert.Nil(t, created)
		mockReviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Donation Not Found", func(t *testing.T) {
		mockReviewRepo := new(mocks.ReviewRepository)
		mockDonationRepo := new(mocks.DonationRepository)
		svc := review.NewService(mockReviewRepo, mockDonationRepo)

		mockDonationRepo.On("GetByID", ctx, donationID).Return(nil, nil).Once()

		created, err := svc.Create(ctx, donationID, volunteerID, input)

		assert.ErrorIs(t, err, domain.ErrDonationNotFound)
		assert.Nil(t, created)
	})
}

func TestReviewService_ListByDonation(t *testing.T) {
	ctx := context.Background()
	donationID := uuid.New()

	t.Run("Returns Reviews For The Donation", func(t *testing.T) {
		mockReviewRepo := new(mocks.ReviewRepository)
		mockDonationRepo := new(mocks.DonationRepository)
		svc := review.NewService(mockReviewRepo, mockDonationRepo)

		volunteerID := uuid.New()
		mockDonationRepo.On("GetByID", ctx, donationID).Return(&domain.Donation{
			ID:          donationID,
			Status:      domain.StatusCompleted,
			VolunteerID: &volunteerID,
		}, nil).Once()
		reviews := []domain.Review{{ID: uuid.New(), DonationID: donationID, Rating: 4}}
		mockReviewRepo.On("ListByDonation", ctx, donationID).Return(reviews, nil).Once()

		got, err := svc.ListByDonation(ctx, donationID)

		assert.NoError(t, err)
		assert.Equal(t, reviews, got)
	})

	t.Run("Unknown Donation", func(t *testing.T) {
		mockReviewRepo := new(mocks.ReviewRepository)
		mockDonationRepo := new(mocks.DonationRepository)
		svc := review.NewService(mockReviewRepo, mockDonationRepo)

		mockDonationRepo.On("GetByID", ctx, donationID).Return(nil, nil).Once()

		got, err := svc.ListByDonation(ctx, donationID)

		assert.ErrorIs(t, err, domain.ErrDonationNotFound)
		assert.Nil(t, got)
	})
}
