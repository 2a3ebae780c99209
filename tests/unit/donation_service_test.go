package unit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sushil1817/mealbridge-api/internal/domain"
	"github.com/sushil1817/mealbridge-api/internal/service/donation"
	"github.com/sushil1817/mealbridge-api/tests/mocks"
)

func newDonationService(donationRepo *mocks.DonationRepository, auditRepo *mocks.AuditLogRepository, mediaSvc *mocks.MediaService, feedSvc *mocks.FeedService) donation.Service {
	return donation.NewService(donationRepo, auditRepo, mediaSvc, feedSvc, nil)
}

func validInput() domain.CreateDonationInput {
	return domain.CreateDonationInput{
		Title:    "Cooked rice, 5 plates",
		Quantity: "5 plates",
		Location: "12 Gandhi Road",
		Phone:    "+91 98765 43210",
		Safety:   domain.SafetyChecklist{Covered: true, Fresh: true, TempSafe: true},
	}
}

func TestDonationService_Create(t *testing.T) {
	ctx := context.Background()
	donorID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.DonationRepository)
		mockAudit := new(mocks.AuditLogRepository)
		mockMedia := new(mocks.MediaService)
		mockFeed := new(mocks.FeedService)
		svc := newDonationService(mockRepo, mockAudit, mockMedia, mockFeed)

		mockRepo.On("Create", ctx, mock.MatchedBy(func(d *domain.Donation) bool {
			return d.Title == "Cooked rice, 5 plates" && d.DonorID == donorID && d.Status == domain.StatusAvailable
		})).Return(nil).Once()
		mockAudit.On("Create", ctx, mock.MatchedBy(func(log *domain.AuditLog) bool {
			return log.Action == "CREATE" && log.EntityType == "DONATION" && log.UserID == donorID
		})).Return(nil).Once()
		mockFeed.On("Publish", ctx, domain.EventDonationCreated, mock.Anything).Return().Once()

		created, err := svc.Create(ctx, donorID, validInput(), nil)

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, domain.StatusAvailable, created.Status)
		assert.Nil(t, created.VolunteerID)

		mockRepo.AssertExpectations(t)
		mockAudit.AssertExpectations(t)
		mockFeed.AssertExpectations(t)
	})

	t.Run("Incomplete Checklist Writes Nothing", func(t *testing.T) {
		mockRepo := new(mocks.DonationRepository)
		mockAudit := new(mocks.AuditLogRepository)
		mockMedia := new(mocks.MediaService)
		mockFeed := new(mocks.FeedService)
		svc := newDonationService(mockRepo, mockAudit, mockMedia, mockFeed)

		input := validInput()
		input.Safety.TempSafe = false

		created, err := svc.Create(ctx, donorID, input, nil)

		assert.ErrorIs(t, err, domain.ErrChecklistIncomplete)
		assert.Nil(t, created)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		mockMedia.AssertNotCalled(t, "UploadDonationImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("All Checklist Fields Required", func(t *testing.T) {
		mockRepo := new(mocks.DonationRepository)
		svc := newDonationService(mockRepo, new(mocks.AuditLogRepository), new(mocks.MediaService), new(mocks.FeedService))

		for _, safety := range []domain.SafetyChecklist{
			{Covered: false, Fresh: true, TempSafe: true},
			{Covered: true, Fresh: false, TempSafe: true},
			{Covered: true, Fresh: true, TempSafe: false},
			{},
		} {
			input := validInput()
			input.Safety = safety

			_, err := svc.Create(ctx, donorID, input, nil)
			assert.ErrorIs(t, err, domain.ErrChecklistIncomplete)
		}
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Image Upload Failure Aborts", func(t *testing.T) {
		mockRepo := new(mocks.DonationRepository)
		mockMedia := new(mocks.MediaService)
		svc := newDonationService(mockRepo, new(mocks.AuditLogRepository), mockMedia, new(mocks.FeedService))

		mockMedia.On("UploadDonationImage", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return("", errors.New("storage unavailable")).Once()

		created, err := svc.Create(ctx, donorID, validInput(), &donation.ImageUpload{FileSize: 1024, MimeType: "image/jpeg"})

		assert.Error(t, err)
		assert.Nil(t, created)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		mockMedia.AssertExpectations(t)
	})
}

func TestDonationService_Claim(t *testing.T) {
	ctx := context.Background()
	donationID := uuid.New()
	volunteerID := uuid.New()

	t.Run("Winner Gets The Donation", func(t *testing.T) {
		mockRepo := new(mocks.DonationRepository)
		mockAudit := new(mocks.AuditLogRepository)
		mockFeed := new(mocks.FeedService)
		svc := newDonationService(mockRepo, mockAudit, new(mocks.MediaService), mockFeed)

		now := time.Now()
		claimed := &domain.Donation{
			ID:          donationID,
			Status:      domain.StatusClaimed,
			VolunteerID: &volunteerID,
			ClaimedAt:   &now,
		}
		mockRepo.On("Claim", ctx, donationID, volunteerID).Return(claimed, nil).Once()
		mockAudit.On("Create", ctx, mock.MatchedBy(func(log *domain.AuditLog) bool {
			return log.Action == "CLAIM" && log.UserID == volunteerID
		})).Return(nil).Once()
		mockFeed.On("Publish", ctx, domain.EventDonationClaimed, mock.Anything).Return().Once()

		got, err := svc.Claim(ctx, donationID, volunteerID)

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusClaimed, got.Status)
		assert.Equal(t, volunteerID, *got.VolunteerID)
		assert.NotNil(t, got.ClaimedAt)

		mockRepo.AssertExpectations(t)
		mockAudit.AssertExpectations(t)
	})

	t.Run("Loser Gets Conflict", func(t *testing.T) {
		mockRepo := new(mocks.DonationRepository)
		svc := newDonationService(mockRepo, new(mocks.AuditLogRepository), new(mocks.MediaService), new(mocks.FeedService))

		otherVolunteer := uuid.New()
		mockRepo.On("Claim", ctx, donationID, volunteerID).Return(nil, nil).Once()
		mockRepo.On("GetByID", ctx, donationID).Return(&domain.Donation{
			ID:          donationID,
			Status:      domain.StatusClaimed,
			VolunteerID: &otherVolunteer,
		}, nil).Once()

		got, err := svc.Claim(ctx, donationID, volunteerID)

		assert.ErrorIs(t, err, domain.ErrClaimConflict)
		assert.Nil(t, got)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Double Tap By Winner Is Idempotent", func(t *testing.T) {
		mockRepo := new(mocks.DonationRepository)
		svc := newDonationService(mockRepo, new(mocks.AuditLogRepository), new(mocks.MediaService), new(mocks.FeedService))

		held := &domain.Donation{
			ID:          donationID,
			Status:      domain.StatusClaimed,
			VolunteerID: &volunteerID,
		}
		mockRepo.On("Claim", ctx, donationID, volunteerID).Return(nil, nil).Once()
		mockRepo.On("GetByID", ctx, donationID).Return(held, nil).Once()

		got, err := svc.Claim(ctx, donationID, volunteerID)

		assert.NoError(t, err)
		assert.Equal(t, held, got)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Completed Donation Conflicts", func(t *testing.T) {
		mockRepo := new(mocks.DonationRepository)
		svc := newDonationService(mockRepo, new(mocks.AuditLogRepository), new(mocks.MediaService), new(mocks.FeedService))

		otherVolunteer := uuid.New()
		mockRepo.On("Claim", ctx, donationID, volunteerID).Return(nil, nil).Once()
		mockRepo.On("GetByID", ctx, donationID).Return(&domain.Donation{
			ID:          donationID,
			Status:      domain.StatusCompleted,
			VolunteerID: &otherVolunteer,
		}, nil).Once()

		_, err := svc.Claim(ctx, donationID, volunteerID)

		assert.ErrorIs(t, err, domain.ErrClaimConflict)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockRepo := new(mocks.DonationRepository)
		svc := newDonationService(mockRepo, new(mocks.AuditLogRepository), new(mocks.MediaService), new(mocks.FeedService))

		mockRepo.On("Claim", ctx, donationID, volunteerID).Return(nil, nil).Once()
		mockRepo.On("GetByID", ctx, donationID).Return(nil, nil).Once()

		_, err := svc.Claim(ctx, donationID, volunteerID)

		assert.ErrorIs(t, err, domain.ErrDonationNotFound)
	})
}

func TestDonationService_Complete(t *testing.T) {
	ctx := context.Background()
	donationID := uuid.New()
	volunteerID := uuid.New()

	t.Run("Claimant Completes", func(t *testing.T) {
		mockRepo := new(mocks.DonationRepository)
		mockAudit := new(mocks.AuditLogRepository)
		mockFeed := new(mocks.FeedService)
		svc := newDonationService(mockRepo, mockAudit, new(mocks.MediaService), mockFeed)

		now := time.Now()
		completed := &domain.Donation{
			ID:          donationID,
			Status:      domain.StatusCompleted,
			VolunteerID: &volunteerID,
			DeliveredAt: &now,
		}
		mockRepo.On("Complete", ctx, donationID, volunteerID).Return(completed, nil).Once()
		mockAudit.On("Create", ctx, mock.MatchedBy(func(log *domain.AuditLog) bool {
			return log.Action == "COMPLETE"
		})).Return(nil).Once()
		mockFeed.On("Publish", ctx, domain.EventDonationCompleted, mock.Anything).Return().Once()

		got, err := svc.Complete(ctx, donationID, volunteerID)

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, got.Status)
		assert.NotNil(t, got.DeliveredAt)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Stranger Is Rejected", func(t *testing.T) {
		mockRepo := new(mocks.DonationRepository)
		svc := newDonationService(mockRepo, new(mocks.AuditLogRepository), new(mocks.MediaService), new(mocks.FeedService))

		claimant := uuid.New()
		stranger := uuid.New()
		mockRepo.On("Complete", ctx, donationID, stranger).Return(nil, nil).Once()
		mockRepo.On("GetByID", ctx, donationID).Return(&domain.Donation{
			ID:          donationID,
			Status:      domain.StatusClaimed,
			VolunteerID: &claimant,
		}, nil).Once()

		got, err := svc.Complete(ctx, donationID, stranger)

		assert.ErrorIs(t, err, domain.ErrNotClaimant)
		assert.Nil(t, got)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockRepo := new(mocks.DonationRepository)
		svc := newDonationService(mockRepo, new(mocks.AuditLogRepository), new(mocks.MediaService), new(mocks.FeedService))

		mockRepo.On("Complete", ctx, donationID, volunteerID).Return(nil, nil).Once()
		mockRepo.On("GetByID", ctx, donationID).Return(nil, nil).Once()

		_, err := svc.Complete(ctx, donationID, volunteerID)

		assert.ErrorIs(t, err, domain.ErrDonationNotFound)
	})
}

func TestDonationService_Release(t *testing.T) {
	ctx := context.Background()
	donationID := uuid.New()
	volunteerID := uuid.New()

	t.Run("Claimant Releases Back To Pool", func(t *testing.T) {
		mockRepo := new(mocks.DonationRepository)
		mockAudit := new(mocks.AuditLogRepository)
		mockFeed := new(mocks.FeedService)
		svc := newDonationService(mockRepo, mockAudit, new(mocks.MediaService), mockFeed)

		released := &domain.Donation{ID: donationID, Status: domain.StatusAvailable}
		mockRepo.On("Release", ctx, donationID, volunteerID).Return(released, nil).Once()
		mockAudit.On("Create", ctx, mock.MatchedBy(func(log *domain.AuditLog) bool {
			return log.Action == "RELEASE"
		})).Return(nil).Once()
		mockFeed.On("Publish", ctx, domain.EventDonationReleased, mock.Anything).Return().Once()

		got, err := svc.Release(ctx, donationID, volunteerID)

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusAvailable, got.Status)
		assert.Nil(t, got.VolunteerID)
		assert.Nil(t, got.ClaimedAt)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Stranger Is Rejected", func(t *testing.T) {
		mockRepo := new(mocks.DonationRepository)
		svc := newDonationService(mockRepo, new(mocks.AuditLogRepository), new(mocks.MediaService), new(mocks.FeedService))

		claimant := uuid.New()
		mockRepo.On("Release", ctx, donationID, volunteerID).Return(nil, nil).Once()
		mockRepo.On("GetByID", ctx, donationID).Return(&domain.Donation{
			ID:          donationID,
			Status:      domain.StatusClaimed,
			VolunteerID: &claimant,
		}, nil).Once()

		_, err := svc.Release(ctx, donationID, volunteerID)

		assert.ErrorIs(t, err, domain.ErrNotClaimant)
	})
}

func TestDonationService_ReleaseStale(t *testing.T) {
	ctx := context.Background()

	t.Run("Publishes Each Released Donation", func(t *testing.T) {
		mockRepo := new(mocks.DonationRepository)
		mockFeed := new(mocks.FeedService)
		svc := newDonationService(mockRepo, new(mocks.AuditLogRepository), new(mocks.MediaService), mockFeed)

		stale := []domain.Donation{
			{ID: uuid.New(), Status: domain.StatusAvailable},
			{ID: uuid.New(), Status: domain.StatusAvailable},
		}
		mockRepo.On("ReleaseStale", ctx, 24*time.Hour).Return(stale, nil).Once()
		mockFeed.On("Publish", ctx, domain.EventDonationReleased, mock.Anything).Return().Twice()

		released, err := svc.ReleaseStale(ctx, 24*time.Hour)

		assert.NoError(t, err)
		assert.Len(t, released, 2)
		mockFeed.AssertExpectations(t)
	})

	t.Run("Nothing Stale Publishes Nothing", func(t *testing.T) {
		mockRepo := new(mocks.DonationRepository)
		mockFeed := new(mocks.FeedService)
		svc := newDonationService(mockRepo, new(mocks.AuditLogRepository), new(mocks.MediaService), mockFeed)

		mockRepo.On("ReleaseStale", ctx, 24*time.Hour).Return([]domain.Donation{}, nil).Once()

		released, err := svc.ReleaseStale(ctx, 24*time.Hour)

		assert.NoError(t, err)
		assert.Empty(t, released)
		mockFeed.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDonationService_ListAvailable(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.DonationRepository)
		svc := newDonationService(mockRepo, new(mocks.AuditLogRepository), new(mocks.MediaService), new(mocks.FeedService))

		listing := []domain.Donation{{ID: uuid.New(), Status: domain.StatusAvailable}}
		mockRepo.On("ListAvailable", ctx).Return(listing, nil).Once()

		got, err := svc.ListAvailable(ctx)

		assert.NoError(t, err)
		assert.Equal(t, listing, got)
	})

	t.Run("Store Error Without Snapshot Propagates", func(t *testing.T) {
		mockRepo := new(mocks.DonationRepository)
		svc := newDonationService(mockRepo, new(mocks.AuditLogRepository), new(mocks.MediaService), new(mocks.FeedService))

		mockRepo.On("ListAvailable", ctx).Return(nil, errors.New("connection refused")).Once()

		got, err := svc.ListAvailable(ctx)

		assert.Error(t, err)
		assert.Nil(t, got)
	})
}

func TestDonationService_ListHistoryFor(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Volunteer Sees Deliveries", func(t *testing.T) {
		mockRepo := new(mocks.DonationRepository)
		svc := newDonationService(mockRepo, new(mocks.AuditLogRepository), new(mocks.MediaService), new(mocks.FeedService))

		delivered := []domain.Donation{{ID: uuid.New(), Status: domain.StatusCompleted}}
		mockRepo.On("ListDeliveredBy", ctx, userID).Return(delivered, nil).Once()

		got, err := svc.ListHistoryFor(ctx, userID, domain.RoleVolunteer)

		assert.NoError(t, err)
		assert.Equal(t, delivered, got)
		mockRepo.AssertNotCalled(t, "ListByDonor", mock.Anything, mock.Anything)
	})

	t.Run("Donor Sees Postings", func(t *testing.T) {
		mockRepo := new(mocks.DonationRepository)
		svc := newDonationService(mockRepo, new(mocks.AuditLogRepository), new(mocks.MediaService), new(mocks.FeedService))

		posted := []domain.Donation{{ID: uuid.New(), DonorID: userID}}
		mockRepo.On("ListByDonor", ctx, userID).Return(posted, nil).Once()

		got, err := svc.ListHistoryFor(ctx, userID, domain.RoleDonor)

		assert.NoError(t, err)
		assert.Equal(t, posted, got)
	})
}
