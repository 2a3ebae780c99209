package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sushil1817/mealbridge-api/internal/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	GetByDonationID(ctx context.Context, donationID uuid.UUID) (*domain.Review, error)
	ListByDonation(ctx context.Context, donationID uuid.UUID) ([]domain.Review, error)
	ListByVolunteer(ctx context.Context, volunteerID uuid.UUID) ([]domain.Review, error)
}

type reviewRepository struct {
	db *sqlx.DB
}

func NewReviewRepository(db *sqlx.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (id, donation_id, volunteer_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		review.ID, review.DonationID, review.VolunteerID, review.Rating, review.Comment,
	).Scan(&review.CreatedAt)
}

func (r *reviewRepository) GetByDonationID(ctx context.Context, donationID uuid.UUID) (*domain.Review, error) {
	var review domain.Review
	query := `SELECT * FROM reviews WHERE donation_id = $1`

	err := r.db.GetContext(ctx, &review, query, donationID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByDonation(ctx context.Context, donationID uuid.UUID) ([]domain.Review, error) {
	var reviews []domain.Review
	query := `SELECT * FROM reviews WHERE donation_id = $1 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &reviews, query, donationID)
	return reviews, err
}

func (r *reviewRepository) ListByVolunteer(ctx context.Context, volunteerID uuid.UUID) ([]domain.Review, error) {
	var reviews []domain.Review
	query := `SELECT * FROM reviews WHERE volunteer_id = $1 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &reviews, query, volunteerID)
	return reviews, err
}
