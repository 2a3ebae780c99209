package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sushil1817/mealbridge-api/internal/domain"
)

type DonationRepository interface {
	Create(ctx context.Context, donation *domain.Donation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Donation, error)
	Claim(ctx context.Context, id uuid.UUID, volunteerID uuid.UUID) (*domain.Donation, error)
	Complete(ctx context.Context, id uuid.UUID, volunteerID uuid.UUID) (*domain.Donation, error)
	Release(ctx context.Context, id uuid.UUID, volunteerID uuid.UUID) (*domain.Donation, error)
	ReleaseStale(ctx context.Context, olderThan time.Duration) ([]domain.Donation, error)
	ListAvailable(ctx context.Context) ([]domain.Donation, error)
	ListActiveFor(ctx context.Context, volunteerID uuid.UUID) ([]domain.Donation, error)
	ListByDonor(ctx context.Context, donorID uuid.UUID) ([]domain.Donation, error)
	ListDeliveredBy(ctx context.Context, volunteerID uuid.UUID) ([]domain.Donation, error)
	CountByStatus(ctx context.Context, status domain.DonationStatus) (int, error)
	CountAll(ctx context.Context) (int, error)
}

type donationRepository struct {
	db *sqlx.DB
}

func NewDonationRepository(db *sqlx.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) Create(ctx context.Context, donation *domain.Donation) error {
	query := `
		INSERT INTO donations (id, title, quantity, location, phone, image_url, donor_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		donation.ID, donation.Title, donation.Quantity, donation.Location,
		donation.Phone, donation.ImageURL, donation.DonorID, donation.Status,
	).Scan(&donation.CreatedAt, &donation.UpdatedAt)
}

func (r *donationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Donation, error) {
	var donation domain.Donation
	query := `SELECT * FROM donations WHERE id = $1`

	err := r.db.GetContext(ctx, &donation, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &donation, nil
}

// Claim is a single conditional update: the status guard in the WHERE
// clause makes Postgres serialize racing claims, so at most one volunteer
// wins. Zero rows means the precondition no longer held; the caller
// decides between not-found and conflict.
func (r *donationRepository) Claim(ctx context.Context, id uuid.UUID, volunteerID uuid.UUID) (*domain.Donation, error) {
	var donation domain.Donation
	query := `
		UPDATE donations
		SET status = 'claimed', volunteer_id = $2, claimed_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'available'
		RETURNING *`

	err := r.db.GetContext(ctx, &donation, query, id, volunteerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *donationRepository) Complete(ctx context.Context, id uuid.UUID, volunteerID uuid.UUID) (*domain.Donation, error) {
	var donation domain.Donation
	query := `
		UPDATE donations
		SET status = 'completed', delivered_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'claimed' AND volunteer_id = $2
		RETURNING *`

	err := r.db.GetContext(ctx, &donation, query, id, volunteerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *donationRepository) Release(ctx context.Context, id uuid.UUID, volunteerID uuid.UUID) (*domain.Donation, error) {
	var donation domain.Donation
	query := `
		UPDATE donations
		SET status = 'available', volunteer_id = NULL, claimed_at = NULL, updated_at = NOW()
		WHERE id = $1 AND status = 'claimed' AND volunteer_id = $2
		RETURNING *`

	err := r.db.GetContext(ctx, &donation, query, id, volunteerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *donationRepository) ReleaseStale(ctx context.Context, olderThan time.Duration) ([]domain.Donation, error) {
	var donations []domain.Donation
	query := `
		UPDATE donations
		SET status = 'available', volunteer_id = NULL, claimed_at = NULL, updated_at = NOW()
		WHERE status = 'claimed' AND claimed_at < NOW() - $1::interval
		RETURNING *`

	err := r.db.SelectContext(ctx, &donations, query, olderThan.String())
	return donations, err
}

func (r *donationRepository) ListAvailable(ctx context.Context) ([]domain.Donation, error) {
	var donations []domain.Donation
	query := `SELECT * FROM donations WHERE status = 'available' ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &donations, query)
	return donations, err
}

func (r *donationRepository) ListActiveFor(ctx context.Context, volunteerID uuid.UUID) ([]domain.Donation, error) {
	var donations []domain.Donation
	query := `SELECT * FROM donations WHERE status = 'claimed' AND volunteer_id = $1 ORDER BY claimed_at DESC`

	err := r.db.SelectContext(ctx, &donations, query, volunteerID)
	return donations, err
}

func (r *donationRepository) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]domain.Donation, error) {
	var donations []domain.Donation
	query := `SELECT * FROM donations WHERE donor_id = $1 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &donations, query, donorID)
	return donations, err
}

func (r *donationRepository) ListDeliveredBy(ctx context.Context, volunteerID uuid.UUID) ([]domain.Donation, error) {
	var donations []domain.Donation
	query := `SELECT * FROM donations WHERE status = 'completed' AND volunteer_id = $1 ORDER BY delivered_at DESC`

	err := r.db.SelectContext(ctx, &donations, query, volunteerID)
	return donations, err
}

func (r *donationRepository) CountByStatus(ctx context.Context, status domain.DonationStatus) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM donations WHERE status = $1`
	err := r.db.GetContext(ctx, &count, query, status)
	return count, err
}

func (r *donationRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM donations`
	err := r.db.GetContext(ctx, &count, query)
	return count, err
}
