package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrReviewNotAllowed = errors.New("only the delivering volunteer may review a completed donation")
	ErrAlreadyReviewed  = errors.New("donation has already been reviewed")
)

// Review is insert-only feedback from the delivering volunteer. It
// references the donation by id, so two donations sharing a title can
// never misattribute feedback.
type Review struct {
	ID          uuid.UUID `json:"id" db:"id"`
	DonationID  uuid.UUID `json:"donation_id" db:"donation_id"`
	VolunteerID uuid.UUID `json:"volunteer_id" db:"volunteer_id"`
	Rating      int       `json:"rating" db:"rating"`
	Comment     *string   `json:"comment,omitempty" db:"comment"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type CreateReviewInput struct {
	Rating  int     `json:"rating" validate:"required,min=1,max=5"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}
