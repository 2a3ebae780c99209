package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrDonationNotFound    = errors.New("donation not found")
	ErrClaimConflict       = errors.New("donation already claimed by another volunteer")
	ErrNotClaimant         = errors.New("donation is not claimed by this volunteer")
	ErrChecklistIncomplete = errors.New("safety checklist must be fully affirmed")
)

// Donation is the central entity: one posting of surplus food, from
// creation by a donor through claim and delivery by a volunteer.
type Donation struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	Title       string         `json:"title" db:"title"`
	Quantity    string         `json:"quantity" db:"quantity"`
	Location    string         `json:"location" db:"location"`
	Phone       string         `json:"phone" db:"phone"`
	ImageURL    *string        `json:"image_url,omitempty" db:"image_url"`
	DonorID     uuid.UUID      `json:"donor_id" db:"donor_id"`
	VolunteerID *uuid.UUID     `json:"volunteer_id,omitempty" db:"volunteer_id"`
	Status      DonationStatus `json:"status" db:"status"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	ClaimedAt   *time.Time     `json:"claimed_at,omitempty" db:"claimed_at"`
	DeliveredAt *time.Time     `json:"delivered_at,omitempty" db:"delivered_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

type DonationStatus string

const (
	StatusAvailable DonationStatus = "available"
	StatusClaimed   DonationStatus = "claimed"
	StatusCompleted DonationStatus = "completed"
)

func (s DonationStatus) IsValid() bool {
	switch s {
	case StatusAvailable, StatusClaimed, StatusCompleted:
		return true
	}
	return false
}

// SafetyChecklist holds the three independent attestations a donor must
// affirm before a posting is accepted.
type SafetyChecklist struct {
	Covered  bool `json:"covered"`
	Fresh    bool `json:"fresh"`
	TempSafe bool `json:"temp_safe"`
}

func (c SafetyChecklist) Complete() bool {
	return c.Covered && c.Fresh && c.TempSafe
}

type CreateDonationInput struct {
	Title    string          `json:"title" form:"title" validate:"required,max=200"`
	Quantity string          `json:"quantity" form:"quantity" validate:"required,max=100"`
	Location string          `json:"location" form:"location" validate:"required,max=500"`
	Phone    string          `json:"phone" form:"phone" validate:"required,max=20"`
	Safety   SafetyChecklist `json:"safety"`
}

// DonationEventType labels lifecycle transitions on the feed channel.
type DonationEventType string

const (
	EventDonationCreated   DonationEventType = "created"
	EventDonationClaimed   DonationEventType = "claimed"
	EventDonationCompleted DonationEventType = "completed"
	EventDonationReleased  DonationEventType = "released"
)

type DonationEvent struct {
	Type     DonationEventType `json:"type"`
	Donation Donation          `json:"donation"`
}
