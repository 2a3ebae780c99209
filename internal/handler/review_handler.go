package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/sushil1817/mealbridge-api/internal/domain"
	"github.com/sushil1817/mealbridge-api/internal/middleware"
	"github.com/sushil1817/mealbridge-api/internal/service/review"
)

type ReviewHandler struct {
	reviewService review.Service
}

func NewReviewHandler(reviewService review.Service) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	donationID, err := parseDonationID(c)
	if err != nil {
		return err
	}
	userID := middleware.GetCurrentUserID(c)

	var input domain.CreateReviewInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return middleware.ValidationError(err.Error())
	}

	created, err := h.reviewService.Create(c.Context(), donationID, userID, input)
	if err != nil {
		if errors.Is(err, domain.ErrDonationNotFound) {
			return middleware.NotFound("Donation not found")
		}
		if errors.Is(err, domain.ErrReviewNotAllowed) {
			return middleware.Forbidden("Only the delivering volunteer may review a completed donation")
		}
		if errors.Is(err, domain.ErrAlreadyReviewed) {
			return middleware.Conflict("Donation has already been reviewed")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *ReviewHandler) List(c *fiber.Ctx) error {
	donationID, err := parseDonationID(c)
	if err != nil {
		return err
	}

	reviews, err := h.reviewService.ListByDonation(c.Context(), donationID)
	if err != nil {
		if errors.Is(err, domain.ErrDonationNotFound) {
			return middleware.NotFound("Donation not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"reviews": reviews})
}
