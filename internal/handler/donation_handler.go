package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/sushil1817/mealbridge-api/internal/domain"
	"github.com/sushil1817/mealbridge-api/internal/middleware"
	"github.com/sushil1817/mealbridge-api/internal/service/donation"
	"github.com/sushil1817/mealbridge-api/internal/service/media"
)

type DonationHandler struct {
	donationService donation.Service
}

func NewDonationHandler(donationService donation.Service) *DonationHandler {
	return &DonationHandler{donationService: donationService}
}

// Create accepts either JSON or multipart/form-data; the multipart form
// may carry an optional "image" file.
func (h *DonationHandler) Create(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	input, imageUpload, err := parseCreateDonation(c)
	if err != nil {
		return err
	}
	if imageUpload != nil {
		defer imageUpload.close()
	}

	if err := validate.Struct(input); err != nil {
		return middleware.ValidationError(err.Error())
	}

	var image *donation.ImageUpload
	if imageUpload != nil {
		image = &imageUpload.upload
	}

	created, err := h.donationService.Create(c.Context(), userID, input, image)
	if err != nil {
		if errors.Is(err, domain.ErrChecklistIncomplete) {
			return middleware.ValidationError("All safety checklist items must be affirmed")
		}
		if errors.Is(err, media.ErrImageTooLarge) || errors.Is(err, media.ErrUnsupportedImage) {
			return middleware.ValidationError(err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *DonationHandler) Get(c *fiber.Ctx) error {
	id, err := parseDonationID(c)
	if err != nil {
		return err
	}

	result, err := h.donationService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrDonationNotFound) {
			return middleware.NotFound("Donation not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *DonationHandler) ListAvailable(c *fiber.Ctx) error {
	donations, err := h.donationService.ListAvailable(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"donations": donations})
}

func (h *DonationHandler) ListActive(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	donations, err := h.donationService.ListActiveFor(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"donations": donations})
}

func (h *DonationHandler) ListHistory(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	donations, err := h.donationService.ListHistoryFor(c.Context(), user.ID, domain.UserRole(user.Role))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"donations": donations})
}

func (h *DonationHandler) Claim(c *fiber.Ctx) error {
	id, err := parseDonationID(c)
	if err != nil {
		return err
	}
	userID := middleware.GetCurrentUserID(c)

	claimed, err := h.donationService.Claim(c.Context(), id, userID)
	if err != nil {
		if errors.Is(err, domain.ErrDonationNotFound) {
			return middleware.NotFound("Donation not found")
		}
		if errors.Is(err, domain.ErrClaimConflict) {
			return middleware.Conflict("Donation was already claimed by another volunteer")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(claimed)
}

func (h *DonationHandler) Complete(c *fiber.Ctx) error {
	id, err := parseDonationID(c)
	if err != nil {
		return err
	}
	userID := middleware.GetCurrentUserID(c)

	completed, err := h.donationService.Complete(c.Context(), id, userID)
	if err != nil {
		if errors.Is(err, domain.ErrDonationNotFound) {
			return middleware.NotFound("Donation not found")
		}
		if errors.Is(err, domain.ErrNotClaimant) {
			return middleware.Forbidden("Donation is not claimed by you")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(completed)
}

func (h *DonationHandler) Release(c *fiber.Ctx) error {
	id, err := parseDonationID(c)
	if err != nil {
		return err
	}
	userID := middleware.GetCurrentUserID(c)

	released, err := h.donationService.Release(c.Context(), id, userID)
	if err != nil {
		if errors.Is(err, domain.ErrDonationNotFound) {
			return middleware.NotFound("Donation not found")
		}
		if errors.Is(err, domain.ErrNotClaimant) {
			return middleware.Forbidden("Donation is not claimed by you")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(released)
}

func parseDonationID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("donationId"))
	if err != nil {
		return uuid.Nil, middleware.BadRequest("Invalid donation id")
	}
	return id, nil
}

type closableImage struct {
	upload donation.ImageUpload
	close  func()
}

func parseCreateDonation(c *fiber.Ctx) (domain.CreateDonationInput, *closableImage, error) {
	var input domain.CreateDonationInput

	contentType := c.Get(fiber.HeaderContentType)
	if !strings.HasPrefix(contentType, fiber.MIMEMultipartForm) {
		if err := c.BodyParser(&input); err != nil {
			return input, nil, middleware.BadRequest("Invalid request body")
		}
		return input, nil, nil
	}

	input.Title = c.FormValue("title")
	input.Quantity = c.FormValue("quantity")
	input.Location = c.FormValue("location")
	input.Phone = c.FormValue("phone")
	input.Safety = domain.SafetyChecklist{
		Covered:  formBool(c, "covered"),
		Fresh:    formBool(c, "fresh"),
		TempSafe: formBool(c, "temp_safe"),
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		// No image attached; the field is optional.
		return input, nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return input, nil, middleware.BadRequest("Unable to read uploaded image")
	}

	return input, &closableImage{
		upload: donation.ImageUpload{
			FileSize: fileHeader.Size,
			MimeType: fileHeader.Header.Get("Content-Type"),
			Reader:   file,
		},
		close: func() { _ = file.Close() },
	}, nil
}

func formBool(c *fiber.Ctx, key string) bool {
	value, err := strconv.ParseBool(c.FormValue(key))
	return err == nil && value
}
