package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sushil1817/mealbridge-api/internal/domain"
	"github.com/sushil1817/mealbridge-api/internal/middleware"
	"github.com/sushil1817/mealbridge-api/internal/service/audit"
)

type AuditHandler struct {
	auditService audit.Service
}

func NewAuditHandler(auditService audit.Service) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) GetRecentActivities(c *fiber.Ctx) error {
	params := domain.DefaultPagination()
	if err := c.QueryParser(&params); err != nil {
		return middleware.BadRequest("Invalid pagination parameters")
	}

	result, err := h.auditService.GetRecentActivities(c.Context(), params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AuditHandler) GetDonationTrail(c *fiber.Ctx) error {
	donationID, err := parseDonationID(c)
	if err != nil {
		return err
	}

	params := domain.DefaultPagination()
	if err := c.QueryParser(&params); err != nil {
		return middleware.BadRequest("Invalid pagination parameters")
	}

	result, err := h.auditService.GetDonationTrail(c.Context(), donationID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
