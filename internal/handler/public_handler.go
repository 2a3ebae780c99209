package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sushil1817/mealbridge-api/internal/service/report"
)

// PublicHandler serves the unauthenticated landing-page counters.
type PublicHandler struct {
	reportService report.Service
}

func NewPublicHandler(reportService report.Service) *PublicHandler {
	return &PublicHandler{reportService: reportService}
}

func (h *PublicHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.reportService.GetPublicStats(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}
