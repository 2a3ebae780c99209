package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/sushil1817/mealbridge-api/internal/middleware"
	"github.com/sushil1817/mealbridge-api/internal/service/report"
)

type ProfileHandler struct {
	reportService report.Service
}

func NewProfileHandler(reportService report.Service) *ProfileHandler {
	return &ProfileHandler{reportService: reportService}
}

func (h *ProfileHandler) GetStats(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	stats, err := h.reportService.GetStats(c.Context(), user)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}

func (h *ProfileHandler) GetCertificate(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	certificate, err := h.reportService.GetCertificate(c.Context(), user)
	if err != nil {
		if errors.Is(err, report.ErrCertificateLocked) {
			return middleware.Forbidden("Monthly delivery target not yet reached")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(certificate)
}
