package audit

import (
	"context"

	"github.com/google/uuid"

	"github.com/sushil1817/mealbridge-api/internal/domain"
	"github.com/sushil1817/mealbridge-api/internal/repository"
)

type Service interface {
	GetRecentActivities(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.AuditLog], error)
	GetDonationTrail(ctx context.Context, donationID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.AuditLog], error)
}

type service struct {
	auditRepo repository.AuditLogRepository
}

func NewService(auditRepo repository.AuditLogRepository) Service {
	return &service{auditRepo: auditRepo}
}

func (s *service) GetRecentActivities(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.AuditLog], error) {
	logs, total, err := s.auditRepo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.AuditLog]{}, err
	}

	return domain.NewPaginatedResponse(logs, params.Page, params.PageSize, total), nil
}

func (s *service) GetDonationTrail(ctx context.Context, donationID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.AuditLog], error) {
	logs, total, err := s.auditRepo.ListByEntity(ctx, "DONATION", donationID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.AuditLog]{}, err
	}

	return domain.NewPaginatedResponse(logs, params.Page, params.PageSize, total), nil
}
