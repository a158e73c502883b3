package services

import (
	"context"

	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/repositories"
)

type DashboardServiceInterface interface {
	GetDashboardStats(ctx context.Context) (*dto.DashboardStatsDTO, error)
}

type DashboardService struct {
	repo   repositories.DashboardRepositoryInterface
	logger *zap.Logger
}

func NewDashboardService(repo repositories.DashboardRepositoryInterface, logger *zap.Logger) *DashboardService {
	return &DashboardService{repo: repo, logger: logger}
}

// GetDashboardStats считается заново на каждый запрос, без кеша.
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	equipments, err := s.repo.CountEquipments(ctx)
	if err != nil {
		return nil, err
	}
	loans, err := s.repo.CountLoans(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardStatsDTO{
		TotalEquipments: equipments.Total,
		Available:       equipments.Available,
		Loaned:          equipments.Loaned,
		Maintenance:     equipments.Maintenance,
		ActiveLoans:     loans.Pending,
		OverdueLoans:    loans.Overdue,
	}, nil
}
