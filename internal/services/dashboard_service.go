package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"fleet-system/internal/dto"
	"fleet-system/internal/repositories"
)

const dashboardCacheKey = "dashboard:fleet_summary"

type DashboardServiceInterface interface {
	GetSummary(ctx context.Context) (*dto.DashboardDTO, error)
}

type DashboardService struct {
	dashboardRepo repositories.DashboardRepositoryInterface
	cacheRepo     repositories.CacheRepositoryInterface
	cacheTTL      time.Duration
	logger        *zap.Logger
}

func NewDashboardService(
	dashboardRepo repositories.DashboardRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	cacheTTL time.Duration,
	logger *zap.Logger,
) DashboardServiceInterface {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		cacheRepo:     cacheRepo,
		cacheTTL:      cacheTTL,
		logger:        logger,
	}
}

func (s *DashboardService) GetSummary(ctx context.Context) (*dto.DashboardDTO, error) {
	if s.cacheRepo != nil {
		if cached, err := s.cacheRepo.Get(ctx, dashboardCacheKey); err == nil && cached != "" {
			var summary dto.DashboardDTO
			if err := json.Unmarshal([]byte(cached), &summary); err == nil {
				return &summary, nil
			}
			// Битый кеш просто пересчитываем.
			s.logger.Warn("не удалось разобрать кеш дашборда, пересчёт")
		}
	}

	byStatus, err := s.dashboardRepo.CountEquipmentByStatus(ctx)
	if err != nil {
		return nil, err
	}
	bySeverity, err := s.dashboardRepo.CountOpenBreakdownsBySeverity(ctx)
	if err != nil {
		return nil, err
	}
	openBreakdowns, err := s.dashboardRepo.CountOpenBreakdowns(ctx)
	if err != nil {
		return nil, err
	}
	overdue, err := s.dashboardRepo.CountOverduePlannedMaintenance(ctx)
	if err != nil {
		return nil, err
	}

	summary := &dto.DashboardDTO{
		EquipmentByStatus:    byStatus,
		BreakdownsBySeverity: bySeverity,
		OpenBreakdowns:       openBreakdowns,
		OverdueMaintenance:   overdue,
	}

	if s.cacheRepo != nil {
		if payload, err := json.Marshal(summary); err == nil {
			if err := s.cacheRepo.Set(ctx, dashboardCacheKey, string(payload), s.cacheTTL); err != nil {
				s.logger.Warn("не удалось записать кеш дашборда", zap.Error(err))
			}
		}
	}

	return summary, nil
}
