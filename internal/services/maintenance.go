package services

import (
	"context"

	"go.uber.org/zap"

	"fleet-system/internal/dto"
	"fleet-system/internal/entities"
	"fleet-system/internal/repositories"
	"fleet-system/pkg/constants"
)

type MaintenanceServiceInterface interface {
	GetByEquipment(ctx context.Context, equipmentID uint64) ([]dto.PlannedMaintenanceDTO, error)
	CreatePlanned(ctx context.Context, data dto.CreatePlannedMaintenanceDTO) (*dto.PlannedMaintenanceDTO, error)
	UpdatePlanned(ctx context.Context, id uint64, data dto.UpdatePlannedMaintenanceDTO) error
	DeletePlanned(ctx context.Context, id uint64) error
	GetRecords(ctx context.Context, equipmentID uint64) ([]dto.MaintenanceRecordDTO, error)
}

// MaintenanceService обслуживает план ТО и журнал обслуживания. Любая запись
// в план меняет вход резолвера, поэтому после каждой мутации статус техники
// пересчитывается.
type MaintenanceService struct {
	plannedRepo    repositories.PlannedMaintenanceRepositoryInterface
	recordRepo     repositories.MaintenanceRecordRepositoryInterface
	statusResolver StatusResolverServiceInterface
	logger         *zap.Logger
}

func NewMaintenanceService(
	plannedRepo repositories.PlannedMaintenanceRepositoryInterface,
	recordRepo repositories.MaintenanceRecordRepositoryInterface,
	statusResolver StatusResolverServiceInterface,
	logger *zap.Logger,
) MaintenanceServiceInterface {
	return &MaintenanceService{
		plannedRepo:    plannedRepo,
		recordRepo:     recordRepo,
		statusResolver: statusResolver,
		logger:         logger,
	}
}

func (s *MaintenanceService) GetByEquipment(ctx context.Context, equipmentID uint64) ([]dto.PlannedMaintenanceDTO, error) {
	list, err := s.plannedRepo.GetByEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.PlannedMaintenanceDTO, 0, len(list))
	for _, pm := range list {
		result = append(result, plannedToDTO(pm))
	}
	return result, nil
}

func (s *MaintenanceService) CreatePlanned(ctx context.Context, data dto.CreatePlannedMaintenanceDTO) (*dto.PlannedMaintenanceDTO, error) {
	pm := entities.PlannedMaintenance{
		EquipmentID:     data.EquipmentID,
		MaintenanceType: data.MaintenanceType,
		ScheduledDate:   data.ScheduledDate,
		StatusCode:      constants.MaintenanceStatusPlanned,
	}

	newID, err := s.plannedRepo.Create(ctx, pm)
	if err != nil {
		s.logger.Error("ошибка при планировании ТО", zap.Error(err))
		return nil, err
	}
	pm.ID = newID

	if _, err := s.statusResolver.RefreshEquipmentStatus(ctx, pm.EquipmentID); err != nil {
		return nil, err
	}

	result := plannedToDTO(pm)
	return &result, nil
}

func (s *MaintenanceService) UpdatePlanned(ctx context.Context, id uint64, data dto.UpdatePlannedMaintenanceDTO) error {
	pm, err := s.plannedRepo.Find(ctx, id)
	if err != nil {
		return err
	}

	if data.MaintenanceType != nil {
		pm.MaintenanceType = *data.MaintenanceType
	}
	if data.ScheduledDate != nil {
		pm.ScheduledDate = *data.ScheduledDate
	}
	if data.StatusCode != nil {
		pm.StatusCode = *data.StatusCode
	}

	if err := s.plannedRepo.Update(ctx, id, *pm); err != nil {
		return err
	}

	_, err = s.statusResolver.RefreshEquipmentStatus(ctx, pm.EquipmentID)
	return err
}

func (s *MaintenanceService) DeletePlanned(ctx context.Context, id uint64) error {
	pm, err := s.plannedRepo.Find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.plannedRepo.Delete(ctx, id); err != nil {
		return err
	}

	_, err = s.statusResolver.RefreshEquipmentStatus(ctx, pm.EquipmentID)
	return err
}

func (s *MaintenanceService) GetRecords(ctx context.Context, equipmentID uint64) ([]dto.MaintenanceRecordDTO, error) {
	records, err := s.recordRepo.GetByEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.MaintenanceRecordDTO, 0, len(records))
	for _, rec := range records {
		result = append(result, dto.MaintenanceRecordDTO{
			ID:          rec.ID,
			EquipmentID: rec.EquipmentID,
			BreakdownID: rec.BreakdownID,
			Description: rec.Description,
			Resolution:  rec.Resolution,
			Hours:       rec.Hours,
			Mileage:     rec.Mileage,
			PerformedAt: rec.PerformedAt.Format("2006-01-02"),
		})
	}
	return result, nil
}

func plannedToDTO(pm entities.PlannedMaintenance) dto.PlannedMaintenanceDTO {
	return dto.PlannedMaintenanceDTO{
		ID:              pm.ID,
		EquipmentID:     pm.EquipmentID,
		MaintenanceType: pm.MaintenanceType,
		ScheduledDate:   pm.ScheduledDate.Format("2006-01-02"),
		StatusCode:      pm.StatusCode,
	}
}
