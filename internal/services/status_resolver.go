package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"fleet-system/internal/entities"
	"fleet-system/internal/repositories"
	"fleet-system/pkg/constants"
	apperrors "fleet-system/pkg/errors"
)

// ResolveEquipmentStatus вычисляет отображаемый статус техники из активных
// поломок и планового ТО. Функция чистая и тотальная: для техники без поломок
// и без ТО всегда возвращается ACTIVE, ошибок не бывает.
//
// Правила упорядочены по эксплуатационной серьёзности, срабатывает первое
// подходящее. Техника с критической поломкой никогда не показывается как
// "ожидает запчасти", даже если заявка на снабжение уже существует.
func ResolveEquipmentStatus(
	equipmentID uint64,
	breakdowns []entities.Breakdown,
	planned []entities.PlannedMaintenance,
	today time.Time,
) string {
	var active []entities.Breakdown
	for _, b := range breakdowns {
		if b.EquipmentID == equipmentID && constants.IsActiveBreakdownStatus(b.StatusCode) {
			active = append(active, b)
		}
	}

	for _, b := range active {
		if b.Severity == constants.SeverityCritical {
			return constants.EquipmentStatusInRepair
		}
	}

	for _, b := range active {
		if b.StatusCode == constants.BreakdownStatusInProgress {
			return constants.EquipmentStatusInRepair
		}
	}

	for _, b := range active {
		if b.StatusCode == constants.BreakdownStatusPartsOrdered || b.StatusCode == constants.BreakdownStatusPartsReceived {
			return constants.EquipmentStatusWaitingForParts
		}
	}

	for _, b := range active {
		if b.StatusCode == constants.BreakdownStatusNew &&
			(b.Severity == constants.SeverityLow || b.Severity == constants.SeverityMedium) {
			return constants.EquipmentStatusWithRestrictions
		}
	}

	// Просроченное и предстоящее ТО попадают в один статус MAINTENANCE_DUE;
	// различает их, если нужно, слой представления.
	for _, pm := range planned {
		if pm.EquipmentID == equipmentID && pm.StatusCode == constants.MaintenanceStatusPlanned {
			return constants.EquipmentStatusMaintenanceDue
		}
	}

	return constants.EquipmentStatusActive
}

// IsMaintenanceOverdue - сравнение только по дате, строго раньше сегодняшнего дня.
func IsMaintenanceOverdue(pm entities.PlannedMaintenance, today time.Time) bool {
	if pm.StatusCode != constants.MaintenanceStatusPlanned {
		return false
	}
	y, m, d := today.Date()
	todayDate := time.Date(y, m, d, 0, 0, 0, 0, today.Location())
	sy, sm, sd := pm.ScheduledDate.Date()
	scheduled := time.Date(sy, sm, sd, 0, 0, 0, 0, today.Location())
	return scheduled.Before(todayDate)
}

type StatusResolverServiceInterface interface {
	// RefreshEquipmentStatus пересчитывает и записывает статус техники.
	// Вызывается после каждой мутации, способной изменить ответ.
	RefreshEquipmentStatus(ctx context.Context, equipmentID uint64) (string, error)
}

type StatusResolverService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	breakdownRepo repositories.BreakdownRepositoryInterface
	plannedRepo   repositories.PlannedMaintenanceRepositoryInterface
	logger        *zap.Logger
}

func NewStatusResolverService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	breakdownRepo repositories.BreakdownRepositoryInterface,
	plannedRepo repositories.PlannedMaintenanceRepositoryInterface,
	logger *zap.Logger,
) StatusResolverServiceInterface {
	return &StatusResolverService{
		equipmentRepo: equipmentRepo,
		breakdownRepo: breakdownRepo,
		plannedRepo:   plannedRepo,
		logger:        logger,
	}
}

func (s *StatusResolverService) RefreshEquipmentStatus(ctx context.Context, equipmentID uint64) (string, error) {
	breakdowns, err := s.breakdownRepo.GetAllBreakdowns(ctx)
	if err != nil {
		s.logger.Error("резолвер: не удалось прочитать поломки", zap.Error(err))
		return "", err
	}

	planned, err := s.plannedRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("резолвер: не удалось прочитать плановое ТО", zap.Error(err))
		return "", err
	}

	statusCode := ResolveEquipmentStatus(equipmentID, breakdowns, planned, time.Now())

	if err := s.equipmentRepo.UpdateStatusCode(ctx, equipmentID, statusCode); err != nil {
		// Поломка может пережить удалённую технику. Это терпимо: статус
		// писать некуда, пересчёт не считается ошибкой.
		if errors.Is(err, apperrors.ErrEquipmentNotFound) {
			s.logger.Warn("резолвер: техника не найдена, статус не записан",
				zap.Uint64("equipmentID", equipmentID))
			return statusCode, nil
		}
		return "", err
	}

	s.logger.Debug("статус техники пересчитан",
		zap.Uint64("equipmentID", equipmentID),
		zap.String("status", statusCode),
	)
	return statusCode, nil
}
