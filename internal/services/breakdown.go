package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"fleet-system/internal/dto"
	"fleet-system/internal/entities"
	"fleet-system/internal/events"
	"fleet-system/internal/repositories"
	"fleet-system/pkg/constants"
	apperrors "fleet-system/pkg/errors"
	"fleet-system/pkg/eventbus"
	"fleet-system/pkg/types"
)

// BreakdownStatusUpdater - порт для односторонней синхронизации со стороны
// снабжения. Менеджер снабжения знает только этот интерфейс, а не весь сервис
// поломок, поэтому направление зависимости видно и легко подменяется в тестах.
type BreakdownStatusUpdater interface {
	SetStatusForProcurement(ctx context.Context, breakdownID uint64, statusCode string) error
}

type BreakdownServiceInterface interface {
	GetBreakdowns(ctx context.Context, filter types.Filter) ([]dto.BreakdownDTO, uint64, error)
	FindBreakdown(ctx context.Context, id uint64) (*dto.BreakdownDTO, error)
	Report(ctx context.Context, data dto.ReportBreakdownDTO) (*dto.BreakdownDTO, error)
	SetStatus(ctx context.Context, id uint64, data dto.SetBreakdownStatusDTO) error

	BreakdownStatusUpdater
}

type BreakdownService struct {
	breakdownRepo  repositories.BreakdownRepositoryInterface
	equipmentRepo  repositories.EquipmentRepositoryInterface
	recordRepo     repositories.MaintenanceRecordRepositoryInterface
	statusResolver StatusResolverServiceInterface
	policy         TransitionPolicy
	bus            *eventbus.Bus
	logger         *zap.Logger
}

func NewBreakdownService(
	breakdownRepo repositories.BreakdownRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	recordRepo repositories.MaintenanceRecordRepositoryInterface,
	statusResolver StatusResolverServiceInterface,
	policy TransitionPolicy,
	bus *eventbus.Bus,
	logger *zap.Logger,
) BreakdownServiceInterface {
	if policy == nil {
		policy = PermissiveTransitionPolicy
	}
	return &BreakdownService{
		breakdownRepo:  breakdownRepo,
		equipmentRepo:  equipmentRepo,
		recordRepo:     recordRepo,
		statusResolver: statusResolver,
		policy:         policy,
		bus:            bus,
		logger:         logger,
	}
}

// Report регистрирует новый акт о поломке: статус NEW, сквозной номер акта,
// уведомление и пересчёт статуса техники.
func (s *BreakdownService) Report(ctx context.Context, data dto.ReportBreakdownDTO) (*dto.BreakdownDTO, error) {
	if data.EquipmentID == 0 {
		return nil, apperrors.NewInvalidInputError("не указана техника")
	}
	if data.PartName == "" {
		return nil, apperrors.NewInvalidInputError("не указан узел/деталь")
	}

	severity := data.Severity
	if severity == "" {
		severity = constants.SeverityMedium
	}
	if !constants.IsValidSeverity(severity) {
		return nil, apperrors.NewInvalidInputError("неизвестная серьезность: %s", severity)
	}

	seq, err := s.breakdownRepo.NextActSequence(ctx)
	if err != nil {
		s.logger.Error("не удалось получить номер акта", zap.Error(err))
		return nil, err
	}

	dateOfBreakdown := time.Now()
	if data.DateOfBreakdown != nil {
		dateOfBreakdown = *data.DateOfBreakdown
	}

	breakdown := entities.Breakdown{
		ActNumber:          fmt.Sprintf("ACT-%03d", seq),
		EquipmentID:        data.EquipmentID,
		Node:               data.Node,
		PartName:           data.PartName,
		Description:        data.Description,
		Severity:           severity,
		StatusCode:         constants.BreakdownStatusNew,
		DateOfBreakdown:    dateOfBreakdown,
		HoursAtBreakdown:   data.HoursAtBreakdown,
		MileageAtBreakdown: data.MileageAtBreakdown,
		ReporterName:       data.ReporterName,
	}

	newID, err := s.breakdownRepo.CreateBreakdown(ctx, breakdown)
	if err != nil {
		s.logger.Error("ошибка при создании акта о поломке", zap.Error(err))
		return nil, err
	}
	breakdown.ID = newID

	s.logger.Info("Зарегистрирован акт о поломке",
		zap.String("act", breakdown.ActNumber),
		zap.Uint64("equipmentID", breakdown.EquipmentID),
		zap.String("severity", severity),
	)

	if s.bus != nil {
		s.bus.Publish(ctx, events.BreakdownReportedEvent{Breakdown: breakdown})
	}

	if _, err := s.statusResolver.RefreshEquipmentStatus(ctx, breakdown.EquipmentID); err != nil {
		return nil, err
	}

	result := breakdownToDTO(breakdown)
	return &result, nil
}

// SetStatus переписывает статус поломки. Для FIXED дополнительно штампуются
// дата устранения и показания счётчиков, и в журнал обслуживания дописывается
// ровно одна запись. После любой смены статуса пересчитывается статус техники -
// окна, в котором статус техники отражал бы устаревшие данные, нет.
func (s *BreakdownService) SetStatus(ctx context.Context, id uint64, data dto.SetBreakdownStatusDTO) error {
	breakdown, err := s.breakdownRepo.FindBreakdown(ctx, id)
	if err != nil {
		return err
	}

	oldStatus := breakdown.StatusCode
	if err := s.policy(oldStatus, data.StatusCode); err != nil {
		return err
	}

	breakdown.StatusCode = data.StatusCode
	if data.Notes != nil {
		breakdown.Notes = data.Notes
	}

	if data.StatusCode == constants.BreakdownStatusFixed {
		fixedDate := time.Now()
		if data.FixedDate != nil {
			fixedDate = *data.FixedDate
		}
		breakdown.FixedDate = &fixedDate
		breakdown.HoursAtFix = data.HoursAtFix
		breakdown.MileageAtFix = data.MileageAtFix
	}

	if err := s.breakdownRepo.UpdateBreakdown(ctx, id, *breakdown); err != nil {
		return err
	}

	if data.StatusCode == constants.BreakdownStatusFixed {
		if err := s.appendMaintenanceRecord(ctx, breakdown); err != nil {
			return err
		}
	}

	s.logger.Info("Статус акта изменен",
		zap.String("act", breakdown.ActNumber),
		zap.String("old", oldStatus),
		zap.String("new", data.StatusCode),
	)

	if s.bus != nil {
		s.bus.Publish(ctx, events.BreakdownStatusChangedEvent{
			Breakdown: *breakdown,
			OldStatus: oldStatus,
		})
	}

	if _, err := s.statusResolver.RefreshEquipmentStatus(ctx, breakdown.EquipmentID); err != nil {
		return err
	}
	return nil
}

// appendMaintenanceRecord пишет итог устранения в журнал обслуживания.
// Показания берутся в порядке: на момент устранения, на момент поломки,
// текущее показание техники.
func (s *BreakdownService) appendMaintenanceRecord(ctx context.Context, b *entities.Breakdown) error {
	var hours float64
	switch {
	case b.HoursAtFix != nil:
		hours = *b.HoursAtFix
	case b.HoursAtBreakdown != nil:
		hours = *b.HoursAtBreakdown
	default:
		equipment, err := s.equipmentRepo.FindEquipment(ctx, b.EquipmentID)
		if err != nil {
			if !errors.Is(err, apperrors.ErrEquipmentNotFound) {
				return err
			}
			// Техника могла быть удалена. Показание остаётся нулевым.
			s.logger.Warn("техника для акта не найдена, показания недоступны",
				zap.String("act", b.ActNumber))
		} else {
			hours = equipment.Hours
		}
	}

	var mileage *float64
	switch {
	case b.MileageAtFix != nil:
		mileage = b.MileageAtFix
	case b.MileageAtBreakdown != nil:
		mileage = b.MileageAtBreakdown
	}

	resolution := "Поломка устранена"
	if b.Notes != nil && *b.Notes != "" {
		resolution = *b.Notes
	}

	performedAt := time.Now()
	if b.FixedDate != nil {
		performedAt = *b.FixedDate
	}

	record := entities.MaintenanceRecord{
		EquipmentID: b.EquipmentID,
		BreakdownID: &b.ID,
		Description: fmt.Sprintf("%s: %s (%s)", b.Node, b.PartName, b.ActNumber),
		Resolution:  resolution,
		Hours:       hours,
		Mileage:     mileage,
		PerformedAt: performedAt,
	}

	if _, err := s.recordRepo.Create(ctx, record); err != nil {
		s.logger.Error("не удалось записать журнал обслуживания", zap.Error(err))
		return err
	}
	return nil
}

// SetStatusForProcurement - реализация порта BreakdownStatusUpdater.
// Снабжение ведёт поломку, обратного влияния нет.
func (s *BreakdownService) SetStatusForProcurement(ctx context.Context, breakdownID uint64, statusCode string) error {
	return s.SetStatus(ctx, breakdownID, dto.SetBreakdownStatusDTO{StatusCode: statusCode})
}

func (s *BreakdownService) GetBreakdowns(ctx context.Context, filter types.Filter) ([]dto.BreakdownDTO, uint64, error) {
	list, total, err := s.breakdownRepo.GetBreakdowns(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.BreakdownDTO, 0, len(list))
	for _, b := range list {
		result = append(result, breakdownToDTO(b))
	}
	return result, total, nil
}

func (s *BreakdownService) FindBreakdown(ctx context.Context, id uint64) (*dto.BreakdownDTO, error) {
	breakdown, err := s.breakdownRepo.FindBreakdown(ctx, id)
	if err != nil {
		return nil, err
	}
	result := breakdownToDTO(*breakdown)
	return &result, nil
}

func breakdownToDTO(b entities.Breakdown) dto.BreakdownDTO {
	result := dto.BreakdownDTO{
		ID:               b.ID,
		ActNumber:        b.ActNumber,
		EquipmentID:      b.EquipmentID,
		Node:             b.Node,
		PartName:         b.PartName,
		Description:      b.Description,
		Severity:         b.Severity,
		StatusCode:       b.StatusCode,
		DateOfBreakdown:  b.DateOfBreakdown.Format("2006-01-02"),
		HoursAtBreakdown: b.HoursAtBreakdown,
		HoursAtFix:       b.HoursAtFix,
		ReporterName:     b.ReporterName,
		CreatedAt:        b.CreatedAt.Format("2006-01-02, 15:04:05"),
	}
	if b.FixedDate != nil {
		fixed := b.FixedDate.Format("2006-01-02")
		result.FixedDate = &fixed
	}
	return result
}
