package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fleet-system/internal/dto"
	"fleet-system/internal/entities"
	"fleet-system/internal/events"
	"fleet-system/internal/repositories"
	"fleet-system/pkg/constants"
	apperrors "fleet-system/pkg/errors"
	"fleet-system/pkg/eventbus"
	"fleet-system/pkg/types"
	"fleet-system/pkg/utils"
)

type ProcurementServiceInterface interface {
	GetRequests(ctx context.Context, filter types.Filter) ([]dto.ProcurementDTO, uint64, error)
	FindRequest(ctx context.Context, id uint64) (*dto.ProcurementDTO, error)
	CreateRequest(ctx context.Context, data dto.CreateProcurementDTO) (*dto.ProcurementDTO, error)
	SetStatus(ctx context.Context, id uint64, data dto.SetProcurementStatusDTO) error
	UpdateRequest(ctx context.Context, id uint64, data dto.UpdateProcurementDTO) error
	GetHistory(ctx context.Context, id uint64) ([]dto.ProcurementStatusChangeDTO, error)
}

type ProcurementService struct {
	procurementRepo  repositories.ProcurementRepositoryInterface
	breakdownUpdater BreakdownStatusUpdater
	policy           TransitionPolicy
	bus              *eventbus.Bus
	logger           *zap.Logger
}

func NewProcurementService(
	procurementRepo repositories.ProcurementRepositoryInterface,
	breakdownUpdater BreakdownStatusUpdater,
	policy TransitionPolicy,
	bus *eventbus.Bus,
	logger *zap.Logger,
) ProcurementServiceInterface {
	if policy == nil {
		policy = PermissiveTransitionPolicy
	}
	return &ProcurementService{
		procurementRepo:  procurementRepo,
		breakdownUpdater: breakdownUpdater,
		policy:           policy,
		bus:              bus,
		logger:           logger,
	}
}

func (s *ProcurementService) CreateRequest(ctx context.Context, data dto.CreateProcurementDTO) (*dto.ProcurementDTO, error) {
	request := entities.ProcurementRequest{
		BreakdownID: data.BreakdownID,
		Title:       data.Title,
		StatusCode:  constants.ProcurementStatusNew,
		Cost:        data.Cost,
	}
	for _, item := range data.Items {
		request.Items = append(request.Items, entities.ProcurementItem{
			PartName: item.PartName,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	initial := entities.ProcurementStatusChange{
		StatusCode: constants.ProcurementStatusNew,
		Actor:      utils.ActorNameFromContext(ctx),
		TxID:       uuid.New(),
		ChangedAt:  time.Now(),
	}

	newID, err := s.procurementRepo.CreateRequest(ctx, request, initial)
	if err != nil {
		s.logger.Error("ошибка при создании заявки на снабжение", zap.Error(err))
		return nil, err
	}
	request.ID = newID

	s.logger.Info("Создана заявка на снабжение",
		zap.Uint64("id", newID),
		zap.Any("breakdownID", request.BreakdownID),
	)

	result := procurementToDTO(request)
	return &result, nil
}

// SetStatus переписывает статус заявки, дописывает журнал и, если заявка
// привязана к поломке, ведёт её статус за снабжением. Синхронизация строго
// односторонняя: редактирование поломки заявку не трогает.
func (s *ProcurementService) SetStatus(ctx context.Context, id uint64, data dto.SetProcurementStatusDTO) error {
	request, err := s.procurementRepo.FindRequest(ctx, id)
	if err != nil {
		return err
	}

	oldStatus := request.StatusCode
	if err := s.policy(oldStatus, data.StatusCode); err != nil {
		return err
	}

	var completedAt *time.Time
	if data.StatusCode == constants.ProcurementStatusWarehouse {
		now := time.Now()
		completedAt = &now
	}

	actor := utils.ActorNameFromContext(ctx)
	change := entities.ProcurementStatusChange{
		StatusCode: data.StatusCode,
		Actor:      actor,
		TxID:       uuid.New(),
		ChangedAt:  time.Now(),
	}

	if err := s.procurementRepo.UpdateStatus(ctx, id, data.StatusCode, completedAt, change); err != nil {
		return err
	}
	request.StatusCode = data.StatusCode
	request.CompletedAt = completedAt

	s.logger.Info("Статус заявки на снабжение изменен",
		zap.Uint64("id", id),
		zap.String("old", oldStatus),
		zap.String("new", data.StatusCode),
	)

	if request.BreakdownID != nil {
		mapped := constants.BreakdownStatusForProcurement(data.StatusCode)
		if mapped != "" {
			if err := s.breakdownUpdater.SetStatusForProcurement(ctx, *request.BreakdownID, mapped); err != nil {
				// Акт мог быть удалён или заявка осталась без поломки.
				// Снабжение при этом живёт своей жизнью.
				if errors.Is(err, apperrors.ErrBreakdownNotFound) {
					s.logger.Warn("связанный акт не найден, синхронизация пропущена",
						zap.Uint64("requestID", id),
						zap.Uint64("breakdownID", *request.BreakdownID),
					)
				} else {
					return err
				}
			}
		}
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.ProcurementStatusChangedEvent{
			Request:   *request,
			OldStatus: oldStatus,
			Actor:     actor,
		})
	}
	return nil
}

// UpdateRequest - свободное слияние полей без побочных эффектов для поломки.
// Кросс-синхронизацию запускает только SetStatus.
func (s *ProcurementService) UpdateRequest(ctx context.Context, id uint64, data dto.UpdateProcurementDTO) error {
	request, err := s.procurementRepo.FindRequest(ctx, id)
	if err != nil {
		return err
	}

	if data.Title.Valid {
		request.Title = data.Title.String
	}
	if data.Cost.Valid {
		request.Cost = data.Cost.Float64
	}
	if data.Items != nil {
		request.Items = request.Items[:0]
		for _, item := range data.Items {
			request.Items = append(request.Items, entities.ProcurementItem{
				PartName: item.PartName,
				Quantity: item.Quantity,
				Price:    item.Price,
			})
		}
	}

	return s.procurementRepo.UpdateFields(ctx, id, *request)
}

func (s *ProcurementService) GetRequests(ctx context.Context, filter types.Filter) ([]dto.ProcurementDTO, uint64, error) {
	list, total, err := s.procurementRepo.GetRequests(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.ProcurementDTO, 0, len(list))
	for _, req := range list {
		result = append(result, procurementToDTO(req))
	}
	return result, total, nil
}

func (s *ProcurementService) FindRequest(ctx context.Context, id uint64) (*dto.ProcurementDTO, error) {
	request, err := s.procurementRepo.FindRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	result := procurementToDTO(*request)
	return &result, nil
}

func (s *ProcurementService) GetHistory(ctx context.Context, id uint64) ([]dto.ProcurementStatusChangeDTO, error) {
	history, err := s.procurementRepo.GetHistory(ctx, id)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ProcurementStatusChangeDTO, 0, len(history))
	for _, change := range history {
		result = append(result, dto.ProcurementStatusChangeDTO{
			StatusCode: change.StatusCode,
			Actor:      change.Actor,
			ChangedAt:  change.ChangedAt.Format("2006-01-02, 15:04:05"),
		})
	}
	return result, nil
}

func procurementToDTO(req entities.ProcurementRequest) dto.ProcurementDTO {
	result := dto.ProcurementDTO{
		ID:          req.ID,
		BreakdownID: req.BreakdownID,
		Title:       req.Title,
		StatusCode:  req.StatusCode,
		Cost:        req.Cost,
		CreatedAt:   req.CreatedAt.Format("2006-01-02, 15:04:05"),
	}
	if req.CompletedAt != nil {
		completed := req.CompletedAt.Format("2006-01-02, 15:04:05")
		result.CompletedAt = &completed
	}
	for _, change := range req.History {
		result.History = append(result.History, dto.ProcurementStatusChangeDTO{
			StatusCode: change.StatusCode,
			Actor:      change.Actor,
			ChangedAt:  change.ChangedAt.Format("2006-01-02, 15:04:05"),
		})
	}
	return result
}
