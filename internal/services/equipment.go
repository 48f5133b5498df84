package services

import (
	"context"

	"go.uber.org/zap"

	"fleet-system/internal/dto"
	"fleet-system/internal/entities"
	"fleet-system/internal/repositories"
	"fleet-system/pkg/constants"
	"fleet-system/pkg/types"
)

type EquipmentServiceInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error)
	CreateEquipment(ctx context.Context, data dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error)
	UpdateEquipment(ctx context.Context, id uint64, data dto.UpdateEquipmentDTO) error
	UpdateCounters(ctx context.Context, id uint64, data dto.UpdateCountersDTO) error
	DeleteEquipment(ctx context.Context, id uint64) error
}

type EquipmentService struct {
	equipmentRepo  repositories.EquipmentRepositoryInterface
	statusResolver StatusResolverServiceInterface
	logger         *zap.Logger
}

func NewEquipmentService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	statusResolver StatusResolverServiceInterface,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{
		equipmentRepo:  equipmentRepo,
		statusResolver: statusResolver,
		logger:         logger,
	}
}

func (s *EquipmentService) GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error) {
	list, total, err := s.equipmentRepo.GetEquipments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.EquipmentDTO, 0, len(list))
	for _, eq := range list {
		result = append(result, equipmentToDTO(eq))
	}
	return result, total, nil
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	eq, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	result := equipmentToDTO(*eq)
	return &result, nil
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, data dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	equipment := entities.Equipment{
		Name:    data.Name,
		Brand:   data.Brand,
		Model:   data.Model,
		VIN:     data.VIN,
		Hours:   data.Hours,
		Mileage: data.Mileage,
		// У новой техники нет ни поломок, ни ТО: резолвер вернёт ACTIVE.
		StatusCode:  constants.EquipmentStatusActive,
		Regulations: regulationsFromDTO(data.Regulations),
	}

	newID, err := s.equipmentRepo.CreateEquipment(ctx, equipment)
	if err != nil {
		s.logger.Error("Ошибка при создании техники", zap.Error(err))
		return nil, err
	}
	equipment.ID = newID

	// Статус всегда вычисленный, даже стартовый. Поломки могли пережить
	// прежнюю запись с тем же номером.
	if status, err := s.statusResolver.RefreshEquipmentStatus(ctx, newID); err == nil {
		equipment.StatusCode = status
	}

	s.logger.Info("Техника зарегистрирована", zap.Uint64("id", newID), zap.String("name", equipment.Name))

	result := equipmentToDTO(equipment)
	return &result, nil
}

// UpdateEquipment правит паспортные данные и счётчики. Поле статуса намеренно
// не принимается: его пишет только резолвер.
func (s *EquipmentService) UpdateEquipment(ctx context.Context, id uint64, data dto.UpdateEquipmentDTO) error {
	equipment, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return err
	}

	if data.Name != nil {
		equipment.Name = *data.Name
	}
	if data.Brand != nil {
		equipment.Brand = *data.Brand
	}
	if data.Model != nil {
		equipment.Model = *data.Model
	}
	if data.VIN != nil {
		equipment.VIN = *data.VIN
	}
	if data.Hours != nil {
		equipment.Hours = *data.Hours
	}
	if data.Mileage != nil {
		equipment.Mileage = data.Mileage
	}

	// nil - регламенты остаются как есть, непустой срез заменяет их целиком.
	equipment.Regulations = regulationsFromDTO(data.Regulations)

	return s.equipmentRepo.UpdateEquipment(ctx, id, *equipment)
}

// UpdateCounters переписывает показания счётчиков. Текущие моточасы -
// последний шаг цепочки подстановки показаний при закрытии акта.
func (s *EquipmentService) UpdateCounters(ctx context.Context, id uint64, data dto.UpdateCountersDTO) error {
	if err := s.equipmentRepo.UpdateCounters(ctx, id, data.Hours, data.Mileage); err != nil {
		return err
	}
	s.logger.Info("Показания счётчиков обновлены",
		zap.Uint64("id", id),
		zap.Float64("hours", data.Hours),
	)
	return nil
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, id uint64) error {
	// Акты и заявки на удалённую технику не чистятся: журнал важнее
	// ссылочной целостности, осиротевшие ссылки терпимы.
	return s.equipmentRepo.DeleteEquipment(ctx, id)
}

func regulationsFromDTO(regs []dto.RegulationDTO) []entities.MaintenanceRegulation {
	if regs == nil {
		return nil
	}
	result := make([]entities.MaintenanceRegulation, 0, len(regs))
	for _, reg := range regs {
		result = append(result, entities.MaintenanceRegulation{
			Name:          reg.Name,
			IntervalHours: reg.IntervalHours,
			Checklist:     reg.Checklist,
		})
	}
	return result
}

func equipmentToDTO(eq entities.Equipment) dto.EquipmentDTO {
	var regs []dto.RegulationDTO
	for _, reg := range eq.Regulations {
		regs = append(regs, dto.RegulationDTO{
			Name:          reg.Name,
			IntervalHours: reg.IntervalHours,
			Checklist:     reg.Checklist,
		})
	}

	return dto.EquipmentDTO{
		ID:          eq.ID,
		Name:        eq.Name,
		Brand:       eq.Brand,
		Model:       eq.Model,
		VIN:         eq.VIN,
		Hours:       eq.Hours,
		Mileage:     eq.Mileage,
		StatusCode:  eq.StatusCode,
		Regulations: regs,
		CreatedAt:   eq.CreatedAt.Format("2006-01-02, 15:04:05"),
		UpdatedAt:   eq.UpdatedAt.Format("2006-01-02, 15:04:05"),
	}
}
