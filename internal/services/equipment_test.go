package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-system/internal/dto"
	"fleet-system/pkg/constants"
	apperrors "fleet-system/pkg/errors"
)

func newEquipmentEnv(t *testing.T) (*testEnv, EquipmentServiceInterface) {
	t.Helper()
	env := newTestEnv()
	svc := NewEquipmentService(env.equipmentRepo, env.resolver, newTestLogger())
	return env, svc
}

func TestEquipmentService_Create(t *testing.T) {
	env, svc := newEquipmentEnv(t)
	ctx := context.Background()

	created, err := svc.CreateEquipment(ctx, dto.CreateEquipmentDTO{
		Name:  "Экскаватор JCB JS220",
		Brand: "JCB",
		Model: "JS220",
		Hours: 120,
	})
	require.NoError(t, err)
	assert.Equal(t, constants.EquipmentStatusActive, created.StatusCode)
	assert.Equal(t, constants.EquipmentStatusActive, env.equipmentRepo.statusOf(created.ID))
}

func TestEquipmentService_UpdateDoesNotTouchStatus(t *testing.T) {
	// Паспортные правки не сбрасывают вычисленный статус.
	env, svc := newEquipmentEnv(t)
	ctx := context.Background()

	created, err := svc.CreateEquipment(ctx, dto.CreateEquipmentDTO{Name: "Каток Hamm 3411"})
	require.NoError(t, err)

	_, err = env.breakdowns.Report(ctx, dto.ReportBreakdownDTO{
		EquipmentID: created.ID,
		PartName:    "Вибровал",
		Severity:    constants.SeverityCritical,
	})
	require.NoError(t, err)
	require.Equal(t, constants.EquipmentStatusInRepair, env.equipmentRepo.statusOf(created.ID))

	newName := "Каток Hamm 3411 (аренда)"
	require.NoError(t, svc.UpdateEquipment(ctx, created.ID, dto.UpdateEquipmentDTO{Name: &newName}))

	stored, err := env.equipmentRepo.FindEquipment(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, newName, stored.Name)
	assert.Equal(t, constants.EquipmentStatusInRepair, stored.StatusCode)
}

func TestEquipmentService_UpdateCountersFeedsFallback(t *testing.T) {
	// Обновлённые моточасы попадают в журнал, когда в акте показаний нет.
	env, svc := newEquipmentEnv(t)
	ctx := context.Background()

	created, err := svc.CreateEquipment(ctx, dto.CreateEquipmentDTO{Name: "Бурильная установка", Hours: 100})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateCounters(ctx, created.ID, dto.UpdateCountersDTO{Hours: 250}))

	reported, err := env.breakdowns.Report(ctx, dto.ReportBreakdownDTO{EquipmentID: created.ID, PartName: "Шнек"})
	require.NoError(t, err)
	require.NoError(t, env.breakdowns.SetStatus(ctx, reported.ID, dto.SetBreakdownStatusDTO{
		StatusCode: constants.BreakdownStatusFixed,
	}))

	records := env.recordRepo.all()
	require.Len(t, records, 1)
	assert.Equal(t, 250.0, records[0].Hours)
}

func TestEquipmentService_Regulations(t *testing.T) {
	// Регламенты ТО хранятся вместе с техникой; nil в обновлении их не трогает,
	// непустой срез заменяет список целиком.
	_, svc := newEquipmentEnv(t)
	ctx := context.Background()

	created, err := svc.CreateEquipment(ctx, dto.CreateEquipmentDTO{
		Name: "Погрузчик Bobcat S650",
		Regulations: []dto.RegulationDTO{
			{Name: "ТО-1", IntervalHours: 250, Checklist: []string{"Замена масла", "Проверка фильтров"}},
		},
	})
	require.NoError(t, err)
	require.Len(t, created.Regulations, 1)
	assert.Equal(t, 250.0, created.Regulations[0].IntervalHours)

	// Правка имени без регламентов.
	newName := "Погрузчик Bobcat S650 (цех 2)"
	require.NoError(t, svc.UpdateEquipment(ctx, created.ID, dto.UpdateEquipmentDTO{Name: &newName}))

	found, err := svc.FindEquipment(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, found.Regulations, 1)
	assert.Equal(t, "ТО-1", found.Regulations[0].Name)

	// Замена списка.
	require.NoError(t, svc.UpdateEquipment(ctx, created.ID, dto.UpdateEquipmentDTO{
		Regulations: []dto.RegulationDTO{
			{Name: "ТО-1", IntervalHours: 250, Checklist: []string{"Замена масла"}},
			{Name: "ТО-2", IntervalHours: 500, Checklist: []string{"Диагностика гидравлики"}},
		},
	}))

	found, err = svc.FindEquipment(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, found.Regulations, 2)
	assert.Equal(t, "ТО-2", found.Regulations[1].Name)
}

func TestEquipmentService_NotFound(t *testing.T) {
	_, svc := newEquipmentEnv(t)
	ctx := context.Background()

	_, err := svc.FindEquipment(ctx, 404)
	assert.ErrorIs(t, err, apperrors.ErrEquipmentNotFound)

	err = svc.UpdateCounters(ctx, 404, dto.UpdateCountersDTO{Hours: 1})
	assert.ErrorIs(t, err, apperrors.ErrEquipmentNotFound)
}
