package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-system/internal/dto"
	"fleet-system/pkg/constants"
)

func newMaintenanceEnv(t *testing.T) (*testEnv, MaintenanceServiceInterface) {
	t.Helper()
	env := newTestEnv()
	svc := NewMaintenanceService(env.plannedRepo, env.recordRepo, env.resolver, newTestLogger())
	return env, svc
}

func TestMaintenanceService_PlannedLifecycle(t *testing.T) {
	env, svc := newMaintenanceEnv(t)
	ctx := context.Background()
	equipmentID := env.addEquipment("Фронтальный погрузчик XCMG LW300", 700)

	// Запись в план переводит технику в MAINTENANCE_DUE.
	created, err := svc.CreatePlanned(ctx, dto.CreatePlannedMaintenanceDTO{
		EquipmentID:     equipmentID,
		MaintenanceType: "ТО-2",
		ScheduledDate:   time.Now().AddDate(0, 0, 14),
	})
	require.NoError(t, err)
	assert.Equal(t, constants.MaintenanceStatusPlanned, created.StatusCode)
	assert.Equal(t, constants.EquipmentStatusMaintenanceDue, env.equipmentRepo.statusOf(equipmentID))

	// Завершение ТО возвращает технику в строй.
	completed := constants.MaintenanceStatusCompleted
	require.NoError(t, svc.UpdatePlanned(ctx, created.ID, dto.UpdatePlannedMaintenanceDTO{
		StatusCode: &completed,
	}))
	assert.Equal(t, constants.EquipmentStatusActive, env.equipmentRepo.statusOf(equipmentID))
}

func TestMaintenanceService_DeleteRefreshesStatus(t *testing.T) {
	env, svc := newMaintenanceEnv(t)
	ctx := context.Background()
	equipmentID := env.addEquipment("Компрессор Atlas Copco", 220)

	created, err := svc.CreatePlanned(ctx, dto.CreatePlannedMaintenanceDTO{
		EquipmentID:     equipmentID,
		MaintenanceType: "ТО-1",
		ScheduledDate:   time.Now().AddDate(0, 1, 0),
	})
	require.NoError(t, err)
	require.Equal(t, constants.EquipmentStatusMaintenanceDue, env.equipmentRepo.statusOf(equipmentID))

	require.NoError(t, svc.DeletePlanned(ctx, created.ID))
	assert.Equal(t, constants.EquipmentStatusActive, env.equipmentRepo.statusOf(equipmentID))
}

func TestMaintenanceService_GetRecords(t *testing.T) {
	env, svc := newMaintenanceEnv(t)
	ctx := context.Background()
	equipmentID := env.addEquipment("Сваебой Junttan PM20", 1900)

	// Журнал пополняется через устранение поломки.
	reported, err := env.breakdowns.Report(ctx, dto.ReportBreakdownDTO{
		EquipmentID: equipmentID,
		Node:        "Молот",
		PartName:    "Амортизатор",
	})
	require.NoError(t, err)
	require.NoError(t, env.breakdowns.SetStatus(ctx, reported.ID, dto.SetBreakdownStatusDTO{
		StatusCode: constants.BreakdownStatusFixed,
	}))

	records, err := svc.GetRecords(ctx, equipmentID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Contains(t, records[0].Description, reported.ActNumber)
}
