package services

import (
	"context"
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-system/internal/dto"
	"fleet-system/pkg/constants"
	"fleet-system/pkg/contextkeys"
	apperrors "fleet-system/pkg/errors"
)

func reportBreakdown(t *testing.T, env *testEnv, equipmentID uint64) *dto.BreakdownDTO {
	t.Helper()
	reported, err := env.breakdowns.Report(context.Background(), dto.ReportBreakdownDTO{
		EquipmentID: equipmentID,
		Node:        "Гидравлика",
		PartName:    "Насос НШ-100",
	})
	require.NoError(t, err)
	return reported
}

func TestProcurementService_CreateRequest(t *testing.T) {
	env := newTestEnv()
	ctx := context.WithValue(context.Background(), contextkeys.ActorNameKey, "Снабженец Т.")

	result, err := env.procurement.CreateRequest(ctx, dto.CreateProcurementDTO{
		Title: "Насос НШ-100 и комплект прокладок",
		Cost:  18500,
		Items: []dto.CreateProcurementItemDTO{
			{PartName: "Насос НШ-100", Quantity: 1, Price: 17000},
			{PartName: "Прокладка", Quantity: 10, Price: 150},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, constants.ProcurementStatusNew, result.StatusCode)

	// Создание сразу оставляет первую запись в журнале статусов.
	history, err := env.procurement.GetHistory(ctx, result.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, constants.ProcurementStatusNew, history[0].StatusCode)
	assert.Equal(t, "Снабженец Т.", history[0].Actor)
}

func TestProcurementService_SetStatus_SyncsBreakdown(t *testing.T) {
	// Снабжение ведёт связанную поломку: PAID/IN_TRANSIT -> PARTS_ORDERED,
	// WAREHOUSE -> PARTS_RECEIVED, NEW/SOURCING -> NEW.
	testCases := []struct {
		procurementStatus string
		wantBreakdown     string
		wantEquipment     string
	}{
		{constants.ProcurementStatusSourcing, constants.BreakdownStatusNew, constants.EquipmentStatusWithRestrictions},
		{constants.ProcurementStatusPaid, constants.BreakdownStatusPartsOrdered, constants.EquipmentStatusWaitingForParts},
		{constants.ProcurementStatusInTransit, constants.BreakdownStatusPartsOrdered, constants.EquipmentStatusWaitingForParts},
		{constants.ProcurementStatusWarehouse, constants.BreakdownStatusPartsReceived, constants.EquipmentStatusWaitingForParts},
	}

	for _, tc := range testCases {
		t.Run(tc.procurementStatus, func(t *testing.T) {
			env := newTestEnv()
			ctx := context.Background()
			equipmentID := env.addEquipment("Экскаватор Hitachi ZX200", 4100)
			breakdown := reportBreakdown(t, env, equipmentID)

			created, err := env.procurement.CreateRequest(ctx, dto.CreateProcurementDTO{
				BreakdownID: &breakdown.ID,
				Title:       "Запчасти по акту " + breakdown.ActNumber,
			})
			require.NoError(t, err)

			err = env.procurement.SetStatus(ctx, created.ID, dto.SetProcurementStatusDTO{
				StatusCode: tc.procurementStatus,
			})
			require.NoError(t, err)

			stored, err := env.breakdownRepo.FindBreakdown(ctx, breakdown.ID)
			require.NoError(t, err)
			assert.Equal(t, tc.wantBreakdown, stored.StatusCode)
			assert.Equal(t, tc.wantEquipment, env.equipmentRepo.statusOf(equipmentID))
		})
	}
}

func TestProcurementService_SetStatus_CompletedAtOnWarehouse(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.procurement.CreateRequest(ctx, dto.CreateProcurementDTO{Title: "Фильтры"})
	require.NoError(t, err)

	require.NoError(t, env.procurement.SetStatus(ctx, created.ID, dto.SetProcurementStatusDTO{
		StatusCode: constants.ProcurementStatusPaid,
	}))
	midway, err := env.procurementRepo.FindRequest(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, midway.CompletedAt, "до склада дата завершения не ставится")

	require.NoError(t, env.procurement.SetStatus(ctx, created.ID, dto.SetProcurementStatusDTO{
		StatusCode: constants.ProcurementStatusWarehouse,
	}))
	done, err := env.procurementRepo.FindRequest(ctx, created.ID)
	require.NoError(t, err)
	assert.NotNil(t, done.CompletedAt)
}

func TestProcurementService_SetStatus_HistoryAccumulates(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.procurement.CreateRequest(ctx, dto.CreateProcurementDTO{Title: "Ремкомплект"})
	require.NoError(t, err)

	for _, status := range []string{
		constants.ProcurementStatusSourcing,
		constants.ProcurementStatusPaid,
		constants.ProcurementStatusInTransit,
		constants.ProcurementStatusWarehouse,
	} {
		require.NoError(t, env.procurement.SetStatus(ctx, created.ID, dto.SetProcurementStatusDTO{StatusCode: status}))
	}

	history, err := env.procurement.GetHistory(ctx, created.ID)
	require.NoError(t, err)
	// Первая запись за создание плюс четыре смены статуса.
	require.Len(t, history, 5)
	assert.Equal(t, constants.ProcurementStatusNew, history[0].StatusCode)
	assert.Equal(t, constants.ProcurementStatusWarehouse, history[4].StatusCode)
}

func TestProcurementService_SetStatus_UnlinkedRequest(t *testing.T) {
	// Заявка без поломки живёт своей жизнью: синхронизировать нечего.
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.procurement.CreateRequest(ctx, dto.CreateProcurementDTO{Title: "Масло гидравлическое"})
	require.NoError(t, err)

	err = env.procurement.SetStatus(ctx, created.ID, dto.SetProcurementStatusDTO{
		StatusCode: constants.ProcurementStatusPaid,
	})
	require.NoError(t, err)
}

func TestProcurementService_SetStatus_BreakdownDeleted(t *testing.T) {
	// Акт удалён после создания заявки: синхронизация пропускается без ошибки.
	env := newTestEnv()
	ctx := context.Background()
	equipmentID := env.addEquipment("Бетононасос Putzmeister", 600)
	breakdown := reportBreakdown(t, env, equipmentID)

	created, err := env.procurement.CreateRequest(ctx, dto.CreateProcurementDTO{
		BreakdownID: &breakdown.ID,
		Title:       "Шток поршня",
	})
	require.NoError(t, err)

	env.breakdownRepo.delete(breakdown.ID)

	err = env.procurement.SetStatus(ctx, created.ID, dto.SetProcurementStatusDTO{
		StatusCode: constants.ProcurementStatusPaid,
	})
	require.NoError(t, err)

	stored, err := env.procurementRepo.FindRequest(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.ProcurementStatusPaid, stored.StatusCode)
}

func TestProcurementService_SetStatus_NotFound(t *testing.T) {
	env := newTestEnv()
	err := env.procurement.SetStatus(context.Background(), 777, dto.SetProcurementStatusDTO{
		StatusCode: constants.ProcurementStatusPaid,
	})
	assert.ErrorIs(t, err, apperrors.ErrProcurementNotFound)
}

func TestProcurementService_UpdateRequest_NoCrossSync(t *testing.T) {
	// Редактирование полей заявки поломку не трогает. Синхронизацию
	// запускает только смена статуса.
	env := newTestEnv()
	ctx := context.Background()
	equipmentID := env.addEquipment("Автокран Liebherr LTM", 1500)
	breakdown := reportBreakdown(t, env, equipmentID)

	created, err := env.procurement.CreateRequest(ctx, dto.CreateProcurementDTO{
		BreakdownID: &breakdown.ID,
		Title:       "Трос",
		Cost:        5000,
	})
	require.NoError(t, err)

	err = env.procurement.UpdateRequest(ctx, created.ID, dto.UpdateProcurementDTO{
		Title: null.StringFrom("Трос стальной 20мм"),
		Cost:  null.Float64From(6200),
	})
	require.NoError(t, err)

	stored, err := env.procurementRepo.FindRequest(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Трос стальной 20мм", stored.Title)
	assert.Equal(t, 6200.0, stored.Cost)

	// Журнал не пополнился, поломка осталась как была.
	history, err := env.procurement.GetHistory(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	bdStored, err := env.breakdownRepo.FindBreakdown(ctx, breakdown.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.BreakdownStatusNew, bdStored.StatusCode)
}

func TestProcurementService_FullScenario(t *testing.T) {
	// Полный путь: поломка -> заявка -> оплата -> склад -> ремонт -> устранение.
	env := newTestEnv()
	ctx := context.Background()
	equipmentID := env.addEquipment("Экскаватор Volvo EC210", 5200)
	breakdown := reportBreakdown(t, env, equipmentID)

	created, err := env.procurement.CreateRequest(ctx, dto.CreateProcurementDTO{
		BreakdownID: &breakdown.ID,
		Title:       "Насос в сборе",
	})
	require.NoError(t, err)

	require.NoError(t, env.procurement.SetStatus(ctx, created.ID, dto.SetProcurementStatusDTO{
		StatusCode: constants.ProcurementStatusPaid,
	}))
	assert.Equal(t, constants.EquipmentStatusWaitingForParts, env.equipmentRepo.statusOf(equipmentID))

	require.NoError(t, env.procurement.SetStatus(ctx, created.ID, dto.SetProcurementStatusDTO{
		StatusCode: constants.ProcurementStatusWarehouse,
	}))
	assert.Equal(t, constants.EquipmentStatusWaitingForParts, env.equipmentRepo.statusOf(equipmentID))

	require.NoError(t, env.breakdowns.SetStatus(ctx, breakdown.ID, dto.SetBreakdownStatusDTO{
		StatusCode: constants.BreakdownStatusInProgress,
	}))
	assert.Equal(t, constants.EquipmentStatusInRepair, env.equipmentRepo.statusOf(equipmentID))

	require.NoError(t, env.breakdowns.SetStatus(ctx, breakdown.ID, dto.SetBreakdownStatusDTO{
		StatusCode: constants.BreakdownStatusFixed,
	}))
	assert.Equal(t, constants.EquipmentStatusActive, env.equipmentRepo.statusOf(equipmentID))
	assert.Len(t, env.recordRepo.all(), 1)
}
