package listeners

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"fleet-system/internal/events"
	"fleet-system/internal/services"
	"fleet-system/pkg/constants"
	"fleet-system/pkg/eventbus"
)

// NotificationListener переводит доменные события в уведомления.
// Работает асинхронно через шину: ядро не ждёт доставки.
type NotificationListener struct {
	notificationService services.NotificationServiceInterface
	logger              *zap.Logger
}

func NewNotificationListener(
	notificationService services.NotificationServiceInterface,
	logger *zap.Logger,
) *NotificationListener {
	return &NotificationListener{
		notificationService: notificationService,
		logger:              logger,
	}
}

func (l *NotificationListener) Register(bus *eventbus.Bus) {
	bus.Subscribe("breakdown.reported", l.handleBreakdownReported)
	bus.Subscribe("breakdown.status.changed", l.handleBreakdownStatusChanged)
	bus.Subscribe("procurement.status.changed", l.handleProcurementStatusChanged)
	l.logger.Info("NotificationListener подписан на события")
}

func (l *NotificationListener) handleBreakdownReported(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.BreakdownReportedEvent)
	if !ok {
		return fmt.Errorf("неожиданный тип события: %T", event)
	}

	title := fmt.Sprintf("Новая поломка %s", e.Breakdown.ActNumber)
	if e.Breakdown.Severity == constants.SeverityCritical {
		title = fmt.Sprintf("⚠️ КРИТИЧЕСКАЯ поломка %s", e.Breakdown.ActNumber)
	}

	message := fmt.Sprintf("Техника #%d, узел: %s, деталь: %s",
		e.Breakdown.EquipmentID, e.Breakdown.Node, e.Breakdown.PartName)

	return l.notificationService.AddNotification(ctx, title, message, e.Breakdown.Severity)
}

func (l *NotificationListener) handleBreakdownStatusChanged(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.BreakdownStatusChangedEvent)
	if !ok {
		return fmt.Errorf("неожиданный тип события: %T", event)
	}

	message := fmt.Sprintf("Акт %s: %s -> %s",
		e.Breakdown.ActNumber, e.OldStatus, e.Breakdown.StatusCode)

	return l.notificationService.AddNotification(ctx, "Смена статуса поломки", message, e.Breakdown.Severity)
}

func (l *NotificationListener) handleProcurementStatusChanged(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.ProcurementStatusChangedEvent)
	if !ok {
		return fmt.Errorf("неожиданный тип события: %T", event)
	}

	message := fmt.Sprintf("Заявка #%d: %s -> %s",
		e.Request.ID, e.OldStatus, e.Request.StatusCode)

	return l.notificationService.AddNotification(ctx, "Снабжение", message, constants.SeverityLow)
}
