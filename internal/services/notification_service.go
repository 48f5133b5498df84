// Файл: internal/services/notification_service.go
package services

import (
	"context"

	"go.uber.org/zap"
)

// NotificationServiceInterface - приёмник уведомлений. Вызов "выстрелил и
// забыл": ядро не ждёт результата и не проверяет его.
type NotificationServiceInterface interface {
	AddNotification(ctx context.Context, title, message, severity string) error
}

// logNotificationService пишет уведомление в лог вместо реальной доставки.
// Каналы доставки (email, мессенджеры) - забота внешней системы.
type logNotificationService struct {
	logger *zap.Logger
}

func NewLogNotificationService(logger *zap.Logger) NotificationServiceInterface {
	return &logNotificationService{logger: logger}
}

func (s *logNotificationService) AddNotification(ctx context.Context, title, message, severity string) error {
	s.logger.Info("УВЕДОМЛЕНИЕ",
		zap.String("заголовок", title),
		zap.String("сообщение", message),
		zap.String("серьезность", severity),
	)
	return nil
}
