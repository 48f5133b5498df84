package utils

import (
	"context"

	"fleet-system/pkg/contextkeys"
)

// ActorNameFromContext возвращает имя действующего лица для записей истории.
// Внешняя система аутентификации трактуется как необязательный источник:
// если имени нет, возвращается пустая строка.
func ActorNameFromContext(ctx context.Context) string {
	if name, ok := ctx.Value(contextkeys.ActorNameKey).(string); ok {
		return name
	}
	return ""
}

func UserIDFromContext(ctx context.Context) uint64 {
	if id, ok := ctx.Value(contextkeys.UserIDKey).(uint64); ok {
		return id
	}
	return 0
}
