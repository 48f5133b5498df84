package contextkeys

type contextKey string

const (
	// UserIDKey - идентификатор пользователя из access-токена.
	UserIDKey contextKey = "user_id"
	// ActorNameKey - ФИО/имя действующего лица для записей истории.
	// Внешняя система аутентификации может его не передать, тогда в истории
	// остаётся пустая строка.
	ActorNameKey contextKey = "actor_name"
)
