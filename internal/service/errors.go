package service

import "errors"

// Ошибки уровня сервисов. Хендлеры и бот мапят их на статусы/реплики,
// внутренние причины остаются в логах.
var (
	// валидация
	ErrEmptyText = errors.New("item text must not be empty")

	// аутентификация / резолв идентичности
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotLinked          = errors.New("telegram account is not linked")

	// регистрация и привязка
	ErrEmailTaken     = errors.New("email is already registered")
	ErrAlreadyLinked  = errors.New("telegram account is already linked")
	ErrBadAssertion   = errors.New("telegram login signature mismatch")
	ErrStaleAssertion = errors.New("telegram login data is too old")

	// чужая либо несуществующая запись: различие намеренно не раскрывается
	ErrNotFoundOrForbidden = errors.New("item not found")

	// отказ хранилища; причина логируется, клиенту уходит общий ответ
	ErrUnavailable = errors.New("storage unavailable")
)
