package model

import "time"

// User — учётная запись. Email может отсутствовать у chat-only аккаунтов,
// TelegramID появляется после привязки через login widget. Оба уникальны,
// когда заданы.
type User struct {
	ID           int64   `gorm:"primaryKey"`
	Email        *string `gorm:"uniqueIndex"`
	PasswordHash string  `gorm:"not null"`

	TelegramID *int64 `gorm:"uniqueIndex"`

	// Профиль Telegram, снимается в момент привязки. Информационные поля,
	// авторизация на них не опирается.
	FirstName string
	LastName  string
	Username  string
	PhotoURL  string

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// EmailString возвращает email или пустую строку для chat-only аккаунта.
func (u *User) EmailString() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}
