package model

import "time"

// Item — запись списка дел. Владелец обязателен и неизменяем;
// удаление пользователя каскадно удаляет его записи.
type Item struct {
	ID     int64 `gorm:"primaryKey"`
	UserID int64 `gorm:"not null;index"` // ссылка на users.id

	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Text string `gorm:"not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}
