package models

import "time"

// Banned - запись о бане. Одна строка на событие бана, не флаг на пользователе:
// снятие бана переводит строку в "inactive", история сохраняется.
type Banned struct {
	BaseModel
	Reason string    `gorm:"type:text;not null" json:"reason"`
	Status BanStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	Time   time.Time `gorm:"not null" json:"time"`

	// Кого забанили (обязательно) и кто выдал бан (nullable - системные баны).
	UserID     uint  `gorm:"not null;index" json:"user_id"`
	BannedByID *uint `gorm:"index" json:"banned_by_id"`

	User     *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	BannedBy *User `gorm:"foreignKey:BannedByID;constraint:OnDelete:SET NULL" json:"banned_by,omitempty"`
}
