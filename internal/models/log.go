package models

import "time"

// Log - запись аудита. Append-only: после создания меняется только Status
// (UNREADED -> READED), обратного перехода нет.
type Log struct {
	BaseModel
	Name      string    `gorm:"type:varchar(100);not null;index" json:"name"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Time      time.Time `gorm:"not null" json:"time"`
	UserAgent string    `gorm:"type:varchar(255)" json:"user_agent"`
	IPAddress string    `gorm:"type:varchar(255)" json:"ip_address"`
	Level     int       `gorm:"not null;index" json:"level"`
	Status    LogStatus `gorm:"type:varchar(20);not null;default:'UNREADED';index" json:"status"`

	// Nullable: при удалении пользователя запись остается без владельца.
	UserID *uint `gorm:"index" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`
}
