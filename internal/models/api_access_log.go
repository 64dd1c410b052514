package models

import "time"

// APIAccessLog - история обращений к API по токену.
type APIAccessLog struct {
	BaseModel
	Time      time.Time `gorm:"not null" json:"time"`
	IPAddress string    `gorm:"type:varchar(255)" json:"ip_address"`
	UserAgent string    `gorm:"type:varchar(255)" json:"user_agent"`

	UserID uint  `gorm:"not null;index" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}
