package models

import "time"

const DefaultProfilePicture = "default_pic"

type User struct {
	BaseModel
	Username       string    `gorm:"uniqueIndex;not null" json:"username"`
	Password       string    `gorm:"not null" json:"-"`
	Role           UserRole  `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	IPAddress      string    `gorm:"type:varchar(255)" json:"ip_address"`
	UserAgent      string    `gorm:"type:varchar(255)" json:"user_agent"`
	RegisterTime   time.Time `gorm:"not null" json:"register_time"`
	LastLoginTime  time.Time `gorm:"not null" json:"last_login_time"`
	UserToken      string    `gorm:"uniqueIndex;not null" json:"-"`
	AllowAPIAccess bool      `gorm:"default:false" json:"allow_api_access"`
	ProfilePicture string    `gorm:"type:text;default:'default_pic'" json:"profile_picture"`

	// Relations
	Logs          []Log                    `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
	Bans          []Banned                 `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Subscribers   []NotificationSubscriber `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	SentLogs      []SentNotificationLog    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	APIAccessLogs []APIAccessLog           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
