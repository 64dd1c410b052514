package models

import "time"

// NotificationSubscriber - зарегистрированный push-endpoint пользователя.
// Ожидается одна открытая подписка на пользователя (не навязывается жестко).
type NotificationSubscriber struct {
	BaseModel
	Endpoint       string           `gorm:"type:text;not null" json:"endpoint"`
	PublicKey      string           `gorm:"type:text;not null" json:"public_key"`
	AuthToken      string           `gorm:"type:text;not null" json:"-"`
	SubscribedTime time.Time        `gorm:"not null" json:"subscribed_time"`
	Status         SubscriberStatus `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`

	UserID uint  `gorm:"not null;index" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

// SentNotificationLog - история отправленных уведомлений.
type SentNotificationLog struct {
	BaseModel
	Title   string    `gorm:"type:varchar(255);not null" json:"title"`
	Message string    `gorm:"type:text;not null" json:"message"`
	Time    time.Time `gorm:"not null" json:"time"`

	UserID uint  `gorm:"not null;index" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}
