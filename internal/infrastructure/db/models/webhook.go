package models

import "time"

type Webhook struct {
	ID        int64  `gorm:"primaryKey"`
	URL       string `gorm:"size:500;not null"`
	EventType string `gorm:"size:100;not null;index"`
	SecretKey string `gorm:"size:100"`
	Enabled   bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
}

func (Webhook) TableName() string {
	return "webhooks"
}
