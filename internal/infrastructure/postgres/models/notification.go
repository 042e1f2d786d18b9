package models

import "time"

type BankNotificationModel struct {
	ID          string      `gorm:"primaryKey"`
	DeviceID    string      `gorm:"index"`
	Device      DeviceModel `gorm:"foreignKey:DeviceID;references:ID"`
	Message     string
	PackageName string
	IsProcessed bool `gorm:"index;default:false"`
	IsRead      bool `gorm:"default:false"`

	ProcessedReason string
	CreatedAt       time.Time `gorm:"index"`
}
