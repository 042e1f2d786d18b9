package models

import "time"

type DeviceModel struct {
	ID           string `gorm:"primaryKey"`
	TraderID     string `gorm:"index"`
	Name         string
	Online       bool `gorm:"default:false"`
	LastActiveAt *time.Time
	CreatedAt    time.Time
}
