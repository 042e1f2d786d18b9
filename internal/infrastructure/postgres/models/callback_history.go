package models

import "time"

type CallbackHistoryModel struct {
	ID            string `gorm:"primaryKey"`
	TransactionID string `gorm:"index"`
	URL           string
	Payload       string `gorm:"type:text"`
	Response      *string
	StatusCode    *int
	Error         *string
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}
