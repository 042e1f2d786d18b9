package models

import "time"

type TransactionModel struct {
	ID          string `gorm:"primaryKey"`
	MerchantID  string `gorm:"index"`
	MethodID    string
	TraderID    string `gorm:"index"`
	RequisiteID string `gorm:"index"`
	Amount      float64
	Currency    string
	Rate        *float64
	Status      string `gorm:"index:idx_status_expired"`
	Type        string

	AdjustedRate         *float64
	KkkPercent           *float64
	FeeInPercent         *float64
	FrozenUsdtAmount     *float64
	CalculatedCommission *float64

	MatchedNotificationID *string

	CallbackURI string
	SuccessURI  string
	FailURI     string

	ExpiredAt  time.Time `gorm:"index:idx_status_expired"`
	CreatedAt  time.Time `gorm:"index:idx_created_at"`
	UpdatedAt  time.Time
	AcceptedAt *time.Time
}
