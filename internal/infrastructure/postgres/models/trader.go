package models

type TraderModel struct {
	ID              string `gorm:"primaryKey"`
	Name            string
	BalanceUsdt     float64
	TrustBalance    float64
	FrozenUsdt      float64
	ProfitFromDeals float64
	ProfitPercent   float64
	StakePercent    float64
}

type MerchantModel struct {
	ID          string `gorm:"primaryKey"`
	Name        string
	Token       string `gorm:"uniqueIndex"`
	BalanceUsdt float64
}

type MethodModel struct {
	ID              string `gorm:"primaryKey"`
	Code            string `gorm:"uniqueIndex"`
	Name            string
	CommissionPayin float64
}
