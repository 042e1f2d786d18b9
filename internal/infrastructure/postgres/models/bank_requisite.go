package models

type BankRequisiteModel struct {
	ID            string `gorm:"primaryKey"`
	TraderID      string `gorm:"index"`
	DeviceID      string `gorm:"index"`
	BankType      string `gorm:"index"`
	CardNumber    string
	RecipientName string
}
