package postgres

import (
	"log"

	"github.com/chasepay/processing-service/internal/config"
	"github.com/chasepay/processing-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.ProcessingConfig) *gorm.DB {
	dsn := cfg.ProcessingDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.TraderModel{},
		&models.MerchantModel{},
		&models.MethodModel{},
		&models.DeviceModel{},
		&models.BankRequisiteModel{},
		&models.TransactionModel{},
		&models.BankNotificationModel{},
		&models.CallbackHistoryModel{},
	)

	return db
}
