package repository

import (
	"context"
	"errors"

	"github.com/chasepay/processing-service/internal/domain"
	"github.com/chasepay/processing-service/internal/infrastructure/postgres/mappers"
	"github.com/chasepay/processing-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultMerchantRepository struct {
	DB *gorm.DB
}

func NewDefaultMerchantRepository(db *gorm.DB) *DefaultMerchantRepository {
	return &DefaultMerchantRepository{DB: db}
}

func (r *DefaultMerchantRepository) GetByID(ctx context.Context, id string) (*domain.Merchant, error) {
	var model models.MerchantModel
	if err := r.DB.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mappers.ToDomainMerchant(&model), nil
}

func (r *DefaultMerchantRepository) AdjustBalance(ctx context.Context, id string, amountUsdt float64) error {
	return r.DB.WithContext(ctx).
		Model(&models.MerchantModel{}).
		Where("id = ?", id).
		Update("balance_usdt", gorm.Expr("balance_usdt + ?", amountUsdt)).Error
}
