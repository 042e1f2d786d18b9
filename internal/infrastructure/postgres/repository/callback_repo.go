package repository

import (
	"context"

	"github.com/chasepay/processing-service/internal/domain"
	"github.com/chasepay/processing-service/internal/infrastructure/postgres/mappers"
	"github.com/chasepay/processing-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultCallbackHistoryRepository struct {
	DB *gorm.DB
}

func NewDefaultCallbackHistoryRepository(db *gorm.DB) *DefaultCallbackHistoryRepository {
	return &DefaultCallbackHistoryRepository{DB: db}
}

func (r *DefaultCallbackHistoryRepository) Create(ctx context.Context, h *domain.CallbackHistory) error {
	return r.DB.WithContext(ctx).Create(mappers.ToGORMCallback(h)).Error
}

func (r *DefaultCallbackHistoryRepository) ListByTransaction(ctx context.Context, transactionID string) ([]*domain.CallbackHistory, error) {
	var callbackModels []models.CallbackHistoryModel
	err := r.DB.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Order("created_at ASC").
		Find(&callbackModels).Error
	if err != nil {
		return nil, err
	}

	history := make([]*domain.CallbackHistory, len(callbackModels))
	for i := range callbackModels {
		history[i] = mappers.ToDomainCallback(&callbackModels[i])
	}
	return history, nil
}
