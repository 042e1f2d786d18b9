package repository

import (
	"context"

	"github.com/chasepay/processing-service/internal/domain"
	"github.com/chasepay/processing-service/internal/infrastructure/postgres/mappers"
	"github.com/chasepay/processing-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultNotificationRepository struct {
	DB *gorm.DB
}

func NewDefaultNotificationRepository(db *gorm.DB) *DefaultNotificationRepository {
	return &DefaultNotificationRepository{DB: db}
}

func (r *DefaultNotificationRepository) Create(ctx context.Context, n *domain.BankNotification) error {
	return r.DB.WithContext(ctx).Create(mappers.ToGORMNotification(n)).Error
}

func (r *DefaultNotificationRepository) FindUnprocessed(ctx context.Context, limit int) ([]*domain.BankNotification, error) {
	var notificationModels []models.BankNotificationModel
	err := r.DB.WithContext(ctx).
		Preload("Device").
		Where("is_processed = ?", false).
		Order("created_at ASC").
		Limit(limit).
		Find(&notificationModels).Error
	if err != nil {
		return nil, err
	}

	notifications := make([]*domain.BankNotification, len(notificationModels))
	for i := range notificationModels {
		notifications[i] = mappers.ToDomainNotification(&notificationModels[i])
	}
	return notifications, nil
}

func (r *DefaultNotificationRepository) MarkProcessed(ctx context.Context, id string, reason string) (bool, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.BankNotificationModel{}).
		Where("id = ? AND is_processed = ?", id, false).
		Updates(map[string]interface{}{
			"is_processed":     true,
			"processed_reason": reason,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *DefaultNotificationRepository) SetProcessedReason(ctx context.Context, id string, reason string) error {
	return r.DB.WithContext(ctx).
		Model(&models.BankNotificationModel{}).
		Where("id = ?", id).
		Update("processed_reason", reason).Error
}
