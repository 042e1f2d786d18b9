package repository

import (
	"context"
	"errors"
	"time"

	"github.com/chasepay/processing-service/internal/domain"
	"github.com/chasepay/processing-service/internal/infrastructure/postgres/mappers"
	"github.com/chasepay/processing-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultDeviceRepository struct {
	DB *gorm.DB
}

func NewDefaultDeviceRepository(db *gorm.DB) *DefaultDeviceRepository {
	return &DefaultDeviceRepository{DB: db}
}

func (r *DefaultDeviceRepository) GetByID(ctx context.Context, id string) (*domain.Device, error) {
	var model models.DeviceModel
	if err := r.DB.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mappers.ToDomainDevice(&model), nil
}

func (r *DefaultDeviceRepository) UpdateLiveness(ctx context.Context, id string, pingTime time.Time) error {
	return r.DB.WithContext(ctx).
		Model(&models.DeviceModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"online":         true,
			"last_active_at": pingTime,
		}).Error
}

func (r *DefaultDeviceRepository) MarkOffline(ctx context.Context, threshold time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.DeviceModel{}).
		Where("online = ? AND last_active_at < ?", true, threshold).
		Update("online", false)
	return res.RowsAffected, res.Error
}
