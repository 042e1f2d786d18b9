package repository

import (
	"context"
	"errors"

	"github.com/chasepay/processing-service/internal/domain"
	"github.com/chasepay/processing-service/internal/infrastructure/postgres/mappers"
	"github.com/chasepay/processing-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultMethodRepository struct {
	DB *gorm.DB
}

func NewDefaultMethodRepository(db *gorm.DB) *DefaultMethodRepository {
	return &DefaultMethodRepository{DB: db}
}

func (r *DefaultMethodRepository) GetByID(ctx context.Context, id string) (*domain.Method, error) {
	var model models.MethodModel
	if err := r.DB.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mappers.ToDomainMethod(&model), nil
}
