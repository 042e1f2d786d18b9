package mappers

import (
	"github.com/chasepay/processing-service/internal/domain"
	"github.com/chasepay/processing-service/internal/infrastructure/postgres/models"
)

func ToDomainDevice(model *models.DeviceModel) *domain.Device {
	return &domain.Device{
		ID:           model.ID,
		TraderID:     model.TraderID,
		Name:         model.Name,
		Online:       model.Online,
		LastActiveAt: model.LastActiveAt,
		CreatedAt:    model.CreatedAt,
	}
}
