package mappers

import (
	"github.com/chasepay/processing-service/internal/domain"
	"github.com/chasepay/processing-service/internal/infrastructure/postgres/models"
)

// ToDomainNotification resolves the owning trader through the preloaded
// device; an unloaded or unlinked device yields an orphan notification.
func ToDomainNotification(model *models.BankNotificationModel) *domain.BankNotification {
	return &domain.BankNotification{
		ID:              model.ID,
		DeviceID:        model.DeviceID,
		TraderID:        model.Device.TraderID,
		Message:         model.Message,
		PackageName:     model.PackageName,
		IsProcessed:     model.IsProcessed,
		IsRead:          model.IsRead,
		ProcessedReason: model.ProcessedReason,
		CreatedAt:       model.CreatedAt,
	}
}

func ToGORMNotification(n *domain.BankNotification) *models.BankNotificationModel {
	return &models.BankNotificationModel{
		ID:              n.ID,
		DeviceID:        n.DeviceID,
		Message:         n.Message,
		PackageName:     n.PackageName,
		IsProcessed:     n.IsProcessed,
		IsRead:          n.IsRead,
		ProcessedReason: n.ProcessedReason,
		CreatedAt:       n.CreatedAt,
	}
}
