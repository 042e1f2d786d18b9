package usecase

import (
	"context"
	"time"

	"github.com/chasepay/processing-service/internal/domain"
	"github.com/google/uuid"
)

type NotificationUsecase interface {
	IngestNotification(ctx context.Context, input IngestNotificationInput) (*domain.BankNotification, error)
}

// IngestNotificationInput is one raw notification as forwarded by a
// trader's device agent.
type IngestNotificationInput struct {
	DeviceID    string
	Message     string
	PackageName string
}

type DefaultNotificationUsecase struct {
	store domain.Store
}

func NewDefaultNotificationUsecase(store domain.Store) *DefaultNotificationUsecase {
	return &DefaultNotificationUsecase{store: store}
}

// IngestNotification stores the raw message for the matcher to consume
// and refreshes the device's liveness. A notification from an unknown
// device is rejected; one from a device without an owning trader is
// stored anyway and consumed later with the NO_TRADER reason.
func (uc *DefaultNotificationUsecase) IngestNotification(ctx context.Context, input IngestNotificationInput) (*domain.BankNotification, error) {
	device, err := uc.store.Devices().GetByID(ctx, input.DeviceID)
	if err != nil {
		return nil, err
	}
	if device == nil {
		return nil, domain.ErrOrphanNotification
	}

	now := time.Now()
	n := &domain.BankNotification{
		ID:          uuid.New().String(),
		DeviceID:    input.DeviceID,
		TraderID:    device.TraderID,
		Message:     input.Message,
		PackageName: input.PackageName,
		CreatedAt:   now,
	}

	if err := uc.store.Notifications().Create(ctx, n); err != nil {
		return nil, err
	}

	// A forwarded notification proves the device agent is alive.
	if err := uc.store.Devices().UpdateLiveness(ctx, input.DeviceID, now); err != nil {
		return nil, err
	}

	return n, nil
}
