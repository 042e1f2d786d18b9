package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/chasepay/processing-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestNotificationStoresAndRefreshesLiveness(t *testing.T) {
	store := newMemStore()
	store.devices["device-1"] = &domain.Device{ID: "device-1", TraderID: "trader-1"}

	uc := NewDefaultNotificationUsecase(store)

	n, err := uc.IngestNotification(context.Background(), IngestNotificationInput{
		DeviceID:    "device-1",
		Message:     "СБЕР +1000 ₽",
		PackageName: "ru.sberbankmobile",
	})
	require.NoError(t, err)
	require.NotEmpty(t, n.ID)
	assert.Equal(t, "trader-1", n.TraderID)
	assert.False(t, n.IsProcessed)

	device, _ := store.Devices().GetByID(context.Background(), "device-1")
	assert.True(t, device.Online)
	require.NotNil(t, device.LastActiveAt)

	pending, err := store.Notifications().FindUnprocessed(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, n.ID, pending[0].ID)
}

func TestIngestNotificationUnknownDevice(t *testing.T) {
	store := newMemStore()
	uc := NewDefaultNotificationUsecase(store)

	_, err := uc.IngestNotification(context.Background(), IngestNotificationInput{DeviceID: "nope"})
	require.ErrorIs(t, err, domain.ErrOrphanNotification)
}

func TestMarkOfflineFlipsStaleDevices(t *testing.T) {
	store := newMemStore()
	stale := time.Now().Add(-10 * time.Minute)
	fresh := time.Now()
	store.devices["stale"] = &domain.Device{ID: "stale", Online: true, LastActiveAt: &stale}
	store.devices["fresh"] = &domain.Device{ID: "fresh", Online: true, LastActiveAt: &fresh}

	n, err := store.Devices().MarkOffline(context.Background(), time.Now().Add(-2*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	staleDevice, _ := store.Devices().GetByID(context.Background(), "stale")
	freshDevice, _ := store.Devices().GetByID(context.Background(), "fresh")
	assert.False(t, staleDevice.Online)
	assert.True(t, freshDevice.Online)
}
