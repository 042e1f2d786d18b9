package repository

import (
	"context"

	"github.com/chasepay/processing-service/internal/domain"
	"gorm.io/gorm"
)

// SQLStore implements domain.Store over one *gorm.DB handle. WithinTx
// hands the callback a store bound to the transaction connection, so
// repository calls inside it share the transaction's locks and
// visibility.
type SQLStore struct {
	db *gorm.DB

	transactions  *DefaultTransactionRepository
	notifications *DefaultNotificationRepository
	traders       *DefaultTraderRepository
	merchants     *DefaultMerchantRepository
	methods       *DefaultMethodRepository
	devices       *DefaultDeviceRepository
	callbacks     *DefaultCallbackHistoryRepository
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{
		db:            db,
		transactions:  NewDefaultTransactionRepository(db),
		notifications: NewDefaultNotificationRepository(db),
		traders:       NewDefaultTraderRepository(db),
		merchants:     NewDefaultMerchantRepository(db),
		methods:       NewDefaultMethodRepository(db),
		devices:       NewDefaultDeviceRepository(db),
		callbacks:     NewDefaultCallbackHistoryRepository(db),
	}
}

func (s *SQLStore) Transactions() domain.TransactionRepository { return s.transactions }

func (s *SQLStore) Notifications() domain.NotificationRepository { return s.notifications }

func (s *SQLStore) Traders() domain.TraderRepository { return s.traders }

func (s *SQLStore) Merchants() domain.MerchantRepository { return s.merchants }

func (s *SQLStore) Methods() domain.MethodRepository { return s.methods }

func (s *SQLStore) Devices() domain.DeviceRepository { return s.devices }

func (s *SQLStore) Callbacks() domain.CallbackHistoryRepository { return s.callbacks }

func (s *SQLStore) WithinTx(ctx context.Context, fn func(s domain.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewSQLStore(tx))
	})
}
