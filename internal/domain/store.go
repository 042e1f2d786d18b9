package domain

import "context"

// Store bundles the repositories over one transactional backend.
// WithinTx runs fn against a store bound to a single database
// transaction: every repository call inside fn commits or rolls back as
// one unit. Isolation is at least read-committed with row locking via
// the *ForUpdate getters.
type Store interface {
	Transactions() TransactionRepository
	Notifications() NotificationRepository
	Traders() TraderRepository
	Merchants() MerchantRepository
	Methods() MethodRepository
	Devices() DeviceRepository
	Callbacks() CallbackHistoryRepository

	WithinTx(ctx context.Context, fn func(s Store) error) error
}
