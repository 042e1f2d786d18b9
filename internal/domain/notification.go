package domain

import (
	"context"
	"time"
)

// Processed reasons persisted on a consumed notification row.
const (
	ProcessedReasonMatched     = "MATCHED"
	ProcessedReasonNoTrader    = "NO_TRADER"
	ProcessedReasonParseFailed = "PARSE_FAILED"
	ProcessedReasonNoMatch     = "NO_MATCHING_TXN"
	ProcessedReasonError       = "ERROR"
)

// BankNotification is one message captured from a trader's linked device.
type BankNotification struct {
	ID          string
	DeviceID    string
	TraderID    string // resolved through the owning device, empty for orphans
	Message     string
	PackageName string
	IsProcessed bool
	IsRead      bool
	// Why the notification was consumed, for the trader/admin audit view.
	ProcessedReason string
	CreatedAt       time.Time
}

type NotificationRepository interface {
	Create(ctx context.Context, n *BankNotification) error
	// FindUnprocessed returns up to limit unprocessed notifications,
	// oldest first, with the owning trader resolved.
	FindUnprocessed(ctx context.Context, limit int) ([]*BankNotification, error)
	// MarkProcessed flips is_processed false→true. The write is
	// conditional: it reports false when another matcher instance
	// already consumed the notification.
	MarkProcessed(ctx context.Context, id string, reason string) (bool, error)
	// SetProcessedReason overwrites the reason recorded by MarkProcessed.
	SetProcessedReason(ctx context.Context, id string, reason string) error
}
