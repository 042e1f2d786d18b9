package domain

import (
	"context"
	"time"
)

// CallbackHistory is an append-only audit record of one outbound callback
// attempt. Failures carry Error and no StatusCode; delivered responses
// carry StatusCode and body, with Error summarizing a non-2xx code.
type CallbackHistory struct {
	ID            string
	TransactionID string
	URL           string
	Payload       string
	Response      *string
	StatusCode    *int
	Error         *string
	CreatedAt     time.Time
}

type CallbackHistoryRepository interface {
	Create(ctx context.Context, h *CallbackHistory) error
	ListByTransaction(ctx context.Context, transactionID string) ([]*CallbackHistory, error)
}
