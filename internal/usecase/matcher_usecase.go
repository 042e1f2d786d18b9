package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/chasepay/processing-service/internal/banksms"
	"github.com/chasepay/processing-service/internal/domain"
	"github.com/chasepay/processing-service/internal/infrastructure/metrics"
)

// NotificationMatcher drives the automatic confirmation pipeline: it
// polls unprocessed bank notifications, parses them and completes the
// best-fit pending transaction. One instance is the sole writer of
// is_processed; the consumption write stays conditional regardless, so a
// second instance cannot double-match.
type NotificationMatcher struct {
	store        domain.Store
	transactions TransactionUsecase
	metrics      *metrics.ProcessingMetrics

	batchSize int
	tolerance float64
}

func NewNotificationMatcher(
	store domain.Store,
	transactions TransactionUsecase,
	processingMetrics *metrics.ProcessingMetrics,
	batchSize int,
	tolerance float64,
) *NotificationMatcher {
	return &NotificationMatcher{
		store:        store,
		transactions: transactions,
		metrics:      processingMetrics,
		batchSize:    batchSize,
		tolerance:    tolerance,
	}
}

// Tick processes one batch, oldest first. Notifications are handled
// sequentially: parallelism across one trader's notifications would
// re-open the double-match window the conditional write closes.
func (m *NotificationMatcher) Tick(ctx context.Context) error {
	start := time.Now()

	notifications, err := m.store.Notifications().FindUnprocessed(ctx, m.batchSize)
	if err != nil {
		return err
	}

	for _, n := range notifications {
		if err := m.processNotification(ctx, n); err != nil {
			slog.Error("failed to process notification", "notification_id", n.ID, "error", err.Error())
		}
	}

	m.metrics.MatcherTickDuration.Observe(time.Since(start).Seconds())
	return nil
}

// processNotification consumes exactly one notification. Every outcome
// marks it processed: noise must never be reprocessed on the next tick.
func (m *NotificationMatcher) processNotification(ctx context.Context, n *domain.BankNotification) error {
	if n.TraderID == "" {
		m.markProcessed(ctx, n.ID, domain.ProcessedReasonNoTrader)
		slog.Warn("orphan notification without owning trader", "notification_id", n.ID, "device_id", n.DeviceID)
		return nil
	}

	parsed := banksms.Parse(n.Message, n.PackageName)
	if parsed.Amount <= 0 {
		m.markProcessed(ctx, n.ID, domain.ProcessedReasonParseFailed)
		return nil
	}

	// SBP transfers arrive through any banking app, so the SBP marker
	// (and an unclassified source) must not restrict by bank.
	bankType := ""
	if parsed.BankType != "" && parsed.BankType != banksms.BankTypeSBP {
		bankType = string(parsed.BankType)
	}

	matched, err := m.transactions.CompleteMatch(ctx, n.ID, domain.MatchQuery{
		TraderID:  n.TraderID,
		Amount:    parsed.Amount,
		Tolerance: m.tolerance,
		BankType:  bankType,
	})
	if err != nil {
		m.markProcessed(ctx, n.ID, domain.ProcessedReasonError)
		return err
	}

	if matched == nil {
		m.metrics.NotificationsProcessedTotal.WithLabelValues(domain.ProcessedReasonNoMatch).Inc()
		return nil
	}

	m.metrics.NotificationsProcessedTotal.WithLabelValues(domain.ProcessedReasonMatched).Inc()
	m.metrics.MatchesTotal.Inc()
	slog.Info("notification matched",
		"notification_id", n.ID,
		"transaction_id", matched.ID,
		"amount", parsed.Amount,
		"bank", parsed.BankName)
	return nil
}

func (m *NotificationMatcher) markProcessed(ctx context.Context, id, reason string) {
	if _, err := m.store.Notifications().MarkProcessed(ctx, id, reason); err != nil {
		slog.Error("failed to mark notification processed", "notification_id", id, "error", err.Error())
		return
	}
	m.metrics.NotificationsProcessedTotal.WithLabelValues(reason).Inc()
}
