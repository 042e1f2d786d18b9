package background

import (
	"context"
	"log"
	"time"

	"github.com/chasepay/processing-service/internal/config"
	"github.com/chasepay/processing-service/internal/domain"
	"github.com/chasepay/processing-service/internal/usecase"
)

// BackgroundTasks owns the service's polling loops: the notification
// matcher, the expiry sweep and the device liveness watchdog. Each loop
// runs ticks sequentially so a slow tick delays the next one instead of
// overlapping it.
type BackgroundTasks struct {
	Matcher      *usecase.NotificationMatcher
	Transactions usecase.TransactionUsecase
	Store        domain.Store
	Cfg          config.MatcherConfig
}

func NewBackgroundTasks(
	matcher *usecase.NotificationMatcher,
	transactions usecase.TransactionUsecase,
	store domain.Store,
	cfg config.MatcherConfig,
) *BackgroundTasks {
	return &BackgroundTasks{
		Matcher:      matcher,
		Transactions: transactions,
		Store:        store,
		Cfg:          cfg,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startMatcher(ctx)
	go bt.startExpirySweep(ctx)
	go bt.startDeviceOfflineCheck(ctx)
}

func (bt *BackgroundTasks) startMatcher(ctx context.Context) {
	ticker := time.NewTicker(bt.Cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := bt.Matcher.Tick(ctx); err != nil {
				log.Printf("Matcher tick error: %v\n", err)
			}
		}
	}
}

func (bt *BackgroundTasks) startExpirySweep(ctx context.Context) {
	ticker := time.NewTicker(bt.Cfg.ExpirySweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := bt.Transactions.ExpireOverdue(ctx); err != nil {
				log.Printf("Expiry sweep error: %v\n", err)
			}
		}
	}
}

func (bt *BackgroundTasks) startDeviceOfflineCheck(ctx context.Context) {
	ticker := time.NewTicker(bt.Cfg.WatchdogInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			threshold := time.Now().Add(-bt.Cfg.DeviceOfflineAfter)
			n, err := bt.Store.Devices().MarkOffline(ctx, threshold)
			if err != nil {
				log.Printf("Error checking offline devices: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("Marked %d devices offline\n", n)
			}
		}
	}
}
