package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/chasepay/processing-service/internal/domain"
	publisher "github.com/chasepay/processing-service/internal/infrastructure/kafka"
	"github.com/chasepay/processing-service/internal/infrastructure/metrics"
	"github.com/google/uuid"
)

// CallbackDispatcher delivers merchant callbacks after a transition
// commits. Implementations must never propagate delivery failures.
type CallbackDispatcher interface {
	SendTransactionCallbacks(tx *domain.Transaction, status domain.TransactionStatus, merchantToken string)
}

// EventPublisher pushes terminal-transition events to the message bus.
type EventPublisher interface {
	PublishTransaction(event publisher.TransactionEvent) error
}

type TransactionUsecase interface {
	CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error)
	GetTransactionByID(ctx context.Context, id string) (*domain.Transaction, error)
	AssignTrader(ctx context.Context, input AssignTraderInput) (*domain.Transaction, error)
	UpdateTransactionStatus(ctx context.Context, id string, newStatus domain.TransactionStatus) (*domain.Transaction, error)
	CompleteMatch(ctx context.Context, notificationID string, q domain.MatchQuery) (*domain.Transaction, error)
	ExpireOverdue(ctx context.Context) error
}

// CreateTransactionInput opens a transaction on behalf of a merchant.
// TTL bounds how long the transaction may wait for confirmation before
// the expiry sweep picks it up.
type CreateTransactionInput struct {
	MerchantID  string
	MethodID    string
	RequisiteID string
	Amount      float64
	Currency    string
	Rate        *float64
	Type        domain.TransactionType
	CallbackURI string
	SuccessURI  string
	FailURI     string
	TTL         time.Duration
}

// AssignTraderInput carries the fee parameters quoted for this
// assignment. They are snapshotted onto the transaction: later changes
// to the trader's terms never retroactively affect a frozen deal.
type AssignTraderInput struct {
	TransactionID string
	TraderID      string
	KkkPercent    float64
	FeeInPercent  float64
}

type DefaultTransactionUsecase struct {
	store      domain.Store
	dispatcher CallbackDispatcher
	events     EventPublisher
	metrics    *metrics.ProcessingMetrics
}

func NewDefaultTransactionUsecase(
	store domain.Store,
	dispatcher CallbackDispatcher,
	events EventPublisher,
	processingMetrics *metrics.ProcessingMetrics,
) *DefaultTransactionUsecase {
	return &DefaultTransactionUsecase{
		store:      store,
		dispatcher: dispatcher,
		events:     events,
		metrics:    processingMetrics,
	}
}

func (uc *DefaultTransactionUsecase) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	now := time.Now()
	tx := &domain.Transaction{
		ID:          uuid.New().String(),
		MerchantID:  input.MerchantID,
		MethodID:    input.MethodID,
		RequisiteID: input.RequisiteID,
		Amount:      input.Amount,
		Currency:    input.Currency,
		Rate:        input.Rate,
		Status:      domain.StatusCreated,
		Type:        input.Type,
		CallbackURI: input.CallbackURI,
		SuccessURI:  input.SuccessURI,
		FailURI:     input.FailURI,
		ExpiredAt:   now.Add(input.TTL),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.store.Transactions().Create(ctx, tx); err != nil {
		return nil, err
	}

	slog.Info("transaction created",
		"transaction_id", tx.ID,
		"merchant_id", tx.MerchantID,
		"type", tx.Type,
		"amount", tx.Amount)
	return tx, nil
}

func (uc *DefaultTransactionUsecase) GetTransactionByID(ctx context.Context, id string) (*domain.Transaction, error) {
	tx, err := uc.store.Transactions().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domain.ErrTransactionNotFound
	}
	return tx, nil
}

// AssignTrader reserves the trader's collateral for an IN transaction.
// The freezing parameters are computed exactly once here and persisted;
// the trader's frozenUsdt grows by the total requirement.
func (uc *DefaultTransactionUsecase) AssignTrader(ctx context.Context, input AssignTraderInput) (*domain.Transaction, error) {
	var out *domain.Transaction

	err := uc.store.WithinTx(ctx, func(s domain.Store) error {
		tx, err := s.Transactions().GetByIDForUpdate(ctx, input.TransactionID)
		if err != nil {
			return err
		}
		if tx == nil {
			return domain.ErrTransactionNotFound
		}
		if tx.Status.IsTerminal() {
			return domain.ErrTransactionFinalized
		}

		if tx.Type != domain.TypeIn {
			tx.TraderID = input.TraderID
			out = tx
			return s.Transactions().Update(ctx, tx)
		}

		if tx.Rate == nil {
			return domain.ErrRateNotSet
		}

		trader, err := s.Traders().GetByIDForUpdate(ctx, input.TraderID)
		if err != nil {
			return err
		}
		if trader == nil {
			return domain.ErrTraderNotFound
		}

		fp := domain.CalculateFreezing(tx.Amount, *tx.Rate, input.KkkPercent, input.FeeInPercent)
		if trader.TrustBalance < fp.TotalRequired {
			return domain.ErrInsufficientBalance
		}

		// Reassignment releases the previous trader's reservation first.
		if tx.TraderID != "" && tx.TraderID != input.TraderID && tx.FreezingSet() {
			released := *tx.FrozenUsdtAmount + *tx.CalculatedCommission
			if err := s.Traders().AdjustBalances(ctx, tx.TraderID, domain.BalanceDelta{FrozenUsdt: -released}); err != nil {
				return err
			}
		}

		tx.TraderID = input.TraderID
		tx.AdjustedRate = &fp.AdjustedRate
		tx.KkkPercent = &input.KkkPercent
		tx.FeeInPercent = &input.FeeInPercent
		tx.FrozenUsdtAmount = &fp.FrozenUsdtAmount
		tx.CalculatedCommission = &fp.CalculatedCommission

		if err := s.Traders().AdjustBalances(ctx, input.TraderID, domain.BalanceDelta{FrozenUsdt: fp.TotalRequired}); err != nil {
			return err
		}

		out = tx
		return s.Transactions().Update(ctx, tx)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateTransactionStatus is the admin-triggered transition. Status
// change and settlement commit as one unit; callbacks and events fire
// after the commit and never roll it back.
func (uc *DefaultTransactionUsecase) UpdateTransactionStatus(ctx context.Context, id string, newStatus domain.TransactionStatus) (*domain.Transaction, error) {
	var out *domain.Transaction

	err := uc.store.WithinTx(ctx, func(s domain.Store) error {
		tx, err := s.Transactions().GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if tx == nil {
			return domain.ErrTransactionNotFound
		}
		if tx.Status == newStatus {
			out = tx
			return nil
		}

		if err := uc.settle(ctx, s, tx, newStatus); err != nil {
			return err
		}

		tx.Status = newStatus
		if newStatus == domain.StatusReady && tx.AcceptedAt == nil {
			now := time.Now()
			tx.AcceptedAt = &now
		}

		out = tx
		return s.Transactions().Update(ctx, tx)
	})
	if err != nil {
		return nil, err
	}

	uc.afterTransition(ctx, out, newStatus)
	return out, nil
}

// CompleteMatch is the matcher-triggered READY transition. Within one
// store transaction it claims the notification (conditional write: a
// notification is consumed at most once, even under concurrent pollers),
// locks the best-fit candidate, applies settlement and links both rows.
// A nil transaction with nil error means the notification was consumed
// without a match.
func (uc *DefaultTransactionUsecase) CompleteMatch(ctx context.Context, notificationID string, q domain.MatchQuery) (*domain.Transaction, error) {
	var matched *domain.Transaction

	err := uc.store.WithinTx(ctx, func(s domain.Store) error {
		claimed, err := s.Notifications().MarkProcessed(ctx, notificationID, domain.ProcessedReasonMatched)
		if err != nil {
			return err
		}
		if !claimed {
			// Another instance got here first; nothing to re-check.
			return nil
		}

		cand, err := s.Transactions().FindMatchCandidate(ctx, q)
		if err != nil {
			return err
		}
		if cand == nil {
			return s.Notifications().SetProcessedReason(ctx, notificationID, domain.ProcessedReasonNoMatch)
		}

		if err := uc.settle(ctx, s, cand, domain.StatusReady); err != nil {
			return err
		}

		now := time.Now()
		cand.Status = domain.StatusReady
		cand.AcceptedAt = &now
		cand.MatchedNotificationID = &notificationID

		matched = cand
		return s.Transactions().Update(ctx, cand)
	})
	if err != nil {
		return nil, err
	}

	if matched != nil {
		uc.afterTransition(ctx, matched, domain.StatusReady)
	}
	return matched, nil
}

// ExpireOverdue sweeps transactions past expired_at into EXPIRED,
// releasing collateral. Per-transaction failures are logged and the
// sweep continues.
func (uc *DefaultTransactionUsecase) ExpireOverdue(ctx context.Context) error {
	expired, err := uc.store.Transactions().FindExpired(ctx, time.Now(), 100)
	if err != nil {
		return err
	}

	for _, tx := range expired {
		if _, err := uc.UpdateTransactionStatus(ctx, tx.ID, domain.StatusExpired); err != nil {
			slog.Error("failed to expire transaction", "transaction_id", tx.ID, "error", err.Error())
			continue
		}
		uc.metrics.TransactionsExpiredTotal.Inc()
		slog.Info("transaction expired", "transaction_id", tx.ID)
	}

	return nil
}

// settle applies the balance rules for transitioning tx into newStatus.
// Missing optional fields (no trader, no rate) skip the mutation
// silently: a transaction can be administratively finalized before full
// assignment. Each rule fires only when the previous status qualifies,
// which is what makes re-applying a transition a no-op.
func (uc *DefaultTransactionUsecase) settle(ctx context.Context, s domain.Store, tx *domain.Transaction, newStatus domain.TransactionStatus) error {
	prev := tx.Status

	switch {
	case (newStatus == domain.StatusCanceled || newStatus == domain.StatusExpired) && !prev.IsTerminal():
		return uc.settleUnfreeze(ctx, s, tx, newStatus)

	case newStatus == domain.StatusReady && prev != domain.StatusReady && tx.Type == domain.TypeIn:
		return uc.settlePayInReady(ctx, s, tx)

	case newStatus == domain.StatusReady && prev != domain.StatusReady && tx.Type == domain.TypeOut:
		return uc.settlePayOutReady(ctx, s, tx)
	}

	return nil
}

func (uc *DefaultTransactionUsecase) settleUnfreeze(ctx context.Context, s domain.Store, tx *domain.Transaction, newStatus domain.TransactionStatus) error {
	if tx.Type != domain.TypeIn || tx.TraderID == "" || !tx.FreezingSet() {
		return nil
	}

	total := *tx.FrozenUsdtAmount + *tx.CalculatedCommission

	// The expiry sweep runs unattended; it releases only what is still
	// frozen so a drifted ledger cannot be driven negative.
	if newStatus == domain.StatusExpired {
		trader, err := s.Traders().GetByIDForUpdate(ctx, tx.TraderID)
		if err != nil {
			return err
		}
		if trader == nil || trader.FrozenUsdt < total {
			slog.Warn("skipping unfreeze on expiry: frozen balance below reservation",
				"transaction_id", tx.ID, "trader_id", tx.TraderID, "required", total)
			return nil
		}
	}

	if err := s.Traders().AdjustBalances(ctx, tx.TraderID, domain.BalanceDelta{FrozenUsdt: -total}); err != nil {
		return err
	}

	uc.metrics.SettlementsTotal.WithLabelValues(string(newStatus), string(tx.Type)).Inc()
	return nil
}

// settlePayInReady uses three deliberately different rates: the merchant
// is credited at the quoted rate inflated by the method's payin
// commission, the trader's spend is valued at the plain quoted rate, and
// the released reservation was built on the discounted (adjusted) rate.
// The spread between them is the trader's profit.
func (uc *DefaultTransactionUsecase) settlePayInReady(ctx context.Context, s domain.Store, tx *domain.Transaction) error {
	if tx.Rate != nil {
		method, err := s.Methods().GetByID(ctx, tx.MethodID)
		if err != nil {
			return err
		}
		if method != nil {
			rateWithFee := *tx.Rate * (1 + method.CommissionPayin/100)
			if err := s.Merchants().AdjustBalance(ctx, tx.MerchantID, tx.Amount/rateWithFee); err != nil {
				return err
			}
		}
	}

	if tx.TraderID != "" && tx.FreezingSet() && tx.Rate != nil {
		totalFrozen := *tx.FrozenUsdtAmount + *tx.CalculatedCommission
		actualSpent := tx.Amount / *tx.Rate

		delta := domain.BalanceDelta{
			FrozenUsdt:  -totalFrozen,
			BalanceUsdt: -actualSpent,
		}
		if profit := domain.RoundDown2(*tx.FrozenUsdtAmount - actualSpent + *tx.CalculatedCommission); profit > 0 {
			delta.ProfitFromDeals = profit
		}

		if err := s.Traders().AdjustBalances(ctx, tx.TraderID, delta); err != nil {
			return err
		}
	}

	uc.metrics.SettlementsTotal.WithLabelValues(string(domain.StatusReady), string(domain.TypeIn)).Inc()
	return nil
}

// settlePayOutReady debits the trader for a completed payout. The trader
// keeps profitPercent implicitly by paying less than face value, and for
// non-settlement currencies converts at the rate net of stakePercent.
func (uc *DefaultTransactionUsecase) settlePayOutReady(ctx context.Context, s domain.Store, tx *domain.Transaction) error {
	if tx.TraderID == "" {
		return nil
	}

	trader, err := s.Traders().GetByIDForUpdate(ctx, tx.TraderID)
	if err != nil {
		return err
	}
	if trader == nil {
		return nil
	}

	rubAfter := tx.Amount * (1 - trader.ProfitPercent/100)
	deduct := rubAfter
	if tx.Rate != nil && !strings.EqualFold(tx.Currency, "usdt") {
		if rateAdj := *tx.Rate * (1 - trader.StakePercent/100); rateAdj > 0 {
			deduct = rubAfter / rateAdj
		}
	}

	if err := s.Traders().AdjustBalances(ctx, tx.TraderID, domain.BalanceDelta{BalanceUsdt: -deduct}); err != nil {
		return err
	}

	uc.metrics.SettlementsTotal.WithLabelValues(string(domain.StatusReady), string(domain.TypeOut)).Inc()
	return nil
}

// afterTransition fires the non-critical side effects of a committed
// terminal transition: merchant callbacks and the Kafka event. Both run
// off the caller's goroutine and swallow their own failures.
func (uc *DefaultTransactionUsecase) afterTransition(ctx context.Context, tx *domain.Transaction, status domain.TransactionStatus) {
	if !status.IsTerminal() {
		return
	}

	merchantToken := ""
	if merchant, err := uc.store.Merchants().GetByID(ctx, tx.MerchantID); err == nil && merchant != nil {
		merchantToken = merchant.Token
	}

	if uc.dispatcher != nil {
		go uc.dispatcher.SendTransactionCallbacks(tx, status, merchantToken)
	}

	if uc.events != nil {
		go func(event publisher.TransactionEvent) {
			if err := uc.events.PublishTransaction(event); err != nil {
				slog.Error("failed to publish transaction event", "transaction_id", event.TransactionID, "error", err.Error())
			}
		}(publisher.TransactionEvent{
			TransactionID: tx.ID,
			MerchantID:    tx.MerchantID,
			TraderID:      tx.TraderID,
			Status:        string(status),
			Type:          string(tx.Type),
			Amount:        tx.Amount,
			Currency:      tx.Currency,
		})
	}
}
