package domain

import (
	"context"
	"time"
)

type TransactionStatus string

const (
	StatusCreated    TransactionStatus = "CREATED"
	StatusInProgress TransactionStatus = "IN_PROGRESS"
	StatusDispute    TransactionStatus = "DISPUTE"
	StatusExpired    TransactionStatus = "EXPIRED"
	StatusReady      TransactionStatus = "READY"
	StatusMilk       TransactionStatus = "MILK"
	StatusCanceled   TransactionStatus = "CANCELED"
)

type TransactionType string

const (
	TypeIn  TransactionType = "IN"
	TypeOut TransactionType = "OUT"
)

// Transaction is one payment obligation: fiat in from a client (IN)
// or a payout to a client (OUT).
type Transaction struct {
	ID          string
	MerchantID  string
	MethodID    string
	TraderID    string // empty until a trader is assigned
	RequisiteID string
	Amount      float64 // fiat, e.g. RUB
	Currency    string
	Rate        *float64 // fiat per settlement unit, nil until quoted
	Status      TransactionStatus
	Type        TransactionType

	// Freezing fields, populated together at trader assignment for IN.
	AdjustedRate         *float64
	KkkPercent           *float64
	FeeInPercent         *float64
	FrozenUsdtAmount     *float64
	CalculatedCommission *float64

	MatchedNotificationID *string

	CallbackURI string
	SuccessURI  string
	FailURI     string

	ExpiredAt  time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
	AcceptedAt *time.Time
}

// IsTerminal reports whether the status admits no further settlement.
func (s TransactionStatus) IsTerminal() bool {
	return s == StatusReady || s == StatusCanceled || s == StatusExpired
}

// FreezingSet reports whether collateral was reserved for this transaction.
// FrozenUsdtAmount and CalculatedCommission are set together or not at all.
func (t *Transaction) FreezingSet() bool {
	return t.FrozenUsdtAmount != nil && t.CalculatedCommission != nil
}

// MatchQuery describes the candidate search the matcher runs for one
// parsed notification. An empty BankType means "any bank" (SBP transfers
// arrive through any banking app, unclassified notifications must not be
// over-restricted).
type MatchQuery struct {
	TraderID  string
	Amount    float64
	Tolerance float64
	BankType  string
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *Transaction) error
	GetByID(ctx context.Context, id string) (*Transaction, error)
	// GetByIDForUpdate locks the row until the surrounding store
	// transaction commits.
	GetByIDForUpdate(ctx context.Context, id string) (*Transaction, error)
	Update(ctx context.Context, tx *Transaction) error
	// FindMatchCandidate returns the newest IN/IN_PROGRESS transaction of
	// the trader within the amount tolerance, row-locked, or nil.
	FindMatchCandidate(ctx context.Context, q MatchQuery) (*Transaction, error)
	FindExpired(ctx context.Context, now time.Time, limit int) ([]*Transaction, error)
}
