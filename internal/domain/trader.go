package domain

import (
	"context"
	"time"
)

// Trader holds bank requisites and fulfills payments. All ledger fields
// are denominated in the settlement currency (USDT) and are mutated
// exclusively by transaction status transitions: frozenUsdt always equals
// the sum of frozenUsdtAmount+calculatedCommission over the trader's
// non-terminal IN transactions with freezing set.
type Trader struct {
	ID              string
	Name            string
	BalanceUsdt     float64
	TrustBalance    float64
	FrozenUsdt      float64
	ProfitFromDeals float64
	// Payout economics for OUT transactions.
	ProfitPercent float64
	StakePercent  float64
}

type Merchant struct {
	ID          string
	Name        string
	Token       string
	BalanceUsdt float64
}

type Method struct {
	ID              string
	Code            string
	Name            string
	CommissionPayin float64
}

// BankRequisite is a card/account the trader receives transfers on.
type BankRequisite struct {
	ID            string
	TraderID      string
	DeviceID      string
	BankType      string
	CardNumber    string
	RecipientName string
}

type Device struct {
	ID           string
	TraderID     string
	Name         string
	Online       bool
	LastActiveAt *time.Time
	CreatedAt    time.Time
}

// BalanceDelta is one atomic adjustment of a trader's ledger fields.
// Zero fields are left untouched.
type BalanceDelta struct {
	BalanceUsdt     float64
	TrustBalance    float64
	FrozenUsdt      float64
	ProfitFromDeals float64
}

type TraderRepository interface {
	GetByID(ctx context.Context, id string) (*Trader, error)
	GetByIDForUpdate(ctx context.Context, id string) (*Trader, error)
	AdjustBalances(ctx context.Context, id string, delta BalanceDelta) error
}

type MerchantRepository interface {
	GetByID(ctx context.Context, id string) (*Merchant, error)
	AdjustBalance(ctx context.Context, id string, amountUsdt float64) error
}

type MethodRepository interface {
	GetByID(ctx context.Context, id string) (*Method, error)
}

type DeviceRepository interface {
	GetByID(ctx context.Context, id string) (*Device, error)
	UpdateLiveness(ctx context.Context, id string, pingTime time.Time) error
	// MarkOffline flips devices online→offline whose last ping is older
	// than threshold, returning how many rows changed.
	MarkOffline(ctx context.Context, threshold time.Time) (int64, error)
}
