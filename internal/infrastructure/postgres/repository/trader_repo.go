package repository

import (
	"context"
	"errors"

	"github.com/chasepay/processing-service/internal/domain"
	"github.com/chasepay/processing-service/internal/infrastructure/postgres/mappers"
	"github.com/chasepay/processing-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultTraderRepository struct {
	DB *gorm.DB
}

func NewDefaultTraderRepository(db *gorm.DB) *DefaultTraderRepository {
	return &DefaultTraderRepository{DB: db}
}

func (r *DefaultTraderRepository) GetByID(ctx context.Context, id string) (*domain.Trader, error) {
	var model models.TraderModel
	if err := r.DB.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mappers.ToDomainTrader(&model), nil
}

func (r *DefaultTraderRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Trader, error) {
	var model models.TraderModel
	err := r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mappers.ToDomainTrader(&model), nil
}

// AdjustBalances applies the delta with in-database arithmetic so
// concurrent settlements never lose increments.
func (r *DefaultTraderRepository) AdjustBalances(ctx context.Context, id string, delta domain.BalanceDelta) error {
	updates := map[string]interface{}{}
	if delta.BalanceUsdt != 0 {
		updates["balance_usdt"] = gorm.Expr("balance_usdt + ?", delta.BalanceUsdt)
	}
	if delta.TrustBalance != 0 {
		updates["trust_balance"] = gorm.Expr("trust_balance + ?", delta.TrustBalance)
	}
	if delta.FrozenUsdt != 0 {
		updates["frozen_usdt"] = gorm.Expr("frozen_usdt + ?", delta.FrozenUsdt)
	}
	if delta.ProfitFromDeals != 0 {
		updates["profit_from_deals"] = gorm.Expr("profit_from_deals + ?", delta.ProfitFromDeals)
	}
	if len(updates) == 0 {
		return nil
	}

	return r.DB.WithContext(ctx).
		Model(&models.TraderModel{}).
		Where("id = ?", id).
		Updates(updates).Error
}
