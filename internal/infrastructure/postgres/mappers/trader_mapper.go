package mappers

import (
	"github.com/chasepay/processing-service/internal/domain"
	"github.com/chasepay/processing-service/internal/infrastructure/postgres/models"
)

func ToDomainTrader(model *models.TraderModel) *domain.Trader {
	return &domain.Trader{
		ID:              model.ID,
		Name:            model.Name,
		BalanceUsdt:     model.BalanceUsdt,
		TrustBalance:    model.TrustBalance,
		FrozenUsdt:      model.FrozenUsdt,
		ProfitFromDeals: model.ProfitFromDeals,
		ProfitPercent:   model.ProfitPercent,
		StakePercent:    model.StakePercent,
	}
}

func ToDomainMerchant(model *models.MerchantModel) *domain.Merchant {
	return &domain.Merchant{
		ID:          model.ID,
		Name:        model.Name,
		Token:       model.Token,
		BalanceUsdt: model.BalanceUsdt,
	}
}

func ToDomainMethod(model *models.MethodModel) *domain.Method {
	return &domain.Method{
		ID:              model.ID,
		Code:            model.Code,
		Name:            model.Name,
		CommissionPayin: model.CommissionPayin,
	}
}
