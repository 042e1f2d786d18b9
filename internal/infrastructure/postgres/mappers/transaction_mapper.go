package mappers

import (
	"github.com/chasepay/processing-service/internal/domain"
	"github.com/chasepay/processing-service/internal/infrastructure/postgres/models"
)

func ToDomainTransaction(model *models.TransactionModel) *domain.Transaction {
	return &domain.Transaction{
		ID:          model.ID,
		MerchantID:  model.MerchantID,
		MethodID:    model.MethodID,
		TraderID:    model.TraderID,
		RequisiteID: model.RequisiteID,
		Amount:      model.Amount,
		Currency:    model.Currency,
		Rate:        model.Rate,
		Status:      domain.TransactionStatus(model.Status),
		Type:        domain.TransactionType(model.Type),

		AdjustedRate:         model.AdjustedRate,
		KkkPercent:           model.KkkPercent,
		FeeInPercent:         model.FeeInPercent,
		FrozenUsdtAmount:     model.FrozenUsdtAmount,
		CalculatedCommission: model.CalculatedCommission,

		MatchedNotificationID: model.MatchedNotificationID,

		CallbackURI: model.CallbackURI,
		SuccessURI:  model.SuccessURI,
		FailURI:     model.FailURI,

		ExpiredAt:  model.ExpiredAt,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
		AcceptedAt: model.AcceptedAt,
	}
}

func ToGORMTransaction(tx *domain.Transaction) *models.TransactionModel {
	return &models.TransactionModel{
		ID:          tx.ID,
		MerchantID:  tx.MerchantID,
		MethodID:    tx.MethodID,
		TraderID:    tx.TraderID,
		RequisiteID: tx.RequisiteID,
		Amount:      tx.Amount,
		Currency:    tx.Currency,
		Rate:        tx.Rate,
		Status:      string(tx.Status),
		Type:        string(tx.Type),

		AdjustedRate:         tx.AdjustedRate,
		KkkPercent:           tx.KkkPercent,
		FeeInPercent:         tx.FeeInPercent,
		FrozenUsdtAmount:     tx.FrozenUsdtAmount,
		CalculatedCommission: tx.CalculatedCommission,

		MatchedNotificationID: tx.MatchedNotificationID,

		CallbackURI: tx.CallbackURI,
		SuccessURI:  tx.SuccessURI,
		FailURI:     tx.FailURI,

		ExpiredAt:  tx.ExpiredAt,
		CreatedAt:  tx.CreatedAt,
		UpdatedAt:  tx.UpdatedAt,
		AcceptedAt: tx.AcceptedAt,
	}
}
