package mappers

import (
	"github.com/chasepay/processing-service/internal/domain"
	"github.com/chasepay/processing-service/internal/infrastructure/postgres/models"
)

func ToDomainCallback(model *models.CallbackHistoryModel) *domain.CallbackHistory {
	return &domain.CallbackHistory{
		ID:            model.ID,
		TransactionID: model.TransactionID,
		URL:           model.URL,
		Payload:       model.Payload,
		Response:      model.Response,
		StatusCode:    model.StatusCode,
		Error:         model.Error,
		CreatedAt:     model.CreatedAt,
	}
}

func ToGORMCallback(h *domain.CallbackHistory) *models.CallbackHistoryModel {
	return &models.CallbackHistoryModel{
		ID:            h.ID,
		TransactionID: h.TransactionID,
		URL:           h.URL,
		Payload:       h.Payload,
		Response:      h.Response,
		StatusCode:    h.StatusCode,
		Error:         h.Error,
		CreatedAt:     h.CreatedAt,
	}
}
