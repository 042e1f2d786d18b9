package repository

import (
	"context"
	"errors"
	"time"

	"github.com/chasepay/processing-service/internal/domain"
	"github.com/chasepay/processing-service/internal/infrastructure/postgres/mappers"
	"github.com/chasepay/processing-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultTransactionRepository struct {
	DB *gorm.DB
}

func NewDefaultTransactionRepository(db *gorm.DB) *DefaultTransactionRepository {
	return &DefaultTransactionRepository{DB: db}
}

func (r *DefaultTransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	return r.DB.WithContext(ctx).Create(mappers.ToGORMTransaction(tx)).Error
}

func (r *DefaultTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	var model models.TransactionModel
	if err := r.DB.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mappers.ToDomainTransaction(&model), nil
}

func (r *DefaultTransactionRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Transaction, error) {
	var model models.TransactionModel
	err := r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mappers.ToDomainTransaction(&model), nil
}

func (r *DefaultTransactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	return r.DB.WithContext(ctx).Save(mappers.ToGORMTransaction(tx)).Error
}

// FindMatchCandidate locks the newest pending IN transaction of the
// trader within the amount tolerance. The lock is scoped to the
// transactions table so the joined requisite rows stay unlocked.
func (r *DefaultTransactionRepository) FindMatchCandidate(ctx context.Context, q domain.MatchQuery) (*domain.Transaction, error) {
	query := r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "transaction_models"}}).
		Model(&models.TransactionModel{}).
		Joins("JOIN bank_requisite_models ON transaction_models.requisite_id = bank_requisite_models.id").
		Where("transaction_models.trader_id = ?", q.TraderID).
		Where("transaction_models.type = ?", string(domain.TypeIn)).
		Where("transaction_models.status = ?", string(domain.StatusInProgress)).
		Where("transaction_models.amount BETWEEN ? AND ?", q.Amount-q.Tolerance, q.Amount+q.Tolerance)

	if q.BankType != "" {
		query = query.Where("bank_requisite_models.bank_type = ?", q.BankType)
	}

	var model models.TransactionModel
	err := query.Order("transaction_models.created_at DESC").First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mappers.ToDomainTransaction(&model), nil
}

func (r *DefaultTransactionRepository) FindExpired(ctx context.Context, now time.Time, limit int) ([]*domain.Transaction, error) {
	var transactionModels []models.TransactionModel
	err := r.DB.WithContext(ctx).
		Where("status IN ?", []string{string(domain.StatusCreated), string(domain.StatusInProgress)}).
		Where("expired_at < ?", now).
		Order("expired_at ASC").
		Limit(limit).
		Find(&transactionModels).Error
	if err != nil {
		return nil, err
	}

	transactions := make([]*domain.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = mappers.ToDomainTransaction(&transactionModels[i])
	}
	return transactions, nil
}
