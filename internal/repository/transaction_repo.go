package repository

import (
	"context"
	"time"

	"github.com/rafaelks1020/crm-web-whatsapp/internal/domain"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(ctx context.Context, tr *domain.Transaction) error
	ListByCustomer(ctx context.Context, customerID string, limit int) ([]domain.Transaction, error)
	SumAmountByType(ctx context.Context, txType domain.TransactionType, since time.Time) (float64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

type GormTransactionRepo struct {
	db *gorm.DB
}

func NewGormTransactionRepo(db *gorm.DB) *GormTransactionRepo {
	return &GormTransactionRepo{db: db}
}

func (r *GormTransactionRepo) Create(ctx context.Context, tr *domain.Transaction) error {
	model := transactionModelFromDomain(tr)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	if tr != nil {
		*tr = *transactionModelToDomain(model)
	}
	return nil
}

func (r *GormTransactionRepo) ListByCustomer(ctx context.Context, customerID string, limit int) ([]domain.Transaction, error) {
	if limit < 1 {
		limit = 50
	}
	limit = min(limit, 100)

	var models []TransactionModel
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	transactions := make([]domain.Transaction, 0, len(models))
	for i := range models {
		transactions = append(transactions, *transactionModelToDomain(&models[i]))
	}

	return transactions, nil
}

func (r *GormTransactionRepo) SumAmountByType(ctx context.Context, txType domain.TransactionType, since time.Time) (float64, error) {
	var total *float64
	err := r.db.WithContext(ctx).
		Model(&TransactionModel{}).
		Select("SUM(amount)").
		Where("type = ? AND created_at >= ?", txType, since).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

func (r *GormTransactionRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&TransactionModel{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}
