package repository

import (
	"context"

	"github.com/rafaelks1020/crm-web-whatsapp/internal/domain"
	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.MessageRecord) error
	ListByCustomer(ctx context.Context, customerID string, limit int) ([]domain.MessageRecord, error)
}

type GormMessageRepo struct {
	db *gorm.DB
}

func NewGormMessageRepo(db *gorm.DB) *GormMessageRepo {
	return &GormMessageRepo{db: db}
}

func (r *GormMessageRepo) Create(ctx context.Context, msg *domain.MessageRecord) error {
	model := messageModelFromDomain(msg)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	if msg != nil {
		*msg = *messageModelToDomain(model)
	}
	return nil
}

func (r *GormMessageRepo) ListByCustomer(ctx context.Context, customerID string, limit int) ([]domain.MessageRecord, error) {
	if limit < 1 {
		limit = 50
	}
	limit = min(limit, 100)

	var models []MessageModel
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	messages := make([]domain.MessageRecord, 0, len(models))
	for i := range models {
		messages = append(messages, *messageModelToDomain(&models[i]))
	}

	return messages, nil
}
