package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/rafaelks1020/crm-web-whatsapp/internal/domain"
	"gorm.io/gorm"
)

type CustomerListParams struct {
	Status   *domain.CustomerStatus
	Page     int
	PageSize int
}

type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	List(ctx context.Context, params CustomerListParams) ([]domain.Customer, int64, error)
	AdjustBalance(ctx context.Context, id string, delta float64) error
	CountActive(ctx context.Context) (int64, error)
}

type GormCustomerRepo struct {
	db *gorm.DB
}

func NewGormCustomerRepo(db *gorm.DB) *GormCustomerRepo {
	return &GormCustomerRepo{db: db}
}

func (r *GormCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	model := customerModelFromDomain(c)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return err
	}
	if c != nil {
		*c = *customerModelToDomain(model)
	}
	return nil
}

func (r *GormCustomerRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	var model CustomerModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return customerModelToDomain(&model), nil
}

func (r *GormCustomerRepo) GetByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	var model CustomerModel
	err := r.db.WithContext(ctx).First(&model, "phone = ?", phone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return customerModelToDomain(&model), nil
}

func (r *GormCustomerRepo) List(ctx context.Context, params CustomerListParams) ([]domain.Customer, int64, error) {
	query := r.db.WithContext(ctx).Model(&CustomerModel{})

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := max(params.Page, 1)
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = 50
	}
	pageSize = min(pageSize, 100)

	var models []CustomerModel
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	customers := make([]domain.Customer, 0, len(models))
	for i := range models {
		customers = append(customers, *customerModelToDomain(&models[i]))
	}

	return customers, total, nil
}

func (r *GormCustomerRepo) AdjustBalance(ctx context.Context, id string, delta float64) error {
	result := r.db.WithContext(ctx).
		Model(&CustomerModel{}).
		Where("id = ?", id).
		Update("current_balance", gorm.Expr("current_balance + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormCustomerRepo) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&CustomerModel{}).
		Where("status = ?", domain.CustomerActive).
		Count(&count).Error
	return count, err
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "duplicate key") ||
		strings.Contains(err.Error(), "23505")
}
