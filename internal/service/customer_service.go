package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rafaelks1020/crm-web-whatsapp/internal/domain"
	"github.com/rafaelks1020/crm-web-whatsapp/internal/repository"
	"go.uber.org/zap"
)

type CustomerService struct {
	customers repository.CustomerRepository
	logger    *zap.Logger
}

func NewCustomerService(customers repository.CustomerRepository, logger *zap.Logger) (*CustomerService, error) {
	if customers == nil {
		return nil, fmt.Errorf("customer repository is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CustomerService{
		customers: customers,
		logger:    logger,
	}, nil
}

func (s *CustomerService) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: customer is required", domain.ErrValidation)
	}

	customer.ID = uuid.NewString()
	if customer.Status == "" {
		customer.Status = domain.CustomerActive
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}

	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("customer created",
		zap.String("customerId", customer.ID),
		zap.String("status", customer.Status.String()),
	)

	return customer, nil
}

func (s *CustomerService) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: customer id is required", domain.ErrValidation)
	}
	return s.customers.GetByID(ctx, strings.TrimSpace(id))
}

func (s *CustomerService) List(ctx context.Context, params repository.CustomerListParams) ([]domain.Customer, int64, error) {
	return s.customers.List(ctx, params)
}
