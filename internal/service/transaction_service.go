package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rafaelks1020/crm-web-whatsapp/internal/domain"
	"github.com/rafaelks1020/crm-web-whatsapp/internal/observability"
	"github.com/rafaelks1020/crm-web-whatsapp/internal/repository"
	"go.uber.org/zap"
)

const defaultSummaryDays = 30

type TransactionService struct {
	transactions repository.TransactionRepository
	customers    repository.CustomerRepository
	metrics      *observability.Metrics
	logger       *zap.Logger
	now          func() time.Time
}

func NewTransactionService(
	transactions repository.TransactionRepository,
	customers repository.CustomerRepository,
	metrics *observability.Metrics,
	logger *zap.Logger,
) (*TransactionService, error) {
	if transactions == nil {
		return nil, fmt.Errorf("transaction repository is required")
	}
	if customers == nil {
		return nil, fmt.Errorf("customer repository is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &TransactionService{
		transactions: transactions,
		customers:    customers,
		metrics:      metrics,
		logger:       logger,
		now:          time.Now,
	}, nil
}

// Create records the transaction and moves the customer balance when the
// type calls for it: payments add, charges subtract.
func (s *TransactionService) Create(ctx context.Context, tr *domain.Transaction) (*domain.Transaction, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if tr == nil {
		return nil, fmt.Errorf("%w: transaction is required", domain.ErrValidation)
	}

	tr.ID = uuid.NewString()
	if tr.Status == "" {
		tr.Status = domain.TransactionPending
	}
	if err := tr.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.customers.GetByID(ctx, tr.CustomerID); err != nil {
		return nil, err
	}

	if err := s.transactions.Create(ctx, tr); err != nil {
		return nil, err
	}

	if delta := tr.Type.BalanceDelta(tr.Amount); delta != 0 {
		if err := s.customers.AdjustBalance(ctx, tr.CustomerID, delta); err != nil {
			s.logger.Error("failed to adjust customer balance",
				zap.String("transactionId", tr.ID),
				zap.String("customerId", tr.CustomerID),
				zap.Float64("delta", delta),
				zap.Error(err),
			)
			return nil, fmt.Errorf("failed to adjust customer balance: %w", err)
		}
	}

	s.metrics.IncTransaction(tr.Type.String())
	s.logger.Info("transaction created",
		zap.String("transactionId", tr.ID),
		zap.String("customerId", tr.CustomerID),
		zap.String("type", tr.Type.String()),
		zap.Float64("amount", tr.Amount),
	)

	return tr, nil
}

func (s *TransactionService) ListByCustomer(ctx context.Context, customerID string, limit int) ([]domain.Transaction, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, fmt.Errorf("%w: customer id is required", domain.ErrValidation)
	}
	if _, err := s.customers.GetByID(ctx, strings.TrimSpace(customerID)); err != nil {
		return nil, err
	}
	return s.transactions.ListByCustomer(ctx, strings.TrimSpace(customerID), limit)
}

// Summary aggregates activity over the trailing window of days.
func (s *TransactionService) Summary(ctx context.Context, days int) (*domain.FinancialSummary, error) {
	if days < 1 {
		days = defaultSummaryDays
	}
	since := s.now().AddDate(0, 0, -days)

	revenue, err := s.transactions.SumAmountByType(ctx, domain.TransactionPayment, since)
	if err != nil {
		return nil, err
	}
	charges, err := s.transactions.SumAmountByType(ctx, domain.TransactionCharge, since)
	if err != nil {
		return nil, err
	}
	count, err := s.transactions.CountSince(ctx, since)
	if err != nil {
		return nil, err
	}
	activeCustomers, err := s.customers.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.FinancialSummary{
		TotalRevenue:     revenue,
		TotalCharges:     charges,
		NetAmount:        revenue - charges,
		TransactionCount: count,
		ActiveCustomers:  activeCustomers,
		PeriodDays:       days,
	}, nil
}
