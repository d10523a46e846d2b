package service

import (
	"context"
	"time"

	"github.com/rafaelks1020/crm-web-whatsapp/internal/domain"
	"github.com/rafaelks1020/crm-web-whatsapp/internal/provider"
	"github.com/rafaelks1020/crm-web-whatsapp/internal/repository"
)

type fakeCustomerRepo struct {
	createFn        func(ctx context.Context, c *domain.Customer) error
	getByIDFn       func(ctx context.Context, id string) (*domain.Customer, error)
	getByPhoneFn    func(ctx context.Context, phone string) (*domain.Customer, error)
	listFn          func(ctx context.Context, params repository.CustomerListParams) ([]domain.Customer, int64, error)
	adjustBalanceFn func(ctx context.Context, id string, delta float64) error
	countActiveFn   func(ctx context.Context) (int64, error)
}

func (f *fakeCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	if f.createFn == nil {
		return nil
	}
	return f.createFn(ctx, c)
}

func (f *fakeCustomerRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	if f.getByIDFn == nil {
		return nil, domain.ErrNotFound
	}
	return f.getByIDFn(ctx, id)
}

func (f *fakeCustomerRepo) GetByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	if f.getByPhoneFn == nil {
		return nil, domain.ErrNotFound
	}
	return f.getByPhoneFn(ctx, phone)
}

func (f *fakeCustomerRepo) List(ctx context.Context, params repository.CustomerListParams) ([]domain.Customer, int64, error) {
	if f.listFn == nil {
		return nil, 0, nil
	}
	return f.listFn(ctx, params)
}

func (f *fakeCustomerRepo) AdjustBalance(ctx context.Context, id string, delta float64) error {
	if f.adjustBalanceFn == nil {
		return nil
	}
	return f.adjustBalanceFn(ctx, id, delta)
}

func (f *fakeCustomerRepo) CountActive(ctx context.Context) (int64, error) {
	if f.countActiveFn == nil {
		return 0, nil
	}
	return f.countActiveFn(ctx)
}

type fakeTransactionRepo struct {
	createFn         func(ctx context.Context, tr *domain.Transaction) error
	listByCustomerFn func(ctx context.Context, customerID string, limit int) ([]domain.Transaction, error)
	sumFn            func(ctx context.Context, txType domain.TransactionType, since time.Time) (float64, error)
	countSinceFn     func(ctx context.Context, since time.Time) (int64, error)
}

func (f *fakeTransactionRepo) Create(ctx context.Context, tr *domain.Transaction) error {
	if f.createFn == nil {
		return nil
	}
	return f.createFn(ctx, tr)
}

func (f *fakeTransactionRepo) ListByCustomer(ctx context.Context, customerID string, limit int) ([]domain.Transaction, error) {
	if f.listByCustomerFn == nil {
		return nil, nil
	}
	return f.listByCustomerFn(ctx, customerID, limit)
}

func (f *fakeTransactionRepo) SumAmountByType(ctx context.Context, txType domain.TransactionType, since time.Time) (float64, error) {
	if f.sumFn == nil {
		return 0, nil
	}
	return f.sumFn(ctx, txType, since)
}

func (f *fakeTransactionRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	if f.countSinceFn == nil {
		return 0, nil
	}
	return f.countSinceFn(ctx, since)
}

type fakeMessageRepo struct {
	createFn         func(ctx context.Context, msg *domain.MessageRecord) error
	listByCustomerFn func(ctx context.Context, customerID string, limit int) ([]domain.MessageRecord, error)
}

func (f *fakeMessageRepo) Create(ctx context.Context, msg *domain.MessageRecord) error {
	if f.createFn == nil {
		return nil
	}
	return f.createFn(ctx, msg)
}

func (f *fakeMessageRepo) ListByCustomer(ctx context.Context, customerID string, limit int) ([]domain.MessageRecord, error) {
	if f.listByCustomerFn == nil {
		return nil, nil
	}
	return f.listByCustomerFn(ctx, customerID, limit)
}

type fakeDispatcher struct {
	dispatchFn func(ctx context.Context, msg provider.OutboundMessage) provider.DispatchResult
	statusFn   func() provider.Status
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, msg provider.OutboundMessage) provider.DispatchResult {
	if f.dispatchFn == nil {
		return provider.DispatchResult{Success: true, Status: provider.StatusSent}
	}
	return f.dispatchFn(ctx, msg)
}

func (f *fakeDispatcher) Status() provider.Status {
	if f.statusFn == nil {
		return provider.Status{Provider: "personal-whatsapp", ProviderType: provider.TypePersonal}
	}
	return f.statusFn()
}

type fakeLimiter struct {
	allowFn func(ctx context.Context, providerName string) (bool, error)
	waitFn  func(ctx context.Context, providerName string) error
}

func (f *fakeLimiter) Allow(ctx context.Context, providerName string) (bool, error) {
	if f.allowFn == nil {
		return true, nil
	}
	return f.allowFn(ctx, providerName)
}

func (f *fakeLimiter) Wait(ctx context.Context, providerName string) error {
	if f.waitFn == nil {
		return nil
	}
	return f.waitFn(ctx, providerName)
}
