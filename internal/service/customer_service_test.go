package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rafaelks1020/crm-web-whatsapp/internal/domain"
)

func TestCustomerServiceCreateDefaultsToActive(t *testing.T) {
	t.Parallel()

	var created *domain.Customer
	customers := &fakeCustomerRepo{
		createFn: func(ctx context.Context, c *domain.Customer) error {
			created = c
			return nil
		},
	}

	svc, err := NewCustomerService(customers, nil)
	if err != nil {
		t.Fatalf("NewCustomerService() error = %v", err)
	}

	result, err := svc.Create(context.Background(), &domain.Customer{
		Name:  "Maria",
		Phone: "11988887777",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if result.ID == "" {
		t.Fatal("expected generated id")
	}
	if result.Status != domain.CustomerActive {
		t.Fatalf("status = %s, want ACTIVE", result.Status)
	}
	if created == nil {
		t.Fatal("expected repository create call")
	}
}

func TestCustomerServiceCreateValidation(t *testing.T) {
	t.Parallel()

	svc, err := NewCustomerService(&fakeCustomerRepo{}, nil)
	if err != nil {
		t.Fatalf("NewCustomerService() error = %v", err)
	}

	_, err = svc.Create(context.Background(), &domain.Customer{Name: "Sem Telefone"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("Create() error = %v, want ErrValidation", err)
	}
}

func TestCustomerServiceCreateDuplicatePhone(t *testing.T) {
	t.Parallel()

	customers := &fakeCustomerRepo{
		createFn: func(ctx context.Context, c *domain.Customer) error {
			return domain.ErrConflict
		},
	}

	svc, err := NewCustomerService(customers, nil)
	if err != nil {
		t.Fatalf("NewCustomerService() error = %v", err)
	}

	_, err = svc.Create(context.Background(), &domain.Customer{
		Name:  "Maria",
		Phone: "11988887777",
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("Create() error = %v, want ErrConflict", err)
	}
}

func TestCustomerServiceGetByIDRequiresID(t *testing.T) {
	t.Parallel()

	svc, err := NewCustomerService(&fakeCustomerRepo{}, nil)
	if err != nil {
		t.Fatalf("NewCustomerService() error = %v", err)
	}

	_, err = svc.GetByID(context.Background(), "  ")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("GetByID() error = %v, want ErrValidation", err)
	}
}
