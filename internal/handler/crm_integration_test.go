package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rafaelks1020/crm-web-whatsapp/internal/domain"
	"github.com/rafaelks1020/crm-web-whatsapp/internal/repository"
	"github.com/rafaelks1020/crm-web-whatsapp/internal/transport"
	"go.uber.org/zap"
)

func TestCustomerIntegration_CreateCustomer(t *testing.T) {
	t.Parallel()

	customers := &stubCustomerService{
		createFn: func(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
			if err := customer.Validate(); err != nil {
				return nil, err
			}
			if customer.Phone == "11988887777" {
				return nil, domain.ErrConflict
			}
			customer.ID = "c-created"
			return customer, nil
		},
	}

	app := newCRMTestApp(t, customers, &stubTransactionService{})

	validBody := `{"name":"Maria Silva","phone":"11999999999","credit_limit":500}`
	resp, body := performRequest(t, app, http.MethodPost, "/api/customers", validBody)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201, body=%s", resp.StatusCode, string(body))
	}
	var created map[string]any
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("json unmarshal error = %v", err)
	}
	if created["customer_id"] != "c-created" {
		t.Fatalf("customer_id = %v, want c-created", created["customer_id"])
	}

	missingNameBody := `{"name":"","phone":"11999999999"}`
	resp, _ = performRequest(t, app, http.MethodPost, "/api/customers", missingNameBody)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for missing name", resp.StatusCode)
	}

	duplicateBody := `{"name":"Maria Silva","phone":"11988887777"}`
	resp, _ = performRequest(t, app, http.MethodPost, "/api/customers", duplicateBody)
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("status = %d, want 409 for duplicate phone", resp.StatusCode)
	}
}

func TestCustomerIntegration_GetCustomer(t *testing.T) {
	t.Parallel()

	customers := &stubCustomerService{
		getByIDFn: func(ctx context.Context, id string) (*domain.Customer, error) {
			if id != "c-found" {
				return nil, domain.ErrNotFound
			}
			return &domain.Customer{
				ID:             "c-found",
				Name:           "Maria Silva",
				Phone:          "+5511999999999",
				Status:         domain.CustomerActive,
				CurrentBalance: -120.5,
			}, nil
		},
	}

	app := newCRMTestApp(t, customers, &stubTransactionService{})

	resp, body := performRequest(t, app, http.MethodGet, "/api/customers/c-found", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", resp.StatusCode, string(body))
	}

	var parsed struct {
		Success  bool `json:"success"`
		Customer struct {
			ID             string  `json:"id"`
			Status         string  `json:"status"`
			CurrentBalance float64 `json:"current_balance"`
		} `json:"customer"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("json unmarshal error = %v", err)
	}
	if parsed.Customer.ID != "c-found" || parsed.Customer.Status != "active" {
		t.Fatalf("customer = %+v, want c-found/active", parsed.Customer)
	}
	if parsed.Customer.CurrentBalance != -120.5 {
		t.Fatalf("current_balance = %v, want -120.5", parsed.Customer.CurrentBalance)
	}

	resp, _ = performRequest(t, app, http.MethodGet, "/api/customers/not-exists", "")
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestCustomerIntegration_ListCustomersFilters(t *testing.T) {
	t.Parallel()

	customers := &stubCustomerService{
		listFn: func(ctx context.Context, params repository.CustomerListParams) ([]domain.Customer, int64, error) {
			if params.Page != 2 {
				t.Fatalf("page = %d, want 2", params.Page)
			}
			if params.PageSize != 10 {
				t.Fatalf("pageSize = %d, want 10", params.PageSize)
			}
			if params.Status == nil || *params.Status != domain.CustomerBlocked {
				t.Fatalf("status filter = %v, want BLOCKED", params.Status)
			}
			return []domain.Customer{
				{ID: "c-1", Name: "Maria", Phone: "+5511999999999", Status: domain.CustomerBlocked},
			}, 1, nil
		},
	}

	app := newCRMTestApp(t, customers, &stubTransactionService{})

	resp, body := performRequest(t, app, http.MethodGet,
		"/api/customers?page=2&page_size=10&status=blocked", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", resp.StatusCode, string(body))
	}

	var parsed struct {
		Success   bool             `json:"success"`
		Customers []map[string]any `json:"customers"`
		Total     int64            `json:"total"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("json unmarshal error = %v", err)
	}
	if len(parsed.Customers) != 1 || parsed.Total != 1 {
		t.Fatalf("customers=%d total=%d, want 1/1", len(parsed.Customers), parsed.Total)
	}

	resp, _ = performRequest(t, app, http.MethodGet, "/api/customers?status=weird", "")
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for invalid status filter", resp.StatusCode)
	}

	resp, _ = performRequest(t, app, http.MethodGet, "/api/customers?page=0", "")
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for page 0", resp.StatusCode)
	}
}

func TestCustomerIntegration_ListCustomerTransactions(t *testing.T) {
	t.Parallel()

	processedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	transactions := &stubTransactionService{
		listByCustomerFn: func(ctx context.Context, customerID string, limit int) ([]domain.Transaction, error) {
			if customerID != "c-1" {
				return nil, domain.ErrNotFound
			}
			return []domain.Transaction{
				{
					ID:          "t-1",
					CustomerID:  "c-1",
					Amount:      99.9,
					Type:        domain.TransactionCharge,
					Status:      domain.TransactionCompleted,
					ProcessedAt: &processedAt,
				},
			}, nil
		},
	}

	app := newCRMTestApp(t, &stubCustomerService{}, transactions)

	resp, body := performRequest(t, app, http.MethodGet, "/api/customers/c-1/transactions", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", resp.StatusCode, string(body))
	}

	var parsed struct {
		Success      bool `json:"success"`
		Transactions []struct {
			ID     string  `json:"id"`
			Amount float64 `json:"amount"`
			Type   string  `json:"transaction_type"`
			Status string  `json:"status"`
		} `json:"transactions"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("json unmarshal error = %v", err)
	}
	if len(parsed.Transactions) != 1 {
		t.Fatalf("transactions len = %d, want 1", len(parsed.Transactions))
	}
	if parsed.Transactions[0].Type != "charge" || parsed.Transactions[0].Status != "completed" {
		t.Fatalf("transaction = %+v, want charge/completed", parsed.Transactions[0])
	}

	resp, _ = performRequest(t, app, http.MethodGet, "/api/customers/ghost/transactions", "")
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404 for unknown customer", resp.StatusCode)
	}
}

func TestTransactionIntegration_CreateTransaction(t *testing.T) {
	t.Parallel()

	transactions := &stubTransactionService{
		createFn: func(ctx context.Context, tr *domain.Transaction) (*domain.Transaction, error) {
			if tr.Type != domain.TransactionPayment {
				t.Fatalf("type = %v, want PAYMENT", tr.Type)
			}
			if tr.Amount != 150 {
				t.Fatalf("amount = %v, want 150", tr.Amount)
			}
			tr.ID = "t-created"
			return tr, nil
		},
	}

	app := newCRMTestApp(t, &stubCustomerService{}, transactions)

	validBody := `{"customer_id":"c-1","amount":150,"transaction_type":"payment","description":"boleto"}`
	resp, body := performRequest(t, app, http.MethodPost, "/api/transactions", validBody)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201, body=%s", resp.StatusCode, string(body))
	}

	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("json unmarshal error = %v", err)
	}
	if parsed["transaction_id"] != "t-created" {
		t.Fatalf("transaction_id = %v, want t-created", parsed["transaction_id"])
	}

	invalidTypeBody := `{"customer_id":"c-1","amount":150,"transaction_type":"donation"}`
	resp, _ = performRequest(t, app, http.MethodPost, "/api/transactions", invalidTypeBody)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for invalid type", resp.StatusCode)
	}
}

func TestTransactionIntegration_Summary(t *testing.T) {
	t.Parallel()

	transactions := &stubTransactionService{
		summaryFn: func(ctx context.Context, days int) (*domain.FinancialSummary, error) {
			if days != 7 {
				t.Fatalf("days = %d, want 7", days)
			}
			return &domain.FinancialSummary{
				TotalRevenue:     1000,
				TotalCharges:     400,
				NetAmount:        600,
				TransactionCount: 12,
				ActiveCustomers:  5,
				PeriodDays:       7,
			}, nil
		},
	}

	app := newCRMTestApp(t, &stubCustomerService{}, transactions)

	resp, body := performRequest(t, app, http.MethodGet, "/api/summary?days=7", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", resp.StatusCode, string(body))
	}

	var parsed struct {
		Success bool `json:"success"`
		Summary struct {
			TotalRevenue     float64 `json:"total_revenue"`
			TotalCharges     float64 `json:"total_charges"`
			NetAmount        float64 `json:"net_amount"`
			TransactionCount int64   `json:"transaction_count"`
			ActiveCustomers  int64   `json:"active_customers"`
			PeriodDays       int     `json:"period_days"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("json unmarshal error = %v", err)
	}
	if parsed.Summary.NetAmount != 600 || parsed.Summary.PeriodDays != 7 {
		t.Fatalf("summary = %+v, want net 600 over 7 days", parsed.Summary)
	}

	resp, _ = performRequest(t, app, http.MethodGet, "/api/summary?days=-1", "")
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for negative days", resp.StatusCode)
	}
}

type stubCustomerService struct {
	createFn  func(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	getByIDFn func(ctx context.Context, id string) (*domain.Customer, error)
	listFn    func(ctx context.Context, params repository.CustomerListParams) ([]domain.Customer, int64, error)
}

func (s *stubCustomerService) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if s.createFn != nil {
		return s.createFn(ctx, customer)
	}
	return nil, errors.New("not implemented")
}

func (s *stubCustomerService) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (s *stubCustomerService) List(
	ctx context.Context,
	params repository.CustomerListParams,
) ([]domain.Customer, int64, error) {
	if s.listFn != nil {
		return s.listFn(ctx, params)
	}
	return nil, 0, nil
}

type stubTransactionService struct {
	createFn         func(ctx context.Context, tr *domain.Transaction) (*domain.Transaction, error)
	listByCustomerFn func(ctx context.Context, customerID string, limit int) ([]domain.Transaction, error)
	summaryFn        func(ctx context.Context, days int) (*domain.FinancialSummary, error)
}

func (s *stubTransactionService) Create(ctx context.Context, tr *domain.Transaction) (*domain.Transaction, error) {
	if s.createFn != nil {
		return s.createFn(ctx, tr)
	}
	return nil, errors.New("not implemented")
}

func (s *stubTransactionService) ListByCustomer(
	ctx context.Context,
	customerID string,
	limit int,
) ([]domain.Transaction, error) {
	if s.listByCustomerFn != nil {
		return s.listByCustomerFn(ctx, customerID, limit)
	}
	return nil, nil
}

func (s *stubTransactionService) Summary(ctx context.Context, days int) (*domain.FinancialSummary, error) {
	if s.summaryFn != nil {
		return s.summaryFn(ctx, days)
	}
	return nil, errors.New("not implemented")
}

func newCRMTestApp(t *testing.T, customers CustomerService, transactions TransactionService) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{
		ErrorHandler: transport.ErrorHandler(zap.NewNop()),
	})

	if err := RegisterCustomerRoutes(app, customers, transactions); err != nil {
		t.Fatalf("RegisterCustomerRoutes() error = %v", err)
	}
	if err := RegisterTransactionRoutes(app, transactions); err != nil {
		t.Fatalf("RegisterTransactionRoutes() error = %v", err)
	}

	return app
}
