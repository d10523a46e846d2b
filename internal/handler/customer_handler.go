package handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rafaelks1020/crm-web-whatsapp/internal/domain"
	"github.com/rafaelks1020/crm-web-whatsapp/internal/repository"
	"github.com/rafaelks1020/crm-web-whatsapp/internal/transport"
)

const (
	defaultPage     = 1
	defaultPageSize = 50
	maxPageSize     = 100
	defaultLimit    = 50
)

type CustomerService interface {
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context, params repository.CustomerListParams) ([]domain.Customer, int64, error)
}

type TransactionService interface {
	Create(ctx context.Context, tr *domain.Transaction) (*domain.Transaction, error)
	ListByCustomer(ctx context.Context, customerID string, limit int) ([]domain.Transaction, error)
	Summary(ctx context.Context, days int) (*domain.FinancialSummary, error)
}

type CustomerHandler struct {
	customers    CustomerService
	transactions TransactionService
}

func NewCustomerHandler(customers CustomerService, transactions TransactionService) (*CustomerHandler, error) {
	if customers == nil {
		return nil, fmt.Errorf("customer service is required")
	}
	if transactions == nil {
		return nil, fmt.Errorf("transaction service is required")
	}
	return &CustomerHandler{customers: customers, transactions: transactions}, nil
}

func RegisterCustomerRoutes(router fiber.Router, customers CustomerService, transactions TransactionService) error {
	h, err := NewCustomerHandler(customers, transactions)
	if err != nil {
		return err
	}

	api := router.Group("/api")
	api.Get("/customers", h.ListCustomers)
	api.Post("/customers", h.CreateCustomer)
	api.Get("/customers/:id", h.GetCustomer)
	api.Get("/customers/:id/transactions", h.ListCustomerTransactions)

	return nil
}

type createCustomerRequest struct {
	Name        string  `json:"name"`
	Phone       string  `json:"phone"`
	Email       string  `json:"email"`
	WhatsAppID  string  `json:"whatsapp_id"`
	CreditLimit float64 `json:"credit_limit"`
}

type customerResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email,omitempty"`
	WhatsAppID     string    `json:"whatsapp_id,omitempty"`
	Status         string    `json:"status"`
	CreditLimit    float64   `json:"credit_limit"`
	CurrentBalance float64   `json:"current_balance"`
	CreatedAt      time.Time `json:"created_at"`
}

type transactionResponse struct {
	ID          string     `json:"id"`
	CustomerID  string     `json:"customer_id"`
	Amount      float64    `json:"amount"`
	Type        string     `json:"transaction_type"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (h *CustomerHandler) CreateCustomer(c *fiber.Ctx) error {
	var req createCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	customer := domain.Customer{
		Name:        strings.TrimSpace(req.Name),
		Phone:       strings.TrimSpace(req.Phone),
		Email:       strings.TrimSpace(req.Email),
		WhatsAppID:  strings.TrimSpace(req.WhatsAppID),
		CreditLimit: req.CreditLimit,
	}

	created, err := h.customers.Create(c.Context(), &customer)
	if err != nil {
		return transport.ToHTTPError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"customer_id": created.ID,
	})
}

func (h *CustomerHandler) GetCustomer(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	customer, err := h.customers.GetByID(c.Context(), id)
	if err != nil {
		return transport.ToHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":  true,
		"customer": toCustomerResponse(customer),
	})
}

func (h *CustomerHandler) ListCustomers(c *fiber.Ctx) error {
	params := repository.CustomerListParams{
		Page:     c.QueryInt("page", defaultPage),
		PageSize: c.QueryInt("page_size", defaultPageSize),
	}

	if params.Page < 1 {
		return transport.ToHTTPError(fmt.Errorf("%w: page must be >= 1", domain.ErrValidation))
	}
	if params.PageSize < 1 || params.PageSize > maxPageSize {
		return transport.ToHTTPError(fmt.Errorf("%w: page_size must be between 1 and %d", domain.ErrValidation, maxPageSize))
	}

	if rawStatus := strings.TrimSpace(c.Query("status")); rawStatus != "" {
		status, err := domain.ParseCustomerStatusFromString(rawStatus)
		if err != nil {
			return transport.ToHTTPError(err)
		}
		params.Status = &status
	}

	customers, total, err := h.customers.List(c.Context(), params)
	if err != nil {
		return transport.ToHTTPError(err)
	}

	responses := make([]customerResponse, 0, len(customers))
	for i := range customers {
		responses = append(responses, toCustomerResponse(&customers[i]))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":   true,
		"customers": responses,
		"total":     total,
	})
}

func (h *CustomerHandler) ListCustomerTransactions(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	limit := c.QueryInt("limit", defaultLimit)

	transactions, err := h.transactions.ListByCustomer(c.Context(), id, limit)
	if err != nil {
		return transport.ToHTTPError(err)
	}

	responses := make([]transactionResponse, 0, len(transactions))
	for i := range transactions {
		responses = append(responses, toTransactionResponse(&transactions[i]))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":      true,
		"transactions": responses,
	})
}

func toCustomerResponse(customer *domain.Customer) customerResponse {
	if customer == nil {
		return customerResponse{}
	}

	return customerResponse{
		ID:             customer.ID,
		Name:           customer.Name,
		Phone:          customer.Phone,
		Email:          customer.Email,
		WhatsAppID:     customer.WhatsAppID,
		Status:         strings.ToLower(customer.Status.String()),
		CreditLimit:    customer.CreditLimit,
		CurrentBalance: customer.CurrentBalance,
		CreatedAt:      customer.CreatedAt,
	}
}

func toTransactionResponse(tr *domain.Transaction) transactionResponse {
	if tr == nil {
		return transactionResponse{}
	}

	return transactionResponse{
		ID:          tr.ID,
		CustomerID:  tr.CustomerID,
		Amount:      tr.Amount,
		Type:        strings.ToLower(tr.Type.String()),
		Description: tr.Description,
		Status:      strings.ToLower(tr.Status.String()),
		ProcessedAt: tr.ProcessedAt,
		CreatedAt:   tr.CreatedAt,
	}
}
