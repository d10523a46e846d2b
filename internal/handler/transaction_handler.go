package handler

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rafaelks1020/crm-web-whatsapp/internal/domain"
	"github.com/rafaelks1020/crm-web-whatsapp/internal/transport"
)

type TransactionHandler struct {
	transactions TransactionService
}

func NewTransactionHandler(transactions TransactionService) (*TransactionHandler, error) {
	if transactions == nil {
		return nil, fmt.Errorf("transaction service is required")
	}
	return &TransactionHandler{transactions: transactions}, nil
}

func RegisterTransactionRoutes(router fiber.Router, transactions TransactionService) error {
	h, err := NewTransactionHandler(transactions)
	if err != nil {
		return err
	}

	api := router.Group("/api")
	api.Post("/transactions", h.CreateTransaction)
	api.Get("/summary", h.Summary)

	return nil
}

type createTransactionRequest struct {
	CustomerID  string  `json:"customer_id"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"transaction_type"`
	Description string  `json:"description"`
}

type summaryResponse struct {
	TotalRevenue     float64 `json:"total_revenue"`
	TotalCharges     float64 `json:"total_charges"`
	NetAmount        float64 `json:"net_amount"`
	TransactionCount int64   `json:"transaction_count"`
	ActiveCustomers  int64   `json:"active_customers"`
	PeriodDays       int     `json:"period_days"`
}

func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	var req createTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	trType, err := domain.ParseTransactionTypeFromString(req.Type)
	if err != nil {
		return transport.ToHTTPError(err)
	}

	tr := domain.Transaction{
		CustomerID:  strings.TrimSpace(req.CustomerID),
		Amount:      req.Amount,
		Type:        trType,
		Description: strings.TrimSpace(req.Description),
	}

	created, err := h.transactions.Create(c.Context(), &tr)
	if err != nil {
		return transport.ToHTTPError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":        true,
		"transaction_id": created.ID,
	})
}

func (h *TransactionHandler) Summary(c *fiber.Ctx) error {
	days := c.QueryInt("days", 0)
	if days < 0 {
		return transport.ToHTTPError(fmt.Errorf("%w: days must not be negative", domain.ErrValidation))
	}

	summary, err := h.transactions.Summary(c.Context(), days)
	if err != nil {
		return transport.ToHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"summary": summaryResponse{
			TotalRevenue:     summary.TotalRevenue,
			TotalCharges:     summary.TotalCharges,
			NetAmount:        summary.NetAmount,
			TransactionCount: summary.TransactionCount,
			ActiveCustomers:  summary.ActiveCustomers,
			PeriodDays:       summary.PeriodDays,
		},
	})
}
