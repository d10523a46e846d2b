package handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rafaelks1020/crm-web-whatsapp/internal/domain"
	"github.com/rafaelks1020/crm-web-whatsapp/internal/provider"
	"github.com/rafaelks1020/crm-web-whatsapp/internal/service"
	"github.com/rafaelks1020/crm-web-whatsapp/internal/transport"
)

type WhatsAppService interface {
	Send(ctx context.Context, customerID string, body string) (*service.SendOutcome, error)
	SendPaymentReminder(ctx context.Context, customerID string, amount *float64) (*service.SendOutcome, error)
	ListMessages(ctx context.Context, customerID string, limit int) ([]domain.MessageRecord, error)
	RecordInbound(ctx context.Context, phone string, content string) error
	Status() provider.Status
}

type WhatsAppHandler struct {
	whatsapp WhatsAppService
}

func NewWhatsAppHandler(whatsapp WhatsAppService) (*WhatsAppHandler, error) {
	if whatsapp == nil {
		return nil, fmt.Errorf("whatsapp service is required")
	}
	return &WhatsAppHandler{whatsapp: whatsapp}, nil
}

func RegisterWhatsAppRoutes(router fiber.Router, whatsapp WhatsAppService) error {
	h, err := NewWhatsAppHandler(whatsapp)
	if err != nil {
		return err
	}

	api := router.Group("/api")
	api.Get("/whatsapp/status", h.Status)
	api.Post("/whatsapp/send", h.Send)
	api.Post("/whatsapp/reminder", h.SendReminder)
	api.Get("/customers/:id/messages", h.ListMessages)

	return nil
}

type sendMessageRequest struct {
	CustomerID string `json:"customer_id"`
	Message    string `json:"message"`
}

type sendReminderRequest struct {
	CustomerID string   `json:"customer_id"`
	Amount     *float64 `json:"amount"`
}

type messageResponse struct {
	ID                string    `json:"id"`
	CustomerID        string    `json:"customer_id"`
	Kind              string    `json:"message_type"`
	Content           string    `json:"content"`
	Direction         string    `json:"direction"`
	Status            string    `json:"status"`
	ProviderMessageID *string   `json:"provider_message_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func (h *WhatsAppHandler) Status(c *fiber.Ctx) error {
	status := h.whatsapp.Status()

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":       true,
		"provider":      status.Provider,
		"provider_type": status.ProviderType.String(),
		"configured":    status.Configured,
	})
}

func (h *WhatsAppHandler) Send(c *fiber.Ctx) error {
	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	outcome, err := h.whatsapp.Send(c.Context(), req.CustomerID, req.Message)
	if err != nil {
		return transport.ToHTTPError(err)
	}

	return sendOutcomeResponse(c, outcome)
}

func (h *WhatsAppHandler) SendReminder(c *fiber.Ctx) error {
	var req sendReminderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	outcome, err := h.whatsapp.SendPaymentReminder(c.Context(), req.CustomerID, req.Amount)
	if err != nil {
		return transport.ToHTTPError(err)
	}

	return sendOutcomeResponse(c, outcome)
}

func (h *WhatsAppHandler) ListMessages(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	limit := c.QueryInt("limit", defaultLimit)

	messages, err := h.whatsapp.ListMessages(c.Context(), id, limit)
	if err != nil {
		return transport.ToHTTPError(err)
	}

	responses := make([]messageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, toMessageResponse(&messages[i]))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":  true,
		"messages": responses,
	})
}

// sendOutcomeResponse serializes a dispatch outcome. Failed dispatches are
// reported in the body with success=false rather than as transport errors;
// the request itself was handled.
func sendOutcomeResponse(c *fiber.Ctx, outcome *service.SendOutcome) error {
	status := fiber.StatusOK
	if !outcome.Result.Success {
		status = fiber.StatusBadGateway
	}

	body := fiber.Map{
		"success": outcome.Result.Success,
		"status":  outcome.Result.Status.String(),
		"phone":   outcome.Phone,
	}
	if outcome.Result.MessageID != "" {
		body["message_id"] = outcome.Result.MessageID
	}
	if outcome.Result.Error != "" {
		body["error"] = outcome.Result.Error
	}

	return c.Status(status).JSON(body)
}

func toMessageResponse(m *domain.MessageRecord) messageResponse {
	if m == nil {
		return messageResponse{}
	}

	return messageResponse{
		ID:                m.ID,
		CustomerID:        m.CustomerID,
		Kind:              strings.ToLower(m.Kind.String()),
		Content:           m.Content,
		Direction:         strings.ToLower(m.Direction.String()),
		Status:            strings.ToLower(m.Status.String()),
		ProviderMessageID: m.ProviderMessageID,
		CreatedAt:         m.CreatedAt,
	}
}
