package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rafaelks1020/crm-web-whatsapp/internal/domain"
	"github.com/rafaelks1020/crm-web-whatsapp/internal/observability"
	"github.com/rafaelks1020/crm-web-whatsapp/internal/provider"
	"github.com/rafaelks1020/crm-web-whatsapp/internal/ratelimit"
	"github.com/rafaelks1020/crm-web-whatsapp/internal/repository"
	"go.uber.org/zap"
)

// MessageDispatcher is the outbound dispatch port consumed by this service.
type MessageDispatcher interface {
	Dispatch(ctx context.Context, msg provider.OutboundMessage) provider.DispatchResult
	Status() provider.Status
}

// SendOutcome couples a dispatch result with the customer it targeted.
type SendOutcome struct {
	CustomerID string
	Phone      string
	Result     provider.DispatchResult
}

type WhatsAppService struct {
	customers  repository.CustomerRepository
	messages   repository.MessageRepository
	dispatcher MessageDispatcher
	limiter    ratelimit.RateLimiter
	metrics    *observability.Metrics
	logger     *zap.Logger
}

func NewWhatsAppService(
	customers repository.CustomerRepository,
	messages repository.MessageRepository,
	dispatcher MessageDispatcher,
	limiter ratelimit.RateLimiter,
	metrics *observability.Metrics,
	logger *zap.Logger,
) (*WhatsAppService, error) {
	if customers == nil {
		return nil, fmt.Errorf("customer repository is required")
	}
	if messages == nil {
		return nil, fmt.Errorf("message repository is required")
	}
	if dispatcher == nil {
		return nil, fmt.Errorf("message dispatcher is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &WhatsAppService{
		customers:  customers,
		messages:   messages,
		dispatcher: dispatcher,
		limiter:    limiter,
		metrics:    metrics,
		logger:     logger,
	}, nil
}

// Status reports the configured provider without touching the network.
func (s *WhatsAppService) Status() provider.Status {
	return s.dispatcher.Status()
}

// Send looks the customer up, dispatches a text message to their phone, and
// records successful sends in the message log.
func (s *WhatsAppService) Send(ctx context.Context, customerID string, body string) (*SendOutcome, error) {
	return s.send(ctx, customerID, body, provider.KindText)
}

// SendPaymentReminder formats and sends the reminder body the customer's
// balance calls for. A nil amount falls back to the current balance text.
func (s *WhatsAppService) SendPaymentReminder(ctx context.Context, customerID string, amount *float64) (*SendOutcome, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.TrimSpace(customerID) == "" {
		return nil, fmt.Errorf("%w: customer id is required", domain.ErrValidation)
	}

	customer, err := s.customers.GetByID(ctx, strings.TrimSpace(customerID))
	if err != nil {
		return nil, err
	}

	return s.send(ctx, customer.ID, reminderBody(customer, amount), provider.KindReminder)
}

func (s *WhatsAppService) ListMessages(ctx context.Context, customerID string, limit int) ([]domain.MessageRecord, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, fmt.Errorf("%w: customer id is required", domain.ErrValidation)
	}
	if _, err := s.customers.GetByID(ctx, strings.TrimSpace(customerID)); err != nil {
		return nil, err
	}
	return s.messages.ListByCustomer(ctx, strings.TrimSpace(customerID), limit)
}

// RecordInbound stores a message delivered through the webhook against the
// customer owning the phone number, after the same normalization applied to
// outbound recipients.
func (s *WhatsAppService) RecordInbound(ctx context.Context, phone string, content string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: content is required", domain.ErrValidation)
	}

	customer, err := s.customers.GetByPhone(ctx, provider.NormalizePhone(phone))
	if err != nil {
		return err
	}

	record := &domain.MessageRecord{
		ID:         uuid.NewString(),
		CustomerID: customer.ID,
		Kind:       domain.MessageText,
		Content:    content,
		Direction:  domain.DirectionInbound,
		Status:     domain.MessageDelivered,
	}
	return s.messages.Create(ctx, record)
}

func (s *WhatsAppService) send(ctx context.Context, customerID string, body string, kind provider.Kind) (*SendOutcome, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.TrimSpace(customerID) == "" {
		return nil, fmt.Errorf("%w: customer id is required", domain.ErrValidation)
	}
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: message is required", domain.ErrValidation)
	}

	customer, err := s.customers.GetByID(ctx, strings.TrimSpace(customerID))
	if err != nil {
		return nil, err
	}

	providerName := s.dispatcher.Status().Provider

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx, providerName); err != nil {
			s.metrics.IncMessageFailed(providerName, "rate_limited")
			return &SendOutcome{
				CustomerID: customer.ID,
				Phone:      customer.Phone,
				Result: provider.DispatchResult{
					Success: false,
					Status:  provider.StatusFailed,
					Error:   fmt.Sprintf("rate limit wait aborted: %s", err),
				},
			}, nil
		}
	}

	start := time.Now()
	result := s.dispatcher.Dispatch(ctx, provider.OutboundMessage{
		Phone: customer.Phone,
		Body:  body,
		Kind:  kind,
	})
	s.metrics.ObserveSendDuration(providerName, time.Since(start))

	outcome := &SendOutcome{
		CustomerID: customer.ID,
		Phone:      provider.NormalizePhone(customer.Phone),
		Result:     result,
	}

	if !result.Success {
		s.metrics.IncMessageFailed(providerName, failureReason(result.Error))
		s.logger.Warn("whatsapp dispatch failed",
			zap.String("customerId", customer.ID),
			zap.String("provider", providerName),
			zap.String("detail", result.Error),
		)
		return outcome, nil
	}

	if result.Status == provider.StatusSimulated {
		s.metrics.IncMessageSimulated()
	} else {
		s.metrics.IncMessageSent(providerName)
	}

	record := &domain.MessageRecord{
		ID:         uuid.NewString(),
		CustomerID: customer.ID,
		Kind:       domain.MessageText,
		Content:    body,
		Direction:  domain.DirectionOutbound,
		Status:     recordStatus(result.Status),
	}
	if result.MessageID != "" {
		id := result.MessageID
		record.ProviderMessageID = &id
	}
	if err := s.messages.Create(ctx, record); err != nil {
		// The message already left; a logging failure must not turn the
		// send into an error for the caller.
		s.logger.Error("failed to record outbound message",
			zap.String("customerId", customer.ID),
			zap.Error(err),
		)
	}

	s.logger.Info("whatsapp message dispatched",
		zap.String("customerId", customer.ID),
		zap.String("provider", providerName),
		zap.String("status", result.Status.String()),
	)

	return outcome, nil
}

func recordStatus(status provider.DispatchStatus) domain.MessageStatus {
	if status == provider.StatusSimulated {
		return domain.MessageSimulated
	}
	return domain.MessageSent
}

func failureReason(detail string) string {
	switch {
	case strings.Contains(detail, "timed out"):
		return "timeout"
	case strings.Contains(detail, "not configured"):
		return "configuration"
	default:
		return "provider_error"
	}
}

func reminderBody(customer *domain.Customer, amount *float64) string {
	name := strings.TrimSpace(customer.Name)
	if name == "" {
		name = "Cliente"
	}

	if customer.CurrentBalance <= 0 {
		return fmt.Sprintf("Olá %s! Sua conta está em dia. Obrigado pela confiança! 😊", name)
	}
	if amount != nil {
		return fmt.Sprintf("Olá %s! Lembrando que você tem um pagamento de R$ %.2f pendente. Por favor, regularize sua situação.", name, *amount)
	}
	return fmt.Sprintf("Olá %s! Seu saldo atual é de R$ %.2f. Por favor, regularize sua situação.", name, customer.CurrentBalance)
}
