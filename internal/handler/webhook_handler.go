package handler

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type WebhookHandler struct {
	whatsapp    WhatsAppService
	verifyToken string
	logger      *zap.Logger
}

func NewWebhookHandler(whatsapp WhatsAppService, verifyToken string, logger *zap.Logger) (*WebhookHandler, error) {
	if whatsapp == nil {
		return nil, fmt.Errorf("whatsapp service is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &WebhookHandler{
		whatsapp:    whatsapp,
		verifyToken: verifyToken,
		logger:      logger,
	}, nil
}

func RegisterWebhookRoutes(router fiber.Router, whatsapp WhatsAppService, verifyToken string, logger *zap.Logger) error {
	h, err := NewWebhookHandler(whatsapp, verifyToken, logger)
	if err != nil {
		return err
	}

	router.Get("/webhook/whatsapp", h.Verify)
	router.Post("/webhook/whatsapp", h.Receive)

	return nil
}

// webhookPayload mirrors the Meta webhook envelope; only text messages are
// read, everything else in the payload is ignored.
type webhookPayload struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []struct {
					From string `json:"from"`
					Type string `json:"type"`
					Text struct {
						Body string `json:"body"`
					} `json:"text"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// Verify answers the provider's subscription handshake: echo the challenge
// when the verify token matches, 403 otherwise.
func (h *WebhookHandler) Verify(c *fiber.Ctx) error {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && h.verifyToken != "" &&
		subtle.ConstantTimeCompare([]byte(token), []byte(h.verifyToken)) == 1 {
		return c.Status(fiber.StatusOK).SendString(challenge)
	}

	h.logger.Warn("webhook verification rejected", zap.String("mode", mode))
	return c.Status(fiber.StatusForbidden).SendString("Forbidden")
}

// Receive records inbound text messages. The provider retries on non-2xx
// responses, so malformed or unmatchable payloads are acknowledged anyway.
func (h *WebhookHandler) Receive(c *fiber.Ctx) error {
	var payload webhookPayload
	if err := c.BodyParser(&payload); err != nil {
		h.logger.Warn("unparseable webhook payload", zap.Error(err))
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
	}

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				body := strings.TrimSpace(msg.Text.Body)
				if body == "" {
					continue
				}
				if err := h.whatsapp.RecordInbound(c.Context(), msg.From, body); err != nil {
					h.logger.Warn("failed to record inbound message",
						zap.String("from", msg.From),
						zap.Error(err),
					)
				}
			}
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}
