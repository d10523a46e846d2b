package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type relayRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

type relayResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
}

// PersonalProvider forwards messages to an operator-hosted WhatsApp relay.
// Without relay credentials it degrades to simulation mode so the rest of
// the CRM can be exercised with no live WhatsApp session.
type PersonalProvider struct {
	client   *resty.Client
	relayURL string
	relayKey string
	now      func() time.Time
}

func NewPersonalProvider(cfg Config) (*PersonalProvider, error) {
	client := resty.New()
	client.SetTimeout(sendTimeout(cfg))
	client.SetRetryCount(0)

	return NewPersonalProviderWithClient(cfg, client)
}

func NewPersonalProviderWithClient(cfg Config, client *resty.Client) (*PersonalProvider, error) {
	if client == nil {
		return nil, fmt.Errorf("resty client is required")
	}

	if client.GetClient().Timeout == 0 {
		client.SetTimeout(sendTimeout(cfg))
	}
	client.SetRetryCount(0)

	return &PersonalProvider{
		client:   client,
		relayURL: strings.TrimSpace(cfg.RelayURL),
		relayKey: strings.TrimSpace(cfg.RelayKey),
		now:      time.Now,
	}, nil
}

func (p *PersonalProvider) Status() Status {
	return Status{
		Provider:     "personal-whatsapp",
		ProviderType: TypePersonal,
		Configured:   p != nil && p.relayURL != "" && p.relayKey != "",
	}
}

func (p *PersonalProvider) Send(ctx context.Context, msg OutboundMessage) (*SendReceipt, error) {
	if p == nil || p.client == nil {
		return nil, fmt.Errorf("provider is not initialized")
	}
	if err := msg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid message: %w", err)
	}

	if !p.Status().Configured {
		return p.simulate(), nil
	}

	reqBody := relayRequest{
		Phone:   msg.Phone,
		Message: msg.Body,
		Type:    "text",
	}

	var parsed relayResponse
	response, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(p.relayKey).
		SetBody(reqBody).
		SetResult(&parsed).
		Post(p.relayURL)
	if err != nil {
		return nil, &ProviderError{
			Message: "relay request failed",
			Timeout: errors.Is(err, context.DeadlineExceeded) || IsTimeout(err),
			Cause:   err,
		}
	}
	if response == nil {
		return nil, &ProviderError{
			Message: "relay returned empty response",
		}
	}

	statusCode := response.StatusCode()
	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		return nil, &ProviderError{
			StatusCode: statusCode,
			Message:    httpErrorMessage(statusCode, strings.TrimSpace(response.String())),
		}
	}

	if !parsed.Success {
		return nil, &ProviderError{
			StatusCode: statusCode,
			Message:    fmt.Sprintf("relay rejected message: status=%s", strings.TrimSpace(parsed.Status)),
		}
	}

	return &SendReceipt{
		StatusCode: statusCode,
		MessageID:  strings.TrimSpace(parsed.MessageID),
	}, nil
}

// simulate fabricates a successful receipt without network I/O.
func (p *PersonalProvider) simulate() *SendReceipt {
	return &SendReceipt{
		MessageID: fmt.Sprintf("sim_%d", p.now().UnixMilli()),
		Simulated: true,
	}
}
