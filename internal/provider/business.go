package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultSendTimeout = 30 * time.Second

type businessRequest struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Text             businessText `json:"text"`
}

type businessText struct {
	Body string `json:"body"`
}

type businessResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

// BusinessProvider sends messages through the WhatsApp Business API.
type BusinessProvider struct {
	client        *resty.Client
	apiURL        string
	accessToken   string
	phoneNumberID string
}

func NewBusinessProvider(cfg Config) (*BusinessProvider, error) {
	client := resty.New()
	client.SetTimeout(sendTimeout(cfg))
	client.SetRetryCount(0)

	return NewBusinessProviderWithClient(cfg, client)
}

func NewBusinessProviderWithClient(cfg Config, client *resty.Client) (*BusinessProvider, error) {
	if client == nil {
		return nil, fmt.Errorf("resty client is required")
	}

	if client.GetClient().Timeout == 0 {
		client.SetTimeout(sendTimeout(cfg))
	}
	client.SetRetryCount(0)

	return &BusinessProvider{
		client:        client,
		apiURL:        strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/"),
		accessToken:   strings.TrimSpace(cfg.AccessToken),
		phoneNumberID: strings.TrimSpace(cfg.PhoneNumberID),
	}, nil
}

func (p *BusinessProvider) Status() Status {
	return Status{
		Provider:     "whatsapp-business-api",
		ProviderType: TypeBusiness,
		Configured:   p != nil && p.accessToken != "" && p.phoneNumberID != "",
	}
}

func (p *BusinessProvider) Send(ctx context.Context, msg OutboundMessage) (*SendReceipt, error) {
	if p == nil || p.client == nil {
		return nil, fmt.Errorf("provider is not initialized")
	}
	if !p.Status().Configured {
		return nil, fmt.Errorf("%w: access token and phone number id are required", ErrNotConfigured)
	}
	if err := msg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid message: %w", err)
	}

	reqBody := businessRequest{
		MessagingProduct: "whatsapp",
		To:               msg.Phone,
		Type:             "text",
		Text:             businessText{Body: msg.Body},
	}

	endpoint := fmt.Sprintf("%s/%s/messages", p.apiURL, p.phoneNumberID)
	response, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(p.accessToken).
		SetBody(reqBody).
		Post(endpoint)
	if err != nil {
		return nil, &ProviderError{
			Message: "business api request failed",
			Timeout: errors.Is(err, context.DeadlineExceeded) || IsTimeout(err),
			Cause:   err,
		}
	}
	if response == nil {
		return nil, &ProviderError{
			Message: "business api returned empty response",
		}
	}

	statusCode := response.StatusCode()
	responseBody := strings.TrimSpace(response.String())

	if statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices {
		return &SendReceipt{
			StatusCode: statusCode,
			MessageID:  businessMessageID(responseBody),
		}, nil
	}

	return nil, &ProviderError{
		StatusCode: statusCode,
		Message:    httpErrorMessage(statusCode, responseBody),
	}
}

func businessMessageID(body string) string {
	var parsed businessResponse
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return ""
	}
	if len(parsed.Messages) == 0 {
		return ""
	}
	return strings.TrimSpace(parsed.Messages[0].ID)
}

func httpErrorMessage(statusCode int, body string) string {
	base := fmt.Sprintf("provider returned status %d", statusCode)
	if body == "" {
		return base
	}
	return fmt.Sprintf("%s: %s", base, body)
}

func sendTimeout(cfg Config) time.Duration {
	if cfg.SendTimeout > 0 {
		return cfg.SendTimeout
	}
	return defaultSendTimeout
}
