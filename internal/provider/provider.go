package provider

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// ProviderType selects the outbound WhatsApp backend.
type ProviderType string

const (
	TypeBusiness ProviderType = "business"
	TypePersonal ProviderType = "personal"
)

func (t ProviderType) String() string { return string(t) }

func (t ProviderType) IsValid() bool {
	switch t {
	case TypeBusiness, TypePersonal:
		return true
	}
	return false
}

func ParseProviderTypeFromString(s string) (ProviderType, error) {
	pt := ProviderType(strings.ToLower(strings.TrimSpace(s)))
	if !pt.IsValid() {
		return "", fmt.Errorf("invalid provider type %q", s)
	}
	return pt, nil
}

// Kind is the outbound payload kind. Both kinds go over the wire as text;
// reminders only differ in how the surrounding service builds the body.
type Kind string

const (
	KindText     Kind = "text"
	KindReminder Kind = "reminder"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindText, KindReminder:
		return true
	}
	return false
}

// OutboundMessage is a provider-agnostic send request. It is built per call
// and never retained by the dispatcher.
type OutboundMessage struct {
	Phone string
	Body  string
	Kind  Kind
}

func (m OutboundMessage) Validate() error {
	if strings.TrimSpace(m.Phone) == "" {
		return fmt.Errorf("recipient phone is required")
	}
	if strings.TrimSpace(m.Body) == "" {
		return fmt.Errorf("message body is required")
	}
	if !m.Kind.IsValid() {
		return fmt.Errorf("invalid message kind %q", m.Kind)
	}
	return nil
}

// DispatchStatus is the normalized outcome of a send attempt.
type DispatchStatus string

const (
	StatusSent      DispatchStatus = "sent"
	StatusFailed    DispatchStatus = "failed"
	StatusSimulated DispatchStatus = "simulated"
)

func (s DispatchStatus) String() string { return string(s) }

// DispatchResult is the uniform send outcome across providers.
// Success is false exactly when Error is non-empty.
type DispatchResult struct {
	Success   bool
	MessageID string
	Status    DispatchStatus
	Error     string
}

// Status describes the configured backend without touching the network.
type Status struct {
	Provider     string
	ProviderType ProviderType
	Configured   bool
}

// SendReceipt stores backend call metadata before normalization.
type SendReceipt struct {
	MessageID  string
	StatusCode int
	Simulated  bool
}

// Backend is the outbound WhatsApp delivery port.
type Backend interface {
	Send(ctx context.Context, msg OutboundMessage) (*SendReceipt, error)
	Status() Status
}

// Config carries the provider settings as an explicit value; nothing in this
// package reads the process environment.
type Config struct {
	Type          ProviderType
	APIURL        string
	AccessToken   string
	PhoneNumberID string
	RelayURL      string
	RelayKey      string
	SendTimeout   time.Duration
}
