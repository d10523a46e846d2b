package domain

import (
	"fmt"
	"strings"
	"time"
)

// MessageKind represents the WhatsApp payload type.
type MessageKind string

const (
	MessageText     MessageKind = "TEXT"
	MessageMedia    MessageKind = "MEDIA"
	MessageTemplate MessageKind = "TEMPLATE"
)

func (k MessageKind) String() string { return string(k) }

func (k MessageKind) IsValid() bool {
	switch k {
	case MessageText, MessageMedia, MessageTemplate:
		return true
	}
	return false
}

func ParseMessageKindFromString(s string) (MessageKind, error) {
	k := MessageKind(strings.ToUpper(strings.TrimSpace(s)))
	if !k.IsValid() {
		return "", fmt.Errorf("%w: invalid message kind %q", ErrValidation, s)
	}
	return k, nil
}

// MessageDirection distinguishes sends from webhook deliveries.
type MessageDirection string

const (
	DirectionOutbound MessageDirection = "OUTBOUND"
	DirectionInbound  MessageDirection = "INBOUND"
)

func (d MessageDirection) String() string { return string(d) }

func (d MessageDirection) IsValid() bool {
	switch d {
	case DirectionOutbound, DirectionInbound:
		return true
	}
	return false
}

// MessageStatus represents the delivery state recorded for a message.
type MessageStatus string

const (
	MessageSent      MessageStatus = "SENT"
	MessageDelivered MessageStatus = "DELIVERED"
	MessageRead      MessageStatus = "READ"
	MessageFailed    MessageStatus = "FAILED"
	MessageSimulated MessageStatus = "SIMULATED"
)

func (s MessageStatus) String() string { return string(s) }

func (s MessageStatus) IsValid() bool {
	switch s {
	case MessageSent, MessageDelivered, MessageRead, MessageFailed, MessageSimulated:
		return true
	}
	return false
}

// MessageRecord is the persisted log entry for a WhatsApp message.
type MessageRecord struct {
	ID                string           `gorm:"type:uuid;primaryKey"`
	CustomerID        string           `gorm:"type:uuid;not null"`
	Kind              MessageKind      `gorm:"type:varchar(10);not null"`
	Content           string           `gorm:"type:text;not null"`
	Direction         MessageDirection `gorm:"type:varchar(10);not null"`
	Status            MessageStatus    `gorm:"type:varchar(20);not null"`
	ProviderMessageID *string          `gorm:"type:varchar(255)"`
	CreatedAt         time.Time
}

func (MessageRecord) TableName() string {
	return "whatsapp_messages"
}

func (m *MessageRecord) Validate() error {
	if strings.TrimSpace(m.CustomerID) == "" {
		return fmt.Errorf("%w: customer id is required", ErrValidation)
	}
	if strings.TrimSpace(m.Content) == "" {
		return fmt.Errorf("%w: content is required", ErrValidation)
	}
	if !m.Kind.IsValid() {
		return fmt.Errorf("%w: invalid message kind %q", ErrValidation, m.Kind)
	}
	if !m.Direction.IsValid() {
		return fmt.Errorf("%w: invalid message direction %q", ErrValidation, m.Direction)
	}
	if !m.Status.IsValid() {
		return fmt.Errorf("%w: invalid message status %q", ErrValidation, m.Status)
	}
	return nil
}
