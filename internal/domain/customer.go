package domain

import (
	"fmt"
	"strings"
	"time"
)

// CustomerStatus represents the account state of a customer.
type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "ACTIVE"
	CustomerInactive CustomerStatus = "INACTIVE"
	CustomerBlocked  CustomerStatus = "BLOCKED"
)

func (s CustomerStatus) String() string { return string(s) }

func (s CustomerStatus) IsValid() bool {
	switch s {
	case CustomerActive, CustomerInactive, CustomerBlocked:
		return true
	}
	return false
}

func ParseCustomerStatusFromString(s string) (CustomerStatus, error) {
	st := CustomerStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", fmt.Errorf("%w: invalid customer status %q", ErrValidation, s)
	}
	return st, nil
}

// Customer is the core CRM entity a phone number and balance belong to.
type Customer struct {
	ID             string         `gorm:"type:uuid;primaryKey"`
	Name           string         `gorm:"type:varchar(255);not null"`
	Phone          string         `gorm:"type:varchar(32);not null;uniqueIndex"`
	Email          string         `gorm:"type:varchar(255)"`
	WhatsAppID     string         `gorm:"type:varchar(64);column:whatsapp_id"`
	Status         CustomerStatus `gorm:"type:varchar(20);not null"`
	CreditLimit    float64        `gorm:"not null;default:0"`
	CurrentBalance float64        `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (c *Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(c.Phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrValidation)
	}
	if !c.Status.IsValid() {
		return fmt.Errorf("%w: invalid customer status %q", ErrValidation, c.Status)
	}
	if c.CreditLimit < 0 {
		return fmt.Errorf("%w: credit limit must not be negative", ErrValidation)
	}
	return nil
}
