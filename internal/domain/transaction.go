package domain

import (
	"fmt"
	"strings"
	"time"
)

// TransactionType represents the financial direction of a transaction.
type TransactionType string

const (
	TransactionPayment TransactionType = "PAYMENT"
	TransactionCharge  TransactionType = "CHARGE"
	TransactionRefund  TransactionType = "REFUND"
	TransactionCredit  TransactionType = "CREDIT"
)

func (t TransactionType) String() string { return string(t) }

func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionPayment, TransactionCharge, TransactionRefund, TransactionCredit:
		return true
	}
	return false
}

// BalanceDelta reports how a completed transaction of this type moves the
// customer balance: payments add, charges subtract, the rest leave it alone.
func (t TransactionType) BalanceDelta(amount float64) float64 {
	switch t {
	case TransactionPayment:
		return amount
	case TransactionCharge:
		return -amount
	}
	return 0
}

func ParseTransactionTypeFromString(s string) (TransactionType, error) {
	tt := TransactionType(strings.ToUpper(strings.TrimSpace(s)))
	if !tt.IsValid() {
		return "", fmt.Errorf("%w: invalid transaction type %q", ErrValidation, s)
	}
	return tt, nil
}

// TransactionStatus represents the lifecycle state of a transaction.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "PENDING"
	TransactionCompleted TransactionStatus = "COMPLETED"
	TransactionFailed    TransactionStatus = "FAILED"
	TransactionCancelled TransactionStatus = "CANCELLED"
)

func (s TransactionStatus) String() string { return string(s) }

func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionPending, TransactionCompleted, TransactionFailed, TransactionCancelled:
		return true
	}
	return false
}

// Transaction records a financial movement against a customer.
type Transaction struct {
	ID          string            `gorm:"type:uuid;primaryKey"`
	CustomerID  string            `gorm:"type:uuid;not null"`
	Amount      float64           `gorm:"not null"`
	Type        TransactionType   `gorm:"type:varchar(10);not null"`
	Description string            `gorm:"type:text"`
	Status      TransactionStatus `gorm:"type:varchar(20);not null"`
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (tr *Transaction) Validate() error {
	if strings.TrimSpace(tr.CustomerID) == "" {
		return fmt.Errorf("%w: customer id is required", ErrValidation)
	}
	if tr.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if !tr.Type.IsValid() {
		return fmt.Errorf("%w: invalid transaction type %q", ErrValidation, tr.Type)
	}
	if !tr.Status.IsValid() {
		return fmt.Errorf("%w: invalid transaction status %q", ErrValidation, tr.Status)
	}
	return nil
}

// FinancialSummary aggregates transaction activity over a trailing window.
type FinancialSummary struct {
	TotalRevenue     float64
	TotalCharges     float64
	NetAmount        float64
	TransactionCount int64
	ActiveCustomers  int64
	PeriodDays       int
}
