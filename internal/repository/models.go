package repository

import (
	"time"

	"github.com/rafaelks1020/crm-web-whatsapp/internal/domain"
)

// CustomerModel is the persistence model for the customers table.
type CustomerModel struct {
	ID             string                `gorm:"type:uuid;primaryKey"`
	Name           string                `gorm:"type:varchar(255);not null"`
	Phone          string                `gorm:"type:varchar(32);not null;uniqueIndex"`
	Email          string                `gorm:"type:varchar(255)"`
	WhatsAppID     string                `gorm:"type:varchar(64);column:whatsapp_id"`
	Status         domain.CustomerStatus `gorm:"type:varchar(20);not null"`
	CreditLimit    float64               `gorm:"not null;default:0"`
	CurrentBalance float64               `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (CustomerModel) TableName() string {
	return "customers"
}

// TransactionModel is the persistence model for the transactions table.
type TransactionModel struct {
	ID          string                   `gorm:"type:uuid;primaryKey"`
	CustomerID  string                   `gorm:"type:uuid;not null"`
	Amount      float64                  `gorm:"not null"`
	Type        domain.TransactionType   `gorm:"type:varchar(10);not null"`
	Description string                   `gorm:"type:text"`
	Status      domain.TransactionStatus `gorm:"type:varchar(20);not null"`
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (TransactionModel) TableName() string {
	return "transactions"
}

// MessageModel is the persistence model for the whatsapp_messages table.
type MessageModel struct {
	ID                string                  `gorm:"type:uuid;primaryKey"`
	CustomerID        string                  `gorm:"type:uuid;not null"`
	Kind              domain.MessageKind      `gorm:"type:varchar(10);not null"`
	Content           string                  `gorm:"type:text;not null"`
	Direction         domain.MessageDirection `gorm:"type:varchar(10);not null"`
	Status            domain.MessageStatus    `gorm:"type:varchar(20);not null"`
	ProviderMessageID *string                 `gorm:"type:varchar(255)"`
	CreatedAt         time.Time
}

func (MessageModel) TableName() string {
	return "whatsapp_messages"
}

func customerModelFromDomain(c *domain.Customer) *CustomerModel {
	if c == nil {
		return nil
	}

	return &CustomerModel{
		ID:             c.ID,
		Name:           c.Name,
		Phone:          c.Phone,
		Email:          c.Email,
		WhatsAppID:     c.WhatsAppID,
		Status:         c.Status,
		CreditLimit:    c.CreditLimit,
		CurrentBalance: c.CurrentBalance,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func customerModelToDomain(m *CustomerModel) *domain.Customer {
	if m == nil {
		return nil
	}

	return &domain.Customer{
		ID:             m.ID,
		Name:           m.Name,
		Phone:          m.Phone,
		Email:          m.Email,
		WhatsAppID:     m.WhatsAppID,
		Status:         m.Status,
		CreditLimit:    m.CreditLimit,
		CurrentBalance: m.CurrentBalance,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func transactionModelFromDomain(tr *domain.Transaction) *TransactionModel {
	if tr == nil {
		return nil
	}

	return &TransactionModel{
		ID:          tr.ID,
		CustomerID:  tr.CustomerID,
		Amount:      tr.Amount,
		Type:        tr.Type,
		Description: tr.Description,
		Status:      tr.Status,
		ProcessedAt: tr.ProcessedAt,
		CreatedAt:   tr.CreatedAt,
		UpdatedAt:   tr.UpdatedAt,
	}
}

func transactionModelToDomain(m *TransactionModel) *domain.Transaction {
	if m == nil {
		return nil
	}

	return &domain.Transaction{
		ID:          m.ID,
		CustomerID:  m.CustomerID,
		Amount:      m.Amount,
		Type:        m.Type,
		Description: m.Description,
		Status:      m.Status,
		ProcessedAt: m.ProcessedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func messageModelFromDomain(msg *domain.MessageRecord) *MessageModel {
	if msg == nil {
		return nil
	}

	return &MessageModel{
		ID:                msg.ID,
		CustomerID:        msg.CustomerID,
		Kind:              msg.Kind,
		Content:           msg.Content,
		Direction:         msg.Direction,
		Status:            msg.Status,
		ProviderMessageID: msg.ProviderMessageID,
		CreatedAt:         msg.CreatedAt,
	}
}

func messageModelToDomain(m *MessageModel) *domain.MessageRecord {
	if m == nil {
		return nil
	}

	return &domain.MessageRecord{
		ID:                m.ID,
		CustomerID:        m.CustomerID,
		Kind:              m.Kind,
		Content:           m.Content,
		Direction:         m.Direction,
		Status:            m.Status,
		ProviderMessageID: m.ProviderMessageID,
		CreatedAt:         m.CreatedAt,
	}
}
