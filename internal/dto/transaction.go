package dto

import (
	"github.com/rfmelo/fintrack-backend/internal/models"
)

// Recurrence modes accepted on a transaction intent.
const (
	RecurrenceNone        = "NONE"
	RecurrenceInstallment = "INSTALLMENT"
	RecurrenceRepeated    = "REPEATED"
)

// Validation bounds.
const (
	RecurrenceMinCount   = 2
	RecurrenceMaxCount   = 999
	InstallmentMaxCount  = 360 // 30 years of monthly installments
	MaxTransactionValue  = 999_999_999
	MaxDescriptionLength = 500
	DateYearsPastLimit   = 50
	DateYearsFutureLimit = 10
)

// TransactionIntent is the raw user intent assembled by form code. One
// intent becomes one transaction, or a generated group when a recurrence
// mode is set.
type TransactionIntent struct {
	Description string  `json:"description"`
	Value       float64 `json:"value"`
	Kind        string  `json:"kind"` // INCOME | EXPENSE
	CategoryID  string  `json:"categoryId"`
	AccountID   string  `json:"accountId"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Spender     string  `json:"spender,omitempty"`
	Paid        bool    `json:"paid"`
	Sentiment   string  `json:"sentiment,omitempty"`
	Recurrence  string  `json:"recurrence,omitempty"` // NONE | INSTALLMENT | REPEATED
	Count       int     `json:"count,omitempty"`      // installments / repetitions
}

// GeneratedBatch is the ordered expansion of one intent into group members.
type GeneratedBatch struct {
	GroupID      string               `json:"groupId"`
	GroupKind    string               `json:"groupKind"`
	Transactions []models.Transaction `json:"transactions"`
}

// ValidationResult carries the complete violation list for one intent.
type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// CreateCategoryRequest / CreateAccountRequest create referenced-only
// entities the validator resolves transaction references against.
type CreateCategoryRequest struct {
	CategoryID string `json:"categoryId"`
	Name       string `json:"name"`
	Kind       string `json:"kind"`
}

type CreateAccountRequest struct {
	AccountID string `json:"accountId"`
	Name      string `json:"name"`
}
