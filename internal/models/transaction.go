package models

import (
	"time"
)

// Transaction kinds.
const (
	KindIncome  = "INCOME"
	KindExpense = "EXPENSE"
)

// Group kinds. INSTALLMENT groups have a fixed size recorded on every
// member; RECURRING groups are open-ended.
const (
	GroupKindInstallment = "INSTALLMENT"
	GroupKindRecurring   = "RECURRING"
)

type Transaction struct {
	TransactionID string     `firestore:"transactionId" json:"transactionId"` // doc ID
	Description   string     `firestore:"description" json:"description"`
	Value         float64    `firestore:"value" json:"value"`
	Kind          string     `firestore:"kind" json:"kind"` // INCOME | EXPENSE
	CategoryID    string     `firestore:"categoryId" json:"categoryId"`
	AccountID     string     `firestore:"accountId" json:"accountId"`
	Date          string     `firestore:"date" json:"date"` // YYYY-MM-DD
	Spender       string     `firestore:"spender" json:"spender,omitempty"`
	Paid          bool       `firestore:"paid" json:"paid"`
	Sentiment     string     `firestore:"sentiment" json:"sentiment,omitempty"`
	GroupID       string     `firestore:"groupId" json:"groupId,omitempty"`
	GroupKind     string     `firestore:"groupKind" json:"groupKind,omitempty"`
	GroupIndex    int        `firestore:"groupIndex" json:"groupIndex,omitempty"` // 1-based
	GroupTotal    int        `firestore:"groupTotal" json:"groupTotal,omitempty"` // INSTALLMENT only
	DeletedAt     *time.Time `firestore:"deletedAt" json:"deletedAt,omitempty"`
	CreatedAt     time.Time  `firestore:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time  `firestore:"updatedAt" json:"updatedAt"`
}

// Deleted reports whether the transaction has been soft-deleted.
func (t *Transaction) Deleted() bool { return t.DeletedAt != nil }

// Grouped reports whether the transaction belongs to a group.
func (t *Transaction) Grouped() bool { return t.GroupID != "" }

// TransactionGroup is the group-definition record written alongside a
// generated batch. A group id on a transaction is only valid while a live
// (non-deleted) definition exists.
type TransactionGroup struct {
	GroupID   string     `firestore:"groupId" json:"groupId"` // doc ID
	Kind      string     `firestore:"kind" json:"kind"`       // INSTALLMENT | RECURRING
	DeletedAt *time.Time `firestore:"deletedAt" json:"deletedAt,omitempty"`
	CreatedAt time.Time  `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time  `firestore:"updatedAt" json:"updatedAt"`
}

func (g *TransactionGroup) Deleted() bool { return g.DeletedAt != nil }
