package models

import (
	"time"
)

// Category and Account are referenced-only entities: the engine needs their
// ids to resolve transaction references, nothing more.

type Category struct {
	CategoryID string    `firestore:"categoryId" json:"categoryId"` // doc ID
	Name       string    `firestore:"name" json:"name"`
	Kind       string    `firestore:"kind" json:"kind"` // INCOME | EXPENSE
	CreatedAt  time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `firestore:"updatedAt" json:"updatedAt"`
}

type Account struct {
	AccountID string    `firestore:"accountId" json:"accountId"` // doc ID
	Name      string    `firestore:"name" json:"name"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}
