package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rfmelo/fintrack-backend/internal/errs"
	"github.com/rfmelo/fintrack-backend/internal/models"
)

// referenceStore persists the referenced-only entities (categories and
// accounts). The engine only resolves ids against them.
type referenceStore struct {
	client *firestore.Client
}

func NewReferenceStore(client *firestore.Client) *referenceStore {
	return &referenceStore{client: client}
}

func (s *referenceStore) categories(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("categories")
}

func (s *referenceStore) accounts(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("accounts")
}

func (s *referenceStore) ListCategories(ctx context.Context, uid string) ([]models.Category, error) {
	docs, err := s.categories(uid).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list categories", err)
	}

	out := make([]models.Category, 0, len(docs))
	for _, d := range docs {
		var c models.Category
		if err := d.DataTo(&c); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse category data", err)
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *referenceStore) CreateCategory(ctx context.Context, uid string, c *models.Category) error {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	_, err := s.categories(uid).Doc(c.CategoryID).Create(ctx, c)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errs.NewAlreadyExistsError("category already exists: " + c.CategoryID)
		}
		return errs.NewDatabaseError("create", "failed to create category", err)
	}
	return nil
}

func (s *referenceStore) ListAccounts(ctx context.Context, uid string) ([]models.Account, error) {
	docs, err := s.accounts(uid).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list accounts", err)
	}

	out := make([]models.Account, 0, len(docs))
	for _, d := range docs {
		var a models.Account
		if err := d.DataTo(&a); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse account data", err)
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *referenceStore) CreateAccount(ctx context.Context, uid string, a *models.Account) error {
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	_, err := s.accounts(uid).Doc(a.AccountID).Create(ctx, a)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errs.NewAlreadyExistsError("account already exists: " + a.AccountID)
		}
		return errs.NewDatabaseError("create", "failed to create account", err)
	}
	return nil
}
