package services

import (
	"context"
	"fmt"

	"github.com/rfmelo/fintrack-backend/internal/dto"
	"github.com/rfmelo/fintrack-backend/internal/errs"
	"github.com/rfmelo/fintrack-backend/internal/models"
)

// referenceStore is the storage interface for the referenced-only entities.
type referenceStore interface {
	ListCategories(ctx context.Context, uid string) ([]models.Category, error)
	CreateCategory(ctx context.Context, uid string, c *models.Category) error
	ListAccounts(ctx context.Context, uid string) ([]models.Account, error)
	CreateAccount(ctx context.Context, uid string, a *models.Account) error
}

type referenceService struct {
	store referenceStore
}

func NewReferenceService(store referenceStore) *referenceService {
	return &referenceService{store: store}
}

func (s *referenceService) ListCategories(ctx context.Context, uid string) ([]models.Category, error) {
	return s.store.ListCategories(ctx, uid)
}

func (s *referenceService) CreateCategory(ctx context.Context, uid string, req dto.CreateCategoryRequest) (*models.Category, error) {
	if req.CategoryID == "" || req.Name == "" {
		return nil, errs.NewValidationError("categoryId and name are required")
	}
	if req.Kind != models.KindIncome && req.Kind != models.KindExpense {
		return nil, errs.NewValidationError(fmt.Sprintf("invalid category kind %q (must be INCOME or EXPENSE)", req.Kind))
	}
	c := &models.Category{
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Kind:       req.Kind,
	}
	if err := s.store.CreateCategory(ctx, uid, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *referenceService) ListAccounts(ctx context.Context, uid string) ([]models.Account, error) {
	return s.store.ListAccounts(ctx, uid)
}

func (s *referenceService) CreateAccount(ctx context.Context, uid string, req dto.CreateAccountRequest) (*models.Account, error) {
	if req.AccountID == "" || req.Name == "" {
		return nil, errs.NewValidationError("accountId and name are required")
	}
	a := &models.Account{
		AccountID: req.AccountID,
		Name:      req.Name,
	}
	if err := s.store.CreateAccount(ctx, uid, a); err != nil {
		return nil, err
	}
	return a, nil
}
