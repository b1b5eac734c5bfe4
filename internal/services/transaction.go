package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rfmelo/fintrack-backend/internal/dto"
	"github.com/rfmelo/fintrack-backend/internal/errs"
	"github.com/rfmelo/fintrack-backend/internal/models"
	"github.com/rfmelo/fintrack-backend/pkg/logger"
)

// transactionStore is the write-side storage interface for transactions.
type transactionStore interface {
	Insert(ctx context.Context, uid string, tx *models.Transaction) error
	InsertBatch(ctx context.Context, uid string, group *models.TransactionGroup, txs []models.Transaction) error
	SoftDelete(ctx context.Context, uid, txID string) error
	ListGroupMembers(ctx context.Context, uid, groupID string) ([]models.Transaction, error)
}

// transactionGroupDefs resolves and retires group-definition records.
type transactionGroupDefs interface {
	Get(ctx context.Context, uid, groupID string) (*models.TransactionGroup, error)
	SoftDelete(ctx context.Context, uid, groupID string) error
}

// preflightChecker is the pre-insert group check (see groupService).
type preflightChecker interface {
	ValidateTransactionBeforeInsert(ctx context.Context, uid string, tx models.Transaction) dto.PreflightResult
}

// referenceLister supplies the id sets the validator resolves against.
type referenceLister interface {
	ListCategories(ctx context.Context, uid string) ([]models.Category, error)
	ListAccounts(ctx context.Context, uid string) ([]models.Account, error)
}

type transactionService struct {
	store     transactionStore
	defs      transactionGroupDefs
	preflight preflightChecker
	refs      referenceLister
}

func NewTransactionService(store transactionStore, defs transactionGroupDefs, preflight preflightChecker, refs referenceLister) *transactionService {
	return &transactionService{store: store, defs: defs, preflight: preflight, refs: refs}
}

// Create validates the intent, expands it when a recurrence mode is set,
// and persists the result. Validation failures surface the full error list
// before any write is attempted; a single user intent never produces a
// partial write.
func (s *transactionService) Create(ctx context.Context, uid string, intent dto.TransactionIntent) ([]models.Transaction, error) {
	intent.Description = strings.TrimSpace(intent.Description)

	categories, err := s.refs.ListCategories(ctx, uid)
	if err != nil {
		return nil, err
	}
	accounts, err := s.refs.ListAccounts(ctx, uid)
	if err != nil {
		return nil, err
	}

	if res := ValidateTransaction(intent, accounts, categories); !res.IsValid {
		return nil, errs.NewValidationErrors(res.Errors)
	}

	batch, err := GenerateTransactions(intent)
	if err != nil {
		return nil, err
	}

	if batch == nil {
		tx := transactionFromIntent(intent)
		if err := s.store.Insert(ctx, uid, &tx); err != nil {
			return nil, err
		}
		return []models.Transaction{tx}, nil
	}

	group := &models.TransactionGroup{
		GroupID: batch.GroupID,
		Kind:    batch.GroupKind,
	}
	if err := s.store.InsertBatch(ctx, uid, group, batch.Transactions); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("transaction group created",
		"groupId", batch.GroupID,
		"kind", batch.GroupKind,
		"members", len(batch.Transactions))

	return batch.Transactions, nil
}

// AppendToGroup adds one member to an existing recurring group. Installment
// groups are fixed-size and reject appends; recurring groups are open-ended
// by design. The pre-insert check guarantees the target group is live, so
// the append can never mint an orphan.
func (s *transactionService) AppendToGroup(ctx context.Context, uid, groupID string, intent dto.TransactionIntent) (*models.Transaction, error) {
	intent.Description = strings.TrimSpace(intent.Description)
	intent.Recurrence = dto.RecurrenceNone
	intent.Count = 0

	categories, err := s.refs.ListCategories(ctx, uid)
	if err != nil {
		return nil, err
	}
	accounts, err := s.refs.ListAccounts(ctx, uid)
	if err != nil {
		return nil, err
	}
	if res := ValidateTransaction(intent, accounts, categories); !res.IsValid {
		return nil, errs.NewValidationErrors(res.Errors)
	}

	tx := transactionFromIntent(intent)
	tx.GroupID = groupID

	if pf := s.preflight.ValidateTransactionBeforeInsert(ctx, uid, tx); !pf.Valid {
		return nil, errs.NewValidationError(pf.Error)
	}

	group, err := s.defs.Get(ctx, uid, groupID)
	if err != nil {
		return nil, err
	}
	if group.Kind == models.GroupKindInstallment {
		return nil, errs.NewValidationError(
			fmt.Sprintf("cannot append to fixed-size installment group %s", groupID))
	}

	members, err := s.store.ListGroupMembers(ctx, uid, groupID)
	if err != nil {
		return nil, err
	}

	tx.GroupKind = group.Kind
	tx.GroupIndex = len(members) + 1

	if err := s.store.Insert(ctx, uid, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// Delete soft-deletes one transaction.
func (s *transactionService) Delete(ctx context.Context, uid, txID string) error {
	return s.store.SoftDelete(ctx, uid, txID)
}

// DeleteGroup soft-deletes every live member of a group and then retires
// the group definition. Per-member failures are accumulated: a member that
// cannot be deleted never aborts the rest, and the definition is kept alive
// while any member survives so the survivors do not become orphans.
func (s *transactionService) DeleteGroup(ctx context.Context, uid, groupID string) dto.GroupDeleteResult {
	result := dto.GroupDeleteResult{Errors: []string{}}

	members, err := s.store.ListGroupMembers(ctx, uid, groupID)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("failed to fetch group members: %v", err))
		return result
	}

	for _, m := range members {
		if err := s.store.SoftDelete(ctx, uid, m.TransactionID); err != nil {
			result.Failed++
			result.Errors = append(result.Errors,
				fmt.Sprintf("failed to delete transaction %s: %v", m.TransactionID, err))
			continue
		}
		result.Deleted++
	}

	if result.Failed == 0 {
		if err := s.defs.SoftDelete(ctx, uid, groupID); err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("failed to delete group %s: %v", groupID, err))
		}
	}

	logger.FromContext(ctx).Info("group delete complete",
		"groupId", groupID,
		"deleted", result.Deleted,
		"failed", result.Failed)

	return result
}

// ListGroup returns the live members of a group ordered by group index.
func (s *transactionService) ListGroup(ctx context.Context, uid, groupID string) ([]models.Transaction, error) {
	return s.store.ListGroupMembers(ctx, uid, groupID)
}

func transactionFromIntent(intent dto.TransactionIntent) models.Transaction {
	return models.Transaction{
		TransactionID: uuid.New().String(),
		Description:   intent.Description,
		Value:         intent.Value,
		Kind:          intent.Kind,
		CategoryID:    intent.CategoryID,
		AccountID:     intent.AccountID,
		Date:          intent.Date,
		Spender:       intent.Spender,
		Paid:          intent.Paid,
		Sentiment:     intent.Sentiment,
	}
}
