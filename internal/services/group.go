package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/rfmelo/fintrack-backend/internal/dto"
	"github.com/rfmelo/fintrack-backend/internal/errs"
	"github.com/rfmelo/fintrack-backend/internal/models"
	"github.com/rfmelo/fintrack-backend/pkg/logger"
)

// groupTransactionStore is the transaction-side storage interface the
// integrity checker and repair engine operate through.
type groupTransactionStore interface {
	ListGrouped(ctx context.Context, uid string) ([]models.Transaction, error)
	ListGroupMembers(ctx context.Context, uid, groupID string) ([]models.Transaction, error)
	ClearGroup(ctx context.Context, uid, txID string) error
	SoftDelete(ctx context.Context, uid, txID string) error
	SetGroupIndex(ctx context.Context, uid, txID string, index int) error
}

// groupDefinitionStore resolves the set of group ids the store currently
// recognizes as live.
type groupDefinitionStore interface {
	ListGroupIDs(ctx context.Context, uid string) ([]string, error)
	Exists(ctx context.Context, uid, groupID string) (bool, error)
}

type groupService struct {
	txs  groupTransactionStore
	defs groupDefinitionStore
}

func NewGroupService(txs groupTransactionStore, defs groupDefinitionStore) *groupService {
	return &groupService{txs: txs, defs: defs}
}

// DetectOrphans partitions the user's live grouped transactions against the
// recognized group-id set and reports every transaction whose group id does
// not resolve. Read-only: safe to run concurrently with ordinary traffic.
func (s *groupService) DetectOrphans(ctx context.Context, uid string) dto.GroupValidationResult {
	result := dto.GroupValidationResult{
		IsValid:                true,
		Orphans:                []dto.OrphanedTransaction{},
		InvalidGroupReferences: []string{},
		Errors:                 []string{},
	}

	grouped, err := s.txs.ListGrouped(ctx, uid)
	if err != nil {
		result.IsValid = false
		result.Errors = append(result.Errors, fmt.Sprintf("failed to fetch transactions: %v", err))
		return result
	}
	if len(grouped) == 0 {
		return result
	}

	groupIDs, err := s.defs.ListGroupIDs(ctx, uid)
	if err != nil {
		result.IsValid = false
		result.Errors = append(result.Errors, fmt.Sprintf("failed to fetch groups: %v", err))
		return result
	}

	valid := make(map[string]struct{}, len(groupIDs))
	for _, id := range groupIDs {
		valid[id] = struct{}{}
	}

	seen := make(map[string]struct{})
	for _, tx := range grouped {
		if _, ok := valid[tx.GroupID]; ok {
			continue
		}
		result.Orphans = append(result.Orphans, dto.OrphanedTransaction{
			Transaction: tx,
			Reason:      fmt.Sprintf("invalid group reference: %s", tx.GroupID),
		})
		if _, dup := seen[tx.GroupID]; !dup {
			seen[tx.GroupID] = struct{}{}
			result.InvalidGroupReferences = append(result.InvalidGroupReferences, tx.GroupID)
		}
	}

	result.OrphanedCount = len(result.Orphans)
	result.IsValid = result.OrphanedCount == 0

	logger.FromContext(ctx).Info("orphan detection complete",
		"total", len(grouped),
		"orphaned", result.OrphanedCount,
		"validGroups", len(valid))

	return result
}

// ValidateGroupIntegrity checks one group's live members for a dense 1..N
// index sequence and for members tagged with a foreign group id.
// Cross-contamination is reported separately from orphaning: it indicates a
// record landed in the wrong group, not that the group is missing.
func (s *groupService) ValidateGroupIntegrity(ctx context.Context, groupID, uid string) (dto.GroupIntegrityResult, error) {
	result := dto.GroupIntegrityResult{IsValid: true, Issues: []string{}}

	members, err := s.txs.ListGroupMembers(ctx, uid, groupID)
	if err != nil {
		return result, errs.NewDatabaseError("read", "failed to fetch group members", err)
	}
	if len(members) == 0 {
		return result, nil
	}

	indices := make([]int, 0, len(members))
	for _, m := range members {
		indices = append(indices, m.GroupIndex)
	}
	sort.Ints(indices)

	for i, idx := range indices {
		if idx != i+1 {
			result.Issues = append(result.Issues,
				fmt.Sprintf("non-sequential group index at position %d: expected %d, got %d", i, i+1, idx))
		}
	}

	for _, m := range members {
		if m.GroupID != groupID {
			result.Issues = append(result.Issues,
				fmt.Sprintf("transaction %s references foreign group %s", m.TransactionID, m.GroupID))
		}
	}

	result.IsValid = len(result.Issues) == 0
	return result, nil
}

// CleanupOrphans applies one corrective strategy to every orphan detected
// for the user. Each record is attempted independently; per-record failures
// are accumulated, never allowed to abort the batch. An empty strategy
// selects remove_group, the least destructive one.
func (s *groupService) CleanupOrphans(ctx context.Context, uid, strategy string) dto.CleanupResult {
	result := dto.CleanupResult{Errors: []string{}}

	if strategy == "" {
		strategy = dto.StrategyRemoveGroup
	}
	switch strategy {
	case dto.StrategyRemoveGroup, dto.StrategyDelete:
	case dto.StrategyArchive:
		result.Errors = append(result.Errors, "archive strategy is not implemented")
		return result
	default:
		result.Errors = append(result.Errors, fmt.Sprintf("unknown cleanup strategy %q", strategy))
		return result
	}

	detection := s.DetectOrphans(ctx, uid)
	if len(detection.Errors) > 0 {
		result.Errors = append(result.Errors, detection.Errors...)
		return result
	}
	if len(detection.Orphans) == 0 {
		return result
	}

	for _, orphan := range detection.Orphans {
		var err error
		switch strategy {
		case dto.StrategyRemoveGroup:
			err = s.txs.ClearGroup(ctx, uid, orphan.TransactionID)
		case dto.StrategyDelete:
			err = s.txs.SoftDelete(ctx, uid, orphan.TransactionID)
		}
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors,
				fmt.Sprintf("failed to clean transaction %s: %v", orphan.TransactionID, err))
			continue
		}
		result.Cleaned++
	}

	logger.FromContext(ctx).Info("orphan cleanup complete",
		"strategy", strategy,
		"cleaned", result.Cleaned,
		"failed", result.Failed)

	return result
}

// FixGroupIndexing rewrites every live member's group index to its 1-based
// position in date order. Date is the authoritative order, with the
// transaction id as a deterministic tie-break so repeated repairs settle on
// the same numbering. Per-record failures do not abort the batch.
func (s *groupService) FixGroupIndexing(ctx context.Context, groupID, uid string) dto.ReindexResult {
	result := dto.ReindexResult{Errors: []string{}}

	members, err := s.txs.ListGroupMembers(ctx, uid, groupID)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("failed to fetch group members: %v", err))
		return result
	}
	if len(members) == 0 {
		return result
	}

	sorted := make([]models.Transaction, len(members))
	copy(sorted, members)
	sort.Slice(sorted, func(i, j int) bool {
		// YYYY-MM-DD strings order chronologically.
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		return sorted[i].TransactionID < sorted[j].TransactionID
	})

	for i, m := range sorted {
		if err := s.txs.SetGroupIndex(ctx, uid, m.TransactionID, i+1); err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("failed to update transaction %s: %v", m.TransactionID, err))
			continue
		}
		result.Fixed++
	}

	logger.FromContext(ctx).Info("group reindex complete",
		"groupId", groupID,
		"fixed", result.Fixed,
		"failed", len(result.Errors))

	return result
}

// ValidateTransactionBeforeInsert is the lightweight pre-flight that keeps
// new orphans from being created: a candidate carrying a group id is only
// insertable while that id resolves to a live group definition.
func (s *groupService) ValidateTransactionBeforeInsert(ctx context.Context, uid string, tx models.Transaction) dto.PreflightResult {
	if tx.GroupID == "" {
		return dto.PreflightResult{Valid: true}
	}

	ok, err := s.defs.Exists(ctx, uid, tx.GroupID)
	if err != nil {
		return dto.PreflightResult{
			Valid: false,
			Error: fmt.Sprintf("failed to verify group %s: %v", tx.GroupID, err),
		}
	}
	if !ok {
		return dto.PreflightResult{
			Valid: false,
			Error: fmt.Sprintf("transaction group not found: %s", tx.GroupID),
		}
	}
	return dto.PreflightResult{Valid: true}
}

// GetGroupTransactions returns the live members of one group ordered by
// group index.
func (s *groupService) GetGroupTransactions(ctx context.Context, groupID, uid string) ([]models.Transaction, error) {
	return s.txs.ListGroupMembers(ctx, uid, groupID)
}
