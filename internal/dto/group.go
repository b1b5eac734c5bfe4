package dto

import (
	"github.com/rfmelo/fintrack-backend/internal/models"
)

// Cleanup strategies for orphaned transactions. remove_group detaches the
// record from its dead group, delete soft-deletes it, archive is reserved.
const (
	StrategyRemoveGroup = "remove_group"
	StrategyDelete      = "delete"
	StrategyArchive     = "archive"
)

// OrphanedTransaction is a live transaction whose group id does not resolve
// to a recognized group.
type OrphanedTransaction struct {
	models.Transaction
	Reason string `json:"reason"`
}

// GroupValidationResult is the outcome of a full orphan scan over one
// user's transactions.
type GroupValidationResult struct {
	IsValid                bool                  `json:"isValid"`
	OrphanedCount          int                   `json:"orphanedCount"`
	Orphans                []OrphanedTransaction `json:"orphans"`
	InvalidGroupReferences []string              `json:"invalidGroupReferences"`
	Errors                 []string              `json:"errors"`
}

// GroupIntegrityResult reports index-sequence and membership issues found
// in a single group.
type GroupIntegrityResult struct {
	IsValid bool     `json:"isValid"`
	Issues  []string `json:"issues"`
}

// CleanupRequest selects the corrective strategy for an orphan cleanup run.
// An empty strategy defaults to remove_group.
type CleanupRequest struct {
	Strategy string `json:"strategy,omitempty"`
}

// CleanupResult summarizes one orphan cleanup run. Cleaned and Failed count
// records, not groups.
type CleanupResult struct {
	Cleaned int      `json:"cleaned"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}

// ReindexResult summarizes one group reindexing run.
type ReindexResult struct {
	Fixed  int      `json:"fixed"`
	Errors []string `json:"errors"`
}

// GroupDeleteResult summarizes a whole-group delete.
type GroupDeleteResult struct {
	Deleted int      `json:"deleted"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}

// PreflightResult is the verdict of the pre-insert group check.
type PreflightResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}
