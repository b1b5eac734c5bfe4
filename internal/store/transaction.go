package store

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rfmelo/fintrack-backend/internal/errs"
	"github.com/rfmelo/fintrack-backend/internal/models"
	"github.com/rfmelo/fintrack-backend/pkg/helpers"
)

type transactionStore struct {
	client *firestore.Client
}

func NewTransactionStore(client *firestore.Client) *transactionStore {
	return &transactionStore{client: client}
}

func (s *transactionStore) txCollection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("transactions")
}

func (s *transactionStore) groupDoc(uid, groupID string) *firestore.DocumentRef {
	return s.client.Collection("users").Doc(uid).Collection("transaction_groups").Doc(groupID)
}

func (s *transactionStore) Insert(ctx context.Context, uid string, tx *models.Transaction) error {
	now := time.Now()
	tx.CreatedAt = now
	tx.UpdatedAt = now

	_, err := s.txCollection(uid).Doc(tx.TransactionID).Create(ctx, tx)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errs.NewAlreadyExistsError("transaction already exists: " + tx.TransactionID)
		}
		return errs.NewDatabaseError("create", "failed to insert transaction", err)
	}
	return nil
}

// InsertBatch writes a generated group: the definition record plus every
// member, in one BulkWriter flush. The definition is written first so a
// partially confirmed batch leaves members with a resolvable group id.
func (s *transactionStore) InsertBatch(ctx context.Context, uid string, group *models.TransactionGroup, txs []models.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	now := time.Now()
	group.CreatedAt = now
	group.UpdatedAt = now

	bw := s.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(txs)+1)

	job, err := bw.Create(s.groupDoc(uid, group.GroupID), group)
	if err != nil {
		bw.End()
		return errs.NewDatabaseError("create", "failed to enqueue group definition", err)
	}
	jobs = append(jobs, job)

	for i := range txs {
		txs[i].CreatedAt = now
		txs[i].UpdatedAt = now

		doc := s.txCollection(uid).Doc(txs[i].TransactionID)
		job, err := bw.Create(doc, txs[i])
		if err != nil {
			bw.End()
			return errs.NewDatabaseError("create", "failed to enqueue transaction", err)
		}
		jobs = append(jobs, job)
	}

	// Flush and close the writer, then wait on each job for errors.
	bw.End()
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return errs.NewDatabaseError("create", "failed to write transaction batch", err)
		}
	}

	return nil
}

func (s *transactionStore) SoftDelete(ctx context.Context, uid, txID string) error {
	_, err := s.txCollection(uid).Doc(txID).Update(ctx, []firestore.Update{
		{Path: "deletedAt", Value: helpers.Ptr(time.Now())},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errs.NewNotFoundError("transaction not found: " + txID)
		}
		return errs.NewDatabaseError("update", "failed to soft-delete transaction", err)
	}
	return nil
}

// ClearGroup detaches a transaction from its group in place, converting it
// back into a standalone record.
func (s *transactionStore) ClearGroup(ctx context.Context, uid, txID string) error {
	_, err := s.txCollection(uid).Doc(txID).Update(ctx, []firestore.Update{
		{Path: "groupId", Value: ""},
		{Path: "groupKind", Value: ""},
		{Path: "groupIndex", Value: 0},
		{Path: "groupTotal", Value: 0},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errs.NewNotFoundError("transaction not found: " + txID)
		}
		return errs.NewDatabaseError("update", "failed to clear transaction group", err)
	}
	return nil
}

func (s *transactionStore) SetGroupIndex(ctx context.Context, uid, txID string, index int) error {
	_, err := s.txCollection(uid).Doc(txID).Update(ctx, []firestore.Update{
		{Path: "groupIndex", Value: index},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errs.NewNotFoundError("transaction not found: " + txID)
		}
		return errs.NewDatabaseError("update", "failed to update group index", err)
	}
	return nil
}

// ListGrouped returns the user's live transactions that carry a group id.
func (s *transactionStore) ListGrouped(ctx context.Context, uid string) ([]models.Transaction, error) {
	docs, err := s.txCollection(uid).Where("deletedAt", "==", nil).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list transactions", err)
	}

	var out []models.Transaction
	for _, d := range docs {
		var tx models.Transaction
		if err := d.DataTo(&tx); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse transaction data", err)
		}
		if tx.Grouped() {
			out = append(out, tx)
		}
	}
	return out, nil
}

// ListGroupMembers returns the live members of one group sorted by group
// index. The deleted filter and ordering happen client-side to keep the
// query on a single field.
func (s *transactionStore) ListGroupMembers(ctx context.Context, uid, groupID string) ([]models.Transaction, error) {
	docs, err := s.txCollection(uid).Where("groupId", "==", groupID).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list group members", err)
	}

	var out []models.Transaction
	for _, d := range docs {
		var tx models.Transaction
		if err := d.DataTo(&tx); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse transaction data", err)
		}
		if !tx.Deleted() {
			out = append(out, tx)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].GroupIndex < out[j].GroupIndex })
	return out, nil
}
