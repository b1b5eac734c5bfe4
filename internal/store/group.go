package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rfmelo/fintrack-backend/internal/errs"
	"github.com/rfmelo/fintrack-backend/internal/models"
	"github.com/rfmelo/fintrack-backend/pkg/helpers"
)

type groupStore struct {
	client *firestore.Client
}

func NewGroupStore(client *firestore.Client) *groupStore {
	return &groupStore{client: client}
}

func (s *groupStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("transaction_groups")
}

// ListGroupIDs returns the ids of every live group definition for the user
// — the recognized set orphan detection partitions against.
func (s *groupStore) ListGroupIDs(ctx context.Context, uid string) ([]string, error) {
	docs, err := s.collection(uid).Where("deletedAt", "==", nil).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list group definitions", err)
	}

	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.Ref.ID)
	}
	return ids, nil
}

func (s *groupStore) Exists(ctx context.Context, uid, groupID string) (bool, error) {
	doc, err := s.collection(uid).Doc(groupID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, errs.NewDatabaseError("read", "failed to get group definition", err)
	}

	var g models.TransactionGroup
	if err := doc.DataTo(&g); err != nil {
		return false, errs.NewDatabaseError("read", "failed to parse group data", err)
	}
	return !g.Deleted(), nil
}

func (s *groupStore) Get(ctx context.Context, uid, groupID string) (*models.TransactionGroup, error) {
	doc, err := s.collection(uid).Doc(groupID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("transaction group not found: " + groupID)
		}
		return nil, errs.NewDatabaseError("read", "failed to get group definition", err)
	}

	var g models.TransactionGroup
	if err := doc.DataTo(&g); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse group data", err)
	}
	if g.Deleted() {
		return nil, errs.NewNotFoundError("transaction group not found: " + groupID)
	}
	return &g, nil
}

func (s *groupStore) SoftDelete(ctx context.Context, uid, groupID string) error {
	_, err := s.collection(uid).Doc(groupID).Update(ctx, []firestore.Update{
		{Path: "deletedAt", Value: helpers.Ptr(time.Now())},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errs.NewNotFoundError("transaction group not found: " + groupID)
		}
		return errs.NewDatabaseError("update", "failed to soft-delete group definition", err)
	}
	return nil
}
