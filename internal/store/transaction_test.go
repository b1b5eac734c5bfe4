package store

import (
	"context"
	"errors"
	"os"
	"testing"

	"cloud.google.com/go/firestore"

	"github.com/rfmelo/fintrack-backend/internal/errs"
	"github.com/rfmelo/fintrack-backend/internal/models"
)

func emulatorClient(t *testing.T) *firestore.Client {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	client, err := firestore.NewClient(context.Background(), "test-project")
	if err != nil {
		t.Fatalf("firestore client error: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestTransactionGroupLifecycleWithEmulator(t *testing.T) {
	ctx := context.Background()
	client := emulatorClient(t)

	txStore := NewTransactionStore(client)
	groupStore := NewGroupStore(client)
	uid := "user-lifecycle"

	group := &models.TransactionGroup{
		GroupID: "grp1",
		Kind:    models.GroupKindInstallment,
	}
	members := []models.Transaction{
		{
			TransactionID: "t1",
			Description:   "Compra (1/2)",
			Value:         600,
			Kind:          models.KindExpense,
			CategoryID:    "cat-food",
			AccountID:     "acc-checking",
			Date:          "2026-01-15",
			GroupID:       "grp1",
			GroupKind:     models.GroupKindInstallment,
			GroupIndex:    1,
			GroupTotal:    2,
		},
		{
			TransactionID: "t2",
			Description:   "Compra (2/2)",
			Value:         600,
			Kind:          models.KindExpense,
			CategoryID:    "cat-food",
			AccountID:     "acc-checking",
			Date:          "2026-02-15",
			GroupID:       "grp1",
			GroupKind:     models.GroupKindInstallment,
			GroupIndex:    2,
			GroupTotal:    2,
		},
	}

	if err := txStore.InsertBatch(ctx, uid, group, members); err != nil {
		t.Fatalf("insert batch error: %v", err)
	}

	ok, err := groupStore.Exists(ctx, uid, "grp1")
	if err != nil || !ok {
		t.Fatalf("expected group definition written with the batch, got %v, %v", ok, err)
	}

	got, err := txStore.ListGroupMembers(ctx, uid, "grp1")
	if err != nil {
		t.Fatalf("list members error: %v", err)
	}
	if len(got) != 2 || got[0].TransactionID != "t1" || got[1].TransactionID != "t2" {
		t.Fatalf("expected members ordered by group index, got %+v", got)
	}

	grouped, err := txStore.ListGrouped(ctx, uid)
	if err != nil {
		t.Fatalf("list grouped error: %v", err)
	}
	if len(grouped) != 2 {
		t.Fatalf("expected 2 grouped transactions, got %d", len(grouped))
	}

	// Soft-deleted members drop out of every live listing.
	if err := txStore.SoftDelete(ctx, uid, "t2"); err != nil {
		t.Fatalf("soft delete error: %v", err)
	}
	got, err = txStore.ListGroupMembers(ctx, uid, "grp1")
	if err != nil {
		t.Fatalf("list members error: %v", err)
	}
	if len(got) != 1 || got[0].TransactionID != "t1" {
		t.Fatalf("expected only t1 live, got %+v", got)
	}

	// Detaching strips every group field.
	if err := txStore.ClearGroup(ctx, uid, "t1"); err != nil {
		t.Fatalf("clear group error: %v", err)
	}
	grouped, err = txStore.ListGrouped(ctx, uid)
	if err != nil {
		t.Fatalf("list grouped error: %v", err)
	}
	if len(grouped) != 0 {
		t.Fatalf("expected no grouped transactions after detach, got %+v", grouped)
	}

	if err := groupStore.SoftDelete(ctx, uid, "grp1"); err != nil {
		t.Fatalf("group soft delete error: %v", err)
	}
	ok, err = groupStore.Exists(ctx, uid, "grp1")
	if err != nil {
		t.Fatalf("exists error: %v", err)
	}
	if ok {
		t.Fatal("retired group must not resolve as live")
	}
}

func TestTransactionInsertConflictWithEmulator(t *testing.T) {
	ctx := context.Background()
	client := emulatorClient(t)

	store := NewTransactionStore(client)
	uid := "user-conflict"

	tx := models.Transaction{
		TransactionID: "dup",
		Description:   "Groceries",
		Value:         50,
		Kind:          models.KindExpense,
		CategoryID:    "cat-food",
		AccountID:     "acc-checking",
		Date:          "2026-03-10",
	}
	if err := store.Insert(ctx, uid, &tx); err != nil {
		t.Fatalf("insert error: %v", err)
	}

	err := store.Insert(ctx, uid, &tx)
	var exists *errs.AlreadyExistsError
	if !errors.As(err, &exists) {
		t.Fatalf("expected *errs.AlreadyExistsError, got %v", err)
	}
}

func TestGroupStoreMissingGroupWithEmulator(t *testing.T) {
	ctx := context.Background()
	client := emulatorClient(t)

	store := NewGroupStore(client)

	ok, err := store.Exists(ctx, "user-missing", "nope")
	if err != nil {
		t.Fatalf("exists error: %v", err)
	}
	if ok {
		t.Fatal("missing group must not resolve")
	}

	_, err = store.Get(ctx, "user-missing", "nope")
	var nf *errs.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected *errs.NotFoundError, got %v", err)
	}
}
