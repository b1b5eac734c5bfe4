package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/rfmelo/fintrack-backend/internal/dto"
	"github.com/rfmelo/fintrack-backend/internal/middleware"
	"github.com/rfmelo/fintrack-backend/internal/models"
)

type stubTransactionService struct {
	createCalled bool
	createUID    string
	createIntent dto.TransactionIntent
	createTxs    []models.Transaction
	createErr    error

	appendCalled bool
	appendGroup  string
	appendTx     *models.Transaction
	appendErr    error

	deleteCalled bool
	deleteTxID   string
	deleteErr    error

	deleteGroupCalled bool
	deleteGroupID     string
	deleteGroupResult dto.GroupDeleteResult

	listGroupCalled bool
	listGroupTxs    []models.Transaction
	listGroupErr    error
}

func (s *stubTransactionService) Create(_ context.Context, uid string, intent dto.TransactionIntent) ([]models.Transaction, error) {
	s.createCalled = true
	s.createUID = uid
	s.createIntent = intent
	return s.createTxs, s.createErr
}

func (s *stubTransactionService) AppendToGroup(_ context.Context, _, groupID string, _ dto.TransactionIntent) (*models.Transaction, error) {
	s.appendCalled = true
	s.appendGroup = groupID
	return s.appendTx, s.appendErr
}

func (s *stubTransactionService) Delete(_ context.Context, _, txID string) error {
	s.deleteCalled = true
	s.deleteTxID = txID
	return s.deleteErr
}

func (s *stubTransactionService) DeleteGroup(_ context.Context, _, groupID string) dto.GroupDeleteResult {
	s.deleteGroupCalled = true
	s.deleteGroupID = groupID
	return s.deleteGroupResult
}

func (s *stubTransactionService) ListGroup(_ context.Context, _, _ string) ([]models.Transaction, error) {
	s.listGroupCalled = true
	return s.listGroupTxs, s.listGroupErr
}

type stubResponseHandler struct {
	writeSuccessCalled bool
	writeSuccessStatus int
	writeSuccessData   any

	handleErrorCalled bool
	handleError       error
}

func (s *stubResponseHandler) WriteSuccess(w http.ResponseWriter, _ *http.Request, status int, data any) {
	s.writeSuccessCalled = true
	s.writeSuccessStatus = status
	s.writeSuccessData = data

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"success":true}`))
}

func (s *stubResponseHandler) WriteError(w http.ResponseWriter, _ *http.Request, status int, _, _ string) {
	w.WriteHeader(status)
}

func (s *stubResponseHandler) HandleError(w http.ResponseWriter, _ *http.Request, err error) {
	s.handleErrorCalled = true
	s.handleError = err
	w.WriteHeader(http.StatusInternalServerError)
}

func withUID(req *http.Request, uid string) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), middleware.UIDKey, uid))
}

func withChiParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestCreateTransactionSuccess(t *testing.T) {
	svc := &stubTransactionService{
		createTxs: []models.Transaction{{TransactionID: "t1"}},
	}
	resp := &stubResponseHandler{}
	h := NewTransactionHandlers(&Deps{ResponseHandler: resp, TransactionSvc: svc})

	body := `{"description":"Groceries","value":120.5,"kind":"EXPENSE","categoryId":"cat-food","accountId":"acc-checking","date":"2026-03-10"}`
	req := withUID(httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(body)), "uid-123")
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	if !svc.createCalled {
		t.Fatal("expected Create to be called on service")
	}
	if svc.createUID != "uid-123" {
		t.Fatalf("service received wrong uid: %s", svc.createUID)
	}
	if svc.createIntent.Description != "Groceries" || svc.createIntent.Value != 120.5 {
		t.Fatalf("service received wrong intent: %+v", svc.createIntent)
	}
	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusCreated {
		t.Fatalf("WriteSuccess not called with status 201")
	}
}

func TestCreateTransactionInvalidJSON(t *testing.T) {
	svc := &stubTransactionService{}
	resp := &stubResponseHandler{}
	h := NewTransactionHandlers(&Deps{ResponseHandler: resp, TransactionSvc: svc})

	req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader("not-json"))
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	if svc.createCalled {
		t.Fatal("Create should not be called on service when JSON invalid")
	}
	if !resp.handleErrorCalled || resp.handleError == nil {
		t.Fatal("HandleError should receive the decode error")
	}
}

func TestCreateTransactionServiceError(t *testing.T) {
	svc := &stubTransactionService{createErr: errors.New("service failure")}
	resp := &stubResponseHandler{}
	h := NewTransactionHandlers(&Deps{ResponseHandler: resp, TransactionSvc: svc})

	body := `{"description":"Groceries"}`
	req := withUID(httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(body)), "uid-123")
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	if !resp.handleErrorCalled || !errors.Is(resp.handleError, svc.createErr) {
		t.Fatalf("expected the service error delegated to HandleError, got %v", resp.handleError)
	}
	if resp.writeSuccessCalled {
		t.Fatal("WriteSuccess should not be called on service error")
	}
}

func TestDeleteTransaction(t *testing.T) {
	svc := &stubTransactionService{}
	resp := &stubResponseHandler{}
	h := NewTransactionHandlers(&Deps{ResponseHandler: resp, TransactionSvc: svc})

	req := httptest.NewRequest(http.MethodDelete, "/transactions/t1", nil)
	req = withChiParam(withUID(req, "uid-123"), "transactionId", "t1")
	rr := httptest.NewRecorder()

	h.Delete(rr, req)

	if !svc.deleteCalled || svc.deleteTxID != "t1" {
		t.Fatalf("expected Delete called with t1, got %q", svc.deleteTxID)
	}
	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusOK {
		t.Fatal("WriteSuccess not called with status 200")
	}
}

func TestAppendToGroupHandler(t *testing.T) {
	svc := &stubTransactionService{
		appendTx: &models.Transaction{TransactionID: "t9", GroupID: "grp1", GroupIndex: 3},
	}
	resp := &stubResponseHandler{}
	h := NewTransactionHandlers(&Deps{ResponseHandler: resp, TransactionSvc: svc})

	body := `{"description":"Netflix","value":500,"kind":"EXPENSE","categoryId":"cat-fun","accountId":"acc-checking","date":"2026-06-15"}`
	req := httptest.NewRequest(http.MethodPost, "/groups/grp1/transactions", strings.NewReader(body))
	req = withChiParam(withUID(req, "uid-123"), "groupId", "grp1")
	rr := httptest.NewRecorder()

	h.AppendToGroup(rr, req)

	if !svc.appendCalled || svc.appendGroup != "grp1" {
		t.Fatalf("expected AppendToGroup called with grp1, got %q", svc.appendGroup)
	}
	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusCreated {
		t.Fatal("WriteSuccess not called with status 201")
	}
}

func TestDeleteGroupHandler(t *testing.T) {
	svc := &stubTransactionService{
		deleteGroupResult: dto.GroupDeleteResult{Deleted: 2, Errors: []string{}},
	}
	resp := &stubResponseHandler{}
	h := NewTransactionHandlers(&Deps{ResponseHandler: resp, TransactionSvc: svc})

	req := httptest.NewRequest(http.MethodDelete, "/groups/grp1", nil)
	req = withChiParam(withUID(req, "uid-123"), "groupId", "grp1")
	rr := httptest.NewRecorder()

	h.DeleteGroup(rr, req)

	if !svc.deleteGroupCalled || svc.deleteGroupID != "grp1" {
		t.Fatalf("expected DeleteGroup called with grp1, got %q", svc.deleteGroupID)
	}
	result, ok := resp.writeSuccessData.(dto.GroupDeleteResult)
	if !ok || result.Deleted != 2 {
		t.Fatalf("expected the delete result written, got %+v", resp.writeSuccessData)
	}
}
