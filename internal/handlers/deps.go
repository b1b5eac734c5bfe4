package handlers

import (
	"log/slog"

	"firebase.google.com/go/v4/auth"

	"github.com/rfmelo/fintrack-backend/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	Firebase        *auth.Client
	TransactionSvc  TransactionService
	GroupSvc        GroupService
	ReferenceSvc    ReferenceService
}
