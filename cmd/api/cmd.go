package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/rfmelo/fintrack-backend/internal/bootstrap"
	"github.com/rfmelo/fintrack-backend/internal/config"
	"github.com/rfmelo/fintrack-backend/internal/handlers"
	"github.com/rfmelo/fintrack-backend/internal/middleware"
	"github.com/rfmelo/fintrack-backend/internal/response"
	"github.com/rfmelo/fintrack-backend/internal/router"
	"github.com/rfmelo/fintrack-backend/internal/services"
	"github.com/rfmelo/fintrack-backend/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	godotenv.Load()
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// stores
	tstore := store.NewTransactionStore(bs.Firestore)
	gstore := store.NewGroupStore(bs.Firestore)
	rstore := store.NewReferenceStore(bs.Firestore)

	// services
	refserv := services.NewReferenceService(rstore)
	gserv := services.NewGroupService(tstore, gstore)
	tserv := services.NewTransactionService(tstore, gstore, gserv, refserv)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Firebase = bs.Firebase
	deps.TransactionSvc = tserv
	deps.GroupSvc = gserv
	deps.ReferenceSvc = refserv

	// middleware
	auth := middleware.NewMiddleware(bs.Firebase)
	reqlog := middleware.NewLoggerMiddleware(bs.Log)

	// router
	r := router.NewRouter(deps, auth.FirebaseAuth, reqlog.LoggerMiddleware)
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
