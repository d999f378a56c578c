// Package app provides application-level wiring and dependency injection
// for the heartrisk application following hexagonal architecture.
package app

import (
	"database/sql"
	"log/slog"
	"net/http"

	"heartrisk/internal/api"
	"heartrisk/internal/auth"
	"heartrisk/internal/config"
	"heartrisk/internal/db/repository"
	"heartrisk/internal/domain"
	"heartrisk/internal/middleware"
	"heartrisk/internal/predict"
	"heartrisk/internal/service"
)

// Deps holds the external dependencies that main() must provide.
// These are things the app package cannot (or should not) create itself:
// database handles and config.
type Deps struct {
	Cfg     *config.Config
	WriteDB *sql.DB
	ReadDB  *sql.DB
	Logger  *slog.Logger
}

// App holds the fully-wired application: the HTTP handler, the auth gate,
// and the account service (also used by the CLI).
type App struct {
	Handler       *api.Handler
	Authenticator *middleware.Authenticator
	Accounts      *auth.AccountService
}

// New wires repositories, the auth layer, the prediction pipeline, and the
// HTTP handler from the provided deps.
func New(deps Deps) (*App, error) {
	cfg := deps.Cfg

	// Repositories: writes go through the single-connection write pool,
	// reads through the read pool.
	userRepo := repository.NewUserRepo(deps.WriteDB)
	userReadRepo := repository.NewUserRepo(deps.ReadDB)
	recordRepo := repository.NewHealthRecordRepo(deps.WriteDB)

	// Auth layer.
	codec, err := auth.NewCodec(cfg.JWTSecret)
	if err != nil {
		return nil, err
	}
	resolver := auth.NewResolver(userReadRepo)
	accounts := auth.NewAccountService(userRepo, codec, cfg.TokenTTL)
	authenticator := middleware.NewAuthenticator(codec, resolver, deps.Logger.With("component", "auth"))

	// Prediction pipeline. An unset scorer URL leaves that modality
	// registered but unavailable.
	var imageScorer domain.ImageScorer
	if cfg.ImageScorerURL != "" {
		imageScorer = predict.NewHTTPScorer(cfg.ImageScorerURL, &http.Client{Timeout: cfg.ScorerTimeout})
	}
	var tabularScorer domain.TabularScorer
	if cfg.TabularScorerURL != "" {
		tabularScorer = predict.NewHTTPScorer(cfg.TabularScorerURL, &http.Client{Timeout: cfg.ScorerTimeout})
	}
	registry := predict.NewRegistry(imageScorer, tabularScorer, cfg.ScorerTimeout)
	orchestrator := predict.NewOrchestrator(registry)

	// Services + handler.
	predictions := service.NewPredictionService(orchestrator, recordRepo, deps.Logger.With("component", "prediction"))
	records := service.NewRecordService(recordRepo)
	handler := api.NewHandler(accounts, predictions, records)

	return &App{
		Handler:       handler,
		Authenticator: authenticator,
		Accounts:      accounts,
	}, nil
}
