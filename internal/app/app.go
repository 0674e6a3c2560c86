package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/chitieu/chitieu/internal/config"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration, storage, router, and server lifecycle.
type Application struct {
	cfg    config.Application
	router *mux.Router
	srv    *http.Server
	store  *Store
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication() (*Application, error) {
	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return nil, err
	}

	settings, err := BudgetSettings(cfg.Budget)
	if err != nil {
		return nil, err
	}

	// Persistence mirror (memory, postgres or sheets)
	store, err := OpenStore(context.Background(), cfg, settings.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Driver, err)
	}

	r := mux.NewRouter()

	// Build dependencies (services, handlers...)
	deps := BuildDependencies(store.Repository, settings, cfg)

	// Middleware chain
	SetupMiddleware(r, deps, cfg)

	// Routes
	RegisterRoutes(r, deps, cfg)

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Host,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, router: r, srv: srv, store: store}, nil
}

// Run starts the HTTP server and blocks. Storage is released when the server stops.
func (a *Application) Run() error {
	defer a.store.Close()
	log.Infof("Starting server on %s (storage: %s)", a.srv.Addr, a.cfg.Storage.Driver)
	return a.srv.ListenAndServe()
}
