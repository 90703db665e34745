package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	adapthttp "github.com/WTomoharu/db-final-project/internal/adapter/http"
	"github.com/WTomoharu/db-final-project/internal/adapter/sqlstore"
	"github.com/WTomoharu/db-final-project/internal/app"
	"github.com/WTomoharu/db-final-project/internal/config"
)

func main() {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}

	var store *sqlstore.DB
	switch cfg.DatabaseType {
	case "postgres":
		store, err = sqlstore.OpenPostgres(cfg.DatabaseURL)
	default:
		store, err = sqlstore.OpenSQLite(cfg.SQLitePath)
	}
	if err != nil {
		slog.Error("store open", "error", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()
	slog.Info("database schema ready", "type", cfg.DatabaseType)

	users := sqlstore.NewUserRepo(store)
	groups := sqlstore.NewGroupRepo(store)
	weights := sqlstore.NewWeightRepo(store)
	reports := sqlstore.NewReportRepo(store)
	sessions := sqlstore.NewSessionRepo(store)

	authSvc := app.NewAuthService(users, sessions)
	weightSvc := app.NewWeightService(weights, users)
	groupSvc := app.NewGroupService(groups, weights, reports)

	oidcCfg, err := adapthttp.NewOIDCConfig(context.Background(),
		cfg.OIDCIssuer, cfg.OIDCClientID, cfg.OIDCClientSecret, cfg.OIDCRedirectURL)
	if err != nil {
		slog.Error("oidc setup", "error", err)
		os.Exit(1)
	}

	server := http.Server{
		Addr:    cfg.Addr,
		Handler: adapthttp.New(authSvc, weightSvc, groupSvc, oidcCfg).Handler(),
	}

	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		_ = server.Close()
	}()

	slog.Info("listening", "addr", cfg.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server closed", "error", err)
		os.Exit(1)
	}
}
