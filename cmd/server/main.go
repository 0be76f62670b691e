package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"time"

	"go.uber.org/zap"

	adapthttp "github.com/Nicolas-Jorq/budget-app-sub002/internal/adapter/http"
	"github.com/Nicolas-Jorq/budget-app-sub002/internal/adapter/postgres"
	"github.com/Nicolas-Jorq/budget-app-sub002/internal/app"
	"github.com/Nicolas-Jorq/budget-app-sub002/internal/config"
	"github.com/Nicolas-Jorq/budget-app-sub002/internal/provider"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}
	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := postgres.Open(cfg.Database.URL)
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	sessionRepo := postgres.NewSessionRepo(db)

	llm := provider.New(provider.Config{
		Provider:      cfg.LLM.Provider,
		OpenAIAPIKey:  cfg.LLM.OpenAIAPIKey,
		OpenAIBaseURL: cfg.LLM.OpenAIBaseURL,
		OpenAIModel:   cfg.LLM.OpenAIModel,
		OllamaBaseURL: cfg.LLM.OllamaBaseURL,
		OllamaModel:   cfg.LLM.OllamaModel,
	}, log)
	log.Info("llm backend resolved", zap.String("provider", llm.Name()), zap.String("model", llm.Model()))

	weightSvc := app.NewWeightService(db)
	importSvc := app.NewImportService(db, log)
	progressSvc := app.NewProgressService(db)
	insightSvc := app.NewInsightService(progressSvc, llm, log)
	authSvc := app.NewAuthService(db, sessionRepo)

	opts := adapthttp.Options{
		WebDir:         cfg.Server.WebDir,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}
	if cfg.Auth.SSOEnabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		oidcCfg, err := adapthttp.SetupOIDC(ctx, cfg.Auth.OIDCIssuer, cfg.Auth.OIDCClientID, cfg.Auth.OIDCClientSecret, cfg.Auth.OIDCRedirectURL)
		cancel()
		if err != nil {
			log.Fatal("oidc setup", zap.Error(err))
		}
		opts.OIDC = oidcCfg
	}

	h := adapthttp.New(weightSvc, importSvc, progressSvc, insightSvc, authSvc, opts, log).Handler()
	log.Info("listening", zap.String("addr", cfg.Server.Addr))
	if err := http.ListenAndServe(cfg.Server.Addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("serve", zap.Error(err))
	}
}
