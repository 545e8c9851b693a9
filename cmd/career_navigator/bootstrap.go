package main

import (
	"context"
	"fmt"

	"github.com/jonathan/career-navigator/internal/config"
	"github.com/jonathan/career-navigator/internal/db"
	"github.com/jonathan/career-navigator/internal/llm"
	"github.com/jonathan/career-navigator/internal/logger"
)

// deps are the long-lived clients shared by every command.
type deps struct {
	cfg *config.Config
	llm llm.Client
	db  *db.DB
	log *logger.Logger
}

// bootstrap connects to the model provider and the document store.
func bootstrap(ctx context.Context, cfg *config.Config) (*deps, error) {
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, err
	}

	client, err := llm.NewClient(ctx, cfg.LLM(), cfg.APIKey())
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	database, err := db.Connect(ctx, cfg.StoreURI)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info("connected", "provider", cfg.Provider, "model", client.GetModel(llm.TierStandard))
	return &deps{cfg: cfg, llm: client, db: database, log: log}, nil
}

func (d *deps) close() {
	_ = d.db.Close(context.Background())
	_ = d.llm.Close()
	d.log.Sync()
}
