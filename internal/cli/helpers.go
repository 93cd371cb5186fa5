package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/akorchagin/partnerpulse/internal/analytics"
	"github.com/akorchagin/partnerpulse/internal/config"
	"github.com/akorchagin/partnerpulse/internal/period"
	"github.com/akorchagin/partnerpulse/internal/plan"
	"github.com/akorchagin/partnerpulse/internal/storage"
)

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().Timestamp().Logger()
}

type engine struct {
	generator *analytics.Generator
	tracker   *plan.Tracker
	close     func()
}

// buildEngine assembles the generator and plan tracker from configuration.
// Without a database DSN the tracker runs on the in-memory store, so plan
// edits survive only the process lifetime.
func buildEngine(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*engine, error) {
	var store plan.Store = storage.NewMemory()
	cleanup := func() {}

	if cfg.DatabaseDSN != "" {
		db, err := storage.Open(cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		kv, err := storage.NewKV(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("prepare settings store: %w", err)
		}
		store = kv
		cleanup = func() { _ = db.Close() }
	}

	gen := analytics.NewGenerator(cfg.Seed, nil)
	snapshot, _ := gen.PersonSnapshot(gen.CurrentUserID(), period.Week)
	tracker := plan.NewTracker(ctx, store, cfg.PlanEditable,
		snapshot.DynamicKPI.PlanFacts(), log)

	return &engine{generator: gen, tracker: tracker, close: cleanup}, nil
}
