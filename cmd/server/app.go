package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/emory/internal/config"
	"github.com/phrazzld/emory/internal/domain"
	"github.com/phrazzld/emory/internal/events"
	"github.com/phrazzld/emory/internal/game"
	"github.com/phrazzld/emory/internal/ranking"
	"github.com/phrazzld/emory/internal/service"
	"github.com/phrazzld/emory/internal/store"
	"github.com/phrazzld/emory/internal/task"
)

// application holds the shared application dependencies so they can be
// released together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	kv          store.ClosableKVStore
	ranking     *ranking.Store
	emitter     *events.InMemoryEventEmitter
	scheduler   task.Scheduler
	gameService service.GameService
}

// newApplication wires the services on top of an opened store. The
// application takes ownership of kv.
func newApplication(cfg *config.Config, logger *slog.Logger, kv store.ClosableKVStore) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		kv:     kv,
	}

	app.ranking = ranking.NewStore(kv, logger)

	app.emitter = events.NewInMemoryEventEmitter(logger)
	app.emitter.RegisterHandler(events.NewLogHandler(logger))

	app.scheduler = task.NewTimerScheduler(logger)

	var err error
	app.gameService, err = service.NewGameService(gameConfig(cfg.Game), cfg.Game.MaxSessions, service.Dependencies{
		Scores:    app.ranking,
		Scheduler: app.scheduler,
		Emitter:   app.emitter,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize game service: %w", err)
	}

	logger.Info("application initialized",
		slog.Int("pair_count", cfg.Game.PairCount),
		slog.Duration("mismatch_delay", cfg.Game.MismatchDelay),
		slog.String("ranking_policy", app.ranking.Policy().String()))
	return app, nil
}

// cleanup releases the application's resources.
func (app *application) cleanup() {
	if app.kv != nil {
		if err := app.kv.Close(); err != nil {
			app.logger.Error("failed to close store", slog.String("error", err.Error()))
		}
	}
}

func gameConfig(cfg config.GameConfig) game.Config {
	symbols := make([]domain.Symbol, len(cfg.Symbols))
	for i, s := range cfg.Symbols {
		symbols[i] = domain.Symbol(s)
	}
	return game.Config{
		Symbols:       symbols,
		PairCount:     cfg.PairCount,
		MismatchDelay: cfg.MismatchDelay,
	}
}
