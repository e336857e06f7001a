package app

import (
	"context"
	"fmt"

	appconfig "github.com/doeshing/explain-go/internal/application/config"
	"github.com/doeshing/explain-go/internal/application/explain"
	"github.com/doeshing/explain-go/internal/infrastructure/ai"
	"github.com/doeshing/explain-go/internal/infrastructure/config"
	"github.com/doeshing/explain-go/internal/infrastructure/history"
	"github.com/doeshing/explain-go/internal/infrastructure/input"
	"github.com/doeshing/explain-go/internal/infrastructure/probe"
	"github.com/doeshing/explain-go/internal/pkg/logger"
	"github.com/doeshing/explain-go/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	ExplainService *explain.Service
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	HistoryStore   *history.SQLiteStore
	Logger         *logger.ZapLogger
}

// BuildContainer constructs the dependency graph. Terminal-facing adapters
// (console, prompter, progress) are attached by the CLI layer.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	log, err := logger.New(verbose)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cfgLoader := config.NewFileLoader("", log)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := appconfig.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgLoader.Path(), err)
	}

	historyStore, err := history.NewSQLiteStore(cfg.Storage.DatabasePath, log)
	if err != nil {
		return nil, err
	}

	prober := probe.NewPathProber()
	acquirer := input.NewAcquirer(prober, log, input.WithCommandTimeout(cfg.CommandTimeout()))

	explainService := &explain.Service{
		Classifier:     explain.NewClassifier(prober),
		Acquirer:       acquirer,
		Model:          ai.NewOpenAIClient(cfg, log),
		History:        historyStore,
		ConfigProvider: cfgLoader,
		Logger:         log,
		SystemPrompt:   ai.ExplainPrompt,
	}

	return &Container{
		ExplainService: explainService,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		HistoryStore:   historyStore,
		Logger:         log,
	}, nil
}

// Close releases the history database and flushes logs.
func (c *Container) Close() error {
	_ = c.Logger.Sync()
	return c.HistoryStore.Close()
}
