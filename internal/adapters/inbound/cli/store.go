package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/abdidvp/storekraft/internal/adapters/outbound/catalogstore"
	"github.com/abdidvp/storekraft/internal/adapters/outbound/config"
	"github.com/abdidvp/storekraft/internal/adapters/outbound/history"
	"github.com/abdidvp/storekraft/internal/adapters/outbound/logging"
	"github.com/abdidvp/storekraft/internal/application"
	"github.com/abdidvp/storekraft/internal/domain"
)

var (
	configLoader domain.ConfigLoader = config.New()

	_ domain.CatalogRepository = (*catalogstore.Store)(nil)
	_ domain.OrderHistory      = (*history.FileHistory)(nil)
)

// session bundles a bootstrapped store with the settings it was built from.
type session struct {
	svc    *application.StoreService
	cfg    domain.StoreConfig
	logger *zap.Logger
	report application.BootstrapReport
}

// openStore loads config from the data directory, wires the file adapters
// and bootstraps the catalog. A PersistenceError from seeding is not fatal:
// the catalog is usable in memory and the next save retries.
func openStore(opts *globalOptions, logger *zap.Logger) (*session, error) {
	dir, err := filepath.Abs(opts.dataDir)
	if err != nil {
		return nil, fmt.Errorf("resolving data dir: %w", err)
	}

	cfg, err := configLoader.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	svc := application.NewStoreService(
		catalogstore.New(cfg.DataDir),
		history.New(cfg.DataDir),
		logger,
	)

	report, err := svc.Bootstrap(cfg.SeedProducts())
	if err != nil && !errors.Is(err, domain.ErrPersistence) {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	if err != nil {
		logger.Warn("seed catalog not saved", zap.Error(err))
	}

	return &session{svc: svc, cfg: cfg, logger: logger, report: report}, nil
}

func newLogger(stderr io.Writer, opts *globalOptions) *zap.Logger {
	return logging.New(stderr, opts.verbose)
}
