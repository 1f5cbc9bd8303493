// Package app wires configuration, the record store and the document
// processor shared by the ecuapass commands.
package app

import (
	"context"
	"log/slog"

	"github.com/lgarreta/ecuapassdocs/internal/catalog"
	"github.com/lgarreta/ecuapassdocs/internal/common"
	"github.com/lgarreta/ecuapassdocs/internal/core"
	"github.com/lgarreta/ecuapassdocs/internal/mapper"
	"github.com/lgarreta/ecuapassdocs/internal/repository"
	"github.com/lgarreta/ecuapassdocs/internal/server"
)

type App struct {
	Config    *common.Config
	Catalog   *catalog.Catalog
	DB        *repository.DB // nil when opened without a store
	Documents repository.DocumentRepository
	Processor *core.Processor
	Logger    *slog.Logger
}

type Options struct {
	NoStore  bool // skip the database; records only go to files
	NoFiles  bool // skip the -DOCUMENT/-RESULTS files
	Sequence string
}

// Open loads the catalog, connects the store unless opts.NoStore, and builds
// the processor.
func Open(ctx context.Context, cfg *common.Config, opts Options, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cat := catalog.Default()
	if cfg.Engine.CatalogPath != "" {
		var err error
		if cat, err = catalog.Load(cfg.Engine.CatalogPath); err != nil {
			return nil, common.NewAppError(common.CodeConfig, "load catalog", err)
		}
	}

	mcfg := mapper.Config{
		District:   cfg.Engine.District,
		Carrier:    cfg.Engine.Carrier,
		MRN:        cfg.Engine.MRN,
		MSN:        cfg.Engine.MSN,
		Currency:   cfg.Engine.Currency,
		Sequence:   opts.Sequence,
		DedupLines: cfg.Engine.DedupLines,
	}

	a := &App{Config: cfg, Catalog: cat, Logger: logger}
	procOpts := []core.Option{core.WithOutputFiles(!opts.NoFiles)}
	if !opts.NoStore {
		db, err := server.ConnectDB(ctx, cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		a.DB = db
		a.Documents = repository.NewDocumentRepository(db, logger)
		procOpts = append(procOpts, core.WithDocumentRepository(a.Documents))
	}
	a.Processor = core.NewProcessor(logger, mapper.New(cat, mcfg, logger), procOpts...)
	return a, nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close(a.Logger)
	}
}
