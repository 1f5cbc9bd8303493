package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/lgarreta/ecuapassdocs/constants"
	"github.com/lgarreta/ecuapassdocs/internal/common"
	"github.com/lgarreta/ecuapassdocs/internal/mapper"
	"github.com/lgarreta/ecuapassdocs/internal/ocr"
	"github.com/lgarreta/ecuapassdocs/internal/reconstruct"
	"github.com/lgarreta/ecuapassdocs/internal/repository"
)

// Processor turns a cached analysis result into an Ecuapass record:
// decode, restore line breaks, map, then save and persist.
type Processor struct {
	logger     *slog.Logger
	mapper     *mapper.Mapper
	docs       repository.DocumentRepository
	writeFiles bool
}

type Option func(*Processor)

// WithDocumentRepository persists every processed document.
func WithDocumentRepository(docs repository.DocumentRepository) Option {
	return func(p *Processor) { p.docs = docs }
}

// WithOutputFiles controls writing <name>-DOCUMENT.json and <name>-RESULTS.json
// next to the input. On by default.
func WithOutputFiles(on bool) Option {
	return func(p *Processor) { p.writeFiles = on }
}

func NewProcessor(logger *slog.Logger, m *mapper.Mapper, opts ...Option) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Processor{
		logger:     logger,
		mapper:     m,
		writeFiles: true,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Result is the outcome of one processed document.
type Result struct {
	ID           uuid.UUID
	Path         string
	Record       *mapper.Record
	DocumentPath string // restored fields, empty when not written
	ResultsPath  string // record, empty when not written
}

// ProcessFile processes the cached analysis result at path. An input that
// violates the contract fails with an error matching common.ErrInputContract;
// extraction misses never fail.
func (p *Processor) ProcessFile(ctx context.Context, path string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id := uuid.New()
	ctx = common.WithDocumentID(ctx, id.String())
	logger := p.logger.With("document_id", id.String(), "path", path)
	if batch := common.BatchIDFromContext(ctx); batch != "" {
		logger = logger.With("batch_id", batch)
	}

	res, err := ocr.DecodeFile(path)
	if err != nil {
		logger.Error("processor.decode.failed", "err", err)
		return nil, p.fail(ctx, logger, id, path, err)
	}
	logger.Debug("processor.decode.ok", "lines", len(res.Lines), "fields", res.Fields.Len())

	fields := reconstruct.Reconstruct(res.Lines, res.Fields)
	rec := p.mapper.WithLogger(logger).Map(fields)

	recJSON, err := json.MarshalIndent(rec, "", "    ")
	if err != nil {
		return nil, p.fail(ctx, logger, id, path, fmt.Errorf("marshal record: %w", err))
	}
	if err := mapper.ValidateRecord(recJSON); err != nil {
		logger.Error("processor.schema.failed", "err", err)
		return nil, p.fail(ctx, logger, id, path, fmt.Errorf("record schema: %w", err))
	}

	out := &Result{ID: id, Path: path, Record: rec}
	if p.writeFiles {
		if out.DocumentPath, err = saveJSON(path, constants.DocumentSuffix, map[string]any{"fields": fields}); err != nil {
			logger.Error("processor.save.failed", "err", err)
			return nil, p.fail(ctx, logger, id, path, err)
		}
		out.ResultsPath = constants.SiblingPath(path, constants.ResultsSuffix)
		if err := os.WriteFile(out.ResultsPath, recJSON, 0o644); err != nil {
			logger.Error("processor.save.failed", "err", err)
			return nil, p.fail(ctx, logger, id, path, fmt.Errorf("write results: %w", err))
		}
	}

	doc := &repository.Document{ID: id, Path: path, Status: constants.DocumentStatusProcessed, Record: recJSON}
	if n := rec.Get(mapper.KeyNumeroCPIC); n != nil {
		doc.Number = *n
	}
	if err := p.persist(ctx, logger, doc); err != nil {
		return nil, err
	}
	out.ID = doc.ID

	logger.Info("processor.document.ok", "filled", rec.Filled(), "keys", rec.Len())
	return out, nil
}

// fail records path as FAILED with cause and returns cause, joined with the
// persist error when saving the row also fails.
func (p *Processor) fail(ctx context.Context, logger *slog.Logger, id uuid.UUID, path string, cause error) error {
	doc := &repository.Document{ID: id, Path: path, Status: constants.DocumentStatusFailed, Error: cause.Error()}
	if err := p.persist(ctx, logger, doc); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

func (p *Processor) persist(ctx context.Context, logger *slog.Logger, doc *repository.Document) error {
	if p.docs == nil {
		return nil
	}
	if err := p.docs.Save(ctx, doc); err != nil {
		logger.Error("processor.persist.failed", "err", err)
		return err
	}
	return nil
}

func saveJSON(path, suffix string, v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", suffix, err)
	}
	out := constants.SiblingPath(path, suffix)
	if err := os.WriteFile(out, b, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", suffix, err)
	}
	return out, nil
}
