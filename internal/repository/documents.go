package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/lgarreta/ecuapassdocs/constants"
	"github.com/lgarreta/ecuapassdocs/internal/common"
)

// Document is one processed cartaporte and its serialized record.
type Document struct {
	ID        uuid.UUID
	Path      string
	Number    string
	Status    constants.DocumentStatus
	Record    []byte // JSON record, nil when processing failed
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type DocumentRepository interface {
	// Save inserts d, or updates the row with the same path keeping its ID.
	Save(ctx context.Context, d *Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*Document, error)
	GetByPath(ctx context.Context, path string) (*Document, error)
	// List returns documents, newest first; limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]*Document, error)
}

type documentRepo struct {
	db     *DB
	logger *slog.Logger
}

func NewDocumentRepository(db *DB, logger *slog.Logger) DocumentRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &documentRepo{db: db, logger: logger}
}

const (
	documentsTable = "documents"

	colID        = "id"
	colPath      = "path"
	colNumber    = "number"
	colStatus    = "status"
	colRecord    = "record"
	colError     = "error"
	colCreatedAt = "created_at"
	colUpdatedAt = "updated_at"
)

var documentColumns = []string{colID, colPath, colNumber, colStatus, colRecord, colError, colCreatedAt, colUpdatedAt}

// documentRow is the stored form of a Document, scanned with entsql.ScanSlice.
type documentRow struct {
	ID        string         `sql:"id"`
	Path      string         `sql:"path"`
	Number    sql.NullString `sql:"number"`
	Status    string         `sql:"status"`
	Record    sql.NullString `sql:"record"`
	Error     sql.NullString `sql:"error"`
	CreatedAt string         `sql:"created_at"`
	UpdatedAt string         `sql:"updated_at"`
}

func (r *documentRepo) Save(ctx context.Context, d *Document) error {
	now := time.Now().UTC()
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now

	query, args := r.db.builder().Insert(documentsTable).
		Columns(documentColumns...).
		Values(
			d.ID.String(), d.Path, nullString(d.Number), string(d.Status),
			nullString(string(d.Record)), nullString(d.Error),
			d.CreatedAt.Format(time.RFC3339Nano), d.UpdatedAt.Format(time.RFC3339Nano),
		).
		OnConflict(
			entsql.ConflictColumns(colPath),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded(colNumber)
				u.SetExcluded(colStatus)
				u.SetExcluded(colRecord)
				u.SetExcluded(colError)
				u.SetExcluded(colUpdatedAt)
			}),
		).
		Query()
	if err := r.db.Driver.Exec(ctx, query, args, nil); err != nil {
		r.logger.Error("failed to save document", "path", d.Path, "error", err)
		return common.NewAppError(common.CodeStorage, "save document", fmt.Errorf("%w: %w", common.ErrStorage, err))
	}

	// The row may predate this call; report the stored identity.
	stored, err := r.GetByPath(ctx, d.Path)
	if err != nil {
		return err
	}
	d.ID, d.CreatedAt = stored.ID, stored.CreatedAt
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, id uuid.UUID) (*Document, error) {
	return r.getOne(ctx, colID, id.String())
}

func (r *documentRepo) GetByPath(ctx context.Context, path string) (*Document, error) {
	return r.getOne(ctx, colPath, path)
}

func (r *documentRepo) getOne(ctx context.Context, column, value string) (*Document, error) {
	b := r.db.builder()
	sel := b.Select(documentColumns...).
		From(b.Table(documentsTable)).
		Where(entsql.EQ(column, value))
	docs, err := r.query(ctx, sel)
	if err != nil {
		r.logger.Error("failed to get document", "key", value, "error", err)
		return nil, err
	}
	if len(docs) == 0 {
		return nil, common.NewAppError("NOT_FOUND", fmt.Sprintf("document %v", value), common.ErrNotFound)
	}
	return docs[0], nil
}

func (r *documentRepo) List(ctx context.Context, limit int) ([]*Document, error) {
	b := r.db.builder()
	sel := b.Select(documentColumns...).
		From(b.Table(documentsTable)).
		OrderBy(entsql.Desc(colCreatedAt), colPath)
	if limit > 0 {
		sel.Limit(limit)
	}
	docs, err := r.query(ctx, sel)
	if err != nil {
		r.logger.Error("failed to list documents", "error", err)
		return nil, err
	}
	return docs, nil
}

func (r *documentRepo) query(ctx context.Context, sel *entsql.Selector) ([]*Document, error) {
	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := r.db.Driver.Query(ctx, query, args, rows); err != nil {
		return nil, common.NewAppError(common.CodeStorage, "query documents", fmt.Errorf("%w: %w", common.ErrStorage, err))
	}
	defer rows.Close()

	var stored []documentRow
	if err := entsql.ScanSlice(rows, &stored); err != nil {
		return nil, common.NewAppError(common.CodeStorage, "scan documents", fmt.Errorf("%w: %w", common.ErrStorage, err))
	}
	out := make([]*Document, 0, len(stored))
	for _, row := range stored {
		d, err := row.document()
		if err != nil {
			return nil, common.NewAppError(common.CodeStorage, "decode document", fmt.Errorf("%w: %w", common.ErrStorage, err))
		}
		out = append(out, d)
	}
	return out, nil
}

func (row documentRow) document() (*Document, error) {
	d := &Document{
		Path:   row.Path,
		Number: row.Number.String,
		Status: constants.DocumentStatus(row.Status),
		Error:  row.Error.String,
	}
	var err error
	if d.ID, err = uuid.Parse(row.ID); err != nil {
		return nil, fmt.Errorf("document id: %w", err)
	}
	if row.Record.Valid {
		d.Record = []byte(row.Record.String)
	}
	if d.CreatedAt, err = time.Parse(time.RFC3339Nano, row.CreatedAt); err != nil {
		return nil, fmt.Errorf("created_at: %w", err)
	}
	if d.UpdatedAt, err = time.Parse(time.RFC3339Nano, row.UpdatedAt); err != nil {
		return nil, fmt.Errorf("updated_at: %w", err)
	}
	return d, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
