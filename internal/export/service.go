package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/lgarreta/ecuapassdocs/constants"
	"github.com/lgarreta/ecuapassdocs/internal/mapper"
	"github.com/lgarreta/ecuapassdocs/internal/repository"
)

const sheet = "Cartaportes"

// Row is one exported document.
type Row struct {
	Path   string
	Record *mapper.Record
}

// Service produces XLSX bytes from the stored document records.
type Service struct {
	docs   repository.DocumentRepository
	logger *slog.Logger
}

func NewService(docs repository.DocumentRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{docs: docs, logger: logger}
}

// ExportDocumentsXLSX returns a workbook with one row per processed document,
// newest first. Failed documents are skipped; limit <= 0 exports them all.
func (s *Service) ExportDocumentsXLSX(ctx context.Context, limit int) ([]byte, error) {
	start := time.Now()

	docs, err := s.docs.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}

	rows := make([]Row, 0, len(docs))
	for _, d := range docs {
		if d.Status != constants.DocumentStatusProcessed || len(d.Record) == 0 {
			continue
		}
		rec := mapper.NewRecord()
		if err := json.Unmarshal(d.Record, rec); err != nil {
			s.logger.Warn("export.record.invalid", "document_id", d.ID.String(), "path", d.Path, "error", err)
			continue
		}
		rows = append(rows, Row{Path: d.Path, Record: rec})
	}

	buf, err := RecordsXLSX(rows)
	if err != nil {
		return nil, err
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(rows),
		"skipped", len(docs)-len(rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf, nil
}

// RecordsXLSX writes rows to a single-sheet workbook: the document path in the
// first column, then one column per record key in form order.
func RecordsXLSX(rows []Row) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := make([]any, 0, len(mapper.Keys)+1)
	headers = append(headers, "Documento")
	for _, k := range mapper.Keys {
		headers = append(headers, string(k))
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, err
	}

	for i, r := range rows {
		values := make([]any, 0, len(mapper.Keys)+1)
		values = append(values, r.Path)
		for _, k := range mapper.Keys {
			if v := r.Record.Get(k); v != nil {
				values = append(values, *v)
			} else {
				values = append(values, "")
			}
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, err
		}
	}

	last, _ := excelize.ColumnNumberToName(len(mapper.Keys) + 1)
	_ = f.SetColWidth(sheet, "A", "A", 48) // path
	_ = f.SetColWidth(sheet, "B", last, 24)
	_ = f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
