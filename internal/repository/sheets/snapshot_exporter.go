package sheets

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/ayurtrace/regulator/internal/config"
	"github.com/ayurtrace/regulator/internal/domain/models"
)

const snapshotRange = "Compliance!A:F"

// SnapshotExporter appends daily compliance snapshots as rows in a Google
// Sheet the ministry's analysts work from.
type SnapshotExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewSnapshotExporter builds a Google Sheets backed snapshot store.
func NewSnapshotExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*SnapshotExporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &SnapshotExporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// SaveSnapshot appends one snapshot row to the compliance sheet.
func (e *SnapshotExporter) SaveSnapshot(ctx context.Context, snapshot models.ComplianceSnapshot) error {
	row := []interface{}{
		snapshot.Date.Format("2006-01-02"),
		snapshot.TotalBatches,
		snapshot.ComplianceRate,
		snapshot.RecalledBatches,
		snapshot.ExportReady,
		snapshot.CreatedAt.Format(time.RFC3339),
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{row}}

	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, snapshotRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append snapshot row into range %s: %w", snapshotRange, err)
	}

	e.logger.Debug("snapshot row appended to sheet", zap.String("range", snapshotRange))
	return nil
}
