package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sunburst-explorer/internal/model"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// LocalDatasetID is the fixed id of the table loaded from the local data path.
const LocalDatasetID = "local"

var ErrNotFound = errors.New("dataset not found")

// Store keeps loaded tables and the aggregation history in sqlite.
type Store struct {
	db *sql.DB
}

// Open connects to the sqlite file at dbPath and creates tables if needed.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	// One connection keeps ":memory:" databases shared and serialises writes.
	db.SetMaxOpenConns(1)

	datasetTable := `
	CREATE TABLE IF NOT EXISTS datasets (
		id TEXT PRIMARY KEY,
		name TEXT,
		source TEXT,
		columns TEXT,
		cells TEXT,
		row_count INTEGER,
		created_at DATETIME,
		updated_at DATETIME
	);
	`
	runTable := `
	CREATE TABLE IF NOT EXISTS aggregation_runs (
		id TEXT PRIMARY KEY,
		dataset_id TEXT,
		hierarchy TEXT,
		filter_value TEXT,
		groups_count INTEGER,
		total INTEGER,
		duration_ms INTEGER,
		created_at DATETIME
	);
	`
	runIndex := `CREATE INDEX IF NOT EXISTS idx_runs_dataset ON aggregation_runs(dataset_id, created_at);`

	for _, stmt := range []string{datasetTable, runTable, runIndex} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("init schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveDataset stores table under id, replacing any previous content but
// keeping the original creation time. An empty id gets a new uuid.
func (s *Store) SaveDataset(ctx context.Context, id, source string, table model.Table) (model.DatasetInfo, error) {
	if id == "" {
		id = uuid.New().String()
	}
	columnsJSON, err := json.Marshal(table.Columns)
	if err != nil {
		return model.DatasetInfo{}, err
	}
	rowsJSON, err := json.Marshal(table.Cells())
	if err != nil {
		return model.DatasetInfo{}, err
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO datasets (id, name, source, columns, cells, row_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			source = excluded.source,
			columns = excluded.columns,
			cells = excluded.cells,
			row_count = excluded.row_count,
			updated_at = excluded.updated_at`,
		id, table.Name, source, string(columnsJSON), string(rowsJSON), table.Len(), now, now)
	if err != nil {
		return model.DatasetInfo{}, fmt.Errorf("save dataset: %w", err)
	}
	return s.DatasetInfo(ctx, id)
}

// ReplaceDataset swaps the rows of an existing dataset, keeping its id and
// creation time.
func (s *Store) ReplaceDataset(ctx context.Context, id string, table model.Table) (model.DatasetInfo, error) {
	info, err := s.DatasetInfo(ctx, id)
	if err != nil {
		return model.DatasetInfo{}, err
	}
	return s.SaveDataset(ctx, id, info.Source, table)
}

// GetDataset loads the full table.
func (s *Store) GetDataset(ctx context.Context, id string) (model.Table, model.DatasetInfo, error) {
	var info model.DatasetInfo
	var columnsJSON, rowsJSON string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, source, columns, cells, row_count, created_at, updated_at
		FROM datasets WHERE id = ?`, id).
		Scan(&info.ID, &info.Name, &info.Source, &columnsJSON, &rowsJSON, &info.RowCount, &info.CreatedAt, &info.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Table{}, model.DatasetInfo{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return model.Table{}, model.DatasetInfo{}, err
	}
	if err := json.Unmarshal([]byte(columnsJSON), &info.Columns); err != nil {
		return model.Table{}, model.DatasetInfo{}, fmt.Errorf("decode columns: %w", err)
	}
	var cells [][]*string
	if err := json.Unmarshal([]byte(rowsJSON), &cells); err != nil {
		return model.Table{}, model.DatasetInfo{}, fmt.Errorf("decode rows: %w", err)
	}
	return model.TableFromCells(info.Name, info.Columns, cells), info, nil
}

// DatasetInfo fetches metadata without decoding rows.
func (s *Store) DatasetInfo(ctx context.Context, id string) (model.DatasetInfo, error) {
	var info model.DatasetInfo
	var columnsJSON string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, source, columns, row_count, created_at, updated_at
		FROM datasets WHERE id = ?`, id).
		Scan(&info.ID, &info.Name, &info.Source, &columnsJSON, &info.RowCount, &info.CreatedAt, &info.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DatasetInfo{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return model.DatasetInfo{}, err
	}
	if err := json.Unmarshal([]byte(columnsJSON), &info.Columns); err != nil {
		return model.DatasetInfo{}, fmt.Errorf("decode columns: %w", err)
	}
	return info, nil
}

// ListDatasets returns all datasets, newest first.
func (s *Store) ListDatasets(ctx context.Context) ([]model.DatasetInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, source, columns, row_count, created_at, updated_at
		FROM datasets ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	datasets := []model.DatasetInfo{}
	for rows.Next() {
		var info model.DatasetInfo
		var columnsJSON string
		if err := rows.Scan(&info.ID, &info.Name, &info.Source, &columnsJSON, &info.RowCount, &info.CreatedAt, &info.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(columnsJSON), &info.Columns); err != nil {
			return nil, fmt.Errorf("decode columns: %w", err)
		}
		datasets = append(datasets, info)
	}
	return datasets, rows.Err()
}

// DeleteDataset removes a dataset and its history.
func (s *Store) DeleteDataset(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM datasets WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	_, err = s.db.ExecContext(ctx, `DELETE FROM aggregation_runs WHERE dataset_id = ?`, id)
	return err
}

// SaveRun appends an aggregation to the history.
func (s *Store) SaveRun(ctx context.Context, run model.RunSummary) error {
	hierarchyJSON, err := json.Marshal(run.Hierarchy)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO aggregation_runs (id, dataset_id, hierarchy, filter_value, groups_count, total, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.DatasetID, string(hierarchyJSON), run.Filter, run.Groups, run.Total, run.DurationMs, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	return nil
}

// ListRuns returns up to limit history entries for a dataset, newest first.
func (s *Store) ListRuns(ctx context.Context, datasetID string, limit int) ([]model.RunSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, dataset_id, hierarchy, filter_value, groups_count, total, duration_ms, created_at
		FROM aggregation_runs WHERE dataset_id = ?
		ORDER BY created_at DESC LIMIT ?`, datasetID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []model.RunSummary{}
	for rows.Next() {
		var run model.RunSummary
		var hierarchyJSON string
		if err := rows.Scan(&run.ID, &run.DatasetID, &hierarchyJSON, &run.Filter, &run.Groups, &run.Total, &run.DurationMs, &run.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(hierarchyJSON), &run.Hierarchy); err != nil {
			return nil, fmt.Errorf("decode hierarchy: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
