package service

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/datawash-io/datawash/domain"
	_ "modernc.org/sqlite"
)

// DefaultHistoryPath is used when history is enabled without an
// explicit path
const DefaultHistoryPath = ".datawash/history.db"

// RunRecord is one row of the run history
type RunRecord struct {
	RunID           string `json:"run_id" yaml:"run_id"`
	Kind            string `json:"kind" yaml:"kind"`
	Source          string `json:"source" yaml:"source"`
	UseCase         string `json:"use_case" yaml:"use_case"`
	QualityScore    int    `json:"quality_score" yaml:"quality_score"`
	FindingCount    int    `json:"finding_count" yaml:"finding_count"`
	SuggestionCount int    `json:"suggestion_count" yaml:"suggestion_count"`
	CreatedAt       string `json:"created_at" yaml:"created_at"`
}

// HistoryStore persists analysis and cleaning runs in a local SQLite
// database so runs on the same dataset can be compared over time
type HistoryStore struct {
	db *sql.DB
}

// OpenHistory opens (and if needed initializes) the history database
// at path. An empty path uses DefaultHistoryPath.
func OpenHistory(path string) (*HistoryStore, error) {
	if path == "" {
		path = DefaultHistoryPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	store := &HistoryStore{db: db}
	if err := store.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *HistoryStore) init() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id           TEXT PRIMARY KEY,
			kind             TEXT NOT NULL,
			source           TEXT NOT NULL,
			use_case         TEXT NOT NULL DEFAULT '',
			quality_score    INTEGER NOT NULL DEFAULT 0,
			finding_count    INTEGER NOT NULL DEFAULT 0,
			suggestion_count INTEGER NOT NULL DEFAULT 0,
			created_at       TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS applied (
			run_id        TEXT NOT NULL REFERENCES runs(run_id),
			position      INTEGER NOT NULL,
			transformer   TEXT NOT NULL,
			columns       TEXT NOT NULL DEFAULT '',
			rows_affected INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (run_id, position)
		)`,
	}
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize history schema: %w", err)
		}
	}
	return nil
}

// RecordAnalyze stores the outcome of one analysis run
func (s *HistoryStore) RecordAnalyze(ctx context.Context, resp *domain.AnalyzeResponse, useCase domain.UseCase) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (run_id, kind, source, use_case, quality_score, finding_count, suggestion_count, created_at)
		VALUES (?, 'analyze', ?, ?, ?, ?, ?, ?)`,
		resp.RunID, resp.Source, string(useCase), resp.QualityScore,
		len(resp.Findings), len(resp.Suggestions), resp.GeneratedAt)
	if err != nil {
		return fmt.Errorf("failed to record analyze run: %w", err)
	}
	return nil
}

// RecordClean stores the outcome of one cleaning run, including the
// ordered audit trail of applied transformations
func (s *HistoryStore) RecordClean(ctx context.Context, resp *domain.CleanResponse) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to record clean run: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (run_id, kind, source, created_at)
		VALUES (?, 'clean', ?, ?)`,
		resp.RunID, resp.Source, resp.GeneratedAt)
	if err != nil {
		return fmt.Errorf("failed to record clean run: %w", err)
	}

	for i, result := range resp.Applied {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO applied (run_id, position, transformer, columns, rows_affected)
			VALUES (?, ?, ?, ?, ?)`,
			resp.RunID, i, result.Transformer,
			strings.Join(result.ColumnsAffected, ","), result.RowsAffected)
		if err != nil {
			return fmt.Errorf("failed to record applied transformation: %w", err)
		}
	}

	return tx.Commit()
}

// ListRuns returns the most recent runs, newest first
func (s *HistoryStore) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, kind, source, use_case, quality_score, finding_count, suggestion_count, created_at
		FROM runs ORDER BY created_at DESC, run_id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.RunID, &r.Kind, &r.Source, &r.UseCase,
			&r.QualityScore, &r.FindingCount, &r.SuggestionCount, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// AppliedTransforms returns the audit trail recorded for one run
func (s *HistoryStore) AppliedTransforms(ctx context.Context, runID string) ([]domain.TransformationResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT transformer, columns, rows_affected
		FROM applied WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load applied transforms: %w", err)
	}
	defer rows.Close()

	var results []domain.TransformationResult
	for rows.Next() {
		var result domain.TransformationResult
		var columns string
		if err := rows.Scan(&result.Transformer, &columns, &result.RowsAffected); err != nil {
			return nil, fmt.Errorf("failed to scan applied transform: %w", err)
		}
		if columns != "" {
			result.ColumnsAffected = strings.Split(columns, ",")
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

// Close closes the underlying database
func (s *HistoryStore) Close() error {
	return s.db.Close()
}
