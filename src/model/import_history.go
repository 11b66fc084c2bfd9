package model

import (
	"fmt"
	"time"
)

// Kinds of recorded imports.
const (
	ImportKindTransactions = "transactions"
	ImportKindAccountPlan  = "account_plan"
)

// ImportRecord is one entry of the import audit trail.
type ImportRecord struct {
	ID              string    `json:"id"`
	Kind            string    `json:"kind"`
	FileName        string    `json:"file_name"`
	AcceptedCount   int       `json:"accepted_count"`
	DiagnosticCount int       `json:"diagnostic_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// RecordImport appends one audit entry for a committed submission.
func (s *Store) RecordImport(rec ImportRecord) error {
	_, err := s.db.Exec(`
	INSERT INTO import_history (id, kind, file_name, accepted_count, diagnostic_count, created_at)
	VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Kind, rec.FileName, rec.AcceptedCount, rec.DiagnosticCount, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record import: %w", err)
	}
	return nil
}

// ListImportHistory returns the most recent imports first, capped at limit.
func (s *Store) ListImportHistory(limit int) ([]ImportRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
	SELECT id, kind, file_name, accepted_count, diagnostic_count, created_at
	FROM import_history ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query import history: %w", err)
	}
	defer rows.Close()

	var records []ImportRecord
	for rows.Next() {
		var rec ImportRecord
		if err := rows.Scan(&rec.ID, &rec.Kind, &rec.FileName, &rec.AcceptedCount, &rec.DiagnosticCount, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan import record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
