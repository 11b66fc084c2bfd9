package model

import (
	"fmt"

	"github.com/username/fundify/backend/src/models"
)

// ReplaceAccountPlan swaps the whole chart of accounts for the given set.
// Importing a plan is always a full replacement, never a merge.
func (s *Store) ReplaceAccountPlan(accounts []models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dbTx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin plan replacement: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.Exec(`DELETE FROM account_plan`); err != nil {
		return fmt.Errorf("failed to clear account plan: %w", err)
	}

	stmt, err := dbTx.Prepare(`
	INSERT INTO account_plan (id, nature, type, category, sub_category, name)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		nature = excluded.nature, type = excluded.type, category = excluded.category,
		sub_category = excluded.sub_category, name = excluded.name`)
	if err != nil {
		return fmt.Errorf("failed to prepare plan insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range accounts {
		if _, err := stmt.Exec(a.ID, a.Nature, a.Type, a.Category, a.SubCategory, a.Name); err != nil {
			return fmt.Errorf("failed to insert account '%s': %w", a.ID, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit plan replacement: %w", err)
	}
	return nil
}

// ListAccountPlan returns the chart entries in identifier order.
func (s *Store) ListAccountPlan() ([]models.Account, error) {
	rows, err := s.db.Query(`SELECT id, nature, type, category, sub_category, name FROM account_plan ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query account plan: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.Nature, &a.Type, &a.Category, &a.SubCategory, &a.Name); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// AccountPlan returns the chart keyed by identifier, the shape reconciliation
// consumes.
func (s *Store) AccountPlan() (map[string]models.Account, error) {
	accounts, err := s.ListAccountPlan()
	if err != nil {
		return nil, err
	}
	chart := make(map[string]models.Account, len(accounts))
	for _, a := range accounts {
		chart[a.ID] = a
	}
	return chart, nil
}

// ClearAccountPlan removes every chart entry.
func (s *Store) ClearAccountPlan() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM account_plan`); err != nil {
		return fmt.Errorf("failed to clear account plan: %w", err)
	}
	return nil
}
