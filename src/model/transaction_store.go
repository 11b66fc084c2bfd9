package model

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/username/fundify/backend/src/models"
)

// ErrTransactionNotFound is returned by lookups and mutations that target an
// id absent from the committed set.
var ErrTransactionNotFound = errors.New("transaction not found")

const transactionColumns = `id, date, description, amount, type, category,
	origin_account_id, origin_nature, origin_type, origin_category, origin_sub_category,
	origin_operation, origin_destination, origin_item, origin_date, origin_amount`

// AppendTransactions commits an accepted batch in row order, assigning each
// transaction a fresh id from the store counter. The whole batch goes through
// one SQL transaction so a partial write never becomes visible.
func (s *Store) AppendTransactions(txs []models.Transaction) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dbTx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin commit: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.Prepare(`
	INSERT INTO transactions (` + transactionColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	committed := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		tx.ID = s.allocateID()
		if _, err := stmt.Exec(
			tx.ID, tx.Date, tx.Description, tx.Amount, tx.Type, tx.Category,
			tx.OriginAccountID, tx.OriginNature, tx.OriginType, tx.OriginCategory, tx.OriginSubCategory,
			tx.OriginOperation, tx.OriginDestination, tx.OriginItem, tx.OriginDate, tx.OriginAmount,
		); err != nil {
			return nil, fmt.Errorf("failed to insert transaction %d: %w", tx.ID, err)
		}
		committed = append(committed, tx)
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit batch: %w", err)
	}
	return committed, nil
}

// InsertTransaction commits one manually created transaction.
func (s *Store) InsertTransaction(tx *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx.ID = s.allocateID()
	_, err := s.db.Exec(`
	INSERT INTO transactions (`+transactionColumns+`)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.Date, tx.Description, tx.Amount, tx.Type, tx.Category,
		tx.OriginAccountID, tx.OriginNature, tx.OriginType, tx.OriginCategory, tx.OriginSubCategory,
		tx.OriginOperation, tx.OriginDestination, tx.OriginItem, tx.OriginDate, tx.OriginAmount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// ListTransactions returns the full committed set ordered by date, then id.
func (s *Store) ListTransactions() ([]models.Transaction, error) {
	rows, err := s.db.Query(`SELECT ` + transactionColumns + ` FROM transactions ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(
			&tx.ID, &tx.Date, &tx.Description, &tx.Amount, &tx.Type, &tx.Category,
			&tx.OriginAccountID, &tx.OriginNature, &tx.OriginType, &tx.OriginCategory, &tx.OriginSubCategory,
			&tx.OriginOperation, &tx.OriginDestination, &tx.OriginItem, &tx.OriginDate, &tx.OriginAmount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// GetTransaction returns one committed transaction by id.
func (s *Store) GetTransaction(id int64) (*models.Transaction, error) {
	var tx models.Transaction
	err := s.db.QueryRow(`SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id).Scan(
		&tx.ID, &tx.Date, &tx.Description, &tx.Amount, &tx.Type, &tx.Category,
		&tx.OriginAccountID, &tx.OriginNature, &tx.OriginType, &tx.OriginCategory, &tx.OriginSubCategory,
		&tx.OriginOperation, &tx.OriginDestination, &tx.OriginItem, &tx.OriginDate, &tx.OriginAmount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction %d: %w", id, err)
	}
	return &tx, nil
}

// UpdateTransaction replaces the editable fields of one transaction.
func (s *Store) UpdateTransaction(tx *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
	UPDATE transactions SET date = ?, description = ?, amount = ?, type = ?, category = ?
	WHERE id = ?`,
		tx.Date, tx.Description, tx.Amount, tx.Type, tx.Category, tx.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %d: %w", tx.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// DeleteTransaction removes one transaction by id.
func (s *Store) DeleteTransaction(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// DeleteAllTransactions clears the committed set and resets the identifier
// counter, so a fresh import starts numbering from 1 again.
func (s *Store) DeleteAllTransactions() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM transactions`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear transactions: %w", err)
	}
	s.nextID = 1
	return res.RowsAffected()
}
