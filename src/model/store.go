package model

import (
	"database/sql"
	"fmt"
	"sync"
)

// Store owns all access to the committed record set. Submissions share one
// identifier counter and one chart of accounts, so every mutating operation
// runs under the store mutex; concurrent imports serialize instead of
// interleaving.
type Store struct {
	db *sql.DB

	mu     sync.Mutex
	nextID int64
}

// NewStore wires a store over an initialized database and primes the
// identifier counter from the highest committed id.
func NewStore(db *sql.DB) (*Store, error) {
	s := &Store{db: db, nextID: 1}

	var maxID sql.NullInt64
	if err := db.QueryRow(`SELECT MAX(id) FROM transactions`).Scan(&maxID); err != nil {
		return nil, fmt.Errorf("failed to prime transaction id counter: %w", err)
	}
	if maxID.Valid {
		s.nextID = maxID.Int64 + 1
	}
	return s, nil
}

// allocateID must be called with s.mu held.
func (s *Store) allocateID() int64 {
	id := s.nextID
	s.nextID++
	return id
}
