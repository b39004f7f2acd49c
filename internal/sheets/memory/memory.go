// Package memory is an in-memory implementation of the sheet ports, used
// in tests and when no spreadsheet is configured.
package memory

import (
	"context"
	"fmt"
	"sync"

	"planit/internal/core"
)

type Row struct {
	Transaction  core.Transaction
	CategoryName string
}

type Store struct {
	mu   sync.Mutex
	rows []Row
}

func New() *Store {
	return &Store{}
}

func (s *Store) Append(_ context.Context, tx core.Transaction, categoryName string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, Row{Transaction: tx, CategoryName: categoryName})
	return fmt.Sprintf("mem:%d", len(s.rows)), nil
}

func (s *Store) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.rows {
		if r.Transaction.ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

// Rows returns a snapshot of the exported rows.
func (s *Store) Rows() []Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Row(nil), s.rows...)
}
