// Package storage provides the durable key/value document store the
// settings and ledger stores persist through. Adapters are interchangeable;
// the stores only see the Store contract.
package storage

import (
	"context"
	"errors"
)

// Logical document keys. Each key holds one serialized JSON document.
const (
	KeyTransactions = "transactions"
	KeyGoals        = "goals"
	KeySettings     = "settings"
	KeyUser         = "user"
)

// ErrNotFound is returned by Load when no document exists under the key.
// First runs hit this on every key; callers fall back to defaults.
var ErrNotFound = errors.New("document not found")

// Store is the persistence adapter contract. Save replaces the whole
// document under key; Load returns it or ErrNotFound.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, doc []byte) error
}
