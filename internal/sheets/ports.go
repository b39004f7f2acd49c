package sheets

import (
	"context"

	"planit/internal/core"
)

// Ports for the spreadsheet backup. The sheet is a one-way mirror of the
// ledger, never a source of truth.
type (
	TransactionAppender interface {
		Append(ctx context.Context, tx core.Transaction, categoryName string) (rowRef string, err error)
	}

	TransactionRemover interface {
		// Remove deletes the row for the given transaction id. Removing
		// an id that was never exported is a no-op.
		Remove(ctx context.Context, id string) error
	}
)
