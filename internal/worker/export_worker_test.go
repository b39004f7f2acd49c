package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"planit/internal/amqp"
	"planit/internal/core"
	"planit/internal/ledger"
	"planit/internal/settings"
	"planit/internal/sheets/memory"
	"planit/internal/storage"
)

// The worker reads the same documents the stores write, so the tests run
// it against a real file store populated through the ledger.
func newFixture(t *testing.T) (*ledger.Store, *ExportWorker, *memory.Store, *settings.Store) {
	t.Helper()
	ctx := context.Background()

	kv, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	cfg := settings.NewStore(ctx, kv)
	led := ledger.NewStore(ctx, kv, cfg, nil)
	sheet := memory.New()
	return led, NewExportWorker(kv, sheet, sheet), sheet, cfg
}

func TestHandleCreatedExportsRow(t *testing.T) {
	ctx := context.Background()
	led, w, sheet, _ := newFixture(t)

	tx, err := led.AddTransaction(ctx, 250, "1", "dinner", core.Expense)
	require.NoError(t, err)

	require.NoError(t, w.HandleEvent(ctx, amqp.NewTransactionEvent(tx.ID, amqp.ActionCreated)))

	rows := sheet.Rows()
	require.Len(t, rows, 1)
	require.Equal(t, tx.ID, rows[0].Transaction.ID)
	require.Equal(t, "Food & Dining", rows[0].CategoryName)
}

func TestHandleCreatedDanglingCategory(t *testing.T) {
	ctx := context.Background()
	led, w, sheet, cfg := newFixture(t)

	tx, err := led.AddTransaction(ctx, 40, "1", "lunch", core.Expense)
	require.NoError(t, err)
	cfg.DeleteCategory(ctx, "1")

	require.NoError(t, w.HandleEvent(ctx, amqp.NewTransactionEvent(tx.ID, amqp.ActionCreated)))

	rows := sheet.Rows()
	require.Len(t, rows, 1)
	require.Equal(t, core.UnknownCategory, rows[0].CategoryName)
}

func TestHandleCreatedMissingTransaction(t *testing.T) {
	ctx := context.Background()
	_, w, sheet, _ := newFixture(t)

	// Deleted before the worker caught up: not an error, nothing exported.
	require.NoError(t, w.HandleEvent(ctx, amqp.NewTransactionEvent("gone", amqp.ActionCreated)))
	require.Empty(t, sheet.Rows())
}

func TestHandleDeletedRemovesRow(t *testing.T) {
	ctx := context.Background()
	led, w, sheet, _ := newFixture(t)

	tx, err := led.AddTransaction(ctx, 12, "1", "snack", core.Expense)
	require.NoError(t, err)
	require.NoError(t, w.HandleEvent(ctx, amqp.NewTransactionEvent(tx.ID, amqp.ActionCreated)))
	require.Len(t, sheet.Rows(), 1)

	require.NoError(t, w.HandleEvent(ctx, amqp.NewTransactionEvent(tx.ID, amqp.ActionDeleted)))
	require.Empty(t, sheet.Rows())
}

func TestHandleUnknownActionDropped(t *testing.T) {
	ctx := context.Background()
	_, w, _, _ := newFixture(t)
	require.NoError(t, w.HandleEvent(ctx, amqp.NewTransactionEvent("x", "renamed")))
}
