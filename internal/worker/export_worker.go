// Package worker mirrors committed transactions into a spreadsheet in
// response to ledger change events. Export runs out of process; failures
// here never touch ledger state.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"planit/internal/amqp"
	"planit/internal/core"
	"planit/internal/sheets"
	"planit/internal/storage"
)

type ExportWorker struct {
	kv       storage.Store
	appender sheets.TransactionAppender
	remover  sheets.TransactionRemover
}

func NewExportWorker(kv storage.Store, appender sheets.TransactionAppender, remover sheets.TransactionRemover) *ExportWorker {
	return &ExportWorker{
		kv:       kv,
		appender: appender,
		remover:  remover,
	}
}

// HandleEvent processes one transaction change event.
func (w *ExportWorker) HandleEvent(ctx context.Context, event *amqp.TransactionEvent) error {
	switch event.Action {
	case amqp.ActionCreated:
		return w.handleCreated(ctx, event.ID)
	case amqp.ActionDeleted:
		return w.handleDeleted(ctx, event.ID)
	default:
		// Unknown actions are dropped rather than requeued forever.
		slog.WarnContext(ctx, "Unknown event action, dropping", "action", event.Action, "id", event.ID)
		return nil
	}
}

func (w *ExportWorker) handleCreated(ctx context.Context, id string) error {
	tx, ok, err := w.findTransaction(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		// Deleted again before we got to it; nothing to export.
		slog.WarnContext(ctx, "Transaction no longer in ledger, skipping export", "id", id)
		return nil
	}

	ref, err := w.appender.Append(ctx, tx, w.categoryName(ctx, tx.Category))
	if err != nil {
		return fmt.Errorf("append transaction %s: %w", id, err)
	}

	slog.InfoContext(ctx, "Transaction exported", "id", id, "row_ref", ref)
	return nil
}

func (w *ExportWorker) handleDeleted(ctx context.Context, id string) error {
	if w.remover == nil {
		slog.WarnContext(ctx, "No remover configured, skipping sheet deletion", "id", id)
		return nil
	}
	if err := w.remover.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove transaction %s: %w", id, err)
	}
	slog.InfoContext(ctx, "Transaction removed from sheet", "id", id)
	return nil
}

func (w *ExportWorker) findTransaction(ctx context.Context, id string) (core.Transaction, bool, error) {
	raw, err := w.kv.Load(ctx, storage.KeyTransactions)
	if errors.Is(err, storage.ErrNotFound) {
		return core.Transaction{}, false, nil
	}
	if err != nil {
		return core.Transaction{}, false, fmt.Errorf("load transactions: %w", err)
	}

	var txs []core.Transaction
	if err := json.Unmarshal(raw, &txs); err != nil {
		return core.Transaction{}, false, fmt.Errorf("decode transactions: %w", err)
	}
	for _, t := range txs {
		if t.ID == id {
			return t, true, nil
		}
	}
	return core.Transaction{}, false, nil
}

// categoryName resolves against the settings document at export time. A
// missing document or dangling reference yields the Unknown fallback.
func (w *ExportWorker) categoryName(ctx context.Context, categoryID string) string {
	raw, err := w.kv.Load(ctx, storage.KeySettings)
	if err != nil {
		return core.UnknownCategory
	}
	var doc struct {
		Categories []core.Category `json:"categories"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return core.UnknownCategory
	}
	return core.ResolveCategoryName(doc.Categories, categoryID)
}
