// Package ledger owns the transaction and goal collections. Transactions
// are kept newest-first; goals are an unordered set. Mutations persist
// through the storage adapter and optionally publish change events for
// the export worker.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"planit/internal/core"
	"planit/internal/storage"
)

// CategoryLookup is the slice of the settings store the ledger needs: a
// category snapshot for goal-kind checks at creation time.
type CategoryLookup interface {
	Categories() []core.Category
}

// EventPublisher receives transaction change notifications. Publishing is
// fire-and-forget; a failure never affects the mutation that triggered it.
type EventPublisher interface {
	PublishTransactionCreated(ctx context.Context, id string) error
	PublishTransactionDeleted(ctx context.Context, id string) error
}

// Store is the ledger. All methods are safe for concurrent use; mutations
// apply atomically with respect to each other.
type Store struct {
	mu           sync.Mutex
	kv           storage.Store
	cats         CategoryLookup
	events       EventPublisher
	transactions []core.Transaction
	goals        []core.Goal
}

// NewStore loads the persisted ledger. Absent or malformed documents are
// treated as empty collections; events may be nil.
func NewStore(ctx context.Context, kv storage.Store, cats CategoryLookup, events EventPublisher) *Store {
	s := &Store{kv: kv, cats: cats, events: events}
	s.transactions = loadCollection[core.Transaction](ctx, kv, storage.KeyTransactions)
	s.goals = loadCollection[core.Goal](ctx, kv, storage.KeyGoals)
	return s
}

func loadCollection[T any](ctx context.Context, kv storage.Store, key string) []T {
	raw, err := kv.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.WarnContext(ctx, "Failed to load document, starting empty", "key", key, "error", err)
		}
		return nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		slog.WarnContext(ctx, "Malformed document, starting empty", "key", key, "error", err)
		return nil
	}
	return out
}

// Transactions returns a snapshot, newest first.
func (s *Store) Transactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.transactions...)
}

// Goals returns a snapshot of the goal set.
func (s *Store) Goals() []core.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Goal(nil), s.goals...)
}

// Transaction returns one transaction by id.
func (s *Store) Transaction(id string) (core.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.transactions {
		if t.ID == id {
			return t, true
		}
	}
	return core.Transaction{}, false
}

// AddTransaction records a new transaction at the head of the sequence.
// The identifier and creation timestamp are generated here, never
// user-supplied.
func (s *Store) AddTransaction(ctx context.Context, amount float64, categoryID, description string, kind core.Kind) (core.Transaction, error) {
	tx := core.Transaction{
		ID:          core.NewID(),
		Amount:      amount,
		Category:    strings.TrimSpace(categoryID),
		Description: strings.TrimSpace(description),
		Date:        time.Now().UTC(),
		Kind:        kind,
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	s.transactions = append([]core.Transaction{tx}, s.transactions...)
	s.persistTransactions(ctx)
	s.mu.Unlock()

	slog.InfoContext(ctx, "Transaction added",
		"id", tx.ID,
		"kind", string(tx.Kind),
		"amount", tx.Amount,
		"category", tx.Category)

	s.publishCreated(ctx, tx.ID)
	return tx, nil
}

// DeleteTransaction removes the transaction with the given id; absent ids
// are a no-op.
func (s *Store) DeleteTransaction(ctx context.Context, id string) {
	s.mu.Lock()
	removed := false
	for i, t := range s.transactions {
		if t.ID == id {
			s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
			removed = true
			break
		}
	}
	if removed {
		s.persistTransactions(ctx)
	}
	s.mu.Unlock()

	if removed {
		slog.InfoContext(ctx, "Transaction deleted", "id", id)
		s.publishDeleted(ctx, id)
	}
}

// AddGoal records a new savings goal. The target date uses the 2006-01-02
// form. The referenced category must be expense-kind at creation time;
// that is not re-checked afterward, so a later category delete leaves
// the goal dangling.
func (s *Store) AddGoal(ctx context.Context, categoryID string, amount float64, targetDate, description string) (core.Goal, error) {
	parsed, err := time.Parse("2006-01-02", strings.TrimSpace(targetDate))
	if err != nil {
		return core.Goal{}, fmt.Errorf("%w: %q", core.ErrInvalidDate, targetDate)
	}

	g := core.Goal{
		ID:          core.NewID(),
		Category:    strings.TrimSpace(categoryID),
		Amount:      amount,
		TargetDate:  parsed,
		Description: strings.TrimSpace(description),
	}
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}
	if err := s.checkGoalCategory(g.Category); err != nil {
		return core.Goal{}, err
	}

	s.mu.Lock()
	s.goals = append(s.goals, g)
	s.persistGoals(ctx)
	s.mu.Unlock()

	slog.InfoContext(ctx, "Goal added",
		"id", g.ID,
		"category", g.Category,
		"amount", g.Amount,
		"target_date", g.TargetDate.Format("2006-01-02"))
	return g, nil
}

// DeleteGoal removes the goal with the given id; absent ids are a no-op.
func (s *Store) DeleteGoal(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, g := range s.goals {
		if g.ID == id {
			s.goals = append(s.goals[:i], s.goals[i+1:]...)
			s.persistGoals(ctx)
			slog.InfoContext(ctx, "Goal deleted", "id", id)
			return
		}
	}
}

// checkGoalCategory rejects a goal aimed at a known income category. An
// id the lookup cannot resolve passes: goals tolerate dangling references
// the same way transactions do.
func (s *Store) checkGoalCategory(id string) error {
	if s.cats == nil {
		return nil
	}
	for _, c := range s.cats.Categories() {
		if c.ID == id {
			if c.Kind != core.Expense {
				return core.ErrNotExpenseKind
			}
			return nil
		}
	}
	return nil
}

// persistTransactions and persistGoals run with the lock held. Failures
// are logged and swallowed: in-memory state stays the source of truth.
func (s *Store) persistTransactions(ctx context.Context) {
	s.persist(ctx, storage.KeyTransactions, s.transactions)
}

func (s *Store) persistGoals(ctx context.Context) {
	s.persist(ctx, storage.KeyGoals, s.goals)
}

func (s *Store) persist(ctx context.Context, key string, v any) {
	doc, err := json.Marshal(v)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to encode document", "key", key, "error", err)
		return
	}
	if err := s.kv.Save(ctx, key, doc); err != nil {
		slog.WarnContext(ctx, "Failed to persist document, keeping in-memory state",
			"key", key, "error", err)
	}
}

func (s *Store) publishCreated(ctx context.Context, id string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishTransactionCreated(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish transaction event", "id", id, "error", err)
	}
}

func (s *Store) publishDeleted(ctx context.Context, id string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishTransactionDeleted(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish transaction event", "id", id, "error", err)
	}
}
