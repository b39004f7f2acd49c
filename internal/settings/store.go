// Package settings owns the active currency, language and category list.
// Every successful mutation is written through the persistence adapter;
// a failed write is logged and the in-memory state stays authoritative
// for the session.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"planit/internal/core"
	"planit/internal/storage"
)

type document struct {
	Currency   core.Currency   `json:"currency"`
	Language   core.Language   `json:"language"`
	Categories []core.Category `json:"categories"`
}

// Store holds the process-wide settings singletons. All methods are safe
// for concurrent use; mutations do not interleave.
type Store struct {
	mu         sync.Mutex
	kv         storage.Store
	currency   core.Currency
	language   core.Language
	categories []core.Category
}

// NewStore loads persisted settings, falling back to the seed defaults on
// a first run or an unreadable document.
func NewStore(ctx context.Context, kv storage.Store) *Store {
	s := &Store{kv: kv}

	raw, err := kv.Load(ctx, storage.KeySettings)
	if err == nil {
		var doc document
		if jsonErr := json.Unmarshal(raw, &doc); jsonErr == nil && doc.Currency.Code != "" {
			s.currency = doc.Currency
			s.language = doc.Language
			s.categories = doc.Categories
			return s
		}
		slog.WarnContext(ctx, "Malformed settings document, using defaults")
	} else if !errors.Is(err, storage.ErrNotFound) {
		slog.WarnContext(ctx, "Failed to load settings, using defaults", "error", err)
	}

	s.currency = core.DefaultCurrencies()[0]
	s.language = core.DefaultLanguages()[0]
	s.categories = core.DefaultCategories()
	// Write the seed through so other processes reading the document (the
	// export worker) see the same categories this session resolves against.
	s.persist(ctx)
	return s
}

func (s *Store) Currency() core.Currency {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currency
}

func (s *Store) Language() core.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// Categories returns a snapshot of the category list in insertion order.
func (s *Store) Categories() []core.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Category(nil), s.categories...)
}

// CategoriesByKind returns the snapshot filtered to one transaction kind,
// preserving insertion order.
func (s *Store) CategoriesByKind(kind core.Kind) []core.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Category, 0, len(s.categories))
	for _, c := range s.categories {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// SetCurrency replaces the active currency. Amounts already recorded are
// currency-agnostic numbers; only the display symbol changes.
func (s *Store) SetCurrency(ctx context.Context, c core.Currency) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currency = c
	s.persist(ctx)
}

func (s *Store) SetLanguage(ctx context.Context, l core.Language) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = l
	s.persist(ctx)
}

// AddCategory appends a new category with a fresh identifier. The name
// must not trim to empty.
func (s *Store) AddCategory(ctx context.Context, name string, kind core.Kind) (core.Category, error) {
	c := core.Category{
		ID:   core.NewID(),
		Name: strings.TrimSpace(name),
		Kind: kind,
	}
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append(s.categories, c)
	s.persist(ctx)

	slog.InfoContext(ctx, "Category added", "id", c.ID, "name", c.Name, "kind", string(c.Kind))
	return c, nil
}

// DeleteCategory removes the category with the given id. Absent ids are a
// no-op. Transactions and goals referencing the category are untouched;
// their lookups resolve to the Unknown fallback from now on.
func (s *Store) DeleteCategory(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.categories {
		if c.ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			s.persist(ctx)
			slog.InfoContext(ctx, "Category deleted", "id", id, "name", c.Name)
			return
		}
	}
}

// persist writes the current state through the adapter. Callers hold the
// lock. Failures are logged, never propagated: the mutation already
// happened and in-memory state is the source of truth for the session.
func (s *Store) persist(ctx context.Context) {
	doc, err := json.Marshal(document{
		Currency:   s.currency,
		Language:   s.language,
		Categories: s.categories,
	})
	if err != nil {
		slog.ErrorContext(ctx, "Failed to encode settings", "error", err)
		return
	}
	if err := s.kv.Save(ctx, storage.KeySettings, doc); err != nil {
		slog.WarnContext(ctx, "Failed to persist settings, keeping in-memory state", "error", err)
	}
}
