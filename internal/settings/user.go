package settings

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"planit/internal/core"
	"planit/internal/storage"
)

// UserStore keeps the optional identity stub. Its only job is deciding
// whether the one-time welcome prompt has been answered; it enforces
// nothing.
type UserStore struct {
	mu   sync.Mutex
	kv   storage.Store
	user *core.User
}

func NewUserStore(ctx context.Context, kv storage.Store) *UserStore {
	s := &UserStore{kv: kv}

	raw, err := kv.Load(ctx, storage.KeyUser)
	if err != nil {
		return s
	}
	var u core.User
	if jsonErr := json.Unmarshal(raw, &u); jsonErr != nil || u.ID == "" {
		slog.WarnContext(ctx, "Malformed user document, treating as absent")
		return s
	}
	s.user = &u
	return s
}

// Current returns the stored user, if any.
func (s *UserStore) Current() (core.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return core.User{}, false
	}
	return *s.user, true
}

// Login records the identity stub. Email and phone are optional.
func (s *UserStore) Login(ctx context.Context, name, email, phone string) (core.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return core.User{}, core.ErrEmptyName
	}

	u := core.User{
		ID:    core.NewID(),
		Name:  name,
		Email: strings.TrimSpace(email),
		Phone: strings.TrimSpace(phone),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &u

	doc, err := json.Marshal(u)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to encode user", "error", err)
		return u, nil
	}
	if err := s.kv.Save(ctx, storage.KeyUser, doc); err != nil {
		slog.WarnContext(ctx, "Failed to persist user, keeping in-memory state", "error", err)
	}
	return u, nil
}
