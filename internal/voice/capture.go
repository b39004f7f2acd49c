package voice

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"planit/internal/core"
)

// ErrUnavailable means no speech-to-text backend exists in this
// environment. Callers should surface it once and not retry.
var ErrUnavailable = errors.New("speech recognition not supported in this environment")

// Recognizer is a single-shot speech-to-text capability. Listen blocks
// until one utterance is transcribed, the backend fails, or the context
// is done.
type Recognizer interface {
	Listen(ctx context.Context) (string, error)
}

// Capture serializes access to a Recognizer. Only one listen session may
// be active at a time; starting another while one is running is ignored.
// The capture returns to idle on every terminal outcome, including
// backend errors.
type Capture struct {
	rec       Recognizer
	listening atomic.Bool
}

func NewCapture(rec Recognizer) *Capture {
	return &Capture{rec: rec}
}

// Listening reports whether a listen session is currently active.
func (c *Capture) Listening() bool {
	return c.listening.Load()
}

// Listen runs one capture session and parses the transcript against the
// candidate categories.
//
// ok is false when the session was skipped because one is already active,
// or when the utterance produced no draft. err is ErrUnavailable when no
// recognizer is configured, or the backend's error on a mid-flight
// failure; either way no other side effect occurs.
func (c *Capture) Listen(ctx context.Context, candidates []core.Category) (draft Draft, ok bool, err error) {
	if c.rec == nil {
		return Draft{}, false, ErrUnavailable
	}
	if !c.listening.CompareAndSwap(false, true) {
		slog.DebugContext(ctx, "Listen session already active, ignoring")
		return Draft{}, false, nil
	}
	defer c.listening.Store(false)

	text, err := c.rec.Listen(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Speech recognition failed", "error", err)
		return Draft{}, false, err
	}

	draft, ok = ParseDraft(text, candidates)
	return draft, ok, nil
}
