package voice

import (
	"context"
	"errors"
	"sync"
	"testing"

	"planit/internal/core"
)

type fakeRecognizer struct {
	text    string
	err     error
	started chan struct{}
	release chan struct{}
}

func (f *fakeRecognizer) Listen(ctx context.Context) (string, error) {
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.text, f.err
}

func TestCaptureUnavailable(t *testing.T) {
	c := NewCapture(nil)
	_, ok, err := c.Listen(context.Background(), nil)
	if ok {
		t.Fatal("expected no draft")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if c.Listening() {
		t.Fatal("capture should be idle")
	}
}

func TestCaptureSuccess(t *testing.T) {
	c := NewCapture(&fakeRecognizer{text: "45 lunch with coworkers food"})
	cands := []core.Category{{ID: "1", Name: "Food & Dining", Kind: core.Expense}}

	d, ok, err := c.Listen(context.Background(), cands)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || d.Amount != 45 || d.Category != "1" {
		t.Fatalf("draft = %+v ok=%v", d, ok)
	}
	if c.Listening() {
		t.Fatal("capture should be idle after success")
	}
}

func TestCaptureErrorResetsToIdle(t *testing.T) {
	backendErr := errors.New("audio device lost")
	c := NewCapture(&fakeRecognizer{err: backendErr})

	_, ok, err := c.Listen(context.Background(), nil)
	if ok {
		t.Fatal("expected no draft")
	}
	if !errors.Is(err, backendErr) {
		t.Fatalf("err = %v, want backend error", err)
	}
	if c.Listening() {
		t.Fatal("capture should be idle after an error")
	}

	// The next session must be allowed again.
	c.rec = &fakeRecognizer{text: "10 coffee"}
	if _, ok, err := c.Listen(context.Background(), nil); err != nil || !ok {
		t.Fatalf("second session failed: ok=%v err=%v", ok, err)
	}
}

func TestCaptureRejectsOverlappingSessions(t *testing.T) {
	rec := &fakeRecognizer{
		text:    "45 lunch",
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	c := NewCapture(rec)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, ok, err := c.Listen(context.Background(), nil); err != nil || !ok {
			t.Errorf("first session failed: ok=%v err=%v", ok, err)
		}
	}()

	<-rec.started
	if !c.Listening() {
		t.Fatal("expected an active session")
	}

	// Re-entry while busy is ignored, not an error.
	d, ok, err := c.Listen(context.Background(), nil)
	if err != nil || ok || d != (Draft{}) {
		t.Fatalf("overlapping session: draft=%+v ok=%v err=%v", d, ok, err)
	}

	close(rec.release)
	wg.Wait()
	if c.Listening() {
		t.Fatal("capture should be idle after completion")
	}
}
