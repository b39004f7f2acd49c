package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Handler: slog.NewTextHandler(&buf, nil)})

	logger.WithComponent(ComponentWorker).Info("Transaction exported", "transaction_id", "tx-1")

	out := buf.String()
	if !strings.Contains(out, "component=worker") {
		t.Fatalf("missing component tag: %s", out)
	}
	if !strings.Contains(out, "transaction_id=tx-1") {
		t.Fatalf("missing field: %s", out)
	}
}

func TestWithComponentDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := New(Config{Handler: slog.NewTextHandler(&buf, nil), Component: ComponentApp})
	child := parent.WithComponent(ComponentWorker)

	if parent.Component() != ComponentApp {
		t.Fatalf("parent component changed to %q", parent.Component())
	}
	if child.Component() != ComponentWorker {
		t.Fatalf("child component = %q", child.Component())
	}
}
