package voice

import (
	"testing"

	"planit/internal/core"
)

func expenseCandidates() []core.Category {
	return []core.Category{
		{ID: "1", Name: "Food & Dining", Kind: core.Expense},
		{ID: "2", Name: "Transportation", Kind: core.Expense},
		{ID: "3", Name: "Shopping", Kind: core.Expense},
	}
}

func TestParseDraftLunch(t *testing.T) {
	d, ok := ParseDraft("45 lunch with coworkers food", []core.Category{
		{ID: "1", Name: "Food & Dining", Kind: core.Expense},
		{ID: "f", Name: "food", Kind: core.Expense},
	})
	if !ok {
		t.Fatal("expected a draft")
	}
	if d.Amount != 45 {
		t.Fatalf("Amount = %v, want 45", d.Amount)
	}
	// The category name is matched against the utterance but never
	// stripped from the description.
	if d.Description != "lunch with coworkers food" {
		t.Fatalf("Description = %q", d.Description)
	}
	// First match in list order wins.
	if d.Category != "1" {
		t.Fatalf("Category = %q, want 1", d.Category)
	}
}

func TestParseDraftNoDigits(t *testing.T) {
	if _, ok := ParseDraft("lunch with coworkers", expenseCandidates()); ok {
		t.Fatal("expected no draft without an amount")
	}
	if _, ok := ParseDraft("", expenseCandidates()); ok {
		t.Fatal("expected no draft for empty utterance")
	}
}

func TestParseDraftFirstDigitRunOnly(t *testing.T) {
	// Observed behavior: only the first digit run is stripped; later
	// numbers remain part of the description.
	d, ok := ParseDraft("2 items for 45 dollars", nil)
	if !ok {
		t.Fatal("expected a draft")
	}
	if d.Amount != 2 {
		t.Fatalf("Amount = %v, want 2", d.Amount)
	}
	if d.Description != "items for 45 dollars" {
		t.Fatalf("Description = %q", d.Description)
	}
	if d.Category != "" {
		t.Fatalf("Category = %q, want unset", d.Category)
	}
}

func TestParseDraftMatchesNameWord(t *testing.T) {
	// A single word of a multi-word name is enough; nobody speaks the
	// ampersand in "Food & Dining".
	d, ok := ParseDraft("18 dining out downtown", expenseCandidates())
	if !ok {
		t.Fatal("expected a draft")
	}
	if d.Category != "1" {
		t.Fatalf("Category = %q, want 1", d.Category)
	}
	if d.Description != "dining out downtown" {
		t.Fatalf("Description = %q", d.Description)
	}
}

func TestParseDraftCaseInsensitiveMatch(t *testing.T) {
	d, ok := ParseDraft("30 SHOPPING spree", expenseCandidates())
	if !ok {
		t.Fatal("expected a draft")
	}
	if d.Category != "3" {
		t.Fatalf("Category = %q, want 3", d.Category)
	}
}

func TestParseDraftDigitsInsideWord(t *testing.T) {
	d, ok := ParseDraft("taxi4you ride", expenseCandidates())
	if !ok {
		t.Fatal("expected a draft")
	}
	if d.Amount != 4 {
		t.Fatalf("Amount = %v, want 4", d.Amount)
	}
	if d.Description != "taxiyou ride" {
		t.Fatalf("Description = %q", d.Description)
	}
}
