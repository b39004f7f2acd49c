package core

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestValidAmount(t *testing.T) {
	cases := []struct {
		v  float64
		ok bool
	}{
		{1, true},
		{0.01, true},
		{1000, true},
		{0, false},
		{-5, false},
		{math.Inf(1), false},
		{math.Inf(-1), false},
		{math.NaN(), false},
	}
	for i, tc := range cases {
		if got := ValidAmount(tc.v); got != tc.ok {
			t.Fatalf("case %d: ValidAmount(%v) = %v, want %v", i, tc.v, got, tc.ok)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{Amount: 12.5, Category: "1", Kind: Expense}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{Amount: 0, Category: "1", Kind: Expense},
		{Amount: -1, Category: "1", Kind: Income},
		{Amount: 10, Category: "  ", Kind: Expense},
		{Amount: 10, Category: "1", Kind: Kind("transfer")},
	}
	for i, tx := range bads {
		err := tx.Validate()
		if err == nil {
			t.Fatalf("case %d: expected error", i)
		}
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("case %d: error %v does not wrap ErrValidation", i, err)
		}
	}
}

func TestGoalValidate(t *testing.T) {
	target := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	good := Goal{Category: "1", Amount: 500, TargetDate: target}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	if err := (Goal{Category: "1", Amount: -5, TargetDate: target}).Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if err := (Goal{Category: "1", Amount: 5}).Validate(); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestKindSigned(t *testing.T) {
	if got := Income.Signed(100); got != 100 {
		t.Fatalf("income contribution = %v, want 100", got)
	}
	if got := Expense.Signed(100); got != -100 {
		t.Fatalf("expense contribution = %v, want -100", got)
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewID()
		if id == "" || seen[id] {
			t.Fatalf("duplicate or empty id %q", id)
		}
		seen[id] = true
	}
}
