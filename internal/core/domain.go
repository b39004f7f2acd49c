package core

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	Expense Kind = "expense"
	Income  Kind = "income"
)

type (
	// Kind distinguishes money leaving the ledger from money entering it.
	Kind string

	Transaction struct {
		ID          string    `json:"id"`
		Amount      float64   `json:"amount"`
		Category    string    `json:"category"` // category ID, may dangle after a category delete
		Description string    `json:"description"`
		Date        time.Time `json:"date"`
		Kind        Kind      `json:"type"`
	}

	Category struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Kind Kind   `json:"type"`
	}

	Goal struct {
		ID          string    `json:"id"`
		Category    string    `json:"category"`
		Amount      float64   `json:"amount"`
		TargetDate  time.Time `json:"targetDate"`
		Description string    `json:"description,omitempty"`
	}

	Currency struct {
		Code   string `json:"code"`
		Symbol string `json:"symbol"`
		Name   string `json:"name"`
	}

	Language struct {
		Code string `json:"code"`
		Name string `json:"name"`
	}

	// User is an identity stub. It gates the one-time welcome prompt and
	// nothing else; there is no authentication behind it.
	User struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email,omitempty"`
		Phone string `json:"phone,omitempty"`
	}
)

// ErrValidation is the root of the validation error taxonomy. Every
// input-rejection error wraps it, so callers can match the whole family
// with errors.Is(err, ErrValidation).
var ErrValidation = errors.New("validation failed")

var (
	ErrInvalidAmount  = fmt.Errorf("%w: amount must be a positive finite number", ErrValidation)
	ErrEmptyCategory  = fmt.Errorf("%w: category is required", ErrValidation)
	ErrEmptyName      = fmt.Errorf("%w: name is required", ErrValidation)
	ErrInvalidDate    = fmt.Errorf("%w: invalid date", ErrValidation)
	ErrInvalidKind    = fmt.Errorf("%w: kind must be expense or income", ErrValidation)
	ErrNotExpenseKind = fmt.Errorf("%w: goal category must be an expense category", ErrValidation)
)

// UnknownCategory is the fallback display name for a transaction or goal
// whose category has been deleted. Dangling references are resolved at
// read time, never repaired.
const UnknownCategory = "Unknown"

func (k Kind) Valid() bool {
	return k == Expense || k == Income
}

// Signed returns the contribution of amount to an aggregate under this
// kind: positive for income, negative for expense.
func (k Kind) Signed(amount float64) float64 {
	if k == Expense {
		return -amount
	}
	return amount
}

// NewID returns a fresh opaque identifier.
func NewID() string {
	return uuid.NewString()
}

// ValidAmount reports whether v is usable as a transaction or goal amount.
func ValidAmount(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func (t Transaction) Validate() error {
	if !ValidAmount(t.Amount) {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if !t.Kind.Valid() {
		return ErrInvalidKind
	}
	return nil
}

func (g Goal) Validate() error {
	if !ValidAmount(g.Amount) {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(g.Category) == "" {
		return ErrEmptyCategory
	}
	if g.TargetDate.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if !c.Kind.Valid() {
		return ErrInvalidKind
	}
	return nil
}
