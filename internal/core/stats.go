// Package core holds the ledger domain model and the pure aggregation
// functions derived from it. Nothing in this package keeps state between
// calls; every summary is recomputed from the snapshot it is handed.
package core

import (
	"math"
	"time"
)

type (
	// CategoryTotal is the signed net for one referenced category,
	// keyed by resolved display name.
	CategoryTotal struct {
		Category string  `json:"category"`
		Total    float64 `json:"total"`
	}

	// Summary is the derived view of a transaction snapshot.
	Summary struct {
		TotalIncome    float64         `json:"totalIncome"`
		TotalExpense   float64         `json:"totalExpense"`
		Balance        float64         `json:"balance"`
		AverageExpense float64         `json:"averageExpense"`
		ByCategory     []CategoryTotal `json:"byCategory"`
		Currency       Currency        `json:"currency"`
	}

	// GoalView pairs a goal with its resolved category name and the days
	// remaining until its target date. DaysLeft goes negative once the
	// goal is overdue.
	GoalView struct {
		Goal
		CategoryName string `json:"categoryName"`
		DaysLeft     int    `json:"daysLeft"`
	}
)

// ResolveCategoryName looks up a category's display name, falling back to
// UnknownCategory for a dangling reference.
func ResolveCategoryName(categories []Category, id string) string {
	for _, c := range categories {
		if c.ID == id {
			return c.Name
		}
	}
	return UnknownCategory
}

// Summarize computes totals, balance, average expense and per-category nets
// from a transaction snapshot. Categories with no referencing transaction
// are omitted; category groups appear in first-seen transaction order.
func Summarize(transactions []Transaction, categories []Category, currency Currency) Summary {
	s := Summary{Currency: currency}

	expenseCount := 0
	index := make(map[string]int)
	for _, t := range transactions {
		switch t.Kind {
		case Income:
			s.TotalIncome += t.Amount
		case Expense:
			s.TotalExpense += t.Amount
			expenseCount++
		}

		name := ResolveCategoryName(categories, t.Category)
		if i, ok := index[name]; ok {
			s.ByCategory[i].Total += t.Kind.Signed(t.Amount)
		} else {
			index[name] = len(s.ByCategory)
			s.ByCategory = append(s.ByCategory, CategoryTotal{
				Category: name,
				Total:    t.Kind.Signed(t.Amount),
			})
		}
	}

	s.Balance = s.TotalIncome - s.TotalExpense
	if expenseCount > 0 {
		s.AverageExpense = s.TotalExpense / float64(expenseCount)
	}
	return s
}

// DaysLeft returns the number of whole days between now and the target
// date, rounded up. Overdue targets yield a negative count.
func DaysLeft(target, now time.Time) int {
	return int(math.Ceil(target.Sub(now).Hours() / 24))
}

// GoalProgress builds the display view for each goal against the given
// category snapshot and reference time.
func GoalProgress(goals []Goal, categories []Category, now time.Time) []GoalView {
	views := make([]GoalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, GoalView{
			Goal:         g,
			CategoryName: ResolveCategoryName(categories, g.Category),
			DaysLeft:     DaysLeft(g.TargetDate, now),
		})
	}
	return views
}
