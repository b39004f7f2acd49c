// Package voice turns a spoken utterance into a best-effort transaction
// draft. The parser is a pure function of its inputs; speech capture sits
// behind the Recognizer interface so backends can be swapped.
package voice

import (
	"strconv"
	"strings"
	"unicode"

	"planit/internal/core"
)

// Draft is a partial transaction guessed from an utterance. Every field
// stays individually overridable by the user; a draft is never submitted
// on its own.
type Draft struct {
	Amount      float64
	Description string
	Category    string // category ID, empty when no candidate name matched
}

// ParseDraft extracts a draft from a raw utterance against the candidate
// categories for the transaction kind in progress.
//
// The first contiguous digit run becomes the amount; without one there is
// no draft and ok is false. The description is the utterance with that
// digit run removed. The category guess is the first candidate, in list
// order, any word of whose name occurs in the utterance
// case-insensitively, so "food" alone is enough for "Food & Dining".
func ParseDraft(utterance string, candidates []core.Category) (Draft, bool) {
	start, end := firstDigitRun(utterance)
	if start < 0 {
		return Draft{}, false
	}

	amount, err := strconv.ParseFloat(utterance[start:end], 64)
	if err != nil {
		return Draft{}, false
	}

	d := Draft{
		Amount: amount,
		// Only the first digit run is stripped; a second number in the
		// utterance stays in the description text.
		Description: strings.TrimSpace(utterance[:start] + utterance[end:]),
	}

	lowered := strings.ToLower(utterance)
	for _, c := range candidates {
		if matchesName(lowered, c.Name) {
			d.Category = c.ID
			break
		}
	}
	return d, true
}

// matchesName reports whether any word of the category's display name
// occurs in the lowered utterance. Names split on non-letter runs, so
// punctuation like the "&" in "Food & Dining" never has to be spoken.
func matchesName(lowered, name string) bool {
	for _, word := range strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !unicode.IsLetter(r)
	}) {
		if strings.Contains(lowered, word) {
			return true
		}
	}
	return false
}

func firstDigitRun(s string) (start, end int) {
	start = -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			end = i + 1
			continue
		}
		if start >= 0 {
			return start, end
		}
	}
	if start < 0 {
		return -1, -1
	}
	return start, end
}
