// Package review implements spaced-repetition scheduling for answered quiz
// questions: an SM-2-style transition over per-question state, plus stores
// that persist it.
package review

import (
	"math"
	"sort"
	"time"
)

const (
	// MinEaseFactor is the floor the ease factor never drops below.
	MinEaseFactor = 1.3
	// InitialEaseFactor seeds a question's first entry.
	InitialEaseFactor = 2.5

	easeReward  = 0.1
	easePenalty = 0.2
)

// Entry is the spaced-repetition state for one question.
type Entry struct {
	QuestionID   string    `json:"question_id"`
	NextReview   time.Time `json:"next_review"`
	IntervalDays int       `json:"interval_days"`
	EaseFactor   float64   `json:"ease_factor"`
}

// Apply computes the next state after an answer. It is a pure transition: prev
// is never mutated, and persisting the result is the caller's job. A nil prev
// means the question has not been reviewed before.
//
// Correct answers grow the interval (0→1, 1→6, then interval×ease) and nudge
// the ease factor up; incorrect answers reset the interval to 0 (due again the
// same day) and push the ease factor down, floored at MinEaseFactor.
func Apply(prev *Entry, questionID string, correct bool, now time.Time) Entry {
	next := Entry{
		QuestionID: questionID,
		EaseFactor: InitialEaseFactor,
	}

	if prev == nil {
		if correct {
			next.IntervalDays = 1
		}
	} else {
		next.EaseFactor = prev.EaseFactor
		if correct {
			switch prev.IntervalDays {
			case 0:
				next.IntervalDays = 1
			case 1:
				next.IntervalDays = 6
			default:
				next.IntervalDays = int(math.Round(float64(prev.IntervalDays) * prev.EaseFactor))
			}
			next.EaseFactor += easeReward
		} else {
			next.IntervalDays = 0
			next.EaseFactor -= easePenalty
		}
	}

	if next.EaseFactor < MinEaseFactor {
		next.EaseFactor = MinEaseFactor
	}
	next.NextReview = now.AddDate(0, 0, next.IntervalDays)
	return next
}

// Due returns the ids of every question whose next review is at or before
// now, sorted for determinism.
func Due(entries map[string]Entry, now time.Time) []string {
	var due []string
	for id, entry := range entries {
		if !entry.NextReview.After(now) {
			due = append(due, id)
		}
	}
	sort.Strings(due)
	return due
}
