package review_test

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/studyhub-app/studyhub-backend/internal/review"
)

var now = time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestApply_FreshQuestion(t *testing.T) {
	tests := []struct {
		name         string
		correct      bool
		wantInterval int
	}{
		{"correct", true, 1},
		{"incorrect", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := review.Apply(nil, "q1", tt.correct, now)

			if entry.QuestionID != "q1" {
				t.Errorf("QuestionID = %q, want q1", entry.QuestionID)
			}
			if entry.IntervalDays != tt.wantInterval {
				t.Errorf("IntervalDays = %d, want %d", entry.IntervalDays, tt.wantInterval)
			}
			if !almostEqual(entry.EaseFactor, review.InitialEaseFactor) {
				t.Errorf("EaseFactor = %v, want %v", entry.EaseFactor, review.InitialEaseFactor)
			}
			want := now.AddDate(0, 0, tt.wantInterval)
			if !entry.NextReview.Equal(want) {
				t.Errorf("NextReview = %v, want %v", entry.NextReview, want)
			}
		})
	}
}

func TestApply_CorrectStreak(t *testing.T) {
	first := review.Apply(nil, "q1", true, now)
	if first.IntervalDays != 1 {
		t.Fatalf("first interval = %d, want 1", first.IntervalDays)
	}

	second := review.Apply(&first, "q1", true, now)
	if second.IntervalDays != 6 {
		t.Fatalf("second interval = %d, want 6", second.IntervalDays)
	}
	if !almostEqual(second.EaseFactor, 2.6) {
		t.Fatalf("second ease = %v, want 2.6", second.EaseFactor)
	}

	// Third correct: interval grows by the pre-bump ease factor.
	third := review.Apply(&second, "q1", true, now)
	if want := int(math.Round(6 * 2.6)); third.IntervalDays != want {
		t.Errorf("third interval = %d, want %d", third.IntervalDays, want)
	}
	if !almostEqual(third.EaseFactor, 2.7) {
		t.Errorf("third ease = %v, want 2.7", third.EaseFactor)
	}
}

func TestApply_IncorrectAlwaysResetsInterval(t *testing.T) {
	for _, prev := range []review.Entry{
		{QuestionID: "q1", IntervalDays: 0, EaseFactor: 2.5},
		{QuestionID: "q1", IntervalDays: 1, EaseFactor: 2.5},
		{QuestionID: "q1", IntervalDays: 6, EaseFactor: 2.6},
		{QuestionID: "q1", IntervalDays: 42, EaseFactor: 1.9},
	} {
		entry := review.Apply(&prev, "q1", false, now)
		if entry.IntervalDays != 0 {
			t.Errorf("interval after wrong answer on %d-day entry = %d, want 0",
				prev.IntervalDays, entry.IntervalDays)
		}
		if !entry.NextReview.Equal(now) {
			t.Errorf("NextReview = %v, want due immediately", entry.NextReview)
		}
	}
}

func TestApply_EaseFactorFloor(t *testing.T) {
	entry := review.Apply(nil, "q1", false, now)
	for i := 0; i < 20; i++ {
		entry = review.Apply(&entry, "q1", false, now)
		if entry.EaseFactor < review.MinEaseFactor {
			t.Fatalf("ease after %d wrong answers = %v, below floor %v",
				i+2, entry.EaseFactor, review.MinEaseFactor)
		}
	}
	if !almostEqual(entry.EaseFactor, review.MinEaseFactor) {
		t.Errorf("ease = %v, want pinned at %v", entry.EaseFactor, review.MinEaseFactor)
	}
}

func TestApply_ZeroIntervalCorrectRestartsAtOne(t *testing.T) {
	prev := review.Entry{QuestionID: "q1", IntervalDays: 0, EaseFactor: 1.3}
	entry := review.Apply(&prev, "q1", true, now)
	if entry.IntervalDays != 1 {
		t.Errorf("interval = %d, want 1", entry.IntervalDays)
	}
	if !almostEqual(entry.EaseFactor, 1.4) {
		t.Errorf("ease = %v, want 1.4", entry.EaseFactor)
	}
}

func TestApply_DoesNotMutatePrev(t *testing.T) {
	prev := review.Entry{QuestionID: "q1", IntervalDays: 6, EaseFactor: 2.6, NextReview: now}
	saved := prev

	review.Apply(&prev, "q1", true, now)
	if prev != saved {
		t.Errorf("prev mutated: %+v, want %+v", prev, saved)
	}
}

func TestDue(t *testing.T) {
	entries := map[string]review.Entry{
		"overdue":  {NextReview: now.AddDate(0, 0, -3)},
		"due-now":  {NextReview: now},
		"tomorrow": {NextReview: now.AddDate(0, 0, 1)},
		"also-due": {NextReview: now.Add(-time.Hour)},
	}

	got := review.Due(entries, now)
	want := []string{"also-due", "due-now", "overdue"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Due() = %v, want %v (sorted, boundary inclusive)", got, want)
	}
}

func TestDue_Empty(t *testing.T) {
	if got := review.Due(nil, now); len(got) != 0 {
		t.Errorf("Due(nil) = %v, want empty", got)
	}
}
