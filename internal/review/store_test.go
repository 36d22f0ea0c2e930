package review_test

import (
	"context"
	"testing"
	"time"

	"github.com/studyhub-app/studyhub-backend/internal/review"
)

func TestMemoryStore_GetMiss(t *testing.T) {
	store := review.NewMemoryStore()

	entry, err := store.Get(context.Background(), "unknown")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if entry != nil {
		t.Errorf("Get() = %+v, want nil for unseen question", entry)
	}
}

func TestMemoryStore_PutGetAll(t *testing.T) {
	ctx := context.Background()
	store := review.NewMemoryStore()

	want := review.Entry{
		QuestionID:   "q1",
		NextReview:   now.AddDate(0, 0, 6),
		IntervalDays: 6,
		EaseFactor:   2.6,
	}
	if err := store.Put(ctx, want); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := store.Get(ctx, "q1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil || *got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}

	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != 1 || all["q1"] != want {
		t.Errorf("All() = %v, want one entry for q1", all)
	}

	// Mutating the snapshot must not leak back into the store.
	all["q1"] = review.Entry{QuestionID: "q1"}
	got, _ = store.Get(ctx, "q1")
	if *got != want {
		t.Error("All() snapshot aliases store state")
	}
}

func TestScheduler_RecordRoundTrip(t *testing.T) {
	ctx := context.Background()
	scheduler := review.NewScheduler(nil)

	first, err := scheduler.Record(ctx, "q1", true, now)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if first.IntervalDays != 1 {
		t.Errorf("first interval = %d, want 1", first.IntervalDays)
	}

	second, err := scheduler.Record(ctx, "q1", true, now)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if second.IntervalDays != 6 {
		t.Errorf("second interval = %d, want 6 (state persisted between calls)", second.IntervalDays)
	}
}

func TestScheduler_DueNow(t *testing.T) {
	ctx := context.Background()
	store := review.NewMemoryStore()
	scheduler := review.NewScheduler(store)

	if _, err := scheduler.Record(ctx, "wrong", false, now); err != nil {
		t.Fatal(err)
	}
	if _, err := scheduler.Record(ctx, "right", true, now); err != nil {
		t.Fatal(err)
	}

	due, err := scheduler.DueNow(ctx, now)
	if err != nil {
		t.Fatalf("DueNow() error = %v", err)
	}
	if len(due) != 1 || due[0] != "wrong" {
		t.Errorf("DueNow() = %v, want [wrong]", due)
	}

	due, err = scheduler.DueNow(ctx, now.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("DueNow() error = %v", err)
	}
	if len(due) != 2 {
		t.Errorf("DueNow() tomorrow = %v, want both questions", due)
	}
}

func TestScheduler_ConcurrentRecords(t *testing.T) {
	ctx := context.Background()
	scheduler := review.NewScheduler(nil)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		correct := i%2 == 0
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				if _, err := scheduler.Record(ctx, "shared", correct, now.Add(time.Duration(j)*time.Minute)); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
