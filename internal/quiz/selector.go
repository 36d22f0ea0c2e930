// Package quiz selects question subsets for a session, weighting difficulty
// tiers by the learner's mastery score.
package quiz

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/studyhub-app/studyhub-backend/internal/content"
)

// DefaultTargetCount is the session size when the caller passes 0.
const DefaultTargetCount = 5

// weights is the (easy, medium, hard) share for one mastery band.
type weights struct {
	easy, medium, hard float64
}

// Mastery bands: struggling learners see mostly easy questions, strong ones
// mostly hard.
func weightsFor(masteryScore float64) weights {
	switch {
	case masteryScore < 30:
		return weights{easy: 0.7, medium: 0.3, hard: 0.0}
	case masteryScore < 70:
		return weights{easy: 0.3, medium: 0.5, hard: 0.2}
	default:
		return weights{easy: 0.1, medium: 0.3, hard: 0.6}
	}
}

// Selector draws difficulty-weighted question subsets. It has no shared
// mutable state beyond its random source; inject a seeded source for
// deterministic tests.
type Selector struct {
	rng *rand.Rand
}

// NewSelector creates a selector. A nil source gets a time-seeded one.
func NewSelector(rng *rand.Rand) *Selector {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return &Selector{rng: rng}
}

// Select returns min(targetCount, len(pool)) questions: each difficulty
// bucket contributes round(target*weight) items drawn uniformly without
// replacement, shortfalls are backfilled medium then easy then hard, and the
// final selection is shuffled so the order does not leak difficulty tiers.
// The caller's pool is never mutated.
func (s *Selector) Select(pool []content.QuizQuestion, masteryScore float64, targetCount int) []content.QuizQuestion {
	if targetCount <= 0 {
		targetCount = DefaultTargetCount
	}

	buckets := map[content.Difficulty][]content.QuizQuestion{}
	for _, q := range pool {
		d := q.Difficulty
		if d != content.DifficultyEasy && d != content.DifficultyHard {
			d = content.DifficultyMedium
		}
		buckets[d] = append(buckets[d], q)
	}

	w := weightsFor(masteryScore)
	quotas := []struct {
		difficulty content.Difficulty
		weight     float64
	}{
		{content.DifficultyEasy, w.easy},
		{content.DifficultyMedium, w.medium},
		{content.DifficultyHard, w.hard},
	}

	selected := make([]content.QuizQuestion, 0, targetCount)
	for _, q := range quotas {
		count := int(math.Round(float64(targetCount) * q.weight))
		var drawn []content.QuizQuestion
		drawn, buckets[q.difficulty] = s.draw(buckets[q.difficulty], count)
		selected = append(selected, drawn...)
	}

	// Backfill order is deliberately medium, easy, hard.
	for _, d := range []content.Difficulty{content.DifficultyMedium, content.DifficultyEasy, content.DifficultyHard} {
		if len(selected) >= targetCount {
			break
		}
		var drawn []content.QuizQuestion
		drawn, buckets[d] = s.draw(buckets[d], targetCount-len(selected))
		selected = append(selected, drawn...)
	}

	s.rng.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})
	// Rounded quotas can overshoot by one; trimming after the shuffle drops a
	// uniformly random item.
	if len(selected) > targetCount {
		selected = selected[:targetCount]
	}
	return selected
}

// draw takes up to count items uniformly at random without replacement,
// returning the drawn items and the remaining bucket. The input slice is
// copied, never spliced in place.
func (s *Selector) draw(bucket []content.QuizQuestion, count int) (drawn, rest []content.QuizQuestion) {
	if count <= 0 || len(bucket) == 0 {
		return nil, bucket
	}
	if count > len(bucket) {
		count = len(bucket)
	}

	rest = append([]content.QuizQuestion{}, bucket...)
	s.rng.Shuffle(len(rest), func(i, j int) {
		rest[i], rest[j] = rest[j], rest[i]
	})
	drawn = rest[:count]
	return drawn, rest[count:]
}
