package content

import (
	"fmt"
	"strings"

	"github.com/studyhub-app/studyhub-backend/internal/obs"
)

// ValidationError reports every required collection that came out of the
// transform missing or empty.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("curriculum model incomplete: missing %s", strings.Join(e.Missing, ", "))
}

// countGrouped sums the entries of a grouped collection.
func countGrouped[T any](buckets map[string][]T) int {
	n := 0
	for _, bucket := range buckets {
		n += len(bucket)
	}
	return n
}

// Validate checks the assembled graph for structural completeness and emits a
// "Data Validation" gate signal either way. The required top-level collections
// are subjects, topics, quiz questions, and study content; an empty subject
// list fails even though the collection is structurally present.
func Validate(graph *Graph, observer obs.Observer) error {
	if observer == nil {
		observer = obs.Nop()
	}

	var missing []string
	if graph == nil {
		missing = []string{"subjects", "topics", "quiz questions", "study content"}
	} else {
		if len(graph.Subjects) == 0 {
			missing = append(missing, "subjects")
		}
		if len(graph.Topics) == 0 {
			missing = append(missing, "topics")
		}
		if countGrouped(graph.Questions) == 0 {
			missing = append(missing, "quiz questions")
		}
		if countGrouped(graph.Content) == 0 {
			missing = append(missing, "study content")
		}
	}

	if len(missing) > 0 {
		observer.Gate("Data Validation", false)
		return &ValidationError{Missing: missing}
	}

	observer.Gate("Data Validation", true)
	observer.Data("curriculum model validated",
		"subjects", len(graph.Subjects),
		"topics", len(graph.Topics),
		"questions", countGrouped(graph.Questions),
		"content_items", countGrouped(graph.Content),
	)
	return nil
}
