// Package content holds the curriculum entity model and the pipeline that
// builds it from loosely-schematized tabular sources: schema-tolerant row
// lookup, per-entity transforms, and the structural validation gate.
package content

// Subject is a top-level study area (e.g. Physics). It owns its topics in
// display order.
type Subject struct {
	Key      string  `json:"key"`
	Name     string  `json:"name"`
	Icon     string  `json:"icon,omitempty"`
	ColorHex string  `json:"color_hex,omitempty"`
	Topics   []Topic `json:"topics"`
}

// Topic is a unit of study within a subject.
type Topic struct {
	ID         string `json:"id"`
	SubjectKey string `json:"subject_key"`
	Name       string `json:"name"`
	Folder     string `json:"folder,omitempty"`
	Duration   int    `json:"duration_minutes"`
	OrderIndex int    `json:"order_index"`
}

// Section is a page or chapter of a topic's study guide.
type Section struct {
	ID         string `json:"id"`
	TopicID    string `json:"topic_id"`
	Title      string `json:"title"`
	Type       string `json:"type,omitempty"`
	OrderIndex int    `json:"order_index"`
}

// ContentItem is one block of study content inside a section. Type tags the
// rendering (text, formula, warning, video, image, misconception, ...).
// Payload holds an optional structured JSON document for rich blocks.
type ContentItem struct {
	ID         string `json:"id"`
	SectionID  string `json:"section_id"`
	Type       string `json:"type"`
	Title      string `json:"title,omitempty"`
	Body       string `json:"body,omitempty"`
	VideoURL   string `json:"video_url,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
	Payload    []byte `json:"payload,omitempty"`
	OrderIndex int    `json:"order_index"`
}

// LearningObjective is a single objective attached to a topic.
type LearningObjective struct {
	ID      string `json:"id"`
	TopicID string `json:"topic_id"`
	Text    string `json:"text"`
}

// KeyTerm is a term/definition pair attached to a topic.
type KeyTerm struct {
	ID         string `json:"id"`
	TopicID    string `json:"topic_id"`
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// FormulaVariable describes one symbol used in a formula.
type FormulaVariable struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name,omitempty"`
	Unit   string `json:"unit,omitempty"`
}

// Formula is an equation attached to a topic, with up to five described
// variables.
type Formula struct {
	ID         string            `json:"id"`
	TopicID    string            `json:"topic_id"`
	Label      string            `json:"label"`
	Text       string            `json:"text"`
	Variables  []FormulaVariable `json:"variables,omitempty"`
	OrderIndex int               `json:"order_index"`
}

// Difficulty tags a quiz question's tier.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty normalizes a difficulty tag; anything unrecognized is medium.
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(normalizeKey(s)) {
	case DifficultyEasy:
		return DifficultyEasy
	case DifficultyHard:
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// QuizOption is one labeled answer choice.
type QuizOption struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// QuizQuestion is a multiple-choice question attached to a topic.
type QuizQuestion struct {
	ID            string       `json:"id"`
	TopicID       string       `json:"topic_id"`
	Text          string       `json:"text"`
	Options       []QuizOption `json:"options"`
	CorrectAnswer string       `json:"correct_answer"`
	Explanation   string       `json:"explanation,omitempty"`
	Hint          string       `json:"hint,omitempty"`
	Difficulty    Difficulty   `json:"difficulty"`
	XPReward      int          `json:"xp_reward"`
}

// Achievement is a standalone gamification record.
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	XPReward    int    `json:"xp_reward"`
}

// DailyChallenge is a standalone daily goal record.
type DailyChallenge struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	XPReward    int    `json:"xp_reward"`
	TargetCount int    `json:"target_count"`
}

// Graph is the assembled curriculum model. It is built once per load and
// treated as read-only afterwards, so it is safe to share across goroutines.
type Graph struct {
	Subjects     []Subject                      `json:"subjects"`
	Topics       map[string]Topic               `json:"topics"`
	Sections     map[string][]Section           `json:"sections"`    // by topic id
	Content      map[string][]ContentItem       `json:"content"`     // by section id
	Objectives   map[string][]LearningObjective `json:"objectives"`  // by topic id
	Terms        map[string][]KeyTerm           `json:"terms"`       // by topic id
	Formulas     map[string][]Formula           `json:"formulas"`    // by topic id
	Questions    map[string][]QuizQuestion      `json:"questions"`   // by topic id
	Achievements []Achievement                  `json:"achievements"`
	Challenges   []DailyChallenge               `json:"challenges"`
	Settings     map[string]string              `json:"settings"`
}

// Tables holds the raw rows for every entity table, as produced by a source
// strategy and consumed by TransformAll.
type Tables struct {
	Subjects     []Row
	Topics       []Row
	Sections     []Row
	Content      []Row
	Objectives   []Row
	Terms        []Row
	Formulas     []Row
	Questions    []Row
	Achievements []Row
	Challenges   []Row
	Settings     []Row
}
