package content

import (
	"sort"
	"strconv"
	"strings"

	"github.com/studyhub-app/studyhub-backend/internal/obs"
)

const (
	defaultDuration = 20
	defaultXPReward = 10
	maxFormulaVars  = 5
)

var optionLetters = []string{"A", "B", "C", "D"}

// Transformer builds typed entities from raw rows. Rows whose resolving key is
// absent (or whose parent is unknown) are skipped with a warning; no transform
// ever returns an error.
type Transformer struct {
	obs obs.Observer
}

// NewTransformer creates a transformer reporting through the given observer.
func NewTransformer(observer obs.Observer) *Transformer {
	if observer == nil {
		observer = obs.Nop()
	}
	return &Transformer{obs: observer}
}

// TransformAll composes the per-entity transforms in dependency order:
// subjects and topics resolve first, then everything keyed by topic or
// section id.
func (t *Transformer) TransformAll(tables Tables) *Graph {
	subjects := t.Subjects(tables.Subjects)
	subjects, topics := t.Topics(tables.Topics, subjects)

	sections := t.Sections(tables.Sections, topics)
	sectionIDs := make(map[string]bool)
	for _, bucket := range sections {
		for _, s := range bucket {
			sectionIDs[s.ID] = true
		}
	}

	return &Graph{
		Subjects:     subjects,
		Topics:       topics,
		Sections:     sections,
		Content:      t.ContentItems(tables.Content, sectionIDs),
		Objectives:   t.Objectives(tables.Objectives, topics),
		Terms:        t.Terms(tables.Terms, topics),
		Formulas:     t.Formulas(tables.Formulas, topics),
		Questions:    t.Questions(tables.Questions, topics),
		Achievements: t.Achievements(tables.Achievements),
		Challenges:   t.Challenges(tables.Challenges),
		Settings:     t.SettingsMap(tables.Settings),
	}
}

// Subjects builds the subject list in input order. Topics are attached later.
func (t *Transformer) Subjects(rows []Row) []Subject {
	var subjects []Subject
	seen := make(map[string]bool)
	for _, row := range rows {
		key := row.Value("", "subject_key", "subject", "key")
		if key == "" {
			t.obs.Warn("skipping subject row without key")
			continue
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		subjects = append(subjects, Subject{
			Key:      key,
			Name:     row.Value(key, "subject_name", "name"),
			Icon:     row.Value("", "icon"),
			ColorHex: row.Value("", "color_hex", "color"),
			Topics:   []Topic{},
		})
	}
	return subjects
}

// Topics groups topic rows under their subjects, dropping rows that reference
// an unknown subject, and returns the subjects with ordered topic lists plus a
// lookup map of every kept topic.
func (t *Transformer) Topics(rows []Row, subjects []Subject) ([]Subject, map[string]Topic) {
	known := make(map[string]int, len(subjects))
	for i, s := range subjects {
		known[s.Key] = i
	}

	buckets := make(map[string][]Topic)
	byID := make(map[string]Topic)
	for _, row := range rows {
		id := row.Value("", "topic_id", "id")
		if id == "" {
			t.obs.Warn("skipping topic row without id")
			continue
		}
		subjectKey := row.Value("", "subject_key", "subject")
		if _, ok := known[subjectKey]; !ok {
			t.obs.Warn("dropping topic with unknown subject",
				"topic_id", id, "subject_key", subjectKey)
			continue
		}
		name := row.Value(id, "topic_name", "name")
		topic := Topic{
			ID:         id,
			SubjectKey: subjectKey,
			Name:       name,
			Folder:     row.Value(FolderName(name), "topic_folder", "folder"),
			Duration:   row.Int(defaultDuration, "duration_minutes", "duration"),
			OrderIndex: row.Int(0, "order_index", "order"),
		}
		buckets[subjectKey] = append(buckets[subjectKey], topic)
		byID[id] = topic
	}

	for key := range buckets {
		bucket := buckets[key]
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].OrderIndex < bucket[j].OrderIndex
		})
		subjects[known[key]].Topics = bucket
	}
	return subjects, byID
}

// Sections groups section rows by topic id, ordered.
func (t *Transformer) Sections(rows []Row, topics map[string]Topic) map[string][]Section {
	buckets := make(map[string][]Section)
	for _, row := range rows {
		id := row.Value("", "section_id", "id")
		topicID := row.Value("", "topic_id", "topic")
		if id == "" || topicID == "" {
			t.obs.Warn("skipping section row without id or topic")
			continue
		}
		if _, ok := topics[topicID]; !ok {
			t.obs.Warn("dropping section with unknown topic", "section_id", id, "topic_id", topicID)
			continue
		}
		buckets[topicID] = append(buckets[topicID], Section{
			ID:         id,
			TopicID:    topicID,
			Title:      row.Value(id, "section_title", "title"),
			Type:       row.Value("", "section_type", "type", "page_type"),
			OrderIndex: row.Int(0, "order_index", "order"),
		})
	}
	sortBuckets(buckets, func(s Section) int { return s.OrderIndex })
	return buckets
}

// ContentItems groups content rows by section id, ordered. Structured payloads
// that fail schema validation are dropped from the item with a warning; the
// item itself survives.
func (t *Transformer) ContentItems(rows []Row, sections map[string]bool) map[string][]ContentItem {
	buckets := make(map[string][]ContentItem)
	for _, row := range rows {
		id := row.Value("", "content_id", "id")
		sectionID := row.Value("", "section_id", "section")
		if id == "" || sectionID == "" {
			t.obs.Warn("skipping content row without id or section")
			continue
		}
		if !sections[sectionID] {
			t.obs.Warn("dropping content with unknown section", "content_id", id, "section_id", sectionID)
			continue
		}

		item := ContentItem{
			ID:         id,
			SectionID:  sectionID,
			Type:       row.Value("text", "content_type", "type"),
			Title:      row.Value("", "content_title", "title"),
			Body:       row.Value("", "content_text", "content", "body"),
			VideoURL:   row.Value("", "video_url", "video"),
			ImageURL:   row.Value("", "image_url", "image"),
			OrderIndex: row.Int(0, "order_index", "order"),
		}
		// Some sources carry a single url column; route it by type.
		if url := row.Value("", "url"); url != "" && item.VideoURL == "" && item.ImageURL == "" {
			if item.Type == "video" {
				item.VideoURL = url
			} else {
				item.ImageURL = url
			}
		}
		if raw := row.Value("", "payload", "data"); raw != "" {
			payload, err := checkPayload(raw)
			if err != nil {
				t.obs.Warn("dropping invalid content payload", "content_id", id, "error", err)
			} else {
				item.Payload = payload
			}
		}
		buckets[sectionID] = append(buckets[sectionID], item)
	}
	sortBuckets(buckets, func(c ContentItem) int { return c.OrderIndex })
	return buckets
}

// Objectives groups learning objectives by topic id.
func (t *Transformer) Objectives(rows []Row, topics map[string]Topic) map[string][]LearningObjective {
	buckets := make(map[string][]LearningObjective)
	for _, row := range rows {
		topicID := row.Value("", "topic_id", "topic")
		text := row.Value("", "objective_text", "objective", "text")
		if topicID == "" || text == "" {
			t.obs.Warn("skipping objective row without topic or text")
			continue
		}
		if _, ok := topics[topicID]; !ok {
			t.obs.Warn("dropping objective with unknown topic", "topic_id", topicID)
			continue
		}
		buckets[topicID] = append(buckets[topicID], LearningObjective{
			ID:      row.Value("", "objective_id", "id"),
			TopicID: topicID,
			Text:    text,
		})
	}
	return buckets
}

// Terms groups key terms by topic id.
func (t *Transformer) Terms(rows []Row, topics map[string]Topic) map[string][]KeyTerm {
	buckets := make(map[string][]KeyTerm)
	for _, row := range rows {
		topicID := row.Value("", "topic_id", "topic")
		term := row.Value("", "term", "term_text", "title")
		if topicID == "" || term == "" {
			t.obs.Warn("skipping term row without topic or term")
			continue
		}
		if _, ok := topics[topicID]; !ok {
			t.obs.Warn("dropping term with unknown topic", "topic_id", topicID)
			continue
		}
		buckets[topicID] = append(buckets[topicID], KeyTerm{
			ID:         row.Value("", "term_id", "id"),
			TopicID:    topicID,
			Term:       term,
			Definition: row.Value("", "definition", "term_definition", "meaning"),
		})
	}
	return buckets
}

// Formulas groups formulas by topic id, ordered, collecting up to five
// variable descriptors per formula.
func (t *Transformer) Formulas(rows []Row, topics map[string]Topic) map[string][]Formula {
	buckets := make(map[string][]Formula)
	for _, row := range rows {
		topicID := row.Value("", "topic_id", "topic")
		text := row.Value("", "formula_text", "formula", "text")
		if topicID == "" || text == "" {
			t.obs.Warn("skipping formula row without topic or text")
			continue
		}
		if _, ok := topics[topicID]; !ok {
			t.obs.Warn("dropping formula with unknown topic", "topic_id", topicID)
			continue
		}
		buckets[topicID] = append(buckets[topicID], Formula{
			ID:         row.Value("", "formula_id", "id"),
			TopicID:    topicID,
			Label:      row.Value("", "formula_label", "label", "formula_name"),
			Text:       text,
			Variables:  formulaVariables(row),
			OrderIndex: row.Int(0, "order_index", "order"),
		})
	}
	sortBuckets(buckets, func(f Formula) int { return f.OrderIndex })
	return buckets
}

func formulaVariables(row Row) []FormulaVariable {
	var vars []FormulaVariable
	for i := 1; i <= maxFormulaVars; i++ {
		prefix := "var" + strconv.Itoa(i)
		symbol := row.Value("", prefix+"_symbol", prefix)
		if symbol == "" {
			continue
		}
		vars = append(vars, FormulaVariable{
			Symbol: symbol,
			Name:   row.Value("", prefix+"_name"),
			Unit:   row.Value("", prefix+"_unit"),
		})
	}
	return vars
}

// Questions groups quiz questions by topic id. Options arrive either as
// single-letter columns (A..D) or full-word ones (option_a..option_d); empty
// options are filtered while labels stay stable.
func (t *Transformer) Questions(rows []Row, topics map[string]Topic) map[string][]QuizQuestion {
	buckets := make(map[string][]QuizQuestion)
	for _, row := range rows {
		topicID := row.Value("", "topic_id", "topic")
		text := row.Value("", "question_text", "question", "text")
		if topicID == "" || text == "" {
			t.obs.Warn("skipping question row without topic or text")
			continue
		}
		if _, ok := topics[topicID]; !ok {
			t.obs.Warn("dropping question with unknown topic", "topic_id", topicID)
			continue
		}

		var options []QuizOption
		for _, label := range optionLetters {
			value := row.Value("", label, "option_"+strings.ToLower(label))
			if value == "" {
				continue
			}
			options = append(options, QuizOption{Label: label, Text: value})
		}

		buckets[topicID] = append(buckets[topicID], QuizQuestion{
			ID:            row.Value("", "question_id", "id"),
			TopicID:       topicID,
			Text:          text,
			Options:       options,
			CorrectAnswer: strings.ToUpper(row.Value("", "correct_answer", "answer", "correct")),
			Explanation:   row.Value("", "explanation"),
			Hint:          row.Value("", "hint"),
			Difficulty:    ParseDifficulty(row.Value("", "difficulty")),
			XPReward:      row.Int(defaultXPReward, "xp_reward", "xp", "reward"),
		})
	}
	return buckets
}

// Achievements builds the standalone achievement list in input order.
func (t *Transformer) Achievements(rows []Row) []Achievement {
	var out []Achievement
	for _, row := range rows {
		id := row.Value("", "achievement_id", "id")
		if id == "" {
			t.obs.Warn("skipping achievement row without id")
			continue
		}
		out = append(out, Achievement{
			ID:          id,
			Title:       row.Value(id, "title", "name"),
			Description: row.Value("", "description"),
			Icon:        row.Value("", "icon"),
			XPReward:    row.Int(defaultXPReward, "xp_reward", "xp"),
		})
	}
	return out
}

// Challenges builds the standalone daily-challenge list in input order.
func (t *Transformer) Challenges(rows []Row) []DailyChallenge {
	var out []DailyChallenge
	for _, row := range rows {
		id := row.Value("", "challenge_id", "id")
		if id == "" {
			t.obs.Warn("skipping challenge row without id")
			continue
		}
		out = append(out, DailyChallenge{
			ID:          id,
			Title:       row.Value(id, "title", "name"),
			Description: row.Value("", "description"),
			XPReward:    row.Int(defaultXPReward, "xp_reward", "xp"),
			TargetCount: row.Int(1, "target_count", "target"),
		})
	}
	return out
}

// SettingsMap flattens setting rows into a key/value map.
func (t *Transformer) SettingsMap(rows []Row) map[string]string {
	settings := make(map[string]string)
	for _, row := range rows {
		key := row.Value("", "setting_key", "key")
		if key == "" {
			continue
		}
		settings[key] = row.Value("", "setting_value", "value")
	}
	return settings
}

// sortBuckets stable-sorts every bucket ascending by order index; ties keep
// input order.
func sortBuckets[T any](buckets map[string][]T, order func(T) int) {
	for key := range buckets {
		bucket := buckets[key]
		sort.SliceStable(bucket, func(i, j int) bool {
			return order(bucket[i]) < order(bucket[j])
		})
	}
}
