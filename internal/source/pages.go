package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/studyhub-app/studyhub-backend/internal/content"
	"github.com/studyhub-app/studyhub-backend/internal/obs"
)

const masterIndexFile = "_master_index.csv"

// PagesStrategy reads the paginated per-topic layout: a root master index
// listing every topic, then Subject/Topic folders holding studyguide pages
// (index.csv + Pages/*.csv), questionnaire quiz CSVs, and handout pages.
// Missing per-topic files degrade to empty collections; only a missing or
// empty master index fails the strategy.
type PagesStrategy struct {
	root string
	obs  obs.Observer
}

// NewPagesStrategy creates the paginated-layout strategy rooted at dir.
func NewPagesStrategy(root string, observer obs.Observer) *PagesStrategy {
	if observer == nil {
		observer = obs.Nop()
	}
	return &PagesStrategy{root: root, obs: observer}
}

func (s *PagesStrategy) Name() string { return "paginated" }

// Tables assembles raw tables from the directory layout.
func (s *PagesStrategy) Tables(ctx context.Context) (content.Tables, error) {
	var tables content.Tables

	master, err := readCSVRows(filepath.Join(s.root, masterIndexFile), s.obs)
	if err != nil {
		return tables, fmt.Errorf("master index: %w", err)
	}
	if len(master) == 0 {
		return tables, fmt.Errorf("master index %s has no topics", masterIndexFile)
	}

	// The master index carries both subject and topic columns; the transform
	// dedupes subjects by key.
	tables.Subjects = master
	tables.Topics = master

	for _, row := range master {
		if err := ctx.Err(); err != nil {
			return tables, err
		}

		topicID := row.Value("", "topic_id", "id")
		if topicID == "" {
			continue
		}
		subjectDir := row.Value(row.Value("", "subject_key"), "subject_name", "name")
		topicName := row.Value(topicID, "topic_name")
		folder := row.Value(content.FolderName(topicName), "topic_folder", "folder")

		topicDir := filepath.Join(s.root, subjectDir, folder)
		if _, err := os.Stat(topicDir); err != nil {
			s.obs.Warn("topic folder missing", "topic_id", topicID, "dir", topicDir)
			continue
		}
		s.loadTopicDir(topicDir, topicID, &tables)
	}

	tables.Achievements = optionalCSVRows(filepath.Join(s.root, "achievements.csv"), s.obs)
	tables.Challenges = optionalCSVRows(filepath.Join(s.root, "daily_challenges.csv"), s.obs)
	return tables, nil
}

// loadTopicDir reads one topic's studyguide, questionnaire, and handout
// folders plus the optional per-topic attribute files.
func (s *PagesStrategy) loadTopicDir(dir, topicID string, tables *content.Tables) {
	s.loadPages(filepath.Join(dir, "studyguide"), topicID, "", tables)
	s.loadPages(filepath.Join(dir, "Handout"), topicID, "handout", tables)

	quizDir := filepath.Join(dir, "questionnaire", "Quiz")
	entries, err := os.ReadDir(quizDir)
	if err != nil {
		s.obs.Warn("questionnaire missing", "topic_id", topicID, "dir", quizDir)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		rows := optionalCSVRows(filepath.Join(quizDir, entry.Name()), s.obs)
		tables.Questions = append(tables.Questions, withDefault(rows, "topic_id", topicID)...)
	}

	for file, dst := range map[string]*[]content.Row{
		"objectives.csv": &tables.Objectives,
		"terms.csv":      &tables.Terms,
		"formulas.csv":   &tables.Formulas,
	} {
		path := filepath.Join(dir, file)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		rows := optionalCSVRows(path, s.obs)
		*dst = append(*dst, withDefault(rows, "topic_id", topicID)...)
	}
}

// loadPages reads a paginated folder: index.csv describes the pages (each page
// becomes a section), and each listed file under Pages/ holds that section's
// content rows.
func (s *PagesStrategy) loadPages(dir, topicID, sectionType string, tables *content.Tables) {
	index := optionalCSVRows(filepath.Join(dir, "index.csv"), s.obs)
	for _, page := range index {
		pageID := page.Value("", "page_id", "id")
		if pageID == "" {
			s.obs.Warn("skipping index row without page id", "dir", dir)
			continue
		}

		section := content.Row{
			"section_id":  pageID,
			"topic_id":    topicID,
			"title":       page.Value(pageID, "title", "page_title"),
			"page_type":   page.Value(sectionType, "page_type", "type"),
			"order_index": page.Value("0", "order_index", "order"),
		}
		tables.Sections = append(tables.Sections, section)

		file := page.Value("", "file", "file_name")
		if file == "" || !strings.EqualFold(filepath.Ext(file), ".csv") {
			// Non-tabular pages (PDF, Word) have no content rows to extract.
			continue
		}
		rows := optionalCSVRows(filepath.Join(dir, "Pages", file), s.obs)
		rows = withDefault(rows, "section_id", pageID)
		tables.Content = append(tables.Content, withDefault(rows, "topic_id", topicID)...)
	}
}

// withDefault fills key on every row that does not already resolve it.
func withDefault(rows []content.Row, key, value string) []content.Row {
	for _, row := range rows {
		if !row.Has(key) {
			row[key] = value
		}
	}
	return rows
}
