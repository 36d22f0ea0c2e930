package source

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/studyhub-app/studyhub-backend/internal/content"
	"github.com/studyhub-app/studyhub-backend/internal/obs"
)

// DefaultMasterWorkbook is the master workbook file name under the root.
const DefaultMasterWorkbook = "StudyHub_Master.xlsx"

// WorkbookStrategy reads the multi-sheet workbook layout: one master workbook
// (Subjects, Topics, Achievements, Settings, Daily_Challenges) plus one
// workbook per subject holding the topic-scoped tables, each row joined to the
// master by its topic_id column. A missing subject workbook or sheet degrades
// to empty collections; only an unreadable master fails the strategy.
type WorkbookStrategy struct {
	root   string
	master string
	obs    obs.Observer
}

// NewWorkbookStrategy creates the workbook-layout strategy rooted at dir.
// masterFile may be empty to use DefaultMasterWorkbook.
func NewWorkbookStrategy(root, masterFile string, observer obs.Observer) *WorkbookStrategy {
	if masterFile == "" {
		masterFile = DefaultMasterWorkbook
	}
	if observer == nil {
		observer = obs.Nop()
	}
	return &WorkbookStrategy{root: root, master: masterFile, obs: observer}
}

func (s *WorkbookStrategy) Name() string { return "workbook" }

// Tables assembles raw tables from the master and subject workbooks.
func (s *WorkbookStrategy) Tables(ctx context.Context) (content.Tables, error) {
	var tables content.Tables

	masterPath := filepath.Join(s.root, s.master)
	master, err := excelize.OpenFile(masterPath)
	if err != nil {
		return tables, fmt.Errorf("master workbook %s: %w", masterPath, err)
	}
	defer master.Close()

	tables.Subjects = s.sheetRows(master, masterPath, "Subjects")
	tables.Topics = s.sheetRows(master, masterPath, "Topics")
	tables.Achievements = s.sheetRows(master, masterPath, "Achievements")
	tables.Challenges = s.sheetRows(master, masterPath, "Daily_Challenges")
	tables.Settings = s.sheetRows(master, masterPath, "Settings")

	for _, file := range s.subjectWorkbooks(tables.Topics) {
		if err := ctx.Err(); err != nil {
			return tables, err
		}
		s.loadSubjectWorkbook(filepath.Join(s.root, file), &tables)
	}
	return tables, nil
}

// subjectWorkbooks resolves the per-subject workbook files declared by the
// master Topics sheet. A topic row may name its workbook via a file_name
// column; otherwise the file defaults to subjects/<subject_key>.xlsx.
func (s *WorkbookStrategy) subjectWorkbooks(topics []content.Row) []string {
	var files []string
	seen := make(map[string]bool)
	for _, row := range topics {
		file := row.Value("", "file_name", "file")
		if file == "" {
			key := row.Value("", "subject_key", "subject")
			if key == "" {
				continue
			}
			file = filepath.Join("subjects", key+".xlsx")
		}
		if seen[file] {
			continue
		}
		seen[file] = true
		files = append(files, file)
	}
	return files
}

func (s *WorkbookStrategy) loadSubjectWorkbook(path string, tables *content.Tables) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		s.obs.Warn("subject workbook missing", "file", path, "error", err)
		return
	}
	defer wb.Close()

	tables.Sections = append(tables.Sections, s.sheetRows(wb, path, "Topic_Sections")...)
	tables.Objectives = append(tables.Objectives, s.sheetRows(wb, path, "Learning_Objectives")...)
	tables.Terms = append(tables.Terms, s.sheetRows(wb, path, "Key_Terms")...)
	tables.Content = append(tables.Content, s.sheetRows(wb, path, "Study_Content")...)
	tables.Formulas = append(tables.Formulas, s.sheetRows(wb, path, "Formulas")...)
	tables.Questions = append(tables.Questions, s.sheetRows(wb, path, "Quiz_Questions")...)
}

// sheetRows reads one sheet into rows keyed by its first-row header. A missing
// sheet resolves to an empty result with a warning.
func (s *WorkbookStrategy) sheetRows(wb *excelize.File, path, sheet string) []content.Row {
	records, err := wb.GetRows(sheet)
	if err != nil {
		s.obs.Warn("workbook sheet missing", "file", path, "sheet", sheet)
		return nil
	}
	if len(records) < 2 {
		return nil
	}

	header := records[0]
	var rows []content.Row
	for _, record := range records[1:] {
		row := make(content.Row, len(header))
		empty := true
		for i, value := range record {
			if i >= len(header) || strings.TrimSpace(header[i]) == "" {
				continue
			}
			row[strings.TrimSpace(header[i])] = value
			if strings.TrimSpace(value) != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}
