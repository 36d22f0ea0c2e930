package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/studyhub-app/studyhub-backend/internal/content"
	"github.com/studyhub-app/studyhub-backend/internal/obs"
)

// readCSVRows reads a delimited-text file into rows keyed by its header.
// Malformed records are skipped with a warning; only an unreadable file or a
// missing header is an error.
func readCSVRows(path string, observer obs.Observer) ([]content.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: empty file", path)
		}
		return nil, fmt.Errorf("%s: reading header: %w", path, err)
	}

	var rows []content.Row
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			observer.Warn("skipping malformed row", "file", path, "error", err)
			continue
		}

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
	return rows, nil
}

// optionalCSVRows reads a file that may legitimately be absent. A missing file
// resolves to an empty result with a warning and never fails the strategy.
func optionalCSVRows(path string, observer obs.Observer) []content.Row {
	rows, err := readCSVRows(path, observer)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			observer.Warn("optional source file missing", "file", path)
		} else {
			observer.Warn("skipping unreadable source file", "file", path, "error", err)
		}
		return nil
	}
	return rows
}
