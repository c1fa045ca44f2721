package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	drawmodels "prize-draw-backend/internal/features/draw/models"
	"prize-draw-backend/internal/features/roster/models"
)

// ParseRoster reads a delimited roster file into participant records. A bad
// row never aborts the import: rows with a mismatched field count, a missing
// name or a malformed or negative score are dropped and counted, and the
// engine only ever sees valid records.
func ParseRoster(r io.Reader) ([]drawmodels.Participant, models.ParseResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, models.ParseResult{}, fmt.Errorf("failed to read roster file: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, models.ParseResult{}, fmt.Errorf("failed to parse roster file: %w", err)
	}
	if len(records) == 0 {
		return []drawmodels.Participant{}, models.ParseResult{}, nil
	}

	// Rows whose width disagrees with the header cannot be mapped to
	// columns; drop them before handing the rest to gocsv.
	header := records[0]
	skipped := 0
	conforming := [][]string{header}
	for _, row := range records[1:] {
		if len(row) != len(header) {
			skipped++
			continue
		}
		conforming = append(conforming, row)
	}

	var rows []models.Record
	if err := gocsv.UnmarshalCSV(newRecordReader(conforming), &rows); err != nil {
		return nil, models.ParseResult{}, fmt.Errorf("failed to parse roster file: %w", err)
	}

	participants := make([]drawmodels.Participant, 0, len(rows))
	for _, row := range rows {
		p, ok := convertRecord(row)
		if !ok {
			skipped++
			continue
		}
		participants = append(participants, p)
	}

	return participants, models.ParseResult{Loaded: len(participants), Skipped: skipped}, nil
}

func convertRecord(row models.Record) (drawmodels.Participant, bool) {
	name := strings.TrimSpace(row.Name)
	if name == "" {
		return drawmodels.Participant{}, false
	}

	score, err := strconv.Atoi(strings.TrimSpace(row.Score))
	if err != nil || score < 0 {
		return drawmodels.Participant{}, false
	}

	submissions := 0
	if s := strings.TrimSpace(row.Submissions); s != "" {
		submissions, err = strconv.Atoi(s)
		if err != nil || submissions < 0 {
			return drawmodels.Participant{}, false
		}
	}

	lastActivity := strings.TrimSpace(row.LastActivity)
	if lastActivity == "" {
		lastActivity = "unknown"
	}

	return drawmodels.Participant{
		Name:                  name,
		Score:                 score,
		SubmissionCount:       submissions,
		LastActivityTimestamp: lastActivity,
		Status:                drawmodels.StatusEligible,
	}, true
}

// recordReader feeds pre-filtered rows to gocsv.
type recordReader struct {
	rows [][]string
	next int
}

func newRecordReader(rows [][]string) *recordReader {
	return &recordReader{rows: rows}
}

func (r *recordReader) Read() ([]string, error) {
	if r.next >= len(r.rows) {
		return nil, io.EOF
	}
	row := r.rows[r.next]
	r.next++
	return row, nil
}

func (r *recordReader) ReadAll() ([][]string, error) {
	rows := r.rows[r.next:]
	r.next = len(r.rows)
	return rows, nil
}

// detectDelimiter supports comma and semicolon separated files, decided by
// whichever appears more often in the header line.
func detectDelimiter(data []byte) rune {
	header := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		header = data[:idx]
	}
	if bytes.Count(header, []byte(";")) > bytes.Count(header, []byte(",")) {
		return ';'
	}
	return ','
}
