// Package export turns a set of quiz responses into a flat CSV table.
// It performs no I/O; handlers decide how the text is delivered.
package export

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/UttkarrshhPal/questa-quiz/internal/models"
)

const (
	colResponseNum = "Response #"
	colSubmittedAt = "Submitted At"

	submittedAtLayout = "2006-01-02 15:04:05"
)

// Table is an ordered set of columns plus one cell map per response.
// A key absent from a row means the respondent never answered that
// question, which serializes differently from an empty answer.
type Table struct {
	Headers []string
	Rows    []map[string]string
}

// ResponseTable flattens responses into rows sorted oldest-first
// (stable, ties keep their relative order). Columns are Response #,
// Submitted At, then one column per distinct question text in
// first-encounter order. Answers without a loaded question are
// skipped since there is no label to file them under.
func ResponseTable(responses []models.Response) Table {
	sorted := make([]models.Response, len(responses))
	copy(sorted, responses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	headers := []string{colResponseNum, colSubmittedAt}
	seen := map[string]bool{colResponseNum: true, colSubmittedAt: true}

	rows := make([]map[string]string, 0, len(sorted))
	for i, resp := range sorted {
		row := map[string]string{
			colResponseNum: strconv.Itoa(i + 1),
			colSubmittedAt: resp.CreatedAt.Format(submittedAtLayout),
		}
		for _, answer := range resp.Answers {
			if answer.Question == nil || answer.Question.Text == "" {
				continue
			}
			label := answer.Question.Text
			if !seen[label] {
				seen[label] = true
				headers = append(headers, label)
			}
			row[label] = answer.Value
		}
		rows = append(rows, row)
	}

	return Table{Headers: headers, Rows: rows}
}

// CSV serializes the table. Headers are always double-quoted. Data
// cells are quoted, with inner quotes doubled, only when they contain
// a comma, a double quote, or a newline. A cell with no value at all
// serializes as an empty quoted pair.
func (t Table) CSV() string {
	if len(t.Rows) == 0 {
		return ""
	}

	lines := make([]string, 0, len(t.Rows)+1)

	quoted := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		quoted[i] = `"` + strings.ReplaceAll(h, `"`, `""`) + `"`
	}
	lines = append(lines, strings.Join(quoted, ","))

	for _, row := range t.Rows {
		cells := make([]string, len(t.Headers))
		for i, h := range t.Headers {
			value, ok := row[h]
			if !ok {
				cells[i] = `""`
				continue
			}
			cells[i] = csvCell(value)
		}
		lines = append(lines, strings.Join(cells, ","))
	}

	return strings.Join(lines, "\n")
}

func csvCell(value string) string {
	if strings.ContainsAny(value, ",\"\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}

// Filename builds the download name used for a quiz's response export.
func Filename(quizTitle string, now time.Time) string {
	return quizTitle + "-responses-" + now.Format("2006-01-02") + ".csv"
}
