// internal/parser/parser.go
package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"trial-balance/internal/models"
)

// Column names of the tabular sources
const (
	ColAccount = "ACCOUNT"
	ColPeriod  = "PERIOD"
	ColDebit   = "DEBIT"
	ColCredit  = "CREDIT"
	ColLabel   = "LABEL"
)

// periodLayouts are tried in order when reading a PERIOD value
var periodLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02-Jan-06",
	"02-Jan-2006",
	"01/02/2006",
}

// Record is one data row keyed by upper-cased header name
type Record struct {
	Line   int
	Fields map[string]string
}

// Get returns the trimmed value of a column.
func (r Record) Get(column string) (string, bool) {
	v, ok := r.Fields[column]
	return strings.TrimSpace(v), ok
}

// ParseTabular reads a header row followed by delimited data rows.
func ParseTabular(r io.Reader) ([]Record, error) {
	_, records, err := readTabular(r)
	return records, err
}

// readTabular returns the normalized header along with the data rows. The
// header is nil for empty input.
func readTabular(r io.Reader) ([]string, []Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	for i, name := range header {
		header[i] = strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
	}

	var records []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}

		line, _ := reader.FieldPos(0)
		fields := make(map[string]string, len(header))
		for i, name := range header {
			fields[name] = row[i]
		}
		records = append(records, Record{Line: line, Fields: fields})
	}

	return header, records, nil
}

// ParseJournal reads journal lines. The first row that cannot be converted
// into a JournalLine aborts the parse with a *models.MalformedRecordError.
func ParseJournal(r io.Reader, source string) ([]models.JournalLine, error) {
	records, err := parseSource(r, source, ColAccount, ColPeriod, ColDebit, ColCredit)
	if err != nil {
		return nil, err
	}

	lines := make([]models.JournalLine, 0, len(records))
	for _, rec := range records {
		line, err := journalLine(rec, source)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// ParseAccounts reads the chart of accounts
func ParseAccounts(r io.Reader, source string) ([]models.AccountRecord, error) {
	records, err := parseSource(r, source, ColAccount, ColLabel)
	if err != nil {
		return nil, err
	}

	accounts := make([]models.AccountRecord, 0, len(records))
	for _, rec := range records {
		account, _ := rec.Get(ColAccount)
		label, _ := rec.Get(ColLabel)
		ar := models.AccountRecord{Account: account, Label: label}
		if err := ar.Validate(); err != nil {
			return nil, malformed(source, rec.Line, ColAccount, account, err)
		}
		accounts = append(accounts, ar)
	}
	return accounts, nil
}

// ParsePeriod parses a period in any of the accepted layouts. Only the
// calendar date written in value is kept, as midnight UTC.
func ParsePeriod(value string) (time.Time, error) {
	for _, layout := range periodLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", models.ErrInvalidPeriod, value)
}

func parseSource(r io.Reader, source string, required ...string) ([]Record, error) {
	header, records, err := readTabular(r)
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, malformed(source, pe.Line, "", "", pe.Err)
		}
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	if header == nil {
		return nil, nil
	}

	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[name] = true
	}
	for _, col := range required {
		if !present[col] {
			return nil, malformed(source, 1, col, "", models.ErrMissingColumn)
		}
	}
	return records, nil
}

func journalLine(rec Record, source string) (models.JournalLine, error) {
	account, _ := rec.Get(ColAccount)
	rawPeriod, _ := rec.Get(ColPeriod)
	rawDebit, _ := rec.Get(ColDebit)
	rawCredit, _ := rec.Get(ColCredit)

	period, err := ParsePeriod(rawPeriod)
	if err != nil {
		return models.JournalLine{}, malformed(source, rec.Line, ColPeriod, rawPeriod, err)
	}
	debit, err := decimal.NewFromString(rawDebit)
	if err != nil {
		return models.JournalLine{}, malformed(source, rec.Line, ColDebit, rawDebit, err)
	}
	credit, err := decimal.NewFromString(rawCredit)
	if err != nil {
		return models.JournalLine{}, malformed(source, rec.Line, ColCredit, rawCredit, err)
	}

	line := models.JournalLine{
		Account: account,
		Period:  period,
		Debit:   debit,
		Credit:  credit,
	}
	if err := line.Validate(); err != nil {
		field, value := ColAccount, account
		switch {
		case debit.IsNegative():
			field, value = ColDebit, rawDebit
		case credit.IsNegative():
			field, value = ColCredit, rawCredit
		}
		return models.JournalLine{}, malformed(source, rec.Line, field, value, err)
	}
	return line, nil
}

func malformed(source string, line int, field, value string, err error) error {
	return &models.MalformedRecordError{
		Source: source,
		Line:   line,
		Field:  field,
		Value:  value,
		Err:    err,
	}
}
